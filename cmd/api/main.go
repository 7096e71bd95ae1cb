package main

import (
	"github.com/joho/godotenv"

	"github.com/naybriones202/registro-academico/internal/pkg/logger"
	"github.com/naybriones202/registro-academico/internal/server"
)

func main() {
	// Local development overrides; missing file is not an error.
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg("No .env file found, relying on environment")
	}

	srv, err := server.NewServer()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize server")
	}

	if err := srv.Run(); err != nil {
		logger.Fatal().Err(err).Msg("Server exited with error")
	}
}
