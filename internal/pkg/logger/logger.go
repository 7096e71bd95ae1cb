package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config controls the global logger output.
type Config struct {
	// Level is one of debug, info, warn, error, fatal.
	Level string
	// Pretty switches to the human-readable console writer.
	Pretty bool
	// Output defaults to os.Stdout.
	Output io.Writer
}

var defaultLogger zerolog.Logger

// Configure sets up the package-global logger. Safe to call more than
// once; the last call wins.
func Configure(cfg Config) {
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}

	zerolog.TimeFieldFormat = time.RFC3339

	switch strings.ToLower(cfg.Level) {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "fatal":
		zerolog.SetGlobalLevel(zerolog.FatalLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	var writer io.Writer = cfg.Output
	if cfg.Pretty {
		writer = zerolog.ConsoleWriter{Out: cfg.Output, TimeFormat: time.RFC3339}
	}

	defaultLogger = zerolog.New(writer).With().Timestamp().Logger()
	log.Logger = defaultLogger
}

// Debug logs a debug message.
func Debug() *zerolog.Event {
	return defaultLogger.Debug()
}

// Info logs an informational message.
func Info() *zerolog.Event {
	return defaultLogger.Info()
}

// Warn logs a warning message.
func Warn() *zerolog.Event {
	return defaultLogger.Warn()
}

// Error logs an error message.
func Error() *zerolog.Event {
	return defaultLogger.Error()
}

// Fatal logs a message and then exits.
func Fatal() *zerolog.Event {
	return defaultLogger.Fatal()
}

func init() {
	Configure(Config{Level: "info", Pretty: true})
}
