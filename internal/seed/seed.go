package seed

import (
	"context"
	"errors"
	"time"

	"github.com/naybriones202/registro-academico/internal/app/models"
	"github.com/naybriones202/registro-academico/internal/app/repositories"
	"github.com/naybriones202/registro-academico/internal/pkg/apperrors"
	"github.com/naybriones202/registro-academico/internal/pkg/auth"
	"github.com/naybriones202/registro-academico/internal/pkg/logger"
)

const (
	defaultTeacherCedula = "0000000000"
	defaultTeacherNombre = "Administrador"
	defaultTeacherClave  = "admin123"
)

// SeedDefaultTeacher ensures at least one profesor account exists so
// privileged operations can be reached on a fresh database.
func SeedDefaultTeacher(repos *repositories.Repositories) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := repos.UserRepository.GetByCedula(ctx, defaultTeacherCedula)
	if err == nil {
		logger.Debug().Msg("Default teacher account already exists, skipping seed")
		return nil
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		return err
	}

	hashed, err := auth.HashPassword(defaultTeacherClave)
	if err != nil {
		return err
	}

	user := &models.User{
		Cedula: defaultTeacherCedula,
		Nombre: defaultTeacherNombre,
		Clave:  hashed,
		Rol:    models.RoleTeacher,
	}

	if err := repos.UserRepository.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrCedulaAlreadyExists) {
			return nil
		}
		return err
	}

	logger.Info().Str("cedula", defaultTeacherCedula).Msg("Seeded default teacher account")
	return nil
}
