package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/naybriones202/registro-academico/internal/app/models"
	"github.com/naybriones202/registro-academico/internal/app/repositories"
	"github.com/naybriones202/registro-academico/internal/pkg/apperrors"
	"github.com/naybriones202/registro-academico/internal/pkg/auth"
)

// AuthService handles credential verification.
type AuthService struct {
	userRepo repositories.IUserRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.IUserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// Authenticate looks up the user by cedula and verifies the password
// against the stored hash. The hash is never decrypted. A missing user
// and a wrong password are distinct failures, matching the API
// contract.
func (s *AuthService) Authenticate(ctx context.Context, cedula, clave string) (*models.User, error) {
	user, err := s.userRepo.GetByCedula(ctx, cedula)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error fetching user for login: %w", err)
	}

	if !auth.CheckPassword(user.Clave, clave) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return user, nil
}
