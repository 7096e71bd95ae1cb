package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/naybriones202/registro-academico/internal/app/models"
	"github.com/naybriones202/registro-academico/internal/app/models/dto"
	"github.com/naybriones202/registro-academico/internal/app/repositories"
	"github.com/naybriones202/registro-academico/internal/pkg/apperrors"
	"github.com/naybriones202/registro-academico/internal/pkg/auth"
)

// UserService handles account lifecycle operations.
type UserService struct {
	userRepo repositories.IUserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.IUserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Register creates a new account with its role extension row. The role
// set is closed: anything other than estudiante or profesor is
// rejected before any row is written.
func (s *UserService) Register(ctx context.Context, req *dto.RegisterUserRequest) (*models.User, error) {
	if strings.TrimSpace(req.Cedula) == "" || strings.TrimSpace(req.Nombre) == "" || req.Clave == "" {
		return nil, apperrors.NewValidationError("Faltan datos obligatorios")
	}

	rol := models.RoleType(req.Rol)
	if !rol.IsValid() {
		return nil, apperrors.ErrInvalidRole
	}

	hash, err := auth.HashPassword(req.Clave)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Cedula: req.Cedula,
		Nombre: req.Nombre,
		Clave:  hash,
		Rol:    rol,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Update rewrites an existing account. The hash is recomputed only
// when a new clave is supplied; a role change moves the extension row.
func (s *UserService) Update(ctx context.Context, id int64, req *dto.UpdateUserRequest) (*models.User, error) {
	existing, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	rol := existing.Rol
	if req.Rol != nil {
		rol = models.RoleType(*req.Rol)
		if !rol.IsValid() {
			return nil, apperrors.ErrInvalidRole
		}
	}

	user := &models.User{
		ID:     id,
		Cedula: req.Cedula,
		Nombre: req.Nombre,
		Rol:    rol,
	}

	if req.Clave != nil && *req.Clave != "" {
		hash, err := auth.HashPassword(*req.Clave)
		if err != nil {
			return nil, fmt.Errorf("error hashing password: %w", err)
		}
		user.Clave = hash
	}

	if err := s.userRepo.Update(ctx, user, existing.Rol); err != nil {
		return nil, err
	}

	user.Clave = ""
	return user, nil
}

// List returns all users ascending by id, hashes omitted.
func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	return s.userRepo.List(ctx)
}

// GetByID returns a single user.
func (s *UserService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// Delete removes an account by id.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	return s.userRepo.Delete(ctx, id)
}
