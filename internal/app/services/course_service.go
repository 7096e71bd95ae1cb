package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/naybriones202/registro-academico/internal/app/models"
	"github.com/naybriones202/registro-academico/internal/app/repositories"
	"github.com/naybriones202/registro-academico/internal/pkg/apperrors"
)

// CourseService handles course registration and listing.
type CourseService struct {
	courseRepo repositories.ICourseRepository
}

// NewCourseService creates a new CourseService.
func NewCourseService(courseRepo repositories.ICourseRepository) *CourseService {
	return &CourseService{courseRepo: courseRepo}
}

// RegisterCourse creates a course after a case-insensitive existence
// check on the name.
func (s *CourseService) RegisterCourse(ctx context.Context, nombre string) (*models.Course, error) {
	nombre = strings.TrimSpace(nombre)
	if nombre == "" {
		return nil, apperrors.NewValidationError("Nombre obligatorio")
	}

	exists, err := s.courseRepo.ExistsByName(ctx, nombre)
	if err != nil {
		return nil, fmt.Errorf("error checking course name: %w", err)
	}
	if exists {
		return nil, apperrors.ErrCourseAlreadyExists
	}

	course := &models.Course{Nombre: nombre}
	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}

	return course, nil
}

// ListCourses returns courses ascending by codigo, optionally filtered
// by a case-insensitive substring match on the name.
func (s *CourseService) ListCourses(ctx context.Context, filter string) ([]*models.Course, error) {
	return s.courseRepo.List(ctx, filter)
}
