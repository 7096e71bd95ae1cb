package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/naybriones202/registro-academico/internal/app/models"
	"github.com/naybriones202/registro-academico/internal/db"
	"github.com/naybriones202/registro-academico/internal/pkg/apperrors"
	"github.com/naybriones202/registro-academico/internal/pkg/dberrors"
	"github.com/naybriones202/registro-academico/internal/pkg/logger"
)

// ICourseRepository defines course persistence operations.
type ICourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	ExistsByName(ctx context.Context, nombre string) (bool, error)
	// List returns courses ordered by codigo ascending. A non-empty
	// filter restricts to names containing it, ignoring case.
	List(ctx context.Context, filter string) ([]*models.Course, error)
}

// CourseRepository handles database operations for courses.
type CourseRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository.
func NewCourseRepository(database *db.PostgresDB) *CourseRepository {
	return &CourseRepository{
		db: database,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new course and fills in its assigned code.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	err := r.db.Pool.QueryRow(ctx, `
		INSERT INTO materia (nombre)
		VALUES ($1)
		RETURNING codigo`,
		course.Nombre).Scan(&course.Codigo)

	if err != nil {
		// Unique index on LOWER(nombre) backstops the existence check.
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrCourseAlreadyExists
		}
		return fmt.Errorf("error creating course: %w", err)
	}

	logger.Info().Int64("codigo", course.Codigo).Str("nombre", course.Nombre).Msg("Course created")
	return nil
}

// ExistsByName checks for a course with the same name ignoring case.
func (r *CourseRepository) ExistsByName(ctx context.Context, nombre string) (bool, error) {
	var exists bool
	err := r.db.Pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM materia WHERE LOWER(nombre) = LOWER($1))`,
		nombre).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking course existence: %w", err)
	}

	return exists, nil
}

// List retrieves courses, optionally filtered by a case-insensitive
// substring match on the name.
func (r *CourseRepository) List(ctx context.Context, filter string) ([]*models.Course, error) {
	builder := r.sb.Select("codigo", "nombre").
		From("materia").
		OrderBy("codigo ASC")

	if filter != "" {
		builder = builder.Where(squirrel.ILike{"nombre": "%" + filter + "%"})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build course list query: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing courses: %w", err)
	}
	defer rows.Close()

	courses := make([]*models.Course, 0)
	for rows.Next() {
		course := &models.Course{}
		if err := rows.Scan(&course.Codigo, &course.Nombre); err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return courses, nil
}
