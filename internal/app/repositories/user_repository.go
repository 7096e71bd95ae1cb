package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/naybriones202/registro-academico/internal/app/models"
	"github.com/naybriones202/registro-academico/internal/db"
	"github.com/naybriones202/registro-academico/internal/pkg/apperrors"
	"github.com/naybriones202/registro-academico/internal/pkg/dberrors"
	"github.com/naybriones202/registro-academico/internal/pkg/logger"
)

// IUserRepository defines user persistence operations.
type IUserRepository interface {
	// Create inserts the user row and its role extension row in one
	// transaction; both exist afterwards or neither does.
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByCedula(ctx context.Context, cedula string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	// Update rewrites the user row. When the role differs from
	// previousRol the extension row is moved to the matching table
	// within the same transaction.
	Update(ctx context.Context, user *models.User, previousRol models.RoleType) error
	Delete(ctx context.Context, id int64) error
}

// UserRepository handles user database operations.
type UserRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(database *db.PostgresDB) *UserRepository {
	return &UserRepository{
		db: database,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// extensionTable returns the role extension table for a role.
func extensionTable(rol models.RoleType) string {
	if rol == models.RoleTeacher {
		return "profesores"
	}
	return "estudiantes"
}

// Create inserts a new user plus its role extension row atomically.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	err := r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO usuarios (cedula, nombre, clave, rol)
			VALUES ($1, $2, $3, $4)
			RETURNING id`,
			user.Cedula, user.Nombre, user.Clave, user.Rol).Scan(&user.ID)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx,
			fmt.Sprintf(`INSERT INTO %s (usuario_id) VALUES ($1)`, extensionTable(user.Rol)),
			user.ID)
		return err
	})

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "usuarios_cedula_key") {
			logger.Warn().Str("cedula", user.Cedula).Msg("Attempted to register duplicate cedula")
			return apperrors.ErrCedulaAlreadyExists
		}
		return fmt.Errorf("error creating user: %w", err)
	}

	logger.Info().Int64("userID", user.ID).Str("rol", string(user.Rol)).Msg("User created")
	return nil
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user := &models.User{}
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, cedula, nombre, clave, rol
		FROM usuarios
		WHERE id = $1`,
		id).Scan(&user.ID, &user.Cedula, &user.Nombre, &user.Clave, &user.Rol)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return user, nil
}

// GetByCedula retrieves a user by its national id, hash included.
func (r *UserRepository) GetByCedula(ctx context.Context, cedula string) (*models.User, error) {
	user := &models.User{}
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, cedula, nombre, clave, rol
		FROM usuarios
		WHERE cedula = $1`,
		cedula).Scan(&user.ID, &user.Cedula, &user.Nombre, &user.Clave, &user.Rol)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user by cedula: %w", err)
	}

	return user, nil
}

// List retrieves all users ordered by id ascending. The hash column is
// never selected here.
func (r *UserRepository) List(ctx context.Context) ([]*models.User, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, cedula, nombre, rol
		FROM usuarios
		ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	defer rows.Close()

	users := make([]*models.User, 0)
	for rows.Next() {
		user := &models.User{}
		if err := rows.Scan(&user.ID, &user.Cedula, &user.Nombre, &user.Rol); err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

// Update rewrites the user row and moves the extension row when the
// role changed. Clave is only touched when a new hash is set.
func (r *UserRepository) Update(ctx context.Context, user *models.User, previousRol models.RoleType) error {
	builder := r.sb.Update("usuarios").
		Set("cedula", user.Cedula).
		Set("nombre", user.Nombre).
		Set("rol", user.Rol).
		Where(squirrel.Eq{"id": user.ID})

	if user.Clave != "" {
		builder = builder.Set("clave", user.Clave)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	err = r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		cmdTag, err := tx.Exec(ctx, sql, args...)
		if err != nil {
			return err
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrUserNotFound
		}

		if user.Rol == previousRol {
			return nil
		}

		// Role changed: move the extension row to the matching table.
		if _, err := tx.Exec(ctx,
			fmt.Sprintf(`DELETE FROM %s WHERE usuario_id = $1`, extensionTable(previousRol)),
			user.ID); err != nil {
			return err
		}
		_, err = tx.Exec(ctx,
			fmt.Sprintf(`INSERT INTO %s (usuario_id) VALUES ($1)`, extensionTable(user.Rol)),
			user.ID)
		return err
	})

	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		if dberrors.IsDuplicateConstraintError(err, "usuarios_cedula_key") {
			return apperrors.ErrCedulaAlreadyExists
		}
		return fmt.Errorf("error updating user: %w", err)
	}

	return nil
}

// Delete removes a user by ID. Extension rows follow via ON DELETE
// CASCADE on the foreign keys.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Pool.Exec(ctx, `DELETE FROM usuarios WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting user: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	logger.Info().Int64("userID", id).Msg("User deleted")
	return nil
}
