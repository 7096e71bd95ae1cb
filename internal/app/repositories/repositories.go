package repositories

import (
	"github.com/naybriones202/registro-academico/internal/db"
)

// Repositories bundles all repository instances.
type Repositories struct {
	UserRepository   *UserRepository
	CourseRepository *CourseRepository
}

// NewRepositories creates all repositories over one connection pool.
func NewRepositories(database *db.PostgresDB) *Repositories {
	return &Repositories{
		UserRepository:   NewUserRepository(database),
		CourseRepository: NewCourseRepository(database),
	}
}
