package services

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/naybriones202/registro-academico/internal/app/models"
	"github.com/naybriones202/registro-academico/internal/pkg/apperrors"
)

// fakeUserRepo is an in-memory IUserRepository enforcing the same
// constraints as the real table: unique cedula, one extension row per
// user in the table matching its role.
type fakeUserRepo struct {
	mu         sync.Mutex
	nextID     int64
	users      map[int64]*models.User
	extensions map[int64]models.RoleType
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		nextID:     1,
		users:      make(map[int64]*models.User),
		extensions: make(map[int64]models.RoleType),
	}
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.users {
		if existing.Cedula == user.Cedula {
			return apperrors.ErrCedulaAlreadyExists
		}
	}

	user.ID = f.nextID
	f.nextID++
	stored := *user
	f.users[user.ID] = &stored
	f.extensions[user.ID] = user.Rol
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) GetByCedula(_ context.Context, cedula string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, user := range f.users {
		if user.Cedula == cedula {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserRepo) List(_ context.Context) ([]*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	users := make([]*models.User, 0, len(f.users))
	for _, user := range f.users {
		copied := *user
		copied.Clave = ""
		users = append(users, &copied)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *models.User, previousRol models.RoleType) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	existing, ok := f.users[user.ID]
	if !ok {
		return apperrors.ErrUserNotFound
	}

	existing.Cedula = user.Cedula
	existing.Nombre = user.Nombre
	existing.Rol = user.Rol
	if user.Clave != "" {
		existing.Clave = user.Clave
	}
	if user.Rol != previousRol {
		f.extensions[user.ID] = user.Rol
	}
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.users[id]; !ok {
		return apperrors.ErrUserNotFound
	}
	delete(f.users, id)
	delete(f.extensions, id)
	return nil
}

func (f *fakeUserRepo) extensionRole(id int64) (models.RoleType, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rol, ok := f.extensions[id]
	return rol, ok
}

func (f *fakeUserRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.users)
}

// fakeCourseRepo is an in-memory ICourseRepository with the unique
// LOWER(nombre) behavior of the real table.
type fakeCourseRepo struct {
	mu      sync.Mutex
	nextID  int64
	courses []*models.Course
}

func newFakeCourseRepo() *fakeCourseRepo {
	return &fakeCourseRepo{nextID: 1}
}

func (f *fakeCourseRepo) Create(_ context.Context, course *models.Course) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.courses {
		if strings.EqualFold(existing.Nombre, course.Nombre) {
			return apperrors.ErrCourseAlreadyExists
		}
	}

	course.Codigo = f.nextID
	f.nextID++
	stored := *course
	f.courses = append(f.courses, &stored)
	return nil
}

func (f *fakeCourseRepo) ExistsByName(_ context.Context, nombre string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.courses {
		if strings.EqualFold(existing.Nombre, nombre) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCourseRepo) List(_ context.Context, filter string) ([]*models.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	lowered := strings.ToLower(filter)
	courses := make([]*models.Course, 0, len(f.courses))
	for _, course := range f.courses {
		if filter != "" && !strings.Contains(strings.ToLower(course.Nombre), lowered) {
			continue
		}
		copied := *course
		courses = append(courses, &copied)
	}
	sort.Slice(courses, func(i, j int) bool { return courses[i].Codigo < courses[j].Codigo })
	return courses, nil
}
