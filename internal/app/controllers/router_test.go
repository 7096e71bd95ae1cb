package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naybriones202/registro-academico/internal/app/controllers"
	"github.com/naybriones202/registro-academico/internal/app/models"
	"github.com/naybriones202/registro-academico/internal/app/models/dto"
	"github.com/naybriones202/registro-academico/internal/app/routes"
	"github.com/naybriones202/registro-academico/internal/app/services"
	"github.com/naybriones202/registro-academico/internal/middleware"
	"github.com/naybriones202/registro-academico/internal/pkg/apperrors"
	"github.com/naybriones202/registro-academico/internal/pkg/auth"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// memUserRepo backs the handler tests without a database.
type memUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*models.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{nextID: 1, users: make(map[int64]*models.User)}
}

func (r *memUserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Cedula == user.Cedula {
			return apperrors.ErrCedulaAlreadyExists
		}
	}
	user.ID = r.nextID
	r.nextID++
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *memUserRepo) GetByCedula(_ context.Context, cedula string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Cedula == cedula {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *memUserRepo) List(_ context.Context) ([]*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := make([]*models.User, 0, len(r.users))
	for _, user := range r.users {
		copied := *user
		copied.Clave = ""
		users = append(users, &copied)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (r *memUserRepo) Update(_ context.Context, user *models.User, _ models.RoleType) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.users[user.ID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	existing.Cedula = user.Cedula
	existing.Nombre = user.Nombre
	existing.Rol = user.Rol
	if user.Clave != "" {
		existing.Clave = user.Clave
	}
	return nil
}

func (r *memUserRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return apperrors.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

// memCourseRepo backs the course handler tests.
type memCourseRepo struct {
	mu      sync.Mutex
	nextID  int64
	courses []*models.Course
}

func newMemCourseRepo() *memCourseRepo { return &memCourseRepo{nextID: 1} }

func (r *memCourseRepo) Create(_ context.Context, course *models.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.courses {
		if strings.EqualFold(existing.Nombre, course.Nombre) {
			return apperrors.ErrCourseAlreadyExists
		}
	}
	course.Codigo = r.nextID
	r.nextID++
	stored := *course
	r.courses = append(r.courses, &stored)
	return nil
}

func (r *memCourseRepo) ExistsByName(_ context.Context, nombre string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.courses {
		if strings.EqualFold(existing.Nombre, nombre) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memCourseRepo) List(_ context.Context, filter string) ([]*models.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	lowered := strings.ToLower(filter)
	courses := make([]*models.Course, 0, len(r.courses))
	for _, course := range r.courses {
		if filter != "" && !strings.Contains(strings.ToLower(course.Nombre), lowered) {
			continue
		}
		copied := *course
		courses = append(courses, &copied)
	}
	return courses, nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	userRepo := newMemUserRepo()
	courseRepo := newMemCourseRepo()
	lgr := zerolog.Nop()

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:   "clave-de-prueba",
		TokenExpiry: time.Hour,
		TokenIssuer: "registro-academico-test",
	})

	router := gin.New()
	routes.SetupRouter(router,
		controllers.NewAuthController(services.NewAuthService(userRepo), jwtService, lgr),
		controllers.NewUserController(services.NewUserService(userRepo), lgr),
		controllers.NewCourseController(services.NewCourseService(courseRepo), lgr),
		middleware.NewAuthMiddleware(jwtService),
	)

	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, method, url, token string, payload any) (*http.Response, []byte) {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	return resp, buf.Bytes()
}

func registerUser(t *testing.T, baseURL, cedula, nombre, clave, rol string) dto.UserResponse {
	t.Helper()
	resp, body := doJSON(t, http.MethodPost, baseURL+"/usuarios", "", dto.RegisterUserRequest{
		Cedula: cedula, Nombre: nombre, Clave: clave, Rol: rol,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, "register failed: %s", body)

	var out dto.RegisterUserResponse
	require.NoError(t, json.Unmarshal(body, &out))
	return out.Data
}

func loginUser(t *testing.T, baseURL, cedula, clave string) dto.LoginResponse {
	t.Helper()
	resp, body := doJSON(t, http.MethodPost, baseURL+"/login", "", dto.LoginRequest{Cedula: cedula, Clave: clave})
	require.Equal(t, http.StatusOK, resp.StatusCode, "login failed: %s", body)

	var out dto.LoginResponse
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func TestRegisterLoginAndPrivilegedFlow(t *testing.T) {
	ts := newTestServer(t)

	teacher := registerUser(t, ts.URL, "1717171717", "Profe Uno", "clave123", "profesor")
	assert.Equal(t, "profesor", teacher.Rol)

	login := loginUser(t, ts.URL, "1717171717", "clave123")
	assert.Equal(t, "Ingreso exitoso", login.Msg)
	assert.Equal(t, "profesor", login.Usuario.Rol, "role survives the login round trip")
	require.NotEmpty(t, login.Token)

	// Privileged call with the teacher token succeeds.
	resp, body := doJSON(t, http.MethodPost, ts.URL+"/materia", login.Token, dto.CreateCourseRequest{Nombre: "Álgebra"})
	assert.Equal(t, http.StatusOK, resp.StatusCode, "create course: %s", body)

	var created dto.CreateCourseResponse
	require.NoError(t, json.Unmarshal(body, &created))
	assert.Equal(t, "Materia registrada", created.Msg)
	assert.NotZero(t, created.Data.Codigo)
}

func TestPrivilegedRoutesRequireTeacherToken(t *testing.T) {
	ts := newTestServer(t)

	registerUser(t, ts.URL, "2020202020", "Estudiante Uno", "clave123", "estudiante")
	studentLogin := loginUser(t, ts.URL, "2020202020", "clave123")

	t.Run("no token is unauthorized", func(t *testing.T) {
		resp, body := doJSON(t, http.MethodPost, ts.URL+"/materia", "", dto.CreateCourseRequest{Nombre: "Física"})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		var msg dto.MessageResponse
		require.NoError(t, json.Unmarshal(body, &msg))
		assert.Equal(t, "Autenticación requerida", msg.Msg)
	})

	t.Run("student token is forbidden", func(t *testing.T) {
		resp, body := doJSON(t, http.MethodPost, ts.URL+"/materia", studentLogin.Token, dto.CreateCourseRequest{Nombre: "Física"})
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)

		var msg dto.MessageResponse
		require.NoError(t, json.Unmarshal(body, &msg))
		assert.Equal(t, "No tiene permisos para esta operación", msg.Msg)
	})

	t.Run("garbage token is unauthorized", func(t *testing.T) {
		resp, _ := doJSON(t, http.MethodDelete, ts.URL+"/usuarios/1", "no-es-un-token", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestLoginFailures(t *testing.T) {
	ts := newTestServer(t)
	registerUser(t, ts.URL, "3030303030", "Alguien", "clave123", "estudiante")

	t.Run("unknown cedula", func(t *testing.T) {
		resp, body := doJSON(t, http.MethodPost, ts.URL+"/login", "", dto.LoginRequest{Cedula: "0000", Clave: "x"})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		var msg dto.MessageResponse
		require.NoError(t, json.Unmarshal(body, &msg))
		assert.Equal(t, "Usuario no encontrado", msg.Msg)
	})

	t.Run("wrong password", func(t *testing.T) {
		resp, body := doJSON(t, http.MethodPost, ts.URL+"/login", "", dto.LoginRequest{Cedula: "3030303030", Clave: "mala"})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		var msg dto.MessageResponse
		require.NoError(t, json.Unmarshal(body, &msg))
		assert.Equal(t, "Contraseña incorrecta", msg.Msg)
	})

	t.Run("missing fields", func(t *testing.T) {
		resp, body := doJSON(t, http.MethodPost, ts.URL+"/login", "", map[string]string{"cedula": "3030303030"})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var msg dto.MessageResponse
		require.NoError(t, json.Unmarshal(body, &msg))
		assert.Equal(t, "Faltan datos obligatorios", msg.Msg)
	})
}

func TestRegisterValidationAndConflicts(t *testing.T) {
	ts := newTestServer(t)

	t.Run("invalid role", func(t *testing.T) {
		resp, body := doJSON(t, http.MethodPost, ts.URL+"/usuarios", "", dto.RegisterUserRequest{
			Cedula: "4040404040", Nombre: "Nadie", Clave: "clave123", Rol: "admin",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var msg dto.MessageResponse
		require.NoError(t, json.Unmarshal(body, &msg))
		assert.Contains(t, msg.Msg, "Rol inválido")
	})

	t.Run("duplicate cedula", func(t *testing.T) {
		registerUser(t, ts.URL, "5050505050", "Primero", "clave123", "estudiante")

		resp, body := doJSON(t, http.MethodPost, ts.URL+"/usuarios", "", dto.RegisterUserRequest{
			Cedula: "5050505050", Nombre: "Segundo", Clave: "clave123", Rol: "estudiante",
		})
		assert.Equal(t, http.StatusConflict, resp.StatusCode)

		var msg dto.MessageResponse
		require.NoError(t, json.Unmarshal(body, &msg))
		assert.Equal(t, "La cédula ya está registrada", msg.Msg)
	})
}

func TestUserListNeverExposesClave(t *testing.T) {
	ts := newTestServer(t)
	user := registerUser(t, ts.URL, "6060606060", "Visible", "clave123", "estudiante")

	resp, body := doJSON(t, http.MethodGet, ts.URL+"/usuarios", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotContains(t, string(body), "clave")

	resp, body = doJSON(t, http.MethodGet, ts.URL+"/usuarios/"+itoa(user.ID), "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotContains(t, string(body), "clave")
}

func TestUserLookupAndDelete(t *testing.T) {
	ts := newTestServer(t)

	registerUser(t, ts.URL, "7070707070", "Profe", "clave123", "profesor")
	victim := registerUser(t, ts.URL, "8080808080", "Borrable", "clave123", "estudiante")
	login := loginUser(t, ts.URL, "7070707070", "clave123")

	t.Run("missing id is 404", func(t *testing.T) {
		resp, body := doJSON(t, http.MethodGet, ts.URL+"/usuarios/9999", "", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		var msg dto.MessageResponse
		require.NoError(t, json.Unmarshal(body, &msg))
		assert.Equal(t, "Usuario no encontrado", msg.Msg)
	})

	t.Run("delete then get is 404", func(t *testing.T) {
		resp, _ := doJSON(t, http.MethodDelete, ts.URL+"/usuarios/"+itoa(victim.ID), login.Token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		resp, _ = doJSON(t, http.MethodGet, ts.URL+"/usuarios/"+itoa(victim.ID), "", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("delete absent id is 404", func(t *testing.T) {
		resp, _ := doJSON(t, http.MethodDelete, ts.URL+"/usuarios/"+itoa(victim.ID), login.Token, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("non-numeric id is 400", func(t *testing.T) {
		resp, _ := doJSON(t, http.MethodGet, ts.URL+"/usuarios/abc", "", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestCourseEndpoints(t *testing.T) {
	ts := newTestServer(t)

	registerUser(t, ts.URL, "9090909090", "Profe", "clave123", "profesor")
	login := loginUser(t, ts.URL, "9090909090", "clave123")

	for _, nombre := range []string{"Matemáticas", "Física"} {
		resp, body := doJSON(t, http.MethodPost, ts.URL+"/materia", login.Token, dto.CreateCourseRequest{Nombre: nombre})
		require.Equal(t, http.StatusOK, resp.StatusCode, "create %s: %s", nombre, body)
	}

	t.Run("case-insensitive duplicate is 409", func(t *testing.T) {
		resp, body := doJSON(t, http.MethodPost, ts.URL+"/materia", login.Token, dto.CreateCourseRequest{Nombre: "matemáticas"})
		assert.Equal(t, http.StatusConflict, resp.StatusCode)

		var msg dto.MessageResponse
		require.NoError(t, json.Unmarshal(body, &msg))
		assert.Equal(t, "La materia ya existe", msg.Msg)
	})

	t.Run("blank name is 400", func(t *testing.T) {
		resp, _ := doJSON(t, http.MethodPost, ts.URL+"/materia", login.Token, map[string]string{"nombre": ""})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("buscar filters the list", func(t *testing.T) {
		resp, body := doJSON(t, http.MethodGet, ts.URL+"/materia?buscar=mat", "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var courses []dto.CourseResponse
		require.NoError(t, json.Unmarshal(body, &courses))
		require.Len(t, courses, 1)
		assert.Equal(t, "Matemáticas", courses[0].Nombre)
	})

	t.Run("empty list is a JSON array", func(t *testing.T) {
		resp, body := doJSON(t, http.MethodGet, ts.URL+"/materia?buscar=nada", "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, "[]", string(body))
	})
}

func TestUpdateUserEndpoint(t *testing.T) {
	ts := newTestServer(t)

	registerUser(t, ts.URL, "1212121212", "Profe", "clave123", "profesor")
	student := registerUser(t, ts.URL, "1313131313", "Estudiante", "clave123", "estudiante")
	login := loginUser(t, ts.URL, "1212121212", "clave123")

	newRol := "profesor"
	resp, body := doJSON(t, http.MethodPut, ts.URL+"/usuarios/"+itoa(student.ID), login.Token, dto.UpdateUserRequest{
		Cedula: "1313131313",
		Nombre: "Promovido",
		Rol:    &newRol,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, "update: %s", body)

	var out dto.UpdateUserResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "Usuario actualizado", out.Msg)
	assert.Equal(t, "Promovido", out.Usuario.Nombre)
	assert.Equal(t, "profesor", out.Usuario.Rol)

	t.Run("update absent id is 404", func(t *testing.T) {
		resp, _ := doJSON(t, http.MethodPut, ts.URL+"/usuarios/9999", login.Token, dto.UpdateUserRequest{
			Cedula: "x", Nombre: "y",
		})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
