package client

import (
	"errors"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/naybriones202/registro-academico/internal/app/models"
	"github.com/naybriones202/registro-academico/internal/app/models/dto"
)

// State is the session lifecycle phase.
type State int

const (
	StateUnauthenticated State = iota
	StateAuthenticating
	StateAuthenticated
)

// Renderer receives view updates whenever a backing collection or the
// session itself changes.
type Renderer interface {
	RenderSession(user *dto.UserResponse, privileged bool)
	RenderUsers(users []dto.UserResponse)
	RenderCourses(courses []dto.CourseResponse)
	RenderMessage(msg string)
	RenderError(msg string)
}

// ErrLoginInFlight is returned when a login is submitted while another
// one has not resolved yet.
var ErrLoginInFlight = errors.New("ya hay un inicio de sesión en curso")

// Controller owns the in-memory view of the current user and the
// cached user and course lists, and mediates all calls to the service.
type Controller struct {
	api      *Client
	store    *SessionStore
	renderer Renderer
	logger   zerolog.Logger

	mu      sync.Mutex
	state   State
	current *dto.UserResponse
	users   []dto.UserResponse
	courses []dto.CourseResponse
	filter  string
}

// NewController wires the API client, session store and renderer.
func NewController(api *Client, store *SessionStore, renderer Renderer, logger zerolog.Logger) *Controller {
	return &Controller{
		api:      api,
		store:    store,
		renderer: renderer,
		logger:   logger,
		state:    StateUnauthenticated,
	}
}

// State returns the current session phase.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// CurrentUser returns the authenticated user, nil before login.
func (c *Controller) CurrentUser() *dto.UserResponse {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return nil
	}
	user := *c.current
	return &user
}

// CanManage reports whether the current user may see privileged
// affordances. This gates presentation only; the service enforces its
// own authorization.
func (c *Controller) CanManage() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current != nil && c.current.Rol == string(models.RoleTeacher)
}

// Restore loads a persisted session and, when present, treats it as an
// already authenticated session without contacting the service.
func (c *Controller) Restore() bool {
	session, err := c.store.Load()
	if err != nil || session == nil {
		return false
	}

	c.mu.Lock()
	c.state = StateAuthenticated
	c.current = &session.Usuario
	c.mu.Unlock()

	c.api.SetToken(session.Token)
	c.logger.Debug().Str("cedula", session.Usuario.Cedula).Msg("Session restored from cache")
	c.renderer.RenderSession(&session.Usuario, c.CanManage())
	return true
}

// Login authenticates asynchronously. The returned channel resolves
// with nil on success or the failure error. Only one login may be in
// flight; further submissions resolve immediately with
// ErrLoginInFlight.
func (c *Controller) Login(cedula, clave string) <-chan error {
	result := make(chan error, 1)

	c.mu.Lock()
	if c.state == StateAuthenticating {
		c.mu.Unlock()
		result <- ErrLoginInFlight
		return result
	}
	c.state = StateAuthenticating
	c.mu.Unlock()

	go func() {
		resp, err := c.api.Login(cedula, clave)
		if err != nil {
			c.mu.Lock()
			c.state = StateUnauthenticated
			c.mu.Unlock()
			c.renderer.RenderError(loginFailureMessage(err))
			result <- err
			return
		}

		c.mu.Lock()
		c.state = StateAuthenticated
		user := resp.Usuario
		c.current = &user
		c.mu.Unlock()

		if err := c.store.Save(&Session{Usuario: resp.Usuario, Token: resp.Token}); err != nil {
			c.logger.Warn().Err(err).Msg("Failed to persist session cache")
		}

		c.renderer.RenderSession(&user, c.CanManage())
		result <- nil
	}()

	return result
}

// loginFailureMessage prefers the server-supplied message and falls
// back to the generic connectivity message.
func loginFailureMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ErrConnectivity
}

// Logout clears the persisted cache and resets to the
// unauthenticated view.
func (c *Controller) Logout() {
	if err := c.store.Clear(); err != nil {
		c.logger.Warn().Err(err).Msg("Failed to clear session cache")
	}
	c.api.SetToken("")

	c.mu.Lock()
	c.state = StateUnauthenticated
	c.current = nil
	c.users = nil
	c.courses = nil
	c.filter = ""
	c.mu.Unlock()

	c.renderer.RenderSession(nil, false)
}

// LoadUsers fetches the full user list and re-renders it through the
// active filter.
func (c *Controller) LoadUsers() error {
	users, err := c.api.ListUsers()
	if err != nil {
		c.renderer.RenderError(err.Error())
		return err
	}

	c.mu.Lock()
	c.users = users
	c.mu.Unlock()

	c.renderer.RenderUsers(c.FilteredUsers())
	return nil
}

// LoadCourses fetches the course list and re-renders it.
func (c *Controller) LoadCourses() error {
	courses, err := c.api.ListCourses("")
	if err != nil {
		c.renderer.RenderError(err.Error())
		return err
	}

	c.mu.Lock()
	c.courses = courses
	c.mu.Unlock()

	c.renderer.RenderCourses(courses)
	return nil
}

// SetFilter applies a live filter over the already loaded user list
// and re-renders without a network round trip.
func (c *Controller) SetFilter(query string) {
	c.mu.Lock()
	c.filter = query
	c.mu.Unlock()

	c.renderer.RenderUsers(c.FilteredUsers())
}

// FilteredUsers matches case-insensitively on nombre and by raw
// substring on cedula.
func (c *Controller) FilteredUsers() []dto.UserResponse {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.filter == "" {
		return append([]dto.UserResponse(nil), c.users...)
	}

	lowered := strings.ToLower(c.filter)
	matched := make([]dto.UserResponse, 0, len(c.users))
	for _, user := range c.users {
		if strings.Contains(strings.ToLower(user.Nombre), lowered) ||
			strings.Contains(user.Cedula, c.filter) {
			matched = append(matched, user)
		}
	}
	return matched
}

// DeleteUser asks for confirmation, issues the delete and reloads the
// user list from the service. There is no optimistic local removal.
func (c *Controller) DeleteUser(id int64, confirm func() bool) error {
	if confirm != nil && !confirm() {
		return nil
	}

	if err := c.api.DeleteUser(id); err != nil {
		c.renderer.RenderError(err.Error())
		return err
	}

	return c.LoadUsers()
}

// CreateCourse registers a course from non-blank input, surfaces the
// service message and reloads the course list on success.
func (c *Controller) CreateCourse(nombre string) error {
	if strings.TrimSpace(nombre) == "" {
		err := errors.New("Nombre obligatorio")
		c.renderer.RenderError(err.Error())
		return err
	}

	resp, err := c.api.CreateCourse(nombre)
	if err != nil {
		c.renderer.RenderError(err.Error())
		return err
	}

	c.renderer.RenderMessage(resp.Msg)
	return c.LoadCourses()
}
