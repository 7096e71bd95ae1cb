package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/naybriones202/registro-academico/internal/app/models/dto"
)

// ErrConnectivity is the generic message shown when the service could
// not be reached at all.
const ErrConnectivity = "No se pudo conectar con el servidor"

// APIError carries the status and message of a rejected request.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// Client is the HTTP client for the academic records service.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

// NewClient creates a client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// SetToken stores the bearer token sent on subsequent requests. An
// empty string clears it.
func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) do(method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrConnectivity, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrConnectivity, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Message: extractMessage(data)}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return err
		}
	}
	return nil
}

// extractMessage pulls the msg or error field out of a failure body,
// falling back to the connectivity message.
func extractMessage(data []byte) string {
	var body struct {
		Msg   string `json:"msg"`
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err == nil {
		if body.Msg != "" {
			return body.Msg
		}
		if body.Error != "" {
			return body.Error
		}
	}
	return ErrConnectivity
}

// Login authenticates and returns the login response. The bearer token
// of a successful login is retained for later privileged calls.
func (c *Client) Login(cedula, clave string) (*dto.LoginResponse, error) {
	var resp dto.LoginResponse
	err := c.do(http.MethodPost, "/login", dto.LoginRequest{Cedula: cedula, Clave: clave}, &resp)
	if err != nil {
		return nil, err
	}
	c.token = resp.Token
	return &resp, nil
}

// RegisterUser creates a user account.
func (c *Client) RegisterUser(req dto.RegisterUserRequest) (*dto.RegisterUserResponse, error) {
	var resp dto.RegisterUserResponse
	if err := c.do(http.MethodPost, "/usuarios", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateUser modifies an existing user account.
func (c *Client) UpdateUser(id int64, req dto.UpdateUserRequest) (*dto.UpdateUserResponse, error) {
	var resp dto.UpdateUserResponse
	if err := c.do(http.MethodPut, fmt.Sprintf("/usuarios/%d", id), req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListUsers returns all user accounts.
func (c *Client) ListUsers() ([]dto.UserResponse, error) {
	var users []dto.UserResponse
	if err := c.do(http.MethodGet, "/usuarios", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetUser returns one user account by id.
func (c *Client) GetUser(id int64) (*dto.UserResponse, error) {
	var user dto.UserResponse
	if err := c.do(http.MethodGet, fmt.Sprintf("/usuarios/%d", id), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes a user account by id.
func (c *Client) DeleteUser(id int64) error {
	return c.do(http.MethodDelete, fmt.Sprintf("/usuarios/%d", id), nil, nil)
}

// CreateCourse registers a course.
func (c *Client) CreateCourse(nombre string) (*dto.CreateCourseResponse, error) {
	var resp dto.CreateCourseResponse
	if err := c.do(http.MethodPost, "/materia", dto.CreateCourseRequest{Nombre: nombre}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListCourses returns courses, optionally name-filtered on the server.
func (c *Client) ListCourses(buscar string) ([]dto.CourseResponse, error) {
	path := "/materia"
	if buscar != "" {
		path += "?buscar=" + url.QueryEscape(buscar)
	}
	var courses []dto.CourseResponse
	if err := c.do(http.MethodGet, path, nil, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}
