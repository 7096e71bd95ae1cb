package apperrors

import "errors"

// Authentication errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrPermissionDenied   = errors.New("permission denied")
)

// User errors
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrCedulaAlreadyExists = errors.New("cedula already registered")
	ErrInvalidRole         = errors.New("invalid role")
)

// Course errors
var (
	ErrCourseAlreadyExists = errors.New("course already exists")
)

// Validation errors
var (
	ErrValidationFailed = errors.New("validation failed")
)

// CustomError wraps a sentinel error with a user-facing message.
type CustomError struct {
	Err     error
	Message string
}

// Error implements the error interface.
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap supports errors.Is against the wrapped sentinel.
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a validation failure with a message.
func NewValidationError(message string) error {
	return &CustomError{Err: ErrValidationFailed, Message: message}
}

// NewCustomError wraps err with a message.
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{Err: err, Message: message}
}
