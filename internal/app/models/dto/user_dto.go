package dto

import "github.com/naybriones202/registro-academico/internal/app/models"

// RegisterUserRequest represents an account registration request.
type RegisterUserRequest struct {
	Cedula string `json:"cedula" binding:"required"`
	Nombre string `json:"nombre" binding:"required"`
	Clave  string `json:"clave" binding:"required"`
	Rol    string `json:"rol" binding:"required"`
}

// UpdateUserRequest represents a partial account update. Clave and Rol
// are pointers so their absence can be told apart from an empty value:
// a missing clave keeps the stored hash, a missing rol keeps the role.
type UpdateUserRequest struct {
	Cedula string  `json:"cedula" binding:"required"`
	Nombre string  `json:"nombre" binding:"required"`
	Clave  *string `json:"clave,omitempty"`
	Rol    *string `json:"rol,omitempty"`
}

// UserResponse is the public user representation. It never includes
// the password hash.
type UserResponse struct {
	ID     int64  `json:"id"`
	Cedula string `json:"cedula"`
	Nombre string `json:"nombre"`
	Rol    string `json:"rol"`
}

// NewUserResponse strips a user down to its public fields.
func NewUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:     user.ID,
		Cedula: user.Cedula,
		Nombre: user.Nombre,
		Rol:    string(user.Rol),
	}
}

// MessageResponse is the {msg} body used by mutations and errors.
type MessageResponse struct {
	Msg string `json:"msg"`
}

// RegisterUserResponse is the registration success body.
type RegisterUserResponse struct {
	Msg  string       `json:"msg"`
	Data UserResponse `json:"data"`
}

// UpdateUserResponse is the update success body.
type UpdateUserResponse struct {
	Msg     string       `json:"msg"`
	Usuario UserResponse `json:"usuario"`
}
