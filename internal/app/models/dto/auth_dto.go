package dto

// LoginRequest represents login credentials.
type LoginRequest struct {
	Cedula string `json:"cedula" binding:"required"`
	Clave  string `json:"clave" binding:"required"`
}

// LoginResponse is the login success body. Usuario never carries the
// password hash. Token feeds the role checks on privileged endpoints.
type LoginResponse struct {
	Msg     string       `json:"msg"`
	Usuario UserResponse `json:"usuario"`
	Token   string       `json:"token,omitempty"`
}
