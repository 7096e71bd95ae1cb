package models

// RoleType defines the account role. The set is closed: only students
// and teachers can be created through the public API.
type RoleType string

const (
	RoleStudent RoleType = "estudiante"
	RoleTeacher RoleType = "profesor"
)

// IsValid reports whether the role is one of the two allowed values.
func (r RoleType) IsValid() bool {
	return r == RoleStudent || r == RoleTeacher
}

// User defines the user model based on the 'usuarios' table.
type User struct {
	ID     int64    `json:"id" db:"id"`
	Cedula string   `json:"cedula" db:"cedula"` // national id, natural login key
	Nombre string   `json:"nombre" db:"nombre"` // display name
	Clave  string   `json:"-" db:"clave"`       // bcrypt hash, never serialized
	Rol    RoleType `json:"rol" db:"rol"`
}

// Student is the role extension row in the 'estudiantes' table. Every
// user with RoleStudent has exactly one.
type Student struct {
	ID     int64 `json:"id" db:"id"`
	UserID int64 `json:"usuarioId" db:"usuario_id"`
}

// Teacher is the role extension row in the 'profesores' table. Every
// user with RoleTeacher has exactly one.
type Teacher struct {
	ID     int64 `json:"id" db:"id"`
	UserID int64 `json:"usuarioId" db:"usuario_id"`
}
