package models

// Course represents an academic unit ('materia' table). Names are
// unique ignoring case; the code is server-assigned.
type Course struct {
	Codigo int64  `json:"codigo" db:"codigo"`
	Nombre string `json:"nombre" db:"nombre"`
}
