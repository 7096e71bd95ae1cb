package dto

import "github.com/naybriones202/registro-academico/internal/app/models"

// CreateCourseRequest represents a course registration request.
type CreateCourseRequest struct {
	Nombre string `json:"nombre" binding:"required"`
}

// CourseResponse mirrors the 'materia' row on the wire.
type CourseResponse struct {
	Codigo int64  `json:"codigo"`
	Nombre string `json:"nombre"`
}

// NewCourseResponse converts a course model to its wire shape.
func NewCourseResponse(course *models.Course) CourseResponse {
	return CourseResponse{Codigo: course.Codigo, Nombre: course.Nombre}
}

// CreateCourseResponse is the course registration success body.
type CreateCourseResponse struct {
	Msg  string         `json:"msg"`
	Data CourseResponse `json:"data"`
}
