package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/naybriones202/registro-academico/internal/app/models/dto"
	"github.com/naybriones202/registro-academico/internal/app/services"
	"github.com/naybriones202/registro-academico/internal/middleware"
)

// CourseController handles course ('materia') operations.
type CourseController struct {
	courseService *services.CourseService
	logger        zerolog.Logger
}

// NewCourseController creates a new CourseController.
func NewCourseController(courseService *services.CourseService, logger zerolog.Logger) *CourseController {
	return &CourseController{
		courseService: courseService,
		logger:        logger,
	}
}

// Create registers a new course.
// @Summary Register a course
// @Tags materia
// @Accept json
// @Produce json
// @Router /materia [post]
func (c *CourseController) Create(ctx *gin.Context) {
	var req dto.CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid course request payload")
		ctx.JSON(http.StatusBadRequest, dto.MessageResponse{Msg: "Nombre obligatorio"})
		return
	}

	course, err := c.courseService.RegisterCourse(ctx.Request.Context(), req.Nombre)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.CreateCourseResponse{
		Msg:  "Materia registrada",
		Data: dto.NewCourseResponse(course),
	})
}

// List returns courses ascending by codigo, optionally filtered by the
// 'buscar' query parameter.
// @Summary List courses
// @Tags materia
// @Produce json
// @Router /materia [get]
func (c *CourseController) List(ctx *gin.Context) {
	courses, err := c.courseService.ListCourses(ctx.Request.Context(), ctx.Query("buscar"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.CourseResponse, 0, len(courses))
	for _, course := range courses {
		responses = append(responses, dto.NewCourseResponse(course))
	}

	ctx.JSON(http.StatusOK, responses)
}
