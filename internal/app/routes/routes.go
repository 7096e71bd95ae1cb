package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/naybriones202/registro-academico/internal/app/controllers"
	"github.com/naybriones202/registro-academico/internal/app/models"
	"github.com/naybriones202/registro-academico/internal/middleware"
)

// SetupRouter configures all application routes. Paths are kept at the
// root to stay compatible with existing clients.
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	courseController *controllers.CourseController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// Public routes
	router.POST("/login", authController.Login)
	router.POST("/usuarios", userController.Register)
	router.GET("/usuarios", userController.List)
	router.GET("/usuarios/:id", userController.GetByID)
	router.GET("/materia", courseController.List)

	// Privileged routes: the caller must present a profesor token.
	teacherOnly := router.Group("")
	teacherOnly.Use(authMiddleware.JWTAuth(), authMiddleware.RoleRequired(string(models.RoleTeacher)))
	{
		teacherOnly.PUT("/usuarios/:id", userController.Update)
		teacherOnly.DELETE("/usuarios/:id", userController.Delete)
		teacherOnly.POST("/materia", courseController.Create)
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}
