package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/naybriones202/registro-academico/internal/app/models/dto"
	"github.com/naybriones202/registro-academico/internal/app/services"
	"github.com/naybriones202/registro-academico/internal/middleware"
)

// UserController handles account CRUD operations.
type UserController struct {
	userService *services.UserService
	logger      zerolog.Logger
}

// NewUserController creates a new UserController.
func NewUserController(userService *services.UserService, logger zerolog.Logger) *UserController {
	return &UserController{
		userService: userService,
		logger:      logger,
	}
}

func parseIDParam(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.MessageResponse{Msg: "Identificador inválido"})
		return 0, false
	}
	return id, true
}

// Register creates a new account with its role extension row.
// @Summary Register a user (estudiante or profesor)
// @Tags usuarios
// @Accept json
// @Produce json
// @Router /usuarios [post]
func (c *UserController) Register(ctx *gin.Context) {
	var req dto.RegisterUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid register request payload")
		middleware.HandleBindingError(ctx, err)
		return
	}

	user, err := c.userService.Register(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.RegisterUserResponse{
		Msg:  "Usuario registrado correctamente",
		Data: dto.NewUserResponse(user),
	})
}

// Update rewrites an account; clave and rol are optional.
// @Summary Update a user
// @Tags usuarios
// @Accept json
// @Produce json
// @Router /usuarios/{id} [put]
func (c *UserController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid update request payload")
		middleware.HandleBindingError(ctx, err)
		return
	}

	user, err := c.userService.Update(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.UpdateUserResponse{
		Msg:     "Usuario actualizado",
		Usuario: dto.NewUserResponse(user),
	})
}

// List returns all accounts ascending by id.
// @Summary List users
// @Tags usuarios
// @Produce json
// @Router /usuarios [get]
func (c *UserController) List(ctx *gin.Context) {
	users, err := c.userService.List(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, dto.NewUserResponse(user))
	}

	ctx.JSON(http.StatusOK, responses)
}

// GetByID returns a single account.
// @Summary Get user by ID
// @Tags usuarios
// @Produce json
// @Router /usuarios/{id} [get]
func (c *UserController) GetByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	user, err := c.userService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// Delete removes an account.
// @Summary Delete a user
// @Tags usuarios
// @Produce json
// @Router /usuarios/{id} [delete]
func (c *UserController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if err := c.userService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Msg: "Usuario eliminado"})
}
