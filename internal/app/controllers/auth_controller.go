// Package controllers handles HTTP request handling
package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/naybriones202/registro-academico/internal/app/models/dto"
	"github.com/naybriones202/registro-academico/internal/app/services"
	"github.com/naybriones202/registro-academico/internal/middleware"
	"github.com/naybriones202/registro-academico/internal/pkg/apperrors"
	"github.com/naybriones202/registro-academico/internal/pkg/auth"
)

// AuthController handles authentication related operations.
type AuthController struct {
	authService *services.AuthService
	jwtService  *auth.JWTService
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController.
func NewAuthController(authService *services.AuthService, jwtService *auth.JWTService, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		jwtService:  jwtService,
		logger:      logger,
	}
}

// Login verifies credentials and returns the public user plus a token.
// @Summary User login
// @Tags auth
// @Accept json
// @Produce json
// @Router /login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid login request payload")
		middleware.HandleBindingError(ctx, err)
		return
	}

	user, err := c.authService.Authenticate(ctx.Request.Context(), req.Cedula, req.Clave)
	if err != nil {
		// Both failures are 401 on this endpoint; the body tells
		// the caller which one.
		switch {
		case errors.Is(err, apperrors.ErrUserNotFound):
			ctx.JSON(http.StatusUnauthorized, dto.MessageResponse{Msg: "Usuario no encontrado"})
		case errors.Is(err, apperrors.ErrInvalidCredentials):
			c.logger.Warn().Str("cedula", req.Cedula).Msg("Login with wrong password")
			ctx.JSON(http.StatusUnauthorized, dto.MessageResponse{Msg: "Contraseña incorrecta"})
		default:
			middleware.HandleAPIError(ctx, err)
		}
		return
	}

	token, err := c.jwtService.GenerateToken(user)
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to generate token")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Str("cedula", user.Cedula).Str("rol", string(user.Rol)).Msg("User logged in")

	ctx.JSON(http.StatusOK, dto.LoginResponse{
		Msg:     "Ingreso exitoso",
		Usuario: dto.NewUserResponse(user),
		Token:   token,
	})
}
