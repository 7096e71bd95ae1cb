package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/naybriones202/registro-academico/internal/app/models/dto"
	"github.com/naybriones202/registro-academico/internal/pkg/auth"
)

// Context keys set by JWTAuth.
const (
	ContextUserID = "userID"
	ContextCedula = "cedula"
	ContextRol    = "rol"
)

// AuthMiddleware guards privileged routes. Hiding affordances in the
// client is presentation only; the role is re-checked here on every
// privileged request.
type AuthMiddleware struct {
	jwtService *auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware.
func NewAuthMiddleware(jwtService *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

// JWTAuth validates the bearer token and stores the caller identity in
// the request context.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.MessageResponse{Msg: "Autenticación requerida"})
			return
		}

		tokenString, err := auth.ExtractBearerToken(authHeader)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.MessageResponse{Msg: "Autenticación requerida"})
			return
		}

		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			msg := "Autenticación requerida"
			if errors.Is(err, auth.ErrExpiredToken) {
				msg = "Sesión expirada"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.MessageResponse{Msg: msg})
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextCedula, claims.Cedula)
		c.Set(ContextRol, claims.Rol)

		c.Next()
	}
}

// RoleRequired rejects callers whose token does not carry the required
// role. Must run after JWTAuth.
func (m *AuthMiddleware) RoleRequired(requiredRol string) gin.HandlerFunc {
	return func(c *gin.Context) {
		rol, exists := c.Get(ContextRol)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.MessageResponse{Msg: "Autenticación requerida"})
			return
		}

		rolStr, ok := rol.(string)
		if !ok || rolStr != requiredRol {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.MessageResponse{Msg: "No tiene permisos para esta operación"})
			return
		}

		c.Next()
	}
}
