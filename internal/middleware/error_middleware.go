package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/naybriones202/registro-academico/internal/app/models/dto"
	"github.com/naybriones202/registro-academico/internal/pkg/apperrors"
)

// HandleAPIError maps domain errors to the HTTP status and {msg} body
// the API promises. Anything unrecognized becomes a 500 with an
// {error} body; no error reaches the transport layer unmapped.
func HandleAPIError(c *gin.Context, err error) {
	var custom *apperrors.CustomError

	switch {
	case errors.Is(err, apperrors.ErrUserNotFound):
		c.JSON(http.StatusNotFound, dto.MessageResponse{Msg: "Usuario no encontrado"})
	case errors.Is(err, apperrors.ErrCedulaAlreadyExists):
		c.JSON(http.StatusConflict, dto.MessageResponse{Msg: "La cédula ya está registrada"})
	case errors.Is(err, apperrors.ErrCourseAlreadyExists):
		c.JSON(http.StatusConflict, dto.MessageResponse{Msg: "La materia ya existe"})
	case errors.Is(err, apperrors.ErrInvalidRole):
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Msg: "Rol inválido. Solo se permite: 'estudiante' o 'profesor'"})
	case errors.Is(err, apperrors.ErrValidationFailed):
		msg := "Faltan datos obligatorios"
		if errors.As(err, &custom) && custom.Message != "" {
			msg = custom.Message
		}
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Msg: msg})
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, dto.MessageResponse{Msg: "Contraseña incorrecta"})
	case errors.Is(err, apperrors.ErrTokenExpired), errors.Is(err, apperrors.ErrTokenInvalid):
		c.JSON(http.StatusUnauthorized, dto.MessageResponse{Msg: "Autenticación requerida"})
	case errors.Is(err, apperrors.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, dto.MessageResponse{Msg: "No tiene permisos para esta operación"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
