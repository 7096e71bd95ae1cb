package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/naybriones202/registro-academico/internal/app/models/dto"
)

// HandleBindingError writes the 400 response for a failed JSON bind.
// Missing required fields get the canonical message; malformed JSON
// gets a generic one.
func HandleBindingError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Msg: "Faltan datos obligatorios"})
		return
	}
	c.JSON(http.StatusBadRequest, dto.MessageResponse{Msg: "Datos de solicitud inválidos"})
}
