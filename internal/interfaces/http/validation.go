package http

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/opme-consignado/internal/application/dto"
)

var validate = validator.New()

// validateStruct valida v con las etiquetas `validate`. Devuelve nil si es válido, o el mapa
// campo → regla violada.
func validateStruct(v any) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return map[string]string{"_": err.Error()}
	}
	out := make(map[string]string, len(vErrs))
	for _, fe := range vErrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		out[strings.ToLower(fe.Field())] = rule
	}
	return out
}

func validationError(c *fiber.Ctx, fields map[string]string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ValidationErrorResponse{
		Code:    "VALIDATION",
		Message: "parâmetros inválidos",
		Fields:  fields,
	})
}
