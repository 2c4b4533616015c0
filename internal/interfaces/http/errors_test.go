package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/opme-consignado/internal/application/dto"
	"github.com/jhoicas/opme-consignado/internal/domain"
)

func TestWriteError_MapeaErroresDeDominio(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{"entrada inválida", domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION", "dados inválidos"},
		{"no encontrado", domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND", "recurso não encontrado"},
		{"persistencia", &domain.PersistenceError{Op: "x", Cause: errors.New("down")}, fiber.StatusInternalServerError, "PERSISTENCE", "falha ao acessar o banco de dados"},
		{"sync en curso", domain.ErrSyncInProgress, fiber.StatusConflict, "SYNC_IN_PROGRESS", ""},
		{"servicio", &domain.ServiceError{Op: "list", StatusCode: 503, Cause: errors.New("x")}, fiber.StatusBadGateway, "SERVICE", ""},
		{"malformado", domain.NewMalformedInputError("ide/nNF", "ausente", nil), fiber.StatusBadRequest, "MALFORMED_XML", ""},
		{"otro", errors.New("boom"), fiber.StatusInternalServerError, "INTERNAL", "boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error { return writeError(c, tt.err) })

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil), -1)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			var out dto.ErrorResponse
			require.NoError(t, json.Unmarshal(body, &out))
			assert.Equal(t, tt.code, out.Code)
			if tt.message != "" {
				assert.Equal(t, tt.message, out.Message)
			}
		})
	}
}
