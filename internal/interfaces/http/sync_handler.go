package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/opme-consignado/internal/application/dto"
	"github.com/jhoicas/opme-consignado/internal/application/nfesync"
)

// SyncHandler dispara la sincronización con el emisor (Maino).
type SyncHandler struct {
	orch        *nfesync.Orchestrator
	defaultDays int
}

// NewSyncHandler construye el handler. orch puede ser nil si no hay credenciales del emisor.
func NewSyncHandler(orch *nfesync.Orchestrator, defaultDays int) *SyncHandler {
	return &SyncHandler{orch: orch, defaultDays: defaultDays}
}

// Sync godoc
// @Summary      Sincronizar NF-e emitidas
// @Description  Lista las NF-e emitidas en los últimos "dias" (1..90), descarga cada XML y lo ingiere.
//               Errores por nota quedan en "erros"; una falla del listado devuelve 502 con el reporte.
// @Tags         maino
// @Accept       json
// @Produce      json
// @Param        body  body   dto.SyncRequest  false  "dias (default configurable)"
// @Param        dias  query  int              false  "alternativa al cuerpo"
// @Success      200   {object}  entity.SyncReport
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Failure      409   {object}  entity.SyncReport
// @Failure      502   {object}  entity.SyncReport
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/maino/sync [post]
func (h *SyncHandler) Sync(c *fiber.Ctx) error {
	if h.orch == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "SYNC_DISABLED", Message: "integração Maino não configurada"})
	}

	var in dto.SyncRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
		}
	}
	if in.Dias == 0 && c.Query("dias") != "" {
		if err := c.QueryParser(&in); err != nil {
			return validationError(c, map[string]string{"dias": "numeric"})
		}
	}
	if fields := validateStruct(in); fields != nil {
		return validationError(c, fields)
	}
	if in.Dias == 0 {
		in.Dias = h.defaultDays
	}

	report := h.orch.SyncWindow(c.Context(), in.Dias)
	switch {
	case report.InProgress:
		return c.Status(fiber.StatusConflict).JSON(report)
	case report.Failed:
		return c.Status(fiber.StatusBadGateway).JSON(report)
	}
	return c.JSON(report)
}
