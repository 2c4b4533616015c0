package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/opme-consignado/internal/application/consignment"
	"github.com/jhoicas/opme-consignado/internal/application/dto"
	pkgnfe "github.com/jhoicas/opme-consignado/pkg/nfe"
)

const (
	mimePDF  = "application/pdf"
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// BalanceHandler consultas y reportes del saldo de consignación.
type BalanceHandler struct {
	uc     *consignment.BalanceUseCase
	report *consignment.ReportUseCase
}

// NewBalanceHandler construye el handler.
func NewBalanceHandler(uc *consignment.BalanceUseCase, report *consignment.ReportUseCase) *BalanceHandler {
	return &BalanceHandler{uc: uc, report: report}
}

// clientFilter lee y normaliza ?cnpj_cliente= (acepta máscara 00.000.000/0000-00).
func clientFilter(c *fiber.Ctx) (string, map[string]string) {
	q := dto.BalanceQuery{CNPJCliente: pkgnfe.OnlyDigits(c.Query("cnpj_cliente"))}
	if c.Query("cnpj_cliente") != "" && q.CNPJCliente == "" {
		return "", map[string]string{"cnpjcliente": "numeric"}
	}
	if fields := validateStruct(q); fields != nil {
		return "", fields
	}
	return q.CNPJCliente, nil
}

// Balance godoc
// @Summary      Saldo de consignación
// @Description  Saldo neto por cliente, producto y lote (entradas 5102/6102 menos retornos 5405/6405).
// @Tags         estoque
// @Produce      json
// @Param        cnpj_cliente  query  string  false  "CNPJ/CPF del cliente (solo dígitos o con máscara)"
// @Success      200  {array}   entity.BalanceEntry
// @Failure      400  {object}  dto.ValidationErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/balance [get]
func (h *BalanceHandler) Balance(c *fiber.Ctx) error {
	cnpj, fields := clientFilter(c)
	if fields != nil {
		return validationError(c, fields)
	}
	entries, err := h.uc.Balance(c.Context(), cnpj)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(entries)
}

// Movements godoc
// @Summary      Movimientos de consignación
// @Tags         estoque
// @Produce      json
// @Param        cnpj_cliente  query  string  false  "CNPJ/CPF del cliente"
// @Success      200  {array}   dto.MovementDTO
// @Failure      400  {object}  dto.ValidationErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/movements [get]
func (h *BalanceHandler) Movements(c *fiber.Ctx) error {
	cnpj, fields := clientFilter(c)
	if fields != nil {
		return validationError(c, fields)
	}
	movs, err := h.uc.Movements(c.Context(), cnpj)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.MovementDTO, 0, len(movs))
	for _, m := range movs {
		out = append(out, dto.MovementFromEntity(m))
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Resumen de estoque consignado
// @Tags         estoque
// @Produce      json
// @Success      200  {array}   entity.BalanceEntry
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/estoque/resumo [get]
func (h *BalanceHandler) Summary(c *fiber.Ctx) error {
	entries, err := h.uc.Summary(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(entries)
}

// ByProduct GET /api/estoque/produto/:codigo
func (h *BalanceHandler) ByProduct(c *fiber.Ctx) error {
	views, err := h.uc.ByProduct(c.Context(), c.Params("codigo"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(views)
}

// ByClient GET /api/estoque/cliente/:cnpj
func (h *BalanceHandler) ByClient(c *fiber.Ctx) error {
	views, err := h.uc.ByClient(c.Context(), pkgnfe.OnlyDigits(c.Params("cnpj")))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(views)
}

// SummaryPDF godoc
// @Summary      Resumen de estoque en PDF
// @Tags         estoque
// @Produce      application/pdf
// @Param        cnpj_cliente  query  string  false  "CNPJ/CPF del cliente"
// @Success      200
// @Failure      400  {object}  dto.ValidationErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/estoque/resumo/pdf [get]
func (h *BalanceHandler) SummaryPDF(c *fiber.Ctx) error {
	cnpj, fields := clientFilter(c)
	if fields != nil {
		return validationError(c, fields)
	}
	b, err := h.report.SummaryPDF(c.Context(), cnpj)
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, b, mimePDF, "pdf")
}

// SummaryXLSX GET /api/estoque/resumo/xlsx
func (h *BalanceHandler) SummaryXLSX(c *fiber.Ctx) error {
	cnpj, fields := clientFilter(c)
	if fields != nil {
		return validationError(c, fields)
	}
	b, err := h.report.SummaryXLSX(c.Context(), cnpj)
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, b, mimeXLSX, "xlsx")
}

// ClientXLSX GET /api/estoque/cliente/:cnpj/xlsx
func (h *BalanceHandler) ClientXLSX(c *fiber.Ctx) error {
	b, err := h.report.ClientMovementsXLSX(c.Context(), pkgnfe.OnlyDigits(c.Params("cnpj")))
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, b, mimeXLSX, "xlsx")
}

func sendFile(c *fiber.Ctx, b []byte, mime, ext string) error {
	name := fmt.Sprintf("estoque_consignado_%s.%s", time.Now().Format("20060102"), ext)
	c.Set(fiber.HeaderContentType, mime)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, name))
	return c.Send(b)
}
