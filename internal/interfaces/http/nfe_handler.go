package http

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/opme-consignado/internal/application/consignment"
	"github.com/jhoicas/opme-consignado/internal/application/dto"
)

// maxXMLSize tamaño máximo aceptado para un XML de NF-e.
const maxXMLSize = 10 << 20

// NFeHandler maneja la carga manual de XML de NF-e.
type NFeHandler struct {
	uc *consignment.IngestNFeUseCase
}

// NewNFeHandler construye el handler.
func NewNFeHandler(uc *consignment.IngestNFeUseCase) *NFeHandler {
	return &NFeHandler{uc: uc}
}

// Upload godoc
// @Summary      Cargar XML de NF-e
// @Description  Recibe un XML de NF-e (multipart, campo "file") y registra cabecera y líneas.
//               Una NF-e cuyo número ya existe no se vuelve a escribir (200, created=false).
// @Tags         nfe
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Archivo .xml de la NF-e"
// @Success      201   {object}  dto.UploadXMLResponse
// @Success      200   {object}  dto.UploadXMLResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/upload_xml [post]
func (h *NFeHandler) Upload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "NO_FILE", Message: "nenhum arquivo enviado"})
	}
	if fh.Filename == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "NO_FILE", Message: "nenhum arquivo selecionado"})
	}
	if !strings.EqualFold(filepath.Ext(fh.Filename), ".xml") {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "arquivo deve ser XML"})
	}
	if fh.Size > maxXMLSize {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(dto.ErrorResponse{Code: "FILE_TOO_LARGE", Message: "arquivo excede 10 MB"})
	}

	f, err := fh.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "não foi possível ler o arquivo"})
	}
	defer f.Close()
	raw, err := io.ReadAll(io.LimitReader(f, maxXMLSize))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "não foi possível ler o arquivo"})
	}

	res, err := h.uc.UploadXML(c.Context(), raw)
	if err != nil {
		return writeError(c, err)
	}

	out := dto.UploadXMLResponse{Created: res.Created, NFeNumber: res.Number}
	if res.NFe != nil {
		out.Items = len(res.NFe.Items)
	}
	if !res.Created {
		out.Message = "NF-e já registrada"
		return c.Status(fiber.StatusOK).JSON(out)
	}
	out.Message = "NF-e processada com sucesso"
	return c.Status(fiber.StatusCreated).JSON(out)
}
