package dto

import (
	"github.com/jhoicas/opme-consignado/internal/domain/entity"
)

// UploadXMLResponse resultado de POST /api/upload_xml.
type UploadXMLResponse struct {
	Message   string `json:"message"`
	Created   bool   `json:"created"`
	NFeNumber string `json:"numero_nf"`
	Items     int    `json:"itens"`
}

// SyncRequest cuerpo (o query) de POST /api/maino/sync. Dias cero = valor por defecto.
type SyncRequest struct {
	Dias int `json:"dias" query:"dias" validate:"min=0,max=90"`
}

// BalanceQuery filtro de los endpoints de saldo y movimientos.
type BalanceQuery struct {
	CNPJCliente string `query:"cnpj_cliente" validate:"omitempty,numeric,min=11,max=14"`
}

// MovementDTO movimiento plano (GET /api/movements), con la cantidad de lote cruda.
type MovementDTO struct {
	NFeNumber          string `json:"numero_nf"`
	IssueDate          string `json:"data_emissao"`
	RecipientTaxID     string `json:"cnpj_cliente"`
	RecipientName      string `json:"nome_cliente"`
	ProductCode        string `json:"codigo_produto"`
	ProductDescription string `json:"descricao_produto"`
	CFOP               string `json:"cfop"`
	Quantity           string `json:"quantidade"`
	LotID              string `json:"lote"`
	LotQuantity        string `json:"quantidade_lote"`
}

// MovementFromEntity convierte el movimiento almacenado al DTO.
func MovementFromEntity(m entity.StoredMovement) MovementDTO {
	return MovementDTO{
		NFeNumber:          m.NFeNumber,
		IssueDate:          m.IssueDate.Format("2006-01-02"),
		RecipientTaxID:     m.RecipientTaxID,
		RecipientName:      m.RecipientName,
		ProductCode:        m.ProductCode,
		ProductDescription: m.ProductDescription,
		CFOP:               m.CFOP,
		Quantity:           m.Quantity.String(),
		LotID:              m.LotID,
		LotQuantity:        m.LotQuantity.String(),
	}
}
