package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StoredMovement proyección desnormalizada cabecera + línea que consume el agregador de saldos.
// Vista de solo lectura: nunca se modifica, solo se recalcula.
type StoredMovement struct {
	NFeNumber          string
	IssueDate          time.Time
	RecipientTaxID     string
	RecipientName      string
	ProductCode        string
	ProductDescription string
	CFOP               string
	Quantity           decimal.Decimal
	LotID              string
	LotQuantity        decimal.Decimal
}

// MovementView línea de detalle por producto o por cliente.
// Quantity es la cantidad del lote cuando es > 0; en otro caso la cantidad comercial.
type MovementView struct {
	NFeNumber          string          `json:"numero_nf"`
	IssueDate          time.Time       `json:"data_emissao"`
	RecipientTaxID     string          `json:"cnpj_cliente"`
	RecipientName      string          `json:"nome_cliente"`
	ProductCode        string          `json:"codigo_produto"`
	ProductDescription string          `json:"descricao_produto"`
	CFOP               string          `json:"cfop"`
	Quantity           decimal.Decimal `json:"quantidade"`
	LotID              string          `json:"lote"`
}
