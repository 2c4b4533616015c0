package entity

import "github.com/shopspring/decimal"

// NFeItem representa una línea (det/prod) de la NF-e.
// Quantity y UnitValue nunca son negativos; CFOP tiene exactamente 4 dígitos.
// LotID vacío es un componente de clave válido, no "sin lote".
type NFeItem struct {
	ID                 string
	NFeID              string
	ProductCode        string // cProd
	ProductDescription string // xProd
	CFOP               string
	Unit               string // uCom
	Quantity           decimal.Decimal // qCom
	UnitValue          decimal.Decimal // vUnCom
	LotID              string          // nLote
	LotQuantity        decimal.Decimal // qLote, cero si ausente
}
