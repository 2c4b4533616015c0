package entity

import "github.com/shopspring/decimal"

// BalanceKey clave del saldo de consignación: cliente + producto + lote.
type BalanceKey struct {
	RecipientTaxID     string
	RecipientName      string
	ProductCode        string
	ProductDescription string
	LotID              string
}

// BalanceEntry saldo neto (entradas - salidas) de una clave. Puede ser cero o negativo.
// Vive solo durante una agregación; nunca se persiste.
type BalanceEntry struct {
	RecipientTaxID     string          `json:"cnpj_cliente"`
	RecipientName      string          `json:"nome_cliente"`
	ProductCode        string          `json:"codigo_produto"`
	ProductDescription string          `json:"descricao_produto"`
	LotID              string          `json:"lote"`
	Balance            decimal.Decimal `json:"saldo"`
}
