package entity

import "time"

// NFe representa la cabecera de una NF-e (nota fiscal eletrônica) de consignación OPME.
// Identidad = Number; inmutable una vez persistida. Es dueña exclusiva de sus Items.
type NFe struct {
	ID             string
	Number         string // nNF, clave de negocio única
	AccessKey      string // chave de acesso (44 dígitos), opcional
	IssueDate      time.Time
	IssuerTaxID    string // CNPJ emitente
	IssuerName     string
	RecipientTaxID string // CNPJ/CPF destinatário (cliente consignatario)
	RecipientName  string
	XMLDigest      string // SHA-256 hex del XML canónico (C14N)
	Items          []NFeItem
	CreatedAt      time.Time
}

// LeadingCFOP devuelve el CFOP de la primera línea ("" si no hay líneas).
func (n *NFe) LeadingCFOP() string {
	if n == nil || len(n.Items) == 0 {
		return ""
	}
	return n.Items[0].CFOP
}
