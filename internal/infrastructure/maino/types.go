package maino

import (
	"strings"
	"time"
)

// listResponse página del listado de notas emitidas.
type listResponse struct {
	NotasFiscais []issuedNote `json:"notas_fiscais"`
	Pagination   pagination   `json:"pagination"`
}

type pagination struct {
	CurrentPage int `json:"current_page"`
	TotalPages  int `json:"total_pages"`
}

type issuedNote struct {
	ChaveAcesso string `json:"chave_acesso"`
	Numero      string `json:"numero"`
	Serie       string `json:"serie"`
	CFOP        string `json:"cfop"`
	DataEmissao string `json:"data_emissao"`
}

// issuedAt acepta fecha con hora (RFC3339) o solo fecha.
func (n issuedNote) issuedAt() time.Time {
	v := strings.TrimSpace(n.DataEmissao)
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t
	}
	if t, err := time.Parse(dateLayout, v); err == nil {
		return t
	}
	return time.Time{}
}

// xmlResponse respuesta JSON alternativa de la descarga: {"xml": "<nfeProc>..."}.
type xmlResponse struct {
	XML string `json:"xml"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (e errorResponse) text() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}
