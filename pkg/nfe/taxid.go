package nfe

import "strings"

// OnlyDigits elimina puntos, barras y guiones de CNPJ/CPF/chave ("12.345.678/0001-99" -> "12345678000199").
func OnlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsCFOP indica si code tiene exactamente 4 dígitos ASCII.
func IsCFOP(code string) bool {
	if len(code) != CFOPLength {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}
	return true
}

// IsTaxID indica si s (ya normalizado) tiene forma de CNPJ (14) o CPF (11).
func IsTaxID(s string) bool {
	if len(s) != CNPJLength && len(s) != CPFLength {
		return false
	}
	return OnlyDigits(s) == s
}

// AccessKeyFromID extrae la chave de acesso del atributo infNFe@Id ("NFe3519..." -> "3519...").
func AccessKeyFromID(id string) string {
	id = strings.TrimSpace(id)
	id = strings.TrimPrefix(id, "NFe")
	return OnlyDigits(id)
}
