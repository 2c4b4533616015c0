package report

import (
	"strings"

	"github.com/shopspring/decimal"
)

// formatQty formatea una cantidad al estilo brasileño: miles con punto, decimales con coma.
// Ej: 1234.5 → "1.234,5", -12 → "-12".
func formatQty(d decimal.Decimal) string {
	s := d.String()
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, frac, _ := strings.Cut(s, ".")
	out := groupThousands(intPart)
	if frac != "" {
		out += "," + frac
	}
	if neg {
		out = "-" + out
	}
	return out
}

// groupThousands inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatTaxID aplica la máscara de CNPJ (14 dígitos) o CPF (11); otro largo se devuelve igual.
func formatTaxID(id string) string {
	switch len(id) {
	case 14:
		return id[0:2] + "." + id[2:5] + "." + id[5:8] + "/" + id[8:12] + "-" + id[12:14]
	case 11:
		return id[0:3] + "." + id[3:6] + "." + id[6:9] + "-" + id[9:11]
	}
	return id
}
