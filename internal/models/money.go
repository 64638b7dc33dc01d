package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Round2 applies the 2-digit money precision used everywhere in this
// system.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// FormatBRL renders a decimal the pt-BR way: thousands separated by "."
// and a "," before the cents. 1234.5 -> "1.234,50".
func FormatBRL(d decimal.Decimal) string {
	s := d.StringFixed(2)

	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, fracPart, _ := strings.Cut(s, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	b.WriteByte(',')
	b.WriteString(fracPart)
	return b.String()
}

// BRL prefixes the currency symbol: "R$ 1.234,50".
func BRL(d decimal.Decimal) string {
	return "R$ " + FormatBRL(d)
}

// FormatDateBR converts an ISO date (2006-01-02) to dd/mm/yyyy, with the
// "--/--/----" placeholder for blank or malformed input.
func FormatDateBR(iso string) string {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return "--/--/----"
	}
	return t.Format("02/01/2006")
}
