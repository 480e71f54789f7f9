package network

import (
	"math"
	"strconv"
	"strings"
)

// FormatList renders SNP identifiers the way Gephi users have always received
// them: ['rs1', 'rs2'].
func FormatList(items []string) string {
	b := strings.Builder{}
	b.WriteByte('[')
	for i, v := range items {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(quote(v))
	}
	b.WriteByte(']')

	return b.String()
}

// quote follows the familiar repr() convention: single quotes unless the
// value contains a single quote and no double quote.
func quote(s string) string {
	q := byte('\'')
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		q = '"'
	}

	b := strings.Builder{}
	b.WriteByte(q)
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			b.WriteString(`\\`)
		case '\t':
			b.WriteString(`\t`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case q:
			b.WriteByte('\\')
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte(q)

	return b.String()
}

// formatFloat prints 0.01 as 0.01, 5 as 5.0 and 1e-8 as 1e-08.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	if abs := math.Abs(f); abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}

	return s
}

func formatAssociation(a Association) string {
	parts := []string{quote(a.SNP)}
	if a.PValue.Valid {
		parts = append(parts, formatFloat(a.PValue.Float64))
	}
	if a.MAF.Valid {
		parts = append(parts, formatFloat(a.MAF.Float64))
	}

	return "[" + strings.Join(parts, ", ") + "]"
}
