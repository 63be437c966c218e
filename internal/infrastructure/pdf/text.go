package pdf

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Presupuestos de caracteres (heurística por conteo, no por medición de fuente).
const (
	descriptionMaxChars = 45
	captionMaxChars     = 22
	wrapCharsPerLine    = 95
)

// formatMoney "$" + dos decimales, sin separador de miles ni locale.
func formatMoney(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-$" + d.Abs().StringFixed(2)
	}
	return "$" + d.StringFixed(2)
}

func formatDate(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

// truncate recorta s a max runas, terminando en "..." si se recortó.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}

// wrapText parte s en líneas de a lo sumo width caracteres, por palabras.
// Respeta los saltos de línea del texto; una palabra más larga que width se corta.
func wrapText(s string, width int) []string {
	var lines []string
	for _, para := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		var cur []rune
		for _, w := range words {
			word := []rune(w)
			for len(word) > width {
				if len(cur) > 0 {
					lines = append(lines, string(cur))
					cur = nil
				}
				lines = append(lines, string(word[:width]))
				word = word[width:]
			}
			switch {
			case len(cur) == 0:
				cur = append(cur, word...)
			case len(cur)+1+len(word) <= width:
				cur = append(append(cur, ' '), word...)
			default:
				lines = append(lines, string(cur))
				cur = append([]rune(nil), word...)
			}
		}
		if len(cur) > 0 {
			lines = append(lines, string(cur))
		}
	}
	// Sin líneas en blanco al final.
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
