package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// quitaDiacriticos: NFD -> elimina marcas combinantes (Mn) -> NFC.
var quitaDiacriticos = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// ForSearch normaliza un término para búsqueda: minúsculas, sin tildes/diéresis,
// sin espacios sobrantes. "  García  " y "garcia" producen el mismo resultado.
// También 'ñ' -> 'n': para búsqueda es preferible el match amplio.
func ForSearch(s string) string {
	out, _, err := transform.String(quitaDiacriticos, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}
