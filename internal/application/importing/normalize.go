package importing

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// unitAliases normalizza le unità di misura più comuni sui DDT fornitore.
var unitAliases = map[string]string{
	"PZ": "PZ", "PCS": "PZ", "NR": "PZ", "N": "PZ", "PEZZI": "PZ",
	"MT": "MT", "M": "MT", "ML": "MT", "METRI": "MT",
	"KG": "KG", "CHILI": "KG",
	"LT": "LT", "L": "LT", "LITRI": "LT",
	"CF": "CF", "CONF": "CF",
	"CT": "CT", "CARTONE": "CT",
}

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normalizeText compatta spazi e rimuove i segni diacritici, così le descrizioni
// estratte dal PDF confrontano in modo stabile con il catalogo.
func normalizeText(s string) string {
	out, _, err := transform.String(stripAccents, s)
	if err != nil {
		out = s
	}
	return strings.Join(strings.Fields(out), " ")
}

// normalizeUnit riconduce l'unità a un codice canonico, PZ se sconosciuta.
func normalizeUnit(unit string) string {
	u := strings.ToUpper(strings.TrimSpace(unit))
	u = strings.TrimSuffix(u, ".")
	if canon, ok := unitAliases[u]; ok {
		return canon
	}
	return "PZ"
}

// codePrefix deriva dal nome fornitore il prefisso per i codici interni
// generati in import: prime tre lettere alfanumeriche, maiuscole.
func codePrefix(supplier string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(normalizeText(supplier)) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			if b.Len() == 3 {
				break
			}
		}
	}
	if b.Len() == 0 {
		return "IMP"
	}
	return b.String()
}
