package enrichment

import (
	"strings"

	"github.com/gosimple/unidecode"
)

// NormalizeCountryCode folds raw classifier output into something that can
// be matched against the countries table. The model is asked for a bare ISO
// code but occasionally wraps it in quotes, punctuation or prose; the raw
// text is still stored on the artist, only the match uses the folded form.
func NormalizeCountryCode(raw string) string {
	code := unidecode.Unidecode(raw)
	code = strings.TrimSpace(code)
	code = strings.Trim(code, "\"'`.,:;!")
	// Keep only the first token if the model answered with a sentence.
	if fields := strings.Fields(code); len(fields) > 0 {
		code = fields[0]
		code = strings.Trim(code, "\"'`.,:;!")
	}
	return strings.ToUpper(code)
}
