package music

import (
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/unidecode"
)

// NewID generates a new entity identifier.
func NewID() string {
	return uuid.New().String()
}

// NormalizeName folds a name for lookup purposes: ASCII-folded, lower-cased
// and with collapsed whitespace. Stored names keep their original form.
func NormalizeName(name string) string {
	folded := unidecode.Unidecode(name)
	return strings.Join(strings.Fields(strings.ToLower(folded)), " ")
}
