package music

import (
	"fmt"
	"strings"
)

// Genre represents a music genre. Genres have many artists through the
// artist_genres association.
type Genre struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Artists []*Artist `json:"artists,omitempty"`
}

// Validate validates the genre fields.
func (g *Genre) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return fmt.Errorf("genre name cannot be empty")
	}
	if len(g.Name) > 200 {
		return fmt.Errorf("genre name cannot exceed 200 characters")
	}
	return nil
}
