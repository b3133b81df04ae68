package music

import (
	"fmt"
	"strings"
	"time"
)

// CountryCodeUnknown marks an artist whose country could not be determined
// yet. It is distinct from an empty code, which means no inference has been
// attempted at all.
const CountryCodeUnknown = "?"

// ImageURLUndefined is stored when a crawled track carries no album art.
const ImageURLUndefined = "undefined"

// Artist represents a music artist and the metadata gathered for it.
type Artist struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Genres  []*Genre `json:"genres"`
	Summary string   `json:"summary,omitempty"`

	// CountryCode holds the raw classifier output until it is reconciled
	// against the countries table.
	CountryCode string   `json:"countryCode,omitempty"`
	Country     *Country `json:"country,omitempty"`

	// Provenance
	DiscoveredBy string `json:"discoveredBy,omitempty"`
	SpotifyID    string `json:"spotifyId,omitempty"`
	SpotifyURI   string `json:"spotifyUri,omitempty"`
	ImageURL     string `json:"imageUrl,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// Validate validates the artist fields.
func (a *Artist) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("artist name cannot be empty")
	}
	if len(a.Name) > 500 {
		return fmt.Errorf("artist name cannot exceed 500 characters")
	}
	seen := make(map[string]bool, len(a.Genres))
	for _, genre := range a.Genres {
		if genre == nil {
			return fmt.Errorf("artist genre cannot be nil")
		}
		if seen[genre.Name] {
			return fmt.Errorf("artist has duplicate genre %q", genre.Name)
		}
		seen[genre.Name] = true
	}
	return nil
}

// HasSummary reports whether a biography has already been fetched.
func (a *Artist) HasSummary() bool {
	return a.Summary != ""
}

// CountryResolved reports whether the artist is linked to a country row.
func (a *Artist) CountryResolved() bool {
	return a.Country != nil
}
