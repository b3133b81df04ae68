package enrichment

import (
	"context"
	"errors"
)

// ErrNoBiography is returned by a BiographyProvider when the service
// answered but has no biography for the artist. It marks "nothing to
// enrich", not a failure.
var ErrNoBiography = errors.New("no biography available")

// Setup errors for passes invoked without their external service configured.
var (
	ErrNoBiographyProvider = errors.New("biography provider is not configured")
	ErrNoClassifier        = errors.New("country classifier is not configured")
)

// BiographyProvider looks up an artist's biography text by name.
// Implemented by src/infra/lastfm.
type BiographyProvider interface {
	ArtistSummary(ctx context.Context, name string) (string, error)
}

// CountryClassifier infers a country code from a biography text.
// Implemented by src/infra/inference.
type CountryClassifier interface {
	CountryCode(ctx context.Context, summary string) (string, error)
}
