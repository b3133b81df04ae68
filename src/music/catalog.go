package music

import (
	"context"
)

// Catalog is the repository interface for the aggregated music metadata.
// It's our primary persistence boundary; src/infra/database implements it.
type Catalog interface {
	// Artist methods
	AddArtist(ctx context.Context, artist *Artist) error
	GetArtist(ctx context.Context, id string) (*Artist, error)
	GetArtistByName(ctx context.Context, name string) (*Artist, error)
	GetArtists(ctx context.Context) ([]*Artist, error)
	GetArtistsCount(ctx context.Context) (int, error)
	UpdateArtist(ctx context.Context, artist *Artist) error
	DeleteArtist(ctx context.Context, id string) error

	// GetInferenceCandidates returns artists whose country is still
	// unresolved but that already have a biography, capped at limit.
	GetInferenceCandidates(ctx context.Context, limit int) ([]*Artist, error)
	// GetUnlinkedArtists returns artists that carry a country code but no
	// country reference yet.
	GetUnlinkedArtists(ctx context.Context) ([]*Artist, error)

	// Genre methods
	AddGenre(ctx context.Context, genre *Genre) error
	GetGenreByName(ctx context.Context, name string) (*Genre, error)
	GetGenres(ctx context.Context) ([]*Genre, error)
	GetGenresWithArtists(ctx context.Context) ([]*Genre, error)
	DeleteGenre(ctx context.Context, id string) error

	// Country methods
	AddCountries(ctx context.Context, countries []*Country) error
	GetCountries(ctx context.Context) ([]*Country, error)
	GetCountryByCode(ctx context.Context, code string) (*Country, error)
}
