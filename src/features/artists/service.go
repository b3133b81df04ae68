package artists

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"soundatlas/src/music"
)

// GenreResolver maps genre names to rows, creating missing ones.
// Implemented by the genres service.
type GenreResolver interface {
	Resolve(ctx context.Context, names []string) ([]*music.Genre, error)
}

// Service is the domain service for the artists feature.
type Service struct {
	catalog  music.Catalog
	resolver GenreResolver
}

// NewService creates a new artists service.
func NewService(catalog music.Catalog, resolver GenreResolver) *Service {
	return &Service{catalog: catalog, resolver: resolver}
}

// CreateArtistParams carries everything needed to ingest an artist.
type CreateArtistParams struct {
	Name         string
	Genres       []string
	DiscoveredBy string
	SpotifyID    string
	SpotifyURI   string
	ImageURL     string
}

// GetAllArtists returns every artist with genres and country loaded.
func (s *Service) GetAllArtists(ctx context.Context) ([]*music.Artist, error) {
	artists, err := s.catalog.GetArtists(ctx)
	if err != nil {
		slog.Error("GetAllArtists failed", "error", err)
		return nil, err
	}
	return artists, nil
}

// GetArtistByID returns one artist, or music.ErrNotFound.
func (s *Service) GetArtistByID(ctx context.Context, id string) (*music.Artist, error) {
	return s.catalog.GetArtist(ctx, id)
}

// CreateArtistWithGenres resolves the genre names and creates the artist.
// Creating an artist whose name already exists fails with music.ErrDuplicate;
// bulk callers like the crawler downgrade that to "already known".
func (s *Service) CreateArtistWithGenres(ctx context.Context, params CreateArtistParams) (*music.Artist, error) {
	genres, err := s.resolver.Resolve(ctx, dedupeNames(params.Genres))
	if err != nil {
		return nil, err
	}

	artist := &music.Artist{
		ID:           music.NewID(),
		Name:         params.Name,
		Genres:       genres,
		DiscoveredBy: params.DiscoveredBy,
		SpotifyID:    params.SpotifyID,
		SpotifyURI:   params.SpotifyURI,
		ImageURL:     params.ImageURL,
		CreatedAt:    time.Now(),
	}
	if err := artist.Validate(); err != nil {
		return nil, err
	}
	if err := s.catalog.AddArtist(ctx, artist); err != nil {
		return nil, fmt.Errorf("artist create %q: %w", params.Name, err)
	}
	slog.Info("Created artist", "name", artist.Name, "genres", len(artist.Genres), "discoveredBy", artist.DiscoveredBy)
	return artist, nil
}

// UpdateArtistWithGenres re-resolves the genres and replaces the artist's
// name and genre set wholesale. Partial update of only one of the two is not
// supported; absent fields keep their stored value.
func (s *Service) UpdateArtistWithGenres(ctx context.Context, id string, name string, genreNames []string) (*music.Artist, error) {
	artist, err := s.catalog.GetArtist(ctx, id)
	if err != nil {
		return nil, err
	}

	if name != "" {
		artist.Name = name
	}
	if genreNames != nil {
		genres, err := s.resolver.Resolve(ctx, dedupeNames(genreNames))
		if err != nil {
			return nil, err
		}
		artist.Genres = genres
	}
	if err := artist.Validate(); err != nil {
		return nil, err
	}
	if err := s.catalog.UpdateArtist(ctx, artist); err != nil {
		return nil, fmt.Errorf("artist update %q: %w", id, err)
	}
	return artist, nil
}

// DeleteArtist removes an artist by id.
func (s *Service) DeleteArtist(ctx context.Context, id string) error {
	return s.catalog.DeleteArtist(ctx, id)
}

// dedupeNames drops repeated genre names while keeping the input order, so a
// crawled artist never ends up with the same genre twice.
func dedupeNames(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		key := music.NormalizeName(name)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, name)
	}
	return out
}
