package genres

import (
	"context"
	"fmt"
	"log/slog"

	"soundatlas/src/music"
)

// Service is the domain service for the genres feature. Its main job is
// resolving genre names to rows, creating the missing ones.
type Service struct {
	catalog music.Catalog
}

// NewService creates a new genres service.
func NewService(catalog music.Catalog) *Service {
	return &Service{catalog: catalog}
}

// Resolve maps each name to a Genre row, creating rows that don't exist yet.
// The result has the same length and order as the input; repeated names
// resolve to the same row. New rows are persisted immediately, so later names
// in the same call observe them.
//
// A uniqueness conflict (a concurrent Resolve created the same name first)
// is propagated to the caller as music.ErrDuplicate.
func (s *Service) Resolve(ctx context.Context, names []string) ([]*music.Genre, error) {
	resolved := make([]*music.Genre, 0, len(names))
	for _, name := range names {
		genre, err := s.catalog.GetGenreByName(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("genre lookup %q: %w", name, err)
		}
		if genre == nil {
			genre = &music.Genre{
				ID:   music.NewID(),
				Name: name,
			}
			if err := genre.Validate(); err != nil {
				return nil, err
			}
			if err := s.catalog.AddGenre(ctx, genre); err != nil {
				return nil, fmt.Errorf("genre create %q: %w", name, err)
			}
			slog.Debug("Created genre", "name", name, "id", genre.ID)
		}
		resolved = append(resolved, genre)
	}
	return resolved, nil
}

// GetAllGenres returns all genres with their artists relation loaded.
func (s *Service) GetAllGenres(ctx context.Context) ([]*music.Genre, error) {
	genres, err := s.catalog.GetGenresWithArtists(ctx)
	if err != nil {
		slog.Error("GetAllGenres failed", "error", err)
		return nil, err
	}
	return genres, nil
}

// DeleteGenre removes a genre by id.
func (s *Service) DeleteGenre(ctx context.Context, id string) error {
	return s.catalog.DeleteGenre(ctx, id)
}
