package crawling

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"soundatlas/src/features/artists"
	"soundatlas/src/features/metrics"
	"soundatlas/src/infra/pacer"
	"soundatlas/src/music"
)

// Ingester creates artists with their genres. Implemented by the artists
// service.
type Ingester interface {
	CreateArtistWithGenres(ctx context.Context, params artists.CreateArtistParams) (*music.Artist, error)
}

// Service walks playlists and ingests every credited artist that isn't
// known yet.
type Service struct {
	directory Directory
	ingester  Ingester
	catalog   music.Catalog
	limiter   *pacer.Limiter
	pageSize  int
}

// NewService creates a new crawling service.
func NewService(directory Directory, ingester Ingester, catalog music.Catalog, limiter *pacer.Limiter, pageSize int) *Service {
	return &Service{
		directory: directory,
		ingester:  ingester,
		catalog:   catalog,
		limiter:   limiter,
		pageSize:  pageSize,
	}
}

// IngestFromPlaylist fetches a playlist and ingests every credited artist
// that isn't stored yet, tagged with the playlist owner as provenance.
// Returns the ids of the artists it created. A single artist's failure is
// logged and does not abort the rest of the playlist.
func (s *Service) IngestFromPlaylist(ctx context.Context, playlistID string) ([]string, error) {
	playlist, err := s.directory.Playlist(ctx, playlistID)
	if err != nil {
		metrics.ExternalErrors.WithLabelValues("spotify").Inc()
		return nil, fmt.Errorf("fetch playlist %q: %w", playlistID, err)
	}
	slog.Info("Crawling playlist", "playlist", playlist.Name, "owner", playlist.OwnerName, "tracks", len(playlist.Tracks))

	var ingested []string
	for _, track := range playlist.Tracks {
		for _, credit := range track.Artists {
			id, err := s.ingestArtist(ctx, credit, track.ImageURL, playlist.OwnerName)
			if err != nil {
				slog.Warn("Skipping artist", "artist", credit.Name, "playlist", playlist.Name, "error", err)
				continue
			}
			if id != "" {
				ingested = append(ingested, id)
			}
		}
	}
	slog.Info("Playlist crawled", "playlist", playlist.Name, "newArtists", len(ingested))
	return ingested, nil
}

// IngestFromUserPlaylists enumerates all playlists owned by a user and crawls
// each in turn, pacing between playlists. Returns the names of the playlists
// processed; one playlist failing does not stop the loop.
func (s *Service) IngestFromUserPlaylists(ctx context.Context, userID string) ([]string, error) {
	var processed []string
	for offset := 0; ; offset += s.pageSize {
		page, err := s.directory.UserPlaylists(ctx, userID, s.pageSize, offset)
		if err != nil {
			metrics.ExternalErrors.WithLabelValues("spotify").Inc()
			return processed, fmt.Errorf("fetch playlists of %q at offset %d: %w", userID, offset, err)
		}

		for _, ref := range page.Items {
			if err := s.limiter.Wait(ctx); err != nil {
				return processed, err
			}
			if _, err := s.IngestFromPlaylist(ctx, ref.ID); err != nil {
				slog.Warn("Playlist crawl failed", "playlist", ref.Name, "error", err)
			}
			processed = append(processed, ref.Name)
		}

		if offset+s.pageSize > page.Total {
			break
		}
	}
	return processed, nil
}

// ingestArtist ingests one artist credit if it isn't stored yet. Returns the
// new artist's id, or "" when the artist was already known.
func (s *Service) ingestArtist(ctx context.Context, credit TrackArtist, imageURL, ownerName string) (string, error) {
	existing, err := s.catalog.GetArtistByName(ctx, credit.Name)
	if err != nil {
		return "", fmt.Errorf("artist lookup: %w", err)
	}
	if existing != nil {
		return "", nil
	}

	genres, err := s.directory.ArtistGenres(ctx, credit.SpotifyID)
	if err != nil {
		metrics.ExternalErrors.WithLabelValues("spotify").Inc()
		return "", fmt.Errorf("fetch artist genres: %w", err)
	}

	if imageURL == "" {
		imageURL = music.ImageURLUndefined
	}
	artist, err := s.ingester.CreateArtistWithGenres(ctx, artists.CreateArtistParams{
		Name:         credit.Name,
		Genres:       genres,
		DiscoveredBy: ownerName,
		SpotifyID:    credit.SpotifyID,
		SpotifyURI:   credit.URI,
		ImageURL:     imageURL,
	})
	if err != nil {
		// Lost the race against another crawl of the same artist; it is
		// stored now, which is all we wanted.
		if errors.Is(err, music.ErrDuplicate) {
			return "", nil
		}
		return "", err
	}
	metrics.ArtistsIngested.Inc()
	return artist.ID, nil
}
