package crawling

import (
	"context"
	"errors"
	"testing"
	"time"

	"soundatlas/src/features/artists"
	"soundatlas/src/infra/pacer"
	"soundatlas/src/music"
)

// MockCatalog is a mock implementation of music.Catalog
type MockCatalog struct {
	music.Catalog // Embed interface to avoid implementing all methods, will panic if unused methods called
	known         map[string]*music.Artist
}

func NewMockCatalog() *MockCatalog {
	return &MockCatalog{known: make(map[string]*music.Artist)}
}

func (m *MockCatalog) GetArtistByName(ctx context.Context, name string) (*music.Artist, error) {
	if artist, ok := m.known[music.NormalizeName(name)]; ok {
		return artist, nil
	}
	return nil, nil
}

type mockDirectory struct {
	playlist  *Playlist
	genres    map[string][]string
	genreErr  map[string]error
	pages     []*PlaylistPage
	pageCalls int
}

func (d *mockDirectory) Playlist(ctx context.Context, playlistID string) (*Playlist, error) {
	if d.playlist == nil {
		return nil, errors.New("no such playlist")
	}
	return d.playlist, nil
}

func (d *mockDirectory) ArtistGenres(ctx context.Context, artistID string) ([]string, error) {
	if err, ok := d.genreErr[artistID]; ok {
		return nil, err
	}
	return d.genres[artistID], nil
}

func (d *mockDirectory) UserPlaylists(ctx context.Context, userID string, limit, offset int) (*PlaylistPage, error) {
	if d.pageCalls >= len(d.pages) {
		return &PlaylistPage{}, nil
	}
	page := d.pages[d.pageCalls]
	d.pageCalls++
	return page, nil
}

type mockIngester struct {
	created []artists.CreateArtistParams
	errFor  map[string]error
}

func (i *mockIngester) CreateArtistWithGenres(ctx context.Context, params artists.CreateArtistParams) (*music.Artist, error) {
	if err, ok := i.errFor[params.Name]; ok {
		return nil, err
	}
	i.created = append(i.created, params)
	return &music.Artist{ID: music.NewID(), Name: params.Name}, nil
}

func newTestService(directory *mockDirectory, ingester *mockIngester, catalog *MockCatalog) *Service {
	return NewService(directory, ingester, catalog, pacer.New(time.Duration(0)), 2)
}

func TestIngestFromPlaylist_SkipsKnownArtists(t *testing.T) {
	catalog := NewMockCatalog()
	catalog.known[music.NormalizeName("Portishead")] = &music.Artist{Name: "Portishead"}
	directory := &mockDirectory{
		playlist: &Playlist{
			Name:      "mix",
			OwnerName: "owner",
			Tracks: []Track{{
				Name:     "Glory Box",
				ImageURL: "http://img",
				Artists: []TrackArtist{
					{SpotifyID: "p1", Name: "Portishead"},
					{SpotifyID: "m1", Name: "Massive Attack"},
				},
			}},
		},
		genres: map[string][]string{"m1": {"trip hop"}},
	}
	ingester := &mockIngester{}

	ingested, err := newTestService(directory, ingester, catalog).IngestFromPlaylist(context.Background(), "pl1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(ingested) != 1 {
		t.Fatalf("expected 1 new artist, got %d", len(ingested))
	}
	if len(ingester.created) != 1 || ingester.created[0].Name != "Massive Attack" {
		t.Errorf("expected only the unknown artist to be created, got %v", ingester.created)
	}
	if ingester.created[0].DiscoveredBy != "owner" {
		t.Errorf("expected the playlist owner as provenance, got %q", ingester.created[0].DiscoveredBy)
	}
}

func TestIngestFromPlaylist_IsolatesFailures(t *testing.T) {
	directory := &mockDirectory{
		playlist: &Playlist{
			Name:      "mix",
			OwnerName: "owner",
			Tracks: []Track{{
				Artists: []TrackArtist{
					{SpotifyID: "bad", Name: "Broken"},
					{SpotifyID: "ok", Name: "Fine"},
				},
			}},
		},
		genres:   map[string][]string{"ok": nil},
		genreErr: map[string]error{"bad": errors.New("boom")},
	}
	ingester := &mockIngester{}

	ingested, err := newTestService(directory, ingester, NewMockCatalog()).IngestFromPlaylist(context.Background(), "pl1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(ingested) != 1 {
		t.Fatalf("expected the healthy artist to be ingested, got %d", len(ingested))
	}
	if ingester.created[0].Name != "Fine" {
		t.Errorf("unexpected artist %q", ingester.created[0].Name)
	}
}

func TestIngestFromPlaylist_DuplicateRaceIsNotAnError(t *testing.T) {
	directory := &mockDirectory{
		playlist: &Playlist{
			Tracks: []Track{{
				Artists: []TrackArtist{{SpotifyID: "p1", Name: "Portishead"}},
			}},
		},
	}
	ingester := &mockIngester{errFor: map[string]error{"Portishead": music.ErrDuplicate}}

	ingested, err := newTestService(directory, ingester, NewMockCatalog()).IngestFromPlaylist(context.Background(), "pl1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(ingested) != 0 {
		t.Errorf("expected no new artists, got %d", len(ingested))
	}
}

func TestIngestFromPlaylist_MissingArtFallsBack(t *testing.T) {
	directory := &mockDirectory{
		playlist: &Playlist{
			Tracks: []Track{{
				Artists: []TrackArtist{{SpotifyID: "p1", Name: "Portishead"}},
			}},
		},
	}
	ingester := &mockIngester{}

	_, err := newTestService(directory, ingester, NewMockCatalog()).IngestFromPlaylist(context.Background(), "pl1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if ingester.created[0].ImageURL != music.ImageURLUndefined {
		t.Errorf("expected the fallback image marker, got %q", ingester.created[0].ImageURL)
	}
}

func TestIngestFromUserPlaylists_WalksAllPages(t *testing.T) {
	directory := &mockDirectory{
		pages: []*PlaylistPage{
			{Total: 3, Items: []PlaylistRef{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}}},
			{Total: 3, Items: []PlaylistRef{{ID: "c", Name: "C"}}},
		},
		playlist: &Playlist{Name: "empty"},
	}

	processed, err := newTestService(directory, &mockIngester{}, NewMockCatalog()).IngestFromUserPlaylists(context.Background(), "user1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(processed) != 3 {
		t.Fatalf("expected 3 playlists processed, got %d", len(processed))
	}
	if directory.pageCalls != 2 {
		t.Errorf("expected 2 page fetches, got %d", directory.pageCalls)
	}
}
