package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"soundatlas/src/music"
)

func newTestCatalog(t *testing.T) *SqliteCatalog {
	t.Helper()
	catalog, err := NewSqliteCatalog(filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("failed to open catalog: %v", err)
	}
	return catalog
}

func TestUpdateArtist_KeepsGenresAcrossEnrichmentPasses(t *testing.T) {
	catalog := newTestCatalog(t)
	ctx := context.Background()

	artist := &music.Artist{
		ID:        music.NewID(),
		Name:      "Portishead",
		Summary:   "A band from Bristol.",
		Genres:    []*music.Genre{{ID: music.NewID(), Name: "trip hop"}},
		CreatedAt: time.Now(),
	}
	if err := catalog.AddArtist(ctx, artist); err != nil {
		t.Fatalf("AddArtist: %v", err)
	}

	candidates, err := catalog.GetInferenceCandidates(ctx, 10)
	if err != nil {
		t.Fatalf("GetInferenceCandidates: %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(candidates))
	}

	candidate := candidates[0]
	candidate.CountryCode = "GB"
	if err := catalog.UpdateArtist(ctx, candidate); err != nil {
		t.Fatalf("UpdateArtist: %v", err)
	}

	unlinked, err := catalog.GetUnlinkedArtists(ctx)
	if err != nil {
		t.Fatalf("GetUnlinkedArtists: %v", err)
	}
	if len(unlinked) != 1 {
		t.Fatalf("expected 1 unlinked artist, got %d", len(unlinked))
	}
	if err := catalog.UpdateArtist(ctx, unlinked[0]); err != nil {
		t.Fatalf("UpdateArtist: %v", err)
	}

	stored, err := catalog.GetArtist(ctx, artist.ID)
	if err != nil {
		t.Fatalf("GetArtist: %v", err)
	}
	if len(stored.Genres) != 1 || stored.Genres[0].Name != "trip hop" {
		t.Fatalf("artist has %d genres after enrichment updates, want 1", len(stored.Genres))
	}
	if stored.CountryCode != "GB" {
		t.Errorf("expected country code to be persisted, got %q", stored.CountryCode)
	}
}

func TestAddArtist_DuplicateNameConflicts(t *testing.T) {
	catalog := newTestCatalog(t)
	ctx := context.Background()

	first := &music.Artist{ID: music.NewID(), Name: "Portishead", CreatedAt: time.Now()}
	if err := catalog.AddArtist(ctx, first); err != nil {
		t.Fatalf("AddArtist: %v", err)
	}

	second := &music.Artist{ID: music.NewID(), Name: "portishead", CreatedAt: time.Now()}
	if err := catalog.AddArtist(ctx, second); !errors.Is(err, music.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}
