package genres

import (
	"context"
	"testing"

	"soundatlas/src/music"
)

// MockCatalog is a mock implementation of music.Catalog
type MockCatalog struct {
	music.Catalog // Embed interface to avoid implementing all methods, will panic if unused methods called
	genres        map[string]*music.Genre
	addErr        error
}

func NewMockCatalog() *MockCatalog {
	return &MockCatalog{genres: make(map[string]*music.Genre)}
}

func (m *MockCatalog) GetGenreByName(ctx context.Context, name string) (*music.Genre, error) {
	if genre, ok := m.genres[music.NormalizeName(name)]; ok {
		return genre, nil
	}
	return nil, nil
}

func (m *MockCatalog) AddGenre(ctx context.Context, genre *music.Genre) error {
	if m.addErr != nil {
		return m.addErr
	}
	key := music.NormalizeName(genre.Name)
	if _, ok := m.genres[key]; ok {
		return music.ErrDuplicate
	}
	m.genres[key] = genre
	return nil
}

func TestResolve_CreatesMissingGenres(t *testing.T) {
	mock := NewMockCatalog()
	service := NewService(mock)
	ctx := context.Background()

	resolved, err := service.Resolve(ctx, []string{"trip hop", "dub"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(resolved) != 2 {
		t.Fatalf("expected 2 genres, got %d", len(resolved))
	}
	if resolved[0].Name != "trip hop" || resolved[1].Name != "dub" {
		t.Errorf("unexpected order: %v %v", resolved[0].Name, resolved[1].Name)
	}
	if resolved[0].ID == "" {
		t.Error("expected a generated id")
	}
	if len(mock.genres) != 2 {
		t.Errorf("expected 2 persisted genres, got %d", len(mock.genres))
	}
}

func TestResolve_ReusesExistingGenres(t *testing.T) {
	mock := NewMockCatalog()
	existing := &music.Genre{ID: music.NewID(), Name: "Dub"}
	mock.genres[music.NormalizeName(existing.Name)] = existing
	service := NewService(mock)
	ctx := context.Background()

	resolved, err := service.Resolve(ctx, []string{"dub"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resolved[0].ID != existing.ID {
		t.Errorf("expected existing genre %s, got %s", existing.ID, resolved[0].ID)
	}
	if len(mock.genres) != 1 {
		t.Errorf("expected no new rows, got %d", len(mock.genres))
	}
}

func TestResolve_RepeatedNamesShareRow(t *testing.T) {
	mock := NewMockCatalog()
	service := NewService(mock)
	ctx := context.Background()

	resolved, err := service.Resolve(ctx, []string{"dub", "dub"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(resolved) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(resolved))
	}
	if resolved[0].ID != resolved[1].ID {
		t.Error("expected both entries to resolve to the same row")
	}
	if len(mock.genres) != 1 {
		t.Errorf("expected 1 persisted genre, got %d", len(mock.genres))
	}
}

func TestResolve_PropagatesDuplicateError(t *testing.T) {
	mock := NewMockCatalog()
	mock.addErr = music.ErrDuplicate
	service := NewService(mock)
	ctx := context.Background()

	_, err := service.Resolve(ctx, []string{"dub"})
	if err == nil {
		t.Fatal("expected an error")
	}
}
