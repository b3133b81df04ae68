package enrichment

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"soundatlas/src/infra/pacer"
	"soundatlas/src/music"
)

// MockCatalog is a mock implementation of music.Catalog
type MockCatalog struct {
	music.Catalog // Embed interface to avoid implementing all methods, will panic if unused methods called
	mu            sync.Mutex
	artists       []*music.Artist
	candidates    []*music.Artist
	unlinked      []*music.Artist
	countries     map[string]*music.Country
	updates       []*music.Artist
}

func NewMockCatalog() *MockCatalog {
	return &MockCatalog{countries: make(map[string]*music.Country)}
}

func (m *MockCatalog) GetArtists(ctx context.Context) ([]*music.Artist, error) {
	return m.artists, nil
}

func (m *MockCatalog) GetInferenceCandidates(ctx context.Context, limit int) ([]*music.Artist, error) {
	if len(m.candidates) > limit {
		return m.candidates[:limit], nil
	}
	return m.candidates, nil
}

func (m *MockCatalog) GetUnlinkedArtists(ctx context.Context) ([]*music.Artist, error) {
	return m.unlinked, nil
}

func (m *MockCatalog) GetCountryByCode(ctx context.Context, code string) (*music.Country, error) {
	if country, ok := m.countries[code]; ok {
		return country, nil
	}
	return nil, music.ErrNotFound
}

func (m *MockCatalog) UpdateArtist(ctx context.Context, artist *music.Artist) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updates = append(m.updates, artist)
	return nil
}

type mockBio struct {
	mu        sync.Mutex
	summaries map[string]string
	errFor    map[string]error
	calls     int
}

func (b *mockBio) ArtistSummary(ctx context.Context, name string) (string, error) {
	b.mu.Lock()
	b.calls++
	b.mu.Unlock()
	if err, ok := b.errFor[name]; ok {
		return "", err
	}
	if summary, ok := b.summaries[name]; ok {
		return summary, nil
	}
	return "", ErrNoBiography
}

type mockClassifier struct {
	mu    sync.Mutex
	code  string
	err   error
	calls int
}

func (c *mockClassifier) CountryCode(ctx context.Context, summary string) (string, error) {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
	if c.err != nil {
		return "", c.err
	}
	return c.code, nil
}

func newTestService(catalog *MockCatalog, bio *mockBio, classifier *mockClassifier) *Service {
	return NewService(catalog, bio, classifier, pacer.New(time.Duration(0)), Options{
		BatchLimit:       10,
		MinSummaryLength: 20,
		Workers:          2,
	})
}

func TestEnrichSummaries_SkipsArtistsWithSummary(t *testing.T) {
	catalog := NewMockCatalog()
	catalog.artists = []*music.Artist{
		{Name: "Portishead", Summary: "already there"},
		{Name: "Tricky", Summary: "also there"},
	}
	bio := &mockBio{}

	if _, err := newTestService(catalog, bio, nil).EnrichSummaries(context.Background()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if bio.calls != 0 {
		t.Errorf("expected no provider calls for enriched artists, got %d", bio.calls)
	}
}

func TestEnrichSummaries_StoresFetchedBiography(t *testing.T) {
	catalog := NewMockCatalog()
	catalog.artists = []*music.Artist{{Name: "Portishead"}}
	bio := &mockBio{summaries: map[string]string{"Portishead": "Bristol band."}}

	if _, err := newTestService(catalog, bio, nil).EnrichSummaries(context.Background()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(catalog.updates) != 1 {
		t.Fatalf("expected 1 update, got %d", len(catalog.updates))
	}
	if catalog.updates[0].Summary != "Bristol band." {
		t.Errorf("unexpected summary %q", catalog.updates[0].Summary)
	}
}

func TestEnrichSummaries_IsolatesFailures(t *testing.T) {
	catalog := NewMockCatalog()
	catalog.artists = []*music.Artist{
		{Name: "Broken"},
		{Name: "Fine"},
	}
	bio := &mockBio{
		summaries: map[string]string{"Fine": "A biography."},
		errFor:    map[string]error{"Broken": errors.New("boom")},
	}

	if _, err := newTestService(catalog, bio, nil).EnrichSummaries(context.Background()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(catalog.updates) != 1 || catalog.updates[0].Name != "Fine" {
		t.Errorf("expected only the healthy artist to be updated, got %v", catalog.updates)
	}
}

func TestEnrichSummaries_WithoutProviderFailsCleanly(t *testing.T) {
	catalog := NewMockCatalog()
	catalog.artists = []*music.Artist{{Name: "Portishead"}}
	service := NewService(catalog, nil, nil, pacer.New(time.Duration(0)), Options{})

	_, err := service.EnrichSummaries(context.Background())
	if !errors.Is(err, ErrNoBiographyProvider) {
		t.Fatalf("expected ErrNoBiographyProvider, got %v", err)
	}
}

func TestInferCountries_WithoutClassifierFailsCleanly(t *testing.T) {
	catalog := NewMockCatalog()
	catalog.candidates = []*music.Artist{{Name: "Portishead", Summary: strings.Repeat("text ", 100)}}
	service := NewService(catalog, nil, nil, pacer.New(time.Duration(0)), Options{})

	_, err := service.InferCountries(context.Background())
	if !errors.Is(err, ErrNoClassifier) {
		t.Fatalf("expected ErrNoClassifier, got %v", err)
	}
	if len(catalog.updates) != 0 {
		t.Errorf("expected nothing persisted, got %v", catalog.updates)
	}
}

func TestInferCountries_ShortSummaryIsMarkedUnknown(t *testing.T) {
	catalog := NewMockCatalog()
	catalog.candidates = []*music.Artist{{Name: "Obscure", Summary: "too short"}}
	classifier := &mockClassifier{code: "GB"}

	guesses, err := newTestService(catalog, nil, classifier).InferCountries(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if classifier.calls != 0 {
		t.Errorf("expected no classifier calls for short summaries, got %d", classifier.calls)
	}
	if len(guesses) != 0 {
		t.Errorf("expected no guesses, got %v", guesses)
	}
	if len(catalog.updates) != 1 || catalog.updates[0].CountryCode != music.CountryCodeUnknown {
		t.Errorf("expected the unknown marker to be persisted, got %v", catalog.updates)
	}
}

func TestInferCountries_ThresholdCountsCharactersNotBytes(t *testing.T) {
	catalog := NewMockCatalog()
	// 15 characters but 30 bytes: over the 20 threshold only if the length
	// were measured in bytes.
	catalog.candidates = []*music.Artist{{Name: "Édith", Summary: strings.Repeat("é", 15)}}
	classifier := &mockClassifier{code: "FR"}

	guesses, err := newTestService(catalog, nil, classifier).InferCountries(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if classifier.calls != 0 {
		t.Errorf("expected the short biography to skip the classifier, got %d calls", classifier.calls)
	}
	if len(guesses) != 0 {
		t.Errorf("expected no guesses, got %v", guesses)
	}
	if len(catalog.updates) != 1 || catalog.updates[0].CountryCode != music.CountryCodeUnknown {
		t.Errorf("expected the unknown marker to be persisted, got %v", catalog.updates)
	}
}

func TestInferCountries_StoresClassifierOutput(t *testing.T) {
	catalog := NewMockCatalog()
	catalog.candidates = []*music.Artist{
		{Name: "Portishead", Summary: strings.Repeat("long biography ", 10)},
	}
	classifier := &mockClassifier{code: "GB"}

	guesses, err := newTestService(catalog, nil, classifier).InferCountries(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(guesses) != 1 {
		t.Fatalf("expected 1 guess, got %d", len(guesses))
	}
	if guesses[0].Name != "Portishead" || guesses[0].CountryCode != "GB" {
		t.Errorf("unexpected guess %+v", guesses[0])
	}
	if len(catalog.updates) != 1 || catalog.updates[0].CountryCode != "GB" {
		t.Errorf("expected the code to be persisted, got %v", catalog.updates)
	}
}

func TestInferCountries_ClassifierFailureIsIsolated(t *testing.T) {
	catalog := NewMockCatalog()
	catalog.candidates = []*music.Artist{
		{Name: "Portishead", Summary: strings.Repeat("long biography ", 10)},
	}
	classifier := &mockClassifier{err: errors.New("model unavailable")}

	guesses, err := newTestService(catalog, nil, classifier).InferCountries(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(guesses) != 0 {
		t.Errorf("expected no guesses, got %v", guesses)
	}
	if len(catalog.updates) != 0 {
		t.Errorf("expected nothing persisted, got %v", catalog.updates)
	}
}

func TestLinkCountries_NormalizesAndLinks(t *testing.T) {
	catalog := NewMockCatalog()
	uk := &music.Country{ID: music.NewID(), Name: "United Kingdom", Code: "GB"}
	catalog.countries["GB"] = uk
	catalog.unlinked = []*music.Artist{
		{Name: "Portishead", CountryCode: " gb. "},
		{Name: "Unmatched", CountryCode: "XX"},
	}

	linked, err := newTestService(catalog, nil, nil).LinkCountries(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if linked != 1 {
		t.Fatalf("expected 1 link, got %d", linked)
	}
	if len(catalog.updates) != 1 || catalog.updates[0].Country != uk {
		t.Errorf("expected Portishead linked to GB, got %v", catalog.updates)
	}
}

func TestLinkCountries_LeavesUnmatchedForRetry(t *testing.T) {
	catalog := NewMockCatalog()
	catalog.unlinked = []*music.Artist{{Name: "Nowhere", CountryCode: "ZZ"}}

	linked, err := newTestService(catalog, nil, nil).LinkCountries(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if linked != 0 {
		t.Errorf("expected no links, got %d", linked)
	}
	if len(catalog.updates) != 0 {
		t.Errorf("expected nothing persisted, got %v", catalog.updates)
	}
}
