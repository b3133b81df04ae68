package enrichment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"unicode/utf8"

	"soundatlas/src/features/metrics"
	"soundatlas/src/infra/pacer"
	"soundatlas/src/music"
)

// Options tunes the batch passes.
type Options struct {
	// BatchLimit caps how many artists one country-inference pass takes on.
	BatchLimit int
	// MinSummaryLength is the biography length below which inference is
	// skipped as too thin to classify.
	MinSummaryLength int
	// Workers bounds the concurrent fan-out over the artist collection.
	Workers int
}

// CountryGuess is one inference result: the artist and the raw code the
// classifier returned for it. Skipped artists don't appear at all.
type CountryGuess struct {
	Name        string `json:"name"`
	CountryCode string `json:"countryCode"`
}

// Service orchestrates the enrichment pipeline: biography fetch, country
// inference and country-id reconciliation. Each pass is idempotent and
// isolates per-artist failures; re-running a pass is the retry mechanism.
type Service struct {
	catalog    music.Catalog
	bio        BiographyProvider
	classifier CountryClassifier
	limiter    *pacer.Limiter
	opts       Options
}

// NewService creates a new enrichment service.
func NewService(catalog music.Catalog, bio BiographyProvider, classifier CountryClassifier, limiter *pacer.Limiter, opts Options) *Service {
	if opts.BatchLimit <= 0 {
		opts.BatchLimit = 100
	}
	if opts.MinSummaryLength <= 0 {
		opts.MinSummaryLength = 300
	}
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	return &Service{
		catalog:    catalog,
		bio:        bio,
		classifier: classifier,
		limiter:    limiter,
		opts:       opts,
	}
}

// EnrichSummaries fetches a biography for every artist that doesn't have one
// yet and persists it. Artists with a summary are skipped without an
// external call, so re-runs are cheap. Returns the number of artists
// considered; per-artist failures are logged, never propagated.
func (s *Service) EnrichSummaries(ctx context.Context) (int, error) {
	if s.bio == nil {
		return 0, ErrNoBiographyProvider
	}
	artists, err := s.catalog.GetArtists(ctx)
	if err != nil {
		return 0, fmt.Errorf("load artists: %w", err)
	}

	var wg sync.WaitGroup
	sem := make(chan struct{}, s.opts.Workers)
	for _, artist := range artists {
		if artist.HasSummary() {
			continue
		}
		wg.Add(1)
		go func(artist *music.Artist) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			s.enrichSummary(ctx, artist)
		}(artist)
	}
	wg.Wait()

	return len(artists), nil
}

func (s *Service) enrichSummary(ctx context.Context, artist *music.Artist) {
	if err := s.limiter.Wait(ctx); err != nil {
		return
	}
	summary, err := s.bio.ArtistSummary(ctx, artist.Name)
	switch {
	case errors.Is(err, ErrNoBiography):
		slog.Debug("No biography available", "artist", artist.Name)
		return
	case err != nil:
		metrics.ExternalErrors.WithLabelValues("lastfm").Inc()
		slog.Warn("Biography fetch failed", "artist", artist.Name, "error", err)
		return
	}

	artist.Summary = summary
	if err := s.catalog.UpdateArtist(ctx, artist); err != nil {
		slog.Warn("Persisting summary failed", "artist", artist.Name, "error", err)
		return
	}
	metrics.SummariesFetched.Inc()
	slog.Info("Biography stored", "artist", artist.Name, "length", len(summary))
}

// InferCountries classifies the country of origin for artists whose country
// is still unresolved and that have a biography, up to the batch limit.
// Artists whose biography is at or below the minimum length are marked with
// the unknown sentinel and persisted without a classifier call. Returns one
// entry per classified artist; skipped and failed artists are omitted.
func (s *Service) InferCountries(ctx context.Context) ([]CountryGuess, error) {
	if s.classifier == nil {
		return nil, ErrNoClassifier
	}
	candidates, err := s.catalog.GetInferenceCandidates(ctx, s.opts.BatchLimit)
	if err != nil {
		return nil, fmt.Errorf("load inference candidates: %w", err)
	}

	var (
		mu      sync.Mutex
		guesses []CountryGuess
		wg      sync.WaitGroup
	)
	sem := make(chan struct{}, s.opts.Workers)
	for _, artist := range candidates {
		if length := utf8.RuneCountInString(artist.Summary); length <= s.opts.MinSummaryLength {
			// Too little text to classify reliably; record the unknown
			// marker instead of spending a classifier call.
			artist.CountryCode = music.CountryCodeUnknown
			if err := s.catalog.UpdateArtist(ctx, artist); err != nil {
				slog.Warn("Persisting unknown-country marker failed", "artist", artist.Name, "error", err)
			}
			slog.Debug("Summary too short for inference", "artist", artist.Name, "length", length)
			continue
		}

		wg.Add(1)
		go func(artist *music.Artist) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			if guess, ok := s.inferCountry(ctx, artist); ok {
				mu.Lock()
				guesses = append(guesses, guess)
				mu.Unlock()
			}
		}(artist)
	}
	wg.Wait()

	return guesses, nil
}

func (s *Service) inferCountry(ctx context.Context, artist *music.Artist) (CountryGuess, bool) {
	if err := s.limiter.Wait(ctx); err != nil {
		return CountryGuess{}, false
	}
	code, err := s.classifier.CountryCode(ctx, artist.Summary)
	if err != nil {
		metrics.ExternalErrors.WithLabelValues("inference").Inc()
		slog.Warn("Country inference failed", "artist", artist.Name, "error", err)
		return CountryGuess{}, false
	}

	artist.CountryCode = code
	if err := s.catalog.UpdateArtist(ctx, artist); err != nil {
		slog.Warn("Persisting country code failed", "artist", artist.Name, "error", err)
		return CountryGuess{}, false
	}
	metrics.CountriesInferred.Inc()
	slog.Info("Country inferred", "artist", artist.Name, "code", code)
	return CountryGuess{Name: artist.Name, CountryCode: code}, true
}

// LinkCountries reconciles inferred country codes against the countries
// table. Codes that match no known country are left alone to be retried on
// a later run, once the code has been re-inferred or the table extended.
// Returns the number of artists linked.
func (s *Service) LinkCountries(ctx context.Context) (int, error) {
	artists, err := s.catalog.GetUnlinkedArtists(ctx)
	if err != nil {
		return 0, fmt.Errorf("load unlinked artists: %w", err)
	}

	linked := 0
	for _, artist := range artists {
		code := NormalizeCountryCode(artist.CountryCode)
		if code == "" || code == music.CountryCodeUnknown {
			continue
		}
		country, err := s.catalog.GetCountryByCode(ctx, code)
		if err != nil {
			if errors.Is(err, music.ErrNotFound) {
				slog.Debug("No country for code", "artist", artist.Name, "code", artist.CountryCode)
				continue
			}
			return linked, fmt.Errorf("country lookup %q: %w", code, err)
		}

		artist.Country = country
		if err := s.catalog.UpdateArtist(ctx, artist); err != nil {
			slog.Warn("Persisting country link failed", "artist", artist.Name, "error", err)
			continue
		}
		metrics.CountriesLinked.Inc()
		linked++
	}
	slog.Info("Country reconciliation finished", "scanned", len(artists), "linked", linked)
	return linked, nil
}
