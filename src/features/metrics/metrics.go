package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ArtistsIngested counts artists created through the playlist crawler.
	ArtistsIngested = promauto.NewCounter(prometheus.CounterOpts{
		Name: "soundatlas_artists_ingested_total",
		Help: "Artists created by the playlist crawler.",
	})

	// SummariesFetched counts biographies fetched and persisted.
	SummariesFetched = promauto.NewCounter(prometheus.CounterOpts{
		Name: "soundatlas_summaries_fetched_total",
		Help: "Artist biographies fetched from the biography service.",
	})

	// CountriesInferred counts classifier calls that produced a code.
	CountriesInferred = promauto.NewCounter(prometheus.CounterOpts{
		Name: "soundatlas_countries_inferred_total",
		Help: "Country codes written by the classification pass.",
	})

	// CountriesLinked counts artists linked to a country row.
	CountriesLinked = promauto.NewCounter(prometheus.CounterOpts{
		Name: "soundatlas_countries_linked_total",
		Help: "Artists linked to a country row by reconciliation.",
	})

	// ExternalErrors counts failed calls per external service.
	ExternalErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "soundatlas_external_errors_total",
		Help: "Failed calls to external services.",
	}, []string{"service"})
)
