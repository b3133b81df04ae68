package enrichment

import (
	"context"
	"fmt"

	"soundatlas/src/features/jobs"
)

// SummaryEnrichTask runs a biography pass over the collection as a job.
type SummaryEnrichTask struct {
	service *Service
}

// NewSummaryEnrichTask creates a new summary enrichment task.
func NewSummaryEnrichTask(service *Service) *SummaryEnrichTask {
	return &SummaryEnrichTask{service: service}
}

func (t *SummaryEnrichTask) MetadataKeys() []string {
	return nil
}

func (t *SummaryEnrichTask) Execute(ctx context.Context, job *jobs.Job, progressUpdater func(int, string)) (map[string]any, error) {
	progressUpdater(0, "Fetching biographies")
	scanned, err := t.service.EnrichSummaries(ctx)
	if err != nil {
		return nil, err
	}
	progressUpdater(100, fmt.Sprintf("Scanned %d artists", scanned))
	return map[string]any{
		"scanned": scanned,
	}, nil
}

// CountryInferTask runs one country-inference batch as a job.
type CountryInferTask struct {
	service *Service
}

// NewCountryInferTask creates a new country inference task.
func NewCountryInferTask(service *Service) *CountryInferTask {
	return &CountryInferTask{service: service}
}

func (t *CountryInferTask) MetadataKeys() []string {
	return nil
}

func (t *CountryInferTask) Execute(ctx context.Context, job *jobs.Job, progressUpdater func(int, string)) (map[string]any, error) {
	progressUpdater(0, "Classifying countries")
	guesses, err := t.service.InferCountries(ctx)
	if err != nil {
		return nil, err
	}
	progressUpdater(100, fmt.Sprintf("Classified %d artists", len(guesses)))
	return map[string]any{
		"classified": len(guesses),
	}, nil
}

// CountryLinkTask reconciles inferred codes against the countries table.
type CountryLinkTask struct {
	service *Service
}

// NewCountryLinkTask creates a new country link task.
func NewCountryLinkTask(service *Service) *CountryLinkTask {
	return &CountryLinkTask{service: service}
}

func (t *CountryLinkTask) MetadataKeys() []string {
	return nil
}

func (t *CountryLinkTask) Execute(ctx context.Context, job *jobs.Job, progressUpdater func(int, string)) (map[string]any, error) {
	progressUpdater(0, "Linking countries")
	linked, err := t.service.LinkCountries(ctx)
	if err != nil {
		return nil, err
	}
	progressUpdater(100, fmt.Sprintf("Linked %d artists", linked))
	return map[string]any{
		"linked": linked,
	}, nil
}
