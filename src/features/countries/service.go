package countries

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"soundatlas/src/music"
)

// Service loads and serves the country reference dataset. Rows are bulk
// imported once from CSV and read-only afterwards.
type Service struct {
	catalog music.Catalog
}

// NewService creates a new countries service.
func NewService(catalog music.Catalog) *Service {
	return &Service{catalog: catalog}
}

// ImportFromCSV reads the dataset at path and bulk-inserts all rows.
// Expected columns: COUNTRY, ISO, longitude, latitude (header required,
// order free). Returns the number of imported rows.
func (s *Service) ImportFromCSV(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open countries dataset: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read dataset header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"country", "iso", "longitude", "latitude"} {
		if _, ok := cols[required]; !ok {
			return 0, fmt.Errorf("dataset is missing column %q", required)
		}
	}

	records, err := reader.ReadAll()
	if err != nil {
		return 0, fmt.Errorf("read dataset rows: %w", err)
	}

	countries := make([]*music.Country, 0, len(records))
	for _, row := range records {
		longitude, err := strconv.ParseFloat(row[cols["longitude"]], 64)
		if err != nil {
			return 0, fmt.Errorf("row %q: bad longitude: %w", row[cols["country"]], err)
		}
		latitude, err := strconv.ParseFloat(row[cols["latitude"]], 64)
		if err != nil {
			return 0, fmt.Errorf("row %q: bad latitude: %w", row[cols["country"]], err)
		}
		countries = append(countries, &music.Country{
			ID:        music.NewID(),
			Name:      strings.TrimSpace(row[cols["country"]]),
			Code:      strings.ToUpper(strings.TrimSpace(row[cols["iso"]])),
			Longitude: longitude,
			Latitude:  latitude,
		})
	}

	if err := s.catalog.AddCountries(ctx, countries); err != nil {
		return 0, fmt.Errorf("store countries: %w", err)
	}
	slog.Info("Country dataset imported", "rows", len(countries), "path", path)
	return len(countries), nil
}

// GetAllCountries returns every country row.
func (s *Service) GetAllCountries(ctx context.Context) ([]*music.Country, error) {
	return s.catalog.GetCountries(ctx)
}
