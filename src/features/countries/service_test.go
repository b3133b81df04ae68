package countries

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"soundatlas/src/music"
)

// MockCatalog is a mock implementation of music.Catalog
type MockCatalog struct {
	music.Catalog // Embed interface to avoid implementing all methods, will panic if unused methods called
	added         []*music.Country
}

func (m *MockCatalog) AddCountries(ctx context.Context, countries []*music.Country) error {
	m.added = append(m.added, countries...)
	return nil
}

func writeDataset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "countries.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestImportFromCSV(t *testing.T) {
	mock := &MockCatalog{}
	service := NewService(mock)
	path := writeDataset(t, "COUNTRY,ISO,longitude,latitude\nArgentina,ar,-63.61,-38.41\nUnited Kingdom,GB,-3.43,55.37\n")

	count, err := service.ImportFromCSV(context.Background(), path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 rows, got %d", count)
	}
	if len(mock.added) != 2 {
		t.Fatalf("expected 2 persisted rows, got %d", len(mock.added))
	}
	first := mock.added[0]
	if first.Name != "Argentina" || first.Code != "AR" {
		t.Errorf("expected codes to be uppercased, got %+v", first)
	}
	if first.Longitude != -63.61 || first.Latitude != -38.41 {
		t.Errorf("unexpected coordinates %+v", first)
	}
	if first.ID == "" {
		t.Error("expected a generated id")
	}
}

func TestImportFromCSV_MissingColumn(t *testing.T) {
	service := NewService(&MockCatalog{})
	path := writeDataset(t, "COUNTRY,longitude,latitude\nArgentina,-63.61,-38.41\n")

	if _, err := service.ImportFromCSV(context.Background(), path); err == nil {
		t.Fatal("expected an error for the missing ISO column")
	}
}

func TestImportFromCSV_MissingFile(t *testing.T) {
	service := NewService(&MockCatalog{})

	if _, err := service.ImportFromCSV(context.Background(), "/does/not/exist.csv"); err == nil {
		t.Fatal("expected an error")
	}
}
