package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"soundatlas/src/music"
)

// SqliteCatalog is a SQLite implementation of the music.Catalog interface.
type SqliteCatalog struct {
	db *gorm.DB
}

// NewSqliteCatalog opens (and migrates) the catalog database at path.
func NewSqliteCatalog(path string) (*SqliteCatalog, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database at %q: %w", path, err)
	}

	if err := db.AutoMigrate(&artistRecord{}, &genreRecord{}, &countryRecord{}); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	return &SqliteCatalog{db: db}, nil
}

type artistRecord struct {
	ID           string `gorm:"primaryKey"`
	Name         string
	NameKey      string `gorm:"uniqueIndex"`
	Summary      string
	CountryCode  string
	CountryID    *string
	Country      *countryRecord `gorm:"foreignKey:CountryID"`
	DiscoveredBy string
	SpotifyID    string
	SpotifyURI   string
	ImageURL     string
	CreatedAt    time.Time
	Genres       []*genreRecord `gorm:"many2many:artist_genres"`
}

func (artistRecord) TableName() string { return "artists" }

type genreRecord struct {
	ID      string `gorm:"primaryKey"`
	Name    string
	NameKey string          `gorm:"uniqueIndex"`
	Artists []*artistRecord `gorm:"many2many:artist_genres"`
}

func (genreRecord) TableName() string { return "genres" }

type countryRecord struct {
	ID        string `gorm:"primaryKey"`
	Name      string `gorm:"uniqueIndex:idx_country_name_code"`
	Code      string `gorm:"uniqueIndex:idx_country_name_code;index"`
	Longitude float64
	Latitude  float64
}

func (countryRecord) TableName() string { return "countries" }

// translate maps gorm errors to the domain sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return music.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return music.ErrDuplicate
	default:
		return err
	}
}

// AddArtist inserts a new artist together with its genre links.
func (c *SqliteCatalog) AddArtist(ctx context.Context, artist *music.Artist) error {
	record := artistToRecord(artist)
	if err := c.db.WithContext(ctx).Omit("Genres").Create(record).Error; err != nil {
		return translate(err)
	}
	if len(record.Genres) > 0 {
		if err := c.db.WithContext(ctx).Model(record).Association("Genres").Append(record.Genres); err != nil {
			return translate(err)
		}
	}
	return nil
}

// GetArtist fetches one artist by id with its genres and country loaded.
func (c *SqliteCatalog) GetArtist(ctx context.Context, id string) (*music.Artist, error) {
	var record artistRecord
	err := c.db.WithContext(ctx).Preload("Genres").Preload("Country").First(&record, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return recordToArtist(&record), nil
}

// GetArtistByName fetches an artist by normalized name. A missing artist is
// (nil, nil), not an error.
func (c *SqliteCatalog) GetArtistByName(ctx context.Context, name string) (*music.Artist, error) {
	var record artistRecord
	err := c.db.WithContext(ctx).Preload("Genres").Preload("Country").
		First(&record, "name_key = ?", music.NormalizeName(name)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return recordToArtist(&record), nil
}

// GetArtists returns every artist with genres and country loaded.
func (c *SqliteCatalog) GetArtists(ctx context.Context) ([]*music.Artist, error) {
	var records []*artistRecord
	err := c.db.WithContext(ctx).Preload("Genres").Preload("Country").
		Order("created_at").Find(&records).Error
	if err != nil {
		return nil, err
	}
	return recordsToArtists(records), nil
}

// GetArtistsCount returns the number of stored artists.
func (c *SqliteCatalog) GetArtistsCount(ctx context.Context) (int, error) {
	var count int64
	err := c.db.WithContext(ctx).Model(&artistRecord{}).Count(&count).Error
	return int(count), err
}

// UpdateArtist persists the artist's fields and replaces its genre links.
func (c *SqliteCatalog) UpdateArtist(ctx context.Context, artist *music.Artist) error {
	record := artistToRecord(artist)
	result := c.db.WithContext(ctx).Omit("Genres", "CreatedAt").Save(record)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return music.ErrNotFound
	}
	if err := c.db.WithContext(ctx).Model(record).Association("Genres").Replace(record.Genres); err != nil {
		return translate(err)
	}
	return nil
}

// DeleteArtist removes an artist and its genre links.
func (c *SqliteCatalog) DeleteArtist(ctx context.Context, id string) error {
	record := artistRecord{ID: id}
	if err := c.db.WithContext(ctx).Model(&record).Association("Genres").Clear(); err != nil {
		return translate(err)
	}
	result := c.db.WithContext(ctx).Delete(&record)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return music.ErrNotFound
	}
	return nil
}

// GetInferenceCandidates returns artists with a biography whose country is
// still unresolved, capped at limit. Genres are loaded because UpdateArtist
// replaces the association from the passed artist.
func (c *SqliteCatalog) GetInferenceCandidates(ctx context.Context, limit int) ([]*music.Artist, error) {
	var records []*artistRecord
	err := c.db.WithContext(ctx).
		Preload("Genres").
		Where("summary <> ''").
		Where("country_id IS NULL").
		Where("country_code = '' OR country_code = ?", music.CountryCodeUnknown).
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return recordsToArtists(records), nil
}

// GetUnlinkedArtists returns artists carrying an inferred country code that
// has not been matched to a country row yet. Genres are loaded because
// UpdateArtist replaces the association from the passed artist.
func (c *SqliteCatalog) GetUnlinkedArtists(ctx context.Context) ([]*music.Artist, error) {
	var records []*artistRecord
	err := c.db.WithContext(ctx).
		Preload("Genres").
		Where("country_id IS NULL").
		Where("country_code <> '' AND country_code <> ?", music.CountryCodeUnknown).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return recordsToArtists(records), nil
}

// AddGenre inserts a new genre.
func (c *SqliteCatalog) AddGenre(ctx context.Context, genre *music.Genre) error {
	record := genreRecord{
		ID:      genre.ID,
		Name:    genre.Name,
		NameKey: music.NormalizeName(genre.Name),
	}
	return translate(c.db.WithContext(ctx).Create(&record).Error)
}

// GetGenreByName fetches a genre by normalized name. A missing genre is
// (nil, nil), not an error.
func (c *SqliteCatalog) GetGenreByName(ctx context.Context, name string) (*music.Genre, error) {
	var record genreRecord
	err := c.db.WithContext(ctx).First(&record, "name_key = ?", music.NormalizeName(name)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return recordToGenre(&record), nil
}

// GetGenres returns every genre, without artists.
func (c *SqliteCatalog) GetGenres(ctx context.Context) ([]*music.Genre, error) {
	var records []*genreRecord
	if err := c.db.WithContext(ctx).Order("name").Find(&records).Error; err != nil {
		return nil, err
	}
	genres := make([]*music.Genre, 0, len(records))
	for _, record := range records {
		genres = append(genres, recordToGenre(record))
	}
	return genres, nil
}

// GetGenresWithArtists returns every genre with its artist list loaded.
func (c *SqliteCatalog) GetGenresWithArtists(ctx context.Context) ([]*music.Genre, error) {
	var records []*genreRecord
	err := c.db.WithContext(ctx).Preload("Artists").Order("name").Find(&records).Error
	if err != nil {
		return nil, err
	}
	genres := make([]*music.Genre, 0, len(records))
	for _, record := range records {
		genre := recordToGenre(record)
		for _, artist := range record.Artists {
			genre.Artists = append(genre.Artists, recordToArtist(artist))
		}
		genres = append(genres, genre)
	}
	return genres, nil
}

// DeleteGenre removes a genre and its artist links.
func (c *SqliteCatalog) DeleteGenre(ctx context.Context, id string) error {
	record := genreRecord{ID: id}
	if err := c.db.WithContext(ctx).Model(&record).Association("Artists").Clear(); err != nil {
		return translate(err)
	}
	result := c.db.WithContext(ctx).Delete(&record)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return music.ErrNotFound
	}
	return nil
}

// AddCountries bulk-inserts the reference country table.
func (c *SqliteCatalog) AddCountries(ctx context.Context, countries []*music.Country) error {
	if len(countries) == 0 {
		return nil
	}
	records := make([]*countryRecord, 0, len(countries))
	for _, country := range countries {
		records = append(records, &countryRecord{
			ID:        country.ID,
			Name:      country.Name,
			Code:      country.Code,
			Longitude: country.Longitude,
			Latitude:  country.Latitude,
		})
	}
	return translate(c.db.WithContext(ctx).CreateInBatches(records, 100).Error)
}

// GetCountries returns the full country table.
func (c *SqliteCatalog) GetCountries(ctx context.Context) ([]*music.Country, error) {
	var records []*countryRecord
	if err := c.db.WithContext(ctx).Order("name").Find(&records).Error; err != nil {
		return nil, err
	}
	countries := make([]*music.Country, 0, len(records))
	for _, record := range records {
		countries = append(countries, recordToCountry(record))
	}
	return countries, nil
}

// GetCountryByCode fetches one country by its ISO code.
func (c *SqliteCatalog) GetCountryByCode(ctx context.Context, code string) (*music.Country, error) {
	var record countryRecord
	if err := c.db.WithContext(ctx).First(&record, "code = ?", code).Error; err != nil {
		return nil, translate(err)
	}
	return recordToCountry(&record), nil
}

func artistToRecord(artist *music.Artist) *artistRecord {
	record := &artistRecord{
		ID:           artist.ID,
		Name:         artist.Name,
		NameKey:      music.NormalizeName(artist.Name),
		Summary:      artist.Summary,
		CountryCode:  artist.CountryCode,
		DiscoveredBy: artist.DiscoveredBy,
		SpotifyID:    artist.SpotifyID,
		SpotifyURI:   artist.SpotifyURI,
		ImageURL:     artist.ImageURL,
		CreatedAt:    artist.CreatedAt,
	}
	if artist.Country != nil {
		record.CountryID = &artist.Country.ID
	}
	for _, genre := range artist.Genres {
		record.Genres = append(record.Genres, &genreRecord{
			ID:      genre.ID,
			Name:    genre.Name,
			NameKey: music.NormalizeName(genre.Name),
		})
	}
	return record
}

func recordToArtist(record *artistRecord) *music.Artist {
	artist := &music.Artist{
		ID:           record.ID,
		Name:         record.Name,
		Summary:      record.Summary,
		CountryCode:  record.CountryCode,
		DiscoveredBy: record.DiscoveredBy,
		SpotifyID:    record.SpotifyID,
		SpotifyURI:   record.SpotifyURI,
		ImageURL:     record.ImageURL,
		CreatedAt:    record.CreatedAt,
	}
	if record.Country != nil {
		artist.Country = recordToCountry(record.Country)
	}
	for _, genre := range record.Genres {
		artist.Genres = append(artist.Genres, recordToGenre(genre))
	}
	return artist
}

func recordsToArtists(records []*artistRecord) []*music.Artist {
	artists := make([]*music.Artist, 0, len(records))
	for _, record := range records {
		artists = append(artists, recordToArtist(record))
	}
	return artists
}

func recordToGenre(record *genreRecord) *music.Genre {
	return &music.Genre{ID: record.ID, Name: record.Name}
}

func recordToCountry(record *countryRecord) *music.Country {
	return &music.Country{
		ID:        record.ID,
		Name:      record.Name,
		Code:      record.Code,
		Longitude: record.Longitude,
		Latitude:  record.Latitude,
	}
}
