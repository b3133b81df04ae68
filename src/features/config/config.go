package config

// Config holds the application configuration.
type Config struct {
	Server     Server     `yaml:"server"`
	Database   Database   `yaml:"database"`
	Logger     Logger     `yaml:"logger"`
	Telegram   Telegram   `yaml:"telegram"`
	Spotify    Spotify    `yaml:"spotify"`
	LastFM     LastFM     `yaml:"lastfm"`
	Inference  Inference  `yaml:"inference"`
	Enrichment Enrichment `yaml:"enrichment"`
	Crawling   Crawling   `yaml:"crawling"`
	Countries  Countries  `yaml:"countries"`
	Jobs       Jobs       `yaml:"jobs"`
}

// Server holds the configuration for the Fiber server.
type Server struct {
	PrintRoutes bool   `yaml:"show_routes"`
	Port        uint32 `yaml:"port"`
}

// Database holds the configuration for the database.
type Database struct {
	Path string `yaml:"path" validate:"required"`
}

// Logger holds the configuration for the app logging.
type Logger struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type Telegram struct {
	Enabled      bool     `yaml:"enabled"`
	Token        string   `yaml:"token"`
	AllowedUsers []string `yaml:"allowedUsers"`
}

// Spotify holds the client-credential configuration for the playlist catalog
// service.
type Spotify struct {
	Enabled      bool   `yaml:"enabled"`
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
}

// LastFM holds the configuration for the biography lookup service.
type LastFM struct {
	Enabled bool   `yaml:"enabled"`
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
}

// Inference holds the configuration for the country classification service.
type Inference struct {
	Enabled     bool    `yaml:"enabled"`
	APIKey      string  `yaml:"api_key"`
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int64   `yaml:"max_tokens"`
}

// Enrichment tunes the batch enrichment passes.
type Enrichment struct {
	BatchLimit        int `yaml:"batch_limit" validate:"gt=0"`
	MinSummaryLength  int `yaml:"min_summary_length" validate:"gte=0"`
	Workers           int `yaml:"workers" validate:"gt=0"`
	RequestIntervalMS int `yaml:"request_interval_ms" validate:"gte=0"`
}

// Crawling tunes the playlist crawler.
type Crawling struct {
	PlaylistPageSize  int `yaml:"playlist_page_size" validate:"gt=0"`
	RequestIntervalMS int `yaml:"request_interval_ms" validate:"gte=0"`
}

// Countries points at the reference dataset used for country reconciliation.
type Countries struct {
	DatasetPath string `yaml:"dataset_path"`
}

type Jobs struct {
	Log     bool   `yaml:"log"`
	LogPath string `yaml:"log_path"`
}
