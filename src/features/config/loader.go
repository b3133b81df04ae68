package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Load reads a YAML file from the given path and returns a new Manager.
// If the file doesn't exist, creates a default configuration.
func Load(path string) (*Manager, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		slog.Info("Config file not found, creating default configuration", "path", path)
		defaultCfg := createDefaultConfig()

		if err := saveConfigFile(path, defaultCfg); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}

		slog.Info("Default configuration created successfully", "path", path)
		return NewManager(defaultCfg), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)

	// Override secrets with environment variables if set
	if token := os.Getenv("TELEGRAM_TOKEN"); token != "" {
		cfg.Telegram.Token = token
	}
	if id := os.Getenv("SPOTIFY_CLIENT_ID"); id != "" {
		cfg.Spotify.ClientID = id
	}
	if secret := os.Getenv("SPOTIFY_CLIENT_SECRET"); secret != "" {
		cfg.Spotify.ClientSecret = secret
	}
	if key := os.Getenv("LASTFM_API_KEY"); key != "" {
		cfg.LastFM.APIKey = key
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		cfg.Inference.APIKey = key
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	if err := checkCredentials(&cfg); err != nil {
		return nil, err
	}

	return NewManager(&cfg), nil
}

// checkCredentials rejects configurations that enable an external service
// without its credential. Batch operations must not discover this mid-run.
func checkCredentials(cfg *Config) error {
	if cfg.Spotify.Enabled && (cfg.Spotify.ClientID == "" || cfg.Spotify.ClientSecret == "") {
		return fmt.Errorf("spotify is enabled but client_id/client_secret are not configured")
	}
	if cfg.LastFM.Enabled && cfg.LastFM.APIKey == "" {
		return fmt.Errorf("lastfm is enabled but api_key is not configured")
	}
	if cfg.Inference.Enabled && cfg.Inference.APIKey == "" {
		return fmt.Errorf("inference is enabled but api_key is not configured")
	}
	if cfg.Telegram.Enabled && cfg.Telegram.Token == "" {
		return fmt.Errorf("telegram is enabled but token is not configured")
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Enrichment.BatchLimit == 0 {
		cfg.Enrichment.BatchLimit = 100
	}
	if cfg.Enrichment.MinSummaryLength == 0 {
		cfg.Enrichment.MinSummaryLength = 300
	}
	if cfg.Enrichment.Workers == 0 {
		cfg.Enrichment.Workers = 4
	}
	if cfg.Enrichment.RequestIntervalMS == 0 {
		cfg.Enrichment.RequestIntervalMS = 500
	}
	if cfg.Crawling.PlaylistPageSize == 0 {
		cfg.Crawling.PlaylistPageSize = 20
	}
	if cfg.Crawling.RequestIntervalMS == 0 {
		cfg.Crawling.RequestIntervalMS = 500
	}
	if cfg.Inference.Model == "" {
		cfg.Inference.Model = "gpt-4o-mini"
	}
	if cfg.Inference.MaxTokens == 0 {
		cfg.Inference.MaxTokens = 16
	}
	if cfg.LastFM.BaseURL == "" {
		cfg.LastFM.BaseURL = "https://ws.audioscrobbler.com/2.0"
	}
}

// createDefaultConfig creates a new Config with sensible default values
func createDefaultConfig() *Config {
	return &Config{
		Server: Server{
			PrintRoutes: false,
			Port:        3636,
		},
		Database: Database{
			Path: "./soundatlas.db",
		},
		Logger: Logger{
			Level:  "info",
			Format: "text",
		},
		Telegram: Telegram{
			Enabled:      false,
			Token:        "", // Can be obtained with https://t.me/BotFather
			AllowedUsers: []string{},
		},
		Spotify: Spotify{
			Enabled:      false,
			ClientID:     "",
			ClientSecret: "",
		},
		LastFM: LastFM{
			Enabled: false,
			APIKey:  "",
			BaseURL: "https://ws.audioscrobbler.com/2.0",
		},
		Inference: Inference{
			Enabled:     false,
			APIKey:      "",
			Model:       "gpt-4o-mini",
			Temperature: 0.1,
			MaxTokens:   16,
		},
		Enrichment: Enrichment{
			BatchLimit:        100,
			MinSummaryLength:  300,
			Workers:           4,
			RequestIntervalMS: 500,
		},
		Crawling: Crawling{
			PlaylistPageSize:  20,
			RequestIntervalMS: 500,
		},
		Countries: Countries{
			DatasetPath: "./countries.csv",
		},
		Jobs: Jobs{
			Log:     true,
			LogPath: "./logs/jobs",
		},
	}
}

// saveConfigFile saves the configuration to the specified file path
func saveConfigFile(path string, cfg *Config) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()
	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}
