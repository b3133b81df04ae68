package main

import (
	"log"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"soundatlas/src/features/artists"
	"soundatlas/src/features/config"
	"soundatlas/src/features/countries"
	"soundatlas/src/features/crawling"
	"soundatlas/src/features/enrichment"
	"soundatlas/src/features/genres"
	"soundatlas/src/features/hosting"
	"soundatlas/src/features/jobs"
	"soundatlas/src/features/logging"
	"soundatlas/src/infra/database"
	"soundatlas/src/infra/inference"
	"soundatlas/src/infra/lastfm"
	"soundatlas/src/infra/pacer"
	"soundatlas/src/infra/spotify"
)

func main() {
	// Load configuration
	cfgManager, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg := cfgManager.Get()

	// Setup default logger with slog
	logger := logging.SetupLogger(cfgManager)
	slog.SetDefault(logger)

	// Create the database catalog
	catalog, err := database.NewSqliteCatalog(cfg.Database.Path)
	if err != nil {
		log.Fatalf("failed to open catalog: %v", err)
	}

	// Create the job service
	jobService := jobs.NewService(&cfg.Jobs)

	// Core catalog services
	genreService := genres.NewService(catalog)
	artistService := artists.NewService(catalog, genreService)
	countryService := countries.NewService(catalog)

	// Playlist crawler
	var crawlService *crawling.Service
	if cfg.Spotify.Enabled {
		spotifyLimiter := pacer.New(time.Duration(cfg.Crawling.RequestIntervalMS) * time.Millisecond)
		directory := spotify.NewClient(cfg.Spotify.ClientID, cfg.Spotify.ClientSecret, spotifyLimiter)
		crawlService = crawling.NewService(directory, artistService, catalog, spotifyLimiter, cfg.Crawling.PlaylistPageSize)

		jobService.RegisterTask("playlist_crawl", crawling.NewPlaylistCrawlTask(crawlService))
		jobService.RegisterTask("user_crawl", crawling.NewUserCrawlTask(crawlService))
	}

	// Enrichment pipeline
	var enrichService *enrichment.Service
	if cfg.LastFM.Enabled || cfg.Inference.Enabled {
		var bio enrichment.BiographyProvider
		if cfg.LastFM.Enabled {
			bio = lastfm.NewClient(cfg.LastFM.APIKey, cfg.LastFM.BaseURL)
		}
		var classifier enrichment.CountryClassifier
		if cfg.Inference.Enabled {
			classifier = inference.NewClassifier(cfg.Inference.APIKey, cfg.Inference.Model, cfg.Inference.Temperature, cfg.Inference.MaxTokens)
		}
		enrichLimiter := pacer.New(time.Duration(cfg.Enrichment.RequestIntervalMS) * time.Millisecond)
		enrichService = enrichment.NewService(catalog, bio, classifier, enrichLimiter, enrichment.Options{
			BatchLimit:       cfg.Enrichment.BatchLimit,
			MinSummaryLength: cfg.Enrichment.MinSummaryLength,
			Workers:          cfg.Enrichment.Workers,
		})

		if cfg.LastFM.Enabled {
			jobService.RegisterTask("summary_enrich", enrichment.NewSummaryEnrichTask(enrichService))
		}
		if cfg.Inference.Enabled {
			jobService.RegisterTask("country_infer", enrichment.NewCountryInferTask(enrichService))
			jobService.RegisterTask("country_link", enrichment.NewCountryLinkTask(enrichService))
		}
	}

	// Create and start the Telegram bot if enabled
	var telegramBot *hosting.TelegramBot
	if cfg.Telegram.Enabled {
		telegramBot, err = hosting.NewTelegramBot(cfgManager, catalog, jobService)
		if err != nil {
			slog.Error("Failed to initialize Telegram bot", "error", err)
		} else {
			go telegramBot.Start()
			slog.Info("Telegram bot started")
		}
	}

	// Create and start the HTTP server
	server := hosting.NewServer(cfgManager, hosting.Services{
		Artists:    artistService,
		Genres:     genreService,
		Countries:  countryService,
		Crawling:   crawlService,
		Enrichment: enrichService,
		Jobs:       jobService,
	})
	go func() {
		if err := server.Start(); err != nil {
			slog.Error("Server stopped", "error", err)
		}
	}()
	slog.Info("Server started. Press Ctrl+C to shut down.", "port", cfg.Server.Port)

	// Wait for a shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	slog.Info("Shutting down server...")

	if telegramBot != nil {
		telegramBot.Stop()
		slog.Info("Telegram bot stopped")
	}

	if err := server.Shutdown(); err != nil {
		log.Fatalf("failed to shutdown server: %v", err)
	}
	slog.Info("Server gracefully shut down.")
}
