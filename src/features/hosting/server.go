package hosting

import (
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"soundatlas/src/features/artists"
	"soundatlas/src/features/config"
	"soundatlas/src/features/countries"
	"soundatlas/src/features/crawling"
	"soundatlas/src/features/enrichment"
	"soundatlas/src/features/genres"
	"soundatlas/src/features/jobs"
	"soundatlas/src/features/metrics"
)

// Server is the HTTP server for the application.
type Server struct {
	app  *fiber.App
	port uint32
}

// Services bundles the feature services the server exposes.
type Services struct {
	Artists    *artists.Service
	Genres     *genres.Service
	Countries  *countries.Service
	Crawling   *crawling.Service
	Enrichment *enrichment.Service
	Jobs       *jobs.Service
}

// NewServer creates a new HTTP server.
func NewServer(cfg *config.Manager, services Services) *Server {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			slog.Error("Internal Server Error", "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
		AppName:               "Soundatlas",
		DisableStartupMessage: true,
		EnablePrintRoutes:     cfg.Get().Server.PrintRoutes,
	})

	app.Use(LogAllRequestsMiddleware())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})

	artists.RegisterRoutes(app, services.Artists)
	genres.RegisterRoutes(app, services.Genres)
	countries.RegisterRoutes(app, services.Countries, cfg.Get().Countries.DatasetPath)
	config.RegisterRoutes(app, cfg)
	jobs.RegisterRoutes(app, services.Jobs)
	metrics.RegisterRoutes(app)
	if cfg.Get().Spotify.Enabled {
		crawling.RegisterRoutes(app, services.Crawling)
	}
	if cfg.Get().LastFM.Enabled || cfg.Get().Inference.Enabled {
		enrichment.RegisterRoutes(app, services.Enrichment)
	}

	return &Server{app: app, port: cfg.Get().Server.Port}
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	return s.app.Listen(":" + fmt.Sprint(s.port))
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
