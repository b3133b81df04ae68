package crawling

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers the routes for the crawling feature.
func RegisterRoutes(app *fiber.App, service *Service) {
	handler := NewHandler(service)

	crawl := app.Group("/crawl")
	crawl.Post("/playlists/:id", handler.CrawlPlaylist)
	crawl.Post("/users/:id", handler.CrawlUserPlaylists)
}
