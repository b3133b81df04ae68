package artists

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers the routes for the artists feature.
func RegisterRoutes(app *fiber.App, service *Service) {
	handler := NewHandler(service)

	artists := app.Group("/artists")
	artists.Get("/", handler.GetArtists)
	artists.Post("/", handler.CreateArtist)
	artists.Get("/:id", handler.GetArtist)
	artists.Put("/:id", handler.UpdateArtist)
	artists.Delete("/:id", handler.DeleteArtist)
}
