package genres

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers the routes for the genres feature.
func RegisterRoutes(app *fiber.App, service *Service) {
	handler := NewHandler(service)

	genres := app.Group("/genres")
	genres.Get("/", handler.GetGenres)
	genres.Delete("/:id", handler.DeleteGenre)
}
