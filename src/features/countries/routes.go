package countries

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers the routes for the countries feature.
func RegisterRoutes(app *fiber.App, service *Service, datasetPath string) {
	handler := NewHandler(service, datasetPath)

	countries := app.Group("/countries")
	countries.Get("/", handler.GetCountries)
	countries.Post("/import", handler.ImportCountries)
}
