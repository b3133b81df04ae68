package enrichment

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers the routes for the enrichment feature.
func RegisterRoutes(app *fiber.App, service *Service) {
	handler := NewHandler(service)

	enrich := app.Group("/enrich")
	enrich.Post("/summaries", handler.EnrichSummaries)
	enrich.Post("/countries", handler.InferCountries)
	enrich.Post("/countries/link", handler.LinkCountries)
}
