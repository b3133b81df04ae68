package enrichment

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
)

// Handler is the handler for the enrichment feature.
type Handler struct {
	service *Service
}

// NewHandler creates a new handler for the enrichment feature.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// EnrichSummaries runs a synchronous biography pass.
func (h *Handler) EnrichSummaries(c *fiber.Ctx) error {
	scanned, err := h.service.EnrichSummaries(c.Context())
	if err != nil {
		if errors.Is(err, ErrNoBiographyProvider) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
		}
		slog.Error("Summary enrichment failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"scanned": scanned})
}

// InferCountries runs one country-inference batch and returns the guesses.
func (h *Handler) InferCountries(c *fiber.Ctx) error {
	guesses, err := h.service.InferCountries(c.Context())
	if err != nil {
		if errors.Is(err, ErrNoClassifier) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
		}
		slog.Error("Country inference failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if guesses == nil {
		guesses = []CountryGuess{}
	}
	return c.JSON(guesses)
}

// LinkCountries reconciles inferred codes against the countries table.
func (h *Handler) LinkCountries(c *fiber.Ctx) error {
	linked, err := h.service.LinkCountries(c.Context())
	if err != nil {
		slog.Error("Country linking failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"linked": linked})
}
