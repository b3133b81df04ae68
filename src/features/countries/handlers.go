package countries

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"soundatlas/src/music"
)

// Handler is the handler for the countries feature.
type Handler struct {
	service     *Service
	datasetPath string
}

// NewHandler creates a new handler for the countries feature.
func NewHandler(service *Service, datasetPath string) *Handler {
	return &Handler{service: service, datasetPath: datasetPath}
}

// GetCountries returns all countries.
func (h *Handler) GetCountries(c *fiber.Ctx) error {
	countries, err := h.service.GetAllCountries(c.Context())
	if err != nil {
		slog.Error("Error loading countries", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "error loading countries"})
	}
	return c.JSON(fiber.Map{"countries": countries})
}

// ImportCountries bulk-loads the configured CSV dataset.
func (h *Handler) ImportCountries(c *fiber.Ctx) error {
	count, err := h.service.ImportFromCSV(c.Context(), h.datasetPath)
	if err != nil {
		if errors.Is(err, music.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "countries already imported"})
		}
		slog.Error("Error importing countries", "path", h.datasetPath, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"imported": count})
}
