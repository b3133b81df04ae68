package genres

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"soundatlas/src/music"
)

// Handler is the handler for the genres feature.
type Handler struct {
	service *Service
}

// NewHandler creates a new handler for the genres feature.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetGenres returns all genres with their artists.
func (h *Handler) GetGenres(c *fiber.Ctx) error {
	genres, err := h.service.GetAllGenres(c.Context())
	if err != nil {
		slog.Error("Error loading genres", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "error loading genres"})
	}
	return c.JSON(fiber.Map{"genres": genres})
}

// DeleteGenre deletes a genre by id.
func (h *Handler) DeleteGenre(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.service.DeleteGenre(c.Context(), id); err != nil {
		if errors.Is(err, music.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "genre not found"})
		}
		slog.Error("Error deleting genre", "id", id, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "error deleting genre"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
