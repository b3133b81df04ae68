package crawling

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
)

// Handler is the handler for the crawling feature.
type Handler struct {
	service *Service
}

// NewHandler creates a new handler for the crawling feature.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// CrawlPlaylist ingests all unknown artists found in one playlist.
func (h *Handler) CrawlPlaylist(c *fiber.Ctx) error {
	playlistID := c.Params("id")
	ingested, err := h.service.IngestFromPlaylist(c.Context(), playlistID)
	if err != nil {
		slog.Error("Playlist crawl failed", "playlist", playlistID, "error", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"ingested": ingested})
}

// CrawlUserPlaylists crawls every playlist owned by a user.
func (h *Handler) CrawlUserPlaylists(c *fiber.Ctx) error {
	userID := c.Params("id")
	processed, err := h.service.IngestFromUserPlaylists(c.Context(), userID)
	if err != nil {
		slog.Error("User crawl failed", "user", userID, "error", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error(), "processed": processed})
	}
	return c.JSON(fiber.Map{"playlists": processed})
}
