package artists

import (
	"errors"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"soundatlas/src/music"
)

// Handler is the handler for the artists feature.
type Handler struct {
	service  *Service
	validate *validator.Validate
}

// NewHandler creates a new handler for the artists feature.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service, validate: validator.New()}
}

type createArtistRequest struct {
	Name         string   `json:"name" validate:"required,max=500"`
	Genres       []string `json:"genres" validate:"required,dive,required"`
	DiscoveredBy string   `json:"discoveredBy"`
	SpotifyID    string   `json:"spotifyId"`
	SpotifyURI   string   `json:"spotifyUri"`
	ImageURL     string   `json:"imageUrl"`
}

type updateArtistRequest struct {
	Name   string   `json:"name" validate:"omitempty,max=500"`
	Genres []string `json:"genres" validate:"omitempty,dive,required"`
}

// GetArtists returns all artists.
func (h *Handler) GetArtists(c *fiber.Ctx) error {
	artists, err := h.service.GetAllArtists(c.Context())
	if err != nil {
		slog.Error("Error loading artists", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "error loading artists"})
	}
	return c.JSON(fiber.Map{"artists": artists})
}

// GetArtist returns one artist by id.
func (h *Handler) GetArtist(c *fiber.Ctx) error {
	id := c.Params("id")
	artist, err := h.service.GetArtistByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, music.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "artist not found"})
		}
		slog.Error("Error loading artist", "id", id, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "error loading artist"})
	}
	return c.JSON(artist)
}

// CreateArtist creates an artist together with its genres.
func (h *Handler) CreateArtist(c *fiber.Ctx) error {
	var req createArtistRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	artist, err := h.service.CreateArtistWithGenres(c.Context(), CreateArtistParams{
		Name:         req.Name,
		Genres:       req.Genres,
		DiscoveredBy: req.DiscoveredBy,
		SpotifyID:    req.SpotifyID,
		SpotifyURI:   req.SpotifyURI,
		ImageURL:     req.ImageURL,
	})
	if err != nil {
		if errors.Is(err, music.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "artist with the same name already exists"})
		}
		slog.Error("Error creating artist", "name", req.Name, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "error creating artist"})
	}
	return c.Status(fiber.StatusCreated).JSON(artist)
}

// UpdateArtist replaces an artist's name and genres.
func (h *Handler) UpdateArtist(c *fiber.Ctx) error {
	id := c.Params("id")
	var req updateArtistRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	artist, err := h.service.UpdateArtistWithGenres(c.Context(), id, req.Name, req.Genres)
	if err != nil {
		switch {
		case errors.Is(err, music.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "artist not found"})
		case errors.Is(err, music.ErrDuplicate):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "artist with the same name already exists"})
		}
		slog.Error("Error updating artist", "id", id, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "error updating artist"})
	}
	return c.JSON(artist)
}

// DeleteArtist deletes an artist by id.
func (h *Handler) DeleteArtist(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.service.DeleteArtist(c.Context(), id); err != nil {
		if errors.Is(err, music.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "artist not found"})
		}
		slog.Error("Error deleting artist", "id", id, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "error deleting artist"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
