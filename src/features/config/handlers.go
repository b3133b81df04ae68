package config

import (
	"github.com/gofiber/fiber/v2"
)

// Handler exposes the running configuration.
type Handler struct {
	manager *Manager
}

// NewHandler creates a new handler for the config feature.
func NewHandler(manager *Manager) *Handler {
	return &Handler{manager: manager}
}

// GetConfig returns the redacted configuration as JSON.
func (h *Handler) GetConfig(c *fiber.Ctx) error {
	c.Set("Content-Type", "application/json")
	return c.SendString(h.manager.GetJSON())
}
