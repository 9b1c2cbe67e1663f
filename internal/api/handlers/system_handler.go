package handlers

import (
	"net/http"
	"time"

	"github.com/akinsira/guestbookapi/internal/config"
	"github.com/labstack/echo/v4"
)

// SystemHandler serves the operational endpoints
type SystemHandler struct {
	cfg *config.Config
}

// NewSystemHandler creates a new handler for the system endpoints
func NewSystemHandler(cfg *config.Config) *SystemHandler {
	return &SystemHandler{cfg: cfg}
}

// Health reports service liveness
func (h *SystemHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "healthy",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"environment": h.cfg.Environment,
	})
}
