// handlers_health.go - Health check handlers
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthHandlerImpl implements the HealthHandler interface
type HealthHandlerImpl struct {
	version   string
	directory EquipmentDirectory
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(version string, directory EquipmentDirectory) HealthHandler {
	return &HealthHandlerImpl{
		version:   version,
		directory: directory,
	}
}

// HandleHealth returns server health status
func (h *HealthHandlerImpl) HandleHealth(c echo.Context) error {
	resp := map[string]interface{}{
		"status":  "ok",
		"version": h.version,
	}
	if h.directory != nil {
		resp["stations"] = len(h.directory.Stations())
	}
	return c.JSON(http.StatusOK, resp)
}
