// handlers_equipment.go - Equipment catalog handlers
package api

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/techequipments/engine/internal/equipment"
	"github.com/techequipments/engine/internal/models"
	"github.com/techequipments/engine/internal/soe"
	"github.com/techequipments/engine/internal/trend"
)

// EquipmentHandlerImpl implements the EquipmentHandler interface
type EquipmentHandlerImpl struct {
	directory EquipmentDirectory
	series    *trend.Catalog
}

// NewEquipmentHandler creates a new equipment handler
func NewEquipmentHandler(directory EquipmentDirectory, series *trend.Catalog) EquipmentHandler {
	if series == nil {
		series = trend.NewCatalog()
	}
	return &EquipmentHandlerImpl{
		directory: directory,
		series:    series,
	}
}

// equipmentDetail is one equipment with its trend layout
type equipmentDetail struct {
	equipment.Entry
	Station string             `json:"station"`
	Group   models.TypeGroup   `json:"group"`
	Color   string             `json:"color"`
	Series  []trend.SeriesSpec `json:"series"`
	Fields  []trend.Field      `json:"fields"`
}

// HandleListEquipment returns the equipment list filtered by station, type and text
func (h *EquipmentHandlerImpl) HandleListEquipment(c echo.Context) error {
	filter := equipment.Filter{
		Station: c.QueryParam("station"),
		Group:   c.QueryParam("type"),
		Query:   c.QueryParam("q"),
	}

	items, err := h.directory.List(filter)
	if err != nil {
		return NewBadRequestError("invalid equipment filter", err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"items":    items,
		"total":    len(items),
		"stations": h.directory.Stations(),
	})
}

// HandleGetEquipment returns one equipment with its group colour and trend series
func (h *EquipmentHandlerImpl) HandleGetEquipment(c echo.Context) error {
	name := strings.TrimSpace(c.Param("name"))
	if name == "" {
		return NewValidationError("name")
	}

	entry, ok := h.directory.Get(name)
	if !ok {
		return NewNotFoundError("equipment", name)
	}

	group := entry.Group()
	return c.JSON(http.StatusOK, equipmentDetail{
		Entry:   entry,
		Station: entry.Station(),
		Group:   group,
		Color:   soe.GroupColor(group).Hex(),
		Series:  h.series.Series(group),
		Fields:  trend.Fields(group),
	})
}
