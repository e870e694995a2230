// handlers_trend.go - Trend session handlers
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/techequipments/engine/internal/models"
	"github.com/techequipments/engine/internal/trend"
)

// TrendHandlerImpl implements the TrendHandler interface
type TrendHandlerImpl struct {
	sessions  SessionManager
	directory EquipmentDirectory
}

// NewTrendHandler creates a new trend handler. directory may be nil, in
// which case the group must be given by the client.
func NewTrendHandler(sessions SessionManager, directory EquipmentDirectory) TrendHandler {
	return &TrendHandlerImpl{
		sessions:  sessions,
		directory: directory,
	}
}

type equipmentRequest struct {
	Equipment     string `json:"equipment"`
	Group         string `json:"group,omitempty"`
	WindowMinutes int    `json:"windowMinutes,omitempty"`
}

// resolveGroup picks the request group, falling back to the catalog type
func (h *TrendHandlerImpl) resolveGroup(req equipmentRequest) (models.TypeGroup, error) {
	name := strings.TrimSpace(req.Equipment)
	if name == "" {
		return models.GroupAll, NewValidationError("equipment")
	}

	var (
		entryGroup models.TypeGroup
		known      bool
	)
	if h.directory != nil {
		entry, ok := h.directory.Get(name)
		if !ok {
			return models.GroupAll, NewNotFoundError("equipment", name)
		}
		entryGroup, known = entry.Group(), true
	}

	if strings.TrimSpace(req.Group) != "" {
		g, err := models.ParseTypeGroup(req.Group)
		if err != nil {
			return models.GroupAll, NewBadRequestError("unknown type group", err)
		}
		return g, nil
	}
	if !known {
		return models.GroupAll, NewValidationError("group")
	}
	return entryGroup, nil
}

func (h *TrendHandlerImpl) controller(id string) (*trend.Controller, error) {
	ctrl, ok := h.sessions.Controller(id)
	if !ok {
		return nil, NewNotFoundError("trend session", id)
	}
	h.sessions.TouchSession(id)
	return ctrl, nil
}

// HandleStartSession opens a live trend for an equipment
func (h *TrendHandlerImpl) HandleStartSession(c echo.Context) error {
	var req equipmentRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid request body", err)
	}
	if req.WindowMinutes < 0 {
		return NewValidationError("windowMinutes")
	}
	group, err := h.resolveGroup(req)
	if err != nil {
		return err
	}

	info, err := h.sessions.StartSession(req.Equipment, group, req.WindowMinutes)
	if err != nil {
		if apiErr := domainError(err); apiErr != nil {
			return apiErr
		}
		return NewInternalError("failed to start trend session", err)
	}
	return c.JSON(http.StatusCreated, info)
}

// HandleSnapshot returns the buffer, axes and status of a session
func (h *TrendHandlerImpl) HandleSnapshot(c echo.Context) error {
	ctrl, err := h.controller(c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ctrl.Snapshot())
}

// HandlePointsMsgpack returns the buffered points in MessagePack format
func (h *TrendHandlerImpl) HandlePointsMsgpack(c echo.Context) error {
	ctrl, err := h.controller(c.Param("id"))
	if err != nil {
		return err
	}

	snap := ctrl.Snapshot()
	data, err := msgpack.Marshal(map[string]interface{}{
		"equipment": snap.Equipment,
		"mode":      snap.Mode.String(),
		"visualMin": snap.Axis.VisualMin.UnixMilli(),
		"visualMax": snap.Axis.VisualMax.UnixMilli(),
		"yMin":      snap.Axis.YMin,
		"yMax":      snap.Axis.YMax,
		"points":    snap.Points,
	})
	if err != nil {
		return NewInternalError("failed to encode msgpack", err)
	}
	return c.Blob(http.StatusOK, "application/msgpack", data)
}

// HandleChangeEquipment points the session at another equipment
func (h *TrendHandlerImpl) HandleChangeEquipment(c echo.Context) error {
	id := c.Param("id")
	var req equipmentRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid request body", err)
	}
	group, err := h.resolveGroup(req)
	if err != nil {
		return err
	}

	if err := h.sessions.ChangeEquipment(c.Request().Context(), id, req.Equipment, group); err != nil {
		if apiErr := domainError(err); apiErr != nil {
			return apiErr
		}
		if c.Request().Context().Err() != nil {
			return nil
		}
		return NewInternalError("failed to change equipment", err)
	}

	info, _ := h.sessions.GetSession(id)
	return c.JSON(http.StatusOK, info)
}

type rangeRequest struct {
	VisualMin time.Time `json:"visualMin"`
	VisualMax time.Time `json:"visualMax"`
}

// HandleRange applies a scroll or zoom; the view leaves live mode
func (h *TrendHandlerImpl) HandleRange(c echo.Context) error {
	ctrl, err := h.controller(c.Param("id"))
	if err != nil {
		return err
	}
	var req rangeRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid request body", err)
	}
	if req.VisualMin.IsZero() || !req.VisualMax.After(req.VisualMin) {
		return NewValidationError("visualMin/visualMax")
	}

	accepted := ctrl.OnUserRangeChanged(req.VisualMin, req.VisualMax)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"accepted": accepted,
		"mode":     ctrl.Mode().String(),
	})
}

type liveRequest struct {
	Reset bool `json:"reset"`
}

// HandleLive returns the session to live mode
func (h *TrendHandlerImpl) HandleLive(c echo.Context) error {
	id := c.Param("id")
	ctrl, err := h.controller(id)
	if err != nil {
		return err
	}
	var req liveRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid request body", err)
	}

	if err := ctrl.SetLiveMode(c.Request().Context(), req.Reset); err != nil {
		// client went away
		return nil
	}
	h.sessions.Poke(id)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"mode":  ctrl.Mode().String(),
		"reset": req.Reset,
	})
}

// HandleKeepAlive extends the session lifetime
func (h *TrendHandlerImpl) HandleKeepAlive(c echo.Context) error {
	id := c.Param("id")
	if !h.sessions.TouchSession(id) {
		return NewNotFoundError("trend session", id)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// HandleCloseSession stops and removes a session
func (h *TrendHandlerImpl) HandleCloseSession(c echo.Context) error {
	id := c.Param("id")
	if !h.sessions.CloseSession(id) {
		return NewNotFoundError("trend session", id)
	}
	return c.NoContent(http.StatusNoContent)
}
