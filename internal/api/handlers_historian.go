// handlers_historian.go - Historian ingest and tag inventory handlers
package api

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/techequipments/engine/internal/historian"
)

// HistorianHandlerImpl implements the HistorianHandler interface
type HistorianHandlerImpl struct {
	store HistorianStore
}

// NewHistorianHandler creates a new historian handler
func NewHistorianHandler(store HistorianStore) HistorianHandler {
	return &HistorianHandlerImpl{store: store}
}

type ingestRequest struct {
	Name string `json:"name"`
	Data string `json:"data"` // base64 CSV
}

// HandleIngest appends "timestamp,tag,value[,quality]" lines to the historian.
// The body is a multipart "file", raw text/csv, or base64 JSON.
func (h *HistorianHandlerImpl) HandleIngest(c echo.Context) error {
	r, name, err := ingestBody(c)
	if err != nil {
		return err
	}
	defer r.Close()

	stats, err := historian.IngestCSV(r, h.store, nil)
	if err != nil {
		return NewInternalError("ingest failed", err)
	}
	fmt.Printf("[Historian] Ingested %s: %d samples over %d tags (%d rejected)\n",
		name, stats.Samples, len(stats.Tags), len(stats.Errors))
	return c.JSON(http.StatusCreated, stats)
}

func ingestBody(c echo.Context) (io.ReadCloser, string, error) {
	ct := c.Request().Header.Get(echo.HeaderContentType)
	switch {
	case strings.HasPrefix(ct, echo.MIMEMultipartForm):
		fh, err := c.FormFile("file")
		if err != nil {
			return nil, "", NewBadRequestError("missing file field", err)
		}
		f, err := fh.Open()
		if err != nil {
			return nil, "", NewInternalError("failed to open upload", err)
		}
		return f, fh.Filename, nil

	case strings.HasPrefix(ct, echo.MIMEApplicationJSON):
		var req ingestRequest
		if err := c.Bind(&req); err != nil {
			return nil, "", NewBadRequestError("invalid JSON body", err)
		}
		if req.Data == "" {
			return nil, "", NewValidationError("data")
		}
		decoded, err := base64.StdEncoding.DecodeString(req.Data)
		if err != nil {
			return nil, "", NewBadRequestError("invalid base64 data", err)
		}
		name := req.Name
		if name == "" {
			name = "request"
		}
		return io.NopCloser(strings.NewReader(string(decoded))), name, nil

	default:
		return c.Request().Body, "request", nil
	}
}

// HandleListTags returns the stored tags with sample counts and extents
func (h *HistorianHandlerImpl) HandleListTags(c echo.Context) error {
	tags, err := h.store.Tags(c.Request().Context())
	if err != nil {
		if c.Request().Context().Err() != nil {
			return nil
		}
		return NewInternalError("failed to list tags", err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"tags":  tags,
		"total": len(tags),
	})
}

// HistorianStore is the sample store behind the ingest endpoints
type HistorianStore interface {
	historian.Appender
	Tags(ctx context.Context) ([]historian.TagInfo, error)
}
