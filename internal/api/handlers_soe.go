// handlers_soe.go - SOE extraction and job handlers
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/techequipments/engine/internal/jobs"
	"github.com/techequipments/engine/internal/models"
	"github.com/techequipments/engine/internal/soe"
)

// SoeHandlerImpl implements the SoeHandler interface
type SoeHandlerImpl struct {
	extractor SoeExtractor
	jobs      JobManager
	defaults  soe.Options
}

// NewSoeHandler creates a new SOE handler
func NewSoeHandler(extractor SoeExtractor, jobMgr JobManager, defaults soe.Options) SoeHandler {
	return &SoeHandlerImpl{
		extractor: extractor,
		jobs:      jobMgr,
		defaults:  defaults,
	}
}

// eventRow is an event record with its display colour
type eventRow struct {
	models.EventRecord
	Class soe.EventClass `json:"class" msgpack:"class"`
	Color string         `json:"color" msgpack:"color"`
}

func eventRows(records []models.EventRecord) []eventRow {
	rows := make([]eventRow, len(records))
	for i, r := range records {
		rows[i] = eventRow{
			EventRecord: r,
			Class:       soe.ClassifyEvent(r.EventKey),
			Color:       soe.EventColor(r.EventKey).Hex(),
		}
	}
	return rows
}

func resultBody(result *models.SoeResult) map[string]interface{} {
	return map[string]interface{}{
		"equipment":    result.Equipment,
		"records":      eventRows(result.Records),
		"total":        len(result.Records),
		"trends":       result.Trends,
		"stoppedOnBad": result.StoppedOnBad,
		"truncated":    result.Truncated,
		"elapsedMs":    result.ElapsedMs,
	}
}

// optionsFromQuery overrides the default caps from query parameters
func (h *SoeHandlerImpl) optionsFromQuery(c echo.Context) (soe.Options, error) {
	opts := h.defaults
	for _, p := range []struct {
		name string
		dst  *int
	}{
		{"perEquipmentCap", &opts.PerEquipmentCap},
		{"totalCap", &opts.TotalCap},
	} {
		raw := c.QueryParam(p.name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return opts, NewValidationError(p.name)
		}
		*p.dst = n
	}
	return opts, nil
}

// HandleGetCodes returns the event code table of a type group
func (h *SoeHandlerImpl) HandleGetCodes(c echo.Context) error {
	group, err := models.ParseTypeGroup(c.Param("group"))
	if err != nil {
		return NewBadRequestError("unknown type group", err)
	}
	table, ok := soe.GetGlobalRegistry().Table(group)
	if !ok {
		return NewNotFoundError("code table", group.String())
	}

	type codeRow struct {
		soe.EventCode
		Class soe.EventClass `json:"class"`
		Color string         `json:"color"`
	}
	entries := table.Entries()
	rows := make([]codeRow, len(entries))
	for i, e := range entries {
		rows[i] = codeRow{
			EventCode: e,
			Class:     soe.ClassifyEvent(e.Key),
			Color:     soe.EventColor(e.Key).Hex(),
		}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"group": group,
		"table": table.Name(),
		"codes": rows,
	})
}

// HandleExtract runs an extraction within the request
func (h *SoeHandlerImpl) HandleExtract(c echo.Context) error {
	name := strings.TrimSpace(c.Param("name"))
	if name == "" {
		return NewValidationError("name")
	}
	opts, err := h.optionsFromQuery(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	result, err := h.extractor.Extract(ctx, name, opts, nil)
	if err != nil {
		return extractionError(ctx, name, err)
	}
	return c.JSON(http.StatusOK, resultBody(result))
}

func extractionError(ctx context.Context, name string, err error) error {
	if apiErr := domainError(err); apiErr != nil {
		return apiErr
	}
	if ctx.Err() != nil {
		// client went away
		return nil
	}
	return NewInternalError(fmt.Sprintf("extraction of %s failed", name), err)
}

type startJobRequest struct {
	Equipment       string `json:"equipment"`
	PerEquipmentCap int    `json:"perEquipmentCap"`
	TotalCap        int    `json:"totalCap"`
}

// HandleStartJob queues an async extraction
func (h *SoeHandlerImpl) HandleStartJob(c echo.Context) error {
	var req startJobRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid request body", err)
	}
	if strings.TrimSpace(req.Equipment) == "" {
		return NewValidationError("equipment")
	}
	if req.PerEquipmentCap < 0 {
		return NewValidationError("perEquipmentCap")
	}
	if req.TotalCap < 0 {
		return NewValidationError("totalCap")
	}

	opts := h.defaults
	if req.PerEquipmentCap > 0 {
		opts.PerEquipmentCap = req.PerEquipmentCap
	}
	if req.TotalCap > 0 {
		opts.TotalCap = req.TotalCap
	}

	job, err := h.jobs.StartJob(req.Equipment, opts)
	if err != nil {
		return NewInternalError("failed to start job", err)
	}
	return c.JSON(http.StatusAccepted, job)
}

// HandleJobStatus returns the current status of a job
func (h *SoeHandlerImpl) HandleJobStatus(c echo.Context) error {
	id := c.Param("jobId")
	job, ok := h.jobs.GetJob(id)
	if !ok {
		return NewNotFoundError("job", id)
	}
	return c.JSON(http.StatusOK, job)
}

// HandleJobProgressStream streams job progress via SSE until the job finishes
func (h *SoeHandlerImpl) HandleJobProgressStream(c echo.Context) error {
	id := c.Param("jobId")

	c.Response().Header().Set("Content-Type", "text/event-stream")
	c.Response().Header().Set("Cache-Control", "no-cache")
	c.Response().Header().Set("Connection", "keep-alive")
	c.Response().Header().Set("X-Accel-Buffering", "no")
	c.Response().WriteHeader(http.StatusOK)

	send := func(v interface{}) {
		data, err := json.Marshal(v)
		if err != nil {
			return
		}
		fmt.Fprintf(c.Response(), "data: %s\n\n", data)
		c.Response().Flush()
	}

	job, ok := h.jobs.GetJob(id)
	if !ok {
		send(map[string]string{"error": "job not found"})
		return nil
	}
	send(job)
	if job.Status.Done() {
		return nil
	}

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	last := *job
	for {
		select {
		case <-c.Request().Context().Done():
			return nil
		case <-ticker.C:
			job, ok = h.jobs.GetJob(id)
			if !ok {
				send(map[string]string{"error": "job not found"})
				return nil
			}

			// Only send update if something changed
			if job.Status != last.Status || job.Progress != last.Progress {
				last = *job
				send(job)
			}

			if job.Status.Done() {
				return nil
			}
		}
	}
}

func (h *SoeHandlerImpl) completedResult(id string) (*models.SoeResult, error) {
	job, ok := h.jobs.GetJob(id)
	if !ok {
		return nil, NewNotFoundError("job", id)
	}
	if job.Status != jobs.StatusComplete {
		return nil, NewConflictError(fmt.Sprintf("job %s is %s", id, job.Status))
	}
	result, err := h.jobs.Result(id)
	if err != nil {
		return nil, NewInternalError("failed to read job result", err)
	}
	return result, nil
}

// HandleJobRecords returns the records of a completed job
func (h *SoeHandlerImpl) HandleJobRecords(c echo.Context) error {
	result, err := h.completedResult(c.Param("jobId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resultBody(result))
}

// HandleJobRecordsMsgpack returns the records of a completed job in MessagePack format
func (h *SoeHandlerImpl) HandleJobRecordsMsgpack(c echo.Context) error {
	result, err := h.completedResult(c.Param("jobId"))
	if err != nil {
		return err
	}

	data, err := msgpack.Marshal(resultBody(result))
	if err != nil {
		return NewInternalError("failed to encode msgpack", err)
	}
	return c.Blob(http.StatusOK, "application/msgpack", data)
}

// HandleCancelJob requests cancellation of a running job
func (h *SoeHandlerImpl) HandleCancelJob(c echo.Context) error {
	id := c.Param("jobId")
	if _, ok := h.jobs.GetJob(id); !ok {
		return NewNotFoundError("job", id)
	}
	if !h.jobs.Cancel(id) {
		return NewConflictError(fmt.Sprintf("job %s has already finished", id))
	}
	return c.JSON(http.StatusAccepted, map[string]interface{}{
		"id":        id,
		"cancelled": true,
	})
}
