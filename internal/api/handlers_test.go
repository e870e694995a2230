package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/techequipments/engine/internal/equipment"
	"github.com/techequipments/engine/internal/jobs"
	"github.com/techequipments/engine/internal/session"
	"github.com/techequipments/engine/internal/soe"
	"github.com/techequipments/engine/internal/testutil"
	"github.com/techequipments/engine/internal/trend"
)

type testServer struct {
	e        *echo.Echo
	hist     *testutil.MockHistorian
	catalog  *equipment.Catalog
	jobs     *jobs.Manager
	sessions *session.Manager
}

// soeNow is the extraction clock. ST1.DI01 toggles 0,1,0,1 shortly before it.
var soeNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

// newTestServer wires the real handlers over an in-memory historian.
func newTestServer(t *testing.T) *testServer {
	t.Helper()

	catalog := equipment.NewCatalog([]equipment.Entry{
		{Name: "ST1.AI01", Type: "AnalogIn", Description: "Tank level", Tag: "ST1_AI01",
			Trends: map[string]string{"R": "AI01.R", "STW": "AI01.STW"},
			Scale:  &equipment.Scale{Min: 0, Max: 10},
			Refs:   map[string][]string{"TabDIDO": {"ST1.DI01"}}},
		{Name: "ST1.DI01", Type: "DigitalIn", Description: "High level switch",
			Trends: map[string]string{"STW": "DI01.STW"}},
		{Name: "ST2.M01", Type: "Motor", Description: "Mixer"},
	})

	hist := testutil.NewMockHistorian()
	hist.Add("DI01.STW", testutil.Series(soeNow.Add(-40*time.Minute), 5*time.Minute, 0, 1, 0, 1)...)
	hist.Add("AI01.STW", testutil.Series(soeNow.Add(-40*time.Minute), 5*time.Minute, 4, 4)...)
	hist.Add("AI01.R", testutil.Series(time.Now().Add(-20*time.Minute), time.Minute, 1, 2, 3, 4)...)

	extractor := soe.NewExtractor(hist, catalog,
		soe.WithClock(func() time.Time { return soeNow }),
		soe.WithLocation(time.UTC))
	jobMgr := jobs.NewManager(extractor, 2, time.Minute)
	t.Cleanup(jobMgr.Close)

	cfg := trend.DefaultConfig()
	cfg.Location = time.UTC
	sessionMgr := session.NewManager(session.Deps{
		Source: hist, Tags: catalog, Scale: catalog, Config: cfg,
	}, 50*time.Millisecond)
	t.Cleanup(sessionMgr.Close)

	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler
	handlers := NewHandlers(&Dependencies{
		Directory:   catalog,
		Series:      trend.NewCatalog(),
		Extractor:   extractor,
		Jobs:        jobMgr,
		Sessions:    sessionMgr,
		SoeDefaults: soe.DefaultOptions(),
		Version:     "test",
	})
	RegisterRoutes(e, handlers)
	RegisterWebSocketRoutes(e, handlers)

	return &testServer{e: e, hist: hist, catalog: catalog, jobs: jobMgr, sessions: sessionMgr}
}

func (s *testServer) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
	assert.Contains(t, rec.Body.String(), `"version":"test"`)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	s.do(http.MethodGet, "/api/soe/extract/ST1.DI01", nil)

	rec := s.do(http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "engine_soe_extractions_total")
}

func TestErrorHandler(t *testing.T) {
	e := echo.New()

	t.Run("api error", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
		ErrorHandler(NewNotFoundError("job", "x"), c)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), `"code":"NOT_FOUND"`)
	})

	t.Run("echo error", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
		ErrorHandler(echo.NewHTTPError(http.StatusMethodNotAllowed, "nope"), c)
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
		assert.Contains(t, rec.Body.String(), `"code":"HTTP_ERROR"`)
	})
}

func TestEquipmentHandlers(t *testing.T) {
	s := newTestServer(t)

	t.Run("list", func(t *testing.T) {
		rec := s.do(http.MethodGet, "/api/equipment", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var body struct {
			Items []struct {
				Equipment string `json:"equipment"`
				Group     string `json:"group"`
				Color     string `json:"color"`
			} `json:"items"`
			Total    int      `json:"total"`
			Stations []string `json:"stations"`
		}
		decode(t, rec, &body)
		assert.Equal(t, 3, body.Total)
		assert.Equal(t, []string{"ST1", "ST2"}, body.Stations)
		assert.Equal(t, "AI", body.Items[0].Group)
		assert.Equal(t, "#BFDF9F", body.Items[0].Color)
	})

	t.Run("filter", func(t *testing.T) {
		rec := s.do(http.MethodGet, "/api/equipment?station=ST1&type=DI", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"total":1`)
		assert.Contains(t, rec.Body.String(), "ST1.DI01")

		rec = s.do(http.MethodGet, "/api/equipment?q=mixer", nil)
		assert.Contains(t, rec.Body.String(), "ST2.M01")
		assert.Contains(t, rec.Body.String(), `"total":1`)
	})

	t.Run("bad type", func(t *testing.T) {
		rec := s.do(http.MethodGet, "/api/equipment?type=Pump", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("get", func(t *testing.T) {
		rec := s.do(http.MethodGet, "/api/equipment/st1.ai01", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var body struct {
			Name   string `json:"name"`
			Group  string `json:"group"`
			Series []struct {
				Key  string `json:"key"`
				Base bool   `json:"base"`
			} `json:"series"`
			Fields []struct {
				Name string `json:"name"`
			} `json:"fields"`
		}
		decode(t, rec, &body)
		assert.Equal(t, "ST1.AI01", body.Name)
		assert.Equal(t, "AI", body.Group)
		require.NotEmpty(t, body.Series)
		assert.Equal(t, "R", body.Series[0].Key)
		assert.True(t, body.Series[0].Base)
		assert.NotEmpty(t, body.Fields)
	})

	t.Run("get unknown", func(t *testing.T) {
		rec := s.do(http.MethodGet, "/api/equipment/NOPE", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestSoeCodes(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/api/soe/codes/di", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Group string `json:"group"`
		Table string `json:"table"`
		Codes []struct {
			Code  int    `json:"code"`
			Key   string `json:"key"`
			Class string `json:"class"`
			Color string `json:"color"`
		} `json:"codes"`
	}
	decode(t, rec, &body)
	assert.Equal(t, "DI", body.Group)
	assert.Equal(t, "DI", body.Table)
	require.Len(t, body.Codes, 32)
	assert.Equal(t, "VALUE_On", body.Codes[16].Key)
	assert.Equal(t, "green", body.Codes[16].Class)

	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/soe/codes/All", nil).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, "/api/soe/codes/pump", nil).Code)
}

type recordsBody struct {
	Equipment string `json:"equipment"`
	Records   []struct {
		Equipment string `json:"equipment"`
		BitCode   int    `json:"bitCode"`
		EventKey  string `json:"eventKey"`
		Color     string `json:"color"`
	} `json:"records"`
	Total     int      `json:"total"`
	Trends    []string `json:"trends"`
	Truncated bool     `json:"truncated"`
}

func TestSoeExtract(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/api/soe/extract/ST1.AI01", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body recordsBody
	decode(t, rec, &body)
	assert.Equal(t, "ST1.AI01", body.Equipment)
	assert.Equal(t, []string{"AI01.STW", "DI01.STW"}, body.Trends)
	require.Equal(t, 3, body.Total)
	for _, r := range body.Records {
		assert.Equal(t, "ST1.DI01", r.Equipment)
	}
	assert.Equal(t, 1, body.Records[0].BitCode)
	assert.Equal(t, 17, body.Records[1].BitCode)
	assert.Equal(t, "#C8E6C9", body.Records[1].Color)

	t.Run("caps", func(t *testing.T) {
		rec := s.do(http.MethodGet, "/api/soe/extract/ST1.AI01?totalCap=2", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var body recordsBody
		decode(t, rec, &body)
		assert.Equal(t, 2, body.Total)
		assert.True(t, body.Truncated)
	})

	t.Run("bad cap", func(t *testing.T) {
		rec := s.do(http.MethodGet, "/api/soe/extract/ST1.AI01?perEquipmentCap=zero", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown equipment", func(t *testing.T) {
		rec := s.do(http.MethodGet, "/api/soe/extract/NOPE", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestSoeJobs(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/api/soe/jobs", map[string]interface{}{"equipment": "ST1.DI01", "totalCap": 10})
	require.Equal(t, http.StatusAccepted, rec.Code, rec.Body.String())
	var job jobs.Job
	decode(t, rec, &job)
	require.NotEmpty(t, job.ID)
	assert.Equal(t, 10, job.Options.TotalCap)

	require.Eventually(t, func() bool {
		rec := s.do(http.MethodGet, "/api/soe/jobs/"+job.ID, nil)
		var j jobs.Job
		json.Unmarshal(rec.Body.Bytes(), &j)
		return j.Status == jobs.StatusComplete
	}, 3*time.Second, 10*time.Millisecond)

	t.Run("records", func(t *testing.T) {
		rec := s.do(http.MethodGet, "/api/soe/jobs/"+job.ID+"/records", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var body recordsBody
		decode(t, rec, &body)
		assert.Equal(t, 3, body.Total)
	})

	t.Run("records msgpack", func(t *testing.T) {
		rec := s.do(http.MethodGet, "/api/soe/jobs/"+job.ID+"/records/msgpack", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/msgpack", rec.Header().Get(echo.HeaderContentType))

		var body map[string]interface{}
		require.NoError(t, msgpack.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "ST1.DI01", body["equipment"])
		records, ok := body["records"].([]interface{})
		require.True(t, ok)
		assert.Len(t, records, 3)
	})

	t.Run("progress stream of finished job", func(t *testing.T) {
		rec := s.do(http.MethodGet, "/api/soe/jobs/"+job.ID+"/progress", nil)
		assert.Equal(t, "text/event-stream", rec.Header().Get(echo.HeaderContentType))
		assert.True(t, strings.HasPrefix(rec.Body.String(), "data: "))
		assert.Contains(t, rec.Body.String(), `"status":"complete"`)
	})

	t.Run("cancel finished", func(t *testing.T) {
		rec := s.do(http.MethodDelete, "/api/soe/jobs/"+job.ID, nil)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("unknown job", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/soe/jobs/missing", nil).Code)
		assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/soe/jobs/missing/records", nil).Code)
		assert.Equal(t, http.StatusNotFound, s.do(http.MethodDelete, "/api/soe/jobs/missing", nil).Code)
		rec := s.do(http.MethodGet, "/api/soe/jobs/missing/progress", nil)
		assert.Contains(t, rec.Body.String(), "job not found")
	})

	t.Run("validation", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, s.do(http.MethodPost, "/api/soe/jobs", map[string]string{}).Code)
		assert.Equal(t, http.StatusBadRequest,
			s.do(http.MethodPost, "/api/soe/jobs", map[string]interface{}{"equipment": "X", "totalCap": -1}).Code)
	})
}

func TestSoeJobRecordsBeforeCompletion(t *testing.T) {
	s := newTestServer(t)

	block := make(chan struct{})
	defer close(block)
	s.hist.FetchHook = func(ctx context.Context, tag string, from, to time.Time) error {
		select {
		case <-block:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	rec := s.do(http.MethodPost, "/api/soe/jobs", map[string]string{"equipment": "ST1.DI01"})
	require.Equal(t, http.StatusAccepted, rec.Code)
	var job jobs.Job
	decode(t, rec, &job)

	assert.Equal(t, http.StatusConflict, s.do(http.MethodGet, "/api/soe/jobs/"+job.ID+"/records", nil).Code)

	rec = s.do(http.MethodDelete, "/api/soe/jobs/"+job.ID, nil)
	assert.Equal(t, http.StatusAccepted, rec.Code)
}

func TestErrorHandler_DomainErrors(t *testing.T) {
	e := echo.New()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"equipment", fmt.Errorf("lookup: %w", equipment.ErrNotFound), http.StatusNotFound},
		{"session", session.ErrNotFound, http.StatusNotFound},
		{"job", jobs.ErrNotFound, http.StatusNotFound},
		{"capacity", session.ErrTooManySessions, http.StatusServiceUnavailable},
		{"deadline", context.DeadlineExceeded, http.StatusServiceUnavailable},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
			ErrorHandler(tt.err, c)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
