package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/techequipments/engine/internal/session"
)

type snapshotBody struct {
	Equipment string `json:"equipment"`
	Group     string `json:"group"`
	Mode      string `json:"mode"`
	Axis      struct {
		VisualMin time.Time `json:"visualMin"`
		VisualMax time.Time `json:"visualMax"`
		Live      bool      `json:"isLiveMode"`
	} `json:"axis"`
	Points []struct {
		Series string  `json:"series"`
		Value  float64 `json:"value"`
	} `json:"points"`
}

func (s *testServer) startSession(t *testing.T, body interface{}) session.Info {
	t.Helper()
	rec := s.do(http.MethodPost, "/api/trend/sessions", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var info session.Info
	decode(t, rec, &info)
	return info
}

func (s *testServer) waitPoints(t *testing.T, id, series string, n int) snapshotBody {
	t.Helper()
	var snap snapshotBody
	require.Eventually(t, func() bool {
		rec := s.do(http.MethodGet, "/api/trend/sessions/"+id, nil)
		if rec.Code != http.StatusOK {
			return false
		}
		snap = snapshotBody{}
		decode(t, rec, &snap)
		count := 0
		for _, p := range snap.Points {
			if p.Series == series {
				count++
			}
		}
		return count == n
	}, 3*time.Second, 20*time.Millisecond)
	return snap
}

func TestTrendSessionLifecycle(t *testing.T) {
	s := newTestServer(t)

	info := s.startSession(t, map[string]interface{}{"equipment": "st1.ai01", "windowMinutes": 30})
	require.NotEmpty(t, info.ID)
	assert.Equal(t, 1, s.sessions.Len())

	snap := s.waitPoints(t, info.ID, "R", 4)
	assert.Equal(t, "AI", snap.Group)
	assert.Equal(t, "live", snap.Mode)
	assert.True(t, snap.Axis.Live)

	t.Run("msgpack points", func(t *testing.T) {
		rec := s.do(http.MethodGet, "/api/trend/sessions/"+info.ID+"/points/msgpack", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var body map[string]interface{}
		require.NoError(t, msgpack.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "live", body["mode"])
		points, ok := body["points"].([]interface{})
		require.True(t, ok)
		assert.Len(t, points, 4)
	})

	t.Run("range leaves live mode", func(t *testing.T) {
		max := time.Now().Add(-2 * time.Hour).UTC()
		rec := s.do(http.MethodPost, "/api/trend/sessions/"+info.ID+"/range", map[string]time.Time{
			"visualMin": max.Add(-30 * time.Minute),
			"visualMax": max,
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Contains(t, rec.Body.String(), `"mode":"history"`)
	})

	t.Run("invalid range", func(t *testing.T) {
		now := time.Now().UTC()
		rec := s.do(http.MethodPost, "/api/trend/sessions/"+info.ID+"/range", map[string]time.Time{
			"visualMin": now,
			"visualMax": now.Add(-time.Minute),
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("back to live", func(t *testing.T) {
		rec := s.do(http.MethodPost, "/api/trend/sessions/"+info.ID+"/live", map[string]bool{"reset": true})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Contains(t, rec.Body.String(), `"mode":"live"`)
		s.waitPoints(t, info.ID, "R", 4)
	})

	t.Run("keepalive", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, s.do(http.MethodPost, "/api/trend/sessions/"+info.ID+"/keepalive", nil).Code)
	})

	t.Run("close", func(t *testing.T) {
		assert.Equal(t, http.StatusNoContent, s.do(http.MethodDelete, "/api/trend/sessions/"+info.ID, nil).Code)
		assert.Equal(t, 0, s.sessions.Len())
		assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/trend/sessions/"+info.ID, nil).Code)
		assert.Equal(t, http.StatusNotFound, s.do(http.MethodPost, "/api/trend/sessions/"+info.ID+"/keepalive", nil).Code)
		assert.Equal(t, http.StatusNotFound, s.do(http.MethodDelete, "/api/trend/sessions/"+info.ID, nil).Code)
	})
}

func TestTrendSessionStartValidation(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name string
		body map[string]interface{}
		want int
	}{
		{"missing equipment", map[string]interface{}{}, http.StatusBadRequest},
		{"unknown equipment", map[string]interface{}{"equipment": "NOPE"}, http.StatusNotFound},
		{"bad group", map[string]interface{}{"equipment": "ST1.AI01", "group": "Pump"}, http.StatusBadRequest},
		{"negative window", map[string]interface{}{"equipment": "ST1.AI01", "windowMinutes": -5}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.do(http.MethodPost, "/api/trend/sessions", tt.body).Code)
		})
	}
	assert.Equal(t, 0, s.sessions.Len())
}

func TestTrendSessionChangeEquipment(t *testing.T) {
	s := newTestServer(t)
	info := s.startSession(t, map[string]string{"equipment": "ST1.AI01"})

	rec := s.do(http.MethodPut, "/api/trend/sessions/"+info.ID+"/equipment", map[string]string{"equipment": "ST2.M01"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated session.Info
	decode(t, rec, &updated)
	assert.Equal(t, "ST2.M01", updated.Equipment)
	assert.Equal(t, "Motor", updated.Group.String())

	rec = s.do(http.MethodPut, "/api/trend/sessions/missing/equipment", map[string]string{"equipment": "ST2.M01"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTrendSessionLimit(t *testing.T) {
	s := newTestServer(t)
	for i := 0; i < session.MaxSessions; i++ {
		s.startSession(t, map[string]string{"equipment": "ST1.AI01"})
	}
	rec := s.do(http.MethodPost, "/api/trend/sessions", map[string]string{"equipment": "ST1.AI01"})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestTrendWebSocket(t *testing.T) {
	s := newTestServer(t)
	info := s.startSession(t, map[string]string{"equipment": "ST1.AI01"})

	srv := httptest.NewServer(s.e)
	defer srv.Close()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/ws/trend/" + info.ID

	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer ws.Close()
	ws.SetReadDeadline(time.Now().Add(3 * time.Second))

	var msg WSMessage
	require.NoError(t, ws.ReadJSON(&msg))
	assert.Equal(t, MsgTypeSnapshot, msg.Type)
	assert.Equal(t, info.ID, msg.ID)
	assert.Contains(t, string(msg.Payload), `"equipment":"ST1.AI01"`)

	require.NoError(t, ws.WriteJSON(WSMessage{Type: MsgTypePing}))
	for {
		require.NoError(t, ws.ReadJSON(&msg))
		if msg.Type == MsgTypePong {
			break
		}
		assert.Equal(t, MsgTypeSnapshot, msg.Type)
	}

	readMode := func(want string) {
		t.Helper()
		for {
			require.NoError(t, ws.ReadJSON(&msg))
			if msg.Type != MsgTypeSnapshot {
				continue
			}
			var snap snapshotBody
			require.NoError(t, json.Unmarshal(msg.Payload, &snap))
			if snap.Mode == want {
				return
			}
		}
	}

	max := time.Now().Add(-2 * time.Hour).UTC()
	payload, _ := json.Marshal(map[string]time.Time{"visualMin": max.Add(-30 * time.Minute), "visualMax": max})
	require.NoError(t, ws.WriteJSON(WSMessage{Type: MsgTypeRange, Payload: payload}))
	readMode("history")
	ctrl, ok := s.sessions.Controller(info.ID)
	require.True(t, ok)
	assert.True(t, ctrl.Snapshot().Axis.VisualMax.Equal(max))

	require.NoError(t, ws.WriteJSON(WSMessage{Type: MsgTypeLive, Payload: json.RawMessage(`{"reset":false}`)}))
	readMode("live")

	bad, _ := json.Marshal(map[string]time.Time{"visualMin": max, "visualMax": max.Add(-time.Minute)})
	require.NoError(t, ws.WriteJSON(WSMessage{Type: MsgTypeRange, Payload: bad}))
	for {
		require.NoError(t, ws.ReadJSON(&msg))
		if msg.Type == MsgTypeError {
			break
		}
	}

	// closing the session ends the stream
	require.True(t, s.sessions.CloseSession(info.ID))
	for {
		require.NoError(t, ws.ReadJSON(&msg))
		if msg.Type == MsgTypeClosed {
			break
		}
	}

	t.Run("unknown session", func(t *testing.T) {
		_, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/api/ws/trend/missing", nil)
		require.Error(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
