package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// WebSocket message types for the trend push protocol
const (
	// Client -> Server messages
	MsgTypePing  = "ping"
	MsgTypeRange = "range" // payload: {"visualMin","visualMax"}
	MsgTypeLive  = "live"  // payload: {"reset"}

	// Server -> Client messages
	MsgTypeSnapshot = "snapshot"
	MsgTypeClosed   = "closed"
	MsgTypeError    = "error"
	MsgTypePong     = "pong"
)

// WSMessage is the envelope of every WebSocket frame
type WSMessage struct {
	Type      string          `json:"type"`
	ID        string          `json:"id,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp int64           `json:"timestamp"`
}

// WSErrorResponse is sent before the server drops a connection
type WSErrorResponse struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// TrendWebSocketHandler pushes trend snapshots to connected viewers
type TrendWebSocketHandler struct {
	sessions SessionManager
	upgrader websocket.Upgrader
	maxRead  int64
}

// NewTrendWebSocketHandler creates the trend push handler. maxMessageKB
// bounds client frames.
func NewTrendWebSocketHandler(sessions SessionManager, maxMessageKB int) *TrendWebSocketHandler {
	if maxMessageKB <= 0 {
		maxMessageKB = 64
	}
	return &TrendWebSocketHandler{
		sessions: sessions,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 64 * 1024,
		},
		maxRead: int64(maxMessageKB) * 1024,
	}
}

// wsConn serializes writes to one connection
type wsConn struct {
	ws *websocket.Conn
	mu sync.Mutex
}

func (c *wsConn) send(msg interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ws.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return c.ws.WriteJSON(msg)
}

// HandleTrendWebSocket upgrades the connection and pushes a snapshot after
// every change of the session
func (wsh *TrendWebSocketHandler) HandleTrendWebSocket(c echo.Context) error {
	id := c.Param("id")
	ctrl, ok := wsh.sessions.Controller(id)
	if !ok {
		return NewNotFoundError("trend session", id)
	}
	updates, unsubscribe, err := wsh.sessions.Subscribe(id)
	if err != nil {
		return NewNotFoundError("trend session", id)
	}
	defer unsubscribe()

	ws, err := wsh.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer ws.Close()
	ws.SetReadLimit(wsh.maxRead)

	conn := &wsConn{ws: ws}
	short := id
	if len(short) > 8 {
		short = short[:8]
	}
	fmt.Printf("[WebSocket] Client connected to trend %s\n", short)

	pushSnapshot := func() error {
		payload, err := json.Marshal(ctrl.Snapshot())
		if err != nil {
			return err
		}
		wsh.sessions.TouchSession(id)
		return conn.send(WSMessage{
			Type:      MsgTypeSnapshot,
			ID:        id,
			Payload:   payload,
			Timestamp: time.Now().UnixMilli(),
		})
	}

	if err := pushSnapshot(); err != nil {
		return nil
	}

	// reader: answers pings, applies navigation and detects disconnects
	ctx := c.Request().Context()
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			var msg WSMessage
			if err := ws.ReadJSON(&msg); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					fmt.Printf("[WebSocket] Connection error: %v\n", err)
				}
				return
			}
			switch msg.Type {
			case MsgTypePing:
				wsh.sessions.TouchSession(id)
				conn.send(WSMessage{Type: MsgTypePong, Timestamp: time.Now().UnixMilli()})
			case MsgTypeRange:
				var req rangeRequest
				if err := json.Unmarshal(msg.Payload, &req); err != nil || req.VisualMin.IsZero() || !req.VisualMax.After(req.VisualMin) {
					conn.send(WSErrorResponse{Type: MsgTypeError, Message: "range needs visualMin < visualMax", Code: "INVALID_RANGE"})
					continue
				}
				wsh.sessions.TouchSession(id)
				ctrl.OnUserRangeChanged(req.VisualMin, req.VisualMax)
			case MsgTypeLive:
				var req liveRequest
				if len(msg.Payload) > 0 {
					if err := json.Unmarshal(msg.Payload, &req); err != nil {
						conn.send(WSErrorResponse{Type: MsgTypeError, Message: "invalid live payload", Code: "INVALID_PAYLOAD"})
						continue
					}
				}
				wsh.sessions.TouchSession(id)
				if err := ctrl.SetLiveMode(ctx, req.Reset); err != nil {
					return
				}
				wsh.sessions.Poke(id)
			default:
				conn.send(WSErrorResponse{Type: MsgTypeError, Message: "Unknown message type: " + msg.Type, Code: "INVALID_TYPE"})
			}
		}
	}()

	for {
		select {
		case <-closed:
			fmt.Printf("[WebSocket] Client disconnected from trend %s\n", short)
			return nil
		case _, open := <-updates:
			if !open {
				conn.send(WSMessage{Type: MsgTypeClosed, ID: id, Timestamp: time.Now().UnixMilli()})
				return nil
			}
			if err := pushSnapshot(); err != nil {
				return nil
			}
		}
	}
}
