package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"fuel_pump_registry/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Send/receive timing configuration and message size limits.
const (
	writeWait       = 10 * time.Second
	pongWait        = 60 * time.Second
	pingPeriod      = (pongWait * 9) / 10
	maxMsgSize      = 1 << 12 // 4 KB
	defaultInterval = 1 * time.Second
	maxInterval     = 10 * time.Second
)

// Envelope types written to the socket.
const (
	wsTypePumps = "pumps"
	wsTypePump  = "pump"
	wsTypeError = "error"
)

// Envelope used for WebSocket messages.
type wsEnvelope struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

// Upgrader for HTTP -> WebSocket.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true }, // TODO: restrict origins once the dashboard host is fixed
}

// @Summary      Pump snapshot stream
// @Description  WebSocket. Streams {"type":"pumps"} with every pump, or {"type":"pump"} when ?id= is given, every interval.
// @Tags         pumps
// @Param        id           query  string  false  "Single pump id"
// @Param        interval     query  string  false  "Go duration, e.g. 2s"
// @Param        interval_ms  query  int     false  "Interval in milliseconds"
// @Router       /ws [get]
func (h *Handler) wsConnect(c *gin.Context) {
	interval := h.parseInterval(c)
	pumpID := c.Query("id")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_upgrade_failed", "err", err)
		}
		return
	}
	defer func() { _ = conn.Close() }()

	// Configure read limits and pong handler to extend read deadline.
	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// Reader goroutine to handle control frames and detect disconnects.
	done := make(chan struct{})
	go h.startReader(conn, done)

	ticker := time.NewTicker(interval)
	ping := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		ping.Stop()
	}()

	// Send the first snapshot immediately.
	if err := h.sendSnapshot(c.Request.Context(), conn, pumpID); err != nil {
		if h.log != nil {
			h.log.Infow("ws_write_failed_initial", "err", err, "pump_id", pumpID)
		}
		return
	}

	for {
		select {
		case <-done:
			return
		case <-c.Request.Context().Done():
			return
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				if h.log != nil {
					h.log.Infow("ws_ping_failed", "err", err)
				}
				return
			}
		case <-ticker.C:
			if err := h.sendSnapshot(c.Request.Context(), conn, pumpID); err != nil {
				if h.log != nil {
					h.log.Infow("ws_write_failed", "err", err, "pump_id", pumpID)
				}
				return
			}
		}
	}
}

// parseInterval reads ?interval=2s or ?interval_ms=2000, bounded by the stream config.
func (h *Handler) parseInterval(c *gin.Context) time.Duration {
	if s := c.Query("interval"); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d > 0 && d <= h.stream.MaxInterval {
			return d
		}
	}

	if ms := c.Query("interval_ms"); ms != "" {
		if v, err := strconv.Atoi(ms); err == nil && v > 0 {
			if d := time.Duration(v) * time.Millisecond; d <= h.stream.MaxInterval {
				return d
			}
		}
	}

	return h.stream.DefaultInterval
}

// startReader drains incoming messages to handle control frames and detect closure.
func (h *Handler) startReader(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if h.log != nil {
				h.log.Infow("ws_read_closed", "err", err)
			}
			return
		}
	}
}

// sendSnapshot writes every pump, or the pump with the given id. When the
// pump cannot be read an error envelope is sent and the error returned, which
// ends the stream.
func (h *Handler) sendSnapshot(ctx context.Context, conn *websocket.Conn, pumpID string) error {
	env, err := h.snapshot(ctx, pumpID)
	if err != nil {
		if h.log != nil && !errors.Is(err, service.ErrNotFound) && !errors.Is(err, service.ErrInvalidInput) {
			h.log.Errorw("ws_snapshot_failed", "err", err, "pump_id", pumpID)
		}
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		_ = conn.WriteJSON(wsEnvelope{Type: wsTypeError, Error: err.Error()})
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(env)
}

func (h *Handler) snapshot(ctx context.Context, pumpID string) (wsEnvelope, error) {
	if pumpID == "" {
		pumps, err := h.services.Registry.ListAll(ctx)
		if err != nil {
			return wsEnvelope{}, err
		}
		return wsEnvelope{Type: wsTypePumps, Data: pumps}, nil
	}
	p, err := h.services.Registry.Get(ctx, pumpID)
	if err != nil {
		return wsEnvelope{}, err
	}
	return wsEnvelope{Type: wsTypePump, Data: p}, nil
}
