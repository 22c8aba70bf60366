package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"nhooyr.io/websocket"

	"github.com/aristath/marketcal/internal/modules/market_hours"
)

const (
	defaultStreamInterval = 5 * time.Second
	minStreamInterval     = time.Second
	writeWait             = 10 * time.Second
)

// statusUpdate is one message of the status stream
type statusUpdate struct {
	Timestamp string                       `json:"timestamp"`
	Markets   []*market_hours.MarketStatus `json:"markets"`
}

// HandleStatusStream handles GET /api/market-hours/stream
// Upgrades to a WebSocket and pushes market status every interval.
// Query: calendars (comma separated, default all), interval (Go duration, >= 1s)
func (h *Handler) HandleStatusStream(w http.ResponseWriter, r *http.Request) {
	names := h.service.Factory().Calendars()
	if list := r.URL.Query().Get("calendars"); list != "" {
		names = strings.Split(list, ",")
		for _, name := range names {
			if _, err := h.service.Factory().Get(name); err != nil {
				h.writeError(w, err)
				return
			}
		}
	}

	interval := defaultStreamInterval
	if s := r.URL.Query().Get("interval"); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil || d < minStreamInterval {
			http.Error(w, fmt.Sprintf("interval must be a duration of at least %s", minStreamInterval), http.StatusBadRequest)
			return
		}
		interval = d
	}

	// Lift the server write deadline; the stream is still bounded by the request context
	_ = http.NewResponseController(w).SetWriteDeadline(time.Time{})

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		h.log.Warn().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "stream ended")

	// The stream is write-only; CloseRead cancels ctx when the peer goes away
	ctx := conn.CloseRead(r.Context())

	h.log.Debug().Strs("calendars", names).Dur("interval", interval).Msg("Status stream opened")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if err := h.pushStatus(ctx, conn, names); err != nil {
			if ctx.Err() == nil {
				h.log.Warn().Err(err).Msg("Failed to push market status")
			}
			return
		}

		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "")
			return
		case <-ticker.C:
		}
	}
}

func (h *Handler) pushStatus(ctx context.Context, conn *websocket.Conn, names []string) error {
	now := h.now()
	update := statusUpdate{
		Timestamp: now.Format(time.RFC3339),
		Markets:   make([]*market_hours.MarketStatus, 0, len(names)),
	}
	for _, name := range names {
		status, err := h.service.GetMarketStatus(name, now)
		if err != nil {
			h.log.Warn().Err(err).Str("calendar", name).Msg("Failed to get market status")
			continue
		}
		update.Markets = append(update.Markets, status)
	}

	data, err := json.Marshal(update)
	if err != nil {
		return fmt.Errorf("failed to marshal status update: %w", err)
	}

	writeCtx, cancel := context.WithTimeout(ctx, writeWait)
	defer cancel()

	return conn.Write(writeCtx, websocket.MessageText, data)
}
