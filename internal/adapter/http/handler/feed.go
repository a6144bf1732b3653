package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/Temutjin2k/mileage-report/pkg/logger"
	wrap "github.com/Temutjin2k/mileage-report/pkg/logger/wrapper"
	"github.com/Temutjin2k/mileage-report/pkg/metrics"
	ws "github.com/Temutjin2k/mileage-report/pkg/wsHub"
)

type Feed struct {
	hub      *ws.ConnectionHub
	upgrader websocket.Upgrader
	service  string
	l        logger.Logger
}

func NewFeed(hub *ws.ConnectionHub, service string, l logger.Logger) *Feed {
	return &Feed{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		service: service,
		l:       l,
	}
}

// Reports godoc
// @Summary      Live feed of generated reports
// @Description  WebSocket. The server pushes {"type":"report_generated","report":{...}} for every new report.
// @Tags         Reports
// @Router       /ws/reports [get]
func (h *Feed) Reports(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "report_feed")

	raw, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the error response
		h.l.Warn(ctx, "websocket upgrade failed", "error", err.Error())
		return
	}

	conn := ws.NewConn(ctx, uuid.New(), raw)
	if err := h.hub.Add(conn); err != nil {
		h.l.Error(ctx, "failed to register websocket", err)
		_ = raw.Close()
		return
	}

	gauge := metrics.WebSocketConnectionsGauge.WithLabelValues(h.service)
	gauge.Inc()
	defer gauge.Dec()

	h.l.Debug(ctx, "feed subscriber connected", "conn_id", conn.ID())

	// subscribers only listen; reading detects when they go away
	err = conn.Listen(func([]byte) error { return nil })
	_ = h.hub.Delete(conn.ID())

	h.l.Debug(ctx, "feed subscriber disconnected", "conn_id", conn.ID(), "reason", err.Error())
}
