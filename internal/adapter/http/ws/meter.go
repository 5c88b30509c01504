package ws

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/transpo-mobility/fare-engine/internal/domain/models"
	"github.com/transpo-mobility/fare-engine/pkg/logger"
	wrap "github.com/transpo-mobility/fare-engine/pkg/logger/wrapper"
	"github.com/transpo-mobility/fare-engine/pkg/metrics"
	wshub "github.com/transpo-mobility/fare-engine/pkg/wshub"
)

const serviceName = "fare-engine"

// MeterStream pushes running fare breakdowns to connected driver apps over
// WebSocket. One connection per meter; a reconnect replaces the old one.
type MeterStream struct {
	hub      *wshub.ConnectionHub
	upgrader websocket.Upgrader

	l logger.Logger
}

func NewMeterStream(hub *wshub.ConnectionHub, l logger.Logger) *MeterStream {
	return &MeterStream{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		l: l,
	}
}

// Handle upgrades GET /ws/meter/{meter_id} and registers the connection.
func (s *MeterStream) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "meter_ws_connect")

	meterID, err := uuid.Parse(r.PathValue("meter_id"))
	if err != nil {
		http.Error(w, "meter_id must be a valid UUID", http.StatusBadRequest)
		return
	}
	ctx = wrap.WithMeterID(ctx, meterID.String())

	wsConn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.l.Error(ctx, "websocket upgrade failed", err)
		return
	}

	// The connection must outlive this request handler.
	connCtx := wrap.WithMeterID(context.Background(), meterID.String())
	conn := wshub.NewConn(connCtx, meterID, wsConn)
	if err := s.hub.Add(conn); err != nil {
		s.l.Error(ctx, "failed to register connection", err)
		conn.Close()
		return
	}

	metrics.WebSocketConnectionsGauge.WithLabelValues(serviceName).Set(float64(s.hub.Len()))
	s.l.Info(ctx, "meter stream connected")

	go func() {
		defer func() {
			s.hub.Delete(meterID)
			metrics.WebSocketConnectionsGauge.WithLabelValues(serviceName).Set(float64(s.hub.Len()))
			s.l.Info(connCtx, "meter stream disconnected")
		}()

		// The stream is push-only; reading just detects the client going away.
		_ = conn.Listen(func(msg map[string]any) error { return nil })
	}()
}

// Push sends the breakdown to the meter's connection, if one is attached.
func (s *MeterStream) Push(meterID uuid.UUID, breakdown *models.MeterBreakdown) {
	if err := s.hub.Send(meterID, breakdown); err != nil && !errors.Is(err, wshub.ErrConnIsNotFound) {
		ctx := wrap.WithMeterID(wrap.WithAction(context.Background(), "meter_ws_push"), meterID.String())
		s.l.Warn(ctx, "failed to push breakdown", "err", err.Error())
	}
}

// CloseAll drops every stream; used on shutdown.
func (s *MeterStream) CloseAll() {
	s.hub.CloseAll()
	metrics.WebSocketConnectionsGauge.WithLabelValues(serviceName).Set(0)
}
