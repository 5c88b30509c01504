package ws

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/transpo-mobility/fare-engine/pkg/logger"
	wrap "github.com/transpo-mobility/fare-engine/pkg/logger/wrapper"
)

var (
	ErrEmptyConn      = errors.New("connection is empty")
	ErrConnIsNotFound = errors.New("connection not found")
)

// ConnectionHub stores and manages all active WebSocket connections,
// keyed by the entity they belong to (a meter session in this service).
type ConnectionHub struct {
	clients map[uuid.UUID]*Conn
	l       logger.Logger
	mu      sync.Mutex
}

func NewConnHub(l logger.Logger) *ConnectionHub {
	return &ConnectionHub{
		clients: make(map[uuid.UUID]*Conn),
		l:       l,
	}
}

// Add registers a new connection. An existing connection for the same
// entity is closed and replaced.
func (h *ConnectionHub) Add(newConn *Conn) error {
	if newConn == nil {
		return ErrEmptyConn
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	ctx := wrap.WithAction(context.Background(), "add_ws_connection")

	if existing, ok := h.clients[newConn.entityID]; ok {
		h.l.Warn(ctx,
			"replacing existing connection",
			"entity_id", existing.entityID,
		)
		if err := existing.Close(); err != nil {
			h.l.Warn(ctx,
				"failed to close existing conn",
				"entity_id", existing.entityID,
				"err", err.Error(),
			)
		}
	}

	h.clients[newConn.entityID] = newConn

	return nil
}

// Delete removes and closes the connection for the given entity.
func (h *ConnectionHub) Delete(entityID uuid.UUID) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	ctx := wrap.WithAction(context.Background(), "ws_connection_delete")

	conn, ok := h.clients[entityID]
	if !ok {
		h.l.Warn(ctx,
			"delete called for unknown entity",
			"entity_id", entityID,
		)
		return ErrConnIsNotFound
	}

	delete(h.clients, entityID)

	if err := conn.Close(); err != nil {
		h.l.Warn(ctx,
			"failed to close connection",
			"entity_id", entityID,
			"err", err.Error(),
		)
		return err
	}

	return nil
}

// Send pushes a message to the connection of the given entity, if any.
func (h *ConnectionHub) Send(entityID uuid.UUID, msg any) error {
	h.mu.Lock()
	conn, ok := h.clients[entityID]
	h.mu.Unlock()

	if !ok {
		return ErrConnIsNotFound
	}

	return conn.Send(msg)
}

// Len returns the number of active connections.
func (h *ConnectionHub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// CloseAll closes every connection; used on shutdown.
func (h *ConnectionHub) CloseAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	ctx := wrap.WithAction(context.Background(), "ws_connections_close_all")

	for id, conn := range h.clients {
		if err := conn.Close(); err != nil {
			h.l.Warn(ctx, "failed to close connection", "entity_id", id, "err", err.Error())
		}
		delete(h.clients, id)
	}
}
