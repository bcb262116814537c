package collab

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"sync"
	"time"

	"github.com/rasterpad/rasterpad/internal/engine"
	"github.com/rasterpad/rasterpad/internal/export"
	"github.com/rasterpad/rasterpad/internal/typeid"
)

var ErrRoomNotFound = errors.New("session not found")

// Hub is the registry of open editor sessions, one Room each.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]*Room // sessionID -> room

	width, height int
	opts          engine.Options
	idleTimeout   time.Duration
}

// NewHub creates a hub whose new sessions get a width x height canvas.
// A session with no connected clients is closed after idleTimeout; zero
// keeps sessions open until they are closed explicitly.
func NewHub(width, height int, opts engine.Options, idleTimeout time.Duration) *Hub {
	return &Hub{
		rooms:       make(map[string]*Room),
		width:       width,
		height:      height,
		opts:        opts,
		idleTimeout: idleTimeout,
	}
}

// CreateRoom opens a new session with an empty scene.
func (h *Hub) CreateRoom() *Room {
	id := typeid.NewSessionID()
	session := engine.NewSession(h.width, h.height, h.opts)

	// Register under the lock so an early idle close cannot run removeRoom
	// before the room is in the map.
	h.mu.Lock()
	room := newRoom(id, session, h.idleTimeout, h.removeRoom)
	h.rooms[id] = room
	h.mu.Unlock()

	slog.Info("session opened", "session", id, "width", h.width, "height", h.height)
	return room
}

// Room looks up an open session.
func (h *Hub) Room(sessionID string) (*Room, error) {
	h.mu.RLock()
	room, ok := h.rooms[sessionID]
	h.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRoomNotFound, sessionID)
	}
	return room, nil
}

// Len returns the number of open sessions.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms)
}

// Frame implements export.FrameSource.
func (h *Hub) Frame(ctx context.Context, sessionID string) (*image.RGBA, error) {
	room, err := h.Room(sessionID)
	if err == nil {
		var img *image.RGBA
		if img, err = room.Frame(ctx); err == nil {
			return img, nil
		}
	}
	if errors.Is(err, ErrRoomNotFound) {
		return nil, fmt.Errorf("%w: %w", export.ErrNotFound, err)
	}
	return nil, err
}

// Stop closes every open session.
func (h *Hub) Stop() {
	h.mu.RLock()
	rooms := make([]*Room, 0, len(h.rooms))
	for _, r := range h.rooms {
		rooms = append(rooms, r)
	}
	h.mu.RUnlock()

	for _, r := range rooms {
		r.Close("server shutting down")
	}
}

func (h *Hub) removeRoom(r *Room) {
	h.mu.Lock()
	delete(h.rooms, r.id)
	h.mu.Unlock()
}
