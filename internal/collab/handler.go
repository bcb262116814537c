package collab

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/coder/websocket"
	"github.com/gorilla/mux"

	"github.com/rasterpad/rasterpad/internal/typeid"
)

// TokenService issues and validates session tokens.
type TokenService interface {
	IssueToken(sessionID string) (string, error)
	ValidateToken(token string) (string, error)
}

type Handler struct {
	hub            *Hub
	tokens         TokenService
	originPatterns []string
}

func NewHandler(hub *Hub, tokens TokenService, originPatterns []string) *Handler {
	return &Handler{hub: hub, tokens: tokens, originPatterns: originPatterns}
}

type createResponse struct {
	SessionID string `json:"sessionId"`
	Token     string `json:"token"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}

// Create opens a new editor session: POST /sessions
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	room := h.hub.CreateRoom()

	token, err := h.tokens.IssueToken(room.ID())
	if err != nil {
		slog.Error("issue token failed", "error", err, "session", room.ID())
		room.Close("token error")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	width, height := h.hub.width, h.hub.height
	writeJSON(w, http.StatusCreated, createResponse{
		SessionID: room.ID(),
		Token:     token,
		Width:     width,
		Height:    height,
	})
}

// State returns the scene summary: GET /sessions/{sessionId}
func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	room, err := h.hub.Room(mux.Vars(r)["sessionId"])
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "session not found"})
		return
	}
	st, err := room.State(r.Context())
	if err != nil {
		handleRoomError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// Close ends a session for every viewer: DELETE /sessions/{sessionId}
func (h *Handler) Close(w http.ResponseWriter, r *http.Request) {
	room, err := h.hub.Room(mux.Vars(r)["sessionId"])
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "session not found"})
		return
	}
	room.Close("closed")
	w.WriteHeader(http.StatusNoContent)
}

// ServeWS attaches a websocket viewer: GET /ws/sessions/{sessionId}?token=
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "missing token", http.StatusUnauthorized)
		return
	}
	tokenSession, err := h.tokens.ValidateToken(token)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}
	if tokenSession != sessionID {
		http.Error(w, "token not valid for this session", http.StatusForbidden)
		return
	}

	room, err := h.hub.Room(sessionID)
	if err != nil {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	displayName := r.URL.Query().Get("name")
	if displayName == "" {
		displayName = "Anonymous"
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: h.originPatterns,
	})
	if err != nil {
		slog.Error("websocket accept", "error", err)
		return
	}

	client := NewClient(room, conn, typeid.NewClientID(), displayName)

	ctx := r.Context()
	if err := room.Join(ctx, client); err != nil {
		conn.Close(websocket.StatusGoingAway, "session closed")
		return
	}

	go client.WritePump(ctx)
	client.ReadPump(ctx)
}

func handleRoomError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrRoomNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "session not found"})
	default:
		slog.Error("room request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
