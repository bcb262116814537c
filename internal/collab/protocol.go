package collab

import (
	"encoding/json"

	"github.com/rasterpad/rasterpad/internal/engine"
)

type Message struct {
	Type      string          `json:"type"`
	SessionID string          `json:"sessionId,omitempty"`
	ClientID  string          `json:"clientId,omitempty"`
	Payload   json.RawMessage `json:"payload"`
}

// --- Client → server ---

type MousePayload struct {
	Button string `json:"button"` // "left" or empty
	X      int    `json:"x"`
	Y      int    `json:"y"`
}

type MotionPayload struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type KeyPayload struct {
	Key string `json:"key"`
}

type ModePayload struct {
	Mode string `json:"mode"`
}

type ResizePayload struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// --- Server → client ---

type WelcomePayload struct {
	SessionID string `json:"sessionId"`
	ClientID  string `json:"clientId"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}

type ScenePayload = engine.SceneState

type PresencePayload struct {
	Cursor      *CursorPos `json:"cursor,omitempty"`
	DisplayName string     `json:"displayName,omitempty"`
}

type CursorPos struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type PresenceStatePayload struct {
	Presences map[string]*PresencePayload `json:"presences"`
}

type PresenceJoinPayload struct {
	ClientID    string `json:"clientId"`
	DisplayName string `json:"displayName"`
}

type PresenceLeavePayload struct {
	ClientID string `json:"clientId"`
}

type ClosedPayload struct {
	Reason string `json:"reason"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

const (
	// Input
	TypeInputMouse  = "input.mouse"
	TypeInputMotion = "input.motion"
	TypeInputKey    = "input.key"
	TypeInputMode   = "input.mode"
	TypeInputResize = "input.resize"

	// Connection
	TypeWelcome       = "welcome"
	TypeSessionClosed = "session.closed"
	TypeError         = "error"

	// Scene sync
	TypeSceneState = "scene.state"
	TypeCanvasSize = "canvas.size"

	TypePresenceUpdate = "presence.update"
	TypePresenceState  = "presence.state"
	TypePresenceJoin   = "presence.join"
	TypePresenceLeave  = "presence.leave"
)

const ButtonLeft = "left"

func newMessage(typ string, payload any) *Message {
	data, err := json.Marshal(payload)
	if err != nil {
		data = []byte("null")
	}
	return &Message{Type: typ, Payload: data}
}
