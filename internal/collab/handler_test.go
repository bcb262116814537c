package collab

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/gorilla/mux"

	"github.com/rasterpad/rasterpad/internal/auth"
)

func newTestServer(t *testing.T) (*httptest.Server, *Hub, *auth.Service) {
	t.Helper()
	hub := newTestHub(t)
	tokens := auth.NewService("test-secret", time.Hour)
	h := NewHandler(hub, tokens, nil)

	r := mux.NewRouter()
	r.HandleFunc("/sessions", h.Create).Methods("POST")
	r.HandleFunc("/sessions/{sessionId}", h.State).Methods("GET")
	r.HandleFunc("/sessions/{sessionId}", h.Close).Methods("DELETE")
	r.HandleFunc("/ws/sessions/{sessionId}", h.ServeWS)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, hub, tokens
}

func createSession(t *testing.T, srv *httptest.Server) createResponse {
	t.Helper()
	resp, err := http.Post(srv.URL+"/sessions", "application/json", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("POST /sessions = %d", resp.StatusCode)
	}
	var cr createResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		t.Fatal(err)
	}
	return cr
}

func wsURL(srv *httptest.Server, sessionID, token string) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/sessions/" + sessionID + "?token=" + token
}

func readMessage(t *testing.T, ctx context.Context, conn *websocket.Conn, typ string) *Message {
	t.Helper()
	for {
		mt, data, err := conn.Read(ctx)
		if err != nil {
			t.Fatalf("read while waiting for %s: %v", typ, err)
		}
		if mt != websocket.MessageText {
			continue
		}
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			t.Fatal(err)
		}
		if msg.Type == typ {
			return &msg
		}
	}
}

func writeMessage(t *testing.T, ctx context.Context, conn *websocket.Conn, typ string, payload any) {
	t.Helper()
	data, _ := json.Marshal(payload)
	msg, _ := json.Marshal(Message{Type: typ, Payload: data})
	if err := conn.Write(ctx, websocket.MessageText, msg); err != nil {
		t.Fatal(err)
	}
}

func TestWebsocketSession(t *testing.T) {
	srv, hub, _ := newTestServer(t)
	cr := createSession(t, srv)
	if cr.Width != canvasSize || cr.Height != canvasSize || cr.Token == "" {
		t.Fatalf("create response = %+v", cr)
	}
	if hub.Len() != 1 {
		t.Fatalf("hub has %d rooms, want 1", hub.Len())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, wsURL(srv, cr.SessionID, cr.Token), nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.CloseNow()
	conn.SetReadLimit(1 << 20)

	welcome := readMessage(t, ctx, conn, TypeWelcome)
	var wp WelcomePayload
	json.Unmarshal(welcome.Payload, &wp)
	if wp.SessionID != cr.SessionID || !strings.HasPrefix(wp.ClientID, "client_") {
		t.Errorf("welcome = %+v", wp)
	}

	writeMessage(t, ctx, conn, TypeInputMode, ModePayload{Mode: "circle"})
	writeMessage(t, ctx, conn, TypeInputMouse, MousePayload{X: 30, Y: 30})
	writeMessage(t, ctx, conn, TypeInputMouse, MousePayload{X: 40, Y: 30})

	for {
		msg := readMessage(t, ctx, conn, TypeSceneState)
		var st ScenePayload
		json.Unmarshal(msg.Payload, &st)
		if len(st.Shapes) == 1 {
			if st.Shapes[0].Kind != "circle" || st.Shapes[0].Radius != 10 {
				t.Errorf("shape = %+v", st.Shapes[0])
			}
			break
		}
	}

	resp, err := http.Get(srv.URL + "/sessions/" + cr.SessionID)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("GET session = %d", resp.StatusCode)
	}

	writeMessage(t, ctx, conn, TypeInputKey, KeyPayload{Key: "Escape"})
	readMessage(t, ctx, conn, TypeSessionClosed)

	for hub.Len() != 0 {
		select {
		case <-ctx.Done():
			t.Fatal("session was not removed after quit")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestWebsocketRejects(t *testing.T) {
	srv, _, tokens := newTestServer(t)
	a := createSession(t, srv)
	b := createSession(t, srv)
	stale, _ := tokens.IssueToken("sess_gone")

	tests := []struct {
		name      string
		sessionID string
		token     string
		status    int
	}{
		{"missing token", a.SessionID, "", http.StatusUnauthorized},
		{"bad token", a.SessionID, "garbage", http.StatusUnauthorized},
		{"other session", a.SessionID, b.Token, http.StatusForbidden},
		{"unknown session", "sess_gone", stale, http.StatusNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_, resp, err := websocket.Dial(ctx, wsURL(srv, tc.sessionID, tc.token), nil)
			if err == nil {
				t.Fatal("dial succeeded")
			}
			if resp == nil || resp.StatusCode != tc.status {
				t.Errorf("response = %v, want status %d", resp, tc.status)
			}
		})
	}
}

func TestCloseEndpoint(t *testing.T) {
	srv, hub, _ := newTestServer(t)
	cr := createSession(t, srv)

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/sessions/"+cr.SessionID, nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("DELETE = %d", resp.StatusCode)
	}
	if hub.Len() != 0 {
		t.Errorf("hub has %d rooms after close", hub.Len())
	}

	resp, err = http.Get(srv.URL + "/sessions/" + cr.SessionID)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("GET closed session = %d, want 404", resp.StatusCode)
	}
}
