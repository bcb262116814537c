package collab

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"time"

	"github.com/rasterpad/rasterpad/internal/engine"
	"github.com/rasterpad/rasterpad/internal/export"
)

// MaxCanvasSize bounds both dimensions of a resize request.
const MaxCanvasSize = 4096

const inboxSize = 64

// Room owns one editor session and the clients viewing it. All session
// and client-map access happens on the room goroutine; other goroutines
// hand work to it through the inbox.
type Room struct {
	id       string
	session  *engine.Session
	clients  map[string]*Client // clientID -> client
	presence *PresenceManager

	inbox   chan func()
	done    chan struct{}
	closed  bool
	onClose func(*Room)

	// Close the room once it has had no clients for idleTimeout (0 never).
	idleTimeout time.Duration
	idleTimer   *time.Timer
	idleGen     int

	// Scene changed since the last scene.state broadcast
	stateDirty bool
}

func newRoom(id string, session *engine.Session, idleTimeout time.Duration, onClose func(*Room)) *Room {
	r := &Room{
		id:          id,
		session:     session,
		clients:     make(map[string]*Client),
		presence:    NewPresenceManager(),
		inbox:       make(chan func(), inboxSize),
		done:        make(chan struct{}),
		onClose:     onClose,
		idleTimeout: idleTimeout,
		stateDirty:  true,
	}
	// A new room has no clients yet.
	r.armIdle()
	go r.run()
	return r
}

// ID returns the session ID served by the room.
func (r *Room) ID() string {
	return r.id
}

// Done is closed once the room has shut down.
func (r *Room) Done() <-chan struct{} {
	return r.done
}

func (r *Room) run() {
	defer close(r.done)
	for fn := range r.inbox {
		fn()
		if r.closed {
			return
		}
		// Coalesce: publish once the backlog is drained.
		if len(r.inbox) == 0 {
			r.flush()
		}
	}
}

// submit queues fn for the room goroutine. It fails once the room is
// closed or ctx ends.
func (r *Room) submit(ctx context.Context, fn func()) error {
	select {
	case <-r.done:
		return ErrRoomNotFound
	default:
	}
	select {
	case r.inbox <- fn:
		return nil
	case <-r.done:
		return ErrRoomNotFound
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Join adds c to the room.
func (r *Room) Join(ctx context.Context, c *Client) error {
	return r.submit(ctx, func() { r.join(c) })
}

// Leave removes c from the room. It is a no-op after the room closed.
func (r *Room) Leave(c *Client) {
	r.submit(context.Background(), func() { r.leave(c) })
}

// Submit hands a client message to the room.
func (r *Room) Submit(ctx context.Context, c *Client, msg *Message) error {
	return r.submit(ctx, func() { r.handleMessage(c, msg) })
}

// Frame returns a copy of the current canvas, rendering it first if
// needed.
func (r *Room) Frame(ctx context.Context) (*image.RGBA, error) {
	reply := make(chan *image.RGBA, 1)
	err := r.submit(ctx, func() {
		if r.session.Dirty() {
			r.flush()
		}
		src := r.session.Canvas().Image()
		img := image.NewRGBA(src.Bounds())
		copy(img.Pix, src.Pix)
		reply <- img
	})
	if err != nil {
		return nil, err
	}
	select {
	case img := <-reply:
		return img, nil
	case <-r.done:
		return nil, ErrRoomNotFound
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// State returns the current scene summary.
func (r *Room) State(ctx context.Context) (engine.SceneState, error) {
	reply := make(chan engine.SceneState, 1)
	if err := r.submit(ctx, func() { reply <- r.session.State() }); err != nil {
		return engine.SceneState{}, err
	}
	select {
	case st := <-reply:
		return st, nil
	case <-r.done:
		return engine.SceneState{}, ErrRoomNotFound
	case <-ctx.Done():
		return engine.SceneState{}, ctx.Err()
	}
}

// Close shuts the room down and disconnects its clients.
func (r *Room) Close(reason string) {
	if r.submit(context.Background(), func() { r.shutdown(reason) }) == nil {
		<-r.done
	}
}

func (r *Room) join(c *Client) {
	r.disarmIdle()

	// Bring everyone up to date so the newcomer starts from the same frame.
	r.flush()

	r.clients[c.ClientID] = c
	w, h := r.session.Size()
	c.Send(newMessage(TypeWelcome, WelcomePayload{
		SessionID: r.id,
		ClientID:  c.ClientID,
		Width:     w,
		Height:    h,
	}))
	c.Send(r.presence.StateMessage())
	c.Send(newMessage(TypeSceneState, r.session.State()))
	if frame, err := r.encodeFrame(); err == nil {
		c.SendBinary(frame)
	}

	r.broadcast(newMessage(TypePresenceJoin, PresenceJoinPayload{
		ClientID:    c.ClientID,
		DisplayName: c.DisplayName,
	}), c.ClientID)

	slog.Info("client joined", "client", c.ClientID, "session", r.id)
}

func (r *Room) leave(c *Client) {
	if r.clients[c.ClientID] != c {
		return
	}
	delete(r.clients, c.ClientID)
	close(c.send)
	r.presence.Remove(c.ClientID)

	r.broadcast(newMessage(TypePresenceLeave, PresenceLeavePayload{ClientID: c.ClientID}), "")

	slog.Info("client left", "client", c.ClientID, "session", r.id)

	if len(r.clients) == 0 {
		r.armIdle()
	}
}

// armIdle schedules an idle shutdown. Joining, or arming again, makes any
// earlier schedule stale.
func (r *Room) armIdle() {
	if r.idleTimeout <= 0 {
		return
	}
	r.disarmIdle()
	gen := r.idleGen
	r.idleTimer = time.AfterFunc(r.idleTimeout, func() {
		r.submit(context.Background(), func() {
			if !r.closed && gen == r.idleGen && len(r.clients) == 0 {
				r.shutdown("idle")
			}
		})
	})
}

func (r *Room) disarmIdle() {
	r.idleGen++
	if r.idleTimer != nil {
		r.idleTimer.Stop()
		r.idleTimer = nil
	}
}

func (r *Room) shutdown(reason string) {
	r.disarmIdle()
	r.broadcast(newMessage(TypeSessionClosed, ClosedPayload{Reason: reason}), "")
	for id, c := range r.clients {
		delete(r.clients, id)
		close(c.send)
	}
	r.closed = true
	if r.onClose != nil {
		r.onClose(r)
	}
	slog.Info("session closed", "session", r.id, "reason", reason)
}

func (r *Room) handleMessage(sender *Client, msg *Message) {
	var err error
	switch msg.Type {
	case TypeInputMouse:
		var p MousePayload
		if err = json.Unmarshal(msg.Payload, &p); err == nil && (p.Button == "" || p.Button == ButtonLeft) {
			r.session.MouseDown(p.X, p.Y)
			r.stateDirty = true
		}
	case TypeInputMotion:
		var p MotionPayload
		if err = json.Unmarshal(msg.Payload, &p); err == nil {
			r.session.Motion(p.X, p.Y)
			r.updatePresence(sender)
		}
	case TypeInputKey:
		var p KeyPayload
		if err = json.Unmarshal(msg.Payload, &p); err == nil {
			err = r.session.Key(p.Key)
			r.stateDirty = true
		}
	case TypeInputMode:
		var p ModePayload
		if err = json.Unmarshal(msg.Payload, &p); err == nil {
			err = r.session.SelectMenu(p.Mode)
			r.stateDirty = true
		}
	case TypeInputResize:
		var p ResizePayload
		if err = json.Unmarshal(msg.Payload, &p); err == nil {
			err = r.resize(p.Width, p.Height)
		}
	default:
		slog.Warn("unknown message type", "type", msg.Type, "client", sender.ClientID)
		err = fmt.Errorf("unknown message type %q", msg.Type)
	}

	if errors.Is(err, engine.ErrQuit) {
		r.shutdown("quit")
		return
	}
	if err != nil {
		sender.Send(newMessage(TypeError, ErrorPayload{Message: err.Error()}))
	}
}

func (r *Room) resize(width, height int) error {
	if width < 1 || height < 1 || width > MaxCanvasSize || height > MaxCanvasSize {
		return fmt.Errorf("invalid canvas size %dx%d", width, height)
	}
	r.session.Resize(width, height)
	r.broadcast(newMessage(TypeCanvasSize, ResizePayload{Width: width, Height: height}), "")
	return nil
}

func (r *Room) updatePresence(sender *Client) {
	m := r.session.Mouse()
	p := &PresencePayload{
		Cursor:      &CursorPos{X: m.X, Y: m.Y},
		DisplayName: sender.DisplayName,
	}
	r.presence.Update(sender.ClientID, p)

	msg := newMessage(TypePresenceUpdate, p)
	msg.ClientID = sender.ClientID
	r.broadcast(msg, sender.ClientID)
}

// flush publishes pending scene changes and a fresh frame.
func (r *Room) flush() {
	if r.stateDirty {
		r.broadcast(newMessage(TypeSceneState, r.session.State()), "")
		r.stateDirty = false
	}
	if !r.session.Dirty() {
		return
	}
	r.session.Render()
	frame, err := r.encodeFrame()
	if err != nil {
		slog.Error("encode frame", "error", err, "session", r.id)
		return
	}
	for _, c := range r.clients {
		c.SendBinary(frame)
	}
}

func (r *Room) encodeFrame() ([]byte, error) {
	var buf bytes.Buffer
	if err := export.Encode(&buf, r.session.Canvas().Image(), export.PNG, 1); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *Room) broadcast(msg *Message, excludeClientID string) {
	msg.SessionID = r.id
	for _, c := range r.clients {
		if c.ClientID != excludeClientID {
			c.Send(msg)
		}
	}
}
