package collab

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/coder/websocket"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
	maxMsgSize = 64 * 1024
)

type outbound struct {
	typ  websocket.MessageType
	data []byte
}

// Client is one websocket connection viewing a room. JSON messages go out
// as text frames and rendered canvases as binary PNG frames.
type Client struct {
	room        *Room
	conn        *websocket.Conn
	send        chan outbound
	ClientID    string
	DisplayName string
}

func NewClient(room *Room, conn *websocket.Conn, clientID, displayName string) *Client {
	return &Client{
		room:        room,
		conn:        conn,
		send:        make(chan outbound, 256),
		ClientID:    clientID,
		DisplayName: displayName,
	}
}

func (c *Client) ReadPump(ctx context.Context) {
	defer func() {
		c.room.Leave(c)
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	c.conn.SetReadLimit(maxMsgSize)

	for {
		_, data, err := c.conn.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure ||
				websocket.CloseStatus(err) == websocket.StatusGoingAway {
				return
			}
			slog.Debug("read error", "error", err, "client", c.ClientID)
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			slog.Warn("invalid message", "error", err, "client", c.ClientID)
			continue
		}

		msg.ClientID = c.ClientID
		msg.SessionID = c.room.ID()

		if err := c.room.Submit(ctx, c, &msg); err != nil {
			return
		}
	}
}

func (c *Client) WritePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		select {
		case out, ok := <-c.send:
			if !ok {
				return
			}

			writeCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := c.conn.Write(writeCtx, out.typ, out.data)
			cancel()
			if err != nil {
				slog.Debug("write error", "error", err, "client", c.ClientID)
				return
			}

		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := c.conn.Ping(pingCtx)
			cancel()
			if err != nil {
				return
			}

		case <-ctx.Done():
			return
		}
	}
}

// Send queues msg as a text frame. It must only be called from the room
// goroutine.
func (c *Client) Send(msg *Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("marshal message", "error", err)
		return
	}
	c.enqueue(outbound{typ: websocket.MessageText, data: data})
}

// SendBinary queues a binary frame. It must only be called from the room
// goroutine.
func (c *Client) SendBinary(data []byte) {
	c.enqueue(outbound{typ: websocket.MessageBinary, data: data})
}

func (c *Client) enqueue(out outbound) {
	select {
	case c.send <- out:
	default:
		slog.Warn("client send buffer full, dropping message", "client", c.ClientID)
	}
}
