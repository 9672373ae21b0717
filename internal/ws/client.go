package ws

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	userID uuid.UUID
}

func NewClient(hub *Hub, conn *websocket.Conn, userID uuid.UUID) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		send:   make(chan []byte, 64),
		userID: userID,
	}
}

type controlFrame struct {
	Action string `json:"action"`
	Topic  string `json:"topic"`
}

// ReadPump consumes subscribe/unsubscribe frames from the client. Topics a
// user is not entitled to are silently ignored; payloads carry no data, so
// there is nothing else to authorize here.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var frame controlFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			continue
		}
		topic := strings.TrimSpace(frame.Topic)
		if !allowedTopic(c.userID, topic) {
			continue
		}

		switch frame.Action {
		case "subscribe":
			c.hub.Subscribe(c, topic)
		case "unsubscribe":
			c.hub.Unsubscribe(c, topic)
		}
	}
}

func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// allowedTopic limits a user to its own inbound chat topics, its own room
// topic, and subject channels. Subject pings are liveness-only; the re-fetch
// that follows goes through the authorized query path.
func allowedTopic(userID uuid.UUID, topic string) bool {
	if topic == "" {
		return false
	}
	id := userID.String()
	switch {
	case topic == "chat-rooms/"+id:
		return true
	case strings.HasPrefix(topic, "chat-messages/") && strings.HasSuffix(topic, "-"+id):
		return true
	case strings.HasPrefix(topic, "subjects/"):
		_, err := uuid.Parse(strings.TrimPrefix(topic, "subjects/"))
		return err == nil
	default:
		return false
	}
}
