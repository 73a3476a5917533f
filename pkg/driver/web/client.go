package web

import (
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/thelolagemann/goinput/pkg/raw"
)

// Client is one connected browser.
type Client struct {
	hub      *hub
	conn     *websocket.Conn
	Send     chan []byte
	ID       uint8
	Metadata struct {
		RemoteAddr string
		UserAgent  string
	}

	wheel     wheelNormaliser
	wheelName string

	avgLatency  atomic.Uint32 // milliseconds
	connectedAt time.Time
}

// send queues msg without blocking; a client that cannot keep up loses
// the message.
func (c *Client) send(msg []byte) {
	select {
	case c.Send <- msg:
	default:
	}
}

func (c *Client) latency() uint16 {
	return uint16(c.avgLatency.Load())
}

func (c *Client) leave() {
	select {
	case c.hub.unregister <- c:
	case <-c.hub.done:
	}
}

// ReadPump decodes the client's messages. Input from the player is handed
// to the hub, input from spectators is dropped.
func (c *Client) ReadPump() {
	defer func() {
		c.leave()
		c.conn.Close()
	}()

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			return // connection closed
		}
		if len(message) == 0 {
			continue
		}

		switch message[0] {
		case Closing:
			return
		case KeepAlive:
			continue
		}

		v, err := decode(message, c.wheel)
		if err != nil {
			c.hub.log.Debugf("web: client %d: %v", c.ID, err)
			continue
		}
		if !c.hub.isPlayer(c) {
			continue
		}

		switch v := v.(type) {
		case offset:
			c.hub.onOffset(v.left, v.top)
		case raw.Event:
			c.hub.onEvent(v)
		}
	}
}

// WritePump writes queued messages and samples the connection latency
// after each one.
func (c *Client) WritePump() {
	defer func() {
		c.leave()
		c.conn.Close()
	}()

	for message := range c.Send {
		if err := c.conn.WriteMessage(websocket.BinaryMessage, message); err != nil {
			return
		}

		// update average latency
		if us, err := rtt(c.conn.UnderlyingConn()); err == nil {
			avg := c.avgLatency.Load()
			c.avgLatency.Store((avg*9 + us/1000) / 10)
		}
	}

	// the hub closed the connection
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}
