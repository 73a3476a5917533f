package web

import (
	"context"
	"encoding/binary"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/thelolagemann/goinput/pkg/log"
	"github.com/thelolagemann/goinput/pkg/raw"
)

var errNoTCPInfo = errors.New("web: no tcp info for connection")

// hub tracks the connected clients. The earliest connected client is the
// player: only its input reaches the loop, the others spectate until it
// leaves.
type hub struct {
	clients map[*Client]bool
	player  *Client

	broadcast            chan []byte
	register, unregister chan *Client
	done                 chan struct{}

	// onEvent and onOffset receive the player's input, from the read pump
	// goroutines.
	onEvent  func(raw.Event)
	onOffset func(left, top float64)

	log       log.Logger
	currentID uint8

	mu sync.RWMutex
}

func newHub(logger log.Logger, onEvent func(raw.Event), onOffset func(left, top float64)) *hub {
	return &hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 16),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		onEvent:    onEvent,
		onOffset:   onOffset,
		log:        logger,
	}
}

// serve upgrades a client connection and starts its pumps.
func (h *hub) serve(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Errorf("web: upgrading %s: %v", r.RemoteAddr, err)
		return
	}

	c := h.newClient(conn, r)
	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	}

	go c.ReadPump()
	go c.WritePump()
}

// run handles registration and broadcasting until ctx is done.
func (h *hub) run(ctx context.Context) {
	defer close(h.done)

	t := time.NewTicker(time.Second)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				h.drop(c)
			}
			return
		case c := <-h.register:
			h.add(c)
		case c := <-h.unregister:
			h.remove(c)
		case msg := <-h.broadcast:
			h.sendAll(msg)
		case <-t.C:
			h.sendAll(h.info())
		}
	}
}

func (h *hub) add(c *Client) {
	h.clients[c] = true
	h.log.Infof("web: client %d connected from %s (%s wheel)", c.ID, c.Metadata.RemoteAddr, c.wheelName)

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.player == nil {
		h.player = c
		c.send([]byte{PlayerIdentify, 1})
		return
	}
	c.send([]byte{PlayerIdentify, 0})
}

func (h *hub) remove(c *Client) {
	// is this client still registered
	if _, ok := h.clients[c]; !ok {
		return
	}
	h.drop(c)
	h.log.Infof("web: client %d disconnected", c.ID)

	// notify connected clients that this client has disconnected
	h.sendAll([]byte{ClientClosing, c.ID})
}

// drop forgets c and closes its send queue. If c was the player, the
// longest connected client takes over.
func (h *hub) drop(c *Client) {
	delete(h.clients, c)
	close(c.Send)

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.player != c {
		return
	}
	h.player = h.nextPlayer()
	if h.player != nil {
		h.log.Infof("web: client %d is now the player", h.player.ID)
		h.player.send([]byte{PlayerIdentify, 1})
	}
}

func (h *hub) sendAll(msg []byte) {
	for c := range h.clients {
		select {
		case c.Send <- msg:
		default:
			// too slow to keep up
			h.drop(c)
		}
	}
}

// nextPlayer returns the client that has been connected the longest.
func (h *hub) nextPlayer() *Client {
	var next *Client
	for c := range h.clients {
		if next == nil || c.connectedAt.Before(next.connectedAt) {
			next = c
		}
	}
	return next
}

func (h *hub) isPlayer(c *Client) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.player == c
}

// toPlayer sends msg to the player, if there is one.
func (h *hub) toPlayer(msg []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.player != nil {
		h.player.send(msg)
	}
}

// info lists the average latency of every client.
func (h *hub) info() []byte {
	data := []byte{ServerInfo}
	for c := range h.clients {
		data = append(data, c.ID)
		data = binary.LittleEndian.AppendUint16(data, c.latency())
	}
	return data
}

// newClient creates a new client for conn.
func (h *hub) newClient(conn *websocket.Conn, r *http.Request) *Client {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.currentID++

	ua := r.Header.Get("User-Agent")
	name, wheel := wheelFor(ua)
	c := &Client{
		hub:         h,
		conn:        conn,
		Send:        make(chan []byte, 256),
		ID:          h.currentID,
		wheel:       wheel,
		wheelName:   name,
		connectedAt: time.Now(),
	}
	c.Metadata.RemoteAddr = r.RemoteAddr
	c.Metadata.UserAgent = ua
	return c
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}
