// Package realtime fans dashboard store events out to websocket clients.
package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	clientBuffer   = 64
	broadcastQueue = 256
)

// Event is the frame written to every client.
type Event struct {
	Topic     string      `json:"topic"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// HubConfig configures a Hub.
type HubConfig struct {
	// AllowedOrigins restricts the upgrade Origin header; empty allows all.
	AllowedOrigins []string
	Logger         *zap.Logger
	// OnClientCount observes the connected client count after each change.
	OnClientCount func(int)
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub owns the client set. All membership changes happen on the Run
// goroutine; slow clients whose buffer is full are dropped.
type Hub struct {
	logger     *zap.Logger
	upgrader   websocket.Upgrader
	onCount    func(int)
	clients    map[*client]struct{}
	register   chan *client
	unregister chan *client
	broadcast  chan []byte
	done       chan struct{}
	count      int64
	running    int32
}

// ErrHubStopped is returned by ServeWS once Run has returned.
var ErrHubStopped = errors.New("realtime hub stopped")

func NewHub(cfg HubConfig) *Hub {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	h := &Hub{
		logger:     cfg.Logger,
		onCount:    cfg.OnClientCount,
		clients:    make(map[*client]struct{}),
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan []byte, broadcastQueue),
		done:       make(chan struct{}),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(cfg.AllowedOrigins),
	}
	return h
}

func originChecker(allowed []string) func(*http.Request) bool {
	if len(allowed) == 0 {
		return func(*http.Request) bool { return true }
	}
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		set[o] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := set[origin]
		return ok
	}
}

// Run serves membership and broadcasts until ctx is cancelled, then closes
// every client. Run must be called at most once.
func (h *Hub) Run(ctx context.Context) {
	atomic.StoreInt32(&h.running, 1)
	defer func() {
		atomic.StoreInt32(&h.running, 0)
		close(h.done)
	}()
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				h.drop(c)
			}
			return
		case c := <-h.register:
			h.clients[c] = struct{}{}
			h.countChanged()
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				h.drop(c)
			}
		case msg := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					h.logger.Warn("dropping slow websocket client", zap.String("remote", c.conn.RemoteAddr().String()))
					h.drop(c)
				}
			}
		}
	}
}

func (h *Hub) drop(c *client) {
	delete(h.clients, c)
	close(c.send)
	h.countChanged()
}

func (h *Hub) countChanged() {
	n := len(h.clients)
	if h.onCount != nil {
		h.onCount(n)
	}
	atomic.StoreInt64(&h.count, int64(n))
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	return int(atomic.LoadInt64(&h.count))
}

// Publish queues an event for every client. It never blocks; events are
// dropped when the hub is not running or its queue is full.
func (h *Hub) Publish(topic string, payload interface{}) {
	if h == nil || atomic.LoadInt32(&h.running) == 0 {
		return
	}
	msg, err := json.Marshal(Event{Topic: topic, Payload: payload, Timestamp: time.Now().UTC()})
	if err != nil {
		h.logger.Error("encode realtime event", zap.String("topic", topic), zap.Error(err))
		return
	}
	select {
	case h.broadcast <- msg:
	default:
		h.logger.Warn("realtime queue full, event dropped", zap.String("topic", topic))
	}
}

// ServeWS upgrades the request and attaches the connection to the hub.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	c := &client{conn: conn, send: make(chan []byte, clientBuffer)}
	select {
	case h.register <- c:
	case <-h.done:
		_ = conn.Close()
		return ErrHubStopped
	}

	go h.writePump(c)
	go h.readPump(c)
	return nil
}

// readPump only tracks liveness; client frames are ignored.
func (h *Hub) readPump(c *client) {
	defer func() {
		select {
		case h.unregister <- c:
		case <-h.done:
		}
		_ = c.conn.Close()
	}()
	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				h.logger.Warn("unexpected websocket close", zap.Error(err))
			}
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
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
