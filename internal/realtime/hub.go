package realtime

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"jobnexus/internal/domain"
	"jobnexus/internal/metrics"
)

const sendBuffer = 16

// Envelope is the JSON frame written to browser sockets.
type Envelope struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Client is one open socket. A user may hold several (one per tab).
type Client struct {
	UserID int64
	send   chan []byte
	once   sync.Once
}

func (c *Client) Messages() <-chan []byte {
	return c.send
}

func (c *Client) close() {
	c.once.Do(func() { close(c.send) })
}

// Hub fans stored notifications out to every socket of the recipient.
type Hub struct {
	mu      sync.RWMutex
	clients map[int64]map[*Client]struct{}
	logger  *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		clients: make(map[int64]map[*Client]struct{}),
		logger:  logger,
	}
}

func (h *Hub) Register(userID int64) *Client {
	c := &Client{UserID: userID, send: make(chan []byte, sendBuffer)}

	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[userID]; !ok {
		h.clients[userID] = make(map[*Client]struct{})
	}
	h.clients[userID][c] = struct{}{}
	metrics.PushConnections.Inc()
	return c
}

func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.clients[c.UserID]
	if !ok {
		return
	}
	if _, ok := set[c]; !ok {
		return
	}
	delete(set, c)
	if len(set) == 0 {
		delete(h.clients, c.UserID)
	}
	c.close()
	metrics.PushConnections.Dec()
}

func (h *Hub) Connections(userID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

// Push delivers without blocking. Slow sockets drop the frame; they still see
// the notification on their next poll.
func (h *Hub) Push(userID int64, notif domain.Notification) {
	frame, err := json.Marshal(Envelope{Type: "notification", Payload: notif})
	if err != nil {
		h.logger.Warn("failed to encode push frame", zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients[userID] {
		select {
		case c.send <- frame:
		default:
			h.logger.Debug("push frame dropped", zap.Int64("user_id", userID))
		}
	}
}

// Close drops every client; their write loops exit once drained.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for userID, set := range h.clients {
		for c := range set {
			c.close()
			metrics.PushConnections.Dec()
		}
		delete(h.clients, userID)
	}
}
