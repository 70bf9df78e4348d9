package sse

import (
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"

	"github.com/mcoot/wordtiles/internal/model"
)

// Hub fans one game's events out to everyone watching it.
// Each published event gets the next sequence number as its SSE id,
// so a client can tell when it missed something.
type Hub struct {
	gameID model.GameID
	logger *slog.Logger

	mu      sync.RWMutex
	clients map[*Client]struct{}
	seq     uint64
	closed  bool
}

// NewHub creates an open hub for a game
func NewHub(gameID model.GameID, logger *slog.Logger) *Hub {
	return &Hub{
		gameID:  gameID,
		logger:  logger.With(slog.String("game_id", string(gameID))),
		clients: make(map[*Client]struct{}),
	}
}

// Register adds a client. It returns false, with the client's channel
// already closed, when the hub has shut down.
func (h *Hub) Register(client *Client) bool {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		close(client.send)
		return false
	}
	h.clients[client] = struct{}{}
	count := len(h.clients)
	h.mu.Unlock()

	h.logger.Info("sse client registered",
		slog.String("user_id", string(client.userID)),
		slog.Int("total_clients", count))
	return true
}

// Unregister removes a client and closes its channel
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, client)
	close(client.send)
	count := len(h.clients)
	h.mu.Unlock()

	h.logger.Info("sse client unregistered",
		slog.String("user_id", string(client.userID)),
		slog.Duration("connection_duration", time.Since(client.connectedAt)),
		slog.Int("total_clients", count))
}

// Publish encodes a game event as JSON and sends it, named by its type, to every client.
// Clients whose buffers are full miss the event.
func (h *Hub) Publish(event model.Event) error {
	data, err := sonic.Marshal(event)
	if err != nil {
		return errors.Wrapf(err, "encode %s event", event.Type)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil
	}

	h.seq++
	frame := formatSSEMessage(h.seq, string(event.Type), string(data))
	dropped := 0
	for client := range h.clients {
		select {
		case client.send <- frame:
		default:
			dropped++
		}
	}
	if dropped > 0 {
		h.logger.Warn("sse event dropped for slow clients",
			slog.String("event", string(event.Type)),
			slog.Uint64("seq", h.seq),
			slog.Int("dropped", dropped))
	}
	return nil
}

// Close disconnects every client. Closing twice is a no-op.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for client := range h.clients {
		close(client.send)
	}
	h.logger.Info("sse hub stopped", slog.Int("disconnected_clients", len(h.clients)))
	h.clients = nil
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// formatSSEMessage frames one SSE message. A zero id is omitted and
// each line of data gets its own "data: " prefix.
func formatSSEMessage(id uint64, eventName, data string) []byte {
	var sb strings.Builder
	sb.WriteString("event: " + eventName + "\n")
	if id > 0 {
		sb.WriteString("id: " + strconv.FormatUint(id, 10) + "\n")
	}
	for _, line := range splitLines(data) {
		sb.WriteString("data: " + line + "\n")
	}
	sb.WriteString("\n")
	return []byte(sb.String())
}

// splitLines splits on \n, dropping \r and a trailing empty line
func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}

// HubManager owns the hubs of all watched games
type HubManager struct {
	hubs   map[model.GameID]*Hub
	mu     sync.RWMutex
	logger *slog.Logger
}

// NewHubManager creates a new HubManager
func NewHubManager(logger *slog.Logger) *HubManager {
	return &HubManager{
		hubs:   make(map[model.GameID]*Hub),
		logger: logger.With(slog.String("component", "sse")),
	}
}

// GetOrCreateHub returns the hub for a game, creating one if nobody watched it yet
func (m *HubManager) GetOrCreateHub(gameID model.GameID) *Hub {
	m.mu.Lock()
	defer m.mu.Unlock()

	hub, ok := m.hubs[gameID]
	if !ok {
		hub = NewHub(gameID, m.logger)
		m.hubs[gameID] = hub
	}
	return hub
}

// GetHub returns the hub for a game, or nil if nobody is watching
func (m *HubManager) GetHub(gameID model.GameID) *Hub {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hubs[gameID]
}

// RemoveHub closes a game's hub, for example once the game is over
func (m *HubManager) RemoveHub(gameID model.GameID) {
	m.mu.Lock()
	hub, ok := m.hubs[gameID]
	delete(m.hubs, gameID)
	m.mu.Unlock()

	if ok {
		hub.Close()
	}
}

// CleanupEmptyHubs closes hubs whose watchers have all left
func (m *HubManager) CleanupEmptyHubs() {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, hub := range m.hubs {
		if hub.ClientCount() == 0 {
			hub.Close()
			delete(m.hubs, id)
			removed++
		}
	}
	if removed > 0 {
		m.logger.Info("sse empty hubs cleaned up", slog.Int("removed", removed))
	}
}

// Close shuts down every hub
func (m *HubManager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, hub := range m.hubs {
		hub.Close()
		delete(m.hubs, id)
	}
}
