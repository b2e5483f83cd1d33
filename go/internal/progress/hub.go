package progress

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/mcdev12/kickoff/go/internal/metrics"
	"github.com/rs/zerolog/log"
)

// HubConfig holds configuration for websocket subscribers
type HubConfig struct {
	WriteTimeout    time.Duration
	ReadTimeout     time.Duration
	PingInterval    time.Duration
	MaxMessageSize  int64
	ReadBufferSize  int
	WriteBufferSize int
	CheckOrigin     func(r *http.Request) bool
}

// DefaultHubConfig returns default websocket configuration
func DefaultHubConfig() HubConfig {
	return HubConfig{
		WriteTimeout:    10 * time.Second,
		ReadTimeout:     60 * time.Second,
		PingInterval:    30 * time.Second,
		MaxMessageSize:  512,
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
}

// Hub broadcasts progress events to websocket subscribers. A subscriber may
// narrow its feed to one league with ?league=<external id>.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[*subscriber]bool

	upgrader    websocket.Upgrader
	config      HubConfig
	broadcastCh chan Event
}

type subscriber struct {
	id     string
	league string
	conn   *websocket.Conn
	send   chan []byte
	hub    *Hub
}

// NewHub creates a hub. Call Start to begin delivering events.
func NewHub(config HubConfig) *Hub {
	return &Hub{
		subscribers: make(map[*subscriber]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
		config:      config,
		broadcastCh: make(chan Event, 1000),
	}
}

// Start delivers queued events until ctx is done
func (h *Hub) Start(ctx context.Context) {
	log.Info().Msg("progress hub started")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("progress hub shutting down")
			h.closeAll()
			return
		case event := <-h.broadcastCh:
			h.broadcast(event)
		}
	}
}

// Sink returns a Func that queues events for broadcast without blocking
func (h *Hub) Sink() Func {
	return func(e Event) {
		select {
		case h.broadcastCh <- e:
		default:
			log.Warn().Str("step", string(e.Step)).Msg("progress broadcast channel full, dropping event")
		}
	}
}

// ServeHTTP upgrades the request and registers the subscriber
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written an error response.
		log.Error().Err(err).Msg("failed to upgrade progress websocket")
		return
	}

	sub := &subscriber{
		id:     uuid.New().String(),
		league: r.URL.Query().Get("league"),
		conn:   conn,
		send:   make(chan []byte, 256),
		hub:    h,
	}
	h.register(sub)

	go sub.writePump()
	go sub.readPump()
}

// Subscribers returns the number of connected subscribers
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

func (h *Hub) register(sub *subscriber) {
	h.mu.Lock()
	h.subscribers[sub] = true
	count := len(h.subscribers)
	h.mu.Unlock()

	metrics.ProgressSubscribers.Set(float64(count))
	log.Info().
		Str("subscriber_id", sub.id).
		Str("league", sub.league).
		Int("total_subscribers", count).
		Msg("progress subscriber connected")
}

func (h *Hub) unregister(sub *subscriber) {
	h.mu.Lock()
	if !h.subscribers[sub] {
		h.mu.Unlock()
		return
	}
	delete(h.subscribers, sub)
	close(sub.send)
	count := len(h.subscribers)
	h.mu.Unlock()

	metrics.ProgressSubscribers.Set(float64(count))
	log.Info().Str("subscriber_id", sub.id).Msg("progress subscriber disconnected")
}

func (h *Hub) closeAll() {
	h.mu.RLock()
	subs := make([]*subscriber, 0, len(h.subscribers))
	for sub := range h.subscribers {
		subs = append(subs, sub)
	}
	h.mu.RUnlock()

	for _, sub := range subs {
		h.unregister(sub)
	}
}

// broadcast sends under the read lock so that unregister, which closes the
// send channel, cannot run concurrently with a send.
func (h *Hub) broadcast(event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal progress event")
		return
	}

	var slow []*subscriber
	h.mu.RLock()
	for sub := range h.subscribers {
		if sub.league != "" && sub.league != event.LeagueExternalID {
			continue
		}
		select {
		case sub.send <- data:
		default:
			slow = append(slow, sub)
		}
	}
	h.mu.RUnlock()

	for _, sub := range slow {
		log.Warn().Str("subscriber_id", sub.id).Msg("subscriber send buffer full, closing connection")
		h.unregister(sub)
	}
}

func (s *subscriber) writePump() {
	ticker := time.NewTicker(s.hub.config.PingInterval)
	defer func() {
		ticker.Stop()
		s.conn.Close()
		s.hub.unregister(s)
	}()

	for {
		select {
		case message, ok := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(s.hub.config.WriteTimeout))
			if !ok {
				_ = s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Error().Err(err).Str("subscriber_id", s.id).Msg("failed to write progress event")
				return
			}

		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(s.hub.config.WriteTimeout))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Debug().Err(err).Str("subscriber_id", s.id).Msg("failed to send ping")
				return
			}
		}
	}
}

// readPump only drains control frames; subscribers do not send commands
func (s *subscriber) readPump() {
	defer func() {
		s.hub.unregister(s)
		s.conn.Close()
	}()

	s.conn.SetReadLimit(s.hub.config.MaxMessageSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(s.hub.config.ReadTimeout))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(s.hub.config.ReadTimeout))
	})

	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Error().Err(err).Str("subscriber_id", s.id).Msg("unexpected websocket close")
			}
			return
		}
	}
}
