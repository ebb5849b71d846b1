// Package monitor serves a read-only websocket feed of rollout frames
// so episodes can be watched live. It never feeds anything back into
// the simulation.
package monitor

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/packbotics/warehouse-rl/internal/env"
)

const writeWait = 5 * time.Second

// Frame is one step of a watched rollout as sent to spectators
type Frame struct {
	Type       string          `json:"type"`
	EpisodeID  string          `json:"episode_id"`
	Step       int             `json:"step"`
	Action     string          `json:"action"`
	Reward     float64         `json:"reward"`
	Done       bool            `json:"done"`
	DoneReason string          `json:"done_reason,omitempty"`
	Obs        env.Observation `json:"obs"`
	Render     string          `json:"render"`
	ServerTime int64           `json:"server_time"`
}

type subscriber struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

// Hub tracks spectator connections and fans frames out to them. A
// client whose write fails is dropped; slow spectators never block the
// rollout.
type Hub struct {
	mu          sync.Mutex
	subscribers map[string]*subscriber
	nextID      int
	logger      zerolog.Logger
}

// NewHub creates an empty hub
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		subscribers: make(map[string]*subscriber),
		logger:      logger.With().Str("component", "monitor_hub").Logger(),
	}
}

// Subscribe registers a connection and returns its id
func (h *Hub) Subscribe(conn *websocket.Conn) string {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	id := fmt.Sprintf("spectator-%d", h.nextID)
	h.subscribers[id] = &subscriber{conn: conn}
	h.logger.Info().Str("spectator_id", id).Msg("Spectator connected")
	return id
}

// Unsubscribe drops a connection
func (h *Hub) Unsubscribe(id string) {
	h.mu.Lock()
	sub, ok := h.subscribers[id]
	delete(h.subscribers, id)
	h.mu.Unlock()

	if ok {
		sub.conn.Close()
		h.logger.Info().Str("spectator_id", id).Msg("Spectator disconnected")
	}
}

// SubscriberCount returns the number of connected spectators
func (h *Hub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers)
}

// Broadcast sends one frame to every spectator, dropping any whose
// write fails.
func (h *Hub) Broadcast(frame Frame) {
	frame.ServerTime = time.Now().UnixMilli()
	data, err := json.Marshal(frame)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to marshal frame")
		return
	}

	h.mu.Lock()
	subs := make(map[string]*subscriber, len(h.subscribers))
	for id, sub := range h.subscribers {
		subs[id] = sub
	}
	h.mu.Unlock()

	for id, sub := range subs {
		sub.mu.Lock()
		sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
		err := sub.conn.WriteMessage(websocket.TextMessage, data)
		sub.mu.Unlock()
		if err != nil {
			h.logger.Warn().Str("spectator_id", id).Err(err).Msg("Dropping slow spectator")
			h.Unsubscribe(id)
		}
	}
}

// Server exposes the hub over HTTP at /ws.
type Server struct {
	hub      *Hub
	srv      *http.Server
	upgrader websocket.Upgrader
	logger   zerolog.Logger
}

// NewServer creates a spectator server listening on addr
func NewServer(addr string, hub *Hub, logger zerolog.Logger) *Server {
	s := &Server{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		logger: logger.With().Str("component", "monitor_server").Logger(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	s.srv = &http.Server{Addr: addr, Handler: mux}
	return s
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Websocket upgrade failed")
		return
	}

	id := s.hub.Subscribe(conn)

	// Drain (and ignore) client reads so we notice disconnects.
	go func() {
		defer s.hub.Unsubscribe(id)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// Handler returns the HTTP handler, exposed for tests
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// ListenAndServe blocks serving spectator connections
func (s *Server) ListenAndServe() error {
	s.logger.Info().Str("addr", s.srv.Addr).Msg("Spectator feed listening")
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
