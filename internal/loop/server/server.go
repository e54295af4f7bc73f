// Package server runs the hub shared by all connected clients: the player
// registry, the shutdown broadcast and the leaderboard of finished runs.
package server

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/roots/internal/loop/config"
	"github.com/tomz197/roots/internal/records"
)

// GameServer is the interface clients use to communicate with the hub.
// Decouples the Client from the concrete Server implementation, enabling
// testing and potential network-based server implementations.
type GameServer interface {
	RegisterClient(username string) *ClientHandle
	UnregisterClient(clientID int)
	SubmitRun(run records.RunRecord)
	GetSnapshot() *Snapshot
}

// Server tracks connected clients and finished runs.
// Every game runs inside its own client; the server only sees results.
type Server struct {
	snapshot     atomic.Pointer[Snapshot]
	clients      map[int]*ClientHandle
	nextClientID int
	registerCh   chan *ClientHandle
	unregisterCh chan int
	runCh        chan records.RunRecord
	store        *records.Store
	logger       *log.Logger
	mu           sync.RWMutex
}

// Compile-time check that Server implements GameServer.
var _ GameServer = (*Server)(nil)

// ClientHandle represents a client's connection to the server.
type ClientHandle struct {
	ID       int
	Username string           // Display name for this client
	EventsCh chan ClientEvent // Events sent to client (shutdown, records)
}

// ClientEvent represents an event sent from server to client.
type ClientEvent struct {
	Type ClientEventType
	Run  records.RunRecord // For record events
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventServerShutdown ClientEventType = iota
	EventNewRecord                      // A run entered the leaderboard
)

// Snapshot is an immutable view of the hub for rendering.
type Snapshot struct {
	Players     int
	Leaderboard []records.RunRecord // Best runs, best first
}

// NewServer creates a hub persisting runs to store.
// A nil store keeps runs in memory; a nil logger discards logs.
func NewServer(store *records.Store, logger *log.Logger) *Server {
	if store == nil {
		store = records.NewStore(nil)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	s := &Server{
		clients:      make(map[int]*ClientHandle),
		nextClientID: 1,
		registerCh:   make(chan *ClientHandle, 16),
		unregisterCh: make(chan int, 16),
		runCh:        make(chan records.RunRecord, 64),
		store:        store,
		logger:       logger,
	}

	s.createSnapshot()
	return s
}

// Run starts the server loop. Blocks until the context is cancelled.
func (s *Server) Run(ctx context.Context) {
	ticker := time.NewTicker(config.HubTickTime)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.processRuns()
			return
		case <-ticker.C:
		}

		s.processRegistrations()
		s.processRuns()
		s.createSnapshot()
	}
}

// Shutdown gracefully shuts down the server by notifying all connected clients
// and waiting for them to disconnect (up to the given timeout).
// The caller should cancel the server context after Shutdown returns.
func (s *Server) Shutdown(timeout time.Duration) {
	s.broadcast(ClientEvent{Type: EventServerShutdown})

	// Wait for all clients to disconnect, or timeout
	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-deadline:
			return
		case <-ticker.C:
			s.mu.RLock()
			remaining := len(s.clients)
			s.mu.RUnlock()
			if remaining == 0 {
				return
			}
		}
	}
}

// RegisterClient registers a new client with the given username and returns its handle.
func (s *Server) RegisterClient(username string) *ClientHandle {
	s.mu.Lock()
	id := s.nextClientID
	s.nextClientID++
	s.mu.Unlock()

	handle := &ClientHandle{
		ID:       id,
		Username: username,
		EventsCh: make(chan ClientEvent, 16),
	}

	s.registerCh <- handle
	return handle
}

// UnregisterClient removes a client from the server.
func (s *Server) UnregisterClient(clientID int) {
	s.unregisterCh <- clientID
}

// SubmitRun queues a finished run for the leaderboard.
func (s *Server) SubmitRun(run records.RunRecord) {
	select {
	case s.runCh <- run:
	default:
		s.logger.Warn("run dropped, queue full", "user", run.Username, "level", run.Level)
	}
}

// GetSnapshot returns the current hub snapshot.
func (s *Server) GetSnapshot() *Snapshot {
	return s.snapshot.Load()
}

// processRegistrations handles pending client registrations/unregistrations.
func (s *Server) processRegistrations() {
	for {
		select {
		case handle := <-s.registerCh:
			s.mu.Lock()
			s.clients[handle.ID] = handle
			s.mu.Unlock()
			s.logger.Info("client joined", "id", handle.ID, "user", handle.Username)
		case clientID := <-s.unregisterCh:
			s.mu.Lock()
			if handle, ok := s.clients[clientID]; ok {
				close(handle.EventsCh)
				delete(s.clients, clientID)
				s.logger.Info("client left", "id", clientID, "user", handle.Username)
			}
			s.mu.Unlock()
		default:
			return
		}
	}
}

// processRuns stores queued runs and announces new leaderboard entries.
func (s *Server) processRuns() {
	for {
		select {
		case run := <-s.runCh:
			if err := s.store.Add(run); err != nil {
				s.logger.Error("saving run failed", "err", err)
			}
			s.logger.Info("run finished", "user", run.Username, "session", run.SessionID,
				"level", run.Level, "year", run.Year)

			if s.onLeaderboard(run) {
				s.broadcast(ClientEvent{Type: EventNewRecord, Run: run})
			}
		default:
			return
		}
	}
}

// onLeaderboard reports whether run is among the displayed best runs.
func (s *Server) onLeaderboard(run records.RunRecord) bool {
	for _, r := range s.store.Top(config.LeaderboardSize) {
		if r == run {
			return true
		}
	}
	return false
}

// broadcast sends ev to every client without blocking.
func (s *Server) broadcast(ev ClientEvent) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, handle := range s.clients {
		select {
		case handle.EventsCh <- ev:
		default:
		}
	}
}

// createSnapshot publishes an immutable snapshot of the hub.
func (s *Server) createSnapshot() {
	s.mu.RLock()
	players := len(s.clients)
	s.mu.RUnlock()

	s.snapshot.Store(&Snapshot{
		Players:     players,
		Leaderboard: s.store.Top(config.LeaderboardSize),
	})
}
