// Package server holds the state shared between every connected player:
// the leaderboard and the list of connected clients. Each player runs an
// independent game; only their final scores meet here.
package server

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/flappy/internal/loop/config"
	"github.com/tomz197/flappy/internal/score"
)

// GameServer is the interface clients use to communicate with the server.
// Decouples the Client from the concrete Server implementation, enabling
// testing and a local single-player setup.
type GameServer interface {
	RegisterClient(username string) *ClientHandle
	UnregisterClient(clientID int)
	SetUsername(clientID int, username string)
	Save(name string, score int) error
	GetSnapshot() *Snapshot
}

// Server owns the leaderboard and fans out updates to clients.
type Server struct {
	board        *score.Board
	logger       *log.Logger
	now          func() time.Time
	snapshot     atomic.Pointer[Snapshot]
	clients      map[int]*ClientHandle
	nextClientID int
	registerCh   chan *ClientHandle
	unregisterCh chan int
	mu           sync.RWMutex
}

// Compile-time check that Server implements GameServer.
var _ GameServer = (*Server)(nil)

// NewServer creates a server over board. A nil logger uses log.Default().
func NewServer(board *score.Board, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		board:        board,
		logger:       logger,
		now:          time.Now,
		clients:      make(map[int]*ClientHandle),
		nextClientID: 1,
		registerCh:   make(chan *ClientHandle, 16),
		unregisterCh: make(chan int, 16),
	}
	s.refreshSnapshot()
	return s
}

// Run processes registrations and keeps the snapshot current.
// Blocks until the context is cancelled.
func (s *Server) Run(ctx context.Context) {
	ticker := time.NewTicker(config.ServerTickTime)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if s.processRegistrations() {
				s.refreshSnapshot()
			}
		}
	}
}

// Shutdown gracefully shuts down the server by notifying all connected clients
// and waiting for them to disconnect (up to the given timeout).
// The caller should cancel the server context after Shutdown returns.
func (s *Server) Shutdown(timeout time.Duration) {
	// Notify all connected clients about the shutdown
	s.mu.RLock()
	for _, handle := range s.clients {
		select {
		case handle.EventsCh <- ClientEvent{Type: EventServerShutdown}:
		default:
		}
	}
	s.mu.RUnlock()

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

// SetUsername records the name a client logged in with.
func (s *Server) SetUsername(clientID int, username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if handle, ok := s.clients[clientID]; ok {
		handle.Username = username
	}
}

// Save records a final score and publishes the new leaderboard. It
// satisfies the game engine's score sink.
func (s *Server) Save(name string, sc int) error {
	if err := s.board.Save(name, sc); err != nil {
		return err
	}
	s.refreshSnapshot()

	// Let every player see the change, e.g. to refresh an open leaderboard.
	ev := ClientEvent{Type: EventScoreSaved, Entry: score.Entry{Name: name, Score: sc}}
	s.mu.RLock()
	for _, handle := range s.clients {
		select {
		case handle.EventsCh <- ev:
		default:
		}
	}
	s.mu.RUnlock()
	return nil
}

// GetSnapshot returns the current leaderboard snapshot.
func (s *Server) GetSnapshot() *Snapshot {
	return s.snapshot.Load()
}

// processRegistrations handles pending client registrations/unregistrations.
// Reports whether the client list changed.
func (s *Server) processRegistrations() bool {
	changed := false
	for {
		select {
		case handle := <-s.registerCh:
			s.mu.Lock()
			s.clients[handle.ID] = handle
			s.mu.Unlock()
			changed = true
		case clientID := <-s.unregisterCh:
			s.mu.Lock()
			if handle, ok := s.clients[clientID]; ok {
				close(handle.EventsCh)
				delete(s.clients, clientID)
				changed = true
			}
			s.mu.Unlock()
		default:
			return changed
		}
	}
}

// refreshSnapshot reloads the leaderboard and publishes a new snapshot.
func (s *Server) refreshSnapshot() {
	top := s.board.Top(score.MaxEntries)

	s.mu.RLock()
	players := len(s.clients)
	s.mu.RUnlock()

	s.snapshot.Store(&Snapshot{
		TopScores: top,
		Players:   players,
		UpdatedAt: s.now(),
	})
	s.logger.Debug("leaderboard snapshot", "entries", len(top), "players", players)
}
