package server

import (
	"time"

	"github.com/tomz197/flappy/internal/score"
)

// Snapshot is an immutable view of the shared leaderboard for rendering.
type Snapshot struct {
	TopScores []score.Entry // Highest first, at most score.MaxEntries
	Players   int           // Connected clients
	UpdatedAt time.Time
}

// Top returns at most n entries of the snapshot's leaderboard.
func (s *Snapshot) Top(n int) []score.Entry {
	if len(s.TopScores) <= n {
		return s.TopScores
	}
	return s.TopScores[:n]
}

// ClientHandle represents a client's connection to the server.
type ClientHandle struct {
	ID       int
	Username string           // Login name, set once the player passes the gate
	EventsCh chan ClientEvent // Events sent to client
}

// ClientEvent represents an event sent from server to client.
type ClientEvent struct {
	Type  ClientEventType
	Entry score.Entry // For EventScoreSaved
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventScoreSaved ClientEventType = iota
	EventServerShutdown
)
