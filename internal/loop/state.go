package loop

import (
	"time"

	"github.com/tomz197/flappy/internal/object"
)

// GameState is the phase of the session state machine.
type GameState int

const (
	StateStart GameState = iota // Idle, before or after a session
	StatePlay                   // Session running
	StateEnd                    // Session over, returning to Start shortly
)

func (s GameState) String() string {
	switch s {
	case StateStart:
		return "start"
	case StatePlay:
		return "play"
	case StateEnd:
		return "end"
	default:
		return "unknown"
	}
}

// EndReason records why a session ended.
type EndReason int

const (
	EndNone      EndReason = iota
	EndCollision           // Player touched an obstacle
	EndBoundary            // Player touched the floor or the ceiling
)

func (r EndReason) String() string {
	switch r {
	case EndCollision:
		return "collision"
	case EndBoundary:
		return "boundary"
	default:
		return "none"
	}
}

// InputSource selects which ascend impulse applies.
type InputSource int

const (
	SourceKeyboard InputSource = iota
	SourceTouch
)

// Session holds the mutable state of one Start→Play→End lifecycle.
type Session struct {
	ID          uint64
	State       GameState
	Score       int
	ScrollSpeed float64
	StartedAt   time.Time
	EndedAt     time.Time
	EndReason   EndReason
	Identity    string // Name the score is recorded under, may be empty
	Player      *object.Player
	Obstacles   []*object.Obstacle // Spawn order
}

// ScoreSink receives the final score of each session.
type ScoreSink interface {
	Save(name string, score int) error
}
