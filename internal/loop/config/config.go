// Package config centralizes all tunable game parameters.
package config

import "time"

// Field resolution - the play-field in logical units.
// Actual rendering scales to fit terminal size.
const (
	FieldWidth  = 1350 // Logical field width
	FieldHeight = 900  // Logical field height
)

// Max render resolution in terminal cells. Larger terminals get a centered
// play area with a border.
const (
	MaxTermWidth  = 180
	MaxTermHeight = 60
)

// Session lifecycle
const (
	ReturnToMenuDelay = 2 * time.Second        // End → Start delay
	ClickCueDuration  = 200 * time.Millisecond // Wings-up sprite after a click
	MaxUsernameLength = 15
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Server
const (
	ServerTickRate = 10 // Registration and snapshot refreshes per second
	ServerTickTime = time.Second / ServerTickRate
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)

// Leaderboard
const (
	LeaderboardDisplaySize = 5
)
