package client

import (
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/tomz197/flappy/internal/input"
	"github.com/tomz197/flappy/internal/loop/server"
)

// Screen is the page a client is looking at.
type Screen int

const (
	ScreenLogin       Screen = iota // Name entry
	ScreenMenu                      // Play / leaderboard / logout
	ScreenGame                      // Running or just-ended session
	ScreenLeaderboard               // Top scores
	ScreenShutdown                  // Server is shutting down
)

func (s Screen) String() string {
	switch s {
	case ScreenLogin:
		return "login"
	case ScreenMenu:
		return "menu"
	case ScreenGame:
		return "game"
	case ScreenLeaderboard:
		return "leaderboard"
	case ScreenShutdown:
		return "shutdown"
	}
	return "unknown"
}

// ClientState holds per-connection UI state. The game itself lives in the
// client's engine.
type ClientState struct {
	Input         input.Input
	Screen        Screen
	LoginField    []rune // Text typed into the login field
	LoginError    string // Validation message shown under the field
	pending       []byte // Leading bytes of a character not yet complete
	Board         *server.Snapshot
	Running       bool          // Client loop running
	delta         time.Duration // Frame delta time
	shutdownTimer float64       // Countdown before auto-disconnect on shutdown
	isInactive    bool          // Whether the client is in inactive warning state

	// Previous frame's values, to detect transitions needing a full clear.
	prevScreen  Screen
	wasInactive bool
	boardDirty  bool // Leaderboard changed while it was on screen
}

// NewClientState creates a client state on the login screen with the field
// pre-filled.
func NewClientState(prefill string) *ClientState {
	return &ClientState{
		Screen:     ScreenLogin,
		prevScreen: ScreenLogin,
		LoginField: []rune(prefill),
		Running:    true,
	}
}

// maxFieldLength caps how much can be typed into the login field. It is
// longer than a valid name so the length error can be shown.
const maxFieldLength = 24

// editField applies this frame's typing to the login field, in the order
// the keys arrived. A multi-byte character split across frames is held
// until its remaining bytes arrive.
func (s *ClientState) editField(in input.Input) {
	buf := append(s.pending, in.Pressed...)
	s.pending = nil

	for len(buf) > 0 {
		b := buf[0]
		if b == '\b' || b == 0x7f {
			if len(s.LoginField) > 0 {
				s.LoginField = s.LoginField[:len(s.LoginField)-1]
			}
			s.LoginError = ""
			buf = buf[1:]
			continue
		}
		if b >= utf8.RuneSelf && !utf8.FullRune(buf) {
			s.pending = append([]byte(nil), buf...)
			return
		}

		r, size := utf8.DecodeRune(buf)
		buf = buf[size:]
		if r == utf8.RuneError || !unicode.IsPrint(r) {
			continue
		}
		if len(s.LoginField) < maxFieldLength {
			s.LoginField = append(s.LoginField, r)
		}
		s.LoginError = ""
	}
}

// pressed reports whether any of keys arrived this frame. Unlike the held
// flags it fires once per key press.
func pressed(in input.Input, keys ...byte) bool {
	for _, b := range in.Pressed {
		for _, k := range keys {
			if b == k {
				return true
			}
		}
	}
	return false
}
