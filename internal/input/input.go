// Package input turns raw terminal bytes into per-frame input state.
package input

import (
	"bufio"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
// Terminals report no key-up events, so held state is approximated from
// the auto-repeat cadence.
const keyHoldDuration = 80 * time.Millisecond

// Input represents the current frame's input state.
//
// Held flags (Up, Space, ...) stay true for keyHoldDuration after the last
// press. Event counts (Jumps, Clicks) only count bytes received this frame.
type Input struct {
	Quit      bool // Ctrl+C
	Up        bool
	Down      bool
	Left      bool
	Right     bool
	Space     bool
	Enter     bool
	Backspace bool
	Escape    bool
	Jumps     int // Keyboard ascend presses (Up, W, Space) this frame
	Clicks    int // Left mouse button presses this frame
	Pressed   []byte
	Closed    bool // Underlying reader reached EOF or failed
}

// Ascend reports whether the player asked to climb using the keyboard this frame.
func (in Input) Ascend() bool {
	return in.Jumps > 0
}

// Text returns the printable characters typed this frame.
func (in Input) Text() string {
	var out []byte
	for _, b := range in.Pressed {
		if b >= 0x20 && b < 0x7f {
			out = append(out, b)
		}
	}
	return string(out)
}

// keyState tracks the last time each key was pressed.
type keyState struct {
	up        time.Time
	down      time.Time
	left      time.Time
	right     time.Time
	space     time.Time
	enter     time.Time
	backspace time.Time
	escape    time.Time
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch     chan byte
	state  keyState
	closed bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch: make(chan byte, 128),
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// ResetKeyInput forgets held keys so a key pressed on one screen does not
// leak into the next one.
func ResetKeyInput(s *Stream) {
	if s == nil {
		return
	}
	s.state = keyState{}
}

// ReadInput drains all available bytes from the stream (non-blocking).
// Handles escape sequences for arrow keys and SGR mouse reports.
func ReadInput(s *Stream) Input {
	now := time.Now()
	var buf []byte

drain:
	for !s.closed {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	inp := parse(&s.state, buf, now)
	inp.Closed = s.closed
	return inp
}

// parse updates key state from buf and builds the frame's Input.
func parse(state *keyState, buf []byte, now time.Time) Input {
	var inp Input
	var text []byte

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' && i+1 < len(buf) && buf[i+1] == '[' {
			// SGR mouse report: ESC [ < btn ; col ; row (M|m)
			if i+2 < len(buf) && buf[i+2] == '<' {
				if n, btn, press := parseSGRMouse(buf[i+3:]); n > 0 {
					if press && btn == 0 {
						inp.Clicks++
					}
					i += 2 + n
					continue
				}
			}
			if i+2 < len(buf) {
				// CSI sequence: ESC [ <code>
				switch buf[i+2] {
				case 'A':
					state.up = now
					inp.Jumps++
					i += 2
					continue
				case 'B':
					state.down = now
					i += 2
					continue
				case 'C':
					state.right = now
					i += 2
					continue
				case 'D':
					state.left = now
					i += 2
					continue
				}
			}
			// Any other CSI sequence (Home, Delete, F-keys...) is skipped
			// through its final byte. An unterminated one drops the rest.
			i += 1 + csiLength(buf[i+2:])
			continue
		}

		switch b {
		case 0x03:
			inp.Quit = true
		case 'w', 'W':
			state.up = now
			inp.Jumps++
		case ' ':
			state.space = now
			inp.Jumps++
		case '\n', '\r':
			state.enter = now
		case '\b', 0x7f:
			state.backspace = now
		case '\x1b':
			state.escape = now
		}
		text = append(text, b)
	}

	inp.Up = now.Sub(state.up) < keyHoldDuration
	inp.Down = now.Sub(state.down) < keyHoldDuration
	inp.Left = now.Sub(state.left) < keyHoldDuration
	inp.Right = now.Sub(state.right) < keyHoldDuration
	inp.Space = now.Sub(state.space) < keyHoldDuration
	inp.Enter = now.Sub(state.enter) < keyHoldDuration
	inp.Backspace = now.Sub(state.backspace) < keyHoldDuration
	inp.Escape = now.Sub(state.escape) < keyHoldDuration
	inp.Pressed = text
	return inp
}

// csiLength returns how many bytes of b belong to a CSI sequence's
// parameters and final byte (0x40-0x7E).
func csiLength(b []byte) int {
	for i, c := range b {
		if c >= 0x40 && c <= 0x7e {
			return i + 1
		}
	}
	return len(b)
}

// parseSGRMouse parses "btn;col;row" followed by 'M' (press) or 'm'
// (release). Returns the number of bytes consumed, or 0 if incomplete.
func parseSGRMouse(b []byte) (n int, btn int, press bool) {
	field := 0
	val := 0
	for i, c := range b {
		switch {
		case c >= '0' && c <= '9':
			val = val*10 + int(c-'0')
		case c == ';':
			if field == 0 {
				btn = val
			}
			field++
			val = 0
		case c == 'M' || c == 'm':
			if field != 2 {
				return 0, 0, false
			}
			return i + 1, btn, c == 'M'
		default:
			return 0, 0, false
		}
	}
	return 0, 0, false
}
