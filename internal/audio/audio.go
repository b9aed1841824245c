// Package audio provides the short sound cues played on scoring and on
// game over. Cues start muted and are unmuted when a session starts.
package audio

import (
	"io"
	"sync"
)

// Cue is a short sound that can be triggered repeatedly. Retriggering a
// cue that is still playing restarts it from the beginning.
type Cue interface {
	Play()
	SetMuted(muted bool)
	SetVolume(volume float64)
}

// Set holds the cues the game uses.
type Set struct {
	Point Cue
	Die   Cue
}

// Nop returns a Set whose cues make no sound.
func Nop() Set {
	return Set{Point: NopCue{}, Die: NopCue{}}
}

// SetMuted mutes or unmutes every cue in the set.
func (s Set) SetMuted(muted bool) {
	for _, c := range s.cues() {
		c.SetMuted(muted)
	}
}

// SetVolume applies volume to every cue in the set.
func (s Set) SetVolume(volume float64) {
	for _, c := range s.cues() {
		c.SetVolume(volume)
	}
}

func (s Set) cues() []Cue {
	var out []Cue
	if s.Point != nil {
		out = append(out, s.Point)
	}
	if s.Die != nil {
		out = append(out, s.Die)
	}
	return out
}

// NopCue is a silent Cue.
type NopCue struct{}

func (NopCue) Play()             {}
func (NopCue) SetMuted(bool)     {}
func (NopCue) SetVolume(float64) {}

// BellCue rings the terminal bell. It is the only sound an SSH session can
// make on the player's side.
type BellCue struct {
	mu    sync.Mutex
	w     io.Writer
	muted bool
}

// NewBellCue creates a muted bell cue writing to w.
func NewBellCue(w io.Writer) *BellCue {
	return &BellCue{w: w, muted: true}
}

// BellSet returns a Set where only the die cue rings. Ringing on every
// point would drown the terminal in bells.
func BellSet(w io.Writer) Set {
	return Set{Point: NopCue{}, Die: NewBellCue(w)}
}

// Play writes a BEL byte unless muted.
func (b *BellCue) Play() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.muted || b.w == nil {
		return
	}
	io.WriteString(b.w, "\a")
}

// SetMuted mutes or unmutes the bell.
func (b *BellCue) SetMuted(muted bool) {
	b.mu.Lock()
	b.muted = muted
	b.mu.Unlock()
}

// SetVolume mutes the bell at zero volume. A terminal bell has no volume.
func (b *BellCue) SetVolume(volume float64) {
	if volume <= 0 {
		b.SetMuted(true)
	}
}
