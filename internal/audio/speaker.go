package audio

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate    = beep.SampleRate(44100)
	defaultVolume = 0.3
)

// Speaker owns the local audio device and the mixer all cues play into.
type Speaker struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

// NewSpeaker creates a speaker. Call Init before cues can be heard.
func NewSpeaker() *Speaker {
	return &Speaker{
		mixer: &beep.Mixer{},
	}
}

// Init opens the audio device.
func (s *Speaker) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(s.mixer)
	s.initialized = true
	return nil
}

// Close silences everything that is still playing.
func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	s.initialized = false
}

// Cues returns the point and die cues backed by this speaker.
func (s *Speaker) Cues() Set {
	return Set{
		Point: NewSpeakerCue(s, PointSound),
		Die:   NewSpeakerCue(s, DieSound),
	}
}

func (s *Speaker) add(st beep.Streamer) {
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

// SpeakerCue plays a synthesized sound through a Speaker.
type SpeakerCue struct {
	mu     sync.Mutex
	sp     *Speaker
	sound  func(beep.SampleRate) (beep.Streamer, error)
	ctrl   *beep.Ctrl
	muted  bool
	volume float64
}

// NewSpeakerCue creates a muted cue that builds its streamer with sound.
func NewSpeakerCue(sp *Speaker, sound func(beep.SampleRate) (beep.Streamer, error)) *SpeakerCue {
	return &SpeakerCue{
		sp:     sp,
		sound:  sound,
		muted:  true,
		volume: defaultVolume,
	}
}

// Play starts the sound from the beginning, cutting off a previous run.
func (c *SpeakerCue) Play() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.muted {
		return
	}
	st, err := c.sound(sampleRate)
	if err != nil {
		return
	}

	speaker.Lock()
	if c.ctrl != nil {
		c.ctrl.Streamer = nil
	}
	speaker.Unlock()

	c.ctrl = &beep.Ctrl{Streamer: newVolume(st, c.volume)}
	c.sp.add(c.ctrl)
}

// SetMuted mutes or unmutes the cue. Muting stops a running sound.
func (c *SpeakerCue) SetMuted(muted bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.muted = muted
	if muted && c.ctrl != nil {
		speaker.Lock()
		c.ctrl.Streamer = nil
		speaker.Unlock()
		c.ctrl = nil
	}
}

// SetVolume sets the linear volume in [0, 1] used from the next Play.
func (c *SpeakerCue) SetVolume(volume float64) {
	c.mu.Lock()
	c.volume = min(max(volume, 0), 1)
	c.mu.Unlock()
}

// PointSound is a rising two-note chime.
func PointSound(sr beep.SampleRate) (beep.Streamer, error) {
	return notes(sr, 60*time.Millisecond, 880, 1320)
}

// DieSound is a falling three-note tone.
func DieSound(sr beep.SampleRate) (beep.Streamer, error) {
	return notes(sr, 90*time.Millisecond, 440, 330, 220)
}

// notes plays each frequency for d, one after another.
func notes(sr beep.SampleRate, d time.Duration, freqs ...float64) (beep.Streamer, error) {
	parts := make([]beep.Streamer, 0, len(freqs))
	for _, f := range freqs {
		tone, err := generators.SineTone(sr, f)
		if err != nil {
			return nil, fmt.Errorf("tone %.0fHz: %w", f, err)
		}
		parts = append(parts, beep.Take(sr.N(d), tone))
	}
	return beep.Seq(parts...), nil
}

// newVolume wraps s with a linear volume. Log2(0) is -Inf, so zero is
// expressed as silence.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
