package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tuning holds the per-tick game constants. Physics is tied to the tick
// rate, so every value is expressed in field units per tick.
type Tuning struct {
	Physics   PhysicsTuning  `yaml:"physics"`
	Scroll    ScrollTuning   `yaml:"scroll"`
	Obstacles ObstacleTuning `yaml:"obstacles"`
	Player    PlayerTuning   `yaml:"player"`
}

// PhysicsTuning defines gravity and the ascend impulses.
type PhysicsTuning struct {
	Gravity         float64 `yaml:"gravity"`
	KeyboardImpulse float64 `yaml:"keyboard_impulse"` // Magnitude, applied upwards
	TouchImpulse    float64 `yaml:"touch_impulse"`    // Magnitude, applied upwards
}

// ScrollTuning defines horizontal scroll speed and its escalation.
type ScrollTuning struct {
	BaseSpeed float64 `yaml:"base_speed"`
	SpeedStep float64 `yaml:"speed_step"`
	MaxSpeed  float64 `yaml:"max_speed"`
	StepEvery int     `yaml:"step_every"` // Points between speed steps
}

// ObstacleTuning defines spawn cadence and barrier geometry.
type ObstacleTuning struct {
	SpawnThreshold int     `yaml:"spawn_threshold"` // Ticks between pairs
	Width          float64 `yaml:"width"`
	Gap            float64 `yaml:"gap"`            // Half the opening, each side of the offset
	OffsetMinPct   int     `yaml:"offset_min_pct"` // Inclusive
	OffsetMaxPct   int     `yaml:"offset_max_pct"` // Exclusive
}

// PlayerTuning defines the player body.
type PlayerTuning struct {
	X         float64 `yaml:"x"`
	StartYPct float64 `yaml:"start_y_pct"`
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
}

// DefaultTuning returns the stock game feel.
func DefaultTuning() Tuning {
	return Tuning{
		Physics: PhysicsTuning{
			Gravity:         0.6,
			KeyboardImpulse: 13.6,
			TouchImpulse:    7.6,
		},
		Scroll: ScrollTuning{
			BaseSpeed: 3,
			SpeedStep: 0.5,
			MaxSpeed:  8,
			StepEvery: 5,
		},
		Obstacles: ObstacleTuning{
			SpawnThreshold: 115,
			Width:          80,
			Gap:            135,
			OffsetMinPct:   35,
			OffsetMaxPct:   85,
		},
		Player: PlayerTuning{
			X:         300,
			StartYPct: 40,
			Width:     60,
			Height:    40,
		},
	}
}

// LoadTuning reads a YAML tuning file on top of DefaultTuning.
// Fields missing from the file keep their default values.
// An empty path returns the defaults.
func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()
	if path == "" {
		return t, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("read tuning: %w", err)
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return DefaultTuning(), fmt.Errorf("parse tuning %s: %w", path, err)
	}
	if err := t.Validate(); err != nil {
		return DefaultTuning(), fmt.Errorf("invalid tuning %s: %w", path, err)
	}
	return t, nil
}

// Validate rejects values the game loop cannot run with.
func (t Tuning) Validate() error {
	var errs []error
	if t.Physics.Gravity <= 0 {
		errs = append(errs, errors.New("physics.gravity must be positive"))
	}
	if t.Physics.KeyboardImpulse <= 0 || t.Physics.TouchImpulse <= 0 {
		errs = append(errs, errors.New("physics impulses must be positive"))
	}
	if t.Scroll.BaseSpeed <= 0 {
		errs = append(errs, errors.New("scroll.base_speed must be positive"))
	}
	if t.Scroll.SpeedStep < 0 {
		errs = append(errs, errors.New("scroll.speed_step must not be negative"))
	}
	if t.Scroll.MaxSpeed < t.Scroll.BaseSpeed {
		errs = append(errs, errors.New("scroll.max_speed must be >= base_speed"))
	}
	if t.Scroll.StepEvery <= 0 {
		errs = append(errs, errors.New("scroll.step_every must be positive"))
	}
	// Obstacles must not tunnel through the player within a single tick.
	if t.Scroll.MaxSpeed > t.Player.Width || t.Scroll.MaxSpeed > t.Obstacles.Width {
		errs = append(errs, errors.New("scroll.max_speed must not exceed player or obstacle width"))
	}
	if t.Obstacles.SpawnThreshold < 0 {
		errs = append(errs, errors.New("obstacles.spawn_threshold must not be negative"))
	}
	if t.Obstacles.Width <= 0 || t.Obstacles.Gap <= 0 {
		errs = append(errs, errors.New("obstacles.width and obstacles.gap must be positive"))
	}
	if t.Obstacles.OffsetMinPct < 0 || t.Obstacles.OffsetMaxPct > 100 ||
		t.Obstacles.OffsetMaxPct < t.Obstacles.OffsetMinPct {
		errs = append(errs, errors.New("obstacles offset range must satisfy 0 <= min <= max <= 100"))
	}
	if t.Player.Width <= 0 || t.Player.Height <= 0 {
		errs = append(errs, errors.New("player size must be positive"))
	}
	if t.Player.StartYPct <= 0 || t.Player.StartYPct >= 100 {
		errs = append(errs, errors.New("player.start_y_pct must be within (0, 100)"))
	}
	return errors.Join(errs...)
}
