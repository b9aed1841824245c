package object

import (
	"math/rand"

	"github.com/tomz197/flappy/internal/loop/config"
)

// ObstacleSpawner emits a top/bottom barrier pair once its tick counter
// exceeds SpawnThreshold. The opening between the two barriers is centered
// on a random offset and spans Gap on each side of it.
type ObstacleSpawner struct {
	tuning  config.ObstacleTuning
	rng     *rand.Rand
	counter int
	nextID  int
}

// NewObstacleSpawner creates a spawner. A nil rng uses a randomly seeded source.
func NewObstacleSpawner(tuning config.ObstacleTuning, rng *rand.Rand) *ObstacleSpawner {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &ObstacleSpawner{
		tuning: tuning,
		rng:    rng,
	}
}

// Reset zeroes the tick counter, e.g. at the start of a session.
func (s *ObstacleSpawner) Reset() {
	s.counter = 0
}

// Counter returns the number of ticks since the last spawn.
func (s *ObstacleSpawner) Counter() int {
	return s.counter
}

// Tick advances the counter by one and returns a new pair when the
// threshold has been exceeded, or nil otherwise.
func (s *ObstacleSpawner) Tick(field Screen) []*Obstacle {
	var spawned []*Obstacle
	if s.counter > s.tuning.SpawnThreshold {
		s.counter = 0
		top, bottom := s.SpawnPair(field)
		spawned = []*Obstacle{top, bottom}
	}
	s.counter++
	return spawned
}

// SpawnPair creates one pair at the right edge of the field.
func (s *ObstacleSpawner) SpawnPair(field Screen) (top, bottom *Obstacle) {
	offset := s.offset(field)
	gap := s.tuning.Gap

	topHeight := max(offset-gap, 0)
	bottomY := min(offset+gap, field.Height)

	s.nextID++
	top = &Obstacle{
		ID:     s.nextID,
		Role:   TopBarrier,
		X:      field.Width,
		Y:      0,
		Width:  s.tuning.Width,
		Height: topHeight,
	}
	s.nextID++
	bottom = &Obstacle{
		ID:            s.nextID,
		Role:          BottomBarrier,
		X:             field.Width,
		Y:             bottomY,
		Width:         s.tuning.Width,
		Height:        field.Height - bottomY,
		ScoreEligible: true,
	}
	return top, bottom
}

// offset picks the opening center as a whole percentage of the field height.
func (s *ObstacleSpawner) offset(field Screen) float64 {
	pct := s.tuning.OffsetMinPct
	if span := s.tuning.OffsetMaxPct - s.tuning.OffsetMinPct; span > 0 {
		pct += s.rng.Intn(span)
	}
	return field.Height * float64(pct) / 100
}
