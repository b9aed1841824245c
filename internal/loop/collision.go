package loop

import (
	"github.com/tomz197/flappy/internal/object"
)

// moveObstacles scrolls every obstacle left by the scroll speed. Before an
// obstacle moves it is checked against the player: an overlap ends the
// session, and a bottom barrier whose right edge just crossed the player's
// left edge scores a point.
func (e *Engine) moveObstacles() {
	if e.session.State != StatePlay {
		return
	}

	player := e.session.Player.Box()
	obstacles := e.session.Obstacles

	// Compact in place so removal never skips or revisits an element.
	kept := obstacles[:0]
	for i, o := range obstacles {
		if e.session.State != StatePlay {
			// The session ended earlier in this sweep; leave the rest as is.
			kept = append(kept, obstacles[i:]...)
			break
		}

		if o.Offscreen() {
			continue
		}

		box := o.Box()
		if box.Overlaps(player) {
			e.endGame(EndCollision)
			kept = append(kept, o)
			continue
		}

		if o.Role == object.BottomBarrier && o.ScoreEligible &&
			box.CrossedLeftEdge(player.Left(), e.session.ScrollSpeed) {
			o.ScoreEligible = false
			e.addPoint()
		}

		o.X -= e.session.ScrollSpeed
		kept = append(kept, o)
	}

	// Clear the tail so removed obstacles can be collected.
	for i := len(kept); i < len(obstacles); i++ {
		obstacles[i] = nil
	}
	e.session.Obstacles = kept
}

// addPoint increments the score and escalates the scroll speed every
// StepEvery points, up to MaxSpeed.
func (e *Engine) addPoint() {
	s := &e.session
	s.Score++

	scroll := e.tuning.Scroll
	if s.Score%scroll.StepEvery == 0 && s.ScrollSpeed < scroll.MaxSpeed {
		s.ScrollSpeed = min(s.ScrollSpeed+scroll.SpeedStep, scroll.MaxSpeed)
	}

	e.cues.Point.Play()
}
