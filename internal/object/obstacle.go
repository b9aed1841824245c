package object

import (
	"github.com/tomz197/flappy/internal/physics"
)

// Role distinguishes the two halves of an obstacle pair.
type Role int

const (
	TopBarrier Role = iota
	BottomBarrier
)

func (r Role) String() string {
	if r == TopBarrier {
		return "top"
	}
	return "bottom"
}

// Obstacle is one barrier of a pair scrolling from right to left.
// Only bottom barriers are created score-eligible, so each pair is worth
// exactly one point.
type Obstacle struct {
	ID            int
	Role          Role
	X, Y          float64 // Top-left corner
	Width, Height float64
	ScoreEligible bool
}

// Box returns the obstacle's collision rectangle.
func (o *Obstacle) Box() physics.Rect {
	return physics.Rect{X: o.X, Y: o.Y, W: o.Width, H: o.Height}
}

// Right returns the x coordinate of the obstacle's right edge.
func (o *Obstacle) Right() float64 {
	return o.X + o.Width
}

// Offscreen reports whether the obstacle has fully left the play-field.
func (o *Obstacle) Offscreen() bool {
	return o.Right() <= 0
}

// Draw renders the barrier as a solid block.
func (o *Obstacle) Draw(ctx DrawContext) error {
	ctx.Canvas.FillRect(o.X, o.Y, o.Width, o.Height)
	return nil
}
