package object

import (
	"github.com/tomz197/flappy/internal/draw"
	"github.com/tomz197/flappy/internal/physics"
)

// Player is the plane the user keeps airborne. X never changes during a
// session; only Y and the vertical velocity VY do.
type Player struct {
	X, Y          float64 // Top-left corner
	VY            float64 // Vertical velocity, positive is downward
	Width, Height float64

	// WingsUp selects the "flapping" sprite. Purely cosmetic.
	WingsUp bool
	// Hidden is set once the session has ended.
	Hidden bool
}

// NewPlayer creates a player at rest with its top-left corner at (x, y).
func NewPlayer(x, y, width, height float64) *Player {
	return &Player{
		X:      x,
		Y:      y,
		Width:  width,
		Height: height,
	}
}

// Box returns the player's collision rectangle.
func (p *Player) Box() physics.Rect {
	return physics.Rect{X: p.X, Y: p.Y, W: p.Width, H: p.Height}
}

// Center returns the midpoint of the player's box.
func (p *Player) Center() (float64, float64) {
	return p.X + p.Width/2, p.Y + p.Height/2
}

// Draw renders the plane as a filled polygon facing right.
func (p *Player) Draw(ctx DrawContext) error {
	if p.Hidden {
		return nil
	}

	w, h := p.Width, p.Height
	x, y := p.X, p.Y

	// Fuselage: tail fin on the left, pointed nose on the right.
	body := ctx.Canvas.BorrowPoints(6)
	body[0] = draw.Point{X: x, Y: y}
	body[1] = draw.Point{X: x + w*0.2, Y: y + h*0.35}
	body[2] = draw.Point{X: x + w*0.75, Y: y + h*0.35}
	body[3] = draw.Point{X: x + w, Y: y + h*0.55}
	body[4] = draw.Point{X: x + w*0.75, Y: y + h*0.75}
	body[5] = draw.Point{X: x, Y: y + h*0.75}
	ctx.Canvas.DrawPolygon(body, true)

	wing := ctx.Canvas.BorrowPoints(3)
	if p.WingsUp {
		wing[0] = draw.Point{X: x + w*0.35, Y: y + h*0.45}
		wing[1] = draw.Point{X: x + w*0.55, Y: y + h*0.45}
		wing[2] = draw.Point{X: x + w*0.3, Y: y}
	} else {
		wing[0] = draw.Point{X: x + w*0.35, Y: y + h*0.55}
		wing[1] = draw.Point{X: x + w*0.55, Y: y + h*0.55}
		wing[2] = draw.Point{X: x + w*0.3, Y: y + h}
	}
	ctx.Canvas.DrawPolygon(wing, true)

	return nil
}
