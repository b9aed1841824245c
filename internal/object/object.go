package object

import (
	"io"
	"time"

	"github.com/tomz197/flappy/internal/draw"
	"github.com/tomz197/flappy/internal/physics"
)

// Spawner allows objects to spawn new objects during update.
type Spawner interface {
	Spawn(obj Object)
}

// UpdateContext provides all the information an object needs during update.
type UpdateContext struct {
	Delta   time.Duration
	Screen  Screen
	Spawner Spawner
}

// DrawContext provides drawing resources for objects.
type DrawContext struct {
	Canvas *draw.Canvas // High-resolution canvas in play-field coordinates
	Writer io.Writer    // Direct terminal output (for text overlays)
}

// Screen is the logical play-field. Everything in the game is positioned
// in these units; the canvas scales them to the terminal.
type Screen struct {
	Width  float64
	Height float64
}

// Bounds returns the play-field rectangle anchored at the origin.
func (s Screen) Bounds() physics.Rect {
	return physics.Rect{W: s.Width, H: s.Height}
}

// Drawable is anything that can paint itself onto the canvas.
type Drawable interface {
	Draw(ctx DrawContext) error
}

// Object is a drawable and updatable game entity.
type Object interface {
	Drawable

	// Update updates the object state. Returns true if the object should be removed.
	Update(ctx UpdateContext) (remove bool, err error)
}

// Releasable is implemented by pooled objects that can be returned to a pool.
type Releasable interface {
	// Release returns the object to its pool for reuse.
	Release()
}

// ReleaseObject releases an object back to its pool if it implements Releasable.
func ReleaseObject(obj Object) {
	if r, ok := obj.(Releasable); ok {
		r.Release()
	}
}

// ShouldRenderBlink returns true if an object with remaining blink time
// should be rendered this frame.
// Returns true always if remainingTime <= 0.
func ShouldRenderBlink(remainingTime float64, frequency float64) bool {
	if remainingTime <= 0 {
		return true
	}
	// Blink based on frequency (e.g., 5.0 = 5Hz, 10.0 = 10Hz)
	phase := int(remainingTime * frequency)
	return phase%2 != 0
}
