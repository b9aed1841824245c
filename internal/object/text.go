package object

import (
	"fmt"

	"github.com/tomz197/flappy/internal/draw"
)

// Text is a message overlaid on the play-field, centered on a logical
// position. It optionally blinks for Blink seconds before staying lit.
type Text struct {
	X, Y  float64 // Logical center
	Value string
	Color string // ANSI prefix, empty for default
	Blink float64
}

// Update counts down the blink timer.
func (t *Text) Update(ctx UpdateContext) (bool, error) {
	if t.Blink > 0 {
		t.Blink -= ctx.Delta.Seconds()
	}
	return false, nil
}

// Draw writes the text using ANSI cursor movement and marks the covered
// cells dirty so the canvas repaints them once the text goes away.
func (t *Text) Draw(ctx DrawContext) error {
	if t.Value == "" || !ShouldRenderBlink(t.Blink, 4.0) {
		return nil
	}
	col, row := ctx.Canvas.LogicalToTerminal(t.X, t.Y)
	width := draw.TextWidth(t.Value)
	col -= width / 2
	if col < 1 {
		col = 1
	}
	if row < 1 {
		row = 1
	}
	ctx.Canvas.MarkTextDirty(col, row, width)

	value := t.Value
	if t.Color != "" {
		value = t.Color + value + draw.ColorReset
	}
	_, err := fmt.Fprintf(ctx.Writer, "\033[%d;%dH%s",
		row+ctx.Canvas.OffsetRow(), col+ctx.Canvas.OffsetCol(), value)
	return err
}
