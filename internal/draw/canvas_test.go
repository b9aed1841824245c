package draw

import (
	"bytes"
	"strings"
	"testing"
)

func TestFillRectScalesToPixels(t *testing.T) {
	// 10 columns, 5 rows -> 10x10 sub-pixels covering a 100x100 logical field.
	c := NewScaledCanvas(10, 5, 100, 100)

	c.FillRect(20, 30, 20, 40)

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			want := x >= 2 && x < 4 && y >= 3 && y < 7
			if got := c.Pixel(x, y); got != want {
				t.Errorf("Pixel(%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestFillRectClipsOutsideCanvas(t *testing.T) {
	c := NewScaledCanvas(10, 5, 100, 100)

	// Must not panic when partially or fully off-canvas.
	c.FillRect(-50, -50, 60, 60)
	c.FillRect(95, 95, 100, 100)
	c.FillRect(200, 200, 10, 10)

	if !c.Pixel(0, 0) {
		t.Error("Pixel(0,0) should be set by the clipped rectangle")
	}
	if !c.Pixel(9, 9) {
		t.Error("Pixel(9,9) should be set by the clipped rectangle")
	}
}

func TestRenderOnlyEmitsChangedCells(t *testing.T) {
	c := NewScaledCanvas(4, 2, 4, 4)

	var first bytes.Buffer
	c.Render(&first)
	// The first frame paints every cell, blanks included.
	if got := strings.Count(first.String(), " "); got != 8 {
		t.Fatalf("first render wrote %d blank cells, want 8", got)
	}

	var second bytes.Buffer
	c.Render(&second)
	if second.Len() != 0 {
		t.Fatalf("unchanged render wrote %q, want nothing", second.String())
	}

	c.FillRect(0, 0, 1, 2)
	var third bytes.Buffer
	c.Render(&third)
	if !strings.Contains(third.String(), string(BlockFull)) {
		t.Errorf("render after fill = %q, want a full block", third.String())
	}
	if strings.Count(third.String(), "\033[") != 1 {
		t.Errorf("render after fill = %q, want exactly one cursor move", third.String())
	}
}

func TestMarkTextDirtyForcesRewrite(t *testing.T) {
	c := NewScaledCanvas(4, 2, 4, 4)
	c.Render(&bytes.Buffer{})

	c.MarkTextDirty(2, 1, 2)

	var out bytes.Buffer
	c.Render(&out)
	if got := strings.Count(out.String(), " "); got != 2 {
		t.Errorf("dirty render wrote %d cells, want 2 (%q)", got, out.String())
	}
}

func TestForceRedraw(t *testing.T) {
	c := NewScaledCanvas(3, 1, 3, 2)
	c.Render(&bytes.Buffer{})
	c.ForceRedraw()

	var out bytes.Buffer
	c.Render(&out)
	if got := strings.Count(out.String(), " "); got != 3 {
		t.Errorf("forced render wrote %d cells, want 3", got)
	}
}

func TestLogicalToTerminal(t *testing.T) {
	c := NewScaledCanvas(100, 50, 1000, 1000)

	col, row := c.LogicalToTerminal(500, 500)
	if col != 51 || row != 26 {
		t.Errorf("LogicalToTerminal(500,500) = (%d,%d), want (51,26)", col, row)
	}
}
