package draw

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// TextWidth returns the number of terminal columns s occupies.
// Wide runes such as emoji count as two columns.
func TextWidth(s string) int {
	return runewidth.StringWidth(s)
}

// WriteCentered writes s so that it is horizontally centered on centerX.
// Returns the starting column used.
func WriteCentered(cw *ChunkWriter, centerX, row int, s string) int {
	col := centerX - TextWidth(s)/2
	if col < 1 {
		col = 1
	}
	cw.WriteAt(col, row, s)
	return col
}

// DrawFrame draws a single-line box with its top-left corner at (col, row).
// width and height include the border. The interior is blanked.
func DrawFrame(cw *ChunkWriter, col, row, width, height int) {
	if width < 2 || height < 2 {
		return
	}
	inner := width - 2
	cw.WriteAt(col, row, "┌"+strings.Repeat("─", inner)+"┐")
	blank := "│" + strings.Repeat(" ", inner) + "│"
	for r := 1; r < height-1; r++ {
		cw.WriteAt(col, row+r, blank)
	}
	cw.WriteAt(col, row+height-1, "└"+strings.Repeat("─", inner)+"┘")
}

// PadRight pads s with spaces to exactly width columns, truncating if needed.
func PadRight(s string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(s, width, ""), width)
}
