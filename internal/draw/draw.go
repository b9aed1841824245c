// Package draw renders the play-field to an ANSI terminal using half-block
// characters, and provides helpers for text overlays.
package draw

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockLight     = '░'
	BlockMedium    = '▒'
	BlockDark      = '▓'
	BlockEmpty     = ' '
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// ANSI color and attribute sequences for text overlays.
const (
	ColorReset      = "\033[0m"
	ColorBold       = "\033[1m"
	ColorGreen      = "\033[32m"
	ColorYellow     = "\033[33m"
	ColorRed        = "\033[31m"
	ColorBrightCyan = "\033[96m"
	ColorHighlight  = "\033[1;30;42m" // Bold black on green
)

// Shades are shade characters from lightest to darkest.
var Shades = []rune{' ', '░', '▒', '▓', '█'}

// ShadeLevel returns a shade character for a value between 0.0 (empty) and 1.0 (solid).
func ShadeLevel(intensity float64) rune {
	if intensity <= 0 {
		return Shades[0]
	}
	if intensity >= 1 {
		return Shades[len(Shades)-1]
	}
	idx := int(intensity * float64(len(Shades)-1))
	return Shades[idx]
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
