package draw

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// Escape sequences for the game screen.
const (
	seqClear      = "\033[H\033[2J"
	seqHideCursor = "\033[?25l"
	seqShowCursor = "\033[?25h"
	// Button-press reporting in SGR encoding; clicks arrive as touch input.
	seqMouseOn  = "\033[?1000h\033[?1006h"
	seqMouseOff = "\033[?1006l\033[?1000l"
	seqResetSGR = "\033[0m"
)

// ChunkWriter collects one frame of UI text and sends it in chunks no larger
// than maxChunkSize, so a frame over SSH leaves in a few packets. Positions
// passed to MoveCursor and WriteAt are canvas cells; the centering offset is
// added here.
type ChunkWriter struct {
	buf    strings.Builder
	bufw   *bufio.Writer
	numBuf [20]byte
	offCol int
	offRow int
}

// NewChunkWriter creates a ChunkWriter that writes to w.
func NewChunkWriter(w io.Writer, offsetCol, offsetRow int) *ChunkWriter {
	return &ChunkWriter{
		bufw:   bufio.NewWriterSize(w, 8192),
		offCol: offsetCol,
		offRow: offsetRow,
	}
}

// SetOffset updates the centering offset after a resize.
func (cw *ChunkWriter) SetOffset(offsetCol, offsetRow int) {
	cw.offCol = offsetCol
	cw.offRow = offsetRow
}

// MoveCursor queues a cursor move to the 1-based cell (col, row).
func (cw *ChunkWriter) MoveCursor(col, row int) {
	cw.buf.WriteString("\033[")
	cw.buf.Write(strconv.AppendInt(cw.numBuf[:0], int64(row+cw.offRow), 10))
	cw.buf.WriteByte(';')
	cw.buf.Write(strconv.AppendInt(cw.numBuf[:0], int64(col+cw.offCol), 10))
	cw.buf.WriteByte('H')
}

// Write queues p. It lets Canvas.Render draw into the same frame.
func (cw *ChunkWriter) Write(p []byte) (n int, err error) {
	return cw.buf.Write(p)
}

// WriteAt queues s at the 1-based cell (col, row).
func (cw *ChunkWriter) WriteAt(col, row int, s string) {
	cw.MoveCursor(col, row)
	cw.buf.WriteString(s)
}

// Clear queues a full terminal clear ahead of whatever follows in the frame.
func (cw *ChunkWriter) Clear() {
	cw.buf.WriteString(seqClear)
}

var _ io.Writer = (*ChunkWriter)(nil)

// Flush sends the queued frame and empties the buffer.
func (cw *ChunkWriter) Flush() error {
	data := cw.buf.String()
	cw.buf.Reset()
	for len(data) > 0 {
		n := min(len(data), maxChunkSize)
		if _, err := cw.bufw.WriteString(data[:n]); err != nil {
			return err
		}
		data = data[n:]
	}
	return cw.bufw.Flush()
}

// TermSizeFunc reports the terminal size in cells.
type TermSizeFunc func() (width, height int, err error)

// StdoutSize reads the size of the local terminal.
func StdoutSize() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// ClearScreen clears the terminal and homes the cursor.
func ClearScreen(w io.Writer) {
	io.WriteString(w, seqClear)
}

// EnterGameScreen prepares a terminal for play: cleared, cursor hidden and
// mouse clicks reported.
func EnterGameScreen(w io.Writer) {
	io.WriteString(w, seqClear+seqHideCursor+seqMouseOn)
}

// LeaveGameScreen undoes EnterGameScreen and leaves a clean prompt behind.
func LeaveGameScreen(w io.Writer) {
	io.WriteString(w, seqMouseOff+seqResetSGR+seqClear+seqShowCursor)
}
