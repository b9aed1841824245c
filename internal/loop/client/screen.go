package client

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomz197/flappy/internal/draw"
	"github.com/tomz197/flappy/internal/loop/config"
	"github.com/tomz197/flappy/internal/object"
	"github.com/tomz197/flappy/internal/score"
)

// titleArt is the game title (figlet "small" font).
var titleArt = []string{
	`  ___ _      _   ___ ___ __   __`,
	` | __| |    /_\ | _ \ _ \\ \ / /`,
	` | _|| |__ / _ \|  _/  _/ \ V / `,
	` |_| |____/_/ \_\_| |_|    |_|  `,
}

// medals mark the first three leaderboard ranks.
var medals = []string{"🥇", "🥈", "🥉"}

const emptyBoardMessage = "No scores yet! Play a game to get on the board!"

// speedMeterWidth is the number of cells in the HUD speed meter.
const speedMeterWidth = 10

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	// On screen or inactivity transitions, do a full terminal clear
	// so UI elements from the previous screen don't persist.
	screenChanged := c.state.Screen != c.state.prevScreen
	inactiveChanged := c.state.isInactive != c.state.wasInactive
	if screenChanged || inactiveChanged || c.state.boardDirty {
		c.chunkWriter.Clear()
		c.canvas.ForceRedraw()
		c.state.prevScreen = c.state.Screen
		c.state.wasInactive = c.state.isInactive
		c.state.boardDirty = false
	}

	c.canvas.Clear()

	ctx := object.DrawContext{
		Canvas: c.canvas,
		Writer: c.chunkWriter,
	}

	playing := c.state.Screen == ScreenGame && !c.state.isInactive
	if playing {
		if err := c.engine.Draw(ctx); err != nil {
			return err
		}
	}

	// Render canvas to terminal
	c.canvas.Render(c.chunkWriter)

	// Draw border when terminal exceeds max render resolution
	c.canvas.RenderBorder(c.chunkWriter)

	if playing {
		if err := c.engine.DrawOverlay(ctx); err != nil {
			return err
		}
	}

	// Draw UI overlay
	c.drawUI()

	return c.chunkWriter.Flush()
}

// drawUI draws the text of the current screen.
func (c *Client) drawUI() {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	if c.state.Screen == ScreenShutdown {
		c.drawShutdownScreen(centerX, centerY)
		return
	}

	if c.state.isInactive {
		c.drawInactivityScreen(centerX, centerY)
		return
	}

	switch c.state.Screen {
	case ScreenLogin:
		c.drawLoginScreen(centerX, centerY)
	case ScreenMenu:
		c.drawMenuScreen(centerX, centerY)
	case ScreenGame:
		c.drawPlayingHUD(termWidth, termHeight)
	case ScreenLeaderboard:
		c.drawLeaderboardScreen(centerX, centerY)
	}
}

// drawTitle draws the title art with its top row at startY.
// Returns the row just below it.
func (c *Client) drawTitle(centerX, startY int) int {
	titleWidth := 0
	for _, line := range titleArt {
		titleWidth = max(titleWidth, len(line))
	}
	for i, line := range titleArt {
		c.chunkWriter.WriteAt(centerX-titleWidth/2, startY+i, line)
	}
	return startY + len(titleArt)
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerX, centerY int) {
	cw := c.chunkWriter
	draw.WriteCentered(cw, centerX, centerY-2, "INACTIVITY WARNING")

	msg := fmt.Sprintf(
		"You have been inactive for too long. You will be disconnected in %d seconds.",
		int(config.InactivityDisconnectUser-time.Since(c.lastInput).Seconds()),
	)
	draw.WriteCentered(cw, centerX, centerY, msg)
	draw.WriteCentered(cw, centerX, centerY+2, "Press any key to continue")
}

// drawLoginScreen draws the name prompt.
func (c *Client) drawLoginScreen(centerX, centerY int) {
	cw := c.chunkWriter
	y := c.drawTitle(centerX, centerY-8)

	draw.WriteCentered(cw, centerX, y+2, "Enter your name")

	// Boxed field, wide enough for the longest accepted input
	boxWidth := maxFieldLength + 4
	boxCol := centerX - boxWidth/2
	draw.DrawFrame(cw, boxCol, y+3, boxWidth, 3)
	field := string(c.state.LoginField)
	if time.Now().UnixMilli()/500%2 == 0 {
		field += "_"
	}
	cw.WriteAt(boxCol+2, y+4, draw.PadRight(field, maxFieldLength))

	// Fixed width so a shorter message fully replaces a longer one
	msgWidth := 48
	msg := draw.PadRight(c.state.LoginError, msgWidth)
	if c.state.LoginError != "" {
		msg = draw.ColorRed + msg + draw.ColorReset
	}
	cw.WriteAt(centerX-msgWidth/2, y+7, msg)

	draw.WriteCentered(cw, centerX, y+9, "ENTER to continue  .  Ctrl+C to quit")
}

// drawMenuScreen draws the main menu.
func (c *Client) drawMenuScreen(centerX, centerY int) {
	cw := c.chunkWriter
	y := c.drawTitle(centerX, centerY-9)

	draw.WriteCentered(cw, centerX, y+1, "~ Dodge the barriers, one gap at a time ~")
	draw.WriteCentered(cw, centerX, y+3, fmt.Sprintf("Logged in as %s", c.gate.Current()))

	controlsY := y + 5
	draw.WriteCentered(cw, centerX, controlsY, "Controls")
	controlLines := []string{
		"W / Up / SPACE  . . . Flap",
		"Mouse click  . . Small flap",
		"L  . . . . . . Leaderboard",
		"O  . . . . . . . . Log out",
		"Q  . . . . . . . . . .Quit",
	}
	for i, line := range controlLines {
		draw.WriteCentered(cw, centerX, controlsY+1+i, line)
	}

	// Blinking start prompt
	promptY := controlsY + len(controlLines) + 2
	if time.Now().UnixMilli()/600%2 == 0 {
		draw.WriteCentered(cw, centerX, promptY, ">>  Press SPACE to Start  <<")
	} else {
		draw.WriteCentered(cw, centerX, promptY, strings.Repeat(" ", 28))
	}

	if c.state.Board != nil {
		entries := c.state.Board.TopScores
		if rank := score.Rank(entries, c.gate.Current()); rank > 0 {
			best := fmt.Sprintf("Your last recorded score: %d (#%d)", entries[rank-1].Score, rank)
			draw.WriteCentered(cw, centerX, promptY+2, best)
		}
	}
}

// drawLeaderboardScreen draws the top scores.
func (c *Client) drawLeaderboardScreen(centerX, centerY int) {
	cw := c.chunkWriter
	var entries []score.Entry
	if c.state.Board != nil {
		entries = c.state.Board.Top(config.LeaderboardDisplaySize)
	}
	lines := leaderboardLines(entries, c.gate.Current())

	width := 0
	for _, l := range lines {
		width = max(width, draw.TextWidth(l.text))
	}
	width += 4
	height := len(lines) + 4
	top := centerY - height/2

	draw.WriteCentered(cw, centerX, top-2, "LEADERBOARD")
	draw.DrawFrame(cw, centerX-width/2, top, width, height)
	for i, l := range lines {
		text := draw.PadRight(l.text, width-4)
		if l.highlight {
			text = draw.ColorHighlight + text + draw.ColorReset
		}
		cw.WriteAt(centerX-width/2+2, top+2+i, text)
	}

	if c.state.Board != nil {
		draw.WriteCentered(cw, centerX, top+height+1, fmt.Sprintf("Players online: %d", c.state.Board.Players))
	}
	draw.WriteCentered(cw, centerX, top+height+3, "Press ESC or ENTER to go back")
}

// boardLine is one row of the leaderboard view.
type boardLine struct {
	text      string
	highlight bool
}

// leaderboardLines formats entries for display. The current player's row
// is marked and highlighted.
func leaderboardLines(entries []score.Entry, current string) []boardLine {
	if len(entries) == 0 {
		return []boardLine{{text: emptyBoardMessage}}
	}

	nameWidth := 0
	for _, e := range entries {
		nameWidth = max(nameWidth, draw.TextWidth(e.Name))
	}

	lines := make([]boardLine, 0, len(entries))
	for i, e := range entries {
		rank := fmt.Sprintf("%2d. ", i+1)
		if i < len(medals) {
			rank = medals[i] + "  "
		}
		you := current != "" && e.Name == current
		name := draw.PadRight(e.Name, nameWidth)
		text := fmt.Sprintf("%s%s  %6d", rank, name, e.Score)
		if you {
			text += "  (You)"
		}
		lines = append(lines, boardLine{text: text, highlight: you})
	}
	return lines
}

// drawPlayingHUD draws the in-game HUD.
// Text fields use fixed-width formatting so shrinking values don't leave
// residual characters on screen.
func (c *Client) drawPlayingHUD(termWidth, termHeight int) {
	cw := c.chunkWriter
	session := c.engine.Session()

	scoreText := fmt.Sprintf("Score : %-6d", session.Score)
	cw.WriteAt(2, 1, scoreText)
	c.canvas.MarkTextDirty(2, 1, len(scoreText))

	meter := speedMeter(session.ScrollSpeed, c.engine.Tuning().Scroll)
	meterText := "Speed " + meter
	meterCol := termWidth - draw.TextWidth(meterText) - 1
	cw.WriteAt(meterCol, 1, meterText)
	c.canvas.MarkTextDirty(meterCol, 1, draw.TextWidth(meterText))

	if c.state.Board != nil && c.state.Board.Players > 1 {
		playersText := fmt.Sprintf("Players: %-4d", c.state.Board.Players)
		col := termWidth - len(playersText) - 1
		cw.WriteAt(col, termHeight, playersText)
		c.canvas.MarkTextDirty(col, termHeight, len(playersText))
	}
}

// speedMeter renders speed as a bar of shade characters, empty at the base
// speed and solid at the cap.
func speedMeter(speed float64, scroll config.ScrollTuning) string {
	span := scroll.MaxSpeed - scroll.BaseSpeed
	fill := 0.0
	if span > 0 {
		fill = (speed - scroll.BaseSpeed) / span * speedMeterWidth
	}
	var b strings.Builder
	for i := 0; i < speedMeterWidth; i++ {
		b.WriteRune(draw.ShadeLevel(fill - float64(i)))
	}
	return b.String()
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(centerX, centerY int) {
	cw := c.chunkWriter
	draw.WriteCentered(cw, centerX, centerY-3, "SERVER SHUTTING DOWN")
	draw.WriteCentered(cw, centerX, centerY-1, "The server is restarting for maintenance.")
	draw.WriteCentered(cw, centerX, centerY, "Your scores are saved. Please reconnect in a moment.")

	remaining := int(c.state.shutdownTimer) + 1
	countdown := fmt.Sprintf("Disconnecting in %2d seconds...", remaining)
	draw.WriteCentered(cw, centerX, centerY+2, countdown)

	draw.WriteCentered(cw, centerX, centerY+4, "Press Q to disconnect now")
}
