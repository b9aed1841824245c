package client

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/flappy/internal/account"
	"github.com/tomz197/flappy/internal/audio"
	"github.com/tomz197/flappy/internal/draw"
	"github.com/tomz197/flappy/internal/input"
	"github.com/tomz197/flappy/internal/loop"
	"github.com/tomz197/flappy/internal/loop/config"
	"github.com/tomz197/flappy/internal/loop/server"
)

// Client handles rendering and input for a single connection.
type Client struct {
	server       server.GameServer
	handle       *server.ClientHandle
	gate         *account.Gate
	engine       *loop.Engine
	state        *ClientState
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates UI text for chunked output
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	termSizeFunc draw.TermSizeFunc
	inactivity   bool // Warn and disconnect idle clients
	logger       *log.Logger
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string        // Pre-fills the login field when the gate has no last user
	Gate         *account.Gate // Identity for this connection; a fresh one if nil
	Cues         audio.Set     // Sound cues; silent if zero
	Tuning       *config.Tuning
	Inactivity   bool // Enable the idle warning and disconnect
	Logger       *log.Logger
}

// NewClient creates a new client connected to the given server.
func NewClient(gs server.GameServer, r *bufio.Reader, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.StdoutSize
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	gate := opts.Gate
	if gate == nil {
		gate = account.NewGate(nil, logger)
	}
	cues := opts.Cues
	if cues.Point == nil || cues.Die == nil {
		cues = audio.Nop()
	}

	engineOpts := []loop.Option{
		loop.WithCues(cues),
		loop.WithScoreSink(gs),
		loop.WithLogger(logger),
	}
	if opts.Tuning != nil {
		engineOpts = append(engineOpts, loop.WithTuning(*opts.Tuning))
	}
	engine := loop.NewEngine(engineOpts...)

	prefill := gate.LastUsed()
	if prefill == "" {
		prefill = opts.Username
	}
	handle := gs.RegisterClient("")
	state := NewClientState(prefill)
	state.Board = gs.GetSnapshot()

	// Create canvas with clamped dimensions for max render resolution
	field := engine.Field()
	termWidth, termHeight, _ := termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, field.Width, field.Height)
	canvas.SetOffset(offsetCol, offsetRow)
	chunkWriter := draw.NewChunkWriter(w, offsetCol, offsetRow)

	return &Client{
		server:       gs,
		handle:       handle,
		gate:         gate,
		engine:       engine,
		state:        state,
		canvas:       canvas,
		chunkWriter:  chunkWriter,
		writer:       w,
		lastInput:    time.Now(),
		inputStream:  input.StartStream(r),
		termSizeFunc: termSizeFunc,
		inactivity:   opts.Inactivity,
		logger:       logger,
	}
}

// Run starts the client loop. Blocks until the client disconnects or server stops.
func (c *Client) Run() error {
	draw.EnterGameScreen(c.writer)
	defer draw.LeaveGameScreen(c.writer)

	lastTime := time.Now()
	var runErr error

	for c.state.Running {
		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		// Process input
		c.processInput()

		// Check for server events
		c.processServerEvents()

		// Handle screen resize
		c.updateScreen()

		c.update()

		// Draw frame
		if err := c.drawFrame(); err != nil {
			runErr = err
			break
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}

	// Unregister from server
	c.server.UnregisterClient(c.handle.ID)
	return runErr
}

// update advances the current screen by one frame.
func (c *Client) update() {
	switch c.state.Screen {
	case ScreenLogin:
		c.updateLogin()
	case ScreenMenu:
		c.updateMenu()
	case ScreenGame:
		c.updateGame()
	case ScreenLeaderboard:
		c.updateLeaderboard()
	case ScreenShutdown:
		c.updateShutdown()
	}
}

// processInput reads this frame's input and handles inactivity and quit.
func (c *Client) processInput() {
	c.state.Input = input.ReadInput(c.inputStream)

	if c.state.Input.Closed {
		c.state.Running = false
	}

	if len(c.state.Input.Pressed) > 0 || c.state.Input.Clicks > 0 || c.state.Input.Jumps > 0 {
		c.lastInput = time.Now()
		c.state.isInactive = false
	} else if c.inactivity && time.Since(c.lastInput).Seconds() > config.InactivityDisconnectUser {
		c.logger.Info("disconnecting inactive client", "client", c.handle.ID)
		c.state.Running = false
	} else if c.inactivity && time.Since(c.lastInput).Seconds() > config.InactivityWarnUser {
		c.state.isInactive = true
	}

	if c.state.Input.Quit {
		c.state.Running = false
	}
}

// processServerEvents handles events from the server.
func (c *Client) processServerEvents() {
	for {
		select {
		case event, ok := <-c.handle.EventsCh:
			if !ok {
				// Server closed the channel
				c.state.Running = false
				return
			}
			switch event.Type {
			case server.EventScoreSaved:
				c.state.Board = c.server.GetSnapshot()
				if c.state.Screen == ScreenLeaderboard {
					c.state.boardDirty = true
				}
			case server.EventServerShutdown:
				c.state.Screen = ScreenShutdown
				c.state.shutdownTimer = config.ShutdownDisplaySeconds
			}
		default:
			return
		}
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area (e.g. old borders or offset content).
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		draw.ClearScreen(c.writer)
		c.canvas.ForceRedraw()
		c.state.boardDirty = true
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, config.MaxTermWidth)
	renderHeight = min(termHeight, config.MaxTermHeight)
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}

// switchScreen moves to s and drops held key state so the key that caused
// the switch does not act again on the new screen.
func (c *Client) switchScreen(s Screen) {
	input.ResetKeyInput(c.inputStream)
	c.state.Screen = s
}

// updateLogin edits the name field and submits it on Enter.
func (c *Client) updateLogin() {
	in := c.state.Input
	if pressed(in, '\r', '\n') {
		c.submitLogin()
		return
	}
	c.state.editField(in)
}

// submitLogin passes the typed name through the gate.
func (c *Client) submitLogin() {
	if err := c.gate.Login(string(c.state.LoginField)); err != nil {
		switch {
		case errors.Is(err, account.ErrEmptyName),
			errors.Is(err, account.ErrNameTooLong),
			errors.Is(err, account.ErrInvalidChars):
			c.state.LoginError = err.Error()
		default:
			c.state.LoginError = "login failed"
			c.logger.Warn("login failed", "err", err)
		}
		return
	}

	name := c.gate.Current()
	c.state.LoginField = []rune(name)
	c.state.LoginError = ""
	c.server.SetUsername(c.handle.ID, name)
	c.logger.Info("player logged in", "client", c.handle.ID, "player", name)
	c.switchScreen(ScreenMenu)
}

// updateMenu handles the main menu keys.
func (c *Client) updateMenu() {
	in := c.state.Input
	keys := strings.ToLower(in.Text())
	switch {
	case pressed(in, ' ', '\r', '\n') || in.Clicks > 0:
		c.startGame()
	case strings.ContainsRune(keys, 'l'):
		c.state.Board = c.server.GetSnapshot()
		c.switchScreen(ScreenLeaderboard)
	case strings.ContainsRune(keys, 'o'):
		c.logout()
	case strings.ContainsRune(keys, 'q'):
		c.state.Running = false
	}
}

// logout clears the identity and returns to the login screen.
func (c *Client) logout() {
	c.logger.Info("player logged out", "client", c.handle.ID, "player", c.gate.Current())
	c.gate.Logout()
	c.server.SetUsername(c.handle.ID, "")
	c.switchScreen(ScreenLogin)
}

// startGame begins a new session for the logged in player.
func (c *Client) startGame() {
	c.switchScreen(ScreenGame)
	c.engine.Start(c.gate.Current())
}

// updateGame feeds input to the engine and advances it by one tick.
func (c *Client) updateGame() {
	in := c.state.Input
	for i := 0; i < in.Jumps; i++ {
		c.engine.Ascend(loop.SourceKeyboard)
	}
	for i := 0; i < in.Clicks; i++ {
		c.engine.Ascend(loop.SourceTouch)
	}
	c.engine.SetWingsHeld(in.Up || in.Space)

	c.engine.Tick()

	if c.engine.State() == loop.StateStart {
		c.switchScreen(ScreenMenu)
	}
}

// updateLeaderboard returns to the menu on any confirm or back key.
func (c *Client) updateLeaderboard() {
	in := c.state.Input
	if pressed(in, ' ', '\r', '\n', '\x1b', 'b', 'B', 'q', 'Q') {
		c.switchScreen(ScreenMenu)
	}
}

// updateShutdown handles the shutdown screen countdown.
func (c *Client) updateShutdown() {
	c.state.shutdownTimer -= c.state.delta.Seconds()
	if c.state.shutdownTimer <= 0 || pressed(c.state.Input, 'q', 'Q') {
		c.state.Running = false
	}
}
