// Package loop runs a single game session: the state machine, the per-tick
// subsystems and the deferred return to the menu.
package loop

import (
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/flappy/internal/audio"
	"github.com/tomz197/flappy/internal/draw"
	"github.com/tomz197/flappy/internal/loop/config"
	"github.com/tomz197/flappy/internal/object"
)

// Engine owns one player's game. It is driven by calling Tick once per
// frame and is not safe for concurrent use.
type Engine struct {
	tuning  config.Tuning
	field   object.Screen
	session Session
	spawner *object.ObstacleSpawner
	rng     *rand.Rand
	cues    audio.Set
	sink    ScoreSink
	logger  *log.Logger
	now     func() time.Time

	lastID        uint64
	inputAttached bool

	// Deferred End→Start return, bound to the session that scheduled it.
	returnPending bool
	returnAt      time.Time
	returnFor     uint64

	// Wings-up sprite after a click, until this time.
	touchCueUntil time.Time

	effects []object.Object
	toSpawn []object.Object
	banner  *object.Text
}

// Option configures an Engine.
type Option func(*Engine)

// WithTuning replaces the default game constants.
func WithTuning(t config.Tuning) Option {
	return func(e *Engine) { e.tuning = t }
}

// WithField sets the play-field size.
func WithField(field object.Screen) Option {
	return func(e *Engine) { e.field = field }
}

// WithRand sets the random source used for obstacle offsets.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithCues sets the audio cues.
func WithCues(cues audio.Set) Option {
	return func(e *Engine) { e.cues = cues }
}

// WithScoreSink sets where final scores are recorded.
func WithScoreSink(sink ScoreSink) Option {
	return func(e *Engine) { e.sink = sink }
}

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// NewEngine creates an engine in the Start state.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		tuning: config.DefaultTuning(),
		field:  object.Screen{Width: config.FieldWidth, Height: config.FieldHeight},
		cues:   audio.Nop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.spawner = object.NewObstacleSpawner(e.tuning.Obstacles, e.rng)
	if e.logger == nil {
		e.logger = log.Default()
	}
	e.session = Session{
		State:       StateStart,
		ScrollSpeed: e.tuning.Scroll.BaseSpeed,
	}
	return e
}

// Session returns a copy of the current session. The Player and
// Obstacles it references are owned by the engine and must not be modified.
func (e *Engine) Session() Session {
	return e.session
}

// State returns the current state machine phase.
func (e *Engine) State() GameState {
	return e.session.State
}

// Tuning returns the game constants in use.
func (e *Engine) Tuning() config.Tuning {
	return e.tuning
}

// Field returns the play-field size.
func (e *Engine) Field() object.Screen {
	return e.field
}

// Start begins a new session recorded under identity. It is ignored while
// a session is already running.
func (e *Engine) Start(identity string) {
	if e.session.State == StatePlay {
		return
	}

	// Cancels any return still pending from the previous session.
	e.returnPending = false
	e.lastID++

	p := e.tuning.Player
	e.session = Session{
		ID:          e.lastID,
		State:       StatePlay,
		ScrollSpeed: e.tuning.Scroll.BaseSpeed,
		StartedAt:   e.now(),
		Identity:    identity,
		Player:      object.NewPlayer(p.X, e.field.Height*p.StartYPct/100, p.Width, p.Height),
	}
	e.spawner.Reset()
	e.clearEffects()
	e.banner = nil
	e.touchCueUntil = time.Time{}

	e.cues.SetMuted(false)
	e.inputAttached = true

	e.logger.Debug("session started", "session", e.session.ID, "player", identity)
}

// Ascend applies an upward impulse. The impulse replaces the current
// vertical velocity. Ignored unless a session is running.
func (e *Engine) Ascend(src InputSource) {
	if e.session.State != StatePlay || !e.inputAttached {
		return
	}

	impulse := e.tuning.Physics.KeyboardImpulse
	if src == SourceTouch {
		impulse = e.tuning.Physics.TouchImpulse
		e.touchCueUntil = e.now().Add(config.ClickCueDuration)
	}
	pl := e.session.Player
	pl.VY = -impulse
	object.SpawnPuff(pl.X, pl.Y+pl.Height*0.6, e)
}

// SetWingsHeld updates the cosmetic wings-up sprite. held reports whether
// a keyboard ascend key is currently held down.
func (e *Engine) SetWingsHeld(held bool) {
	if e.session.State != StatePlay {
		return
	}
	e.session.Player.WingsUp = held || e.now().Before(e.touchCueUntil)
}

// Tick advances the game by one frame.
func (e *Engine) Tick() {
	// Each subsystem checks the state itself, so one ending the session
	// stops the ones after it within the same tick.
	e.moveObstacles()
	e.applyPhysics()
	e.spawnObstacles()

	e.updateEffects(config.ClientTargetFrameTime)
	e.checkReturn()
}

// endGame moves Play→End. Calling it again after the first time is a no-op.
func (e *Engine) endGame(reason EndReason) {
	if e.session.State != StatePlay {
		return
	}

	now := e.now()
	s := &e.session
	s.State = StateEnd
	s.EndReason = reason
	s.EndedAt = now
	e.inputAttached = false

	s.Player.Hidden = true
	cx, cy := s.Player.Center()
	object.SpawnExplosion(cx, cy, 24, 250.0, 1.0, e)
	e.banner = &object.Text{
		X:     e.field.Width / 2,
		Y:     e.field.Height / 2,
		Value: "Game Over!",
		Color: draw.ColorBold + draw.ColorRed,
		Blink: 1.0,
	}

	if s.Score > 0 && s.Identity != "" && e.sink != nil {
		if err := e.sink.Save(s.Identity, s.Score); err != nil {
			e.logger.Warn("could not record score", "player", s.Identity, "score", s.Score, "err", err)
		}
	}
	e.cues.Die.Play()

	e.returnPending = true
	e.returnFor = s.ID
	e.returnAt = now.Add(config.ReturnToMenuDelay)

	e.logger.Debug("session ended", "session", s.ID, "reason", reason, "score", s.Score)
}

// checkReturn performs the deferred End→Start return once it is due.
func (e *Engine) checkReturn() {
	if !e.returnPending || e.now().Before(e.returnAt) {
		return
	}
	e.returnPending = false

	// Only the session that scheduled the return may be reset by it.
	if e.session.ID != e.returnFor || e.session.State != StateEnd {
		return
	}
	e.session.State = StateStart
	e.session.ScrollSpeed = e.tuning.Scroll.BaseSpeed
	e.banner = nil
}

// Spawn queues a visual effect. Implements object.Spawner.
func (e *Engine) Spawn(obj object.Object) {
	e.toSpawn = append(e.toSpawn, obj)
}

// updateEffects advances particles and banners. Effects keep running
// after the session ends so the crash animation can finish.
func (e *Engine) updateEffects(delta time.Duration) {
	ctx := object.UpdateContext{
		Delta:   delta,
		Screen:  e.field,
		Spawner: e,
	}

	kept := e.effects[:0]
	for _, obj := range e.effects {
		remove, err := obj.Update(ctx)
		if err != nil {
			e.logger.Warn("effect update failed", "err", err)
			remove = true
		}
		if remove {
			object.ReleaseObject(obj)
			continue
		}
		kept = append(kept, obj)
	}
	e.effects = append(kept, e.toSpawn...)
	e.toSpawn = e.toSpawn[:0]

	if e.banner != nil {
		e.banner.Update(ctx)
	}
}

func (e *Engine) clearEffects() {
	for _, obj := range e.effects {
		object.ReleaseObject(obj)
	}
	for _, obj := range e.toSpawn {
		object.ReleaseObject(obj)
	}
	e.effects = e.effects[:0]
	e.toSpawn = e.toSpawn[:0]
}

// Draw paints obstacles, the player, effects and the banner. Obstacles and
// the player go to the canvas; the banner is written as text after it.
func (e *Engine) Draw(ctx object.DrawContext) error {
	for _, o := range e.session.Obstacles {
		if err := o.Draw(ctx); err != nil {
			return err
		}
	}
	if e.session.Player != nil {
		if err := e.session.Player.Draw(ctx); err != nil {
			return err
		}
	}
	for _, obj := range e.effects {
		if err := obj.Draw(ctx); err != nil {
			return err
		}
	}
	return nil
}

// DrawOverlay writes text overlays. Call after the canvas was rendered.
func (e *Engine) DrawOverlay(ctx object.DrawContext) error {
	if e.banner == nil {
		return nil
	}
	return e.banner.Draw(ctx)
}
