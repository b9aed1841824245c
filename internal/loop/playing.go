package loop

// applyPhysics integrates gravity and checks the field boundaries.
// There is no terminal velocity.
func (e *Engine) applyPhysics() {
	if e.session.State != StatePlay {
		return
	}

	p := e.session.Player
	p.VY += e.tuning.Physics.Gravity
	p.Y += p.VY

	if p.Box().OutsideVertically(e.field.Bounds()) {
		e.endGame(EndBoundary)
	}
}

// spawnObstacles advances the spawner and appends any new pair.
func (e *Engine) spawnObstacles() {
	if e.session.State != StatePlay {
		return
	}

	if pair := e.spawner.Tick(e.field); pair != nil {
		e.session.Obstacles = append(e.session.Obstacles, pair...)
	}
}
