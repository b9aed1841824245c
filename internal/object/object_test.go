package object

import (
	"math/rand"
	"testing"
	"time"

	"github.com/tomz197/flappy/internal/loop/config"
)

type collector struct {
	objects []Object
}

func (c *collector) Spawn(obj Object) {
	c.objects = append(c.objects, obj)
}

func TestSpawnerCadence(t *testing.T) {
	tuning := config.DefaultTuning().Obstacles
	tuning.SpawnThreshold = 3
	s := NewObstacleSpawner(tuning, rand.New(rand.NewSource(1)))
	field := Screen{Width: 1000, Height: 800}

	var spawnedAt []int
	for tick := 1; tick <= 13; tick++ {
		if pair := s.Tick(field); pair != nil {
			if len(pair) != 2 {
				t.Fatalf("tick %d spawned %d obstacles, want 2", tick, len(pair))
			}
			spawnedAt = append(spawnedAt, tick)
		}
	}

	want := []int{5, 9, 13}
	if len(spawnedAt) != len(want) {
		t.Fatalf("spawned at ticks %v, want %v", spawnedAt, want)
	}
	for i := range want {
		if spawnedAt[i] != want[i] {
			t.Errorf("spawned at ticks %v, want %v", spawnedAt, want)
			break
		}
	}
}

func TestSpawnerReset(t *testing.T) {
	s := NewObstacleSpawner(config.DefaultTuning().Obstacles, nil)
	field := Screen{Width: 1000, Height: 800}
	for i := 0; i < 10; i++ {
		s.Tick(field)
	}
	if s.Counter() != 10 {
		t.Fatalf("Counter() = %d, want 10", s.Counter())
	}
	s.Reset()
	if s.Counter() != 0 {
		t.Errorf("Counter() after Reset = %d, want 0", s.Counter())
	}
}

func TestSpawnPairGeometry(t *testing.T) {
	tuning := config.ObstacleTuning{
		SpawnThreshold: 10,
		Width:          80,
		Gap:            100,
		OffsetMinPct:   50,
		OffsetMaxPct:   50,
	}
	s := NewObstacleSpawner(tuning, rand.New(rand.NewSource(1)))
	field := Screen{Width: 1000, Height: 800}

	top, bottom := s.SpawnPair(field)

	if top.Role != TopBarrier || bottom.Role != BottomBarrier {
		t.Fatalf("roles = %v/%v, want top/bottom", top.Role, bottom.Role)
	}
	if top.X != 1000 || bottom.X != 1000 {
		t.Errorf("X = %v/%v, want both at the right edge 1000", top.X, bottom.X)
	}
	if top.Y != 0 || top.Height != 300 {
		t.Errorf("top spans y=%v h=%v, want y=0 h=300", top.Y, top.Height)
	}
	if bottom.Y != 500 || bottom.Height != 300 {
		t.Errorf("bottom spans y=%v h=%v, want y=500 h=300", bottom.Y, bottom.Height)
	}
	if top.ScoreEligible {
		t.Error("top barrier must not be score-eligible")
	}
	if !bottom.ScoreEligible {
		t.Error("bottom barrier must be score-eligible")
	}
	if top.ID == bottom.ID {
		t.Error("pair members must have distinct IDs")
	}
}

func TestSpawnPairOffsetRange(t *testing.T) {
	tuning := config.DefaultTuning().Obstacles
	s := NewObstacleSpawner(tuning, rand.New(rand.NewSource(42)))
	field := Screen{Width: 1350, Height: 900}

	for i := 0; i < 1000; i++ {
		top, _ := s.SpawnPair(field)
		offset := top.Height + tuning.Gap
		min := field.Height * float64(tuning.OffsetMinPct) / 100
		max := field.Height * float64(tuning.OffsetMaxPct) / 100
		if offset < min || offset >= max {
			t.Fatalf("offset %v outside [%v, %v)", offset, min, max)
		}
		// Offsets are whole percentages of the field height
		if pct := offset * 100 / field.Height; pct != float64(int(pct)) {
			t.Fatalf("offset %v is not a whole percentage (%v%%)", offset, pct)
		}
	}
}

func TestObstacleOffscreen(t *testing.T) {
	tests := []struct {
		x    float64
		want bool
	}{
		{x: 10, want: false},
		{x: -79, want: false},
		{x: -80, want: true},
		{x: -100, want: true},
	}
	for _, tt := range tests {
		o := &Obstacle{X: tt.x, Width: 80, Height: 10}
		if got := o.Offscreen(); got != tt.want {
			t.Errorf("Offscreen() at x=%v = %v, want %v", tt.x, got, tt.want)
		}
	}
}

func TestPlayerBox(t *testing.T) {
	p := NewPlayer(300, 360, 60, 40)
	box := p.Box()
	if box.Left() != 300 || box.Right() != 360 || box.Top() != 360 || box.Bottom() != 400 {
		t.Errorf("Box() = %+v", box)
	}
	if p.VY != 0 {
		t.Errorf("new player VY = %v, want 0", p.VY)
	}
}

func TestParticleExpires(t *testing.T) {
	c := &collector{}
	SpawnExplosion(500, 500, 8, 100, 0.5, c)
	if len(c.objects) != 8 {
		t.Fatalf("spawned %d particles, want 8", len(c.objects))
	}

	ctx := UpdateContext{Delta: 100 * time.Millisecond, Screen: Screen{Width: 1000, Height: 1000}}
	for _, obj := range c.objects {
		removed := false
		for i := 0; i < 10 && !removed; i++ {
			var err error
			removed, err = obj.Update(ctx)
			if err != nil {
				t.Fatal(err)
			}
		}
		if !removed {
			t.Error("particle outlived its lifetime")
		}
		ReleaseObject(obj)
	}
}

func TestExplosionGravityIndependentOfSpeed(t *testing.T) {
	for _, speed := range []float64{10, 250, 1000} {
		c := &collector{}
		SpawnExplosion(500, 500, 4, speed, 0.5, c)
		for _, obj := range c.objects {
			p, ok := obj.(*Particle)
			if !ok {
				t.Fatalf("spawned %T, want *Particle", obj)
			}
			if p.Gravity != explosionGravity {
				t.Errorf("speed %v: Gravity = %v, want %v", speed, p.Gravity, explosionGravity)
			}
			ReleaseObject(obj)
		}
	}
}

func TestShouldRenderBlink(t *testing.T) {
	if !ShouldRenderBlink(0, 5) {
		t.Error("no blink time should always render")
	}
	if ShouldRenderBlink(0.1, 5) == ShouldRenderBlink(0.3, 5) {
		t.Error("blink phases 0.1s and 0.3s at 5Hz should differ")
	}
}
