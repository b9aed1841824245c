package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultTuningIsValid(t *testing.T) {
	if err := DefaultTuning().Validate(); err != nil {
		t.Fatalf("DefaultTuning().Validate() = %v, want nil", err)
	}
}

func TestLoadTuningEmptyPath(t *testing.T) {
	got, err := LoadTuning("")
	if err != nil {
		t.Fatalf("LoadTuning(\"\") error = %v", err)
	}
	if got != DefaultTuning() {
		t.Errorf("LoadTuning(\"\") = %+v, want defaults", got)
	}
}

func TestLoadTuningOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flappy.yaml")
	data := []byte(`
physics:
  gravity: 0.8
obstacles:
  gap: 200
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := LoadTuning(path)
	if err != nil {
		t.Fatalf("LoadTuning() error = %v", err)
	}

	def := DefaultTuning()
	if got.Physics.Gravity != 0.8 {
		t.Errorf("Gravity = %v, want 0.8", got.Physics.Gravity)
	}
	if got.Obstacles.Gap != 200 {
		t.Errorf("Gap = %v, want 200", got.Obstacles.Gap)
	}
	if got.Physics.KeyboardImpulse != def.Physics.KeyboardImpulse {
		t.Errorf("KeyboardImpulse = %v, want default %v", got.Physics.KeyboardImpulse, def.Physics.KeyboardImpulse)
	}
	if got.Scroll != def.Scroll {
		t.Errorf("Scroll = %+v, want default %+v", got.Scroll, def.Scroll)
	}
}

func TestLoadTuningRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"negative gravity", "physics:\n  gravity: -1\n"},
		{"max below base", "scroll:\n  base_speed: 5\n  max_speed: 4\n"},
		{"inverted offset range", "obstacles:\n  offset_min_pct: 80\n  offset_max_pct: 20\n"},
		{"malformed yaml", "physics: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "flappy.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0o644); err != nil {
				t.Fatal(err)
			}
			got, err := LoadTuning(path)
			if err == nil {
				t.Fatal("LoadTuning() error = nil, want error")
			}
			if got != DefaultTuning() {
				t.Errorf("LoadTuning() on error = %+v, want defaults", got)
			}
		})
	}
}

func TestLoadTuningMissingFile(t *testing.T) {
	_, err := LoadTuning(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("LoadTuning() on missing file error = nil, want error")
	}
}
