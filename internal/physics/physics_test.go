package physics

import "testing"

func TestOverlaps(t *testing.T) {
	base := Rect{X: 10, Y: 10, W: 10, H: 10}

	tests := []struct {
		name  string
		other Rect
		want  bool
	}{
		{"identical", base, true},
		{"inside", Rect{X: 12, Y: 12, W: 2, H: 2}, true},
		{"partial right", Rect{X: 19, Y: 15, W: 5, H: 5}, true},
		{"touching right edge", Rect{X: 20, Y: 10, W: 5, H: 10}, false},
		{"touching bottom edge", Rect{X: 10, Y: 20, W: 10, H: 5}, false},
		{"left of", Rect{X: 0, Y: 10, W: 5, H: 10}, false},
		{"above", Rect{X: 10, Y: 0, W: 10, H: 5}, false},
		{"overlaps x only", Rect{X: 12, Y: 40, W: 5, H: 5}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Overlaps(tt.other); got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
			if got := tt.other.Overlaps(base); got != tt.want {
				t.Errorf("reverse Overlaps() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOutsideVertically(t *testing.T) {
	field := Rect{W: 100, H: 100}

	tests := []struct {
		name string
		r    Rect
		want bool
	}{
		{"inside", Rect{Y: 10, H: 10}, false},
		{"touching top", Rect{Y: 0, H: 10}, true},
		{"above top", Rect{Y: -5, H: 10}, true},
		{"touching bottom", Rect{Y: 90, H: 10}, true},
		{"below bottom", Rect{Y: 95, H: 10}, true},
	}

	for _, tt := range tests {
		if got := tt.r.OutsideVertically(field); got != tt.want {
			t.Errorf("%s: OutsideVertically() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestCrossedLeftEdge(t *testing.T) {
	const x = 100.0
	const speed = 3.0

	tests := []struct {
		name  string
		right float64
		want  bool
	}{
		{"still right of edge", 101, false},
		{"exactly on edge", 100, false},
		{"just crossed", 99.5, true},
		{"crossed by full step", 97, true},
		{"crossed on an earlier step", 96.9, false},
	}

	for _, tt := range tests {
		r := Rect{X: tt.right - 10, W: 10}
		if got := r.CrossedLeftEdge(x, speed); got != tt.want {
			t.Errorf("%s: CrossedLeftEdge() = %v, want %v", tt.name, got, tt.want)
		}
	}
}
