// Package physics provides axis-aligned bounding boxes and overlap tests.
package physics

// Rect is an axis-aligned bounding box in field coordinates.
// X/Y is the top-left corner; Y grows downwards.
type Rect struct {
	X, Y float64
	W, H float64
}

// Left returns the x-coordinate of the left edge.
func (r Rect) Left() float64 {
	return r.X
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.W
}

// Top returns the y-coordinate of the top edge.
func (r Rect) Top() float64 {
	return r.Y
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.H
}

// Overlaps reports whether r and o share interior area on both axes.
// Touching edges do not count as overlap.
func (r Rect) Overlaps(o Rect) bool {
	return r.Left() < o.Right() &&
		r.Right() > o.Left() &&
		r.Top() < o.Bottom() &&
		r.Bottom() > o.Top()
}

// OutsideVertically reports whether r touches or crosses the top or bottom
// edge of bounds.
func (r Rect) OutsideVertically(bounds Rect) bool {
	return r.Top() <= bounds.Top() || r.Bottom() >= bounds.Bottom()
}

// CrossedLeftEdge reports whether the right edge of r passed x during the
// last step of the given displacement: it is now left of x, but was not
// before the step.
func (r Rect) CrossedLeftEdge(x, displacement float64) bool {
	return r.Right() < x && r.Right()+displacement >= x
}
