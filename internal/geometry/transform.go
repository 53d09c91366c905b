package geometry

import "math"

const (
	MinScale = 0.1
	MaxScale = 3.0
)

// Transform maps world coordinates to screen coordinates:
// screen = world*Scale + Offset.
type Transform struct {
	OffsetX float64
	OffsetY float64
	Scale   float64
}

// Identity returns the transform with no offset and a scale of 1.
func Identity() Transform {
	return Transform{Scale: 1}
}

// ClampScale bounds s to [MinScale, MaxScale]. NaN becomes 1.
func ClampScale(s float64) float64 {
	if math.IsNaN(s) {
		return 1
	}
	if s < MinScale {
		return MinScale
	}
	if s > MaxScale {
		return MaxScale
	}
	return s
}

// Normalize returns t with non-finite offsets zeroed and the scale clamped.
// A missing or non-positive scale becomes 1.
func (t Transform) Normalize() Transform {
	if !finite(t.OffsetX) {
		t.OffsetX = 0
	}
	if !finite(t.OffsetY) {
		t.OffsetY = 0
	}
	if !(t.Scale > 0) {
		t.Scale = 1
	}
	t.Scale = ClampScale(t.Scale)
	return t
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func (t Transform) Offset() Point {
	return Point{X: t.OffsetX, Y: t.OffsetY}
}

// scale guards against a zero-value Transform.
func (t Transform) scale() float64 {
	if !(t.Scale > 0) {
		return 1
	}
	return t.Scale
}

// WorldToScreen projects a world point onto the screen.
func (t Transform) WorldToScreen(p Point) Point {
	s := t.scale()
	return Point{X: p.X*s + t.OffsetX, Y: p.Y*s + t.OffsetY}
}

// ScreenToWorld is the inverse of WorldToScreen.
func (t Transform) ScreenToWorld(p Point) Point {
	s := t.scale()
	return Point{X: (p.X - t.OffsetX) / s, Y: (p.Y - t.OffsetY) / s}
}

// ZoomAt rescales the transform so that the world point under anchor stays
// under anchor: new_offset = anchor - (anchor - old_offset) * (new/old).
// The requested scale is clamped first.
func (t Transform) ZoomAt(anchor Point, scale float64) Transform {
	old := t.scale()
	next := ClampScale(scale)
	ratio := next / old
	return Transform{
		OffsetX: anchor.X - (anchor.X-t.OffsetX)*ratio,
		OffsetY: anchor.Y - (anchor.Y-t.OffsetY)*ratio,
		Scale:   next,
	}
}

// Translate shifts the offset by a screen-space delta.
func (t Transform) Translate(dx, dy float64) Transform {
	t.OffsetX += dx
	t.OffsetY += dy
	return t
}
