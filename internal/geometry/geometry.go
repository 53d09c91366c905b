// Package geometry holds the coordinate math shared by the diagram engine,
// the terminal renderer and the exporters. Nothing in here keeps state.
package geometry

import "math"

type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Len is the euclidean length of p seen as a vector.
func (p Point) Len() float64 { return math.Hypot(p.X, p.Y) }

// ClampNonNegative pins negative and non-finite coordinates to zero.
func (p Point) ClampNonNegative() Point {
	return Point{X: nonNegative(p.X), Y: nonNegative(p.Y)}
}

func nonNegative(v float64) float64 {
	if v > 0 && !math.IsInf(v, 1) {
		return v
	}
	return 0
}

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Handles returns the midpoints of the top, right, bottom and left borders.
func (r Rect) Handles() [4]Point {
	c := r.Center()
	return [4]Point{
		{X: c.X, Y: r.Y},
		{X: r.X + r.W, Y: c.Y},
		{X: c.X, Y: r.Y + r.H},
		{X: r.X, Y: c.Y},
	}
}

// Union returns the smallest rectangle containing r and o.
func (r Rect) Union(o Rect) Rect {
	minX := math.Min(r.X, o.X)
	minY := math.Min(r.Y, o.Y)
	maxX := math.Max(r.X+r.W, o.X+o.W)
	maxY := math.Max(r.Y+r.H, o.Y+o.H)
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// ConnectionPoints picks where a line between two boxes leaves from and
// arrives at: facing border midpoints along the dominant axis.
func ConnectionPoints(from, to Rect) (Point, Point) {
	fc, tc := from.Center(), to.Center()
	if math.Abs(fc.X-tc.X) > math.Abs(fc.Y-tc.Y) {
		if fc.X < tc.X {
			return Point{X: from.X + from.W, Y: fc.Y}, Point{X: to.X, Y: tc.Y}
		}
		return Point{X: from.X, Y: fc.Y}, Point{X: to.X + to.W, Y: tc.Y}
	}
	if fc.Y < tc.Y {
		return Point{X: fc.X, Y: from.Y + from.H}, Point{X: tc.X, Y: to.Y}
	}
	return Point{X: fc.X, Y: from.Y}, Point{X: tc.X, Y: to.Y + to.H}
}

// ClosestPointOnSegment projects p onto the segment a-b. A degenerate
// segment yields a.
func ClosestPointOnSegment(a, b, p Point) Point {
	d := b.Sub(a)
	l2 := d.X*d.X + d.Y*d.Y
	if l2 == 0 {
		return a
	}
	t := ((p.X-a.X)*d.X + (p.Y-a.Y)*d.Y) / l2
	t = math.Max(0, math.Min(1, t))
	return Point{X: a.X + t*d.X, Y: a.Y + t*d.Y}
}

// DistanceToSegment is the distance from p to the closest point of a-b.
func DistanceToSegment(a, b, p Point) float64 {
	return p.Sub(ClosestPointOnSegment(a, b, p)).Len()
}

// ArrowPlacement returns where an arrowhead pointing at to should sit,
// back units before to along from->to, and the heading in degrees.
// A zero-length vector places the arrow on to with angle 0.
func ArrowPlacement(from, to Point, back float64) (Point, float64) {
	d := to.Sub(from)
	l := d.Len()
	if l == 0 {
		return to, 0
	}
	ux, uy := d.X/l, d.Y/l
	angle := math.Atan2(d.Y, d.X) * 180 / math.Pi
	return Point{X: to.X - ux*back, Y: to.Y - uy*back}, angle
}

// BezierControls returns the two control points of the cubic curve drawn
// between from and to. The curve leaves and enters horizontally.
func BezierControls(from, to Point) (Point, Point) {
	dx := to.X - from.X
	off := math.Min(to.Sub(from).Len()*0.3, 100)
	if dx <= 0 {
		off = -off
	}
	return Point{X: from.X + off, Y: from.Y}, Point{X: to.X - off, Y: to.Y}
}
