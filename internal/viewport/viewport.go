// Package viewport holds the pan/zoom state of the canvas. The viewport is
// not part of the undo history.
package viewport

import "github.com/travisdwitt/flowcanvas/internal/geometry"

const (
	DefaultZoomStep  = 1.2
	DefaultWheelStep = 0.1
)

type Controller struct {
	t         geometry.Transform
	width     float64
	height    float64
	zoomStep  float64
	wheelStep float64
}

type Option func(*Controller)

// WithZoomStep sets the factor ZoomIn multiplies the scale by.
func WithZoomStep(f float64) Option {
	return func(c *Controller) {
		if f > 1 {
			c.zoomStep = f
		}
	}
}

// WithWheelStep sets the fractional scale change of one wheel tick.
func WithWheelStep(f float64) Option {
	return func(c *Controller) {
		if f > 0 && f < 1 {
			c.wheelStep = f
		}
	}
}

func New(opts ...Option) *Controller {
	c := &Controller{
		t:         geometry.Identity(),
		zoomStep:  DefaultZoomStep,
		wheelStep: DefaultWheelStep,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) Transform() geometry.Transform { return c.t }

// SetTransform replaces the transform, clamping its scale.
func (c *Controller) SetTransform(t geometry.Transform) {
	c.t = t.Normalize()
}

// SetSize records the canvas size in screen units; zoom buttons anchor at
// its center.
func (c *Controller) SetSize(w, h float64) {
	c.width, c.height = w, h
}

func (c *Controller) Center() geometry.Point {
	return geometry.Point{X: c.width / 2, Y: c.height / 2}
}

func (c *Controller) ZoomIn() {
	c.SetScale(c.Center(), c.t.Scale*c.zoomStep)
}

func (c *Controller) ZoomOut() {
	c.SetScale(c.Center(), c.t.Scale/c.zoomStep)
}

func (c *Controller) ResetZoom() {
	c.t = geometry.Identity()
}

// SetScale zooms to scale keeping the world point under anchor fixed.
func (c *Controller) SetScale(anchor geometry.Point, scale float64) {
	c.t = c.t.ZoomAt(anchor, scale)
}

// Wheel applies one wheel tick at the pointer: scrolling down (deltaY > 0)
// zooms out. A zero delta does nothing.
func (c *Controller) Wheel(deltaY float64, pointer geometry.Point) {
	switch {
	case deltaY > 0:
		c.SetScale(pointer, c.t.Scale*(1-c.wheelStep))
	case deltaY < 0:
		c.SetScale(pointer, c.t.Scale*(1+c.wheelStep))
	}
}

func (c *Controller) PanBy(dx, dy float64) {
	c.t = c.t.Translate(dx, dy)
}

func (c *Controller) SetOffset(x, y float64) {
	c.t.OffsetX, c.t.OffsetY = x, y
}
