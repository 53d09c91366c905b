// Package export renders diagrams to PNG images and plain text.
package export

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/travisdwitt/flowcanvas/internal/diagram"
	"github.com/travisdwitt/flowcanvas/internal/geometry"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

// ErrNothingToExport is returned for a diagram without nodes.
var ErrNothingToExport = errors.New("nothing to export")

// Options sizes one world unit in pixels.
type Options struct {
	CharWidth  float64
	CharHeight float64
}

func (o Options) withDefaults() Options {
	if o.CharWidth <= 0 {
		o.CharWidth = 10
	}
	if o.CharHeight <= 0 {
		o.CharHeight = 20
	}
	return o
}

const (
	padding   = 2
	arrowBack = 15
)

// PNG renders d and writes it to filename.
func PNG(filename string, d diagram.Diagram, opts Options) error {
	dc, err := draw(d, opts)
	if err != nil {
		return err
	}
	if err := dc.SavePNG(filename); err != nil {
		return fmt.Errorf("save png: %w", err)
	}
	return nil
}

// Image renders d without writing it anywhere.
func Image(d diagram.Diagram, opts Options) (image.Image, error) {
	dc, err := draw(d, opts)
	if err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

type canvas struct {
	dc   *gg.Context
	minX float64
	minY float64
	opts Options
}

func (c *canvas) px(p geometry.Point) (float64, float64) {
	return (p.X - c.minX) * c.opts.CharWidth, (p.Y - c.minY) * c.opts.CharHeight
}

func draw(d diagram.Diagram, opts Options) (*gg.Context, error) {
	bounds, ok := d.Bounds()
	if !ok {
		return nil, ErrNothingToExport
	}
	opts = opts.withDefaults()

	minX, minY := bounds.X-padding, bounds.Y-padding
	w := int((bounds.W + 2*padding) * opts.CharWidth)
	h := int((bounds.H + 2*padding) * opts.CharHeight)

	dc := gg.NewContext(w, h)
	dc.SetColor(color.White)
	dc.Clear()

	ttf, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	dc.SetFontFace(truetype.NewFace(ttf, &truetype.Options{
		Size:    opts.CharHeight * 0.6,
		DPI:     72,
		Hinting: font.HintingFull,
	}))

	c := &canvas{dc: dc, minX: minX, minY: minY, opts: opts}
	for _, e := range d.Edges {
		from, to, ok := d.EdgeSegment(e)
		if !ok {
			continue
		}
		c.edge(e, from, to)
	}
	for _, n := range d.Nodes {
		c.node(n)
	}
	return dc, nil
}

func (c *canvas) edge(e diagram.Edge, from, to geometry.Point) {
	dc := c.dc
	x1, y1 := c.px(from)
	x2, y2 := c.px(to)
	a, b := geometry.Point{X: x1, Y: y1}, geometry.Point{X: x2, Y: y2}
	c1, c2 := geometry.BezierControls(a, b)

	dc.SetHexColor(e.Data.Color)
	dc.SetLineWidth(2)
	dc.MoveTo(x1, y1)
	dc.CubicTo(c1.X, c1.Y, c2.X, c2.Y, x2, y2)
	dc.Stroke()

	// Arrowhead: base arrowBack pixels before the target, tip on it.
	p, angle := geometry.ArrowPlacement(c2, b, arrowBack)
	dc.Push()
	dc.Translate(p.X, p.Y)
	dc.Rotate(gg.Radians(angle))
	dc.MoveTo(arrowBack, 0)
	dc.LineTo(0, -5)
	dc.LineTo(0, 5)
	dc.ClosePath()
	dc.Fill()
	dc.Pop()

	if e.Data.Label != "" {
		mx, my := bezierPoint(a, c1, c2, b, 0.5)
		dc.SetColor(color.Black)
		dc.DrawStringAnchored(e.Data.Label, mx, my-4, 0.5, 1)
	}
}

func bezierPoint(p0, p1, p2, p3 geometry.Point, t float64) (float64, float64) {
	u := 1 - t
	x := u*u*u*p0.X + 3*u*u*t*p1.X + 3*u*t*t*p2.X + t*t*t*p3.X
	y := u*u*u*p0.Y + 3*u*u*t*p1.Y + 3*u*t*t*p2.Y + t*t*t*p3.Y
	return x, y
}

func (c *canvas) node(n diagram.Node) {
	dc := c.dc
	r := n.Bounds()
	x, y := c.px(geometry.Point{X: r.X, Y: r.Y})
	w, h := r.W*c.opts.CharWidth, r.H*c.opts.CharHeight

	switch n.Kind {
	case diagram.KindStart, diagram.KindEnd:
		dc.DrawEllipse(x+w/2, y+h/2, w/2, h/2)
	case diagram.KindDecision:
		dc.MoveTo(x+w/2, y)
		dc.LineTo(x+w, y+h/2)
		dc.LineTo(x+w/2, y+h)
		dc.LineTo(x, y+h/2)
		dc.ClosePath()
	default:
		dc.DrawRoundedRectangle(x, y, w, h, 4)
	}
	dc.SetColor(color.White)
	dc.FillPreserve()
	dc.SetHexColor(n.Data.Color)
	dc.SetLineWidth(2)
	dc.Stroke()

	dc.SetColor(color.Black)
	dc.DrawStringAnchored(n.Data.Label, x+w/2, y+h/2, 0.5, 0.35)
}
