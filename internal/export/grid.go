package export

import (
	"math"
	"strings"

	"github.com/travisdwitt/flowcanvas/internal/diagram"
	"github.com/travisdwitt/flowcanvas/internal/geometry"
)

// Role tags what was drawn into a cell so callers can colour it.
type Role uint8

const (
	RoleEmpty Role = iota
	RoleEdge
	RoleEdgeSelected
	RoleArrow
	RoleNode
	RoleNodeSelected
	RoleLabel
	RoleHandle
	RoleGuide
)

// Grid is a character rendering of a diagram through a transform, one rune
// per screen cell.
type Grid struct {
	Width  int
	Height int
	Cells  [][]rune
	Roles  [][]Role
	// Colors holds the node or edge colour of a cell, "" for none.
	Colors [][]string
}

// GridOptions decorate a render with editor state.
type GridOptions struct {
	Selection diagram.Selection
	// Guide draws the provisional connection line from the node GuideFrom
	// to the world point GuideTo.
	GuideFrom string
	GuideTo   geometry.Point
}

func NewGrid(width, height int) *Grid {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	g := &Grid{Width: width, Height: height}
	g.Cells = make([][]rune, height)
	g.Roles = make([][]Role, height)
	g.Colors = make([][]string, height)
	for y := range g.Cells {
		g.Cells[y] = make([]rune, width)
		g.Roles[y] = make([]Role, width)
		g.Colors[y] = make([]string, width)
		for x := range g.Cells[y] {
			g.Cells[y][x] = ' '
		}
	}
	return g
}

func (g *Grid) set(x, y int, r rune, role Role, color string) {
	if x < 0 || y < 0 || y >= g.Height || x >= g.Width {
		return
	}
	g.Cells[y][x] = r
	g.Roles[y][x] = role
	g.Colors[y][x] = color
}

// Lines returns the rows of the grid with trailing spaces removed.
func (g *Grid) Lines() []string {
	out := make([]string, g.Height)
	for y, row := range g.Cells {
		out[y] = strings.TrimRight(string(row), " ")
	}
	return out
}

func (g *Grid) String() string {
	return strings.Join(g.Lines(), "\n")
}

// Render draws d as seen through t into a width x height grid. Edges go
// first so boxes appear on top of them.
func Render(d diagram.Diagram, t geometry.Transform, width, height int, opts GridOptions) *Grid {
	g := NewGrid(width, height)

	for _, e := range d.Edges {
		from, to, ok := d.EdgeSegment(e)
		if !ok {
			continue
		}
		role := RoleEdge
		if opts.Selection.EdgeID() == e.ID {
			role = RoleEdgeSelected
		}
		a, b := t.WorldToScreen(from), t.WorldToScreen(to)
		g.line(a, b, role, e.Data.Color, 0)
		g.arrow(a, b, e.Data.Color)
		if e.Data.Label != "" {
			mid := geometry.Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
			g.text(cell(mid.X)-len([]rune(e.Data.Label))/2, cell(mid.Y)-1, e.Data.Label, RoleLabel, e.Data.Color)
		}
	}

	for _, n := range d.Nodes {
		g.node(n, t, opts.Selection.NodeID() == n.ID)
	}

	if n, ok := d.Node(opts.Selection.NodeID()); ok {
		x0, y0, x1, y1 := box(n, t)
		mx, my := (x0+x1)/2, (y0+y1)/2
		for _, h := range [][2]int{{mx, y0}, {x1, my}, {mx, y1}, {x0, my}} {
			g.set(h[0], h[1], 'o', RoleHandle, n.Data.Color)
		}
	}

	if src, ok := d.Node(opts.GuideFrom); ok {
		to := opts.GuideTo
		from, _ := geometry.ConnectionPoints(src.Bounds(), geometry.Rect{X: to.X, Y: to.Y})
		g.line(t.WorldToScreen(from), t.WorldToScreen(to), RoleGuide, "", '.')
	}
	return g
}

func cell(v float64) int { return int(math.Floor(v)) }

// box returns the inclusive cell range a node covers on screen. A node
// always covers at least one cell.
func box(n diagram.Node, t geometry.Transform) (x0, y0, x1, y1 int) {
	r := n.Bounds()
	tl := t.WorldToScreen(geometry.Point{X: r.X, Y: r.Y})
	br := t.WorldToScreen(geometry.Point{X: r.X + r.W, Y: r.Y + r.H})
	x0, y0 = cell(tl.X), cell(tl.Y)
	x1, y1 = cell(br.X)-1, cell(br.Y)-1
	return x0, y0, max(x0, x1), max(y0, y1)
}

type boxStyle struct {
	tl, tr, bl, br rune
	h, left, right rune
}

var boxStyles = map[diagram.Kind]boxStyle{
	diagram.KindStart:    {tl: '.', tr: '.', bl: '\'', br: '\'', h: '-', left: '(', right: ')'},
	diagram.KindEnd:      {tl: '.', tr: '.', bl: '\'', br: '\'', h: '=', left: '(', right: ')'},
	diagram.KindDecision: {tl: '/', tr: '\\', bl: '\\', br: '/', h: '-', left: '<', right: '>'},
	diagram.KindProcess:  {tl: '+', tr: '+', bl: '+', br: '+', h: '-', left: '|', right: '|'},
}

var selectedStyle = boxStyle{tl: '#', tr: '#', bl: '#', br: '#', h: '#', left: '#', right: '#'}

func (g *Grid) node(n diagram.Node, t geometry.Transform, selected bool) {
	x0, y0, x1, y1 := box(n, t)

	role := RoleNode
	st, ok := boxStyles[n.Kind]
	if !ok {
		st = boxStyles[diagram.KindProcess]
	}
	if selected {
		role = RoleNodeSelected
		st = selectedStyle
	}
	color := n.Data.Color

	if x1-x0 < 1 || y1-y0 < 1 {
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				g.set(x, y, '*', role, color)
			}
		}
		return
	}

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			var ch rune
			switch {
			case y == y0 && x == x0:
				ch = st.tl
			case y == y0 && x == x1:
				ch = st.tr
			case y == y1 && x == x0:
				ch = st.bl
			case y == y1 && x == x1:
				ch = st.br
			case y == y0 || y == y1:
				ch = st.h
			case x == x0:
				ch = st.left
			case x == x1:
				ch = st.right
			default:
				ch = ' '
			}
			if ch == ' ' {
				g.set(x, y, ch, RoleEmpty, "")
			} else {
				g.set(x, y, ch, role, color)
			}
		}
	}

	inner := x1 - x0 - 1
	if y1-y0 < 2 || inner < 1 {
		return
	}
	label := []rune(n.Data.Label)
	if len(label) > inner {
		label = label[:inner]
	}
	g.text(x0+1+(inner-len(label))/2, (y0+y1)/2, string(label), RoleLabel, color)
}

func (g *Grid) text(x, y int, s string, role Role, color string) {
	for i, r := range []rune(s) {
		g.set(x+i, y, r, role, color)
	}
}

// line walks from a to b one cell at a time. A zero glyph picks a slope
// character per step.
func (g *Grid) line(a, b geometry.Point, role Role, color string, glyph rune) {
	d := b.Sub(a)
	steps := int(math.Ceil(math.Max(math.Abs(d.X), math.Abs(d.Y))))
	if steps == 0 {
		return
	}
	ch := glyph
	if ch == 0 {
		ch = slopeRune(d)
	}
	for i := 0; i <= steps; i++ {
		f := float64(i) / float64(steps)
		g.set(cell(a.X+d.X*f), cell(a.Y+d.Y*f), ch, role, color)
	}
}

func slopeRune(d geometry.Point) rune {
	ax, ay := math.Abs(d.X), math.Abs(d.Y)
	switch {
	case ay*2 <= ax:
		return '-'
	case ax*2 <= ay:
		return '|'
	case (d.X > 0) == (d.Y > 0):
		return '\\'
	default:
		return '/'
	}
}

// arrow puts a head in the cell just outside the target border, pointing
// from a to b.
func (g *Grid) arrow(a, b geometry.Point, color string) {
	p, angle := geometry.ArrowPlacement(a, b, 0.5)
	g.set(cell(p.X), cell(p.Y), arrowRune(angle), RoleArrow, color)
}

// arrowRune maps a heading in degrees (y grows downwards) to a glyph.
func arrowRune(angle float64) rune {
	switch {
	case angle > -45 && angle <= 45:
		return '>'
	case angle > 45 && angle <= 135:
		return 'v'
	case angle > -135 && angle <= -45:
		return '^'
	default:
		return '<'
	}
}
