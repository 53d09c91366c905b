package diagram

import (
	"slices"
	"strings"

	"github.com/travisdwitt/flowcanvas/internal/geometry"
)

type Kind string

const (
	KindStart    Kind = "start"
	KindProcess  Kind = "process"
	KindDecision Kind = "decision"
	KindEnd      Kind = "end"
)

// Kinds lists every node kind in palette order.
var Kinds = []Kind{KindStart, KindProcess, KindDecision, KindEnd}

func (k Kind) Valid() bool {
	return slices.Contains(Kinds, k)
}

// DefaultLabel is the label a freshly added node of kind k receives.
func (k Kind) DefaultLabel() string {
	if k == "" {
		return "Node"
	}
	return strings.ToUpper(string(k[:1])) + string(k[1:]) + " Node"
}

const (
	DefaultNodeColor = "#1976d2"
	DefaultEdgeColor = "#424242"
)

// Size is the world-space extent of a node of kind k.
func Size(k Kind) (w, h float64) {
	switch k {
	case KindStart, KindEnd:
		return 12, 3
	case KindDecision:
		return 14, 5
	default:
		return 18, 5
	}
}

type NodeData struct {
	Label       string `yaml:"label"`
	Description string `yaml:"description,omitempty"`
	Color       string `yaml:"color"`
}

type Node struct {
	ID       string         `yaml:"id"`
	Kind     Kind           `yaml:"kind"`
	Position geometry.Point `yaml:"position"`
	Data     NodeData       `yaml:"data"`
}

// Bounds is the node's rectangle in world coordinates.
func (n Node) Bounds() geometry.Rect {
	w, h := Size(n.Kind)
	return geometry.Rect{X: n.Position.X, Y: n.Position.Y, W: w, H: h}
}

type EdgeData struct {
	Label string `yaml:"label,omitempty"`
	Color string `yaml:"color"`
}

type Edge struct {
	ID     string   `yaml:"id"`
	Source string   `yaml:"source"`
	Target string   `yaml:"target"`
	Data   EdgeData `yaml:"data"`
}

// NodePatch carries the fields UpdateNode merges into a node. Data replaces
// the whole bundle; Label, Description and Color override single fields
// and are applied after Data.
type NodePatch struct {
	Kind        *Kind
	Position    *geometry.Point
	Data        *NodeData
	Label       *string
	Description *string
	Color       *string
}

func (p NodePatch) apply(n Node) Node {
	if p.Kind != nil && p.Kind.Valid() {
		n.Kind = *p.Kind
	}
	if p.Position != nil {
		n.Position = *p.Position
	}
	if p.Data != nil {
		n.Data = *p.Data
	}
	if p.Label != nil {
		n.Data.Label = *p.Label
	}
	if p.Description != nil {
		n.Data.Description = *p.Description
	}
	if p.Color != nil {
		n.Data.Color = *p.Color
	}
	return n
}

type EdgePatch struct {
	Data  *EdgeData
	Label *string
	Color *string
}

func (p EdgePatch) apply(e Edge) Edge {
	if p.Data != nil {
		e.Data = *p.Data
	}
	if p.Label != nil {
		e.Data.Label = *p.Label
	}
	if p.Color != nil {
		e.Data.Color = *p.Color
	}
	return e
}

// Diagram is a value snapshot of the graph. Nodes and edges are kept in
// insertion order, which is also the drawing order.
type Diagram struct {
	Nodes []Node `yaml:"nodes"`
	Edges []Edge `yaml:"edges"`
}

// Clone returns a copy that shares no backing arrays with d.
func (d Diagram) Clone() Diagram {
	return Diagram{Nodes: slices.Clone(d.Nodes), Edges: slices.Clone(d.Edges)}
}

// Equal reports whether two snapshots hold the same content.
func (d Diagram) Equal(o Diagram) bool {
	return slices.Equal(d.Nodes, o.Nodes) && slices.Equal(d.Edges, o.Edges)
}

func (d Diagram) Empty() bool {
	return len(d.Nodes) == 0 && len(d.Edges) == 0
}

func (d Diagram) nodeIndex(id string) int {
	return slices.IndexFunc(d.Nodes, func(n Node) bool { return n.ID == id })
}

func (d Diagram) edgeIndex(id string) int {
	return slices.IndexFunc(d.Edges, func(e Edge) bool { return e.ID == id })
}

// Node looks up a node by id.
func (d Diagram) Node(id string) (Node, bool) {
	if i := d.nodeIndex(id); i >= 0 {
		return d.Nodes[i], true
	}
	return Node{}, false
}

// Edge looks up an edge by id.
func (d Diagram) Edge(id string) (Edge, bool) {
	if i := d.edgeIndex(id); i >= 0 {
		return d.Edges[i], true
	}
	return Edge{}, false
}

// Bounds is the union of every node rectangle. ok is false for a diagram
// without nodes.
func (d Diagram) Bounds() (r geometry.Rect, ok bool) {
	for i, n := range d.Nodes {
		if i == 0 {
			r = n.Bounds()
			continue
		}
		r = r.Union(n.Bounds())
	}
	return r, len(d.Nodes) > 0
}

// EdgeSegment returns the endpoints an edge is drawn between.
func (d Diagram) EdgeSegment(e Edge) (from, to geometry.Point, ok bool) {
	src, ok1 := d.Node(e.Source)
	dst, ok2 := d.Node(e.Target)
	if !ok1 || !ok2 {
		return from, to, false
	}
	from, to = geometry.ConnectionPoints(src.Bounds(), dst.Bounds())
	return from, to, true
}
