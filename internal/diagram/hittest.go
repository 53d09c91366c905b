package diagram

import "github.com/travisdwitt/flowcanvas/internal/geometry"

type HitKind int

const (
	HitBackground HitKind = iota
	HitNode
	HitHandle
	HitEdge
)

func (k HitKind) String() string {
	switch k {
	case HitNode:
		return "node"
	case HitHandle:
		return "handle"
	case HitEdge:
		return "edge"
	default:
		return "background"
	}
}

// Hit is what lies under a point: a node body, one of a node's connection
// handles, an edge, or the empty background.
type Hit struct {
	Kind HitKind
	ID   string
}

// HitTest resolves a world point. Later nodes are drawn on top, so they are
// tested first. tol is the pick radius in world units for handles and edges.
func (d Diagram) HitTest(p geometry.Point, tol float64) Hit {
	for i := len(d.Nodes) - 1; i >= 0; i-- {
		n := d.Nodes[i]
		for _, h := range n.Bounds().Handles() {
			if p.Sub(h).Len() <= tol {
				return Hit{Kind: HitHandle, ID: n.ID}
			}
		}
		if n.Bounds().Contains(p) {
			return Hit{Kind: HitNode, ID: n.ID}
		}
	}
	for i := len(d.Edges) - 1; i >= 0; i-- {
		from, to, ok := d.EdgeSegment(d.Edges[i])
		if ok && geometry.DistanceToSegment(from, to, p) <= tol {
			return Hit{Kind: HitEdge, ID: d.Edges[i].ID}
		}
	}
	return Hit{Kind: HitBackground}
}
