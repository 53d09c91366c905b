package diagram

type SelectionKind int

const (
	SelectNone SelectionKind = iota
	SelectNode
	SelectEdge
)

// Selection references at most one node or one edge.
type Selection struct {
	Kind SelectionKind
	ID   string
}

func None() Selection { return Selection{} }
func NodeSelection(id string) Selection { return Selection{Kind: SelectNode, ID: id} }
func EdgeSelection(id string) Selection { return Selection{Kind: SelectEdge, ID: id} }

func (s Selection) IsNone() bool { return s.Kind == SelectNone }

// NodeID returns the selected node id, or "" when no node is selected.
func (s Selection) NodeID() string {
	if s.Kind == SelectNode {
		return s.ID
	}
	return ""
}

// EdgeID returns the selected edge id, or "" when no edge is selected.
func (s Selection) EdgeID() string {
	if s.Kind == SelectEdge {
		return s.ID
	}
	return ""
}
