// Package diagram owns the authoritative node/edge graph and the current
// selection. Every structural mutation is a commit point that hands a
// snapshot of the post-mutation graph to a Recorder.
package diagram

import (
	"github.com/google/uuid"
	"github.com/travisdwitt/flowcanvas/internal/geometry"
)

// Recorder receives a snapshot after every committed mutation.
type Recorder interface {
	Record(Diagram)
}

type RecorderFunc func(Diagram)

func (f RecorderFunc) Record(d Diagram) { f(d) }

// Store is not safe for concurrent use. The editor drives it from a single
// event loop.
type Store struct {
	diagram   Diagram
	selection Selection
	recorder  Recorder
	newID     func(prefix string) string

	batch int
	dirty bool
}

type Option func(*Store)

// WithRecorder sets where commits are reported.
func WithRecorder(r Recorder) Option {
	return func(s *Store) {
		s.recorder = r
	}
}

// WithIDGenerator replaces the uuid based id generator.
func WithIDGenerator(fn func(prefix string) string) Option {
	return func(s *Store) {
		s.newID = fn
	}
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		newID: func(prefix string) string { return prefix + "_" + uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Nodes() []Node { return s.Snapshot().Nodes }
func (s *Store) Edges() []Edge { return s.Snapshot().Edges }
func (s *Store) Selection() Selection { return s.selection }
func (s *Store) Node(id string) (Node, bool) { return s.diagram.Node(id) }
func (s *Store) Edge(id string) (Edge, bool) { return s.diagram.Edge(id) }

// Snapshot returns a copy of the live diagram.
func (s *Store) Snapshot() Diagram {
	return s.diagram.Clone()
}

// commit records the current state, or defers it while a batch is open.
func (s *Store) commit() {
	if s.batch > 0 {
		s.dirty = true
		return
	}
	if s.recorder != nil {
		s.recorder.Record(s.diagram.Clone())
	}
}

// Begin opens a batch: commits made until the matching End collapse into
// a single history entry.
func (s *Store) Begin() {
	s.batch++
}

// End closes a batch. It reports whether an entry was recorded.
func (s *Store) End() bool {
	if s.batch == 0 {
		return false
	}
	s.batch--
	if s.batch > 0 || !s.dirty {
		return false
	}
	s.dirty = false
	s.commit()
	return true
}

func (s *Store) InBatch() bool { return s.batch > 0 }

func (s *Store) AddNode(kind Kind, pos geometry.Point) string {
	if !kind.Valid() {
		kind = KindProcess
	}
	n := Node{
		ID:       s.newID("node"),
		Kind:     kind,
		Position: pos,
		Data: NodeData{
			Label: kind.DefaultLabel(),
			Color: DefaultNodeColor,
		},
	}
	s.diagram.Nodes = append(s.diagram.Nodes, n)
	s.commit()
	return n.ID
}

// InsertNode adds a fully formed node under a fresh id, e.g. a pasted copy.
func (s *Store) InsertNode(n Node) string {
	if !n.Kind.Valid() {
		n.Kind = KindProcess
	}
	n.ID = s.newID("node")
	s.diagram.Nodes = append(s.diagram.Nodes, n)
	s.commit()
	return n.ID
}

// UpdateNode merges patch into the node. Unknown ids are ignored because UI
// callbacks can race with deletions.
func (s *Store) UpdateNode(id string, patch NodePatch) {
	i := s.diagram.nodeIndex(id)
	if i < 0 {
		return
	}
	next := patch.apply(s.diagram.Nodes[i])
	if next == s.diagram.Nodes[i] {
		return
	}
	s.diagram.Nodes[i] = next
	s.commit()
}

// DeleteNode removes the node and every edge touching it in one commit.
func (s *Store) DeleteNode(id string) {
	i := s.diagram.nodeIndex(id)
	if i < 0 {
		return
	}
	s.diagram.Nodes = append(s.diagram.Nodes[:i:i], s.diagram.Nodes[i+1:]...)

	kept := make([]Edge, 0, len(s.diagram.Edges))
	for _, e := range s.diagram.Edges {
		if e.Source == id || e.Target == id {
			if s.selection.EdgeID() == e.ID {
				s.selection = None()
			}
			continue
		}
		kept = append(kept, e)
	}
	s.diagram.Edges = kept

	if s.selection.NodeID() == id {
		s.selection = None()
	}
	s.commit()
}

// AddEdge connects two existing, distinct nodes. It returns "" and changes
// nothing for self connections or unknown endpoints.
func (s *Store) AddEdge(source, target string) string {
	if source == target {
		return ""
	}
	if s.diagram.nodeIndex(source) < 0 || s.diagram.nodeIndex(target) < 0 {
		return ""
	}
	e := Edge{
		ID:     s.newID("edge"),
		Source: source,
		Target: target,
		Data:   EdgeData{Color: DefaultEdgeColor},
	}
	s.diagram.Edges = append(s.diagram.Edges, e)
	s.commit()
	return e.ID
}

func (s *Store) UpdateEdge(id string, patch EdgePatch) {
	i := s.diagram.edgeIndex(id)
	if i < 0 {
		return
	}
	next := patch.apply(s.diagram.Edges[i])
	if next == s.diagram.Edges[i] {
		return
	}
	s.diagram.Edges[i] = next
	s.commit()
}

func (s *Store) DeleteEdge(id string) {
	i := s.diagram.edgeIndex(id)
	if i < 0 {
		return
	}
	s.diagram.Edges = append(s.diagram.Edges[:i:i], s.diagram.Edges[i+1:]...)
	if s.selection.EdgeID() == id {
		s.selection = None()
	}
	s.commit()
}

// Select sets the single selection. Selecting an element that does not
// exist clears the selection.
func (s *Store) Select(sel Selection) {
	switch sel.Kind {
	case SelectNode:
		if _, ok := s.diagram.Node(sel.ID); !ok {
			sel = None()
		}
	case SelectEdge:
		if _, ok := s.diagram.Edge(sel.ID); !ok {
			sel = None()
		}
	default:
		sel = None()
	}
	s.selection = sel
}

func (s *Store) Clear() {
	s.selection = None()
	if s.diagram.Empty() {
		return
	}
	s.diagram = Diagram{}
	s.commit()
}

// Restore swaps in a snapshot without recording it and clears the
// selection. Undo, redo and file loading go through here.
func (s *Store) Restore(d Diagram) {
	s.diagram = d.Clone()
	s.selection = None()
}
