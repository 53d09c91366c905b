package diagram

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travisdwitt/flowcanvas/internal/geometry"
)

type recorder struct {
	entries []Diagram
}

func (r *recorder) Record(d Diagram) { r.entries = append(r.entries, d) }

func sequentialIDs() func(string) string {
	n := 0
	return func(prefix string) string {
		n++
		return fmt.Sprintf("%s_%d", prefix, n)
	}
}

func newTestStore() (*Store, *recorder) {
	rec := &recorder{}
	return NewStore(WithRecorder(rec), WithIDGenerator(sequentialIDs())), rec
}

func TestAddNodeDefaults(t *testing.T) {
	s, rec := newTestStore()

	id := s.AddNode(KindProcess, geometry.Point{X: 3, Y: 4})

	n, ok := s.Node(id)
	require.True(t, ok)
	assert.Equal(t, KindProcess, n.Kind)
	assert.Equal(t, "Process Node", n.Data.Label)
	assert.Equal(t, "", n.Data.Description)
	assert.Equal(t, DefaultNodeColor, n.Data.Color)
	assert.Equal(t, geometry.Point{X: 3, Y: 4}, n.Position)
	assert.Len(t, rec.entries, 1)
}

func TestAddNodeUsesUUIDsByDefault(t *testing.T) {
	s := NewStore()
	a := s.AddNode(KindStart, geometry.Point{})
	b := s.AddNode(KindStart, geometry.Point{})
	assert.NotEqual(t, a, b)
	assert.Regexp(t, `^node_[0-9a-f-]{36}$`, a)
}

func TestUpdateNodeMerge(t *testing.T) {
	s, rec := newTestStore()
	id := s.AddNode(KindDecision, geometry.Point{})

	label := "Ready?"
	s.UpdateNode(id, NodePatch{Label: &label})
	n, _ := s.Node(id)
	assert.Equal(t, "Ready?", n.Data.Label)
	assert.Equal(t, DefaultNodeColor, n.Data.Color)

	color := "#ff0000"
	s.UpdateNode(id, NodePatch{
		Data:  &NodeData{Label: "Bundle", Description: "whole"},
		Color: &color,
	})
	n, _ = s.Node(id)
	assert.Equal(t, NodeData{Label: "Bundle", Description: "whole", Color: "#ff0000"}, n.Data)
	assert.Len(t, rec.entries, 3)
}

func TestUpdateNodeIgnoresMissingAndUnchanged(t *testing.T) {
	s, rec := newTestStore()
	id := s.AddNode(KindStart, geometry.Point{})

	label := "x"
	s.UpdateNode("node_missing", NodePatch{Label: &label})
	same := "Start Node"
	s.UpdateNode(id, NodePatch{Label: &same})

	assert.Len(t, rec.entries, 1)
}

func TestDeleteNodeRemovesIncidentEdges(t *testing.T) {
	s, rec := newTestStore()
	a := s.AddNode(KindStart, geometry.Point{})
	b := s.AddNode(KindProcess, geometry.Point{X: 30})
	c := s.AddNode(KindEnd, geometry.Point{X: 60})
	ab := s.AddEdge(a, b)
	bc := s.AddEdge(b, c)
	ca := s.AddEdge(c, a)
	s.Select(EdgeSelection(ab))
	commits := len(rec.entries)

	s.DeleteNode(a)

	assert.Len(t, s.Nodes(), 2)
	edges := s.Edges()
	require.Len(t, edges, 1)
	assert.Equal(t, bc, edges[0].ID)
	assert.NotEqual(t, ca, edges[0].ID)
	assert.True(t, s.Selection().IsNone(), "selected incident edge must be cleared")
	assert.Len(t, rec.entries, commits+1, "node and edge removal is one commit")
	assert.Len(t, rec.entries[len(rec.entries)-1].Edges, 1)
}

func TestAddEdgeRejectsSelfAndDangling(t *testing.T) {
	s, rec := newTestStore()
	a := s.AddNode(KindStart, geometry.Point{})

	assert.Equal(t, "", s.AddEdge(a, a))
	assert.Equal(t, "", s.AddEdge(a, "node_missing"))
	assert.Empty(t, s.Edges())
	assert.Len(t, s.Nodes(), 1)
	assert.Len(t, rec.entries, 1)
}

func TestSelectionIsExclusive(t *testing.T) {
	s, _ := newTestStore()
	a := s.AddNode(KindStart, geometry.Point{})
	b := s.AddNode(KindEnd, geometry.Point{X: 40})
	e := s.AddEdge(a, b)

	s.Select(NodeSelection(a))
	assert.Equal(t, a, s.Selection().NodeID())
	assert.Equal(t, "", s.Selection().EdgeID())

	s.Select(EdgeSelection(e))
	assert.Equal(t, "", s.Selection().NodeID())
	assert.Equal(t, e, s.Selection().EdgeID())

	s.DeleteEdge(e)
	assert.True(t, s.Selection().IsNone())

	s.Select(NodeSelection("node_missing"))
	assert.True(t, s.Selection().IsNone())
}

func TestClear(t *testing.T) {
	s, rec := newTestStore()
	s.Clear()
	assert.Empty(t, rec.entries, "clearing an empty diagram commits nothing")

	a := s.AddNode(KindStart, geometry.Point{})
	s.Select(NodeSelection(a))
	s.Clear()
	assert.Empty(t, s.Nodes())
	assert.True(t, s.Selection().IsNone())
	assert.Len(t, rec.entries, 2)
}

func TestBatchCoalescesCommits(t *testing.T) {
	s, rec := newTestStore()
	id := s.AddNode(KindProcess, geometry.Point{})

	s.Begin()
	for i := 1; i <= 5; i++ {
		p := geometry.Point{X: float64(i), Y: float64(i)}
		s.UpdateNode(id, NodePatch{Position: &p})
	}
	assert.Len(t, rec.entries, 1)
	assert.True(t, s.End())
	require.Len(t, rec.entries, 2)
	assert.Equal(t, geometry.Point{X: 5, Y: 5}, rec.entries[1].Nodes[0].Position)

	s.Begin()
	assert.False(t, s.End(), "empty batch records nothing")
	assert.False(t, s.End(), "unbalanced End is ignored")
}

func TestSnapshotsAreIndependent(t *testing.T) {
	s, rec := newTestStore()
	id := s.AddNode(KindProcess, geometry.Point{})
	label := "changed"
	s.UpdateNode(id, NodePatch{Label: &label})

	assert.Equal(t, "Process Node", rec.entries[0].Nodes[0].Data.Label)
	snap := s.Snapshot()
	snap.Nodes[0].Data.Label = "mutated"
	n, _ := s.Node(id)
	assert.Equal(t, "changed", n.Data.Label)
}

func TestReferentialIntegrityUnderRandomOps(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	s, _ := newTestStore()

	for i := 0; i < 500; i++ {
		nodes := s.Nodes()
		switch op := rng.Intn(3); {
		case op == 0 || len(nodes) < 2:
			s.AddNode(Kinds[rng.Intn(len(Kinds))], geometry.Point{X: float64(rng.Intn(100))})
		case op == 1:
			s.AddEdge(nodes[rng.Intn(len(nodes))].ID, nodes[rng.Intn(len(nodes))].ID)
		default:
			victim := nodes[rng.Intn(len(nodes))].ID
			incident := 0
			for _, e := range s.Edges() {
				if e.Source == victim || e.Target == victim {
					incident++
				}
			}
			before := len(s.Edges())
			s.DeleteNode(victim)
			assert.Equal(t, before-incident, len(s.Edges()))
		}

		ids := map[string]bool{}
		for _, n := range s.Nodes() {
			ids[n.ID] = true
		}
		for _, e := range s.Edges() {
			require.True(t, ids[e.Source], "dangling source %s", e.Source)
			require.True(t, ids[e.Target], "dangling target %s", e.Target)
			require.NotEqual(t, e.Source, e.Target)
		}
	}
}

func TestHitTest(t *testing.T) {
	s, _ := newTestStore()
	a := s.AddNode(KindProcess, geometry.Point{X: 0, Y: 0})
	b := s.AddNode(KindProcess, geometry.Point{X: 40, Y: 0})
	e := s.AddEdge(a, b)
	d := s.Snapshot()

	assert.Equal(t, Hit{Kind: HitNode, ID: a}, d.HitTest(geometry.Point{X: 4, Y: 1}, 1))
	assert.Equal(t, Hit{Kind: HitHandle, ID: a}, d.HitTest(geometry.Point{X: 9, Y: 0}, 1))
	assert.Equal(t, Hit{Kind: HitEdge, ID: e}, d.HitTest(geometry.Point{X: 29, Y: 2.5}, 1))
	assert.Equal(t, Hit{Kind: HitBackground}, d.HitTest(geometry.Point{X: 29, Y: 20}, 1))
	assert.Equal(t, "handle", HitHandle.String())
}

func TestKindDefaults(t *testing.T) {
	assert.Equal(t, "Start Node", KindStart.DefaultLabel())
	assert.Equal(t, "Decision Node", KindDecision.DefaultLabel())
	assert.False(t, Kind("triangle").Valid())
	w, h := Size(KindStart)
	assert.Equal(t, 12.0, w)
	assert.Equal(t, 3.0, h)
}
