// Package interaction turns raw pointer, wheel, drop and key events into
// diagram and viewport mutations. It is an explicit state machine: Idle,
// PanningCanvas, DraggingNode and Connecting.
package interaction

import (
	"strings"

	"github.com/travisdwitt/flowcanvas/internal/diagram"
	"github.com/travisdwitt/flowcanvas/internal/geometry"
)

// Store is the part of the diagram store the machine drives.
type Store interface {
	Node(id string) (diagram.Node, bool)
	Selection() diagram.Selection
	AddNode(kind diagram.Kind, pos geometry.Point) string
	UpdateNode(id string, patch diagram.NodePatch)
	DeleteNode(id string)
	AddEdge(source, target string) string
	DeleteEdge(id string)
	Select(sel diagram.Selection)
	Begin()
	End() bool
}

// Viewport is the part of the viewport controller the machine drives.
type Viewport interface {
	Transform() geometry.Transform
	SetOffset(x, y float64)
	Wheel(deltaY float64, pointer geometry.Point)
	ZoomIn()
	ZoomOut()
	ResetZoom()
}

// Timeline performs undo and redo against the live diagram.
type Timeline interface {
	Undo()
	Redo()
}

type Machine struct {
	store    Store
	view     Viewport
	timeline Timeline
	state    State
}

func New(store Store, view Viewport, timeline Timeline) *Machine {
	return &Machine{store: store, view: view, timeline: timeline, state: Idle{}}
}

func (m *Machine) State() State { return m.state }

func (m *Machine) Idle() bool {
	_, ok := m.state.(Idle)
	return ok
}

func (m *Machine) world(screen geometry.Point) geometry.Point {
	return m.view.Transform().ScreenToWorld(screen)
}

// PointerDown starts a gesture. Presses that arrive mid-gesture are ignored.
func (m *Machine) PointerDown(ev PointerEvent) {
	if !m.Idle() {
		return
	}
	switch ev.Target.Kind {
	case diagram.HitBackground:
		m.store.Select(diagram.None())
		t := m.view.Transform()
		m.state = PanningCanvas{Press: ev.Screen, Origin: t.Offset()}
	case diagram.HitNode:
		n, ok := m.store.Node(ev.Target.ID)
		if !ok {
			return
		}
		m.store.Select(diagram.NodeSelection(n.ID))
		m.store.Begin()
		m.state = DraggingNode{NodeID: n.ID, Grab: m.world(ev.Screen).Sub(n.Position)}
	case diagram.HitHandle:
		if _, ok := m.store.Node(ev.Target.ID); !ok {
			return
		}
		m.state = Connecting{SourceID: ev.Target.ID, Guide: m.world(ev.Screen)}
	case diagram.HitEdge:
		m.store.Select(diagram.EdgeSelection(ev.Target.ID))
	}
}

func (m *Machine) PointerMove(ev PointerEvent) {
	switch s := m.state.(type) {
	case PanningCanvas:
		d := ev.Screen.Sub(s.Press)
		m.view.SetOffset(s.Origin.X+d.X, s.Origin.Y+d.Y)
	case DraggingNode:
		pos := m.world(ev.Screen).Sub(s.Grab).ClampNonNegative()
		m.store.UpdateNode(s.NodeID, diagram.NodePatch{Position: &pos})
	case Connecting:
		s.Guide = m.world(ev.Screen)
		m.state = s
	}
}

// PointerUp finishes the gesture in progress. A drag commits one history
// entry here; a connection is made only over a different node.
func (m *Machine) PointerUp(ev PointerEvent) {
	switch s := m.state.(type) {
	case DraggingNode:
		m.store.End()
	case Connecting:
		switch ev.Target.Kind {
		case diagram.HitHandle, diagram.HitNode:
			if ev.Target.ID != s.SourceID {
				m.store.AddEdge(s.SourceID, ev.Target.ID)
			}
		}
	}
	m.state = Idle{}
}

// Reset abandons any gesture. An open drag batch is closed first.
func (m *Machine) Reset() {
	if _, ok := m.state.(DraggingNode); ok {
		m.store.End()
	}
	m.state = Idle{}
}

// Cancel abandons a connection in progress. Other gestures end on release.
func (m *Machine) Cancel() {
	if _, ok := m.state.(Connecting); ok {
		m.state = Idle{}
	}
}

// Wheel zooms around the pointer. Scrolling mid-gesture is ignored.
func (m *Machine) Wheel(ev WheelEvent) {
	if !m.Idle() {
		return
	}
	m.view.Wheel(ev.DeltaY, ev.Screen)
}

// Drop adds a node of the dropped kind under the drop point, pinned to
// non-negative world coordinates.
func (m *Machine) Drop(ev DropEvent) string {
	if !m.Idle() || !ev.Kind.Valid() {
		return ""
	}
	return m.store.AddNode(ev.Kind, m.world(ev.Screen).ClampNonNegative())
}

// Key applies keyboard commands. Nothing happens while a text field has
// focus, so typing into the property editor never deletes nodes. Delete
// and Escape work with or without modifiers.
func (m *Machine) Key(ev KeyEvent) {
	if ev.TextInputFocused {
		return
	}
	switch ev.Key {
	case KeyDelete, KeyBackspace:
		sel := m.store.Selection()
		switch sel.Kind {
		case diagram.SelectNode:
			m.store.DeleteNode(sel.ID)
		case diagram.SelectEdge:
			m.store.DeleteEdge(sel.ID)
		}
		return
	case KeyEscape:
		m.store.Select(diagram.None())
		m.Cancel()
		return
	}
	if !ev.Mods.Ctrl && !ev.Mods.Meta {
		return
	}
	switch strings.ToLower(ev.Key) {
	case "z":
		if !m.Idle() {
			return
		}
		if ev.Mods.Shift {
			m.timeline.Redo()
		} else {
			m.timeline.Undo()
		}
	case "y":
		if m.Idle() {
			m.timeline.Redo()
		}
	case "=", "+":
		m.view.ZoomIn()
	case "-":
		m.view.ZoomOut()
	case "0":
		m.view.ResetZoom()
	}
}
