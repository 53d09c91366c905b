package interaction

import "github.com/travisdwitt/flowcanvas/internal/geometry"

// State is the gesture currently in progress. The concrete types below are
// the only implementations.
type State interface {
	Name() string
	state()
}

// Idle waits for the next gesture.
type Idle struct{}

// PanningCanvas drags the viewport. Press is the screen point of the
// pointer-down, Origin the viewport offset at that moment.
type PanningCanvas struct {
	Press  geometry.Point
	Origin geometry.Point
}

// DraggingNode moves a node. Grab is the pointer position relative to the
// node's top-left corner, in world units, so the node does not jump.
type DraggingNode struct {
	NodeID string
	Grab   geometry.Point
}

// Connecting is the first half of drag-to-connect. Guide is the world
// point the provisional line is drawn to; it is never stored.
type Connecting struct {
	SourceID string
	Guide    geometry.Point
}

func (Idle) Name() string          { return "idle" }
func (PanningCanvas) Name() string { return "panning" }
func (DraggingNode) Name() string  { return "dragging" }
func (Connecting) Name() string    { return "connecting" }

func (Idle) state()          {}
func (PanningCanvas) state() {}
func (DraggingNode) state()  {}
func (Connecting) state()    {}
