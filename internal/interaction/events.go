package interaction

import (
	"github.com/travisdwitt/flowcanvas/internal/diagram"
	"github.com/travisdwitt/flowcanvas/internal/geometry"
)

// PointerEvent is a press, move or release at a screen point over Target.
type PointerEvent struct {
	Screen geometry.Point
	Target diagram.Hit
}

// WheelEvent is one scroll tick at a screen point.
type WheelEvent struct {
	DeltaY float64
	Screen geometry.Point
}

// DropEvent carries a node kind dragged out of the palette.
type DropEvent struct {
	Kind   diagram.Kind
	Screen geometry.Point
}

type Modifiers struct {
	Ctrl  bool
	Shift bool
	Alt   bool
	Meta  bool
}

// KeyEvent is a key press. Key uses the names "Delete", "Backspace",
// "Escape" for special keys and the character itself otherwise.
type KeyEvent struct {
	Key              string
	Mods             Modifiers
	TextInputFocused bool
}

const (
	KeyDelete    = "Delete"
	KeyBackspace = "Backspace"
	KeyEscape    = "Escape"
)
