package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/travisdwitt/flowcanvas/internal/diagram"
	"github.com/travisdwitt/flowcanvas/internal/geometry"
	"github.com/travisdwitt/flowcanvas/internal/interaction"
)

// paletteRow is the first palette row holding a node kind; kinds are two
// rows apart.
const paletteRow = 2

func paletteKindAt(y int) (diagram.Kind, bool) {
	if y < paletteRow || (y-paletteRow)%2 != 0 {
		return "", false
	}
	i := (y - paletteRow) / 2
	if i >= len(diagram.Kinds) {
		return "", false
	}
	return diagram.Kinds[i], true
}

// pointer builds a session event for a terminal cell, hit testing the
// cell centre.
func (m Model) pointer(x, y int) interaction.PointerEvent {
	p := geometry.Point{X: float64(x-paletteWidth) + 0.5, Y: float64(y) + 0.5}
	return interaction.PointerEvent{Screen: p, Target: m.session.HitTest(p)}
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.mode != ModeNormal {
		return m, nil
	}
	overCanvas := msg.X >= paletteWidth && msg.Y < m.height-1

	switch {
	case msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown:
		if !overCanvas {
			return m, nil
		}
		delta := -1.0
		if msg.Button == tea.MouseButtonWheelDown {
			delta = 1
		}
		m.session.HandleWheel(interaction.WheelEvent{DeltaY: delta, Screen: m.pointer(msg.X, msg.Y).Screen})

	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.zPanMode = false
		if !overCanvas {
			if kind, ok := paletteKindAt(msg.Y); ok {
				m.session.BeginPaletteDrag(kind)
			}
			return m, nil
		}
		m.cursorX, m.cursorY = msg.X-paletteWidth, msg.Y
		m.ensureCursorInBounds()
		m.clearMessages()
		m.session.HandlePointerDown(m.pointer(msg.X, msg.Y))

	case msg.Action == tea.MouseActionMotion:
		if _, dragging := m.session.DragPayload(); dragging {
			return m, nil
		}
		m.session.HandlePointerMove(m.pointer(msg.X, msg.Y))

	case msg.Action == tea.MouseActionRelease:
		if _, dragging := m.session.DragPayload(); dragging {
			if !overCanvas {
				m.session.CancelPaletteDrag()
				return m, nil
			}
			screen := geometry.Point{X: float64(msg.X - paletteWidth), Y: float64(msg.Y)}
			if id := m.session.EndPaletteDrag(screen); id != "" {
				m.session.Select(diagram.NodeSelection(id))
			}
			return m, nil
		}
		m.session.HandlePointerUp(m.pointer(msg.X, msg.Y))
	}
	return m, nil
}
