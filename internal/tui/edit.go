package tui

import (
	"fmt"
	"regexp"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/travisdwitt/flowcanvas/internal/diagram"
	"github.com/travisdwitt/flowcanvas/internal/interaction"
)

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

func newPropertyInputs() []textinput.Model {
	label := textinput.New()
	label.Prompt = "Label: "
	label.CharLimit = 60
	label.Width = 24

	desc := textinput.New()
	desc.Prompt = "Description: "
	desc.CharLimit = 200
	desc.Width = 30

	color := textinput.New()
	color.Prompt = "Color: "
	color.Placeholder = diagram.DefaultNodeColor
	color.CharLimit = 7
	color.Width = 8

	return []textinput.Model{label, desc, color}
}

// startEdit opens the property editor for the node under the cursor, or
// the selected node.
func (m *Model) startEdit() {
	if !m.idle() {
		return
	}
	id := ""
	if hit := m.session.HitTest(m.cursorPoint()); hit.Kind == diagram.HitNode || hit.Kind == diagram.HitHandle {
		id = hit.ID
	} else {
		id = m.session.Selection().NodeID()
	}
	n, ok := m.session.Node(id)
	if !ok {
		return
	}
	m.zPanMode = false
	m.session.Select(diagram.NodeSelection(id))
	m.editID = id
	m.inputs[fieldLabel].SetValue(n.Data.Label)
	m.inputs[fieldDescription].SetValue(n.Data.Description)
	m.inputs[fieldColor].SetValue(n.Data.Color)
	m.focus = fieldLabel
	for i := range m.inputs {
		m.inputs[i].Blur()
		m.inputs[i].CursorEnd()
	}
	m.inputs[m.focus].Focus()
	m.mode = ModeEdit
	m.clearMessages()
}

func (m Model) handleEditKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = ModeNormal
		m.editID = ""
		return m, nil
	case "tab", "shift+tab":
		m.inputs[m.focus].Blur()
		if msg.String() == "tab" {
			m.focus = (m.focus + 1) % len(m.inputs)
		} else {
			m.focus = (m.focus + len(m.inputs) - 1) % len(m.inputs)
		}
		return m, m.inputs[m.focus].Focus()
	case "enter":
		m.commitEdit()
		return m, nil
	}

	// Keys typed into a field still reach the session so its shortcuts can
	// see that a field has focus.
	m.session.HandleKey(keyEvent(msg, true))

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// commitEdit writes all three fields back as a single update.
func (m *Model) commitEdit() {
	n, ok := m.session.Node(m.editID)
	if !ok {
		m.mode = ModeNormal
		return
	}
	color := m.inputs[fieldColor].Value()
	if color == "" {
		color = diagram.DefaultNodeColor
	}
	if !hexColor.MatchString(color) {
		m.errorMessage = fmt.Sprintf("invalid color %q, want #rrggbb", color)
		return
	}
	data := n.Data
	data.Label = m.inputs[fieldLabel].Value()
	data.Description = m.inputs[fieldDescription].Value()
	data.Color = color
	m.session.UpdateNode(m.editID, diagram.NodePatch{Data: &data})
	m.mode = ModeNormal
	m.editID = ""
	m.clearMessages()
}

// keyEvent converts a terminal key to the session's key vocabulary.
func keyEvent(msg tea.KeyMsg, focused bool) interaction.KeyEvent {
	ev := interaction.KeyEvent{
		Key:              msg.String(),
		Mods:             interaction.Modifiers{Alt: msg.Alt},
		TextInputFocused: focused,
	}
	switch msg.Type {
	case tea.KeyDelete:
		ev.Key = interaction.KeyDelete
	case tea.KeyBackspace:
		ev.Key = interaction.KeyBackspace
	case tea.KeyEsc:
		ev.Key = interaction.KeyEscape
	case tea.KeyCtrlZ:
		ev.Key, ev.Mods.Ctrl = "z", true
	case tea.KeyCtrlY:
		ev.Key, ev.Mods.Ctrl = "y", true
	case tea.KeyRunes:
		ev.Key = string(msg.Runes)
	}
	return ev
}
