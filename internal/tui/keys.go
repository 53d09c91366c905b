package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the normal-mode keyboard shortcuts.
type KeyMap struct {
	Left     key.Binding
	Right    key.Binding
	Up       key.Binding
	Down     key.Binding
	PanMode  key.Binding
	Select   key.Binding
	Drop     key.Binding
	Move     key.Binding
	Connect  key.Binding
	Edit     key.Binding
	Delete   key.Binding
	Undo     key.Binding
	Redo     key.Binding
	ZoomIn   key.Binding
	ZoomOut  key.Binding
	ZoomZero key.Binding
	Copy     key.Binding
	Paste    key.Binding
	Save     key.Binding
	Open     key.Binding
	PNG      key.Binding
	Text     key.Binding
	Theme    key.Binding
	Clear    key.Binding
	Cancel   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var DefaultKeyMap = KeyMap{
	Left: key.NewBinding(
		key.WithKeys("h", "left", "H", "shift+left"),
		key.WithHelp("h/←", "left"),
	),
	Right: key.NewBinding(
		key.WithKeys("l", "right", "L", "shift+right"),
		key.WithHelp("l/→", "right"),
	),
	Up: key.NewBinding(
		key.WithKeys("k", "up", "K", "shift+up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down", "J", "shift+down"),
		key.WithHelp("j/↓", "down"),
	),
	PanMode: key.NewBinding(
		key.WithKeys("z"),
		key.WithHelp("z", "toggle pan mode"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "select under cursor"),
	),
	Drop: key.NewBinding(
		key.WithKeys("1", "2", "3", "4"),
		key.WithHelp("1-4", "add start/process/decision/end"),
	),
	Move: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "move node"),
	),
	Connect: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "start/finish connection"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit node"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d", "delete", "backspace"),
		key.WithHelp("d/del", "delete"),
	),
	Undo: key.NewBinding(
		key.WithKeys("u", "ctrl+z"),
		key.WithHelp("u", "undo"),
	),
	Redo: key.NewBinding(
		key.WithKeys("U", "ctrl+y"),
		key.WithHelp("U", "redo"),
	),
	ZoomIn: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "zoom in"),
	),
	ZoomOut: key.NewBinding(
		key.WithKeys("-"),
		key.WithHelp("-", "zoom out"),
	),
	ZoomZero: key.NewBinding(
		key.WithKeys("0"),
		key.WithHelp("0", "reset zoom"),
	),
	Copy: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "copy node"),
	),
	Paste: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "paste node"),
	),
	Save: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "save"),
	),
	Open: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "open"),
	),
	PNG: key.NewBinding(
		key.WithKeys("S"),
		key.WithHelp("S", "export png"),
	),
	Text: key.NewBinding(
		key.WithKeys("T"),
		key.WithHelp("T", "export text"),
	),
	Theme: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "toggle theme"),
	),
	Clear: key.NewBinding(
		key.WithKeys("C"),
		key.WithHelp("C", "clear canvas"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "clear selection/cancel"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Drop, k.Connect, k.Move, k.Undo, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down, k.PanMode, k.ZoomIn, k.ZoomOut, k.ZoomZero},
		{k.Select, k.Drop, k.Move, k.Connect, k.Edit, k.Delete, k.Copy, k.Paste},
		{k.Undo, k.Redo, k.Save, k.Open, k.PNG, k.Text},
		{k.Theme, k.Clear, k.Cancel, k.Help, k.Quit},
	}
}

// moveSpeed follows the shifted direction keys: twice as fast.
func moveSpeed(k string) int {
	switch k {
	case "H", "L", "K", "J", "shift+left", "shift+right", "shift+up", "shift+down":
		return 2
	default:
		return 1
	}
}
