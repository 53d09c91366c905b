// Package tui is the terminal front end: a bubbletea program that turns
// keys and mouse events into editor session calls and draws the diagram
// as a character grid.
package tui

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/travisdwitt/flowcanvas/internal/config"
	"github.com/travisdwitt/flowcanvas/internal/diagram"
	"github.com/travisdwitt/flowcanvas/internal/editor"
	"github.com/travisdwitt/flowcanvas/internal/geometry"
	"github.com/travisdwitt/flowcanvas/internal/interaction"
	"github.com/travisdwitt/flowcanvas/internal/logging"
)

type Model struct {
	session *editor.Session
	cfg     *config.Config
	log     *slog.Logger
	keys    KeyMap
	help    help.Model
	styles  Styles
	clip    Clipboard

	width    int
	height   int
	cursorX  int
	cursorY  int
	zPanMode bool
	mode     Mode
	filename string

	fileOp            FileOperation
	fileInput         textinput.Model
	fileList          []string
	selectedFileIndex int
	pendingPath       string

	confirmAction ConfirmAction

	inputs []textinput.Model
	focus  int
	editID string

	copied *diagram.Node

	errorMessage   string
	successMessage string
}

type Option func(*Model)

func WithLogger(l *slog.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.log = l
		}
	}
}

// WithClipboard replaces the system clipboard.
func WithClipboard(c Clipboard) Option {
	return func(m *Model) {
		m.clip = c
	}
}

// WithFilename names the document the session was loaded from.
func WithFilename(name string) Option {
	return func(m *Model) {
		m.filename = name
	}
}

func New(s *editor.Session, cfg *config.Config, opts ...Option) Model {
	if cfg == nil {
		cfg = config.Default()
	}
	fi := textinput.New()
	fi.Prompt = "Filename: "
	fi.CharLimit = 200

	m := Model{
		session:           s,
		cfg:               cfg,
		log:               logging.NewNop(),
		keys:              DefaultKeyMap,
		help:              help.New(),
		styles:            stylesFor(s.Theme()),
		clip:              systemClipboard{},
		fileInput:         fi,
		selectedFileIndex: -1,
		inputs:            newPropertyInputs(),
	}
	m.help.ShowAll = true
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) canvasSize() (int, int) {
	return max(1, m.width-paletteWidth), max(1, m.height-1)
}

// cursorPoint is the centre of the cursor cell, where hits are tested.
func (m Model) cursorPoint() geometry.Point {
	return geometry.Point{X: float64(m.cursorX) + 0.5, Y: float64(m.cursorY) + 0.5}
}

// cursorCorner is the top-left of the cursor cell, where nodes are dropped.
func (m Model) cursorCorner() geometry.Point {
	return geometry.Point{X: float64(m.cursorX), Y: float64(m.cursorY)}
}

func (m *Model) ensureCursorInBounds() {
	w, h := m.canvasSize()
	m.cursorX = min(max(m.cursorX, 0), w-1)
	m.cursorY = min(max(m.cursorY, 0), h-1)
}

func (m *Model) clearMessages() {
	m.errorMessage = ""
	m.successMessage = ""
}

func (m *Model) fail(op string, err error) {
	m.log.Error(op, "error", err)
	m.errorMessage = err.Error()
	m.successMessage = ""
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		w, h := m.canvasSize()
		m.session.SetSize(float64(w), float64(h))
		m.help.Width = msg.Width
		m.ensureCursorInBounds()
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		switch m.mode {
		case ModeHelp:
			switch msg.String() {
			case "esc", "?", "q":
				m.mode = ModeNormal
			}
			return m, nil
		case ModeMove:
			return m.handleMoveKeys(msg)
		case ModeEdit:
			return m.handleEditKeys(msg)
		case ModeFileInput:
			return m.handleFileKeys(msg)
		case ModeConfirm:
			return m.handleConfirmKeys(msg)
		default:
			return m.handleNormalKeys(msg)
		}
	}
	return m, nil
}

func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := msg.String()
	switch {
	case key.Matches(msg, m.keys.Left, m.keys.Right, m.keys.Up, m.keys.Down):
		m.handleNavigation(k, moveSpeed(k))
		return m, nil

	case key.Matches(msg, m.keys.PanMode):
		m.zPanMode = !m.zPanMode
		return m, nil

	case key.Matches(msg, m.keys.Drop):
		m.zPanMode = false
		kind := diagram.Kinds[int(k[0]-'1')]
		if id := m.session.HandleDrop(interaction.DropEvent{Kind: kind, Screen: m.cursorCorner()}); id != "" {
			m.session.Select(diagram.NodeSelection(id))
		}
		m.clearMessages()
		return m, nil

	case key.Matches(msg, m.keys.Select):
		m.selectAtCursor()
		return m, nil

	case key.Matches(msg, m.keys.Move):
		m.zPanMode = false
		hit := m.session.HitTest(m.cursorPoint())
		if hit.Kind != diagram.HitNode && hit.Kind != diagram.HitHandle {
			return m, nil
		}
		m.session.HandlePointerDown(interaction.PointerEvent{
			Screen: m.cursorPoint(),
			Target: diagram.Hit{Kind: diagram.HitNode, ID: hit.ID},
		})
		m.mode = ModeMove
		return m, nil

	case key.Matches(msg, m.keys.Connect):
		m.zPanMode = false
		m.connectAtCursor()
		return m, nil

	case key.Matches(msg, m.keys.Edit):
		m.startEdit()
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if k == "d" {
			m.selectAtCursor()
		}
		sel := m.session.Selection()
		if sel.IsNone() {
			return m, nil
		}
		if m.cfg.Confirmations {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmDeleteNode
			if sel.Kind == diagram.SelectEdge {
				m.confirmAction = ConfirmDeleteEdge
			}
			return m, nil
		}
		m.session.HandleKey(interaction.KeyEvent{Key: interaction.KeyDelete})
		return m, nil

	case key.Matches(msg, m.keys.Undo):
		m.session.HandleKey(interaction.KeyEvent{Key: "z", Mods: interaction.Modifiers{Ctrl: true}})
		m.clearMessages()
		return m, nil

	case key.Matches(msg, m.keys.Redo):
		m.session.HandleKey(interaction.KeyEvent{Key: "y", Mods: interaction.Modifiers{Ctrl: true}})
		m.clearMessages()
		return m, nil

	case key.Matches(msg, m.keys.ZoomIn, m.keys.ZoomOut, m.keys.ZoomZero):
		m.session.HandleKey(interaction.KeyEvent{Key: k, Mods: interaction.Modifiers{Ctrl: true}})
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		m.copyAtCursor()
		return m, nil

	case key.Matches(msg, m.keys.Paste):
		m.paste()
		return m, nil

	case key.Matches(msg, m.keys.Save):
		m.startFileInput(FileOpSave)
		return m, nil

	case key.Matches(msg, m.keys.Open):
		m.startFileInput(FileOpOpen)
		return m, nil

	case key.Matches(msg, m.keys.PNG):
		m.startFileInput(FileOpSavePNG)
		return m, nil

	case key.Matches(msg, m.keys.Text):
		m.startFileInput(FileOpSaveText)
		return m, nil

	case key.Matches(msg, m.keys.Theme):
		m.styles = stylesFor(m.session.ToggleTheme())
		return m, nil

	case key.Matches(msg, m.keys.Clear):
		if len(m.session.Nodes()) == 0 {
			return m, nil
		}
		if m.cfg.Confirmations {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmClear
			return m, nil
		}
		m.session.Clear()
		return m, nil

	case key.Matches(msg, m.keys.Cancel):
		m.zPanMode = false
		m.session.HandleKey(interaction.KeyEvent{Key: interaction.KeyEscape})
		m.clearMessages()
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.mode = ModeHelp
		return m, nil

	case key.Matches(msg, m.keys.Quit):
		if m.cfg.Confirmations && len(m.session.Nodes()) > 0 {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmQuit
			return m, nil
		}
		return m, tea.Quit
	}
	return m, nil
}

// handleNavigation moves the cursor, or the view in pan mode. A connection
// in progress follows the cursor.
func (m *Model) handleNavigation(k string, speed int) {
	dx, dy := 0, 0
	switch k {
	case "h", "left", "H", "shift+left":
		dx = -speed
	case "l", "right", "L", "shift+right":
		dx = speed
	case "k", "up", "K", "shift+up":
		dy = -speed
	case "j", "down", "J", "shift+down":
		dy = speed
	}
	if m.zPanMode {
		m.session.PanBy(float64(-dx), float64(-dy))
		return
	}
	m.cursorX += dx
	m.cursorY += dy
	m.ensureCursorInBounds()
	if _, ok := m.session.State().(interaction.Connecting); ok {
		m.session.HandlePointerMove(interaction.PointerEvent{Screen: m.cursorPoint()})
	}
}

// selectAtCursor clicks the cursor cell: press and release in place.
func (m *Model) selectAtCursor() {
	if !m.idle() {
		return
	}
	p := m.cursorPoint()
	hit := m.session.HitTest(p)
	if hit.Kind == diagram.HitHandle {
		hit.Kind = diagram.HitNode
	}
	ev := interaction.PointerEvent{Screen: p, Target: hit}
	m.session.HandlePointerDown(ev)
	m.session.HandlePointerUp(ev)
}

func (m *Model) idle() bool {
	_, ok := m.session.State().(interaction.Idle)
	return ok
}

// connectAtCursor starts a connection from the node under the cursor, or
// finishes the one in progress on it.
func (m *Model) connectAtCursor() {
	p := m.cursorPoint()
	hit := m.session.HitTest(p)
	if c, ok := m.session.State().(interaction.Connecting); ok {
		before := len(m.session.Edges())
		m.session.HandlePointerUp(interaction.PointerEvent{Screen: p, Target: hit})
		if len(m.session.Edges()) == before && hit.ID == c.SourceID {
			m.errorMessage = "a node cannot connect to itself"
		}
		return
	}
	if hit.Kind != diagram.HitNode && hit.Kind != diagram.HitHandle {
		return
	}
	m.clearMessages()
	m.session.HandlePointerDown(interaction.PointerEvent{
		Screen: p,
		Target: diagram.Hit{Kind: diagram.HitHandle, ID: hit.ID},
	})
}

func (m Model) handleMoveKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := msg.String()
	switch {
	case key.Matches(msg, m.keys.Left, m.keys.Right, m.keys.Up, m.keys.Down):
		m.handleNavigation(k, moveSpeed(k))
		m.session.HandlePointerMove(interaction.PointerEvent{Screen: m.cursorPoint()})
	case k == "enter" || k == "esc" || k == "m":
		m.session.HandlePointerUp(interaction.PointerEvent{Screen: m.cursorPoint()})
		m.mode = ModeNormal
	}
	return m, nil
}

func (m Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.mode = ModeNormal
		switch m.confirmAction {
		case ConfirmDeleteNode, ConfirmDeleteEdge:
			m.session.HandleKey(interaction.KeyEvent{Key: interaction.KeyDelete})
		case ConfirmClear:
			m.session.Clear()
			m.cursorX, m.cursorY = 0, 0
		case ConfirmQuit:
			return m, tea.Quit
		case ConfirmOverwriteFile:
			m.save(m.pendingPath)
			m.pendingPath = ""
		}
		return m, nil
	case "n", "N", "esc":
		if m.confirmAction == ConfirmOverwriteFile {
			m.mode = ModeFileInput
			m.fileInput.Focus()
			return m, nil
		}
		m.mode = ModeNormal
	}
	return m, nil
}

func (m Model) confirmMessage() string {
	switch m.confirmAction {
	case ConfirmDeleteNode:
		return "Delete this node and its connections? (y/n)"
	case ConfirmDeleteEdge:
		return "Delete this connection? (y/n)"
	case ConfirmQuit:
		return "Quit flowcanvas? Unsaved changes will be lost. (y/n)"
	case ConfirmClear:
		return "Clear the canvas? (y/n)"
	case ConfirmOverwriteFile:
		return fmt.Sprintf("File %s already exists. Overwrite? (y/n)", m.pendingPath)
	}
	return ""
}

func (m Model) zoomPercent() int {
	return int(math.Round(m.session.Transform().Scale * 100))
}
