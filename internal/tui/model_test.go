package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travisdwitt/flowcanvas/internal/config"
	"github.com/travisdwitt/flowcanvas/internal/diagram"
	"github.com/travisdwitt/flowcanvas/internal/editor"
	"github.com/travisdwitt/flowcanvas/internal/geometry"
	"github.com/travisdwitt/flowcanvas/internal/interaction"
)

type fakeClipboard struct {
	text string
}

func (c *fakeClipboard) ReadAll() (string, error) { return c.text, nil }

func (c *fakeClipboard) WriteAll(text string) error {
	c.text = text
	return nil
}

func newTestModel(t *testing.T, cfg *config.Config) (Model, *fakeClipboard) {
	t.Helper()
	n := 0
	s := editor.New(editor.WithIDGenerator(func(prefix string) string {
		n++
		return fmt.Sprintf("%s_%d", prefix, n)
	}))
	if cfg == nil {
		cfg = config.Default()
		cfg.Confirmations = false
		cfg.SaveDirectory = t.TempDir()
	}
	clip := &fakeClipboard{}
	m := New(s, cfg, WithClipboard(clip))
	return send(m, tea.WindowSizeMsg{Width: paletteWidth + 80, Height: 25}), clip
}

func send(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func at(m Model, x, y int) Model {
	m.cursorX, m.cursorY = x, y
	return m
}

func click(action tea.MouseAction, x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: action, Button: tea.MouseButtonLeft}
}

func TestDropFromKeyboard(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m = send(at(m, 4, 2), runes("3"))

	nodes := m.session.Nodes()
	require.Len(t, nodes, 1)
	assert.Equal(t, diagram.KindDecision, nodes[0].Kind)
	assert.Equal(t, geometry.Point{X: 4, Y: 2}, nodes[0].Position)
	assert.Equal(t, nodes[0].ID, m.session.Selection().NodeID())
}

func TestConnectAndUndo(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m = send(at(m, 0, 0), runes("1"))
	m = send(at(m, 40, 0), runes("2"))

	m = send(at(m, 1, 1), runes("a"))
	require.IsType(t, interaction.Connecting{}, m.session.State())
	assert.Equal(t, "CONNECT", m.modeString())

	m = send(at(m, 45, 2), runes("a"))
	edges := m.session.Edges()
	require.Len(t, edges, 1)
	assert.Equal(t, "node_1", edges[0].Source)
	assert.Equal(t, "node_2", edges[0].Target)

	m = send(m, runes("u"))
	assert.Empty(t, m.session.Edges())
	assert.True(t, m.session.CanRedo())
	m = send(m, tea.KeyMsg{Type: tea.KeyCtrlY})
	assert.Len(t, m.session.Edges(), 1)
}

func TestConnectToSelfReportsError(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m = send(at(m, 0, 0), runes("1"))
	m = send(at(m, 1, 1), runes("a"), runes("a"))

	assert.Empty(t, m.session.Edges())
	assert.NotEmpty(t, m.errorMessage)
	assert.True(t, m.idle())
}

func TestMouseDragMovesNode(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m = send(at(m, 0, 0), runes("1"))

	m = send(m,
		click(tea.MouseActionPress, paletteWidth+2, 1),
		click(tea.MouseActionMotion, paletteWidth+7, 3),
		click(tea.MouseActionMotion, paletteWidth+12, 6),
		click(tea.MouseActionRelease, paletteWidth+12, 6),
	)

	n, ok := m.session.Node("node_1")
	require.True(t, ok)
	assert.Equal(t, geometry.Point{X: 10, Y: 5}, n.Position)
	assert.True(t, m.idle())

	m = send(m, runes("u"))
	n, _ = m.session.Node("node_1")
	assert.Equal(t, geometry.Point{X: 0, Y: 0}, n.Position, "one undo reverts the whole drag")
}

func TestPaletteDragDrop(t *testing.T) {
	m, _ := newTestModel(t, nil)

	m = send(m, click(tea.MouseActionPress, 1, paletteRow+2))
	kind, ok := m.session.DragPayload()
	require.True(t, ok)
	assert.Equal(t, diagram.KindProcess, kind)
	assert.Contains(t, m.View(), "Process")

	m = send(m,
		click(tea.MouseActionMotion, paletteWidth+10, 8),
		click(tea.MouseActionRelease, paletteWidth+20, 10),
	)
	_, ok = m.session.DragPayload()
	assert.False(t, ok)

	nodes := m.session.Nodes()
	require.Len(t, nodes, 1)
	assert.Equal(t, geometry.Point{X: 20, Y: 10}, nodes[0].Position)
	assert.Equal(t, nodes[0].ID, m.session.Selection().NodeID())
}

func TestPaletteDragReleasedOverPaletteCancels(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m = send(m,
		click(tea.MouseActionPress, 1, paletteRow),
		click(tea.MouseActionRelease, 2, paletteRow),
	)
	assert.Empty(t, m.session.Nodes())
	_, ok := m.session.DragPayload()
	assert.False(t, ok)
}

func TestWheelAndKeyZoom(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m = send(m, tea.MouseMsg{X: paletteWidth + 10, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp})
	assert.Equal(t, 110, m.zoomPercent())

	m = send(m, runes("0"))
	assert.Equal(t, 100, m.zoomPercent())
	m = send(m, runes("+"))
	assert.Equal(t, 120, m.zoomPercent())
	m = send(m, runes("-"))
	assert.Equal(t, 100, m.zoomPercent())
}

func TestPanMode(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m = send(m, runes("z"), runes("l"), runes("l"), runes("j"))
	assert.Equal(t, "PAN", m.modeString())
	assert.Equal(t, geometry.Point{X: -2, Y: -1}, m.session.Transform().Offset())
	assert.Equal(t, 0, m.cursorX)

	m = send(m, tea.KeyMsg{Type: tea.KeyEsc}, runes("l"))
	assert.Equal(t, 1, m.cursorX)
}

func TestMoveMode(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m = send(at(m, 0, 0), runes("2"))
	m = send(at(m, 2, 2), runes("m"))
	require.Equal(t, ModeMove, m.mode)

	m = send(m, runes("l"), runes("l"), runes("j"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, ModeNormal, m.mode)
	n, _ := m.session.Node("node_1")
	assert.Equal(t, geometry.Point{X: 2, Y: 1}, n.Position)
}

func TestEditCommitsOnce(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m = send(at(m, 0, 0), runes("2"))
	m = send(at(m, 2, 2), runes("e"))
	require.Equal(t, ModeEdit, m.mode)
	assert.Equal(t, "Process Node", m.inputs[fieldLabel].Value())

	m = send(m,
		tea.KeyMsg{Type: tea.KeyBackspace},
		tea.KeyMsg{Type: tea.KeyBackspace},
		tea.KeyMsg{Type: tea.KeyBackspace},
		tea.KeyMsg{Type: tea.KeyBackspace},
		runes("Step"),
		tea.KeyMsg{Type: tea.KeyTab},
		runes("does a thing"),
		tea.KeyMsg{Type: tea.KeyEnter},
	)

	require.Equal(t, ModeNormal, m.mode)
	n, ok := m.session.Node("node_1")
	require.True(t, ok, "backspace in a field must not delete the node")
	assert.Equal(t, "Process Step", n.Data.Label)
	assert.Equal(t, "does a thing", n.Data.Description)

	m = send(m, runes("u"))
	n, _ = m.session.Node("node_1")
	assert.Equal(t, "Process Node", n.Data.Label)
	assert.Empty(t, n.Data.Description)
}

func TestEditRejectsBadColor(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m = send(at(m, 0, 0), runes("2"))
	m = send(at(m, 2, 2), runes("e"))
	m.inputs[fieldColor].SetValue("blue")
	m = send(m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, ModeEdit, m.mode)
	assert.Contains(t, m.errorMessage, "invalid color")
	n, _ := m.session.Node("node_1")
	assert.Equal(t, diagram.DefaultNodeColor, n.Data.Color)

	m = send(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ModeNormal, m.mode)
}

func TestDeleteWithConfirmation(t *testing.T) {
	cfg := config.Default()
	cfg.SaveDirectory = t.TempDir()
	m, _ := newTestModel(t, cfg)
	m = send(at(m, 0, 0), runes("2"))
	m = send(at(m, 2, 2), runes("d"))
	require.Equal(t, ModeConfirm, m.mode)
	assert.Equal(t, ConfirmDeleteNode, m.confirmAction)

	m = send(m, runes("n"))
	assert.Len(t, m.session.Nodes(), 1)

	m = send(m, runes("d"), runes("y"))
	assert.Empty(t, m.session.Nodes())
	assert.Equal(t, ModeNormal, m.mode)
}

func TestClearAndQuit(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m = send(at(m, 0, 0), runes("1"))
	m = send(at(m, 30, 0), runes("4"))
	m = send(m, runes("C"))
	assert.Empty(t, m.session.Nodes())

	_, cmd := m.Update(runes("q"))
	assert.NotNil(t, cmd)
}

func TestCopyPaste(t *testing.T) {
	m, clip := newTestModel(t, nil)
	m = send(at(m, 0, 0), runes("1"))
	m = send(at(m, 1, 1), runes("c"))
	assert.Equal(t, "Start Node", clip.text)

	m = send(at(m, 30, 10), runes("p"))
	nodes := m.session.Nodes()
	require.Len(t, nodes, 2)
	assert.Equal(t, diagram.KindStart, nodes[1].Kind)
	assert.Equal(t, "Start Node", nodes[1].Data.Label)
	assert.Equal(t, geometry.Point{X: 30, Y: 10}, nodes[1].Position)

	clip.text = "<div>Check <b>stock</b></div>"
	m = send(at(m, 50, 15), runes("p"))
	nodes = m.session.Nodes()
	require.Len(t, nodes, 3)
	assert.Equal(t, "Check stock", nodes[2].Data.Label)
}

func TestPasteTextWithoutCopy(t *testing.T) {
	m, clip := newTestModel(t, nil)
	clip.text = "  Ship\n order  "
	m = send(at(m, 5, 5), runes("p"))

	nodes := m.session.Nodes()
	require.Len(t, nodes, 1)
	assert.Equal(t, diagram.KindProcess, nodes[0].Kind)
	assert.Equal(t, "Ship order", nodes[0].Data.Label)
}

func TestSaveAndOpen(t *testing.T) {
	cfg := config.Default()
	cfg.Confirmations = false
	cfg.SaveDirectory = t.TempDir()

	m, _ := newTestModel(t, cfg)
	m = send(at(m, 3, 3), runes("2"))
	m = send(m, runes("s"))
	require.Equal(t, ModeFileInput, m.mode)
	m = send(m, runes("chart"), tea.KeyMsg{Type: tea.KeyEnter})

	require.Equal(t, ModeNormal, m.mode, m.errorMessage)
	path := filepath.Join(cfg.SaveDirectory, "chart.yaml")
	assert.Equal(t, path, m.filename)
	assert.FileExists(t, path)
	assert.Contains(t, m.successMessage, "Saved")

	other, _ := newTestModel(t, cfg)
	other = send(other, runes("o"))
	require.Equal(t, []string{"chart.yaml"}, other.fileList)
	assert.Equal(t, "chart", other.fileInput.Value())
	assert.Contains(t, other.View(), "> chart <")

	other = send(other, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, ModeNormal, other.mode, other.errorMessage)
	nodes := other.session.Nodes()
	require.Len(t, nodes, 1)
	assert.Equal(t, geometry.Point{X: 3, Y: 3}, nodes[0].Position)
	assert.False(t, other.session.CanUndo(), "opening a file starts a fresh history")
}

func TestOpenMissingFile(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m = send(m, runes("o"), runes("nope"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, ModeFileInput, m.mode)
	assert.NotEmpty(t, m.errorMessage)
}

func TestExportText(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m = send(at(m, 0, 0), runes("2"))
	m = send(m, runes("T"), tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, ModeNormal, m.mode, m.errorMessage)

	data, err := os.ReadFile(filepath.Join(m.cfg.SaveDirectory, "flowchart.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Process Node")
}

func TestViewShowsCanvasAndStatus(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m = send(at(m, 0, 0), runes("2"))
	m = at(m, 30, 20)

	v := m.View()
	assert.Contains(t, v, "Nodes")
	assert.Contains(t, v, "Process Node")
	assert.Contains(t, v, "Zoom: 100%")
	assert.Contains(t, v, "Cursor: (30,20)")
	assert.Contains(t, v, "Selected: Process Node")

	m = send(m, runes("?"))
	assert.Equal(t, ModeHelp, m.mode)
	assert.Contains(t, m.View(), "help")
	m = send(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ModeNormal, m.mode)
}

func TestToggleTheme(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m = send(m, runes("t"))
	assert.Equal(t, editor.ThemeLight, m.session.Theme())
	assert.Equal(t, lightStyles().Title.GetForeground(), m.styles.Title.GetForeground())
}

func TestMouseIgnoredOutsideNormalMode(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m = send(m, runes("?"), click(tea.MouseActionPress, 1, paletteRow))
	_, ok := m.session.DragPayload()
	assert.False(t, ok)
}
