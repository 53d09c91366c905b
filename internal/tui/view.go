package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/travisdwitt/flowcanvas/internal/diagram"
	"github.com/travisdwitt/flowcanvas/internal/export"
	"github.com/travisdwitt/flowcanvas/internal/interaction"
)

func (m Model) View() string {
	if m.mode == ModeHelp {
		return m.helpView()
	}

	w, h := m.canvasSize()
	var body []string
	if m.mode == ModeFileInput && m.fileOp == FileOpOpen {
		body = m.fileListView(w, h)
	} else {
		body = m.canvasView(w, h)
	}
	palette := m.paletteView(h)

	var result strings.Builder
	for i := 0; i < h; i++ {
		result.WriteString(palette[i])
		if i < len(body) {
			result.WriteString(body[i])
		}
		result.WriteString("\n")
	}
	result.WriteString(m.statusLine())
	return result.String()
}

func (m Model) canvasView(w, h int) []string {
	opts := export.GridOptions{Selection: m.session.Selection()}
	if c, ok := m.session.State().(interaction.Connecting); ok {
		opts.GuideFrom = c.SourceID
		opts.GuideTo = c.Guide
	}
	grid := export.Render(m.session.Snapshot(), m.session.Transform(), w, h, opts)
	showCursor := m.mode != ModeFileInput

	lines := make([]string, h)
	for y := 0; y < h; y++ {
		var line strings.Builder
		run := []rune{}
		var runStyle *lipgloss.Style
		flush := func() {
			if len(run) == 0 {
				return
			}
			if runStyle == nil {
				line.WriteString(string(run))
			} else {
				line.WriteString(runStyle.Render(string(run)))
			}
			run = run[:0]
		}

		var prevRole export.Role
		var prevColor string
		for x := 0; x < w; x++ {
			role, color := grid.Roles[y][x], grid.Colors[y][x]
			if showCursor && x == m.cursorX && y == m.cursorY {
				flush()
				ch := grid.Cells[y][x]
				if ch == ' ' {
					ch = '█'
					line.WriteRune(ch)
				} else {
					line.WriteString(m.styles.Cursor.Render(string(ch)))
				}
				runStyle = nil
				prevRole, prevColor = 255, ""
				continue
			}
			if x == 0 || role != prevRole || color != prevColor {
				flush()
				if role == export.RoleEmpty {
					runStyle = nil
				} else {
					st := m.styles.cellStyle(role, color)
					runStyle = &st
				}
				prevRole, prevColor = role, color
			}
			run = append(run, grid.Cells[y][x])
		}
		flush()
		lines[y] = line.String()
	}
	return lines
}

func (m Model) paletteView(h int) []string {
	inner := paletteWidth - 1
	pad := func(s string) string {
		return fmt.Sprintf("%-*s", inner, s)
	}
	sep := m.styles.Palette.Render("│")
	dragged, dragging := m.session.DragPayload()

	rows := make([]string, h)
	for y := range rows {
		text := pad("")
		switch {
		case y == 0:
			text = m.styles.Title.Render(pad(" Nodes"))
		case y == 1:
			text = m.styles.Palette.Render(pad(" " + strings.Repeat("─", inner-2)))
		default:
			if kind, ok := paletteKindAt(y); ok {
				i := (y - paletteRow) / 2
				label := pad(fmt.Sprintf(" %d %s", i+1, paletteName(kind)))
				if dragging && kind == dragged {
					text = m.styles.PaletteDrag.Render(label)
				} else {
					text = m.styles.PaletteItem.Render(label)
				}
			}
		}
		rows[y] = text + sep
	}
	return rows
}

func paletteName(k diagram.Kind) string {
	s := string(k)
	return strings.ToUpper(s[:1]) + s[1:]
}

func (m Model) fileListView(w, h int) []string {
	lines := []string{"Select a saved chart:", strings.Repeat("─", w)}
	if len(m.fileList) == 0 {
		lines = append(lines, "(No .yaml files found)")
	} else {
		maxFiles := max(1, h-4)
		start := 0
		if m.selectedFileIndex >= maxFiles {
			start = m.selectedFileIndex - maxFiles + 1
		}
		end := min(start+maxFiles, len(m.fileList))
		for i := start; i < end; i++ {
			name := displayName(m.fileList[i])
			if i == m.selectedFileIndex {
				lines = append(lines, "> "+name+" <")
			} else {
				lines = append(lines, "  "+name)
			}
		}
	}
	lines = append(lines, strings.Repeat("─", w), m.fileInput.View())
	return lines
}

func (m Model) modeString() string {
	switch {
	case m.mode != ModeNormal:
		return m.mode.String()
	case m.zPanMode:
		return "PAN"
	}
	if _, ok := m.session.State().(interaction.Connecting); ok {
		return "CONNECT"
	}
	return m.mode.String()
}

func (m Model) selectionString() string {
	sel := m.session.Selection()
	switch sel.Kind {
	case diagram.SelectNode:
		if n, ok := m.session.Node(sel.ID); ok {
			return fmt.Sprintf("Selected: %s", n.Data.Label)
		}
	case diagram.SelectEdge:
		if e, ok := m.session.Edge(sel.ID); ok {
			from, _ := m.session.Node(e.Source)
			to, _ := m.session.Node(e.Target)
			return fmt.Sprintf("Selected: %s → %s", from.Data.Label, to.Data.Label)
		}
	}
	return ""
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func (m Model) statusLine() string {
	mode := m.styles.StatusMode.Render(" " + m.modeString() + " ")

	var parts []string
	switch m.mode {
	case ModeEdit:
		views := make([]string, len(m.inputs))
		for i := range m.inputs {
			views[i] = m.inputs[i].View()
		}
		parts = append(parts, strings.Join(views, " │ "), "Tab=next field, Enter=save, Esc=cancel")
	case ModeMove:
		parts = append(parts, "hjkl/arrows=move, Enter=finish")
	case ModeFileInput:
		if m.fileOp != FileOpOpen {
			parts = append(parts, m.fileOp.String(), m.fileInput.View())
		} else {
			parts = append(parts, m.fileOp.String(), "↑/↓=navigate list")
		}
		parts = append(parts, "Enter=confirm, Esc=cancel")
	case ModeConfirm:
		parts = append(parts, m.confirmMessage())
	default:
		parts = append(parts,
			fmt.Sprintf("Zoom: %d%%", m.zoomPercent()),
			fmt.Sprintf("Cursor: (%d,%d)", m.cursorX, m.cursorY))
		if s := m.selectionString(); s != "" {
			parts = append(parts, s)
		}
		parts = append(parts, fmt.Sprintf("Undo: %s Redo: %s", onOff(m.session.CanUndo()), onOff(m.session.CanRedo())))
		if m.filename != "" {
			parts = append(parts, displayName(m.filename))
		}
	}

	status := " " + strings.Join(parts, " | ")
	var tail string
	switch {
	case m.errorMessage != "":
		tail = m.styles.Error.Render(" | ERROR: " + m.errorMessage)
	case m.successMessage != "":
		tail = m.styles.Success.Render(" | " + m.successMessage)
	case m.mode == ModeNormal:
		status += " | ? for help | q to quit"
	}

	width := max(0, m.width-lipgloss.Width(mode)-lipgloss.Width(tail))
	status = ansi.Truncate(status, width, "…")
	return mode + m.styles.Status.Width(width).Render(status) + tail
}

func (m Model) helpView() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("flowcanvas help"))
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n\n")
	for _, line := range []string{
		"Mouse:",
		"  drag a kind from the palette onto the canvas to add a node",
		"  drag a node to move it, drag from its border to connect",
		"  drag the background to pan, scroll to zoom around the pointer",
		"",
		"Move mode (m): hjkl moves the node, Enter finishes.",
		"Connect (a): press on a node, move the cursor, press a on the target.",
	} {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Status.Render(" Esc or ? to close "))
	return b.String()
}
