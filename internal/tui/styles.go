package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/travisdwitt/flowcanvas/internal/editor"
	"github.com/travisdwitt/flowcanvas/internal/export"
)

// Styles is one colour theme.
type Styles struct {
	Canvas       lipgloss.Style
	Edge         lipgloss.Style
	EdgeSelected lipgloss.Style
	NodeSelected lipgloss.Style
	Label        lipgloss.Style
	Handle       lipgloss.Style
	Guide        lipgloss.Style
	Cursor       lipgloss.Style
	Palette      lipgloss.Style
	PaletteItem  lipgloss.Style
	PaletteDrag  lipgloss.Style
	Status       lipgloss.Style
	StatusMode   lipgloss.Style
	Error        lipgloss.Style
	Success      lipgloss.Style
	Title        lipgloss.Style
}

func darkStyles() Styles {
	return Styles{
		Canvas:       lipgloss.NewStyle(),
		Edge:         lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		EdgeSelected: lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		NodeSelected: lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		Label:        lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		Handle:       lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
		Guide:        lipgloss.NewStyle().Foreground(lipgloss.Color("205")),
		Cursor:       lipgloss.NewStyle().Reverse(true),
		Palette:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		PaletteItem:  lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		PaletteDrag:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Reverse(true),
		Status:       lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236")),
		StatusMode:   lipgloss.NewStyle().Foreground(lipgloss.Color("16")).Background(lipgloss.Color("39")).Bold(true),
		Error:        lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Background(lipgloss.Color("236")),
		Success:      lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Background(lipgloss.Color("236")),
		Title:        lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
	}
}

func lightStyles() Styles {
	return Styles{
		Canvas:       lipgloss.NewStyle(),
		Edge:         lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		EdgeSelected: lipgloss.NewStyle().Foreground(lipgloss.Color("166")).Bold(true),
		NodeSelected: lipgloss.NewStyle().Foreground(lipgloss.Color("166")).Bold(true),
		Label:        lipgloss.NewStyle().Foreground(lipgloss.Color("232")),
		Handle:       lipgloss.NewStyle().Foreground(lipgloss.Color("125")).Bold(true),
		Guide:        lipgloss.NewStyle().Foreground(lipgloss.Color("125")),
		Cursor:       lipgloss.NewStyle().Reverse(true),
		Palette:      lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		PaletteItem:  lipgloss.NewStyle().Foreground(lipgloss.Color("25")),
		PaletteDrag:  lipgloss.NewStyle().Foreground(lipgloss.Color("166")).Reverse(true),
		Status:       lipgloss.NewStyle().Foreground(lipgloss.Color("235")).Background(lipgloss.Color("253")),
		StatusMode:   lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("25")).Bold(true),
		Error:        lipgloss.NewStyle().Foreground(lipgloss.Color("160")).Background(lipgloss.Color("253")),
		Success:      lipgloss.NewStyle().Foreground(lipgloss.Color("28")).Background(lipgloss.Color("253")),
		Title:        lipgloss.NewStyle().Foreground(lipgloss.Color("25")).Bold(true),
	}
}

func stylesFor(t editor.Theme) Styles {
	if t == editor.ThemeLight {
		return lightStyles()
	}
	return darkStyles()
}

// cellStyle picks the style for one rendered cell. Nodes and arrows use
// their own colour when they have one.
func (s Styles) cellStyle(role export.Role, color string) lipgloss.Style {
	switch role {
	case export.RoleEdge:
		return s.Edge
	case export.RoleEdgeSelected:
		return s.EdgeSelected
	case export.RoleNodeSelected:
		return s.NodeSelected
	case export.RoleLabel:
		return s.Label
	case export.RoleHandle:
		return s.Handle
	case export.RoleGuide:
		return s.Guide
	case export.RoleNode, export.RoleArrow:
		if color != "" {
			return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
		}
		return s.Edge
	default:
		return s.Canvas
	}
}
