package tui

import (
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/travisdwitt/flowcanvas/internal/diagram"
)

// Clipboard is the system clipboard. Tests replace it.
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

type systemClipboard struct{}

func (systemClipboard) ReadAll() (string, error) {
	if runtime.GOOS == "darwin" {
		if output, err := exec.Command("pbpaste", "-Prefer", "txt").Output(); err == nil {
			return string(output), nil
		}
	}
	return clipboard.ReadAll()
}

func (systemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

func isHTML(text string) bool {
	return strings.HasPrefix(strings.TrimSpace(text), "<") &&
		(strings.Contains(text, "<html") || strings.Contains(text, "<body") || strings.Contains(text, "<div"))
}

func extractTextFromHTML(html string) string {
	var result strings.Builder
	result.Grow(len(html))
	inTag := false
	for _, r := range html {
		if r == '<' {
			inTag = true
			continue
		}
		if r == '>' {
			inTag = false
			continue
		}
		if !inTag {
			result.WriteRune(r)
		}
	}
	return strings.NewReplacer(
		"&lt;", "<",
		"&gt;", ">",
		"&amp;", "&",
		"&quot;", "\"",
		"&#39;", "'",
		"&nbsp;", " ",
	).Replace(result.String())
}

// stripRTF drops control words and groups from rich text, keeping escaped
// braces and backslashes.
func stripRTF(text string) string {
	if !strings.HasPrefix(text, "{\\rtf") && !strings.Contains(text, "\\rtf1") {
		return text
	}
	var result strings.Builder
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '{' || r == '}':
			continue
		case r == '\\' && i+1 < len(runes):
			next := runes[i+1]
			if next == '\\' || next == '{' || next == '}' {
				result.WriteRune(next)
				i++
				continue
			}
			for i+1 < len(runes) && isLetterOrDigit(runes[i+1]) {
				i++
			}
			if i+1 < len(runes) && runes[i+1] == ' ' {
				i++
			}
		default:
			result.WriteRune(r)
		}
	}
	return result.String()
}

func isLetterOrDigit(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-'
}

// cleanLabel turns clipboard contents into a single-line node label.
func cleanLabel(text string) string {
	if isHTML(text) {
		text = extractTextFromHTML(text)
	}
	text = stripRTF(text)
	var result strings.Builder
	for _, r := range text {
		switch {
		case r == '\n' || r == '\r' || r == '\t':
			result.WriteRune(' ')
		case r >= 32:
			result.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(result.String()), " ")
}

// copyAtCursor remembers the node under the cursor (or the selected one)
// and puts its label on the system clipboard.
func (m *Model) copyAtCursor() {
	id := m.session.Selection().NodeID()
	if hit := m.session.HitTest(m.cursorPoint()); hit.Kind == diagram.HitNode || hit.Kind == diagram.HitHandle {
		id = hit.ID
	}
	n, ok := m.session.Node(id)
	if !ok {
		return
	}
	m.copied = &n
	if err := m.clip.WriteAll(n.Data.Label); err != nil {
		m.log.Debug("clipboard write failed", "error", err)
	}
	m.successMessage = "Copied " + n.Data.Label
}

// paste adds the copied node at the cursor. Text copied from elsewhere
// since then becomes the label; with nothing copied it becomes a new
// process node.
func (m *Model) paste() {
	text, err := m.clip.ReadAll()
	if err != nil {
		m.log.Debug("clipboard read failed", "error", err)
	}
	label := cleanLabel(text)

	var n diagram.Node
	switch {
	case m.copied != nil:
		n = *m.copied
		if label != "" {
			n.Data.Label = label
		}
	case label != "":
		n = diagram.Node{
			Kind: diagram.KindProcess,
			Data: diagram.NodeData{Label: label, Color: diagram.DefaultNodeColor},
		}
	default:
		return
	}
	n.Position = m.session.Transform().ScreenToWorld(m.cursorCorner()).ClampNonNegative()
	id := m.session.InsertNode(n)
	m.session.Select(diagram.NodeSelection(id))
	m.clearMessages()
}
