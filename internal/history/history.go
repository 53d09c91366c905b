// Package history keeps the linear undo/redo timeline of diagram snapshots.
package history

import "github.com/travisdwitt/flowcanvas/internal/diagram"

// Manager holds every recorded snapshot plus a cursor at the live one.
// Entries after the cursor are the redo tail; recording truncates it.
type Manager struct {
	entries []diagram.Diagram
	cursor  int
	limit   int
}

type Option func(*Manager)

// WithLimit caps the number of kept entries. The oldest entries are dropped
// first. Zero keeps everything.
func WithLimit(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.limit = n
		}
	}
}

func New(opts ...Option) *Manager {
	m := &Manager{cursor: -1}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Record appends a copy of d after the cursor, discarding any redo tail.
func (m *Manager) Record(d diagram.Diagram) {
	m.entries = append(m.entries[:m.cursor+1], d.Clone())
	if m.limit > 0 && len(m.entries) > m.limit {
		drop := len(m.entries) - m.limit
		m.entries = append(m.entries[:0:0], m.entries[drop:]...)
	}
	m.cursor = len(m.entries) - 1
}

// Reset forgets the timeline and seeds it with d as entry 0.
func (m *Manager) Reset(d diagram.Diagram) {
	m.entries = nil
	m.cursor = -1
	m.Record(d)
}

// Undo steps back one entry and returns a copy of it.
func (m *Manager) Undo() (diagram.Diagram, bool) {
	if !m.CanUndo() {
		return diagram.Diagram{}, false
	}
	m.cursor--
	return m.entries[m.cursor].Clone(), true
}

// Redo steps forward one entry and returns a copy of it.
func (m *Manager) Redo() (diagram.Diagram, bool) {
	if !m.CanRedo() {
		return diagram.Diagram{}, false
	}
	m.cursor++
	return m.entries[m.cursor].Clone(), true
}

func (m *Manager) CanUndo() bool { return m.cursor > 0 }
func (m *Manager) CanRedo() bool { return m.cursor >= 0 && m.cursor < len(m.entries)-1 }

func (m *Manager) Len() int    { return len(m.entries) }
func (m *Manager) Cursor() int { return m.cursor }

// Current returns a copy of the entry under the cursor.
func (m *Manager) Current() (diagram.Diagram, bool) {
	if m.cursor < 0 {
		return diagram.Diagram{}, false
	}
	return m.entries[m.cursor].Clone(), true
}
