// Package editor is the single entry point presentation layers talk to.
// A Session owns one diagram store, its history, the viewport and the
// interaction machine, plus the per-editor UI context (palette drag payload
// and theme) that would otherwise live in globals.
package editor

import (
	"log/slog"
	"math"

	"github.com/travisdwitt/flowcanvas/internal/diagram"
	"github.com/travisdwitt/flowcanvas/internal/geometry"
	"github.com/travisdwitt/flowcanvas/internal/history"
	"github.com/travisdwitt/flowcanvas/internal/interaction"
	"github.com/travisdwitt/flowcanvas/internal/logging"
	"github.com/travisdwitt/flowcanvas/internal/viewport"
)

type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

type Session struct {
	log     *slog.Logger
	store   *diagram.Store
	history *history.Manager
	view    *viewport.Controller
	machine *interaction.Machine

	payload    diagram.Kind
	hasPayload bool
	theme      Theme

	historyOpts []history.Option
	viewOpts    []viewport.Option
	storeOpts   []diagram.Option
}

type Option func(*Session)

func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// WithHistoryLimit caps the undo history. Zero keeps everything.
func WithHistoryLimit(n int) Option {
	return func(s *Session) {
		s.historyOpts = append(s.historyOpts, history.WithLimit(n))
	}
}

func WithZoomStep(f float64) Option {
	return func(s *Session) {
		s.viewOpts = append(s.viewOpts, viewport.WithZoomStep(f))
	}
}

func WithWheelStep(f float64) Option {
	return func(s *Session) {
		s.viewOpts = append(s.viewOpts, viewport.WithWheelStep(f))
	}
}

// WithIDGenerator replaces the uuid based id generator, mostly for tests.
func WithIDGenerator(fn func(prefix string) string) Option {
	return func(s *Session) {
		s.storeOpts = append(s.storeOpts, diagram.WithIDGenerator(fn))
	}
}

func WithTheme(t Theme) Option {
	return func(s *Session) {
		if t == ThemeLight {
			s.theme = ThemeLight
		}
	}
}

// New returns a session over an empty diagram. The empty diagram is the
// first history entry, so undo can always get back to it.
func New(opts ...Option) *Session {
	s := &Session{
		log:   logging.NewNop(),
		theme: ThemeDark,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.history = history.New(s.historyOpts...)
	s.history.Reset(diagram.Diagram{})
	s.view = viewport.New(s.viewOpts...)
	s.store = diagram.NewStore(append(s.storeOpts,
		diagram.WithRecorder(diagram.RecorderFunc(s.record)))...)
	s.machine = interaction.New(s.store, s.view, s)
	return s
}

func (s *Session) record(d diagram.Diagram) {
	s.history.Record(d)
	s.log.Debug("commit",
		"nodes", len(d.Nodes),
		"edges", len(d.Edges),
		"entry", s.history.Cursor())
}

func (s *Session) Nodes() []diagram.Node { return s.store.Nodes() }
func (s *Session) Edges() []diagram.Edge { return s.store.Edges() }
func (s *Session) Node(id string) (diagram.Node, bool) { return s.store.Node(id) }
func (s *Session) Edge(id string) (diagram.Edge, bool) { return s.store.Edge(id) }
func (s *Session) Snapshot() diagram.Diagram { return s.store.Snapshot() }
func (s *Session) Selection() diagram.Selection { return s.store.Selection() }
func (s *Session) Transform() geometry.Transform { return s.view.Transform() }
func (s *Session) CanUndo() bool { return s.history.CanUndo() }
func (s *Session) CanRedo() bool { return s.history.CanRedo() }
func (s *Session) State() interaction.State { return s.machine.State() }

func (s *Session) AddNode(kind diagram.Kind, pos geometry.Point) string {
	return s.store.AddNode(kind, pos)
}

// InsertNode adds a copy of n under a fresh id.
func (s *Session) InsertNode(n diagram.Node) string {
	return s.store.InsertNode(n)
}

func (s *Session) UpdateNode(id string, patch diagram.NodePatch) {
	s.store.UpdateNode(id, patch)
}

func (s *Session) DeleteNode(id string) { s.store.DeleteNode(id) }

func (s *Session) AddEdge(source, target string) string {
	id := s.store.AddEdge(source, target)
	if id == "" {
		s.log.Debug("edge rejected", "source", source, "target", target)
	}
	return id
}

func (s *Session) UpdateEdge(id string, patch diagram.EdgePatch) {
	s.store.UpdateEdge(id, patch)
}

func (s *Session) DeleteEdge(id string) { s.store.DeleteEdge(id) }
func (s *Session) Select(sel diagram.Selection) { s.store.Select(sel) }
func (s *Session) Clear() { s.store.Clear() }

// Undo restores the previous history entry. It does nothing mid-gesture.
func (s *Session) Undo() {
	if !s.machine.Idle() {
		return
	}
	d, ok := s.history.Undo()
	if !ok {
		return
	}
	s.store.Restore(d)
	s.log.Debug("undo", "entry", s.history.Cursor())
}

func (s *Session) Redo() {
	if !s.machine.Idle() {
		return
	}
	d, ok := s.history.Redo()
	if !ok {
		return
	}
	s.store.Restore(d)
	s.log.Debug("redo", "entry", s.history.Cursor())
}

func (s *Session) ZoomIn() { s.view.ZoomIn() }
func (s *Session) ZoomOut() { s.view.ZoomOut() }
func (s *Session) ResetZoom() { s.view.ResetZoom() }
func (s *Session) PanBy(dx, dy float64) { s.view.PanBy(dx, dy) }

func (s *Session) SetScale(anchor geometry.Point, scale float64) {
	s.view.SetScale(anchor, scale)
}

// SetSize records the canvas size in screen units.
func (s *Session) SetSize(w, h float64) { s.view.SetSize(w, h) }

// Load replaces the diagram and viewport, e.g. after opening a file. The
// loaded diagram becomes the only history entry.
func (s *Session) Load(d diagram.Diagram, t geometry.Transform) {
	s.machine.Reset()
	s.hasPayload = false
	s.store.Restore(d)
	s.history.Reset(d)
	s.view.SetTransform(t)
	s.log.Debug("load", "nodes", len(d.Nodes), "edges", len(d.Edges))
}

// HitTest resolves a screen point. The pick radius is one world unit, and
// never less than one screen cell when zoomed out.
func (s *Session) HitTest(screen geometry.Point) diagram.Hit {
	t := s.view.Transform()
	tol := math.Max(1, 1/t.Scale)
	return s.store.Snapshot().HitTest(t.ScreenToWorld(screen), tol)
}

func (s *Session) HandlePointerDown(ev interaction.PointerEvent) {
	s.machine.PointerDown(ev)
}

func (s *Session) HandlePointerMove(ev interaction.PointerEvent) {
	s.machine.PointerMove(ev)
}

func (s *Session) HandlePointerUp(ev interaction.PointerEvent) {
	if c, ok := s.machine.State().(interaction.Connecting); ok {
		if ev.Target.Kind == diagram.HitBackground || ev.Target.ID == c.SourceID {
			s.log.Debug("connection cancelled", "source", c.SourceID)
		}
	}
	s.machine.PointerUp(ev)
}

func (s *Session) HandleWheel(ev interaction.WheelEvent) { s.machine.Wheel(ev) }

func (s *Session) HandleDrop(ev interaction.DropEvent) string {
	return s.machine.Drop(ev)
}

func (s *Session) HandleKey(ev interaction.KeyEvent) { s.machine.Key(ev) }

// BeginPaletteDrag remembers which kind is being dragged out of the palette.
func (s *Session) BeginPaletteDrag(kind diagram.Kind) {
	if !kind.Valid() {
		return
	}
	s.payload, s.hasPayload = kind, true
}

// EndPaletteDrag drops the payload at screen and clears it. It returns the
// new node id, or "" when nothing was being dragged.
func (s *Session) EndPaletteDrag(screen geometry.Point) string {
	if !s.hasPayload {
		return ""
	}
	kind := s.payload
	s.CancelPaletteDrag()
	return s.HandleDrop(interaction.DropEvent{Kind: kind, Screen: screen})
}

func (s *Session) CancelPaletteDrag() {
	s.payload, s.hasPayload = "", false
}

func (s *Session) DragPayload() (diagram.Kind, bool) {
	return s.payload, s.hasPayload
}

func (s *Session) Theme() Theme { return s.theme }

func (s *Session) ToggleTheme() Theme {
	if s.theme == ThemeDark {
		s.theme = ThemeLight
	} else {
		s.theme = ThemeDark
	}
	return s.theme
}
