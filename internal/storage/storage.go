// Package storage reads and writes diagram documents as YAML.
package storage

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/travisdwitt/flowcanvas/internal/diagram"
	"github.com/travisdwitt/flowcanvas/internal/geometry"
	"gopkg.in/yaml.v3"
)

const Version = 1

// Extension is appended to names saved without one.
const Extension = ".yaml"

type document struct {
	Version  int            `yaml:"version"`
	Nodes    []diagram.Node `yaml:"nodes"`
	Edges    []diagram.Edge `yaml:"edges"`
	Viewport viewportDoc    `yaml:"viewport"`
}

type viewportDoc struct {
	OffsetX float64 `yaml:"offset_x"`
	OffsetY float64 `yaml:"offset_y"`
	Scale   float64 `yaml:"scale"`
}

// Save writes d and the viewport t to w.
func Save(w io.Writer, d diagram.Diagram, t geometry.Transform) error {
	doc := document{
		Version:  Version,
		Nodes:    d.Nodes,
		Edges:    d.Edges,
		Viewport: viewportDoc{OffsetX: t.OffsetX, OffsetY: t.OffsetY, Scale: t.Scale},
	}
	if doc.Nodes == nil {
		doc.Nodes = []diagram.Node{}
	}
	if doc.Edges == nil {
		doc.Edges = []diagram.Edge{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode diagram: %w", err)
	}
	return enc.Close()
}

// Load reads a document from r. The result always satisfies the store's
// invariants: duplicate node ids, dangling edges and self loops are
// dropped, missing fields are defaulted, non-finite numbers are zeroed and
// the scale is clamped.
func Load(r io.Reader) (diagram.Diagram, geometry.Transform, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return diagram.Diagram{}, geometry.Identity(), fmt.Errorf("read diagram: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return diagram.Diagram{}, geometry.Identity(), fmt.Errorf("%w: empty document", ErrInvalidFormat)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return diagram.Diagram{}, geometry.Identity(), fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	switch {
	case doc.Version == 0:
		return diagram.Diagram{}, geometry.Identity(), fmt.Errorf("%w: missing version", ErrInvalidFormat)
	case doc.Version > Version:
		return diagram.Diagram{}, geometry.Identity(), fmt.Errorf("%w: %d", ErrUnsupportedVersion, doc.Version)
	}

	t := geometry.Transform{
		OffsetX: doc.Viewport.OffsetX,
		OffsetY: doc.Viewport.OffsetY,
		Scale:   doc.Viewport.Scale,
	}.Normalize()

	return sanitize(doc.Nodes, doc.Edges), t, nil
}

func sanitize(nodes []diagram.Node, edges []diagram.Edge) diagram.Diagram {
	var d diagram.Diagram
	seen := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		if n.ID == "" || seen[n.ID] {
			continue
		}
		seen[n.ID] = true
		if !n.Kind.Valid() {
			n.Kind = diagram.KindProcess
		}
		if n.Data.Color == "" {
			n.Data.Color = diagram.DefaultNodeColor
		}
		n.Position = n.Position.ClampNonNegative()
		d.Nodes = append(d.Nodes, n)
	}

	edgeSeen := make(map[string]bool, len(edges))
	for _, e := range edges {
		if e.ID == "" || edgeSeen[e.ID] || e.Source == e.Target || !seen[e.Source] || !seen[e.Target] {
			continue
		}
		edgeSeen[e.ID] = true
		if e.Data.Color == "" {
			e.Data.Color = diagram.DefaultEdgeColor
		}
		d.Edges = append(d.Edges, e)
	}
	return d
}

// SaveFile writes the document to path, creating parent directories.
func SaveFile(path string, d diagram.Diagram, t geometry.Transform) error {
	if filepath.Ext(path) == "" {
		path += Extension
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}
	var buf bytes.Buffer
	if err := Save(&buf, d, t); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func LoadFile(path string) (diagram.Diagram, geometry.Transform, error) {
	f, err := os.Open(path)
	if err != nil {
		return diagram.Diagram{}, geometry.Identity(), fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	d, t, err := Load(f)
	if err != nil {
		return d, t, fmt.Errorf("load %s: %w", path, err)
	}
	return d, t, nil
}

// ListFiles returns the sorted names of the diagram files in dir.
// A missing directory yields no files.
func ListFiles(dir string) ([]string, error) {
	if dir == "" {
		dir = "."
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".yaml", ".yml":
			files = append(files, e.Name())
		}
	}
	slices.Sort(files)
	return files, nil
}
