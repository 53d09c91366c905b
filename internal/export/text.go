package export

import (
	"bufio"
	"fmt"
	"io"

	"github.com/travisdwitt/flowcanvas/internal/diagram"
	"github.com/travisdwitt/flowcanvas/internal/geometry"
)

// Text writes the character rendering of d through t, one line per row.
// A non-positive width or height fits the whole diagram at scale 1.
func Text(w io.Writer, d diagram.Diagram, t geometry.Transform, width, height int) error {
	if width <= 0 || height <= 0 {
		if d.Empty() {
			return ErrNothingToExport
		}
		t, width, height = Fit(d, 1)
	}
	bw := bufio.NewWriter(w)
	for _, line := range Render(d, t, width, height, GridOptions{}).Lines() {
		if _, err := fmt.Fprintln(bw, line); err != nil {
			return fmt.Errorf("write text export: %w", err)
		}
	}
	return bw.Flush()
}

// Fit returns a unit-scale transform that places every node inside a grid
// with pad empty cells around it, and the size of that grid.
func Fit(d diagram.Diagram, pad int) (geometry.Transform, int, int) {
	r, ok := d.Bounds()
	if !ok {
		return geometry.Identity(), 1, 1
	}
	p := float64(pad)
	t := geometry.Transform{OffsetX: p - r.X, OffsetY: p - r.Y, Scale: 1}
	return t, int(r.W) + 2*pad + 1, int(r.H) + 2*pad + 1
}
