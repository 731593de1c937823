package canvas

import (
	"fmt"
	"image"
)

// DrawLine shades every pixel on the segment between start and end.
//
// Pixels outside the surface are skipped. A failed write does not stop the
// walk: every remaining pixel is still attempted and the first error is
// returned at the end.
//
// Lines are walked parametrically: steep lines (|slope| > 1) step one row at a
// time and solve for the column, shallow lines step one column at a time and
// solve for the row. Solved coordinates are truncated toward zero.
func DrawLine(s Surface, start, end image.Point, shader Shader) error {
	pl := &plotter{s: s, shader: shader}
	switch {
	case start == end:
		pl.plot(start)
	case start.X == end.X:
		pl.vertical(start, end)
	default:
		if start.X > end.X {
			start, end = end, start
		}
		d := end.Sub(start)
		slope := float32(d.Y) / float32(d.X)
		if slope > 1 || slope < -1 {
			pl.steep(start, end, slope)
		} else {
			pl.shallow(start, end, slope)
		}
	}
	if pl.err != nil {
		return fmt.Errorf("drawing line %v-%v: %w", start, end, pl.err)
	}
	return nil
}

func (pl *plotter) vertical(start, end image.Point) {
	if start.Y > end.Y {
		start, end = end, start
	}
	lo := max(0, start.Y)
	hi := min(end.Y, int(pl.s.Size().Height)-1)
	for y := lo; y <= hi; y++ {
		pl.plot(image.Pt(start.X, y))
	}
}

func (pl *plotter) steep(start, end image.Point, slope float32) {
	if start.Y > end.Y {
		start, end = end, start
	}
	for y := start.Y; y <= end.Y; y++ {
		x := int(float32(y-start.Y)/slope + float32(start.X))
		pl.plot(image.Pt(x, y))
	}
}

func (pl *plotter) shallow(start, end image.Point, slope float32) {
	for x := start.X; x <= end.X; x++ {
		y := int(float32(x-start.X)*slope + float32(start.Y))
		pl.plot(image.Pt(x, y))
	}
}
