package canvas

import (
	"fmt"
	"image"
)

// DrawTriangle shades every pixel covered by the triangle.
//
// The triangle is split at the middle vertex into a flat-bottom upper half and
// a flat-top lower half which are filled one scanline at a time, rows
// increasing and columns increasing within a row. The scanline through the
// middle vertex belongs to the upper half so no pixel is shaded twice.
//
// Degenerate triangles (all vertices on one row, or collinear) draw nothing.
// Edge crossings use truncating integer division, which can shift an edge by
// up to one pixel. Write failures follow the same rules as DrawLine.
func DrawTriangle(s Surface, vertices [3]image.Point, shader Shader) error {
	v := sortByY(vertices)
	hasUpper := v[0].Y != v[1].Y
	hasLower := v[1].Y != v[2].Y
	if !hasUpper && !hasLower {
		return nil
	}
	if collinear(v[0], v[1], v[2]) {
		return nil
	}

	// The point on the long edge v0-v2 level with the middle vertex.
	split := image.Pt(v[0].X+(v[2].X-v[0].X)*(v[1].Y-v[0].Y)/(v[2].Y-v[0].Y), v[1].Y)

	pl := &plotter{s: s, shader: shader}
	if hasUpper {
		pl.scan(v[0].Y, v[1].Y, [2]image.Point{v[1], v[0]}, [2]image.Point{split, v[0]})
	}
	if hasLower {
		first := v[1].Y
		if hasUpper {
			first++
		}
		pl.scan(first, v[2].Y, [2]image.Point{v[1], v[2]}, [2]image.Point{split, v[2]})
	}
	if pl.err != nil {
		return fmt.Errorf("drawing triangle %v %v %v: %w", v[0], v[1], v[2], pl.err)
	}
	return nil
}

// scan fills rows y0..y1 between two edges, each given as flat-side endpoint
// followed by the apex.
func (pl *plotter) scan(y0, y1 int, a, b [2]image.Point) {
	w, h := int(pl.s.Size().Width), int(pl.s.Size().Height)
	for y := max(y0, 0); y <= y1 && y < h; y++ {
		xa, xb := edgeX(a[0], a[1], y), edgeX(b[0], b[1], y)
		if xa > xb {
			xa, xb = xb, xa
		}
		for x := max(xa, 0); x <= xb && x < w; x++ {
			pl.plot(image.Pt(x, y))
		}
	}
}

func edgeX(from, to image.Point, y int) int {
	return from.X + (to.X-from.X)*(y-from.Y)/(to.Y-from.Y)
}

func sortByY(v [3]image.Point) [3]image.Point {
	if v[1].Y < v[0].Y {
		v[0], v[1] = v[1], v[0]
	}
	if v[2].Y < v[1].Y {
		v[1], v[2] = v[2], v[1]
		if v[1].Y < v[0].Y {
			v[0], v[1] = v[1], v[0]
		}
	}
	return v
}

func collinear(a, b, c image.Point) bool {
	ab, ac := b.Sub(a), c.Sub(a)
	return int64(ab.X)*int64(ac.Y)-int64(ab.Y)*int64(ac.X) == 0
}
