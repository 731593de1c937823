package scene

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/idursun/text3d/internal/canvas"
)

// Triangle is a flat colored triangle in object space.
//
// The winding order decides which side is the front: the normal is
// (V2-V0) x (V1-V0). It is not validated.
type Triangle struct {
	V     [3]mgl32.Vec3
	Color canvas.RGB
}

// Normal returns the unit surface normal. Degenerate triangles yield a
// vector with NaN components.
func (t Triangle) Normal() mgl32.Vec3 {
	return t.V[2].Sub(t.V[0]).Cross(t.V[1].Sub(t.V[0])).Normalize()
}

// Translate returns the triangle moved by d.
func (t Triangle) Translate(d mgl32.Vec3) Triangle {
	for i := range t.V {
		t.V[i] = t.V[i].Add(d)
	}
	return t
}

func (t Triangle) degenerate() bool {
	n := t.V[2].Sub(t.V[0]).Cross(t.V[1].Sub(t.V[0]))
	return n.LenSqr() == 0
}
