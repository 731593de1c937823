package scene

import (
	"iter"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/idursun/text3d/internal/canvas"
)

// Mesh is an immutable sequence of triangles. A *Mesh can be shared freely
// between behaviours and rasterizers; nothing mutates it after NewMesh.
type Mesh struct {
	triangles []Triangle
}

// NewMesh copies triangles into a new mesh.
func NewMesh(triangles []Triangle) *Mesh {
	m := &Mesh{triangles: make([]Triangle, len(triangles))}
	copy(m.triangles, triangles)
	return m
}

func (m *Mesh) Len() int {
	return len(m.triangles)
}

func (m *Mesh) At(i int) Triangle {
	return m.triangles[i]
}

// All iterates the triangles in order.
func (m *Mesh) All() iter.Seq2[int, Triangle] {
	return func(yield func(int, Triangle) bool) {
		for i, t := range m.triangles {
			if !yield(i, t) {
				return
			}
		}
	}
}

// MaterialColor converts a material's diffuse channel (0..1 per component) to
// a cell color. Meshes without a material are white.
func MaterialColor(diffuse *[3]float32) canvas.RGB {
	if diffuse == nil {
		return canvas.White
	}
	return canvas.RGB{
		R: unitToChannel(diffuse[0]),
		G: unitToChannel(diffuse[1]),
		B: unitToChannel(diffuse[2]),
	}
}

func unitToChannel(v float32) uint8 {
	return canvas.White.Scale(v).R
}

// Quad returns the two triangles of the quadrilateral a, b, c, d. The front
// side faces along (c-a) x (b-a).
func Quad(a, b, c, d mgl32.Vec3, color canvas.RGB) [2]Triangle {
	return [2]Triangle{
		{V: [3]mgl32.Vec3{a, b, c}, Color: color},
		{V: [3]mgl32.Vec3{a, c, d}, Color: color},
	}
}

var cubeFaces = [6][3]mgl32.Vec3{
	// normal, u, v with u x v = normal
	{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
	{{-1, 0, 0}, {0, 0, 1}, {0, 1, 0}},
	{{0, 1, 0}, {0, 0, 1}, {1, 0, 0}},
	{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}},
	{{0, 0, 1}, {1, 0, 0}, {0, 1, 0}},
	{{0, 0, -1}, {0, 1, 0}, {1, 0, 0}},
}

// Cube returns an axis aligned cube with every face pointing outwards.
func Cube(center mgl32.Vec3, size float32, color canvas.RGB) *Mesh {
	h := size / 2
	triangles := make([]Triangle, 0, 12)
	for _, f := range cubeFaces {
		n, u, v := f[0].Mul(h), f[1].Mul(h), f[2].Mul(h)
		c := center.Add(n)
		q := Quad(
			c.Sub(u).Sub(v),
			c.Sub(u).Add(v),
			c.Add(u).Add(v),
			c.Add(u).Sub(v),
			color,
		)
		triangles = append(triangles, q[0], q[1])
	}
	return NewMesh(triangles)
}
