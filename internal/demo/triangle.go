package demo

import (
	"image"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/idursun/text3d/internal/canvas"
	"github.com/idursun/text3d/internal/runner"
	"github.com/idursun/text3d/internal/scene"
)

// DrawTriangle draws one triangle that drifts away from the camera while the
// camera rolls.
type DrawTriangle struct {
	Rasterizer *scene.Rasterizer
	Triangle   scene.Triangle
	// Speed is in world units per second along +Z.
	Speed float32
	// RollRate is in radians per second.
	RollRate float32
}

// NewDrawTriangle returns the orange triangle one unit in front of the
// origin, drifting at 0.1 units and rolling 10 degrees per second.
func NewDrawTriangle(r *scene.Rasterizer) *DrawTriangle {
	return &DrawTriangle{
		Rasterizer: r,
		Triangle: scene.Triangle{
			V:     [3]mgl32.Vec3{{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}},
			Color: canvas.RGB{R: 255, G: 100},
		},
		Speed:    0.1,
		RollRate: mgl32.DegToRad(10),
	}
}

func (d *DrawTriangle) Process(buf *canvas.Buffer, delta time.Duration) (runner.ProcessNext, error) {
	buf.Fill(' ', canvas.White)
	d.Rasterizer.ClearFrame()
	if err := d.Rasterizer.RasterizeTriangle(d.Triangle, buf); err != nil {
		return runner.End, err
	}

	dt := float32(delta.Seconds())
	d.Triangle = d.Triangle.Translate(mgl32.Vec3{0, 0, d.Speed * dt})
	d.Rasterizer.Camera().Roll(d.RollRate * dt)
	return runner.Continue, nil
}

// Gradient draws a triangle whose color follows the pixel position.
func Gradient(buf *canvas.Buffer) error {
	shader := canvas.ShaderFunc(func(p image.Point, _ canvas.View) canvas.Fragment {
		return canvas.Paint('.', canvas.RGB{R: 200, G: channel(p.Y * 15), B: channel(p.X * 14)})
	})
	return buf.DrawTriangle([3]image.Point{{5, 2}, {14, 10}, {10, 15}}, shader)
}

func channel(v int) uint8 {
	return uint8(min(max(v, 0), math.MaxUint8))
}
