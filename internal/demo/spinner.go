package demo

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/idursun/text3d/internal/canvas"
	"github.com/idursun/text3d/internal/runner"
	"github.com/idursun/text3d/internal/scene"
)

// Spinner turns a mesh about Axis at Position.
type Spinner struct {
	Rasterizer      *scene.Rasterizer
	Mesh            *scene.Mesh
	Position        mgl32.Vec3
	Axis            mgl32.Vec3
	AngularVelocity float32
	Background      canvas.RGB

	angle float32
}

func (s *Spinner) Angle() float32 { return s.angle }

func (s *Spinner) Process(buf *canvas.Buffer, delta time.Duration) (runner.ProcessNext, error) {
	s.angle += s.AngularVelocity * float32(delta.Seconds())
	s.Rasterizer.SetWorld(mgl32.Translate3D(s.Position.Elem()).Mul4(mgl32.HomogRotate3D(s.angle, s.Axis.Normalize())))

	buf.Fill(' ', s.Background)
	s.Rasterizer.ClearFrame()
	if err := s.Rasterizer.RasterizeMesh(s.Mesh, buf); err != nil {
		return runner.End, err
	}
	return runner.Continue, nil
}
