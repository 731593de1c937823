package demo

import (
	"image"
	"math"
	"time"

	"github.com/idursun/text3d/internal/canvas"
	"github.com/idursun/text3d/internal/runner"
)

var red = canvas.RGB{R: 255}

// RotatingLine frames the buffer with a red border and spins a white line
// around its center.
type RotatingLine struct {
	Theta           float32
	Length          float32
	AngularVelocity float32
}

func (l *RotatingLine) Process(buf *canvas.Buffer, delta time.Duration) (runner.ProcessNext, error) {
	l.Theta += l.AngularVelocity * float32(delta.Seconds())

	size := buf.Size()
	right, bottom := int(size.Width)-1, int(size.Height)-1
	cx, cy := float32(size.Width)/2, float32(size.Height)/2
	tip := image.Pt(
		int(cx+l.Length*float32(math.Cos(float64(l.Theta)))),
		int(cy+l.Length*float32(math.Sin(float64(l.Theta)))),
	)

	buf.Fill(' ', canvas.White)
	border := canvas.Solid(canvas.Paint('.', red))
	edges := [][2]image.Point{
		{image.Pt(right, bottom), image.Pt(0, bottom)},
		{image.Pt(0, bottom), image.Pt(0, 0)},
		{image.Pt(right, 0), image.Pt(right, bottom)},
		{image.Pt(0, 0), image.Pt(right, 0)},
	}
	for _, e := range edges {
		if err := buf.DrawLine(e[0], e[1], border); err != nil {
			return runner.End, err
		}
	}
	center := image.Pt(int(cx), int(cy))
	if err := buf.DrawLine(center, tip, canvas.Solid(canvas.Paint('.', canvas.White))); err != nil {
		return runner.End, err
	}
	return runner.Continue, nil
}
