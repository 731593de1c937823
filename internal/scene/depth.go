package scene

import (
	"fmt"
	"image"
	"math"

	"github.com/idursun/text3d/internal/canvas"
)

// EmptyDepth marks a pixel nothing has been drawn to. Smaller depths are
// nearer, so every real fragment wins against it.
var EmptyDepth = float32(math.Inf(1))

// DepthBuffer keeps the nearest depth drawn to each pixel.
type DepthBuffer struct {
	size canvas.Size
	data []float32
}

func NewDepthBuffer(size canvas.Size) (*DepthBuffer, error) {
	n, err := size.Cells()
	if err != nil {
		return nil, fmt.Errorf("creating depth buffer: %w", err)
	}
	d := &DepthBuffer{size: size, data: make([]float32, n)}
	d.Clear()
	return d, nil
}

func (d *DepthBuffer) Size() canvas.Size {
	return d.size
}

// Clear resets every pixel to EmptyDepth.
func (d *DepthBuffer) Clear() {
	for i := range d.data {
		d.data[i] = EmptyDepth
	}
}

// At returns the stored depth at p.
func (d *DepthBuffer) At(p image.Point) (float32, bool) {
	if !d.size.Contains(p) {
		return 0, false
	}
	return d.data[p.Y*int(d.size.Width)+p.X], true
}

// Test records z at p if it is nearer than the stored depth and reports
// whether it was. NaN never passes.
func (d *DepthBuffer) Test(p image.Point, z float32) bool {
	if !d.size.Contains(p) {
		return false
	}
	i := p.Y*int(d.size.Width) + p.X
	if !(z < d.data[i]) {
		return false
	}
	d.data[i] = z
	return true
}
