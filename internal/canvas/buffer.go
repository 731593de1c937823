package canvas

import (
	"fmt"
	"image"
	"math"
	"strings"
)

// maxCells is the largest grid addressable by the buffer's int32 cell index.
const maxCells = math.MaxInt32

// Size is the extent of a buffer in cells.
type Size struct {
	Width, Height uint32
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Empty reports whether the size has no cells.
func (s Size) Empty() bool {
	return s.Width == 0 || s.Height == 0
}

// Contains reports whether p lies inside a grid of this size.
func (s Size) Contains(p image.Point) bool {
	return p.X >= 0 && p.Y >= 0 && int64(p.X) < int64(s.Width) && int64(p.Y) < int64(s.Height)
}

// Cells returns the number of cells, or an error if that count does not fit the cell index.
func (s Size) Cells() (int, error) {
	n := uint64(s.Width) * uint64(s.Height)
	if n > maxCells {
		return 0, &SizeConversionError{Width: s.Width, Height: s.Height}
	}
	return int(n), nil
}

// Cell is a single character with its color.
type Cell struct {
	Char  rune
	Color RGB
}

// View is read-only access to a grid of cells.
type View interface {
	Size() Size
	// Cell returns the cell at p, or false when p is outside the grid.
	Cell(p image.Point) (Cell, bool)
	Valid(p image.Point) bool
}

// Surface is a View that can be written to.
type Surface interface {
	View
	Set(p image.Point, f Fragment) error
}

// Buffer is a width x height grid of cells stored row-major.
// x is the column and y is the row throughout.
type Buffer struct {
	size  Size
	cells []Cell
}

var _ Surface = (*Buffer)(nil)

// NewBuffer creates a buffer with every cell set to fill and color.
func NewBuffer(size Size, fill rune, color RGB) (*Buffer, error) {
	n, err := size.Cells()
	if err != nil {
		return nil, fmt.Errorf("creating buffer: %w", err)
	}
	b := &Buffer{size: size, cells: make([]Cell, n)}
	b.Fill(fill, color)
	return b, nil
}

func (b *Buffer) Size() Size {
	return b.size
}

// Valid reports whether both coordinates are non-negative and inside the buffer.
func (b *Buffer) Valid(p image.Point) bool {
	return b.size.Contains(p)
}

func (b *Buffer) index(p image.Point) int {
	return p.Y*int(b.size.Width) + p.X
}

// Cell returns the cell at p. It never fails; out of range positions report false.
func (b *Buffer) Cell(p image.Point) (Cell, bool) {
	if !b.Valid(p) {
		return Cell{}, false
	}
	return b.cells[b.index(p)], true
}

// Set applies f to the cell at p.
func (b *Buffer) Set(p image.Point, f Fragment) error {
	if !b.Valid(p) {
		return &OutOfBoundsError{Attempted: p, Dimensions: b.size}
	}
	i := b.index(p)
	b.cells[i] = f.apply(b.cells[i])
	return nil
}

// SetChar updates only the character at p.
func (b *Buffer) SetChar(p image.Point, ch rune) error {
	return b.Set(p, Glyph(ch))
}

// SetColor updates only the color at p.
func (b *Buffer) SetColor(p image.Point, c RGB) error {
	return b.Set(p, Tint(c))
}

// Fill sets every cell to ch and color.
func (b *Buffer) Fill(ch rune, color RGB) {
	for i := range b.cells {
		b.cells[i] = Cell{Char: ch, Color: color}
	}
}

// Resize changes the buffer extent. Cells in the overlap keep their contents,
// new cells are set to fill and color.
func (b *Buffer) Resize(size Size, fill rune, color RGB) error {
	n, err := size.Cells()
	if err != nil {
		return fmt.Errorf("resizing buffer: %w", err)
	}
	cells := make([]Cell, n)
	w, h := int(size.Width), int(size.Height)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c, ok := b.Cell(image.Pt(x, y))
			if !ok {
				c = Cell{Char: fill, Color: color}
			}
			cells[y*w+x] = c
		}
	}
	b.size = size
	b.cells = cells
	return nil
}

// Lines returns a row-major copy of the grid.
func (b *Buffer) Lines() [][]Cell {
	w := int(b.size.Width)
	lines := make([][]Cell, b.size.Height)
	for y := range lines {
		row := make([]Cell, w)
		copy(row, b.cells[y*w:(y+1)*w])
		lines[y] = row
	}
	return lines
}

// String renders the characters of the buffer, one row per line.
func (b *Buffer) String() string {
	return Text(b)
}

// Text renders the characters of v, each row followed by a newline.
func Text(v View) string {
	size := v.Size()
	var sb strings.Builder
	sb.Grow(int(size.Width+1) * int(size.Height))
	for y := 0; y < int(size.Height); y++ {
		for x := 0; x < int(size.Width); x++ {
			c, _ := v.Cell(image.Pt(x, y))
			sb.WriteRune(c.Char)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// DrawLine draws a line on the buffer, see DrawLine.
func (b *Buffer) DrawLine(start, end image.Point, shader Shader) error {
	return DrawLine(b, start, end, shader)
}

// DrawTriangle fills a triangle on the buffer, see DrawTriangle.
func (b *Buffer) DrawTriangle(vertices [3]image.Point, shader Shader) error {
	return DrawTriangle(b, vertices, shader)
}
