package canvas

import (
	"image"
	"strings"

	"github.com/rivo/uniseg"
)

// Parse builds a buffer from text, one row per line, with every cell set to color.
// Each grapheme cluster becomes one cell holding the cluster's first rune.
// A single trailing newline is ignored.
func Parse(src string, color RGB) (*Buffer, error) {
	src = strings.TrimSuffix(src, "\n")
	if src == "" {
		return nil, &InvalidSourceError{Reason: "empty input", Row: -1}
	}
	lines := strings.Split(src, "\n")
	rows := make([][]rune, len(lines))
	for y, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		row := make([]rune, 0, len(line))
		g := uniseg.NewGraphemes(line)
		for g.Next() {
			row = append(row, g.Runes()[0])
		}
		if y > 0 && len(row) != len(rows[0]) {
			return nil, &InvalidSourceError{Reason: "rows of unequal length", Row: y}
		}
		rows[y] = row
	}
	if len(rows[0]) == 0 {
		return nil, &InvalidSourceError{Reason: "empty rows", Row: 0}
	}

	b, err := NewBuffer(Size{Width: uint32(len(rows[0])), Height: uint32(len(rows))}, ' ', color)
	if err != nil {
		return nil, err
	}
	for y, row := range rows {
		for x, ch := range row {
			b.cells[b.index(image.Pt(x, y))].Char = ch
		}
	}
	return b, nil
}
