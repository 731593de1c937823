package terminal

import (
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/cellbuf"
	"github.com/idursun/text3d/internal/canvas"
	"github.com/muesli/termenv"
)

// Solid is the glyph painted as a filled block: it gets its color as the
// background too.
const Solid = '.'

// Encode renders v as terminal text. Every cell is printed twice side by side
// so that a square buffer looks square on screen; rows are separated by
// "\r\n". Colors are reduced to profile, the Ascii profile drops them.
// Rows keep their trailing blanks so a frame fully covers the previous one.
func Encode(v canvas.View, profile termenv.Profile) string {
	size := v.Size()
	screen := cellbuf.NewBuffer(int(size.Width)*2, int(size.Height))
	for y := 0; y < int(size.Height); y++ {
		for x := 0; x < int(size.Width); x++ {
			c, _ := v.Cell(image.Pt(x, y))
			cell := toCell(c, profile)
			if cell.Width > 1 {
				screen.SetCell(x*2, y, cell)
				continue
			}
			screen.SetCell(x*2, y, cell)
			screen.SetCell(x*2+1, y, cell)
		}
	}
	rows := make([]string, size.Height)
	for y := range rows {
		_, line := cellbuf.RenderLine(screen, y)
		if pad := screen.Width() - ansi.StringWidth(line); pad > 0 {
			line += strings.Repeat(" ", pad)
		}
		rows[y] = line
	}
	return strings.Join(rows, "\r\n")
}

func toCell(c canvas.Cell, profile termenv.Profile) *cellbuf.Cell {
	cell := cellbuf.NewCell(c.Char)
	if cell.Width == 0 {
		cell = cellbuf.NewCell(' ')
	}
	fg := convert(c.Color, profile)
	if fg == nil {
		return cell
	}
	cell.Style.Foreground(fg)
	if c.Char == Solid {
		cell.Style.Background(fg)
	}
	return cell
}

// convert maps an RGB color to the closest color the profile can show.
func convert(c canvas.RGB, profile termenv.Profile) ansi.Color {
	switch profile {
	case termenv.TrueColor:
		return ansi.RGBColor{R: c.R, G: c.G, B: c.B}
	case termenv.ANSI256:
		return ansi.Convert256(color.Color(c))
	case termenv.ANSI:
		return ansi.Convert16(color.Color(c))
	default:
		return nil
	}
}
