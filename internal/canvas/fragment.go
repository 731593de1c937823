package canvas

// FragmentMask selects which fields of a Fragment are applied to a cell.
type FragmentMask uint8

const (
	CharMask FragmentMask = 1 << iota
	ColorMask

	NoMask FragmentMask = 0
)

// Fragment is a partial cell update. Fields not selected by Mask leave the
// cell untouched, so the zero Fragment changes nothing.
type Fragment struct {
	Char  rune
	Color RGB
	Mask  FragmentMask
}

// Glyph updates only the character.
func Glyph(ch rune) Fragment {
	return Fragment{Char: ch, Mask: CharMask}
}

// Tint updates only the color.
func Tint(c RGB) Fragment {
	return Fragment{Color: c, Mask: ColorMask}
}

// Paint updates both character and color.
func Paint(ch rune, c RGB) Fragment {
	return Fragment{Char: ch, Color: c, Mask: CharMask | ColorMask}
}

func (f Fragment) HasChar() bool  { return f.Mask&CharMask != 0 }
func (f Fragment) HasColor() bool { return f.Mask&ColorMask != 0 }
func (f Fragment) Empty() bool    { return f.Mask == NoMask }

func (f Fragment) apply(c Cell) Cell {
	if f.HasChar() {
		c.Char = f.Char
	}
	if f.HasColor() {
		c.Color = f.Color
	}
	return c
}
