package screen

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Segment is a run of text rendered with a single style.
type Segment struct {
	Text  string
	Style lipgloss.Style
}

func (s Segment) String() string {
	return s.Style.Render(s.Text)
}

// Join renders the non-empty segments separated by sep.
func Join(sep string, segments ...Segment) string {
	var b strings.Builder
	for _, s := range segments {
		if s.Text == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(s.String())
	}
	return b.String()
}
