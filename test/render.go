package test

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Stripped normalizes terminal output for comparisons: escape sequences and
// carriage returns are removed and every line is trimmed.
func Stripped(s string) string {
	s = ansi.Strip(s)
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.TrimSpace(s)

	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	return strings.Join(lines, "\n")
}
