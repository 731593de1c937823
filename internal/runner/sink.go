package runner

import (
	"io"

	"github.com/idursun/text3d/internal/canvas"
)

// Sink receives every completed frame.
type Sink interface {
	Present(v canvas.View) error
}

// WriterSink writes the plain characters of each frame to W.
type WriterSink struct {
	W io.Writer
}

func (s WriterSink) Present(v canvas.View) error {
	_, err := io.WriteString(s.W, canvas.Text(v))
	return err
}
