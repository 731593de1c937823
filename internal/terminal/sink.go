package terminal

import (
	"bytes"
	"io"

	"github.com/charmbracelet/x/ansi"
	"github.com/idursun/text3d/internal/canvas"
	"github.com/muesli/termenv"
)

type Option func(*Sink)

// WithProfile overrides the color profile detected from the environment.
func WithProfile(p termenv.Profile) Option {
	return func(s *Sink) {
		s.profile = &p
	}
}

// Sink draws frames in place on a terminal.
type Sink struct {
	w       io.Writer
	staging bytes.Buffer
	out     *termenv.Output
	profile *termenv.Profile
	started bool
}

func NewSink(w io.Writer, opts ...Option) *Sink {
	s := &Sink{w: w}
	for _, opt := range opts {
		opt(s)
	}
	var outOpts []termenv.OutputOption
	if s.profile != nil {
		outOpts = append(outOpts, termenv.WithProfile(*s.profile))
	} else {
		// detect from the real writer, the staging buffer is never a tty
		outOpts = append(outOpts, termenv.WithProfile(termenv.NewOutput(w).Profile))
	}
	s.out = termenv.NewOutput(&s.staging, outOpts...)
	return s
}

func (s *Sink) Profile() termenv.Profile {
	return s.out.Profile
}

// Present writes one frame. The first frame clears the screen and hides the
// cursor; every frame is drawn from the saved cursor position inside a
// synchronized update.
func (s *Sink) Present(v canvas.View) error {
	s.staging.Reset()
	if !s.started {
		s.out.ClearScreen()
		s.out.HideCursor()
		s.out.SaveCursorPosition()
		s.started = true
	}
	s.staging.WriteString(ansi.SetSynchronizedOutputMode)
	s.out.RestoreCursorPosition()
	s.staging.WriteString(Encode(v, s.out.Profile))
	s.staging.WriteString(ansi.ResetSynchronizedOutputMode)
	return s.flush()
}

// Close shows the cursor again and moves it below the last frame.
func (s *Sink) Close() error {
	s.staging.Reset()
	if s.started {
		s.staging.WriteString("\r\n")
	}
	s.out.ShowCursor()
	return s.flush()
}

func (s *Sink) flush() error {
	_, err := s.w.Write(s.staging.Bytes())
	return err
}
