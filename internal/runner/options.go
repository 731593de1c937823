package runner

import (
	"fmt"
	"math"

	"github.com/idursun/text3d/internal/canvas"
)

const (
	DefaultFPS  = 10.0
	DefaultFill = ' '
)

// Options configures a Runner. Size is required; zero FPS, Fill and a nil
// Color select DefaultFPS, DefaultFill and white. A nil Sink discards frames.
type Options struct {
	Size  canvas.Size
	FPS   float64
	Fill  rune
	Color *canvas.RGB
	Sink  Sink
}

// OptionError reports an invalid runner option.
type OptionError struct {
	Field  string
	Reason string
}

func (e *OptionError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (o Options) withDefaults() (Options, error) {
	if o.Size.Empty() {
		return o, &OptionError{Field: "size", Reason: fmt.Sprintf("%s has no cells", o.Size)}
	}
	if o.FPS == 0 {
		o.FPS = DefaultFPS
	}
	if !(o.FPS > 0) || math.IsInf(o.FPS, 1) {
		return o, &OptionError{Field: "fps", Reason: "must be a positive number"}
	}
	if o.Fill == 0 {
		o.Fill = DefaultFill
	}
	if o.Color == nil {
		white := canvas.White
		o.Color = &white
	}
	return o, nil
}
