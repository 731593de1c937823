package canvas

import (
	"fmt"
	"image"
)

// OutOfBoundsError is returned when a cell outside the buffer is written.
type OutOfBoundsError struct {
	Attempted  image.Point
	Dimensions Size
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("out of bounds access: attempted position %d,%d in a %s buffer",
		e.Attempted.X, e.Attempted.Y, e.Dimensions)
}

// SizeConversionError is returned when a size cannot be addressed by the buffer's cell index.
type SizeConversionError struct {
	Width, Height uint32
}

func (e *SizeConversionError) Error() string {
	return fmt.Sprintf("size %dx%d cannot be represented as a cell index", e.Width, e.Height)
}

// InvalidSourceError is returned by Parse for malformed text input.
type InvalidSourceError struct {
	Reason string
	// Row is the offending row, or -1 when the input as a whole is rejected.
	Row int
}

func (e *InvalidSourceError) Error() string {
	if e.Row < 0 {
		return "invalid buffer source: " + e.Reason
	}
	return fmt.Sprintf("invalid buffer source: row %d: %s", e.Row, e.Reason)
}
