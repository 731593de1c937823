package scene

import "fmt"

// RasterizationError reports a failure inside the 3D pipeline.
type RasterizationError struct {
	Op  string
	Err error
}

func (e *RasterizationError) Error() string {
	if e.Err == nil {
		return "rasterization failed: " + e.Op
	}
	return fmt.Sprintf("rasterization failed: %s: %v", e.Op, e.Err)
}

func (e *RasterizationError) Unwrap() error {
	return e.Err
}

// ConfigError reports an invalid camera or rasterizer parameter.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
