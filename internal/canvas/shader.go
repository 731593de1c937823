package canvas

import "image"

// Shader decides what a rasterized pixel becomes. It receives a read-only view
// of the target and must not write to it. Shade is called once per covered,
// in-bounds pixel.
type Shader interface {
	Shade(p image.Point, v View) Fragment
}

// ShaderFunc adapts a function to the Shader interface.
type ShaderFunc func(p image.Point, v View) Fragment

func (f ShaderFunc) Shade(p image.Point, v View) Fragment {
	return f(p, v)
}

// Solid returns a shader producing the same fragment for every pixel.
func Solid(f Fragment) Shader {
	return ShaderFunc(func(image.Point, View) Fragment { return f })
}

// plotter shades and writes pixels, keeping the first write error and
// continuing with the remaining pixels.
type plotter struct {
	s      Surface
	shader Shader
	err    error
}

func (pl *plotter) plot(p image.Point) {
	if !pl.s.Valid(p) {
		return
	}
	f := pl.shader.Shade(p, readOnly{pl.s})
	if err := pl.s.Set(p, f); err != nil && pl.err == nil {
		pl.err = err
	}
}

// readOnly hides the write half of a Surface from shaders.
type readOnly struct {
	View
}
