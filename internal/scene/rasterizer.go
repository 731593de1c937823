package scene

import (
	"fmt"
	"image"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/idursun/text3d/internal/canvas"
)

// DefaultGlyph is the character written for rasterized fragments.
const DefaultGlyph = '.'

// RasterizerConfig lists every rasterizer parameter. Start from
// DefaultRasterizerConfig and override what is needed.
type RasterizerConfig struct {
	Camera *Camera
	// World transforms object space vertices before projection.
	World mgl32.Mat4
	// Light points from a surface towards the light source. It is normalized.
	Light mgl32.Vec3
	// Ambient is the fraction of a color that is lit regardless of the light, in [0, 1].
	Ambient float32
	Glyph   rune
}

// DefaultRasterizerConfig returns an identity world transform, a light
// along (1, 1, -0.1) and 60% ambient lighting.
func DefaultRasterizerConfig(camera *Camera) RasterizerConfig {
	return RasterizerConfig{
		Camera:  camera,
		World:   mgl32.Ident4(),
		Light:   mgl32.Vec3{1, 1, -0.1},
		Ambient: 0.6,
		Glyph:   DefaultGlyph,
	}
}

// Rasterizer draws lit, depth tested 3D triangles into a canvas.
//
// The depth buffer is created on the first draw to match the target and is
// recreated whenever the target size changes. ClearFrame must be called
// before the first triangle of every frame.
type Rasterizer struct {
	camera  *Camera
	world   mgl32.Mat4
	light   mgl32.Vec3
	ambient float32
	glyph   rune
	depth   *DepthBuffer
}

func NewRasterizer(cfg RasterizerConfig) (*Rasterizer, error) {
	if cfg.Camera == nil {
		return nil, &ConfigError{Field: "camera", Reason: "is required"}
	}
	if cfg.Glyph == 0 {
		cfg.Glyph = DefaultGlyph
	}
	if cfg.World == (mgl32.Mat4{}) {
		cfg.World = mgl32.Ident4()
	}
	r := &Rasterizer{camera: cfg.Camera, world: cfg.World, glyph: cfg.Glyph}
	if err := r.SetLight(cfg.Light); err != nil {
		return nil, err
	}
	if err := r.SetAmbient(cfg.Ambient); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Rasterizer) Camera() *Camera       { return r.camera }
func (r *Rasterizer) World() mgl32.Mat4     { return r.world }
func (r *Rasterizer) Light() mgl32.Vec3     { return r.light }
func (r *Rasterizer) Ambient() float32      { return r.ambient }
func (r *Rasterizer) Depth() *DepthBuffer   { return r.depth }
func (r *Rasterizer) SetWorld(m mgl32.Mat4) { r.world = m }

func (r *Rasterizer) SetLight(d mgl32.Vec3) error {
	if d.LenSqr() == 0 {
		return &ConfigError{Field: "light", Reason: "must not be zero"}
	}
	r.light = d.Normalize()
	return nil
}

func (r *Rasterizer) SetAmbient(a float32) error {
	if !(a >= 0 && a <= 1) {
		return &ConfigError{Field: "ambient", Reason: "must be within [0, 1]"}
	}
	r.ambient = a
	return nil
}

// ClearFrame resets the depth buffer.
func (r *Rasterizer) ClearFrame() {
	if r.depth != nil {
		r.depth.Clear()
	}
}

// Project transforms p by the world matrix and then by the camera.
func (r *Rasterizer) Project(p mgl32.Vec3) mgl32.Vec3 {
	return r.camera.Project(mgl32.TransformCoordinate(p, r.world))
}

// Shade returns the flat lit color of t after the world transform, or false
// when t faces away from the camera and is culled.
func (r *Rasterizer) Shade(t Triangle) (canvas.RGB, bool) {
	return r.shade(r.toWorld(t))
}

func (r *Rasterizer) toWorld(t Triangle) Triangle {
	for i, v := range t.V {
		t.V[i] = mgl32.TransformCoordinate(v, r.world)
	}
	return t
}

func (r *Rasterizer) shade(t Triangle) (canvas.RGB, bool) {
	if t.degenerate() {
		return canvas.RGB{}, false
	}
	normal := t.Normal()
	if r.camera.Look().Dot(normal) >= 0 {
		return canvas.RGB{}, false
	}
	intensity := max(normal.Dot(r.light), 0)*(1-r.ambient) + r.ambient
	return t.Color.Scale(intensity), true
}

// RasterizeTriangle draws t into buf. Culling and lighting use the normal of
// t after the world transform. Culled triangles and triangles with a vertex
// behind the near plane leave buf and the depth buffer untouched.
func (r *Rasterizer) RasterizeTriangle(t Triangle, buf canvas.Surface) error {
	if err := r.ensureDepth(buf.Size()); err != nil {
		return err
	}
	t = r.toWorld(t)
	color, visible := r.shade(t)
	if !visible {
		return nil
	}

	size := buf.Size()
	halfW, halfH := float32(size.Width)/2, float32(size.Height)/2
	var fs fragmentShader
	var pixels [3]image.Point
	for i, v := range t.V {
		p := r.camera.Project(v)
		if !(p.Z() >= 0 && p.Z() <= 1) {
			return nil
		}
		sx, sy := (p.X()+1)*halfW, (p.Y()+1)*halfH
		fs.screen[i] = mgl32.Vec2{sx, sy}
		fs.z[i] = p.Z()
		pixels[i] = image.Pt(int(math.Floor(float64(sx))), int(math.Floor(float64(sy))))
	}
	fs.depth = r.depth
	fs.frag = canvas.Paint(r.glyph, color)
	fs.area = edge(fs.screen[0], fs.screen[1], fs.screen[2])

	if err := canvas.DrawTriangle(buf, pixels, &fs); err != nil {
		return &RasterizationError{Op: "rasterize triangle", Err: err}
	}
	return nil
}

// RasterizeMesh draws every triangle of m. All triangles are attempted and
// the first error is returned.
func (r *Rasterizer) RasterizeMesh(m *Mesh, buf canvas.Surface) error {
	var first error
	for i, t := range m.All() {
		if err := r.RasterizeTriangle(t, buf); err != nil && first == nil {
			first = fmt.Errorf("triangle %d: %w", i, err)
		}
	}
	return first
}

func (r *Rasterizer) ensureDepth(size canvas.Size) error {
	if r.depth != nil && r.depth.Size() == size {
		return nil
	}
	d, err := NewDepthBuffer(size)
	if err != nil {
		return &RasterizationError{Op: "allocate depth buffer", Err: err}
	}
	r.depth = d
	return nil
}

// fragmentShader interpolates depth across a projected triangle and only
// emits fragments that pass the depth test.
type fragmentShader struct {
	screen [3]mgl32.Vec2
	z      [3]float32
	area   float32
	depth  *DepthBuffer
	frag   canvas.Fragment
}

func (fs *fragmentShader) Shade(p image.Point, _ canvas.View) canvas.Fragment {
	if fs.depth.Test(p, fs.depthAt(p)) {
		return fs.frag
	}
	return canvas.Fragment{}
}

// depthAt interpolates the vertex depths at the pixel center using
// barycentric weights. Depth in normalized device coordinates is affine in
// screen space, so linear interpolation is exact.
func (fs *fragmentShader) depthAt(p image.Point) float32 {
	if fs.area == 0 {
		return min(fs.z[0], fs.z[1], fs.z[2])
	}
	c := mgl32.Vec2{float32(p.X) + 0.5, float32(p.Y) + 0.5}
	w0 := edge(fs.screen[1], fs.screen[2], c) / fs.area
	w1 := edge(fs.screen[2], fs.screen[0], c) / fs.area
	w2 := 1 - w0 - w1
	return w0*fs.z[0] + w1*fs.z[1] + w2*fs.z[2]
}

// edge is twice the signed area of the triangle a, b, c.
func edge(a, b, c mgl32.Vec2) float32 {
	return (b.X()-a.X())*(c.Y()-a.Y()) - (b.Y()-a.Y())*(c.X()-a.X())
}
