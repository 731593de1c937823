package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	DefaultLook = mgl32.Vec3{0, 0, 1}
	DefaultUp   = mgl32.Vec3{0, 1, 0}
)

const DefaultNear float32 = 1.0

// CameraConfig lists every camera parameter. Zero Look, Up and Near select
// the defaults (+Z, +Y and 1.0). FOV is the vertical field of view in radians.
type CameraConfig struct {
	Position mgl32.Vec3
	Look     mgl32.Vec3
	Up       mgl32.Vec3
	FOV      float32
	Aspect   float32
	Near     float32
}

// cachedMatrix is a derived matrix that is either fresh or stale.
type cachedMatrix struct {
	m     mgl32.Mat4
	fresh bool
}

func (c *cachedMatrix) get(build func() mgl32.Mat4) mgl32.Mat4 {
	if !c.fresh {
		c.m = build()
		c.fresh = true
	}
	return c.m
}

func (c *cachedMatrix) invalidate() {
	c.fresh = false
}

// Camera maps world space points to normalized device coordinates using a
// right handed look-to view and an infinite far plane perspective projection.
//
// The view matrix depends on position, look and up; the projection on FOV,
// aspect and near. Setters mark only the matrix they affect as stale and both
// are rebuilt on the next read. A Camera is not safe for concurrent use.
type Camera struct {
	position mgl32.Vec3
	look     mgl32.Vec3
	up       mgl32.Vec3
	fov      float32
	aspect   float32
	near     float32

	view       cachedMatrix
	projection cachedMatrix
}

// NewCamera validates cfg, applies defaults and normalizes the directions.
func NewCamera(cfg CameraConfig) (*Camera, error) {
	if cfg.Look == (mgl32.Vec3{}) {
		cfg.Look = DefaultLook
	}
	if cfg.Up == (mgl32.Vec3{}) {
		cfg.Up = DefaultUp
	}
	if cfg.Near == 0 {
		cfg.Near = DefaultNear
	}
	switch {
	case !validFOV(cfg.FOV):
		return nil, &ConfigError{Field: "fov", Reason: "must be between 0 and pi radians"}
	case !(cfg.Aspect > 0):
		return nil, &ConfigError{Field: "aspect", Reason: "must be positive"}
	case !(cfg.Near > 0):
		return nil, &ConfigError{Field: "near", Reason: "must be positive"}
	}
	look, up := cfg.Look.Normalize(), cfg.Up.Normalize()
	if parallel(look, up) {
		return nil, &ConfigError{Field: "up", Reason: "must not be parallel to the look direction"}
	}
	return &Camera{
		position: cfg.Position,
		look:     look,
		up:       up,
		fov:      cfg.FOV,
		aspect:   cfg.Aspect,
		near:     cfg.Near,
	}, nil
}

func validFOV(radians float32) bool {
	return radians > 0 && radians < math.Pi
}

func parallel(a, b mgl32.Vec3) bool {
	return a.Cross(b).Len() < 1e-6
}

func (c *Camera) Position() mgl32.Vec3 { return c.position }
func (c *Camera) Look() mgl32.Vec3     { return c.look }
func (c *Camera) Up() mgl32.Vec3       { return c.up }
func (c *Camera) FOV() float32         { return c.fov }
func (c *Camera) Aspect() float32      { return c.aspect }
func (c *Camera) Near() float32        { return c.near }

func (c *Camera) SetPosition(p mgl32.Vec3) {
	c.position = p
	c.view.invalidate()
}

// Move translates the camera by d.
func (c *Camera) Move(d mgl32.Vec3) {
	c.SetPosition(c.position.Add(d))
}

// SetLook points the camera along d. Zero vectors are rejected.
func (c *Camera) SetLook(d mgl32.Vec3) error {
	if d.LenSqr() == 0 {
		return &ConfigError{Field: "look", Reason: "must not be zero"}
	}
	c.look = d.Normalize()
	c.view.invalidate()
	return nil
}

// LookAt points the camera at target.
func (c *Camera) LookAt(target mgl32.Vec3) error {
	return c.SetLook(target.Sub(c.position))
}

// SetUp changes the up vector. Zero vectors are rejected.
func (c *Camera) SetUp(u mgl32.Vec3) error {
	if u.LenSqr() == 0 {
		return &ConfigError{Field: "up", Reason: "must not be zero"}
	}
	c.up = u.Normalize()
	c.view.invalidate()
	return nil
}

// Rotate applies q to both the look and the up direction.
func (c *Camera) Rotate(q mgl32.Quat) {
	c.look = q.Rotate(c.look).Normalize()
	c.up = q.Rotate(c.up).Normalize()
	c.view.invalidate()
}

// Roll rotates the camera about its look direction.
func (c *Camera) Roll(radians float32) {
	c.Rotate(mgl32.QuatRotate(radians, c.look))
}

// SetFOV changes the vertical field of view, which must be in (0, pi).
func (c *Camera) SetFOV(radians float32) error {
	if !validFOV(radians) {
		return &ConfigError{Field: "fov", Reason: "must be between 0 and pi radians"}
	}
	c.fov = radians
	c.projection.invalidate()
	return nil
}

func (c *Camera) SetAspect(aspect float32) error {
	if !(aspect > 0) {
		return &ConfigError{Field: "aspect", Reason: "must be positive"}
	}
	c.aspect = aspect
	c.projection.invalidate()
	return nil
}

// SetNear moves the near plane. A plane at 0 would map every depth to 1.
func (c *Camera) SetNear(near float32) error {
	if !(near > 0) {
		return &ConfigError{Field: "near", Reason: "must be positive"}
	}
	c.near = near
	c.projection.invalidate()
	return nil
}

// View returns the world to camera matrix.
func (c *Camera) View() mgl32.Mat4 {
	return c.view.get(func() mgl32.Mat4 {
		return mgl32.LookAtV(c.position, c.position.Add(c.look), c.up)
	})
}

// Projection returns the camera to clip space matrix.
func (c *Camera) Projection() mgl32.Mat4 {
	return c.projection.get(func() mgl32.Mat4 {
		return perspectiveInfinite(c.fov, c.aspect, c.near)
	})
}

// Project maps a world space point to normalized device coordinates. X and Y
// are in [-1, 1] for visible points; Z is 1 - near/distance, so it is 0 on the
// near plane and grows towards 1 with distance.
func (c *Camera) Project(p mgl32.Vec3) mgl32.Vec3 {
	return mgl32.TransformCoordinate(p, c.Projection().Mul4(c.View()))
}

// perspectiveInfinite is a right handed perspective projection with the far
// plane at infinity, mapping depth to [0, 1).
func perspectiveInfinite(fovY, aspect, near float32) mgl32.Mat4 {
	f := float32(1 / math.Tan(float64(fovY)/2))
	return mgl32.Mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, -1, -1,
		0, 0, -near, 0,
	}
}
