package scene

import (
	"errors"
	"image"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/idursun/text3d/internal/canvas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var orange = canvas.RGB{R: 255, G: 100, B: 0}

// facing is a triangle at distance z whose front faces the default camera.
func facing(z, half float32, color canvas.RGB) Triangle {
	return Triangle{
		V:     [3]mgl32.Vec3{{-half, -half, z}, {half, -half, z}, {half, half, z}},
		Color: color,
	}
}

func newRasterizer(t *testing.T, light mgl32.Vec3, ambient float32) *Rasterizer {
	t.Helper()
	cfg := DefaultRasterizerConfig(newCamera(t))
	cfg.Light = light
	cfg.Ambient = ambient
	r, err := NewRasterizer(cfg)
	require.NoError(t, err)
	return r
}

func newTarget(t *testing.T) *canvas.Buffer {
	t.Helper()
	b, err := canvas.NewBuffer(canvas.Size{Width: 20, Height: 20}, ' ', canvas.Black)
	require.NoError(t, err)
	return b
}

func drawnCells(b *canvas.Buffer) int {
	n := 0
	for _, row := range b.Lines() {
		for _, c := range row {
			if c.Char != ' ' {
				n++
			}
		}
	}
	return n
}

func TestNewRasterizer_Defaults(t *testing.T) {
	r, err := NewRasterizer(DefaultRasterizerConfig(newCamera(t)))
	require.NoError(t, err)
	assert.Equal(t, float32(0.6), r.Ambient())
	assert.InDelta(t, 1, r.Light().Len(), eps)
	assert.Equal(t, mgl32.Ident4(), r.World())
	assert.Nil(t, r.Depth())
}

func TestNewRasterizer_Invalid(t *testing.T) {
	cam := newCamera(t)
	tests := []struct {
		name   string
		mutate func(cfg *RasterizerConfig)
		field  string
	}{
		{"missing camera", func(cfg *RasterizerConfig) { cfg.Camera = nil }, "camera"},
		{"zero light", func(cfg *RasterizerConfig) { cfg.Light = mgl32.Vec3{} }, "light"},
		{"ambient above one", func(cfg *RasterizerConfig) { cfg.Ambient = 1.5 }, "ambient"},
		{"negative ambient", func(cfg *RasterizerConfig) { cfg.Ambient = -0.1 }, "ambient"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultRasterizerConfig(cam)
			tc.mutate(&cfg)
			_, err := NewRasterizer(cfg)
			var cfgErr *ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tc.field, cfgErr.Field)
		})
	}
}

func TestRasterizeTriangle_DrawsFrontFace(t *testing.T) {
	r := newRasterizer(t, mgl32.Vec3{0, 0, -1}, 0.5)
	b := newTarget(t)
	r.ClearFrame()

	require.NoError(t, r.RasterizeTriangle(facing(5, 1, orange), b))

	cell, ok := b.Cell(image.Pt(9, 9))
	require.True(t, ok)
	assert.Equal(t, canvas.Cell{Char: DefaultGlyph, Color: orange}, cell)
	assert.Greater(t, drawnCells(b), 0)

	z, _ := r.Depth().At(image.Pt(9, 9))
	assert.InDelta(t, 0.8, z, 1e-3)
}

func TestRasterizeTriangle_CullsBackFace(t *testing.T) {
	r := newRasterizer(t, mgl32.Vec3{0, 0, -1}, 0.5)
	b := newTarget(t)
	back := facing(5, 1, orange)
	back.V[1], back.V[2] = back.V[2], back.V[1]

	require.NoError(t, r.RasterizeTriangle(back, b))
	assert.Equal(t, 0, drawnCells(b))
	z, _ := r.Depth().At(image.Pt(9, 9))
	assert.Equal(t, EmptyDepth, z)
}

func TestRasterizeTriangle_EdgeOnIsCulled(t *testing.T) {
	r := newRasterizer(t, mgl32.Vec3{0, 0, -1}, 0.5)
	b := newTarget(t)
	edgeOn := Triangle{V: [3]mgl32.Vec3{{0, -1, 4}, {0, 1, 6}, {0, -1, 6}}, Color: orange}
	require.NoError(t, r.RasterizeTriangle(edgeOn, b))
	assert.Equal(t, 0, drawnCells(b))
}

func TestRasterizeTriangle_NearerWinsInAnyOrder(t *testing.T) {
	near := facing(4, 1, orange)
	far := facing(6, 4, canvas.White)

	orders := map[string][]Triangle{
		"near first": {near, far},
		"far first":  {far, near},
	}
	for name, order := range orders {
		t.Run(name, func(t *testing.T) {
			r := newRasterizer(t, mgl32.Vec3{0, 0, -1}, 0.5)
			b := newTarget(t)
			r.ClearFrame()
			for _, tri := range order {
				require.NoError(t, r.RasterizeTriangle(tri, b))
			}
			overlap, _ := b.Cell(image.Pt(9, 9))
			assert.Equal(t, orange, overlap.Color)
			farOnly, _ := b.Cell(image.Pt(4, 4))
			assert.Equal(t, canvas.White, farOnly.Color)
		})
	}
}

func TestRasterizeTriangle_Lighting(t *testing.T) {
	tests := []struct {
		name     string
		light    mgl32.Vec3
		ambient  float32
		expected canvas.RGB
	}{
		{"lit head on", mgl32.Vec3{0, 0, -1}, 0.5, orange},
		{"lit from behind", mgl32.Vec3{0, 0, 1}, 0.5, canvas.RGB{R: 127, G: 50, B: 0}},
		{"no ambient lit from behind", mgl32.Vec3{0, 0, 1}, 0, canvas.RGB{}},
		{"full ambient", mgl32.Vec3{0, 0, 1}, 1, orange},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := newRasterizer(t, tc.light, tc.ambient)
			color, visible := r.Shade(facing(5, 1, orange))
			require.True(t, visible)
			assert.Equal(t, tc.expected, color)

			b := newTarget(t)
			require.NoError(t, r.RasterizeTriangle(facing(5, 1, orange), b))
			cell, _ := b.Cell(image.Pt(9, 9))
			assert.Equal(t, tc.expected, cell.Color)
		})
	}
}

func TestRasterizeTriangle_SkipsVerticesOutsideDepthRange(t *testing.T) {
	tests := []struct {
		name string
		tri  Triangle
	}{
		{"behind the camera", facing(-5, 1, orange)},
		{"before the near plane", facing(0.5, 0.1, orange)},
		{"one vertex on the eye", Triangle{V: [3]mgl32.Vec3{{-1, -1, 5}, {1, -1, 5}, {0, 0, 0}}, Color: orange}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := newRasterizer(t, mgl32.Vec3{0, 0, -1}, 0.5)
			b := newTarget(t)
			require.NoError(t, r.RasterizeTriangle(tc.tri, b))
			assert.Equal(t, 0, drawnCells(b))
		})
	}
}

func TestRasterizeTriangle_OffScreen(t *testing.T) {
	r := newRasterizer(t, mgl32.Vec3{0, 0, -1}, 0.5)
	b := newTarget(t)
	require.NoError(t, r.RasterizeTriangle(facing(5, 1, orange).Translate(mgl32.Vec3{-50, 0, 0}), b))
	assert.Equal(t, 0, drawnCells(b))
}

func TestRasterizer_WorldTransform(t *testing.T) {
	r := newRasterizer(t, mgl32.Vec3{0, 0, -1}, 0.5)
	b := newTarget(t)
	r.SetWorld(mgl32.Translate3D(0, 0, 10))

	require.NoError(t, r.RasterizeTriangle(facing(-5, 1, orange), b))
	cell, _ := b.Cell(image.Pt(9, 9))
	assert.Equal(t, orange, cell.Color)
	assertVec(t, mgl32.Vec3{0, 0, 0.8}, r.Project(mgl32.Vec3{0, 0, -5}))

	// Half a turn about Y makes the same triangle face away.
	r.SetWorld(mgl32.Translate3D(0, 0, 5).Mul4(mgl32.HomogRotate3DY(math.Pi)))
	_, visible := r.Shade(facing(0, 1, orange))
	assert.False(t, visible)
}

func TestRasterizer_ClearFrame(t *testing.T) {
	r := newRasterizer(t, mgl32.Vec3{0, 0, -1}, 0.5)
	b := newTarget(t)
	require.NoError(t, r.RasterizeTriangle(facing(5, 1, orange), b))

	// Without clearing, an equally distant triangle loses the depth test.
	b.Fill(' ', canvas.Black)
	require.NoError(t, r.RasterizeTriangle(facing(5, 1, canvas.White), b))
	assert.Equal(t, 0, drawnCells(b))

	r.ClearFrame()
	require.NoError(t, r.RasterizeTriangle(facing(5, 1, canvas.White), b))
	cell, _ := b.Cell(image.Pt(9, 9))
	assert.Equal(t, canvas.White, cell.Color)
}

func TestRasterizer_DepthFollowsTargetSize(t *testing.T) {
	r := newRasterizer(t, mgl32.Vec3{0, 0, -1}, 0.5)
	b := newTarget(t)
	require.NoError(t, r.RasterizeTriangle(facing(5, 1, orange), b))
	assert.Equal(t, b.Size(), r.Depth().Size())

	require.NoError(t, b.Resize(canvas.Size{Width: 30, Height: 10}, ' ', canvas.Black))
	require.NoError(t, r.RasterizeTriangle(facing(5, 1, orange), b))
	assert.Equal(t, b.Size(), r.Depth().Size())
}

func TestRasterizeMesh_Cube(t *testing.T) {
	r := newRasterizer(t, mgl32.Vec3{0, 0, -1}, 0.5)
	b := newTarget(t)
	r.ClearFrame()

	require.NoError(t, r.RasterizeMesh(Cube(mgl32.Vec3{0, 0, 5}, 2, orange), b))

	for _, row := range b.Lines() {
		for _, c := range row {
			if c.Char != ' ' {
				assert.Equal(t, orange, c.Color)
			}
		}
	}
	assert.Greater(t, drawnCells(b), 0)
	z, _ := r.Depth().At(image.Pt(9, 9))
	assert.InDelta(t, 0.75, z, 1e-3)
}

// rejecting fails every write.
type rejecting struct {
	*canvas.Buffer
	attempts int
}

var errRejected = errors.New("rejected")

func (r *rejecting) Set(image.Point, canvas.Fragment) error {
	r.attempts++
	return errRejected
}

func TestRasterizeTriangle_WrapsSurfaceErrors(t *testing.T) {
	r := newRasterizer(t, mgl32.Vec3{0, 0, -1}, 0.5)
	target := &rejecting{Buffer: newTarget(t)}

	err := r.RasterizeTriangle(facing(5, 1, orange), target)
	var rastErr *RasterizationError
	require.ErrorAs(t, err, &rastErr)
	assert.ErrorIs(t, err, errRejected)
	assert.Greater(t, target.attempts, 1)
}

func TestRasterizeMesh_ContinuesAfterError(t *testing.T) {
	r := newRasterizer(t, mgl32.Vec3{0, 0, -1}, 0.5)
	target := &rejecting{Buffer: newTarget(t)}
	mesh := NewMesh([]Triangle{facing(5, 1, orange), facing(4, 1, orange)})

	err := r.RasterizeMesh(mesh, target)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "triangle 0")

	single := &rejecting{Buffer: newTarget(t)}
	r.ClearFrame()
	_ = r.RasterizeTriangle(facing(5, 1, orange), single)
	assert.Greater(t, target.attempts, single.attempts)
}
