package config

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/idursun/text3d/internal/canvas"
	"github.com/idursun/text3d/internal/runner"
	"github.com/idursun/text3d/internal/scene"
	"github.com/rivo/uniseg"
)

// Current is the configuration the program was started with.
var Current = Default()

type Config struct {
	Frame  FrameConfig  `toml:"frame"`
	Camera CameraConfig `toml:"camera"`
	Light  LightConfig  `toml:"light"`
	Keys   KeysConfig   `toml:"keys"`
}

type FrameConfig struct {
	Width  int     `toml:"width"`
	Height int     `toml:"height"`
	FPS    float64 `toml:"fps"`
	Fill   string  `toml:"fill"`
	Color  string  `toml:"color"`
}

type CameraConfig struct {
	Position [3]float32 `toml:"position"`
	Look     [3]float32 `toml:"look"`
	Up       [3]float32 `toml:"up"`
	// FOV is the vertical field of view in degrees.
	FOV  float32 `toml:"fov"`
	Near float32 `toml:"near"`
	// Aspect of 0 is derived from the frame size.
	Aspect float32 `toml:"aspect"`
}

type LightConfig struct {
	Direction [3]float32 `toml:"direction"`
	Ambient   float32    `toml:"ambient"`
}

type KeysConfig struct {
	Quit  []string `toml:"quit"`
	Pause []string `toml:"pause"`
}

// ValidationError reports a rejected configuration value.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func Default() *Config {
	return &Config{
		Frame: FrameConfig{
			Width:  80,
			Height: 40,
			FPS:    runner.DefaultFPS,
			Fill:   string(runner.DefaultFill),
			Color:  canvas.White.Hex(),
		},
		Camera: CameraConfig{
			Position: [3]float32{0, 0, -3},
			Look:     scene.DefaultLook,
			Up:       scene.DefaultUp,
			FOV:      90,
			Near:     scene.DefaultNear,
		},
		Light: LightConfig{
			Direction: [3]float32{1, 1, -0.1},
			Ambient:   0.6,
		},
		Keys: KeysConfig{
			Quit:  []string{"q", "ctrl+c"},
			Pause: []string{" "},
		},
	}
}

// Load reads a TOML file and overlays it on the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	c, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes TOML text on top of the defaults and validates the result.
// Keys that do not belong to any section are rejected.
func Parse(text string) (*Config, error) {
	c := Default()
	md, err := toml.Decode(text, c)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, &ValidationError{Field: strings.Join(keys, ", "), Reason: "unknown key"}
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	f := c.Frame
	switch {
	case f.Width <= 0 || int64(f.Width) > math.MaxUint32:
		return &ValidationError{Field: "frame.width", Reason: "must be positive"}
	case f.Height <= 0 || int64(f.Height) > math.MaxUint32:
		return &ValidationError{Field: "frame.height", Reason: "must be positive"}
	case !(f.FPS > 0) || math.IsInf(f.FPS, 1):
		return &ValidationError{Field: "frame.fps", Reason: "must be positive"}
	case uniseg.GraphemeClusterCount(f.Fill) != 1:
		return &ValidationError{Field: "frame.fill", Reason: fmt.Sprintf("%q is not a single character", f.Fill)}
	}
	if _, err := canvas.ParseHex(f.Color); err != nil {
		return &ValidationError{Field: "frame.color", Reason: err.Error()}
	}

	cam := c.Camera
	switch {
	case !(cam.FOV > 0 && cam.FOV < 180):
		return &ValidationError{Field: "camera.fov", Reason: "must be between 0 and 180 degrees"}
	case !(cam.Near >= 0):
		return &ValidationError{Field: "camera.near", Reason: "must not be negative"}
	case !(cam.Aspect >= 0):
		return &ValidationError{Field: "camera.aspect", Reason: "must not be negative"}
	}

	switch {
	case mgl32.Vec3(c.Light.Direction).LenSqr() == 0:
		return &ValidationError{Field: "light.direction", Reason: "must not be zero"}
	case !(c.Light.Ambient >= 0 && c.Light.Ambient <= 1):
		return &ValidationError{Field: "light.ambient", Reason: "must be between 0 and 1"}
	}

	if len(c.Keys.Quit) == 0 {
		return &ValidationError{Field: "keys.quit", Reason: "needs at least one key"}
	}
	return nil
}

func (c *Config) FrameSize() canvas.Size {
	return canvas.Size{Width: uint32(c.Frame.Width), Height: uint32(c.Frame.Height)}
}

// FillRune returns the first rune of the fill character.
func (c *Config) FillRune() rune {
	g := uniseg.NewGraphemes(c.Frame.Fill)
	if !g.Next() {
		return runner.DefaultFill
	}
	return g.Runes()[0]
}

func (c *Config) FrameColor() canvas.RGB {
	rgb, err := canvas.ParseHex(c.Frame.Color)
	if err != nil {
		return canvas.White
	}
	return rgb
}

// RunnerOptions builds the runner options for the frame section.
func (c *Config) RunnerOptions(sink runner.Sink) runner.Options {
	color := c.FrameColor()
	return runner.Options{
		Size:  c.FrameSize(),
		FPS:   c.Frame.FPS,
		Fill:  c.FillRune(),
		Color: &color,
		Sink:  sink,
	}
}

// CameraConfig converts the camera section, deriving the aspect ratio from
// the frame when it is not set.
func (c *Config) CameraConfig() scene.CameraConfig {
	aspect := c.Camera.Aspect
	if aspect == 0 {
		aspect = float32(c.Frame.Width) / float32(c.Frame.Height)
	}
	return scene.CameraConfig{
		Position: c.Camera.Position,
		Look:     c.Camera.Look,
		Up:       c.Camera.Up,
		FOV:      mgl32.DegToRad(c.Camera.FOV),
		Aspect:   aspect,
		Near:     c.Camera.Near,
	}
}

// RasterizerConfig converts the light section for the given camera.
func (c *Config) RasterizerConfig(camera *scene.Camera) scene.RasterizerConfig {
	cfg := scene.DefaultRasterizerConfig(camera)
	cfg.Light = c.Light.Direction
	cfg.Ambient = c.Light.Ambient
	return cfg
}
