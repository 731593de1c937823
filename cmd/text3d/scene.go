package main

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/idursun/text3d/internal/canvas"
	"github.com/idursun/text3d/internal/config"
	"github.com/idursun/text3d/internal/demo"
	"github.com/idursun/text3d/internal/runner"
	"github.com/idursun/text3d/internal/scene"
)

var orange = canvas.RGB{R: 255, G: 100}

func newBehaviour(name string, cfg *config.Config) (runner.Behaviour, error) {
	switch name {
	case "line":
		size := cfg.FrameSize()
		return &demo.RotatingLine{
			Length:          float32(min(size.Width, size.Height)) * 0.45,
			AngularVelocity: 1.5,
		}, nil
	case "triangle", "cube":
	default:
		return nil, fmt.Errorf("unknown scene %q", name)
	}

	camera, err := scene.NewCamera(cfg.CameraConfig())
	if err != nil {
		return nil, fmt.Errorf("camera: %w", err)
	}
	rasterizer, err := scene.NewRasterizer(cfg.RasterizerConfig(camera))
	if err != nil {
		return nil, fmt.Errorf("rasterizer: %w", err)
	}
	if name == "triangle" {
		return demo.NewDrawTriangle(rasterizer), nil
	}
	return &demo.Spinner{
		Rasterizer:      rasterizer,
		Mesh:            scene.Cube(mgl32.Vec3{}, 2, orange),
		Axis:            mgl32.Vec3{1, 1, 0},
		AngularVelocity: 1,
		Background:      cfg.FrameColor(),
	}, nil
}
