package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/idursun/text3d/internal/canvas"
	"github.com/idursun/text3d/internal/config"
	"github.com/idursun/text3d/internal/demo"
	"github.com/idursun/text3d/internal/runner"
	"github.com/idursun/text3d/internal/terminal"
	"github.com/idursun/text3d/internal/ui"
	"github.com/urfave/cli"
)

func run(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	config.Current = cfg

	name := ctx.String("scene")
	if name == "gradient" {
		return printGradient()
	}
	b, err := newBehaviour(name, cfg)
	if err != nil {
		return err
	}
	log.Printf("starting scene %s at %s, %.1f fps", name, cfg.FrameSize(), cfg.Frame.FPS)

	if ctx.Bool("tui") {
		return runViewer(b, cfg)
	}
	return runTerminal(b, cfg, ctx.Bool("stats"))
}

func loadConfig(ctx *cli.Context) (*config.Config, error) {
	cfg := config.Default()
	if path := ctx.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if ctx.IsSet("width") {
		cfg.Frame.Width = ctx.Int("width")
	}
	if ctx.IsSet("height") {
		cfg.Frame.Height = ctx.Int("height")
	}
	if ctx.IsSet("fps") {
		cfg.Frame.FPS = ctx.Float64("fps")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}

func runTerminal(b runner.Behaviour, cfg *config.Config, stats bool) error {
	sink := terminal.NewSink(os.Stdout)
	r, err := runner.New(b, cfg.RunnerOptions(sink))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	err = r.Run(ctx)
	if closeErr := sink.Close(); err == nil {
		err = closeErr
	}
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	if stats {
		printStats(os.Stderr, r.Stats(), r.Period())
	}
	return err
}

func runViewer(b runner.Behaviour, cfg *config.Config) error {
	r, err := runner.New(b, cfg.RunnerOptions(nil))
	if err != nil {
		return err
	}
	m := ui.NewModel(r, lipgloss.ColorProfile())
	p := tea.NewProgram(ui.New(m), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return m.Err()
}

func printGradient() error {
	buf, err := canvas.NewBuffer(canvas.Size{Width: 20, Height: 20}, ' ', canvas.Black)
	if err != nil {
		return err
	}
	if err := demo.Gradient(buf); err != nil {
		return err
	}
	fmt.Println(terminal.Encode(buf, lipgloss.ColorProfile()))
	return nil
}
