package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"
)

func main() {
	app := cli.NewApp()
	app.Name = "text3d"
	app.Usage = "render 3D scenes as colored text in the terminal"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config, c",
			Usage: "TOML configuration file",
		},
		cli.IntFlag{
			Name:  "width",
			Usage: "frame width in cells, overrides the config",
		},
		cli.IntFlag{
			Name:  "height",
			Usage: "frame height in cells, overrides the config",
		},
		cli.Float64Flag{
			Name:  "fps",
			Usage: "target frames per second, overrides the config",
		},
		cli.StringFlag{
			Name:  "scene, s",
			Value: "cube",
			Usage: "scene to render: cube, line, triangle or gradient",
		},
		cli.BoolFlag{
			Name:  "tui",
			Usage: "run inside the interactive viewer",
		},
		cli.BoolFlag{
			Name:  "stats",
			Usage: "print frame statistics on exit",
		},
	}
	app.Before = setupLogging
	app.After = closeLogging
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
