package main

import (
	"os"
	"runtime"

	"github.com/urfave/cli"
)

// Window toolkits need the main OS thread; the preview loop runs on the main
// goroutine while frames render in the background.
func init() {
	runtime.LockOSThread()
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "go-live-pathtracer"
	app.Usage = "progressively path trace a scene with a live preview"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a built-in scene until stopped",
			Description: `
Render the scene frame after frame, blending every new frame into the image
shown by the preview. Rendering stops when the preview is closed, on
interrupt, or after --frames frames. Sampling flags left at 0 use the scene's
recommended values.`,
			Flags:  renderFlags(),
			Action: RenderScene,
		},
		{
			Name:   "scenes",
			Usage:  "list built-in scenes",
			Action: ListScenes,
		},
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}
