package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/df07/go-live-pathtracer/pkg/log"
	"github.com/df07/go-live-pathtracer/pkg/preview"
	"github.com/df07/go-live-pathtracer/pkg/preview/glwindow"
	"github.com/df07/go-live-pathtracer/pkg/preview/sdlwindow"
	"github.com/df07/go-live-pathtracer/pkg/preview/webview"
	"github.com/df07/go-live-pathtracer/pkg/renderer"
	"github.com/df07/go-live-pathtracer/pkg/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

var errUnknownPreview = errors.New("unknown preview backend")

func renderFlags() []cli.Flag {
	defaults := renderer.DefaultOptions()
	return []cli.Flag{
		cli.StringFlag{
			Name:  "scene, s",
			Value: scene.DefaultSceneID,
			Usage: "built-in scene to render (see the scenes command)",
		},
		cli.IntFlag{
			Name:  "width",
			Value: defaults.Width,
			Usage: "frame width",
		},
		cli.IntFlag{
			Name:  "height",
			Value: defaults.Height,
			Usage: "frame height",
		},
		cli.IntFlag{
			Name:  "spp",
			Usage: "samples per pixel per frame; 0 uses the scene default",
		},
		cli.IntFlag{
			Name:  "depth",
			Usage: "maximum bounces per path; 0 uses the scene default",
		},
		cli.IntFlag{
			Name:  "workers",
			Usage: "render workers; 0 uses every logical CPU",
		},
		cli.IntFlag{
			Name:  "frames",
			Usage: "stop after this many frames; 0 renders until stopped",
		},
		cli.Float64Flag{
			Name:  "gamma",
			Value: defaults.Gamma,
			Usage: "display gamma; 1 leaves output linear",
		},
		cli.StringFlag{
			Name:  "blend",
			Value: defaults.Blend.String(),
			Usage: "frame blending: exponential or cumulative",
		},
		cli.Uint64Flag{
			Name:  "seed",
			Usage: "seed for the scene layout, the BVH and per-pixel sampling",
		},
		cli.StringFlag{
			Name:  "preview, p",
			Value: "sdl",
			Usage: "preview backend: sdl, gl, web or none",
		},
		cli.StringFlag{
			Name:  "addr",
			Value: ":8080",
			Usage: "listen address of the web preview",
		},
		cli.StringFlag{
			Name:  "out, o",
			Usage: "write the last frame to this PNG file on exit",
		},
	}
}

// optionsFromFlags merges the command line with the scene's sampling defaults
func optionsFromFlags(ctx *cli.Context, sc *scene.Scene) (renderer.Options, error) {
	blend, err := renderer.ParseBlendMode(ctx.String("blend"))
	if err != nil {
		return renderer.Options{}, err
	}

	opts := renderer.Options{
		Width:           ctx.Int("width"),
		Height:          ctx.Int("height"),
		SamplesPerPixel: ctx.Int("spp"),
		MaxDepth:        ctx.Int("depth"),
		Workers:         ctx.Int("workers"),
		MaxFrames:       ctx.Int("frames"),
		Gamma:           ctx.Float64("gamma"),
		Blend:           blend,
		Seed:            ctx.Uint64("seed"),
	}
	opts = sc.ApplyDefaults(opts)
	return opts, opts.Validate()
}

// newSurface returns the preview backend named kind, or nil for none
func newSurface(kind, addr string, info interface{}) (preview.Surface, error) {
	switch kind {
	case "sdl":
		return sdlwindow.New(), nil
	case "gl":
		return glwindow.New(), nil
	case "web":
		return webview.New(webview.Options{Addr: addr, Info: info}, logger), nil
	case "none", "":
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownPreview, kind)
	}
}

// RenderScene renders a built-in scene progressively
func RenderScene(ctx *cli.Context) error {
	setupLogging(ctx)

	seed := ctx.Uint64("seed")
	sc, err := scene.Lookup(ctx.String("scene"), seed)
	if err != nil {
		return err
	}
	opts, err := optionsFromFlags(ctx, sc)
	if err != nil {
		return err
	}
	surface, err := newSurface(ctx.String("preview"), ctx.String("addr"), renderInfo{Scene: sc.Name, Options: opts})
	if err != nil {
		return err
	}

	world, err := sc.BuildWorld(seed, logger)
	if err != nil {
		return fmt.Errorf("refusing to render: %w", err)
	}
	displayWorldStats(world)

	r, err := renderer.NewProgressiveRenderer(sc.Camera(opts.Width, opts.Height), world.Root, sc.Integrator(), opts, logger)
	if err != nil {
		return err
	}
	defer r.Close()
	r.OnProgress(logProgress(logger))

	logger.Noticef("rendering %q at %dx%d, %d spp per frame, %s blending", sc.Name, opts.Width, opts.Height, opts.SamplesPerPixel, opts.Blend)

	runCtx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(runCtx, cancel, r, surface, sc.Name); err != nil {
		return err
	}

	displayFrameStats(r.Stats())

	if out := ctx.String("out"); out != "" {
		if err := savePNG(out, r.Snapshot()); err != nil {
			return err
		}
		logger.Noticef("last frame saved as %s", out)
	}
	return nil
}

type renderInfo struct {
	Scene   string           `json:"scene"`
	Options renderer.Options `json:"options"`
}

// run renders until cancelled. With a preview, frames render in the
// background while the preview owns the calling goroutine; the preview stays
// up after a frame limit is reached until it is closed.
func run(ctx context.Context, cancel context.CancelFunc, r *renderer.ProgressiveRenderer, surface preview.Surface, title string) error {
	if surface == nil {
		return r.Run(ctx)
	}

	renderErr := make(chan error, 1)
	go func() {
		err := r.Run(ctx)
		if err != nil {
			cancel()
		} else if ctx.Err() == nil {
			logger.Notice("rendering finished, close the preview to exit")
		}
		renderErr <- err
	}()

	opts := r.Options()
	previewErr := preview.Run(ctx, surface, r, preview.RunOptions{
		Title:  title,
		Width:  opts.Width,
		Height: opts.Height,
	}, cancel, logger)
	cancel()

	if err := <-renderErr; err != nil {
		return err
	}
	return previewErr
}

func savePNG(path string, img *image.RGBA) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(file, img); err != nil {
		file.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return file.Close()
}

func displayWorldStats(world *scene.World) {
	if world.BVH == nil {
		logger.Noticef("no bounded objects, %d unbounded objects tested linearly", world.Unbounded)
		return
	}

	stats := world.BVH.Stats()
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Nodes", "Leaves", "Aliased", "Max depth", "Avg leaf depth", "Unbounded"})
	table.Append([]string{
		fmt.Sprintf("%d", stats.TotalNodes),
		fmt.Sprintf("%d", stats.Leaves),
		fmt.Sprintf("%d", stats.AliasedNodes),
		fmt.Sprintf("%d", stats.MaxDepth),
		fmt.Sprintf("%.2f", stats.AvgDepth),
		fmt.Sprintf("%d", world.Unbounded),
	})
	table.Render()
	logger.Infof("bvh statistics\n%s", buf.String())
}

func displayFrameStats(stats renderer.FrameStats) {
	if len(stats.Bands) == 0 {
		return
	}
	var buf bytes.Buffer
	stats.WriteTable(&buf)
	logger.Noticef("frame statistics\n%s", buf.String())
}

// logProgress reports band completion within each frame at Info level
func logProgress(logger log.Logger) func(renderer.Progress) {
	return func(p renderer.Progress) {
		logger.Infof("frame %d progress: %.0f%% (%d/%d bands)", p.Frame, p.Percent(), p.BandsDone, p.TotalBands)
	}
}
