package renderer

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/df07/go-live-pathtracer/pkg/core"
	"github.com/df07/go-live-pathtracer/pkg/integrator"
	"github.com/df07/go-live-pathtracer/pkg/log"
)

// Progress reports band completion within a frame
type Progress struct {
	Frame      uint64
	BandsDone  int
	TotalBands int
}

// Percent returns the completed share of the frame in [0, 100]
func (p Progress) Percent() float64 {
	if p.TotalBands == 0 {
		return 100
	}
	return 100 * float64(p.BandsDone) / float64(p.TotalBands)
}

// ProgressiveRenderer re-samples every pixel once per frame and blends the
// result into a shared framebuffer. Frames are rendered by a worker pool,
// one contiguous band of rows per task.
type ProgressiveRenderer struct {
	camera     Camera
	world      core.Hittable
	integrator integrator.Integrator
	options    Options
	logger     log.Logger

	framebuffer *Framebuffer
	pool        *WorkerPool
	bands       []Band

	// Number of completed frames; the index of the next frame to render
	frame atomic.Uint64

	// Serializes frames
	mu        sync.Mutex
	lastStats FrameStats

	onProgress func(Progress)
}

// NewProgressiveRenderer validates the options, allocates the framebuffer
// and starts the worker pool
func NewProgressiveRenderer(cam Camera, world core.Hittable, integ integrator.Integrator, opts Options, logger log.Logger) (*ProgressiveRenderer, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	switch {
	case cam == nil:
		return nil, ErrCameraNotDefined
	case world == nil:
		return nil, ErrWorldNotDefined
	case integ == nil:
		return nil, ErrNoIntegrator
	}
	if logger == nil {
		logger = log.Discard()
	}

	workers := min(opts.WorkerCount(), opts.Height)
	bands := PartitionRows(opts.Height, workers)

	r := &ProgressiveRenderer{
		camera:      cam,
		world:       world,
		integrator:  integ,
		options:     opts,
		logger:      logger,
		framebuffer: NewFramebuffer(opts.Width, opts.Height, opts.Gamma),
		pool:        NewWorkerPool(workers, len(bands)),
		bands:       bands,
	}

	logger.Debugf("progressive renderer: %dx%d, %d spp, depth %d, %d workers, %s blend",
		opts.Width, opts.Height, opts.SamplesPerPixel, opts.MaxDepth, workers, opts.Blend)

	return r, nil
}

// OnProgress registers a callback invoked as bands complete. It runs on
// worker goroutines and must be safe for concurrent use.
func (r *ProgressiveRenderer) OnProgress(fn func(Progress)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onProgress = fn
}

// Frame returns the number of frames completed so far
func (r *ProgressiveRenderer) Frame() uint64 {
	return r.frame.Load()
}

// Snapshot returns the most recently published image
func (r *ProgressiveRenderer) Snapshot() *image.RGBA {
	return r.framebuffer.Snapshot()
}

// Framebuffer exposes the shared buffer for inspection
func (r *ProgressiveRenderer) Framebuffer() *Framebuffer {
	return r.framebuffer
}

// Options returns the options the renderer was created with
func (r *ProgressiveRenderer) Options() Options {
	return r.options
}

// Stats returns the statistics of the last completed frame
func (r *ProgressiveRenderer) Stats() FrameStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastStats
}

// RenderFrame renders one frame. The frame index is read once before any
// band is dispatched, every band sees the same value, and the counter is
// advanced only after all bands have finished.
func (r *ProgressiveRenderer) RenderFrame(ctx context.Context) (FrameStats, error) {
	if err := ctx.Err(); err != nil {
		return FrameStats{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	frame := r.frame.Load()
	start := time.Now()

	stats := FrameStats{
		Frame: frame,
		Bands: make([]BandStat, len(r.bands)),
	}

	var done atomic.Int64
	onProgress := r.onProgress
	jobs := make([]func() error, len(r.bands))
	for i, band := range r.bands {
		jobs[i] = func() error {
			stats.Bands[i] = r.renderBand(i, band, frame)

			completed := int(done.Add(1))
			if onProgress != nil {
				onProgress(Progress{Frame: frame, BandsDone: completed, TotalBands: len(r.bands)})
			}
			return nil
		}
	}

	if err := r.pool.RunBatch(jobs); err != nil {
		return FrameStats{}, fmt.Errorf("frame %d: %w", frame, err)
	}

	r.frame.Add(1)
	r.framebuffer.Publish()

	stats.RenderTime = time.Since(start)
	stats.Samples = r.options.Width * r.options.Height * r.options.SamplesPerPixel
	r.lastStats = stats

	r.logger.Infof("frame %d rendered in %s (%d bands)", frame, stats.RenderTime, len(r.bands))
	return stats, nil
}

// Run renders frames until ctx is cancelled or MaxFrames frames have been
// rendered. Cancellation is checked between frames and is not an error.
func (r *ProgressiveRenderer) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			r.logger.Noticef("rendering stopped after %d frames", r.Frame())
			return nil
		}
		if limit := r.options.MaxFrames; limit > 0 && r.Frame() >= uint64(limit) {
			r.logger.Noticef("reached %d frames, stopping", limit)
			return nil
		}

		if _, err := r.RenderFrame(ctx); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				continue
			}
			r.logger.Errorf("rendering failed: %v", err)
			return err
		}
	}
}

// Close stops the worker pool
func (r *ProgressiveRenderer) Close() {
	r.pool.Close()
}

// renderBand traces every pixel of rows [band.Start, band.End) for one frame
func (r *ProgressiveRenderer) renderBand(index int, band Band, frame uint64) BandStat {
	start := time.Now()
	opts := r.options

	// Image row 0 is the top edge; viewport t = 0 is the bottom edge
	uScale := 1.0 / float64(max(opts.Width-1, 1))
	vScale := 1.0 / float64(max(opts.Height-1, 1))
	sampleWeight := 1.0 / float64(opts.SamplesPerPixel)

	src := rand.NewPCG(0, 0)
	random := rand.New(src)

	for y := band.Start; y < band.End; y++ {
		for x := 0; x < opts.Width; x++ {
			core.SeedPCG(src, core.PixelSeed(y, x, frame, opts.SamplesPerPixel)^opts.Seed)

			var pixel core.Vec3
			for s := 0; s < opts.SamplesPerPixel; s++ {
				u := (float64(x) + random.Float64()) * uScale
				v := (float64(y) + random.Float64()) * vScale
				ray := r.camera.GetRay(u, 1-v, random)
				pixel = pixel.Add(r.integrator.RayColor(ray, r.world, opts.MaxDepth, random))
			}

			r.framebuffer.Blend(x, y, pixel.Multiply(sampleWeight), frame, opts.Blend)
		}
	}

	return BandStat{
		Index:        index,
		Start:        band.Start,
		Rows:         band.Rows(),
		FramePercent: 100 * float64(band.Rows()) / float64(opts.Height),
		RenderTime:   time.Since(start),
	}
}
