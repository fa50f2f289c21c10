package renderer

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/cpu"
)

// BlendMode selects how a new frame is folded into the accumulated image
type BlendMode int

const (
	// BlendExponential averages the previous value and the new frame with
	// equal weight. Recent frames dominate.
	BlendExponential BlendMode = iota

	// BlendCumulative keeps the running mean of every frame so far.
	BlendCumulative
)

func (m BlendMode) String() string {
	switch m {
	case BlendExponential:
		return "exponential"
	case BlendCumulative:
		return "cumulative"
	default:
		return fmt.Sprintf("BlendMode(%d)", int(m))
	}
}

// ParseBlendMode converts a CLI name into a BlendMode
func ParseBlendMode(name string) (BlendMode, error) {
	switch strings.ToLower(name) {
	case "exponential", "ema", "":
		return BlendExponential, nil
	case "cumulative", "mean":
		return BlendCumulative, nil
	default:
		return 0, fmt.Errorf("%w: unknown blend mode %q", ErrInvalidOptions, name)
	}
}

type Options struct {
	// Frame dims.
	Width  int
	Height int

	// Jittered samples traced per pixel in every frame.
	SamplesPerPixel int

	// Maximum number of bounces per path.
	MaxDepth int

	// Worker pool size; 0 uses the host's logical CPU count.
	Workers int

	// Stop after this many frames; 0 renders until cancelled.
	MaxFrames int

	// Display gamma applied when quantizing; values <= 1 leave output linear.
	Gamma float64

	Blend BlendMode

	// Mixed into every per-pixel seed. 0 keeps seeds a pure function of
	// (row, column, frame, samples per pixel).
	Seed uint64
}

// DefaultOptions returns sensible default values
func DefaultOptions() Options {
	return Options{
		Width:           400,
		Height:          225,
		SamplesPerPixel: 4,
		MaxDepth:        50,
		Workers:         0,
		MaxFrames:       0,
		Gamma:           2.0,
		Blend:           BlendExponential,
	}
}

// Validate reports the first invalid setting
func (o Options) Validate() error {
	switch {
	case o.Width <= 0 || o.Height <= 0:
		return fmt.Errorf("%w: frame size %dx%d", ErrInvalidOptions, o.Width, o.Height)
	case o.SamplesPerPixel <= 0:
		return fmt.Errorf("%w: samples per pixel %d", ErrInvalidOptions, o.SamplesPerPixel)
	case o.MaxDepth <= 0:
		return fmt.Errorf("%w: max depth %d", ErrInvalidOptions, o.MaxDepth)
	case o.Workers < 0:
		return fmt.Errorf("%w: workers %d", ErrInvalidOptions, o.Workers)
	case o.MaxFrames < 0:
		return fmt.Errorf("%w: max frames %d", ErrInvalidOptions, o.MaxFrames)
	case o.Gamma < 0:
		return fmt.Errorf("%w: gamma %f", ErrInvalidOptions, o.Gamma)
	case o.Blend != BlendExponential && o.Blend != BlendCumulative:
		return fmt.Errorf("%w: %s", ErrInvalidOptions, o.Blend)
	}
	return nil
}

// WorkerCount resolves the pool size, falling back to host concurrency
func (o Options) WorkerCount() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return HostConcurrency()
}

// HostConcurrency returns the number of logical CPUs
func HostConcurrency() int {
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		return n
	}
	return runtime.NumCPU()
}
