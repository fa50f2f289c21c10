// Package renderer runs the progressive frame loop. Frames blend into a
// linear float buffer rather than the quantized 8-bit pixels, and output is
// gamma encoded (2 by default, 1 for linear output).
package renderer

import (
	"image"
	"image/color"
	"math"
	"sync/atomic"

	"github.com/df07/go-live-pathtracer/pkg/core"
)

// Framebuffer is the shared image of a progressive render. Workers write
// disjoint rows during a frame; readers only ever see published snapshots.
type Framebuffer struct {
	width, height int
	gamma         float64

	// Linear blend state, row-major
	accum []core.Vec3

	// Quantized view of accum, updated in place as pixels are written
	output *image.RGBA

	snapshot atomic.Pointer[image.RGBA]
}

// NewFramebuffer allocates a black width x height buffer
func NewFramebuffer(width, height int, gamma float64) *Framebuffer {
	fb := &Framebuffer{
		width:  width,
		height: height,
		gamma:  gamma,
		accum:  make([]core.Vec3, width*height),
		output: image.NewRGBA(image.Rect(0, 0, width, height)),
	}
	for i := 3; i < len(fb.output.Pix); i += 4 {
		fb.output.Pix[i] = 0xff
	}
	fb.Publish()
	return fb
}

func (fb *Framebuffer) Width() int  { return fb.width }
func (fb *Framebuffer) Height() int { return fb.height }

// At returns the linear blend state of a pixel
func (fb *Framebuffer) At(x, y int) core.Vec3 {
	return fb.accum[y*fb.width+x]
}

// Blend folds a new sample into pixel (x, y). frame is the index of the frame
// being rendered: frame 0 overwrites, later frames blend according to mode.
func (fb *Framebuffer) Blend(x, y int, sample core.Vec3, frame uint64, mode BlendMode) {
	i := y*fb.width + x
	fb.accum[i] = blend(fb.accum[i], sample, frame, mode)
	fb.output.SetRGBA(x, y, Quantize(fb.accum[i], fb.gamma))
}

func blend(old, sample core.Vec3, frame uint64, mode BlendMode) core.Vec3 {
	if frame == 0 {
		return sample
	}
	switch mode {
	case BlendCumulative:
		return old.Add(sample.Subtract(old).Multiply(1.0 / float64(frame+1)))
	default:
		return old.Add(sample).Multiply(0.5)
	}
}

// Publish copies the current output into a new immutable snapshot
func (fb *Framebuffer) Publish() *image.RGBA {
	snap := image.NewRGBA(fb.output.Rect)
	copy(snap.Pix, fb.output.Pix)
	fb.snapshot.Store(snap)
	return snap
}

// Snapshot returns the most recently published image. Callers must not modify it.
func (fb *Framebuffer) Snapshot() *image.RGBA {
	return fb.snapshot.Load()
}

// Quantize converts a linear color to 8 bits per channel: clamp to [0,1],
// apply display gamma, then truncate.
func Quantize(c core.Vec3, gamma float64) color.RGBA {
	c = c.Clamp(0, 1)
	if gamma > 1 {
		c = c.GammaCorrect(gamma)
	}
	return color.RGBA{
		R: toByte(c.X),
		G: toByte(c.Y),
		B: toByte(c.Z),
		A: 255,
	}
}

func toByte(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	return uint8(255 * v)
}
