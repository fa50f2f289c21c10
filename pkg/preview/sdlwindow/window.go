// Package sdlwindow shows the preview in an SDL2 window by writing each
// snapshot into the window surface. All methods must run on the main OS
// thread.
package sdlwindow

import (
	"image"
	"runtime"

	"github.com/df07/go-live-pathtracer/pkg/preview"
	"github.com/veandco/go-sdl2/sdl"
)

var _ preview.Surface = (*Window)(nil)

// Window is a preview.Surface backed by an SDL2 window
type Window struct {
	window  *sdl.Window
	surface *sdl.Surface
	open    bool
}

func New() *Window {
	return &Window{}
}

// Create initializes SDL video and opens a fixed-size window
func (w *Window) Create(title string, width, height int) error {
	runtime.LockOSThread()

	complete := false
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return err
	}
	defer func() {
		if !complete {
			sdl.Quit()
		}
	}()

	window, err := sdl.CreateWindow(title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(width), int32(height), sdl.WINDOW_SHOWN)
	if err != nil {
		return err
	}
	defer func() {
		if !complete {
			window.Destroy()
		}
	}()

	surface, err := window.GetSurface()
	if err != nil {
		return err
	}

	w.window, w.surface, w.open = window, surface, true
	complete = true
	return nil
}

// UpdateFrom writes the snapshot into the window surface, clipped to the
// smaller of the two
func (w *Window) UpdateFrom(img *image.RGBA) error {
	if w.surface == nil {
		return preview.ErrNotCreated
	}
	if err := w.surface.Lock(); err != nil {
		return err
	}
	defer w.surface.Unlock()

	bounds := img.Bounds().Intersect(image.Rect(0, 0, int(w.surface.W), int(w.surface.H)))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			w.surface.Set(x, y, img.RGBAAt(x, y))
		}
	}
	return nil
}

func (w *Window) IsOpen() bool {
	return w.open
}

// PollCloseEvent drains the SDL event queue
func (w *Window) PollCloseEvent() bool {
	closed := false
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			closed = true
		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_CLOSE {
				closed = true
			}
		}
	}
	if closed {
		w.open = false
	}
	return closed
}

func (w *Window) Display() error {
	if w.window == nil {
		return preview.ErrNotCreated
	}
	return w.window.UpdateSurface()
}

func (w *Window) Close() error {
	w.open = false
	if w.window == nil {
		return nil
	}
	err := w.window.Destroy()
	w.window, w.surface = nil, nil
	sdl.Quit()
	return err
}
