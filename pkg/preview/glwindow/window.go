// Package glwindow shows the preview in a GLFW window. Snapshots are uploaded
// into a texture attached to a read framebuffer and blitted to the back
// buffer on Display. All methods must run on the main OS thread.
package glwindow

import (
	"fmt"
	"image"
	"runtime"

	"github.com/df07/go-live-pathtracer/pkg/preview"
	"github.com/go-gl/gl/v2.1/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

var _ preview.Surface = (*Window)(nil)

// Window is a preview.Surface backed by an OpenGL 2.1 context
type Window struct {
	window        *glfw.Window
	texture       uint32
	texFbo        uint32
	width, height int32
}

func New() *Window {
	return &Window{}
}

// Create opens a fixed-size window and allocates the frame texture
func (w *Window) Create(title string, width, height int) error {
	runtime.LockOSThread()

	var err error
	if err = glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize glfw: %w", err)
	}

	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, 2)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	w.window, err = glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return fmt.Errorf("could not create opengl window: %w", err)
	}
	w.window.MakeContextCurrent()

	if err = gl.Init(); err != nil {
		w.window.Destroy()
		w.window = nil
		glfw.Terminate()
		return fmt.Errorf("could not init opengl: %w", err)
	}

	w.width, w.height = int32(width), int32(height)

	gl.GenTextures(1, &w.texture)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, w.texture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, w.width, w.height, 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)

	gl.GenFramebuffers(1, &w.texFbo)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, w.texFbo)
	gl.FramebufferTexture2D(gl.READ_FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, w.texture, 0)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)

	return nil
}

// UpdateFrom uploads the snapshot into the frame texture. Snapshots of a
// different size than the window are rejected.
func (w *Window) UpdateFrom(img *image.RGBA) error {
	if w.window == nil {
		return preview.ErrNotCreated
	}
	size := img.Bounds().Size()
	if int32(size.X) != w.width || int32(size.Y) != w.height {
		return fmt.Errorf("glwindow: snapshot is %dx%d, window is %dx%d", size.X, size.Y, w.width, w.height)
	}

	gl.BindTexture(gl.TEXTURE_2D, w.texture)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(img.Stride/4))
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, w.width, w.height, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	return nil
}

func (w *Window) IsOpen() bool {
	return w.window != nil && !w.window.ShouldClose()
}

func (w *Window) PollCloseEvent() bool {
	if w.window == nil {
		return false
	}
	glfw.PollEvents()
	return w.window.ShouldClose()
}

// Display blits the texture to the back buffer. Image row 0 is the top of the
// frame, so the blit flips vertically.
func (w *Window) Display() error {
	if w.window == nil {
		return preview.ErrNotCreated
	}
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, w.texFbo)
	gl.BlitFramebuffer(0, 0, w.width, w.height, 0, w.height, w.width, 0, gl.COLOR_BUFFER_BIT, gl.NEAREST)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)

	w.window.SwapBuffers()
	return nil
}

func (w *Window) Close() error {
	if w.window == nil {
		return nil
	}
	gl.DeleteFramebuffers(1, &w.texFbo)
	gl.DeleteTextures(1, &w.texture)
	w.window.Destroy()
	w.window = nil
	glfw.Terminate()
	return nil
}
