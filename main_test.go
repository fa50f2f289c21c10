package main

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-live-pathtracer/pkg/log"
	"github.com/df07/go-live-pathtracer/pkg/preview/glwindow"
	"github.com/df07/go-live-pathtracer/pkg/preview/sdlwindow"
	"github.com/df07/go-live-pathtracer/pkg/preview/webview"
	"github.com/df07/go-live-pathtracer/pkg/scene"
)

func TestRenderCommand_WritesLastFrame(t *testing.T) {
	out := filepath.Join(t.TempDir(), "frames", "last.png")
	args := []string{"pathtracer", "render",
		"--scene", "three-spheres",
		"--width", "48", "--height", "48",
		"--frames", "2",
		"--workers", "3",
		"--gamma", "1",
		"--preview", "none",
		"--out", out,
	}
	if err := newApp().Run(args); err != nil {
		t.Fatalf("render failed: %v", err)
	}

	file, err := os.Open(out)
	if err != nil {
		t.Fatalf("Expected output file: %v", err)
	}
	defer file.Close()

	img, err := png.Decode(file)
	if err != nil {
		t.Fatalf("Decoding output: %v", err)
	}
	if size := img.Bounds().Size(); size.X != 48 || size.Y != 48 {
		t.Fatalf("Expected 48x48 output, got %v", size)
	}

	// Centre is the green sphere, corners are background
	r, g, b, _ := img.At(24, 24).RGBA()
	if r != 0 || g>>8 != 255 || b != 0 {
		t.Errorf("Expected green at the centre, got %v", img.At(24, 24))
	}
	r, g, b, _ = img.At(0, 0).RGBA()
	if r != 0 || g != 0 || b != 0 {
		t.Errorf("Expected black background in the corner, got %v", img.At(0, 0))
	}
}

func TestRenderCommand_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
	}{
		{"unknown scene", []string{"--scene", "cornell-box"}, scene.ErrUnknownScene},
		{"unknown preview", []string{"--preview", "vulkan"}, errUnknownPreview},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"pathtracer", "render", "--frames", "1"}, tt.args...)
			err := newApp().Run(args)
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}

	err := newApp().Run([]string{"pathtracer", "render", "--preview", "none", "--blend", "median"})
	if err == nil || !strings.Contains(err.Error(), "median") {
		t.Errorf("Expected an invalid blend error, got %v", err)
	}
}

func TestNewSurface(t *testing.T) {
	tests := []struct {
		kind    string
		check   func(interface{}) bool
		wantErr bool
	}{
		{"sdl", func(s interface{}) bool { _, ok := s.(*sdlwindow.Window); return ok }, false},
		{"gl", func(s interface{}) bool { _, ok := s.(*glwindow.Window); return ok }, false},
		{"web", func(s interface{}) bool { _, ok := s.(*webview.Server); return ok }, false},
		{"none", func(s interface{}) bool { return s == nil }, false},
		{"x11", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			surface, err := newSurface(tt.kind, ":0", nil)
			if (err != nil) != tt.wantErr {
				t.Fatalf("newSurface(%q) error = %v, wantErr %v", tt.kind, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			var got interface{}
			if surface != nil {
				got = surface
			}
			if !tt.check(got) {
				t.Errorf("newSurface(%q) returned %T", tt.kind, surface)
			}
		})
	}
}

func TestWriteSceneTable(t *testing.T) {
	var buf bytes.Buffer
	writeSceneTable(&buf, scene.ListScenes())

	output := buf.String()
	for _, info := range scene.ListScenes() {
		if !strings.Contains(output, info.ID) {
			t.Errorf("Expected scene %q in the listing", info.ID)
		}
	}
	if !strings.Contains(output, scene.DefaultSceneID+" (default)") {
		t.Error("Expected the default scene to be marked")
	}
}

func TestRenderCommand_LogsFrameProgress(t *testing.T) {
	var buf bytes.Buffer
	log.SetSink(&buf)
	defer log.SetSink(os.Stdout)
	defer log.SetLevel(log.Notice)

	args := []string{"pathtracer", "-v", "render",
		"--scene", "three-spheres",
		"--width", "16", "--height", "16",
		"--frames", "1",
		"--workers", "2",
		"--preview", "none",
	}
	if err := newApp().Run(args); err != nil {
		t.Fatalf("render failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"frame 0 progress: 50% (1/2 bands)", "frame 0 progress: 100% (2/2 bands)"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in log output, got:\n%s", want, out)
		}
	}
}
