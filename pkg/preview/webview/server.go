// Package webview serves the preview over HTTP. Browsers subscribe to a
// server-sent event stream that carries each new frame as a base64 PNG, and
// can fetch the latest frame or ask the render to stop.
package webview

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/png"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/df07/go-live-pathtracer/pkg/log"
	"github.com/df07/go-live-pathtracer/pkg/preview"
)

var _ preview.Surface = (*Server)(nil)

// Options configures the web preview
type Options struct {
	Addr string // Listen address, e.g. ":8080"

	// Info is served as JSON from /api/info, typically the scene and
	// render options.
	Info interface{}
}

// ProgressUpdate is a single frame sent to subscribers
type ProgressUpdate struct {
	Sequence  int    `json:"sequence"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	ImageData string `json:"imageData"` // Base64 encoded PNG
	ElapsedMs int64  `json:"elapsedMs"`
}

// Server is a preview.Surface that publishes frames to HTTP clients
type Server struct {
	opts   Options
	logger log.Logger

	httpServer *http.Server
	addr       net.Addr
	started    time.Time
	stop       atomic.Bool
	open       atomic.Bool

	mu          sync.Mutex
	frame       *image.RGBA
	dirty       bool
	sequence    int
	subscribers map[chan ProgressUpdate]struct{}
}

// New creates a web preview; nothing listens until Create
func New(opts Options, logger log.Logger) *Server {
	if logger == nil {
		logger = log.Discard()
	}
	return &Server{
		opts:        opts,
		logger:      logger,
		subscribers: make(map[chan ProgressUpdate]struct{}),
	}
}

// Handler returns the HTTP routes of the preview
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/info", s.handleInfo)
	mux.HandleFunc("/api/frame.png", s.handleFrame)
	mux.HandleFunc("/api/stream", s.handleStream)
	mux.HandleFunc("/api/stop", s.handleStop)
	return mux
}

// Create starts listening. width and height size the blank frame served
// until the first update.
func (s *Server) Create(title string, width, height int) error {
	listener, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("webview: listen on %s: %w", s.opts.Addr, err)
	}

	s.mu.Lock()
	s.frame = image.NewRGBA(image.Rect(0, 0, width, height))
	s.mu.Unlock()

	s.addr = listener.Addr()
	s.started = time.Now()
	s.httpServer = &http.Server{Handler: s.Handler()}
	s.open.Store(true)

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Errorf("web preview stopped: %v", err)
			s.open.Store(false)
		}
	}()

	s.logger.Noticef("%s preview on http://%s", title, s.addr)
	return nil
}

// Addr returns the bound listen address, or nil before Create
func (s *Server) Addr() net.Addr {
	return s.addr
}

func (s *Server) UpdateFrom(img *image.RGBA) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.frame == nil {
		return preview.ErrNotCreated
	}
	if s.frame.Bounds() != img.Bounds() {
		s.frame = image.NewRGBA(img.Bounds())
	}
	copy(s.frame.Pix, img.Pix)
	s.dirty = true
	return nil
}

func (s *Server) IsOpen() bool {
	return s.open.Load()
}

// PollCloseEvent reports whether a client posted to /api/stop
func (s *Server) PollCloseEvent() bool {
	return s.stop.Load()
}

// Display sends the frame to every subscriber if it changed since the last
// call. Slow subscribers miss frames rather than stall the preview loop.
func (s *Server) Display() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.frame == nil {
		return preview.ErrNotCreated
	}
	if !s.dirty || len(s.subscribers) == 0 {
		return nil
	}

	imageData, err := imageToBase64PNG(s.frame)
	if err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}
	s.sequence++
	s.dirty = false

	update := ProgressUpdate{
		Sequence:  s.sequence,
		Width:     s.frame.Bounds().Dx(),
		Height:    s.frame.Bounds().Dy(),
		ImageData: imageData,
		ElapsedMs: time.Since(s.started).Milliseconds(),
	}
	for ch := range s.subscribers {
		select {
		case ch <- update:
		default:
		}
	}
	return nil
}

func (s *Server) Close() error {
	s.open.Store(false)
	if s.httpServer == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) subscribe() chan ProgressUpdate {
	ch := make(chan ProgressUpdate, 1)
	s.mu.Lock()
	s.subscribers[ch] = struct{}{}
	s.dirty = true
	s.mu.Unlock()
	return ch
}

func (s *Server) unsubscribe(ch chan ProgressUpdate) {
	s.mu.Lock()
	delete(s.subscribers, ch)
	s.mu.Unlock()
}

// snapshot returns a copy of the current frame
func (s *Server) snapshot() *image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.frame == nil {
		return nil
	}
	out := image.NewRGBA(s.frame.Bounds())
	copy(out.Pix, s.frame.Pix)
	return out
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	if s.opts.Info == nil {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "no render info"})
		return
	}
	json.NewEncoder(w).Encode(s.opts.Info)
}

// handleFrame serves the latest frame as PNG, optionally upscaled
func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	scale, err := queryInt(r.URL.Query(), "scale", 1, intRange{1, 8})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	frame := s.snapshot()
	if frame == nil {
		http.Error(w, "no frame yet", http.StatusServiceUnavailable)
		return
	}
	if scale > 1 {
		frame = upscale(frame, scale)
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-cache")
	if err := png.Encode(w, frame); err != nil {
		s.logger.Warningf("encoding frame: %v", err)
	}
}

// handleStream pushes a progress event for every displayed frame until the
// client disconnects or the preview closes
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	ch := s.subscribe()
	defer s.unsubscribe(ch)

	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case update := <-ch:
			if err := sendSSEUpdate(w, update); err != nil {
				return
			}
		case <-ticker.C:
			if !s.IsOpen() {
				sendSSEEvent(w, "complete", "preview closed")
				return
			}
		}
	}
}

func (s *Server) handleStop(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.stop.Store(true)
	s.logger.Notice("stop requested by web client")
	w.WriteHeader(http.StatusAccepted)
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func upscale(img *image.RGBA, factor int) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	for y := 0; y < out.Rect.Dy(); y++ {
		for x := 0; x < out.Rect.Dx(); x++ {
			out.SetRGBA(x, y, img.RGBAAt(b.Min.X+x/factor, b.Min.Y+y/factor))
		}
	}
	return out
}

// sendSSEUpdate sends a progress update via SSE
func sendSSEUpdate(w http.ResponseWriter, update ProgressUpdate) error {
	data, err := json.Marshal(update)
	if err != nil {
		return err
	}
	return sendSSEEvent(w, "progress", string(data))
}

// sendSSEEvent sends a generic SSE event
func sendSSEEvent(w http.ResponseWriter, event, data string) error {
	if flusher, ok := w.(http.Flusher); ok {
		if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data); err != nil {
			return err
		}
		flusher.Flush()
		return nil
	}
	return fmt.Errorf("streaming not supported")
}
