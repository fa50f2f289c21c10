package preview

import (
	"image"
	"sync"
)

// Headless is a Surface without a window. It keeps the last frame it was
// given and can close itself after a fixed number of displays, which stands
// in for a user closing the window.
type Headless struct {
	// CloseAfter closes the surface once Display has run this many times;
	// 0 keeps it open until Close.
	CloseAfter int

	mu       sync.Mutex
	created  bool
	open     bool
	frame    *image.RGBA
	updates  int
	displays int
}

// NewHeadless returns a headless surface that closes after closeAfter displays
func NewHeadless(closeAfter int) *Headless {
	return &Headless{CloseAfter: closeAfter}
}

func (h *Headless) Create(title string, width, height int) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.created = true
	h.open = true
	h.frame = image.NewRGBA(image.Rect(0, 0, width, height))
	return nil
}

func (h *Headless) UpdateFrom(img *image.RGBA) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.created {
		return ErrNotCreated
	}
	if h.frame == nil || h.frame.Bounds() != img.Bounds() {
		h.frame = image.NewRGBA(img.Bounds())
	}
	copy(h.frame.Pix, img.Pix)
	h.updates++
	return nil
}

func (h *Headless) IsOpen() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.open
}

func (h *Headless) PollCloseEvent() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.CloseAfter > 0 && h.displays >= h.CloseAfter
}

func (h *Headless) Display() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.created {
		return ErrNotCreated
	}
	h.displays++
	return nil
}

func (h *Headless) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.open = false
	return nil
}

// Frame returns a copy of the last frame received
func (h *Headless) Frame() *image.RGBA {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.frame == nil {
		return nil
	}
	out := image.NewRGBA(h.frame.Bounds())
	copy(out.Pix, h.frame.Pix)
	return out
}

// Counts returns how many updates and displays the surface has seen
func (h *Headless) Counts() (updates, displays int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.updates, h.displays
}
