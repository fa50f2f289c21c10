// Package preview displays the progressively refined image while the
// renderer keeps working. A Surface never touches renderer state: it is fed
// published snapshots, so a slow display cannot stall or tear a frame.
package preview

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/df07/go-live-pathtracer/pkg/log"
)

// ErrNotCreated is returned by surface operations called before Create
var ErrNotCreated = errors.New("preview: surface not created")

// DefaultInterval is the refresh period used when RunOptions leaves it unset
const DefaultInterval = 33 * time.Millisecond

// Surface is a display target for rendered frames. Window backends must be
// driven from the main OS thread.
type Surface interface {
	// Create opens the surface with the given frame size
	Create(title string, width, height int) error

	// UpdateFrom copies a snapshot into the surface's back buffer
	UpdateFrom(img *image.RGBA) error

	// IsOpen reports whether the surface is still accepting frames
	IsOpen() bool

	// PollCloseEvent drains pending events and reports whether the user asked
	// to close the surface
	PollCloseEvent() bool

	// Display presents the back buffer
	Display() error

	Close() error
}

// Source hands out the latest published frame
type Source interface {
	Snapshot() *image.RGBA
}

type RunOptions struct {
	Title    string
	Width    int
	Height   int
	Interval time.Duration
}

// Run creates the surface and refreshes it from source until ctx is done or
// the surface is closed. A close request is propagated through cancel so the
// renderer stops at its next frame boundary. The surface is closed on return.
func Run(ctx context.Context, surface Surface, source Source, opts RunOptions, cancel context.CancelFunc, logger log.Logger) error {
	if logger == nil {
		logger = log.Discard()
	}
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}

	if err := surface.Create(opts.Title, opts.Width, opts.Height); err != nil {
		return fmt.Errorf("preview: create surface: %w", err)
	}
	defer func() {
		if err := surface.Close(); err != nil {
			logger.Warningf("closing preview surface: %v", err)
		}
	}()

	ticker := time.NewTicker(opts.Interval)
	defer ticker.Stop()

	var last *image.RGBA
	for {
		if surface.PollCloseEvent() || !surface.IsOpen() {
			logger.Info("preview closed, stopping render")
			if cancel != nil {
				cancel()
			}
			return nil
		}

		// Snapshots are immutable once published, so an unchanged pointer
		// means there is nothing new to upload.
		if snap := source.Snapshot(); snap != nil && snap != last {
			if err := surface.UpdateFrom(snap); err != nil {
				return fmt.Errorf("preview: update: %w", err)
			}
			last = snap
		}
		if err := surface.Display(); err != nil {
			return fmt.Errorf("preview: display: %w", err)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
