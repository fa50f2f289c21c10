package renderer

import (
	"fmt"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"
)

type BandStat struct {
	// Position of the band in the frame's band list.
	Index int

	// First row and number of rows, and the share of the frame they cover.
	Start        int
	Rows         int
	FramePercent float64

	// Render time for the band
	RenderTime time.Duration
}

type FrameStats struct {
	// Index of the frame these stats describe.
	Frame uint64

	// Individual band stats.
	Bands []BandStat

	// Camera samples traced during the frame.
	Samples int

	// Total render time for entire frame.
	RenderTime time.Duration
}

// SamplesPerSecond returns the frame's sampling throughput
func (s FrameStats) SamplesPerSecond() float64 {
	if s.RenderTime <= 0 {
		return 0
	}
	return float64(s.Samples) / s.RenderTime.Seconds()
}

// WriteTable renders the stats as a table
func (s FrameStats) WriteTable(w io.Writer) {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Band", "Rows", "% of frame", "Render time"})
	for _, band := range s.Bands {
		table.Append([]string{
			fmt.Sprintf("%d", band.Index),
			fmt.Sprintf("%d-%d", band.Start, band.Start+band.Rows-1),
			fmt.Sprintf("%02.1f %%", band.FramePercent),
			band.RenderTime.String(),
		})
	}
	table.SetFooter([]string{fmt.Sprintf("frame %d", s.Frame), fmt.Sprintf("%.0f samples/s", s.SamplesPerSecond()), "TOTAL", s.RenderTime.String()})

	table.Render()
}
