package tui

import (
	"fmt"
	"math"

	xansi "github.com/charmbracelet/x/ansi"

	"cutline/internal/model"
	"cutline/internal/timescale"
)

// clampLine truncates a styled line to the given display width, adding an
// ellipsis when content was cut. ANSI-aware: styling does not count.
func clampLine(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if xansi.StringWidth(s) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return xansi.Cut(s, 0, width-1) + "…"
}

// fmtSeconds renders a time like 12.3s or 1m02.5s.
func fmtSeconds(t float64) string {
	if t < 60 {
		return fmt.Sprintf("%.1fs", t)
	}
	mins := int(t) / 60
	return fmt.Sprintf("%dm%04.1fs", mins, t-float64(mins*60))
}

// timelineCols is the width of the scrollable lane area.
func (m appModel) timelineCols() int {
	cols := m.width - gutterWidth
	if cols < 0 {
		return 0
	}
	return cols
}

// colToPixel maps a terminal column to a pixel offset on the timeline, or
// false when the column is inside the gutter.
func (m appModel) colToPixel(x int) (float64, bool) {
	if x < gutterWidth {
		return 0, false
	}
	return float64(x-gutterWidth) + m.scrollPx, true
}

// rowToTrack maps a terminal row to the track lane it covers.
func (m appModel) rowToTrack(y int) (model.Track, bool) {
	idx := y - rulerRows
	tracks := m.tl.TracksInOrder()
	if idx < 0 || idx >= len(tracks) {
		return model.Track{}, false
	}
	return tracks[idx], true
}

// itemColumns returns the [start, end) column span of an item interval at
// the current zoom/scroll, in lane-area columns.
func (m appModel) itemColumns(start, duration float64) (int, int) {
	zoom := m.tl.Zoom()
	a := int(math.Floor(timescale.TimeToPixels(start, zoom) - m.scrollPx))
	b := int(math.Floor(timescale.TimeToPixels(start+duration, zoom) - m.scrollPx))
	if b <= a {
		b = a + 1 // every item occupies at least one cell
	}
	return a, b
}

// itemAtPixel finds the item on a track covering the pixel offset, and
// whether that pixel lands on the first or last cell of the clip (the
// resize handles).
func (m appModel) itemAtPixel(trackID string, px float64) (model.TimelineItem, edge, bool) {
	zoom := m.tl.Zoom()
	col := int(math.Floor(px - m.scrollPx))
	for _, it := range m.tl.ItemsOnTrack(trackID) {
		a := int(math.Floor(timescale.TimeToPixels(it.StartTime, zoom) - m.scrollPx))
		b := int(math.Floor(timescale.TimeToPixels(it.End(), zoom) - m.scrollPx))
		if b <= a {
			b = a + 1
		}
		if col < a || col >= b {
			continue
		}
		switch {
		case col == a && b-a > 2:
			return it, edgeStart, true
		case col == b-1 && b-a > 2:
			return it, edgeEnd, true
		default:
			return it, edgeNone, true
		}
	}
	return model.TimelineItem{}, edgeNone, false
}

type edge int

const (
	edgeNone edge = iota
	edgeStart
	edgeEnd
)
