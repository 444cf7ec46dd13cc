// Package timescale converts between pixel offsets and time offsets.
//
// Zoom is the single scale factor (pixels per second) governing the mapping.
// All functions are pure; the only place zoom is written is through the
// store's setter, which clamps via ClampZoom.
package timescale

import "cutline/internal/model"

// TimeToPixels maps a time offset in seconds to a pixel offset.
func TimeToPixels(t, zoom float64) float64 {
	return t * zoom
}

// PixelsToTime maps a pixel offset to a time offset in seconds.
func PixelsToTime(p, zoom float64) float64 {
	return p / zoom
}

// ClampZoom bounds a zoom factor to the valid pixels-per-second range.
func ClampZoom(zoom float64) float64 {
	if zoom < model.MinZoom {
		return model.MinZoom
	}
	if zoom > model.MaxZoom {
		return model.MaxZoom
	}
	return zoom
}

// MouseToTime resolves a pointer X position to a timeline time, accounting
// for horizontal scroll. Callers typically pass the result through the snap
// engine before using it.
func MouseToTime(pointerX, scrollOffset, zoom float64) float64 {
	return PixelsToTime(pointerX+scrollOffset, zoom)
}
