// Package snap computes magnetic snap targets for interactive edits.
//
// Candidates are the nearest grid point (when grid snapping is on) plus the
// start/end boundaries of every item except the one being moved or resized.
// A proposed time is replaced by the nearest candidate only when strictly
// closer than the threshold; otherwise it passes through unchanged.
package snap

import (
	"math"
	"sort"

	"cutline/internal/model"
)

type Engine struct {
	Enabled      bool
	GridEnabled  bool
	GridInterval float64
	Threshold    float64
}

func NewEngine() *Engine {
	return &Engine{
		Enabled:      true,
		GridEnabled:  true,
		GridInterval: model.DefaultGridInterval,
		Threshold:    model.DefaultSnapThreshold,
	}
}

// Points returns the candidate set for a proposed time t, in generation
// order: the grid point first, then item boundaries (start before end).
// Items are visited in ID order so the candidate order is stable regardless
// of how the caller stores them.
//
// excludeID removes the item currently under interactive edit; its own
// boundaries must never attract it.
func (e *Engine) Points(t float64, items []model.TimelineItem, excludeID string) []model.SnapPoint {
	pts := make([]model.SnapPoint, 0, 1+2*len(items))
	if e.GridEnabled && e.GridInterval > 0 {
		pts = append(pts, model.SnapPoint{
			Time: math.Round(t/e.GridInterval) * e.GridInterval,
			Kind: model.SnapKindGrid,
		})
	}

	sorted := make([]model.TimelineItem, len(items))
	copy(sorted, items)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	for _, it := range sorted {
		if it.ID == excludeID {
			continue
		}
		pts = append(pts,
			model.SnapPoint{Time: it.StartTime, Kind: model.SnapKindItemStart, ItemID: it.ID},
			model.SnapPoint{Time: it.End(), Kind: model.SnapKindItemEnd, ItemID: it.ID},
		)
	}
	return pts
}

// Resolve returns the winning snap point for t, if any. The winner is the
// candidate with the minimum distance to t, provided that distance is
// strictly below the threshold. On exact ties the first-generated candidate
// wins (grid before boundaries), matching the editor's established feel.
func (e *Engine) Resolve(t float64, items []model.TimelineItem, excludeID string) (model.SnapPoint, bool) {
	if !e.Enabled {
		return model.SnapPoint{}, false
	}
	var best model.SnapPoint
	bestDist := math.Inf(1)
	for _, p := range e.Points(t, items, excludeID) {
		d := math.Abs(p.Time - t)
		if d < bestDist {
			best = p
			bestDist = d
		}
	}
	if bestDist < e.Threshold {
		return best, true
	}
	return model.SnapPoint{}, false
}

// Snap adjusts a proposed time to the nearest snap point within threshold,
// or returns it unchanged.
func (e *Engine) Snap(t float64, items []model.TimelineItem, excludeID string) float64 {
	if p, ok := e.Resolve(t, items, excludeID); ok {
		return p.Time
	}
	return t
}
