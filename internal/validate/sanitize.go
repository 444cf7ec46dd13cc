package validate

import (
	"sort"

	"cutline/internal/model"
	"cutline/internal/timescale"
)

// State is the full mutable timeline state reviewed by Sanitize. Unlike
// model.Snapshot it carries the ephemeral playhead, which load paths zero.
type State struct {
	Tracks   []model.Track
	Items    []model.TimelineItem
	Playhead float64
	Duration float64
	Zoom     float64
}

// Sanitize coerces any state into a valid configuration. Out-of-range
// values are clamped, track order is re-densified by array position, and
// inverted trim ranges are dropped. Loaded project files always pass
// through here rather than being rejected.
//
// Sanitize is idempotent: applying it twice yields the same result as once.
func Sanitize(s State) State {
	out := State{
		Tracks:   make([]model.Track, len(s.Tracks)),
		Items:    make([]model.TimelineItem, len(s.Items)),
		Playhead: s.Playhead,
		Duration: s.Duration,
		Zoom:     s.Zoom,
	}
	copy(out.Tracks, s.Tracks)
	copy(out.Items, s.Items)

	if out.Playhead < 0 {
		out.Playhead = 0
	}
	if out.Duration < model.MinTimelineDuration {
		out.Duration = model.MinTimelineDuration
	}
	out.Zoom = timescale.ClampZoom(out.Zoom)

	for i := range out.Tracks {
		tr := &out.Tracks[i]
		tr.Order = i
		if tr.Height < model.MinTrackHeight {
			tr.Height = model.MinTrackHeight
		}
	}

	for i := range out.Items {
		it := &out.Items[i]
		if it.StartTime < 0 {
			it.StartTime = 0
		}
		if it.Duration < model.MinItemDuration {
			it.Duration = model.MinItemDuration
		}
		it.Volume = clampLevel(it.Volume)
		it.Opacity = clampLevel(it.Opacity)
		if it.Trim != nil && it.Trim.End <= it.Trim.Start {
			it.Trim = nil
		}
		if it.Speed != 0 {
			if it.Speed < model.MinSpeed {
				it.Speed = model.MinSpeed
			}
			if it.Speed > model.MaxSpeed {
				it.Speed = model.MaxSpeed
			}
		}
	}

	return out
}

// SanitizeSnapshot applies Sanitize to a persisted snapshot. The snapshot
// track slice is ordered by Order before re-densifying so a sparse but
// correctly sequenced order survives a round trip untouched.
func SanitizeSnapshot(snap model.Snapshot) model.Snapshot {
	tracks := make([]model.Track, len(snap.Tracks))
	copy(tracks, snap.Tracks)
	sort.SliceStable(tracks, func(i, j int) bool { return tracks[i].Order < tracks[j].Order })

	s := Sanitize(State{
		Tracks:   tracks,
		Items:    snap.Items,
		Duration: snap.Duration,
		Zoom:     snap.Zoom,
	})
	return model.Snapshot{
		Tracks:   s.Tracks,
		Items:    s.Items,
		Duration: s.Duration,
		Zoom:     s.Zoom,
	}
}

func clampLevel(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > model.MaxLevel {
		return model.MaxLevel
	}
	return v
}
