// Package export turns a canonical snapshot into the sorted structure the
// export collaborator consumes, plus the purely presentational EDL and JSON
// encodings of it. Nothing here carries semantics the engine must preserve;
// the sorted structure is the whole contract.
package export

import (
	"sort"

	"cutline/internal/model"
)

// Prepared is a read-only transform of the snapshot: tracks sorted by
// order, items sorted by (start time, track order).
type Prepared struct {
	Tracks   []model.Track        `json:"tracks"`
	Items    []model.TimelineItem `json:"items"`
	Duration float64              `json:"duration"`
}

func Prepare(snap model.Snapshot) Prepared {
	tracks := make([]model.Track, len(snap.Tracks))
	copy(tracks, snap.Tracks)
	sort.SliceStable(tracks, func(i, j int) bool { return tracks[i].Order < tracks[j].Order })

	orderByTrack := map[string]int{}
	for _, tr := range tracks {
		orderByTrack[tr.ID] = tr.Order
	}

	items := make([]model.TimelineItem, len(snap.Items))
	copy(items, snap.Items)
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].StartTime != items[j].StartTime {
			return items[i].StartTime < items[j].StartTime
		}
		return orderByTrack[items[i].TrackID] < orderByTrack[items[j].TrackID]
	})

	return Prepared{Tracks: tracks, Items: items, Duration: snap.Duration}
}
