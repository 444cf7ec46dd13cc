// Package validate holds the pure checks behind every commit: structural
// validation of tracks and items, overlap detection, and placement queries.
//
// Whole-state review (Timeline, Overlaps) reports findings as values and
// never blocks; interactive placement (CanPlace, CanMove) answers yes/no and
// is the one path where overlap is a hard rejection. That asymmetry is
// deliberate: a drag should not be committable into an invalid arrangement,
// but an imported project must be corrected or flagged, never refused.
package validate

import (
	"fmt"
	"sort"

	"cutline/internal/model"
)

// Placement is the answer to a "can this go there" query.
type Placement struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

func ok() Placement { return Placement{Valid: true} }

func reject(format string, args ...any) Placement {
	return Placement{Valid: false, Reason: fmt.Sprintf(format, args...)}
}

// Tracks checks track-level invariants: unique IDs, a dense ascending order
// sequence, and positive heights. An empty track list is reported as a
// warning only; the store is what actually refuses to remove the last track.
func Tracks(tracks []model.Track) []model.ValidationError {
	var errs []model.ValidationError

	if len(tracks) == 0 {
		errs = append(errs, model.ValidationError{
			Severity: model.SeverityWarning,
			Message:  "timeline has no tracks",
		})
		return errs
	}

	seen := map[string]bool{}
	for _, tr := range tracks {
		if seen[tr.ID] {
			errs = append(errs, model.ValidationError{
				Severity: model.SeverityError,
				Message:  "duplicate track id",
				TrackID:  tr.ID,
			})
		}
		seen[tr.ID] = true
		if tr.Height <= 0 {
			errs = append(errs, model.ValidationError{
				Severity: model.SeverityError,
				Message:  fmt.Sprintf("track height must be positive, got %d", tr.Height),
				TrackID:  tr.ID,
			})
		}
	}

	ordered := make([]model.Track, len(tracks))
	copy(ordered, tracks)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Order < ordered[j].Order })
	for i, tr := range ordered {
		if tr.Order != i {
			errs = append(errs, model.ValidationError{
				Severity: model.SeverityError,
				Message:  fmt.Sprintf("track order is not dense: expected %d, got %d", i, tr.Order),
				TrackID:  tr.ID,
			})
		}
	}

	return errs
}

// Items checks item-level invariants against the current track set.
func Items(items []model.TimelineItem, tracks []model.Track) []model.ValidationError {
	var errs []model.ValidationError

	trackByID := map[string]model.Track{}
	for _, tr := range tracks {
		trackByID[tr.ID] = tr
	}

	seen := map[string]bool{}
	for _, it := range items {
		if seen[it.ID] {
			errs = append(errs, model.ValidationError{
				Severity: model.SeverityError,
				Message:  "duplicate item id",
				ItemID:   it.ID,
			})
		}
		seen[it.ID] = true

		if _, found := trackByID[it.TrackID]; !found {
			errs = append(errs, model.ValidationError{
				Severity: model.SeverityError,
				Message:  fmt.Sprintf("item references missing track %s", it.TrackID),
				ItemID:   it.ID,
				TrackID:  it.TrackID,
			})
		}
		if it.StartTime < 0 {
			errs = append(errs, model.ValidationError{
				Severity: model.SeverityError,
				Message:  fmt.Sprintf("negative start time %.3f", it.StartTime),
				ItemID:   it.ID,
			})
		}
		if it.Duration <= 0 {
			errs = append(errs, model.ValidationError{
				Severity: model.SeverityError,
				Message:  fmt.Sprintf("duration must be positive, got %.3f", it.Duration),
				ItemID:   it.ID,
			})
		}

		switch {
		case it.Kind.HasMedia():
			if it.Media == nil || it.Media.URL == "" {
				errs = append(errs, model.ValidationError{
					Severity: model.SeverityError,
					Message:  "media item has no media url",
					ItemID:   it.ID,
				})
			}
		case it.Kind == model.ItemKindText:
			if it.Text == nil || it.Text.Content == "" {
				errs = append(errs, model.ValidationError{
					Severity: model.SeverityError,
					Message:  "text item has no content",
					ItemID:   it.ID,
				})
			}
		}

		if it.Volume < 0 || it.Volume > model.MaxLevel {
			errs = append(errs, model.ValidationError{
				Severity: model.SeverityError,
				Message:  fmt.Sprintf("volume %.1f out of range 0-%.0f", it.Volume, model.MaxLevel),
				ItemID:   it.ID,
			})
		}
		if it.Opacity < 0 || it.Opacity > model.MaxLevel {
			errs = append(errs, model.ValidationError{
				Severity: model.SeverityError,
				Message:  fmt.Sprintf("opacity %.1f out of range 0-%.0f", it.Opacity, model.MaxLevel),
				ItemID:   it.ID,
			})
		}
		if it.Trim != nil && it.Trim.End <= it.Trim.Start {
			errs = append(errs, model.ValidationError{
				Severity: model.SeverityError,
				Message:  fmt.Sprintf("trim end %.3f must be after trim start %.3f", it.Trim.End, it.Trim.Start),
				ItemID:   it.ID,
			})
		}
	}

	return errs
}

// Overlaps reports every overlapping pair of items sharing a track. These
// are warnings: review of a whole snapshot never blocks on overlap.
func Overlaps(items []model.TimelineItem) []model.ValidationError {
	var errs []model.ValidationError

	byTrack := map[string][]model.TimelineItem{}
	for _, it := range items {
		byTrack[it.TrackID] = append(byTrack[it.TrackID], it)
	}

	trackIDs := make([]string, 0, len(byTrack))
	for id := range byTrack {
		trackIDs = append(trackIDs, id)
	}
	sort.Strings(trackIDs)

	for _, trackID := range trackIDs {
		group := byTrack[trackID]
		sort.Slice(group, func(i, j int) bool {
			if group[i].StartTime != group[j].StartTime {
				return group[i].StartTime < group[j].StartTime
			}
			return group[i].ID < group[j].ID
		})
		for i := 0; i < len(group); i++ {
			for j := i + 1; j < len(group); j++ {
				if group[i].Overlaps(group[j]) {
					errs = append(errs, model.ValidationError{
						Severity: model.SeverityWarning,
						Message:  fmt.Sprintf("items %s and %s overlap", group[i].ID, group[j].ID),
						ItemID:   group[i].ID,
						TrackID:  trackID,
					})
				}
			}
		}
	}

	return errs
}

// Timeline runs the full whole-state review: tracks, items, overlaps.
func Timeline(tracks []model.Track, items []model.TimelineItem) []model.ValidationError {
	var errs []model.ValidationError
	errs = append(errs, Tracks(tracks)...)
	errs = append(errs, Items(items, tracks)...)
	errs = append(errs, Overlaps(items)...)
	return errs
}

// HasErrors reports whether any finding is error-severity.
func HasErrors(errs []model.ValidationError) bool {
	for _, e := range errs {
		if e.Severity == model.SeverityError {
			return true
		}
	}
	return false
}

// CanPlace answers whether item may sit at proposedStart on trackID given
// the other items already on the timeline. The item itself is excluded from
// the overlap scan so a resize-in-place never collides with its own
// committed interval.
func CanPlace(item model.TimelineItem, proposedStart float64, trackID string, items []model.TimelineItem, allowOverlap bool) Placement {
	if proposedStart < 0 {
		return reject("start time %.3f is negative", proposedStart)
	}
	if allowOverlap {
		return ok()
	}

	proposed := item
	proposed.StartTime = proposedStart
	proposed.TrackID = trackID
	for _, other := range items {
		if other.ID == item.ID || other.TrackID != trackID {
			continue
		}
		if proposed.Overlaps(other) {
			return reject("overlaps item %s", other.ID)
		}
	}
	return ok()
}

// CanMove checks a coordinated move of several items by a time delta and a
// track-order delta. It fails fast: the first item whose destination track
// does not exist or whose placement is rejected decides the answer. Items
// moving together are excluded from each other's overlap scans.
func CanMove(moving []model.TimelineItem, deltaTime float64, deltaTrackOrder int, tracks []model.Track, allItems []model.TimelineItem, allowOverlap bool) Placement {
	trackByOrder := map[int]model.Track{}
	orderByID := map[string]int{}
	for _, tr := range tracks {
		trackByOrder[tr.Order] = tr
		orderByID[tr.ID] = tr.Order
	}

	movingIDs := map[string]bool{}
	for _, it := range moving {
		movingIDs[it.ID] = true
	}
	stationary := make([]model.TimelineItem, 0, len(allItems))
	for _, it := range allItems {
		if !movingIDs[it.ID] {
			stationary = append(stationary, it)
		}
	}

	for _, it := range moving {
		order, found := orderByID[it.TrackID]
		if !found {
			return reject("item %s references missing track %s", it.ID, it.TrackID)
		}
		target, found := trackByOrder[order+deltaTrackOrder]
		if !found {
			return reject("no track at position %d for item %s", order+deltaTrackOrder, it.ID)
		}
		if p := CanPlace(it, it.StartTime+deltaTime, target.ID, stationary, allowOverlap); !p.Valid {
			return p
		}
	}
	return ok()
}
