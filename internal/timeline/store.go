// Package timeline owns the canonical editing state: tracks, items,
// playhead, zoom, and selection. Every mutation flows through one of the
// Store's entry points, each of which leaves the structural invariants
// intact — at least one track, dense track order, resolving item track
// references, clamped field ranges, and a recomputed total duration.
//
// The store is single-writer by design: all mutations run synchronously on
// the UI's event loop, so there are no locks. Invariant violations are
// silent no-ops (removing the last track, placing at negative time), never
// errors surfaced to the caller.
package timeline

import (
	"sort"
	"strconv"
	"strings"

	"cutline/internal/model"
	"cutline/internal/timescale"
	"cutline/internal/validate"
)

// Store is the single owner of canonical timeline state. It is an explicit,
// constructible object: callers inject it rather than importing a global.
type Store struct {
	tracks map[string]model.Track
	items  map[string]model.TimelineItem

	playhead  float64
	duration  float64
	zoom      float64
	selection map[string]bool

	fallbackSeq int
}

// New returns a store seeded with a single video track. The one-track floor
// is an invariant: RemoveTrack refuses to delete the last remaining track.
func New() *Store {
	s := &Store{}
	s.Reset()
	return s
}

// Reset returns the store to its initial state: one video track, nothing
// placed, default zoom.
func (s *Store) Reset() {
	s.tracks = map[string]model.Track{}
	s.items = map[string]model.TimelineItem{}
	s.playhead = 0
	s.duration = model.MinTimelineDuration
	s.zoom = model.DefaultZoom
	s.selection = map[string]bool{}
	s.AddTrack(model.TrackKindVideo, "Video 1")
}

// --- Track CRUD ---

// AddTrack appends a track with the next sequential order and returns it.
func (s *Store) AddTrack(kind model.TrackKind, name string) model.Track {
	name = strings.TrimSpace(name)
	if name == "" {
		name = defaultTrackName(kind, len(s.tracks)+1)
	}
	tr := model.Track{
		ID:     s.freshID("trk"),
		Name:   name,
		Kind:   kind,
		Order:  len(s.tracks),
		Height: model.DefaultTrackHeight,
	}
	s.tracks[tr.ID] = tr
	return tr
}

// RemoveTrack deletes a track, cascading deletion of its items and pruning
// any selection that referenced them. Removing the last remaining track is
// a no-op; the reported result is false and nothing changes.
func (s *Store) RemoveTrack(id string) bool {
	if _, found := s.tracks[id]; !found {
		return false
	}
	if len(s.tracks) <= 1 {
		return false
	}
	delete(s.tracks, id)
	for itemID, it := range s.items {
		if it.TrackID == id {
			delete(s.items, itemID)
			delete(s.selection, itemID)
		}
	}
	s.densifyTrackOrder()
	s.recomputeDuration()
	return true
}

// TrackChanges is a partial update; nil fields are left untouched.
type TrackChanges struct {
	Name   *string
	Height *int
	Locked *bool
	Hidden *bool
}

func (s *Store) UpdateTrack(id string, changes TrackChanges) bool {
	tr, found := s.tracks[id]
	if !found {
		return false
	}
	if changes.Name != nil && strings.TrimSpace(*changes.Name) != "" {
		tr.Name = strings.TrimSpace(*changes.Name)
	}
	if changes.Height != nil && *changes.Height >= model.MinTrackHeight {
		tr.Height = *changes.Height
	}
	if changes.Locked != nil {
		tr.Locked = *changes.Locked
	}
	if changes.Hidden != nil {
		tr.Hidden = *changes.Hidden
	}
	s.tracks[id] = tr
	return true
}

// ReorderTracks reassigns order to match the given ID sequence. Unknown IDs
// are ignored; tracks missing from the sequence keep their relative order
// after the listed ones.
func (s *Store) ReorderTracks(orderedIDs []string) {
	next := 0
	placed := map[string]bool{}
	for _, id := range orderedIDs {
		tr, found := s.tracks[id]
		if !found || placed[id] {
			continue
		}
		tr.Order = next
		s.tracks[id] = tr
		placed[id] = true
		next++
	}

	rest := make([]model.Track, 0, len(s.tracks))
	for _, tr := range s.tracks {
		if !placed[tr.ID] {
			rest = append(rest, tr)
		}
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i].Order < rest[j].Order })
	for _, tr := range rest {
		tr.Order = next
		s.tracks[tr.ID] = tr
		next++
	}
}

// --- Item CRUD ---

// AddItem assigns a fresh ID, clamps the item's fields into range, and
// extends the total duration to cover it. The stored item is returned.
// An item referencing a nonexistent track is rejected (zero item, false).
func (s *Store) AddItem(item model.TimelineItem) (model.TimelineItem, bool) {
	if _, found := s.tracks[item.TrackID]; !found {
		return model.TimelineItem{}, false
	}
	item.ID = s.freshID("itm")
	item = sanitizeItem(item)
	s.items[item.ID] = item
	s.recomputeDuration()
	return item, true
}

func (s *Store) RemoveItem(id string) bool {
	if _, found := s.items[id]; !found {
		return false
	}
	delete(s.items, id)
	delete(s.selection, id)
	s.recomputeDuration()
	return true
}

// ItemChanges is a partial update; nil fields are left untouched. Trim may
// be cleared explicitly with ClearTrim.
type ItemChanges struct {
	TrackID   *string
	StartTime *float64
	Duration  *float64
	Trim      *model.TrimRange
	ClearTrim bool
	Speed     *float64
	Volume    *float64
	Opacity   *float64
	Media     *model.MediaPayload
	Text      *model.TextPayload
}

// UpdateItem merges partial changes into an item, clamps the result, and
// recomputes the total duration. A TrackID change to a nonexistent track is
// dropped while the rest of the changes still apply.
func (s *Store) UpdateItem(id string, changes ItemChanges) bool {
	it, found := s.items[id]
	if !found {
		return false
	}
	if changes.TrackID != nil {
		if _, exists := s.tracks[*changes.TrackID]; exists {
			it.TrackID = *changes.TrackID
		}
	}
	if changes.StartTime != nil {
		it.StartTime = *changes.StartTime
	}
	if changes.Duration != nil {
		it.Duration = *changes.Duration
	}
	if changes.ClearTrim {
		it.Trim = nil
	} else if changes.Trim != nil {
		trim := *changes.Trim
		it.Trim = &trim
	}
	if changes.Speed != nil {
		it.Speed = *changes.Speed
	}
	if changes.Volume != nil {
		it.Volume = *changes.Volume
	}
	if changes.Opacity != nil {
		it.Opacity = *changes.Opacity
	}
	if changes.Media != nil {
		media := *changes.Media
		it.Media = &media
	}
	if changes.Text != nil {
		text := *changes.Text
		it.Text = &text
	}
	s.items[id] = sanitizeItem(it)
	s.recomputeDuration()
	return true
}

// MoveItem is UpdateItem restricted to placement: destination track and
// start time.
func (s *Store) MoveItem(id, trackID string, startTime float64) bool {
	return s.UpdateItem(id, ItemChanges{TrackID: &trackID, StartTime: &startTime})
}

// DuplicateItem clones an item under a new ID, placed immediately after the
// original.
func (s *Store) DuplicateItem(id string) (model.TimelineItem, bool) {
	it, found := s.items[id]
	if !found {
		return model.TimelineItem{}, false
	}
	clone := it
	clone.ID = s.freshID("itm")
	clone.StartTime = it.End()
	if it.Trim != nil {
		trim := *it.Trim
		clone.Trim = &trim
	}
	if it.Media != nil {
		media := *it.Media
		clone.Media = &media
	}
	if it.Text != nil {
		text := *it.Text
		clone.Text = &text
	}
	s.items[clone.ID] = clone
	s.recomputeDuration()
	return clone, true
}

// SplitItem cuts an item at time t into two items. The cut must fall
// strictly inside the item with at least the minimum duration on both
// sides. Trim ranges are partitioned at the corresponding source offset,
// honoring the speed multiplier.
func (s *Store) SplitItem(id string, t float64) (model.TimelineItem, bool) {
	it, found := s.items[id]
	if !found {
		return model.TimelineItem{}, false
	}
	offset := t - it.StartTime
	if offset < model.MinItemDuration || it.Duration-offset < model.MinItemDuration {
		return model.TimelineItem{}, false
	}

	right := it
	right.ID = s.freshID("itm")
	right.StartTime = t
	right.Duration = it.Duration - offset
	if it.Media != nil {
		media := *it.Media
		right.Media = &media
	}
	if it.Text != nil {
		text := *it.Text
		right.Text = &text
	}
	if it.Trim != nil {
		speed := it.Speed
		if speed <= 0 {
			speed = 1
		}
		cut := it.Trim.Start + offset*speed
		if cut > it.Trim.Start && cut < it.Trim.End {
			it.Trim = &model.TrimRange{Start: it.Trim.Start, End: cut}
			right.Trim = &model.TrimRange{Start: cut, End: right.Trim.End}
		} else {
			trim := *it.Trim
			right.Trim = &trim
		}
	}

	it.Duration = offset
	s.items[it.ID] = it
	s.items[right.ID] = right
	s.recomputeDuration()
	return right, true
}

// --- Batch operations ---

func (s *Store) RemoveItems(ids []string) int {
	removed := 0
	for _, id := range ids {
		if _, found := s.items[id]; found {
			delete(s.items, id)
			delete(s.selection, id)
			removed++
		}
	}
	if removed > 0 {
		s.recomputeDuration()
	}
	return removed
}

type ItemChange struct {
	ID      string
	Changes ItemChanges
}

// UpdateItems applies coordinated multi-item edits, e.g. nudging every
// marquee-selected clip. Each change funnels through UpdateItem, so the
// item invariants and the derived duration hold after every step.
func (s *Store) UpdateItems(changes []ItemChange) int {
	applied := 0
	for _, c := range changes {
		if s.UpdateItem(c.ID, c.Changes) {
			applied++
		}
	}
	return applied
}

// --- Playhead / zoom / selection ---

func (s *Store) SetPlayhead(t float64) {
	if t < 0 {
		t = 0
	}
	if t > s.duration {
		t = s.duration
	}
	s.playhead = t
}

func (s *Store) Playhead() float64 { return s.playhead }

func (s *Store) SetZoom(zoom float64) {
	s.zoom = timescale.ClampZoom(zoom)
}

func (s *Store) Zoom() float64 { return s.zoom }

func (s *Store) Select(ids ...string) {
	s.selection = map[string]bool{}
	for _, id := range ids {
		if _, found := s.items[id]; found {
			s.selection[id] = true
		}
	}
}

func (s *Store) ToggleSelect(id string) {
	if _, found := s.items[id]; !found {
		return
	}
	if s.selection[id] {
		delete(s.selection, id)
	} else {
		s.selection[id] = true
	}
}

func (s *Store) ClearSelection() {
	s.selection = map[string]bool{}
}

func (s *Store) Selection() []string {
	ids := make([]string, 0, len(s.selection))
	for id := range s.selection {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (s *Store) IsSelected(id string) bool { return s.selection[id] }

// --- Queries ---

func (s *Store) Track(id string) (model.Track, bool) {
	tr, found := s.tracks[id]
	return tr, found
}

func (s *Store) Item(id string) (model.TimelineItem, bool) {
	it, found := s.items[id]
	return it, found
}

// TracksInOrder returns all tracks sorted by their vertical order.
func (s *Store) TracksInOrder() []model.Track {
	out := make([]model.Track, 0, len(s.tracks))
	for _, tr := range s.tracks {
		out = append(out, tr)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// TrackAtOrder resolves a vertical position to its track.
func (s *Store) TrackAtOrder(order int) (model.Track, bool) {
	for _, tr := range s.tracks {
		if tr.Order == order {
			return tr, true
		}
	}
	return model.Track{}, false
}

// Items returns all items in a stable (ID-sorted) order.
func (s *Store) Items() []model.TimelineItem {
	out := make([]model.TimelineItem, 0, len(s.items))
	for _, it := range s.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ItemsOnTrack returns a track's contents, sorted by start time. Track
// contents are always derived by filtering; they are never stored on the
// track itself.
func (s *Store) ItemsOnTrack(trackID string) []model.TimelineItem {
	var out []model.TimelineItem
	for _, it := range s.items {
		if it.TrackID == trackID {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartTime != out[j].StartTime {
			return out[i].StartTime < out[j].StartTime
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// ItemsAtTime returns every item whose interval [start, end) contains t.
// This is the read the playback collaborator drives its rendering from.
func (s *Store) ItemsAtTime(t float64) []model.TimelineItem {
	var out []model.TimelineItem
	for _, it := range s.items {
		if t >= it.StartTime && t < it.End() {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) TotalDuration() float64 { return s.duration }

// CalculateTotalDuration recomputes the derived total from item extents.
func (s *Store) CalculateTotalDuration() float64 {
	total := model.MinTimelineDuration
	for _, it := range s.items {
		if end := it.End(); end > total {
			total = end
		}
	}
	return total
}

// --- Snapshot / restore ---

// Snapshot captures the persistable state. Playhead and selection are
// ephemeral UI state and excluded by contract.
func (s *Store) Snapshot() model.Snapshot {
	return model.Snapshot{
		Tracks:   s.TracksInOrder(),
		Items:    s.Items(),
		Duration: s.duration,
		Zoom:     s.zoom,
	}
}

// Restore replaces the canonical state with a snapshot. The snapshot is
// sanitized first, so corrupted or out-of-range persisted state is coerced
// into a valid configuration rather than rejected. A snapshot with no
// tracks restores to the initial single-track state.
func (s *Store) Restore(snap model.Snapshot) {
	snap = validate.SanitizeSnapshot(snap)
	if len(snap.Tracks) == 0 {
		s.Reset()
		return
	}
	s.tracks = map[string]model.Track{}
	for _, tr := range snap.Tracks {
		s.tracks[tr.ID] = tr
	}
	s.items = map[string]model.TimelineItem{}
	for _, it := range snap.Items {
		if _, found := s.tracks[it.TrackID]; !found {
			continue
		}
		s.items[it.ID] = it
	}
	s.playhead = 0
	s.selection = map[string]bool{}
	s.zoom = snap.Zoom
	s.recomputeDuration()
}

// --- internal helpers ---

func (s *Store) recomputeDuration() {
	// Total duration is derived: max item end, floored. Recomputed after
	// every mutation rather than maintained incrementally.
	s.duration = s.CalculateTotalDuration()
	if s.playhead > s.duration {
		s.playhead = s.duration
	}
}

func (s *Store) densifyTrackOrder() {
	ordered := s.TracksInOrder()
	for i, tr := range ordered {
		tr.Order = i
		s.tracks[tr.ID] = tr
	}
}

// sanitizeItem clamps one item's fields into range. Shared by add and
// update so every stored item satisfies the invariants.
func sanitizeItem(it model.TimelineItem) model.TimelineItem {
	if it.StartTime < 0 {
		it.StartTime = 0
	}
	if it.Duration < model.MinItemDuration {
		it.Duration = model.MinItemDuration
	}
	if it.Volume < 0 {
		it.Volume = 0
	}
	if it.Volume > model.MaxLevel {
		it.Volume = model.MaxLevel
	}
	if it.Opacity < 0 {
		it.Opacity = 0
	}
	if it.Opacity > model.MaxLevel {
		it.Opacity = model.MaxLevel
	}
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
	return it
}

func defaultTrackName(kind model.TrackKind, n int) string {
	switch kind {
	case model.TrackKindAudio:
		return "Audio " + strconv.Itoa(n)
	case model.TrackKindText:
		return "Text " + strconv.Itoa(n)
	default:
		return "Video " + strconv.Itoa(n)
	}
}
