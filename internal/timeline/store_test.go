package timeline

import (
	"testing"

	"cutline/internal/model"
)

func newVideoItem(trackID string, start, dur float64) model.TimelineItem {
	return model.TimelineItem{
		TrackID:   trackID,
		Kind:      model.ItemKindVideo,
		StartTime: start,
		Duration:  dur,
		Volume:    100,
		Opacity:   100,
		Speed:     1,
		Media:     &model.MediaPayload{URL: "clip.mp4"},
	}
}

func firstTrack(t *testing.T, s *Store) model.Track {
	t.Helper()
	tracks := s.TracksInOrder()
	if len(tracks) == 0 {
		t.Fatalf("store has no tracks")
	}
	return tracks[0]
}

func TestNewSeedsOneVideoTrack(t *testing.T) {
	s := New()
	tracks := s.TracksInOrder()
	if len(tracks) != 1 {
		t.Fatalf("got %d tracks; want 1", len(tracks))
	}
	if tracks[0].Kind != model.TrackKindVideo || tracks[0].Order != 0 {
		t.Fatalf("seed track = %+v", tracks[0])
	}
	if s.TotalDuration() != model.MinTimelineDuration {
		t.Fatalf("duration = %v; want %v", s.TotalDuration(), model.MinTimelineDuration)
	}
	if s.Zoom() != model.DefaultZoom {
		t.Fatalf("zoom = %v; want %v", s.Zoom(), model.DefaultZoom)
	}
}

func TestRemoveLastTrackIsNoOp(t *testing.T) {
	s := New()
	tr := firstTrack(t, s)
	if s.RemoveTrack(tr.ID) {
		t.Fatalf("removing the only track must be refused")
	}
	if _, found := s.Track(tr.ID); !found {
		t.Fatalf("track disappeared despite the refusal")
	}
}

func TestRemoveTrackCascades(t *testing.T) {
	s := New()
	audio := s.AddTrack(model.TrackKindAudio, "")
	if audio.Name != "Audio 2" {
		t.Fatalf("default name = %q; want \"Audio 2\"", audio.Name)
	}
	it, added := s.AddItem(newVideoItem(audio.ID, 0, 20))
	if !added {
		t.Fatalf("AddItem failed")
	}
	s.Select(it.ID)

	if !s.RemoveTrack(audio.ID) {
		t.Fatalf("RemoveTrack failed")
	}
	if _, found := s.Item(it.ID); found {
		t.Fatalf("item survived track removal")
	}
	if len(s.Selection()) != 0 {
		t.Fatalf("selection survived track removal: %v", s.Selection())
	}
	if got := firstTrack(t, s).Order; got != 0 {
		t.Fatalf("order not re-densified: %d", got)
	}
	if s.TotalDuration() != model.MinTimelineDuration {
		t.Fatalf("duration = %v after cascade; want floor", s.TotalDuration())
	}
}

func TestReorderTracks(t *testing.T) {
	s := New()
	a := firstTrack(t, s)
	b := s.AddTrack(model.TrackKindAudio, "b")
	c := s.AddTrack(model.TrackKindText, "c")

	// Partial list with an unknown ID: c goes first, unknowns are skipped,
	// the rest keep relative order after.
	s.ReorderTracks([]string{c.ID, "trk-nope"})

	got := s.TracksInOrder()
	want := []string{c.ID, a.ID, b.ID}
	for i, tr := range got {
		if tr.ID != want[i] || tr.Order != i {
			t.Fatalf("position %d = %s (order %d); want %s", i, tr.ID, tr.Order, want[i])
		}
	}
}

func TestAddItemRejectsUnknownTrack(t *testing.T) {
	s := New()
	if _, added := s.AddItem(newVideoItem("trk-ghost", 0, 5)); added {
		t.Fatalf("item accepted onto nonexistent track")
	}
}

func TestAddItemClampsAndExtendsDuration(t *testing.T) {
	s := New()
	tr := firstTrack(t, s)

	raw := newVideoItem(tr.ID, -3, 0.01)
	raw.Volume = 900
	it, added := s.AddItem(raw)
	if !added {
		t.Fatalf("AddItem failed")
	}
	if it.StartTime != 0 || it.Duration != model.MinItemDuration || it.Volume != model.MaxLevel {
		t.Fatalf("item not clamped: %+v", it)
	}
	if it.ID == "" {
		t.Fatalf("no id assigned")
	}

	long, _ := s.AddItem(newVideoItem(tr.ID, 10, 5))
	if s.TotalDuration() != long.End() {
		t.Fatalf("duration = %v; want %v", s.TotalDuration(), long.End())
	}

	s.SetPlayhead(15)
	s.RemoveItem(long.ID)
	if s.TotalDuration() != model.MinTimelineDuration {
		t.Fatalf("duration = %v after removal; want floor", s.TotalDuration())
	}
	if s.Playhead() > s.TotalDuration() {
		t.Fatalf("playhead %v beyond duration %v", s.Playhead(), s.TotalDuration())
	}
}

func TestUpdateItemDropsBadTrackChange(t *testing.T) {
	s := New()
	tr := firstTrack(t, s)
	it, _ := s.AddItem(newVideoItem(tr.ID, 0, 5))

	ghost := "trk-ghost"
	start := 2.0
	if !s.UpdateItem(it.ID, ItemChanges{TrackID: &ghost, StartTime: &start}) {
		t.Fatalf("UpdateItem failed")
	}
	got, _ := s.Item(it.ID)
	if got.TrackID != tr.ID {
		t.Fatalf("item moved to nonexistent track %s", got.TrackID)
	}
	if got.StartTime != 2.0 {
		t.Fatalf("start = %v; the valid part of the update should apply", got.StartTime)
	}
}

func TestDuplicateItemPlacesAfter(t *testing.T) {
	s := New()
	tr := firstTrack(t, s)
	orig, _ := s.AddItem(newVideoItem(tr.ID, 1, 4))
	orig.Trim = &model.TrimRange{Start: 0, End: 4}
	s.UpdateItem(orig.ID, ItemChanges{Trim: orig.Trim})

	clone, found := s.DuplicateItem(orig.ID)
	if !found {
		t.Fatalf("DuplicateItem failed")
	}
	if clone.ID == orig.ID {
		t.Fatalf("clone shares the original id")
	}
	if clone.StartTime != orig.End() {
		t.Fatalf("clone start = %v; want %v", clone.StartTime, orig.End())
	}

	// Deep copy: mutating the clone's trim must not touch the original.
	clone.Trim.End = 99
	kept, _ := s.Item(orig.ID)
	if kept.Trim.End != 4 {
		t.Fatalf("trim shared between original and clone")
	}
}

func TestSplitItem(t *testing.T) {
	s := New()
	tr := firstTrack(t, s)
	orig, _ := s.AddItem(newVideoItem(tr.ID, 2, 6))
	s.UpdateItem(orig.ID, ItemChanges{
		Trim:  &model.TrimRange{Start: 1, End: 13},
		Speed: ptr(2.0),
	})

	right, split := s.SplitItem(orig.ID, 4)
	if !split {
		t.Fatalf("SplitItem failed")
	}
	left, _ := s.Item(orig.ID)
	if left.StartTime != 2 || left.Duration != 2 {
		t.Fatalf("left = [%v, dur %v]; want [2, dur 2]", left.StartTime, left.Duration)
	}
	if right.StartTime != 4 || right.Duration != 4 {
		t.Fatalf("right = [%v, dur %v]; want [4, dur 4]", right.StartTime, right.Duration)
	}
	// Offset 2s at 2x speed consumes 4s of source: cut at 1 + 4 = 5.
	if left.Trim.Start != 1 || left.Trim.End != 5 {
		t.Fatalf("left trim = %+v; want [1, 5]", left.Trim)
	}
	if right.Trim.Start != 5 || right.Trim.End != 13 {
		t.Fatalf("right trim = %+v; want [5, 13]", right.Trim)
	}
}

func TestSplitItemRejectsEdgeCuts(t *testing.T) {
	s := New()
	tr := firstTrack(t, s)
	it, _ := s.AddItem(newVideoItem(tr.ID, 2, 1))

	for _, at := range []float64{2, 2.05, 2.95, 3, 5} {
		if _, split := s.SplitItem(it.ID, at); split {
			t.Fatalf("cut at %v accepted; both sides need the minimum duration", at)
		}
	}
	if _, split := s.SplitItem(it.ID, 2.5); !split {
		t.Fatalf("centered cut rejected")
	}
}

func TestUpdateItemsBatch(t *testing.T) {
	s := New()
	tr := firstTrack(t, s)
	a, _ := s.AddItem(newVideoItem(tr.ID, 0, 2))
	b, _ := s.AddItem(newVideoItem(tr.ID, 3, 2))

	applied := s.UpdateItems([]ItemChange{
		{ID: a.ID, Changes: ItemChanges{StartTime: ptr(1.0)}},
		{ID: b.ID, Changes: ItemChanges{StartTime: ptr(4.0)}},
		{ID: "itm-ghost", Changes: ItemChanges{StartTime: ptr(9.0)}},
	})
	if applied != 2 {
		t.Fatalf("applied = %d; want 2", applied)
	}
	gotA, _ := s.Item(a.ID)
	gotB, _ := s.Item(b.ID)
	if gotA.StartTime != 1 || gotB.StartTime != 4 {
		t.Fatalf("starts = %v, %v; want 1, 4", gotA.StartTime, gotB.StartTime)
	}
	if s.TotalDuration() != 6 {
		t.Fatalf("duration = %v; want 6", s.TotalDuration())
	}
}

func TestPlayheadClamp(t *testing.T) {
	s := New()
	tr := firstTrack(t, s)
	s.AddItem(newVideoItem(tr.ID, 0, 10))

	s.SetPlayhead(-3)
	if s.Playhead() != 0 {
		t.Fatalf("playhead = %v; want 0", s.Playhead())
	}
	s.SetPlayhead(25)
	if s.Playhead() != 10 {
		t.Fatalf("playhead = %v; want clamp to duration 10", s.Playhead())
	}
}

func TestZoomClamp(t *testing.T) {
	s := New()
	s.SetZoom(1)
	if s.Zoom() != model.MinZoom {
		t.Fatalf("zoom = %v; want %v", s.Zoom(), model.MinZoom)
	}
	s.SetZoom(10000)
	if s.Zoom() != model.MaxZoom {
		t.Fatalf("zoom = %v; want %v", s.Zoom(), model.MaxZoom)
	}
}

func TestSelection(t *testing.T) {
	s := New()
	tr := firstTrack(t, s)
	a, _ := s.AddItem(newVideoItem(tr.ID, 0, 1))
	b, _ := s.AddItem(newVideoItem(tr.ID, 1, 1))

	s.Select(a.ID, b.ID, "itm-ghost")
	if got := s.Selection(); len(got) != 2 {
		t.Fatalf("selection = %v; ghost ids must be ignored", got)
	}
	s.ToggleSelect(a.ID)
	if s.IsSelected(a.ID) {
		t.Fatalf("toggle did not deselect")
	}
	s.RemoveItem(b.ID)
	if len(s.Selection()) != 0 {
		t.Fatalf("selection kept a removed item: %v", s.Selection())
	}
}

func TestItemsAtTimeIsHalfOpen(t *testing.T) {
	s := New()
	tr := firstTrack(t, s)
	it, _ := s.AddItem(newVideoItem(tr.ID, 2, 3))

	cases := []struct {
		at   float64
		want int
	}{
		{1.99, 0},
		{2, 1},
		{4.99, 1},
		{5, 0}, // end is exclusive
	}
	for _, c := range cases {
		got := s.ItemsAtTime(c.at)
		if len(got) != c.want {
			t.Fatalf("ItemsAtTime(%v) = %d items; want %d", c.at, len(got), c.want)
		}
		if c.want == 1 && got[0].ID != it.ID {
			t.Fatalf("ItemsAtTime(%v) returned %s", c.at, got[0].ID)
		}
	}
}

func TestItemsOnTrackSortedByStart(t *testing.T) {
	s := New()
	tr := firstTrack(t, s)
	late, _ := s.AddItem(newVideoItem(tr.ID, 9, 1))
	early, _ := s.AddItem(newVideoItem(tr.ID, 1, 1))

	got := s.ItemsOnTrack(tr.ID)
	if len(got) != 2 || got[0].ID != early.ID || got[1].ID != late.ID {
		t.Fatalf("order = %v", []string{got[0].ID, got[1].ID})
	}
}

func TestSnapshotExcludesEphemeralState(t *testing.T) {
	s := New()
	tr := firstTrack(t, s)
	it, _ := s.AddItem(newVideoItem(tr.ID, 0, 8))
	s.SetPlayhead(4)
	s.Select(it.ID)

	snap := s.Snapshot()

	restored := New()
	restored.Restore(snap)
	if restored.Playhead() != 0 {
		t.Fatalf("playhead = %v after restore; want 0", restored.Playhead())
	}
	if len(restored.Selection()) != 0 {
		t.Fatalf("selection survived restore: %v", restored.Selection())
	}
	if restored.TotalDuration() != 8 {
		t.Fatalf("duration = %v; want 8", restored.TotalDuration())
	}
	if _, found := restored.Item(it.ID); !found {
		t.Fatalf("item lost in round trip")
	}
}

func TestRestoreSanitizesAndDropsOrphans(t *testing.T) {
	s := New()
	s.Restore(model.Snapshot{
		Tracks: []model.Track{
			{ID: "trk-a", Kind: model.TrackKindVideo, Order: 4, Height: 5},
		},
		Items: []model.TimelineItem{
			{ID: "itm-1", TrackID: "trk-a", Kind: model.ItemKindVideo, StartTime: -1, Duration: 0,
				Media: &model.MediaPayload{URL: "a.mp4"}},
			{ID: "itm-2", TrackID: "trk-gone", Kind: model.ItemKindVideo, StartTime: 0, Duration: 5,
				Media: &model.MediaPayload{URL: "b.mp4"}},
		},
		Duration: 0,
		Zoom:     99999,
	})

	tr, found := s.Track("trk-a")
	if !found {
		t.Fatalf("track lost")
	}
	if tr.Order != 0 || tr.Height != model.MinTrackHeight {
		t.Fatalf("track not sanitized: %+v", tr)
	}
	if _, found := s.Item("itm-2"); found {
		t.Fatalf("orphaned item kept")
	}
	it, found := s.Item("itm-1")
	if !found {
		t.Fatalf("item lost")
	}
	if it.StartTime != 0 || it.Duration != model.MinItemDuration {
		t.Fatalf("item not sanitized: %+v", it)
	}
	if s.Zoom() != model.MaxZoom {
		t.Fatalf("zoom = %v; want clamp", s.Zoom())
	}
}

func TestRestoreEmptySnapshotResets(t *testing.T) {
	s := New()
	s.Restore(model.Snapshot{})
	tracks := s.TracksInOrder()
	if len(tracks) != 1 || tracks[0].Kind != model.TrackKindVideo {
		t.Fatalf("empty restore should reseed the initial track, got %+v", tracks)
	}
}

func TestFreshIDsAreUnique(t *testing.T) {
	s := New()
	tr := firstTrack(t, s)
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		it, _ := s.AddItem(newVideoItem(tr.ID, float64(i), 1))
		if seen[it.ID] {
			t.Fatalf("duplicate id %s", it.ID)
		}
		seen[it.ID] = true
	}
}

func ptr[T any](v T) *T { return &v }
