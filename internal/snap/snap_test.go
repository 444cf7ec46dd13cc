package snap

import (
	"math"
	"testing"

	"cutline/internal/model"
)

func testEngine() *Engine {
	return &Engine{
		Enabled:      true,
		GridEnabled:  true,
		GridInterval: 0.5,
		Threshold:    0.1,
	}
}

func TestGridSnap(t *testing.T) {
	e := testEngine()

	if got := e.Snap(3.47, nil, ""); got != 3.5 {
		t.Fatalf("Snap(3.47) = %v; want 3.5", got)
	}
	// 3.30 is 0.2 from the nearest grid point (3.5): outside threshold.
	if got := e.Snap(3.30, nil, ""); got != 3.30 {
		t.Fatalf("Snap(3.30) = %v; want unchanged", got)
	}
}

func TestBoundarySnapExcludesDraggedItem(t *testing.T) {
	e := testEngine()
	e.GridEnabled = false

	items := []model.TimelineItem{
		{ID: "itm-a", TrackID: "trk-1", StartTime: 0, Duration: 4},
		{ID: "itm-b", TrackID: "trk-1", StartTime: 10, Duration: 2},
	}

	// Dragging itm-b: its proposed start 4.05 pulls to itm-a's end.
	if got := e.Snap(4.05, items, "itm-b"); got != 4.0 {
		t.Fatalf("Snap(4.05) = %v; want 4.0", got)
	}

	// The dragged item's own boundaries never attract it.
	if got := e.Snap(10.05, items, "itm-b"); got != 10.05 {
		t.Fatalf("Snap(10.05) excluding itm-b = %v; want unchanged", got)
	}
}

func TestTieBreakGridWins(t *testing.T) {
	e := testEngine()

	// The item boundary sits exactly on a grid point, so both candidates
	// land on 3.0 and the distances tie bit for bit. The grid candidate is
	// generated first and keeps the win.
	items := []model.TimelineItem{
		{ID: "itm-a", TrackID: "trk-1", StartTime: 3.0, Duration: 2},
	}
	p, ok := e.Resolve(2.95, items, "")
	if !ok {
		t.Fatalf("expected a snap point")
	}
	if p.Kind != model.SnapKindGrid {
		t.Fatalf("tie went to %s; want grid", p.Kind)
	}
	if math.Abs(p.Time-3.0) > 1e-9 {
		t.Fatalf("tie time = %v; want 3.0", p.Time)
	}
}

func TestThresholdIsStrict(t *testing.T) {
	e := testEngine()
	e.GridEnabled = false

	items := []model.TimelineItem{
		{ID: "itm-a", TrackID: "trk-1", StartTime: 2, Duration: 1},
	}
	// Exactly at threshold distance: not snapped (strictly-less-than).
	if got := e.Snap(2.1, items, ""); got != 2.1 {
		t.Fatalf("Snap at exact threshold = %v; want unchanged", got)
	}
}

func TestResolveReportsKindAndItem(t *testing.T) {
	e := testEngine()
	e.GridEnabled = false

	items := []model.TimelineItem{
		{ID: "itm-a", TrackID: "trk-1", StartTime: 1, Duration: 2},
	}
	p, ok := e.Resolve(3.02, items, "")
	if !ok {
		t.Fatalf("expected a snap point")
	}
	if p.Kind != model.SnapKindItemEnd || p.ItemID != "itm-a" {
		t.Fatalf("got %+v; want item-end of itm-a", p)
	}
}

func TestDisabledEngine(t *testing.T) {
	e := testEngine()
	e.Enabled = false
	if got := e.Snap(3.47, nil, ""); got != 3.47 {
		t.Fatalf("disabled Snap = %v; want unchanged", got)
	}
}

func TestPointsOrderIsStable(t *testing.T) {
	e := testEngine()
	items := []model.TimelineItem{
		{ID: "itm-b", StartTime: 5, Duration: 1},
		{ID: "itm-a", StartTime: 1, Duration: 1},
	}
	pts := e.Points(0, items, "")
	want := []model.SnapKind{
		model.SnapKindGrid,
		model.SnapKindItemStart, model.SnapKindItemEnd, // itm-a
		model.SnapKindItemStart, model.SnapKindItemEnd, // itm-b
	}
	if len(pts) != len(want) {
		t.Fatalf("got %d points; want %d", len(pts), len(want))
	}
	for i, k := range want {
		if pts[i].Kind != k {
			t.Fatalf("point %d kind = %s; want %s", i, pts[i].Kind, k)
		}
	}
	if pts[1].ItemID != "itm-a" || pts[3].ItemID != "itm-b" {
		t.Fatalf("items not visited in ID order: %+v", pts)
	}
}
