// Package drag drives interactive move and resize gestures. A controller
// holds only ephemeral gesture state: between pointer-down and pointer-up it
// computes snapped candidate previews without touching the store, and only
// an explicit commit that passes placement validation mutates anything. A
// canceled or invalid gesture therefore leaves the timeline exactly as it
// was.
package drag

import (
	"cutline/internal/model"
	"cutline/internal/snap"
	"cutline/internal/timeline"
	"cutline/internal/timescale"
	"cutline/internal/validate"
)

type State int

const (
	Idle State = iota
	Dragging
	Resizing
)

type Handle int

const (
	HandleStart Handle = iota
	HandleEnd
)

// Preview is the candidate state surfaced while a gesture is in flight.
// It is display-only; nothing is committed until Commit.
type Preview struct {
	ItemID    string
	TrackID   string
	StartTime float64
	Duration  float64
	Snapped   bool
}

type Controller struct {
	snapper *snap.Engine

	state  State
	handle Handle

	itemID        string
	originTrackID string
	originStart   float64
	originDur     float64
	pointerOrigin float64

	// candidateStart is the raw (snapped, unclamped) start of the current
	// candidate. The preview clamps negatives at zero; commit rejects them.
	candidateStart float64

	preview Preview
	active  bool
}

func NewController(snapper *snap.Engine) *Controller {
	return &Controller{snapper: snapper}
}

func (c *Controller) State() State { return c.state }

// ActivePreview returns the in-flight candidate, if any.
func (c *Controller) ActivePreview() (Preview, bool) {
	return c.preview, c.active
}

// StartDrag begins a move gesture from pointer-down over an item body.
func (c *Controller) StartDrag(item model.TimelineItem, pointerX float64) {
	c.state = Dragging
	c.itemID = item.ID
	c.originTrackID = item.TrackID
	c.originStart = item.StartTime
	c.originDur = item.Duration
	c.pointerOrigin = pointerX
	c.candidateStart = item.StartTime
	c.preview = Preview{ItemID: item.ID, TrackID: item.TrackID, StartTime: item.StartTime, Duration: item.Duration}
	c.active = true
}

// StartResize begins a resize gesture from pointer-down over a start/end
// handle.
func (c *Controller) StartResize(item model.TimelineItem, handle Handle, pointerX float64) {
	c.state = Resizing
	c.handle = handle
	c.itemID = item.ID
	c.originTrackID = item.TrackID
	c.originStart = item.StartTime
	c.originDur = item.Duration
	c.pointerOrigin = pointerX
	c.candidateStart = item.StartTime
	c.preview = Preview{ItemID: item.ID, TrackID: item.TrackID, StartTime: item.StartTime, Duration: item.Duration}
	c.active = true
}

// Update recomputes the candidate from the current pointer position. For a
// drag the target track is whatever lane the pointer is over; resizes stay
// on the origin track. The result is a preview only.
func (c *Controller) Update(pointerX float64, targetTrackID string, zoom float64, items []model.TimelineItem) (Preview, bool) {
	if c.state == Idle {
		return Preview{}, false
	}
	deltaTime := timescale.PixelsToTime(pointerX-c.pointerOrigin, zoom)

	switch c.state {
	case Dragging:
		start := c.snapper.Snap(c.originStart+deltaTime, items, c.itemID)
		snapped := start != c.originStart+deltaTime
		c.candidateStart = start
		if start < 0 {
			// Preview clamps at zero; the raw candidate stays recorded and
			// commit refuses it.
			start = 0
		}
		trackID := targetTrackID
		if trackID == "" {
			trackID = c.originTrackID
		}
		c.preview = Preview{ItemID: c.itemID, TrackID: trackID, StartTime: start, Duration: c.originDur, Snapped: snapped}

	case Resizing:
		if c.handle == HandleStart {
			start := c.snapper.Snap(c.originStart+deltaTime, items, c.itemID)
			c.candidateStart = start
			if start < 0 {
				start = 0
			}
			// Start and duration move together so the end time stays fixed
			// until the duration floors out; past that point the start keeps
			// following the pointer.
			shift := start - c.originStart
			dur := c.originDur - shift
			if dur < model.MinItemDuration {
				dur = model.MinItemDuration
			}
			c.preview = Preview{ItemID: c.itemID, TrackID: c.originTrackID, StartTime: start, Duration: dur, Snapped: start != c.originStart+deltaTime}
		} else {
			durRaw := c.originDur + deltaTime
			if durRaw < model.MinItemDuration {
				durRaw = model.MinItemDuration
			}
			end := c.snapper.Snap(c.originStart+durRaw, items, c.itemID)
			dur := end - c.originStart
			if dur < model.MinItemDuration {
				dur = model.MinItemDuration
			}
			c.preview = Preview{ItemID: c.itemID, TrackID: c.originTrackID, StartTime: c.originStart, Duration: dur, Snapped: end != c.originStart+durRaw}
		}
	}

	c.active = true
	return c.preview, true
}

// Commit ends the gesture, running the final candidate through placement
// validation. Only a valid candidate mutates the store; everything else is
// discarded. The controller always returns to Idle.
func (c *Controller) Commit(store *timeline.Store) bool {
	if c.state == Idle {
		return false
	}
	preview := c.preview
	state := c.state
	rawStart := c.candidateStart
	c.reset()

	if rawStart < 0 {
		// The preview showed the candidate clamped at zero, but a gesture
		// whose real candidate went negative never commits.
		return false
	}

	item, found := store.Item(preview.ItemID)
	if !found {
		return false
	}
	if _, found := store.Track(preview.TrackID); !found {
		return false
	}

	candidate := item
	candidate.StartTime = preview.StartTime
	candidate.Duration = preview.Duration
	if p := validate.CanPlace(candidate, preview.StartTime, preview.TrackID, store.Items(), false); !p.Valid {
		return false
	}

	switch state {
	case Dragging:
		return store.MoveItem(preview.ItemID, preview.TrackID, preview.StartTime)
	case Resizing:
		return store.UpdateItem(preview.ItemID, timeline.ItemChanges{
			StartTime: &preview.StartTime,
			Duration:  &preview.Duration,
		})
	}
	return false
}

// Cancel discards the gesture unconditionally.
func (c *Controller) Cancel() {
	c.reset()
}

func (c *Controller) reset() {
	c.state = Idle
	c.itemID = ""
	c.originTrackID = ""
	c.originStart = 0
	c.originDur = 0
	c.pointerOrigin = 0
	c.candidateStart = 0
	c.preview = Preview{}
	c.active = false
}
