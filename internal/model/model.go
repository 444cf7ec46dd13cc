package model

type TrackKind string

const (
	TrackKindVideo TrackKind = "video"
	TrackKindAudio TrackKind = "audio"
	TrackKindText  TrackKind = "text"
)

type ItemKind string

const (
	ItemKindVideo ItemKind = "video"
	ItemKindImage ItemKind = "image"
	ItemKindText  ItemKind = "text"
	ItemKindAudio ItemKind = "audio"
)

const (
	// MinItemDuration is the hard floor for item duration, in seconds.
	// Resize and sanitization never let an item get shorter than this.
	MinItemDuration = 0.1

	// MinTimelineDuration is the floor for the derived total duration.
	MinTimelineDuration = 1.0

	// Zoom is pixels per second. Every zoom setter clamps to this range.
	MinZoom     = 10.0
	MaxZoom     = 500.0
	DefaultZoom = 50.0

	MinTrackHeight     = 40
	DefaultTrackHeight = 60

	MinSpeed = 0.25
	MaxSpeed = 4.0

	// Volume and opacity are normalized to 0-100 everywhere.
	MaxLevel = 100.0

	DefaultSnapThreshold = 0.1
	DefaultGridInterval  = 0.5
)

type Track struct {
	ID     string    `json:"id"`
	Name   string    `json:"name"`
	Kind   TrackKind `json:"kind"`
	Order  int       `json:"order"`
	Height int       `json:"height"`
	Locked bool      `json:"locked,omitempty"`
	Hidden bool      `json:"hidden,omitempty"`
}

// TrimRange selects the sub-interval of the source media played by an item.
// Only meaningful for video/audio items; End must be greater than Start.
type TrimRange struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

type MediaPayload struct {
	URL          string `json:"mediaUrl"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
}

type TextPayload struct {
	Content    string `json:"content"`
	FontFamily string `json:"fontFamily,omitempty"`
	FontSize   int    `json:"fontSize,omitempty"`
	Color      string `json:"color,omitempty"`
	X          int    `json:"x,omitempty"`
	Y          int    `json:"y,omitempty"`
}

// TimelineItem is one placed clip. TrackID is a weak reference: it must
// resolve to an existing Track but tracks never embed their items.
type TimelineItem struct {
	ID        string     `json:"id"`
	TrackID   string     `json:"trackId"`
	Kind      ItemKind   `json:"kind"`
	StartTime float64    `json:"startTime"`
	Duration  float64    `json:"duration"`
	Trim      *TrimRange `json:"trim,omitempty"`
	Speed     float64    `json:"speed,omitempty"`
	Volume    float64    `json:"volume,omitempty"`
	Opacity   float64    `json:"opacity,omitempty"`

	// Exactly one payload is set, discriminated by Kind.
	Media *MediaPayload `json:"media,omitempty"`
	Text  *TextPayload  `json:"text,omitempty"`
}

func (it TimelineItem) End() float64 {
	return it.StartTime + it.Duration
}

// Overlaps reports whether two half-open intervals [start, end) intersect.
func (it TimelineItem) Overlaps(other TimelineItem) bool {
	return it.StartTime < other.End() && other.StartTime < it.End()
}

// HasMedia reports whether the item kind carries a media payload.
func (k ItemKind) HasMedia() bool {
	return k == ItemKindVideo || k == ItemKindImage || k == ItemKindAudio
}

// HasAudio reports whether the item kind carries sound (volume/trim/speed apply).
func (k ItemKind) HasAudio() bool {
	return k == ItemKindVideo || k == ItemKindAudio
}

type SnapKind string

const (
	SnapKindGrid      SnapKind = "grid"
	SnapKindItemStart SnapKind = "item-start"
	SnapKindItemEnd   SnapKind = "item-end"
)

// SnapPoint is ephemeral: computed per query, never persisted.
type SnapPoint struct {
	Time   float64  `json:"time"`
	Kind   SnapKind `json:"kind"`
	ItemID string   `json:"itemId,omitempty"`
}

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// ValidationError is the single error shape for whole-state review.
// Findings are reported as values; mutation APIs never throw them.
type ValidationError struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	ItemID   string   `json:"itemId,omitempty"`
	TrackID  string   `json:"trackId,omitempty"`
}

// MediaAsset is the shape produced by the upload collaborator once a file
// has been ingested. The engine only ever maps it into a new TimelineItem.
type MediaAsset struct {
	ID           string   `json:"id"`
	URL          string   `json:"url"`
	ThumbnailURL string   `json:"thumbnailUrl,omitempty"`
	Name         string   `json:"name"`
	Kind         ItemKind `json:"kind"`
	Duration     float64  `json:"duration,omitempty"`
	Width        int      `json:"width,omitempty"`
	Height       int      `json:"height,omitempty"`
	Size         int64    `json:"size"`
}

// ItemFromAsset maps a completed upload into a new item placed at startTime.
// Images and text get a default duration; the caller still runs it through
// the store's AddItem for ID assignment and sanitization.
func ItemFromAsset(a MediaAsset, trackID string, startTime float64) TimelineItem {
	dur := a.Duration
	if dur <= 0 {
		dur = 5 // default hold for stills and untimed assets
	}
	it := TimelineItem{
		TrackID:   trackID,
		Kind:      a.Kind,
		StartTime: startTime,
		Duration:  dur,
		Media:     &MediaPayload{URL: a.URL, ThumbnailURL: a.ThumbnailURL},
	}
	if a.Kind.HasAudio() {
		it.Speed = 1
		it.Volume = MaxLevel
	}
	if a.Kind == ItemKindVideo || a.Kind == ItemKindImage {
		it.Opacity = MaxLevel
	}
	return it
}

// Snapshot is the persistable timeline state. Selection and playhead are
// ephemeral UI state and deliberately excluded from save/restore.
type Snapshot struct {
	Tracks   []Track        `json:"tracks"`
	Items    []TimelineItem `json:"items"`
	Duration float64        `json:"duration"`
	Zoom     float64        `json:"zoom"`
}
