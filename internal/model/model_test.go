package model

import "testing"

func TestOverlapsHalfOpen(t *testing.T) {
	a := TimelineItem{StartTime: 0, Duration: 5}
	cases := []struct {
		name  string
		other TimelineItem
		want  bool
	}{
		{"inside", TimelineItem{StartTime: 1, Duration: 2}, true},
		{"straddles end", TimelineItem{StartTime: 4, Duration: 3}, true},
		{"back to back", TimelineItem{StartTime: 5, Duration: 2}, false},
		{"before", TimelineItem{StartTime: -3, Duration: 3}, false},
		{"covers", TimelineItem{StartTime: -1, Duration: 10}, true},
	}
	for _, c := range cases {
		if got := a.Overlaps(c.other); got != c.want {
			t.Fatalf("%s: Overlaps = %v; want %v", c.name, got, c.want)
		}
		if got := c.other.Overlaps(a); got != c.want {
			t.Fatalf("%s: Overlaps is not symmetric", c.name)
		}
	}
}

func TestItemFromAsset(t *testing.T) {
	video := ItemFromAsset(MediaAsset{
		ID: "ast-1", URL: "clip.mp4", Kind: ItemKindVideo, Duration: 12.5,
	}, "trk-a", 3)
	if video.TrackID != "trk-a" || video.StartTime != 3 || video.Duration != 12.5 {
		t.Fatalf("video item = %+v", video)
	}
	if video.Media == nil || video.Media.URL != "clip.mp4" {
		t.Fatalf("media payload = %+v", video.Media)
	}
	if video.Speed != 1 || video.Volume != MaxLevel || video.Opacity != MaxLevel {
		t.Fatalf("video defaults = speed %v volume %v opacity %v", video.Speed, video.Volume, video.Opacity)
	}

	image := ItemFromAsset(MediaAsset{URL: "logo.png", Kind: ItemKindImage}, "trk-a", 0)
	if image.Duration != 5 {
		t.Fatalf("untimed asset duration = %v; want the default hold", image.Duration)
	}
	if image.Volume != 0 || image.Speed != 0 {
		t.Fatalf("image picked up audio defaults: %+v", image)
	}
	if image.Opacity != MaxLevel {
		t.Fatalf("image opacity = %v; want %v", image.Opacity, MaxLevel)
	}
}
