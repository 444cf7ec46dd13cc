package export

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cutline/internal/model"
)

func exportSnapshot() model.Snapshot {
	return model.Snapshot{
		Tracks: []model.Track{
			{ID: "trk-b", Name: "Audio 1", Kind: model.TrackKindAudio, Order: 1, Height: 60},
			{ID: "trk-a", Name: "Video 1", Kind: model.TrackKindVideo, Order: 0, Height: 60},
		},
		Items: []model.TimelineItem{
			{
				ID: "itm-1", TrackID: "trk-b", Kind: model.ItemKindAudio,
				StartTime: 0, Duration: 2.5,
				Trim:  &model.TrimRange{Start: 1.0, End: 3.5},
				Media: &model.MediaPayload{URL: "vo.wav"},
			},
			{
				ID: "itm-3", TrackID: "trk-a", Kind: model.ItemKindImage,
				StartTime: 6, Duration: 2,
				Media: &model.MediaPayload{URL: "logo.png"},
			},
			{
				ID: "itm-2", TrackID: "trk-a", Kind: model.ItemKindVideo,
				StartTime: 0, Duration: 4,
				Media: &model.MediaPayload{URL: "intro.mp4"},
			},
		},
		Duration: 8,
		Zoom:     50,
	}
}

func TestPrepareSortsTracksAndItems(t *testing.T) {
	p := Prepare(exportSnapshot())

	require.Len(t, p.Tracks, 2)
	assert.Equal(t, "trk-a", p.Tracks[0].ID)
	assert.Equal(t, "trk-b", p.Tracks[1].ID)

	// Items by start time; equal starts resolve by vertical track order.
	require.Len(t, p.Items, 3)
	assert.Equal(t, "itm-2", p.Items[0].ID)
	assert.Equal(t, "itm-1", p.Items[1].ID)
	assert.Equal(t, "itm-3", p.Items[2].ID)

	assert.Equal(t, 8.0, p.Duration)
}

func TestWriteEDLGolden(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteEDL(&buf, Prepare(exportSnapshot()), "DEMO"))

	g := goldie.New(t)
	g.Assert(t, "edl", buf.Bytes())
}

func TestWriteEDLDefaultTitle(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteEDL(&buf, Prepared{}, ""))
	assert.Contains(t, buf.String(), "TITLE: UNTITLED\n")
}

func TestWriteJSONRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, Prepare(exportSnapshot()), true))

	var got Prepared
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, 8.0, got.Duration)
	require.Len(t, got.Items, 3)
	assert.Equal(t, "itm-2", got.Items[0].ID)
}

func TestTimecode(t *testing.T) {
	cases := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00:00:00"},
		{2.5, "00:00:02:15"},
		{3.5, "00:00:03:15"},
		{59.9, "00:00:59:27"},
		{3600, "01:00:00:00"},
		{-4, "00:00:00:00"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, timecode(c.seconds), "timecode(%v)", c.seconds)
	}
}
