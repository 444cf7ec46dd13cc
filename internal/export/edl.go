package export

import (
	"encoding/json"
	"fmt"
	"io"
	"math"

	"cutline/internal/model"
)

// edlFPS is the frame rate used for EDL timecode rendering. The engine has
// no media clock; 30 fps is the conventional default for NTSC-style lists.
const edlFPS = 30

// WriteEDL renders a CMX3600-flavored edit decision list. One event per
// item, in prepared (start time, track order) order. Record timecodes equal
// source timecodes unless a trim range supplies a source offset.
func WriteEDL(w io.Writer, p Prepared, title string) error {
	if title == "" {
		title = "UNTITLED"
	}
	if _, err := fmt.Fprintf(w, "TITLE: %s\nFCM: NON-DROP FRAME\n\n", title); err != nil {
		return err
	}

	reelByTrack := map[string]int{}
	for i, tr := range p.Tracks {
		reelByTrack[tr.ID] = i + 1
	}

	for i, it := range p.Items {
		srcIn, srcOut := 0.0, it.Duration
		if it.Trim != nil {
			srcIn, srcOut = it.Trim.Start, it.Trim.End
		}
		channel := "V"
		if it.Kind == model.ItemKindAudio {
			channel = "A"
		}
		if _, err := fmt.Fprintf(w, "%03d  %06d %s     C        %s %s %s %s\n",
			i+1,
			reelByTrack[it.TrackID],
			channel,
			timecode(srcIn),
			timecode(srcOut),
			timecode(it.StartTime),
			timecode(it.End()),
		); err != nil {
			return err
		}
		if it.Media != nil && it.Media.URL != "" {
			if _, err := fmt.Fprintf(w, "* FROM CLIP NAME: %s\n", it.Media.URL); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteJSON renders the prepared structure as strict JSON.
func WriteJSON(w io.Writer, p Prepared, pretty bool) error {
	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(p, "", "  ")
	} else {
		b, err = json.Marshal(p)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

// timecode formats seconds as HH:MM:SS:FF at the EDL frame rate.
func timecode(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	totalFrames := int(math.Round(seconds * edlFPS))
	frames := totalFrames % edlFPS
	totalSeconds := totalFrames / edlFPS
	return fmt.Sprintf("%02d:%02d:%02d:%02d",
		totalSeconds/3600,
		(totalSeconds/60)%60,
		totalSeconds%60,
		frames,
	)
}
