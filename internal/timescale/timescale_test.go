package timescale

import (
	"math"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	times := []float64{0, 0.1, 0.5, 1, 3.47, 59.99, 600}
	zooms := []float64{10, 25, 50, 123.4, 500}
	for _, tm := range times {
		for _, zoom := range zooms {
			got := PixelsToTime(TimeToPixels(tm, zoom), zoom)
			if math.Abs(got-tm) > 1e-9 {
				t.Fatalf("round trip t=%v zoom=%v: got %v", tm, zoom, got)
			}
		}
	}
}

func TestClampZoom(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{5, 10},
		{10, 10},
		{50, 50},
		{500, 500},
		{501, 500},
		{-3, 10},
	}
	for _, c := range cases {
		if got := ClampZoom(c.in); got != c.want {
			t.Fatalf("ClampZoom(%v) = %v; want %v", c.in, got, c.want)
		}
	}
}

func TestMouseToTime(t *testing.T) {
	// pointer at x=30 with 20px scrolled off-screen at 50px/s => 1s
	if got := MouseToTime(30, 20, 50); got != 1 {
		t.Fatalf("MouseToTime = %v; want 1", got)
	}
}
