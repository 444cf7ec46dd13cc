package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"cutline/internal/docs"
	"cutline/internal/drag"
	"cutline/internal/model"
	"cutline/internal/timescale"
)

func (m appModel) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading…"
	}
	if m.showHelp {
		return m.helpBody + "\n" + styleStatus.Render("press ? or esc to close")
	}

	var b strings.Builder
	b.WriteString(m.viewRuler())
	b.WriteString("\n")

	preview, hasPreview := m.controller.ActivePreview()
	for _, tr := range m.tl.TracksInOrder() {
		b.WriteString(m.viewTrack(tr, preview, hasPreview))
		b.WriteString("\n")
	}

	if m.renaming {
		b.WriteString("Rename track: " + m.renameInput.View())
		b.WriteString("\n")
	}

	b.WriteString(m.viewStatus())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// viewRuler renders the time scale: one label per second where space
// allows, and the playhead marker.
func (m appModel) viewRuler() string {
	cols := m.timelineCols()
	zoom := m.tl.Zoom()

	row := make([]rune, cols)
	for i := range row {
		row[i] = '─'
	}

	// Label seconds, skipping labels that would collide at low zoom.
	labelEvery := 1
	for float64(labelEvery)*zoom < 8 {
		labelEvery *= 2
	}
	maxSec := int(timescale.PixelsToTime(m.scrollPx+float64(cols), zoom)) + 1
	for sec := 0; sec <= maxSec; sec += labelEvery {
		col := int(math.Floor(timescale.TimeToPixels(float64(sec), zoom) - m.scrollPx))
		if col < 0 || col >= cols {
			continue
		}
		label := []rune(fmt.Sprintf("%ds", sec))
		for i, r := range label {
			if col+i < cols {
				row[col+i] = r
			}
		}
	}

	gutter := styleGutter.Render(padRight("timeline", gutterWidth))

	phCol := int(math.Floor(timescale.TimeToPixels(m.tl.Playhead(), zoom) - m.scrollPx))
	if phCol >= 0 && phCol < cols {
		marker := lipgloss.NewStyle().Foreground(colorPlayhead).Render("▼")
		line := styleRuler.Render(string(row[:phCol])) + marker + styleRuler.Render(string(row[phCol+1:]))
		return clampLine(gutter+line, m.width)
	}
	return clampLine(gutter+styleRuler.Render(string(row)), m.width)
}

// viewTrack renders one lane: gutter label plus clip blocks. When a drag or
// resize is in flight, the gesture's item is drawn at its preview position
// instead of its committed one.
func (m appModel) viewTrack(tr model.Track, preview drag.Preview, hasPreview bool) string {
	cols := m.timelineCols()

	type block struct {
		from, to int
		label    string
		style    lipgloss.Style
	}
	var blocks []block

	for _, it := range m.tl.ItemsOnTrack(tr.ID) {
		if hasPreview && it.ID == preview.ItemID {
			continue
		}
		from, to := m.itemColumns(it.StartTime, it.Duration)
		st := lipgloss.NewStyle().Background(clipColor(it.Kind)).Foreground(clipFg)
		if m.tl.IsSelected(it.ID) {
			st = st.Bold(true).Underline(true).Foreground(colorSelected)
		}
		blocks = append(blocks, block{from: from, to: to, label: clipLabel(it), style: st})
	}
	if hasPreview && preview.TrackID == tr.ID {
		from, to := m.itemColumns(preview.StartTime, preview.Duration)
		st := lipgloss.NewStyle().Background(colorPreviewBg).Foreground(clipFg)
		if preview.Snapped {
			st = st.Background(colorSnapFlash)
		}
		label := fmtSeconds(preview.StartTime)
		blocks = append(blocks, block{from: from, to: to, label: label, style: st})
	}

	lane := lipgloss.NewStyle().Foreground(colorLaneFg).Background(colorLaneBg)
	var row strings.Builder
	cursor := 0
	for _, blk := range blocks {
		from, to := blk.from, blk.to
		if to <= 0 || from >= cols {
			continue
		}
		if from < 0 {
			from = 0
		}
		if to > cols {
			to = cols
		}
		if from > cursor {
			row.WriteString(lane.Render(strings.Repeat("·", from-cursor)))
		}
		if from < cursor {
			from = cursor
		}
		if to > from {
			row.WriteString(blk.style.Render(fitLabel(blk.label, to-from)))
			cursor = to
		}
	}
	if cursor < cols {
		row.WriteString(lane.Render(strings.Repeat("·", cols-cursor)))
	}

	name := tr.Name
	if tr.Locked {
		name = "⊘ " + name
	}
	gutter := styleGutter.Render(padRight(name, gutterWidth))
	return clampLine(gutter+row.String(), m.width)
}

func (m appModel) viewStatus() string {
	snapState := "snap " + onOff(m.snapper.Enabled)
	if m.snapper.Enabled && m.snapper.GridEnabled {
		snapState += fmt.Sprintf(" (grid %.2gs)", m.snapper.GridInterval)
	}
	parts := []string{
		fmt.Sprintf("▶ %s / %s", fmtSeconds(m.tl.Playhead()), fmtSeconds(m.tl.TotalDuration())),
		fmt.Sprintf("zoom %.0fpx/s", m.tl.Zoom()),
		snapState,
	}
	if id, ok := m.selectedItemID(); ok {
		parts = append(parts, "sel "+id)
	}
	if m.minibuffer != "" {
		parts = append(parts, m.minibuffer)
	}
	return clampLine(styleStatus.Render(strings.Join(parts, "  │  ")), m.width)
}

func (m *appModel) ensureHelpBody() {
	if m.helpBody != "" {
		return
	}
	body, ok := docs.Get("editing")
	if !ok {
		m.helpBody = "No help available."
		return
	}
	width := m.width
	if width > 80 {
		width = 80
	}
	if width < 20 {
		width = 20
	}
	// Avoid WithAutoStyle: it can block querying terminal capabilities.
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(m.cfg.GlamourStyle()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		m.helpBody = body
		return
	}
	out, err := r.Render(body)
	if err != nil {
		m.helpBody = body
		return
	}
	m.helpBody = out
}

func clipLabel(it model.TimelineItem) string {
	switch {
	case it.Kind == model.ItemKindText && it.Text != nil:
		return "T " + it.Text.Content
	case it.Media != nil && it.Media.URL != "":
		return strings.ToUpper(string(it.Kind[:1])) + " " + it.Media.URL
	default:
		return string(it.Kind)
	}
}

// fitLabel pads or truncates a plain label to exactly n cells.
func fitLabel(s string, n int) string {
	runes := []rune(s)
	if len(runes) > n {
		runes = runes[:n]
	}
	return string(runes) + strings.Repeat(" ", n-len(runes))
}

func padRight(s string, n int) string {
	runes := []rune(s)
	if len(runes) >= n {
		return string(runes[:n-1]) + " "
	}
	return s + strings.Repeat(" ", n-len(runes))
}
