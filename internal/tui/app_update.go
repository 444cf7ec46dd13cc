package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"cutline/internal/drag"
	"cutline/internal/timeline"
	"cutline/internal/timescale"
)

const (
	scrubStep  = 0.1 // seconds per h/l press
	scrollStep = 10  // pixels per H/L press
	zoomFactor = 1.25
)

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.renaming {
			return m.updateRename(msg)
		}
		if m.showHelp {
			if key.Matches(msg, m.keys.Help) || key.Matches(msg, m.keys.Cancel) || key.Matches(msg, m.keys.Quit) {
				m.showHelp = false
			}
			return m, nil
		}
		return m.updateKeys(msg)

	case tea.MouseMsg:
		return m.updateMouse(msg)
	}
	return m, nil
}

func (m appModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		// Best-effort save; the project can also be saved from the CLI.
		_ = m.persist.Save(context.Background(), m.tl.Snapshot())
		return m, tea.Quit

	case key.Matches(msg, m.keys.Cancel):
		if m.controller.State() != drag.Idle {
			m.controller.Cancel()
			m.showMinibuffer("Canceled")
			return m, nil
		}
		m.tl.ClearSelection()
		m.minibuffer = ""
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		m.ensureHelpBody()
		return m, nil

	case key.Matches(msg, m.keys.ScrubLeft):
		m.tl.SetPlayhead(m.tl.Playhead() - scrubStep)
		m.followPlayhead()
		return m, nil

	case key.Matches(msg, m.keys.ScrubRight):
		m.tl.SetPlayhead(m.tl.Playhead() + scrubStep)
		m.followPlayhead()
		return m, nil

	case key.Matches(msg, m.keys.ScrollLeft):
		m.scrollPx -= scrollStep
		if m.scrollPx < 0 {
			m.scrollPx = 0
		}
		return m, nil

	case key.Matches(msg, m.keys.ScrollRight):
		m.scrollPx += scrollStep
		return m, nil

	case key.Matches(msg, m.keys.ZoomIn):
		m.tl.SetZoom(m.tl.Zoom() * zoomFactor)
		return m, nil

	case key.Matches(msg, m.keys.ZoomOut):
		m.tl.SetZoom(m.tl.Zoom() / zoomFactor)
		return m, nil

	case key.Matches(msg, m.keys.CycleSel):
		m.cycleSelection()
		return m, nil

	case key.Matches(msg, m.keys.Duplicate):
		if id, ok := m.selectedItemID(); ok {
			if clone, ok := m.tl.DuplicateItem(id); ok {
				m.tl.Select(clone.ID)
				m.showMinibuffer("Duplicated to " + clone.ID)
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Split):
		if id, ok := m.selectedItemID(); ok {
			if right, split := m.tl.SplitItem(id, m.tl.Playhead()); split {
				m.showMinibuffer("Split; new item " + right.ID)
			} else {
				m.showMinibuffer("Split rejected: playhead outside the item")
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if id, ok := m.selectedItemID(); ok {
			m.tl.RemoveItem(id)
			m.showMinibuffer("Deleted " + id)
		}
		return m, nil

	case key.Matches(msg, m.keys.ToggleSnap):
		m.snapper.Enabled = !m.snapper.Enabled
		m.showMinibuffer("Snap " + onOff(m.snapper.Enabled))
		return m, nil

	case key.Matches(msg, m.keys.ToggleGrid):
		m.snapper.GridEnabled = !m.snapper.GridEnabled
		m.showMinibuffer("Grid snap " + onOff(m.snapper.GridEnabled))
		return m, nil

	case key.Matches(msg, m.keys.AddTrack):
		tr := m.tl.AddTrack("video", "")
		m.showMinibuffer("Added track " + tr.Name)
		return m, nil

	case key.Matches(msg, m.keys.RemoveTrack):
		if id, ok := m.selectedItemID(); ok {
			if it, found := m.tl.Item(id); found {
				if m.tl.RemoveTrack(it.TrackID) {
					m.showMinibuffer("Removed track")
				} else {
					m.showMinibuffer("The last track always stays")
				}
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Rename):
		m.startRename()
		return m, nil
	}
	return m, nil
}

func (m appModel) updateRename(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.renaming = false
		return m, nil
	case "enter":
		name := strings.TrimSpace(m.renameInput.Value())
		if name != "" {
			m.tl.UpdateTrack(m.renameTrackID, trackRename(name))
			m.showMinibuffer("Renamed track")
		}
		m.renaming = false
		return m, nil
	}
	var cmd tea.Cmd
	m.renameInput, cmd = m.renameInput.Update(msg)
	return m, cmd
}

func (m appModel) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		px, inLanes := m.colToPixel(msg.X)
		track, onTrack := m.rowToTrack(msg.Y)
		if !inLanes || !onTrack {
			return m, nil
		}
		if it, e, found := m.itemAtPixel(track.ID, px); found {
			m.pressItemID = it.ID
			m.pressMoved = false
			switch e {
			case edgeStart:
				m.controller.StartResize(it, drag.HandleStart, px)
			case edgeEnd:
				m.controller.StartResize(it, drag.HandleEnd, px)
			default:
				m.controller.StartDrag(it, px)
			}
			return m, nil
		}
		// Empty lane: scrub the playhead to the clicked time.
		m.tl.ClearSelection()
		m.tl.SetPlayhead(timescale.PixelsToTime(px, m.tl.Zoom()))
		return m, nil

	case tea.MouseActionMotion:
		if m.controller.State() == drag.Idle {
			return m, nil
		}
		px, inLanes := m.colToPixel(msg.X)
		if !inLanes {
			return m, nil
		}
		m.pressMoved = true
		targetTrackID := ""
		if track, onTrack := m.rowToTrack(msg.Y); onTrack {
			targetTrackID = track.ID
		}
		m.controller.Update(px, targetTrackID, m.tl.Zoom(), m.tl.Items())
		return m, nil

	case tea.MouseActionRelease:
		if m.controller.State() == drag.Idle {
			return m, nil
		}
		if !m.pressMoved {
			// A press without motion is a click-select, not an edit.
			m.controller.Cancel()
			m.tl.Select(m.pressItemID)
			return m, nil
		}
		if m.controller.Commit(m.tl) {
			m.tl.Select(m.pressItemID)
		} else {
			m.showMinibuffer("Edit rejected (overlap or invalid placement)")
		}
		return m, nil
	}
	return m, nil
}

func (m *appModel) cycleSelection() {
	items := m.tl.Items()
	if len(items) == 0 {
		return
	}
	current, _ := m.selectedItemID()
	next := items[0].ID
	for i, it := range items {
		if it.ID == current && i+1 < len(items) {
			next = items[i+1].ID
			break
		}
	}
	m.tl.Select(next)
}

func (m appModel) selectedItemID() (string, bool) {
	sel := m.tl.Selection()
	if len(sel) == 0 {
		return "", false
	}
	return sel[0], true
}

// followPlayhead keeps the playhead visible by nudging the horizontal
// scroll when it leaves the viewport.
func (m *appModel) followPlayhead() {
	col := timescale.TimeToPixels(m.tl.Playhead(), m.tl.Zoom()) - m.scrollPx
	cols := float64(m.timelineCols())
	if cols <= 0 {
		return
	}
	if col < 0 {
		m.scrollPx += col
		if m.scrollPx < 0 {
			m.scrollPx = 0
		}
	} else if col >= cols {
		m.scrollPx += col - cols + 1
	}
}

func (m *appModel) startRename() {
	id, ok := m.selectedItemID()
	var trackID string
	if ok {
		if it, found := m.tl.Item(id); found {
			trackID = it.TrackID
		}
	}
	if trackID == "" {
		tracks := m.tl.TracksInOrder()
		if len(tracks) == 0 {
			return
		}
		trackID = tracks[0].ID
	}
	tr, _ := m.tl.Track(trackID)
	m.renaming = true
	m.renameTrackID = trackID
	m.renameInput.SetValue(tr.Name)
	m.renameInput.CursorEnd()
	m.renameInput.Focus()
}

func (m *appModel) showMinibuffer(text string) {
	m.minibuffer = text
}

func trackRename(name string) timeline.TrackChanges {
	return timeline.TrackChanges{Name: &name}
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
