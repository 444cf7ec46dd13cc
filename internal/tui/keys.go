package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	ScrubLeft   key.Binding
	ScrubRight  key.Binding
	ScrollLeft  key.Binding
	ScrollRight key.Binding
	ZoomIn      key.Binding
	ZoomOut     key.Binding
	CycleSel    key.Binding
	Duplicate   key.Binding
	Split       key.Binding
	Delete      key.Binding
	ToggleSnap  key.Binding
	ToggleGrid  key.Binding
	AddTrack    key.Binding
	RemoveTrack key.Binding
	Rename      key.Binding
	Cancel      key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		ScrubLeft:   key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h", "playhead left")),
		ScrubRight:  key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l", "playhead right")),
		ScrollLeft:  key.NewBinding(key.WithKeys("H"), key.WithHelp("H", "scroll left")),
		ScrollRight: key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "scroll right")),
		ZoomIn:      key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "zoom in")),
		ZoomOut:     key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "zoom out")),
		CycleSel:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next item")),
		Duplicate:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "duplicate")),
		Split:       key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "split at playhead")),
		Delete:      key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "delete item")),
		ToggleSnap:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "toggle snap")),
		ToggleGrid:  key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "toggle grid")),
		AddTrack:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "add track")),
		RemoveTrack: key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "remove track")),
		Rename:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rename track")),
		Cancel:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.ScrubLeft, k.ScrubRight, k.ZoomIn, k.ZoomOut, k.CycleSel, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.ScrubLeft, k.ScrubRight, k.ScrollLeft, k.ScrollRight, k.ZoomIn, k.ZoomOut},
		{k.CycleSel, k.Duplicate, k.Split, k.Delete, k.Rename},
		{k.ToggleSnap, k.ToggleGrid, k.AddTrack, k.RemoveTrack},
		{k.Cancel, k.Help, k.Quit},
	}
}
