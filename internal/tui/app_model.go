package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"cutline/internal/drag"
	"cutline/internal/snap"
	"cutline/internal/store"
	"cutline/internal/timeline"
)

const (
	gutterWidth = 14
	rulerRows   = 1
)

type appModel struct {
	tl      *timeline.Store
	persist store.Store
	cfg     store.Config

	snapper    *snap.Engine
	controller *drag.Controller

	width  int
	height int

	// scrollPx is the horizontal viewport offset in pixels (terminal cells).
	scrollPx float64

	// Gesture bookkeeping between mouse press and release. pressItemID is
	// set on press; a press that never moves becomes a click-select.
	pressItemID string
	pressMoved  bool

	renaming      bool
	renameTrackID string
	renameInput   textinput.Model

	keys     keyMap
	help     help.Model
	showHelp bool
	helpBody string

	minibuffer string
	quitting   bool
}

func newAppModel(tl *timeline.Store, persist store.Store, cfg store.Config) appModel {
	snapper := snap.NewEngine()
	if cfg.SnapEnabled != nil {
		snapper.Enabled = *cfg.SnapEnabled
	}
	if cfg.GridEnabled != nil {
		snapper.GridEnabled = *cfg.GridEnabled
	}
	if cfg.GridInterval > 0 {
		snapper.GridInterval = cfg.GridInterval
	}
	if cfg.SnapThreshold > 0 {
		snapper.Threshold = cfg.SnapThreshold
	}

	// A fresh project starts at the configured zoom; an existing project
	// keeps its persisted zoom.
	if cfg.DefaultZoom > 0 && !persist.Exists() {
		tl.SetZoom(cfg.DefaultZoom)
	}

	input := textinput.New()
	input.Placeholder = "Track name"
	input.CharLimit = 60
	input.Width = 30

	return appModel{
		tl:          tl,
		persist:     persist,
		cfg:         cfg,
		snapper:     snapper,
		controller:  drag.NewController(snapper),
		renameInput: input,
		keys:        newKeyMap(),
		help:        help.New(),
	}
}

func (m appModel) Init() tea.Cmd {
	return nil
}
