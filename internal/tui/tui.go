package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"cutline/internal/store"
	"cutline/internal/timeline"
)

// Run starts the interactive editor on a loaded timeline. The project is
// saved on quit.
func Run(tl *timeline.Store, persist store.Store, cfg store.Config) error {
	setupColorProfile()
	m := newAppModel(tl, persist, cfg)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
