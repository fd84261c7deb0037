package tui

import (
	"ganttsync/internal/config"
	"ganttsync/internal/model"
	"ganttsync/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

// Run opens the interactive chart for one chart record and blocks until
// the user quits.
func Run(s store.Store, cfg config.Config, c model.Chart) error {
	m := newAppModel(s, cfg, c)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
