package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/RonaldoHorta159/tramite-cli/internal/api"
	"github.com/RonaldoHorta159/tramite-cli/internal/session"
)

func Run(c *api.Client, sess *session.Session) error {
	applyColorProfilePreference()
	m := newAppModel(c, sess)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
