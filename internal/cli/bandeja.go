package cli

import (
	"github.com/spf13/cobra"

	"github.com/RonaldoHorta159/tramite-cli/internal/compose"
)

func newBandejaCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bandeja",
		Short: "Inbox: documents currently held by your areas",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, sess, err := requireAuth(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			b := compose.NewBandeja(c, sess)
			if err := b.Fetch(cmd.Context()); err != nil {
				return writeErr(cmd, err)
			}
			if app.Format == "table" {
				return writeOut(cmd, app, b.View())
			}
			return writeOut(cmd, app, map[string]any{"data": b.Docs()})
		},
	}
	return cmd
}

func newPendientesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pendientes",
		Short: "Inbox documents not yet formally received",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, sess, err := requireAuth(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			b := compose.NewBandeja(c, sess)
			if err := b.Fetch(cmd.Context()); err != nil {
				return writeErr(cmd, err)
			}
			if app.Format == "table" {
				return writeOut(cmd, app, b.PendientesView())
			}
			return writeOut(cmd, app, map[string]any{"data": b.Pendientes()})
		},
	}
	return cmd
}
