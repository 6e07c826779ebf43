package cli

import (
	"github.com/spf13/cobra"
)

func newCatalogosCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalogos",
		Short: "Reference catalogs (active rows only)",
	}

	areas := &cobra.Command{
		Use:   "areas",
		Short: "List active areas",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := requireAuth(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			out, err := c.CatalogoAreas(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}

	tipos := &cobra.Command{
		Use:   "tipos",
		Short: "List active document types",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := requireAuth(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			out, err := c.CatalogoTipos(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}

	cmd.AddCommand(areas)
	cmd.AddCommand(tipos)
	return cmd
}
