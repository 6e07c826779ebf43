package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/RonaldoHorta159/tramite-cli/internal/api"
	"github.com/RonaldoHorta159/tramite-cli/internal/config"
	"github.com/RonaldoHorta159/tramite-cli/internal/format"
	"github.com/RonaldoHorta159/tramite-cli/internal/session"
	"github.com/RonaldoHorta159/tramite-cli/internal/store"
	"github.com/RonaldoHorta159/tramite-cli/internal/tui"
)

type App struct {
	APIURL     string
	ConfigDir  string
	PrettyJSON bool
	Format     string

	// Lazily resolved by bootstrap; shared across the command tree.
	client *api.Client
	sess   *session.Session
}

func NewRootCmd() *cobra.Command {
	cfg := config.Load()
	app := &App{ConfigDir: cfg.ConfigDir}

	cmd := &cobra.Command{
		Use:          "tramite",
		Short:        "Mesa de partes digital (CLI + TUI)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  tramite

  # Scriptable commands
  tramite auth login --usuario rhorta
  tramite bandeja --format table
  tramite documentos seguimiento 42

  # Route a document onward
  tramite documentos derivar 42 --destino 7 --proveido "Atender con prioridad"
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.APIURL, "api-url", cfg.BaseURL, "Base URL of the mesa de partes API")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("TRAMITE_FORMAT", "json"), "Output format (json|table)")

	cmd.AddCommand(newAuthCmd(app))
	cmd.AddCommand(newDocumentosCmd(app))
	cmd.AddCommand(newBandejaCmd(app))
	cmd.AddCommand(newPendientesCmd(app))
	cmd.AddCommand(newCatalogosCmd(app))
	cmd.AddCommand(newAdminCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

func runTUI(app *App) error {
	c, sess, err := bootstrap(app)
	if err != nil {
		return err
	}
	return tui.Run(c, sess)
}

// bootstrap wires the API client and session, rehydrating any persisted token
// and resolving the current user. A dead token just leaves the session logged
// out; commands that need auth fail with a clear message instead.
func bootstrap(app *App) (*api.Client, *session.Session, error) {
	if app.client != nil {
		return app.client, app.sess, nil
	}

	sess := session.New(app.APIURL, store.Store{Dir: app.ConfigDir})
	c := api.New(app.APIURL, sess.TokenSource())

	ctx := commandContext()
	if err := sess.Rehydrate(ctx); err != nil {
		return nil, nil, err
	}
	if sess.Token() != "" {
		// Errors here mean the token went stale; the session clears itself.
		_ = sess.FetchUser(ctx, c)
	}

	app.client = c
	app.sess = sess
	return c, sess, nil
}

// requireAuth is bootstrap plus an authenticated-session check, for every
// command except auth login / docs.
func requireAuth(app *App) (*api.Client, *session.Session, error) {
	c, sess, err := bootstrap(app)
	if err != nil {
		return nil, nil, err
	}
	if !sess.IsAuthenticated() {
		return nil, nil, errNotLoggedIn
	}
	return c, sess, nil
}

func requireAdmin(app *App) (*api.Client, *session.Session, error) {
	c, sess, err := requireAuth(app)
	if err != nil {
		return nil, nil, err
	}
	if !sess.User().IsAdmin() {
		return nil, nil, errAdminOnly
	}
	return c, sess, nil
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), friendly(err).Error())
	return err
}
