package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newAuthCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Session commands",
	}
	cmd.AddCommand(newAuthLoginCmd(app))
	cmd.AddCommand(newAuthLogoutCmd(app))
	cmd.AddCommand(newAuthWhoamiCmd(app))
	return cmd
}

func newAuthLoginCmd(app *App) *cobra.Command {
	var usuario string
	var password string
	var remember bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and persist the access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, sess, err := bootstrap(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			ctx := cmd.Context()

			if usuario == "" {
				usuario = sess.RememberedUser(ctx)
			}
			if usuario == "" {
				return writeErr(cmd, fmt.Errorf("falta --usuario"))
			}
			if password == "" {
				password, err = promptPassword(cmd)
				if err != nil {
					return writeErr(cmd, err)
				}
			}

			if err := sess.Login(ctx, c, usuario, password, remember); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": sess.User()})
		},
	}

	cmd.Flags().StringVar(&usuario, "usuario", "", "Username (defaults to the remembered one)")
	cmd.Flags().StringVar(&password, "password", "", "Password (prompted when omitted)")
	cmd.Flags().BoolVar(&remember, "remember", false, "Remember the username for the next login")
	return cmd
}

// promptPassword reads the password without echo when stdin is a terminal,
// and as a plain line otherwise (pipes, tests).
func promptPassword(cmd *cobra.Command) (string, error) {
	fmt.Fprint(cmd.ErrOrStderr(), "Contraseña: ")
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	var line string
	if _, err := fmt.Fscanln(cmd.InOrStdin(), &line); err != nil {
		return "", fmt.Errorf("no se pudo leer la contraseña: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func newAuthLogoutCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Drop the session and the persisted token",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, sess, err := bootstrap(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := sess.Logout(cmd.Context()); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"loggedOut": true}})
		},
	}
	return cmd
}

func newAuthWhoamiCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session user",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, sess, err := requireAuth(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			out := map[string]any{"user": sess.User()}
			if exp, ok := sess.TokenExpiry(); ok {
				out["tokenExpiresAt"] = exp
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}
	return cmd
}
