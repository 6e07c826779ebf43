package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/RonaldoHorta159/tramite-cli/internal/compose"
	"github.com/RonaldoHorta159/tramite-cli/internal/estado"
	"github.com/RonaldoHorta159/tramite-cli/internal/model"
)

func newAdminCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Maintenance commands (Administrador role only)",
	}
	cmd.AddCommand(newAdminAreasCmd(app))
	cmd.AddCommand(newAdminTiposCmd(app))
	cmd.AddCommand(newAdminUsuariosCmd(app))
	return cmd
}

func idArg(args []string) (int, error) {
	return docIDArg(args)
}

func newAdminAreasCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "areas",
		Short: "Area maintenance",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List every area, active or not",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := requireAdmin(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			a := compose.NewAdminAreas(c)
			if err := a.Fetch(cmd.Context()); err != nil {
				return writeErr(cmd, err)
			}
			if app.Format == "table" {
				return writeOut(cmd, app, a.View())
			}
			return writeOut(cmd, app, map[string]any{"data": a.Areas()})
		},
	}

	var createNombre string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create an area",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := requireAdmin(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			a := compose.NewAdminAreas(c)
			a.OpenCreateForm()
			a.Form.Nombre = createNombre
			if err := a.Submit(cmd.Context()); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"created": true}})
		},
	}
	create.Flags().StringVar(&createNombre, "nombre", "", "Area name")
	_ = create.MarkFlagRequired("nombre")

	var updNombre, updEstado string
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Rename or re-activate an area",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := requireAdmin(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id, err := idArg(args)
			if err != nil {
				return writeErr(cmd, err)
			}
			ctx := cmd.Context()

			a := compose.NewAdminAreas(c)
			if err := a.Fetch(ctx); err != nil {
				return writeErr(cmd, err)
			}
			row, ok := findArea(a.Areas(), id)
			if !ok {
				return writeErr(cmd, errNotFound("area", id))
			}
			a.OpenEditForm(row)
			if cmd.Flags().Changed("nombre") {
				a.Form.Nombre = updNombre
			}
			if cmd.Flags().Changed("estado") {
				v, err := estado.Normalize(updEstado)
				if err != nil {
					return writeErr(cmd, err)
				}
				a.Form.Estado = v
			}
			if err := a.Submit(ctx); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"updated": true}})
		},
	}
	update.Flags().StringVar(&updNombre, "nombre", "", "New name")
	update.Flags().StringVar(&updEstado, "estado", "", "New estado (ACTIVO|INACTIVO)")

	deactivate := &cobra.Command{
		Use:   "deactivate <id>",
		Short: "Soft-delete an area (estado becomes INACTIVO)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := requireAdmin(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id, err := idArg(args)
			if err != nil {
				return writeErr(cmd, err)
			}
			a := compose.NewAdminAreas(c)
			if err := a.Deactivate(cmd.Context(), id); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"deactivated": true}})
		},
	}

	cmd.AddCommand(list, create, update, deactivate)
	return cmd
}

func newAdminTiposCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tipos",
		Short: "Document-type maintenance",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List every document type, active or not",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := requireAdmin(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			a := compose.NewAdminTipos(c)
			if err := a.Fetch(cmd.Context()); err != nil {
				return writeErr(cmd, err)
			}
			if app.Format == "table" {
				return writeOut(cmd, app, a.View())
			}
			return writeOut(cmd, app, map[string]any{"data": a.Tipos()})
		},
	}

	var createNombre string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a document type",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := requireAdmin(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			a := compose.NewAdminTipos(c)
			a.OpenCreateForm()
			a.Form.Nombre = createNombre
			if err := a.Submit(cmd.Context()); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"created": true}})
		},
	}
	create.Flags().StringVar(&createNombre, "nombre", "", "Document type name")
	_ = create.MarkFlagRequired("nombre")

	var updNombre, updEstado string
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Rename or re-activate a document type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := requireAdmin(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id, err := idArg(args)
			if err != nil {
				return writeErr(cmd, err)
			}
			ctx := cmd.Context()

			a := compose.NewAdminTipos(c)
			if err := a.Fetch(ctx); err != nil {
				return writeErr(cmd, err)
			}
			row, ok := findTipo(a.Tipos(), id)
			if !ok {
				return writeErr(cmd, errNotFound("tipo de documento", id))
			}
			a.OpenEditForm(row)
			if cmd.Flags().Changed("nombre") {
				a.Form.Nombre = updNombre
			}
			if cmd.Flags().Changed("estado") {
				v, err := estado.Normalize(updEstado)
				if err != nil {
					return writeErr(cmd, err)
				}
				a.Form.Estado = v
			}
			if err := a.Submit(ctx); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"updated": true}})
		},
	}
	update.Flags().StringVar(&updNombre, "nombre", "", "New name")
	update.Flags().StringVar(&updEstado, "estado", "", "New estado (ACTIVO|INACTIVO)")

	deactivate := &cobra.Command{
		Use:   "deactivate <id>",
		Short: "Soft-delete a document type (estado becomes INACTIVO)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := requireAdmin(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id, err := idArg(args)
			if err != nil {
				return writeErr(cmd, err)
			}
			a := compose.NewAdminTipos(c)
			if err := a.Deactivate(cmd.Context(), id); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"deactivated": true}})
		},
	}

	cmd.AddCommand(list, create, update, deactivate)
	return cmd
}

type usuarioFlags struct {
	usuario, password, confirm    string
	nombres, apPaterno, apMaterno string
	dni, email, rol, estado       string
	area                          int
}

func (f *usuarioFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.usuario, "usuario", "", "Username")
	cmd.Flags().StringVar(&f.password, "password", "", "Password")
	cmd.Flags().StringVar(&f.confirm, "password-confirmation", "", "Password confirmation (defaults to --password)")
	cmd.Flags().StringVar(&f.nombres, "nombres", "", "Given names")
	cmd.Flags().StringVar(&f.apPaterno, "apellido-paterno", "", "Paternal surname")
	cmd.Flags().StringVar(&f.apMaterno, "apellido-materno", "", "Maternal surname")
	cmd.Flags().StringVar(&f.dni, "dni", "", "National ID")
	cmd.Flags().StringVar(&f.email, "email", "", "Email")
	cmd.Flags().IntVar(&f.area, "area", 0, "Primary area id")
	cmd.Flags().StringVar(&f.rol, "rol", "", "Role (Administrador|Usuario)")
	cmd.Flags().StringVar(&f.estado, "estado", "", "Estado (ACTIVO|INACTIVO)")
}

// apply copies only the flags the user actually set onto the form, so edits
// stay partial and a blank password keeps the stored one.
func (f *usuarioFlags) apply(cmd *cobra.Command, form *compose.UsuarioForm) error {
	set := func(name string, dst *string, v string) {
		if cmd.Flags().Changed(name) {
			*dst = v
		}
	}
	set("usuario", &form.NombreUsuario, f.usuario)
	set("nombres", &form.Nombres, f.nombres)
	set("apellido-paterno", &form.ApellidoPaterno, f.apPaterno)
	set("apellido-materno", &form.ApellidoMaterno, f.apMaterno)
	set("dni", &form.DNI, f.dni)
	set("email", &form.Email, f.email)
	if cmd.Flags().Changed("rol") {
		v, err := estado.NormalizeRol(f.rol)
		if err != nil {
			return err
		}
		form.Rol = v
	}
	if cmd.Flags().Changed("estado") {
		v, err := estado.Normalize(f.estado)
		if err != nil {
			return err
		}
		form.Estado = v
	}
	if cmd.Flags().Changed("area") {
		form.AreaID = strconv.Itoa(f.area)
	}
	if cmd.Flags().Changed("password") {
		form.Password = f.password
		form.PasswordConfirmation = f.password
	}
	if cmd.Flags().Changed("password-confirmation") {
		form.PasswordConfirmation = f.confirm
	}
	return nil
}

func newAdminUsuariosCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "usuarios",
		Short: "User account maintenance",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List every user account",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := requireAdmin(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			a := compose.NewAdminUsuarios(c)
			if err := a.Fetch(cmd.Context()); err != nil {
				return writeErr(cmd, err)
			}
			if app.Format == "table" {
				return writeOut(cmd, app, a.View())
			}
			return writeOut(cmd, app, map[string]any{"data": a.Usuarios()})
		},
	}

	var cf usuarioFlags
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a user with their employee profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := requireAdmin(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			a := compose.NewAdminUsuarios(c)
			a.OpenCreateForm()
			if err := cf.apply(cmd, &a.Form); err != nil {
				return writeErr(cmd, err)
			}
			if err := a.Submit(cmd.Context()); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"created": true}})
		},
	}
	cf.register(create)
	_ = create.MarkFlagRequired("usuario")
	_ = create.MarkFlagRequired("password")

	var uf usuarioFlags
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit a user; omit --password to keep the current one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := requireAdmin(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id, err := idArg(args)
			if err != nil {
				return writeErr(cmd, err)
			}
			ctx := cmd.Context()

			a := compose.NewAdminUsuarios(c)
			if err := a.Fetch(ctx); err != nil {
				return writeErr(cmd, err)
			}
			row, ok := findUsuario(a.Usuarios(), id)
			if !ok {
				return writeErr(cmd, errNotFound("usuario", id))
			}
			a.OpenEditForm(row)
			if err := uf.apply(cmd, &a.Form); err != nil {
				return writeErr(cmd, err)
			}
			if err := a.Submit(ctx); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"updated": true}})
		},
	}
	uf.register(update)

	deactivate := &cobra.Command{
		Use:   "deactivate <id>",
		Short: "Soft-delete a user (estado becomes INACTIVO)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := requireAdmin(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id, err := idArg(args)
			if err != nil {
				return writeErr(cmd, err)
			}
			a := compose.NewAdminUsuarios(c)
			if err := a.Deactivate(cmd.Context(), id); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"deactivated": true}})
		},
	}

	cmd.AddCommand(list, create, update, deactivate)
	return cmd
}

func findArea(areas []model.Area, id int) (model.Area, bool) {
	for _, a := range areas {
		if a.ID == id {
			return a, true
		}
	}
	return model.Area{}, false
}

func findTipo(tipos []model.TipoDocumento, id int) (model.TipoDocumento, bool) {
	for _, t := range tipos {
		if t.ID == id {
			return t, true
		}
	}
	return model.TipoDocumento{}, false
}

func findUsuario(usuarios []model.Usuario, id int) (model.Usuario, bool) {
	for _, u := range usuarios {
		if u.ID == id {
			return u, true
		}
	}
	return model.Usuario{}, false
}
