package compose

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/RonaldoHorta159/tramite-cli/internal/api"
	"github.com/RonaldoHorta159/tramite-cli/internal/model"
)

// UsuarioForm is the flat edit/create form. Editing flattens the selected
// row's nested empleado and area fields into these; Submit re-nests them into
// the wire payload.
type UsuarioForm struct {
	Nombres              string
	ApellidoPaterno      string
	ApellidoMaterno      string
	DNI                  string
	Email                string
	AreaID               string
	NombreUsuario        string
	Rol                  string
	Estado               string
	Password             string
	PasswordConfirmation string
}

// AdminUsuarios composes the user administration screen.
type AdminUsuarios struct {
	c        *api.Client
	usuarios []model.Usuario
	areas    []model.Area
	loading  bool

	editing *model.Usuario
	Form    UsuarioForm
}

func NewAdminUsuarios(c *api.Client) *AdminUsuarios {
	return &AdminUsuarios{c: c}
}

// Fetch loads users and the area catalog concurrently and joins both before
// returning (the form's area select needs the catalog).
func (a *AdminUsuarios) Fetch(ctx context.Context) error {
	a.loading = true
	defer func() { a.loading = false }()

	var wg sync.WaitGroup
	var usersErr, areasErr error

	wg.Add(2)
	go func() {
		defer wg.Done()
		var usuarios []model.Usuario
		if usuarios, usersErr = a.c.AdminUsuarios(ctx); usersErr == nil {
			a.usuarios = usuarios
		}
	}()
	go func() {
		defer wg.Done()
		var areas []model.Area
		if areas, areasErr = a.c.CatalogoAreas(ctx); areasErr == nil {
			a.areas = areas
		}
	}()
	wg.Wait()

	if usersErr != nil {
		return usersErr
	}
	return areasErr
}

func (a *AdminUsuarios) OpenCreateForm() {
	a.editing = nil
	a.Form = UsuarioForm{Rol: model.RolUsuario, Estado: model.EstadoActivo}
}

// OpenEditForm pre-fills the flat form from the nested row. Password fields
// start blank; blank means "keep the current password".
func (a *AdminUsuarios) OpenEditForm(u model.Usuario) {
	cp := u
	a.editing = &cp

	areaID := ""
	if u.PrimaryArea != nil {
		areaID = strconv.Itoa(u.PrimaryArea.ID)
	} else if u.PrimaryAreaID != 0 {
		areaID = strconv.Itoa(u.PrimaryAreaID)
	}
	a.Form = UsuarioForm{
		Nombres:         u.Empleado.Nombres,
		ApellidoPaterno: u.Empleado.ApellidoPaterno,
		ApellidoMaterno: u.Empleado.ApellidoMaterno,
		DNI:             u.Empleado.DNI,
		Email:           u.Empleado.Email,
		AreaID:          areaID,
		NombreUsuario:   u.NombreUsuario,
		Rol:             u.Rol,
		Estado:          u.Estado,
	}
}

func (a *AdminUsuarios) Editing() *model.Usuario { return a.editing }

// payload re-nests the form into the wire shape. On edit with a blank
// password, both password fields are omitted entirely so the server keeps the
// stored one.
func (a *AdminUsuarios) payload() api.UsuarioPayload {
	p := api.UsuarioPayload{
		Nombres:         strings.TrimSpace(a.Form.Nombres),
		ApellidoPaterno: strings.TrimSpace(a.Form.ApellidoPaterno),
		ApellidoMaterno: strings.TrimSpace(a.Form.ApellidoMaterno),
		DNI:             strings.TrimSpace(a.Form.DNI),
		Email:           strings.TrimSpace(a.Form.Email),
		AreaID:          strings.TrimSpace(a.Form.AreaID),
		NombreUsuario:   strings.TrimSpace(a.Form.NombreUsuario),
		Rol:             a.Form.Rol,
		Estado:          a.Form.Estado,
	}
	if a.editing == nil || a.Form.Password != "" {
		p.Password = a.Form.Password
		p.PasswordConfirmation = a.Form.PasswordConfirmation
	}
	return p
}

func (a *AdminUsuarios) Submit(ctx context.Context) error {
	switch {
	case strings.TrimSpace(a.Form.NombreUsuario) == "":
		return &IncompleteError{Detail: "el nombre de usuario es obligatorio"}
	case a.editing == nil && a.Form.Password == "":
		return &IncompleteError{Detail: "la contraseña es obligatoria al crear un usuario"}
	case a.Form.Password != a.Form.PasswordConfirmation:
		return &IncompleteError{Detail: "las contraseñas no coinciden"}
	}

	var err error
	if a.editing != nil {
		err = a.c.UpdateUsuario(ctx, a.editing.ID, a.payload())
	} else {
		err = a.c.CreateUsuario(ctx, a.payload())
	}
	if err != nil {
		return err
	}
	a.editing = nil
	return a.Fetch(ctx)
}

func (a *AdminUsuarios) Deactivate(ctx context.Context, userID int) error {
	if err := a.c.DeactivateUsuario(ctx, userID); err != nil {
		return err
	}
	return a.Fetch(ctx)
}

func (a *AdminUsuarios) View() TableView {
	rows := make([]Row, 0, len(a.usuarios))
	for _, u := range a.usuarios {
		rows = append(rows, UsuarioRow(u))
	}
	return TableView{Columns: UsuarioColumns(), Rows: rows}
}

func (a *AdminUsuarios) RowActions(model.Usuario) []Action {
	return []Action{
		{ID: ActionEditar, Label: "Editar"},
		{ID: ActionDesactivar, Label: "Desactivar"},
	}
}

func (a *AdminUsuarios) Usuarios() []model.Usuario { return a.usuarios }
func (a *AdminUsuarios) Areas() []model.Area       { return a.areas }
func (a *AdminUsuarios) Loading() bool             { return a.loading }
