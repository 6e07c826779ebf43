package compose

import (
	"context"
	"strings"

	"github.com/RonaldoHorta159/tramite-cli/internal/api"
	"github.com/RonaldoHorta159/tramite-cli/internal/model"
)

// AdminTipos composes the document-type administration screen. Same contract
// as AdminAreas over a different resource.
type AdminTipos struct {
	c       *api.Client
	tipos   []model.TipoDocumento
	loading bool

	editing *model.TipoDocumento
	Form    api.TipoPayload
}

func NewAdminTipos(c *api.Client) *AdminTipos {
	return &AdminTipos{c: c}
}

func (a *AdminTipos) Fetch(ctx context.Context) error {
	a.loading = true
	defer func() { a.loading = false }()

	tipos, err := a.c.AdminTipos(ctx)
	if err != nil {
		return err
	}
	a.tipos = tipos
	return nil
}

func (a *AdminTipos) OpenCreateForm() {
	a.editing = nil
	a.Form = api.TipoPayload{Estado: model.EstadoActivo}
}

func (a *AdminTipos) OpenEditForm(tipo model.TipoDocumento) {
	cp := tipo
	a.editing = &cp
	a.Form = api.TipoPayload{Nombre: tipo.Nombre, Estado: tipo.Estado}
}

func (a *AdminTipos) Editing() *model.TipoDocumento { return a.editing }

func (a *AdminTipos) Submit(ctx context.Context) error {
	if strings.TrimSpace(a.Form.Nombre) == "" {
		return &IncompleteError{Detail: "el nombre es obligatorio"}
	}
	var err error
	if a.editing != nil {
		err = a.c.UpdateTipo(ctx, a.editing.ID, a.Form)
	} else {
		err = a.c.CreateTipo(ctx, a.Form)
	}
	if err != nil {
		return err
	}
	a.editing = nil
	return a.Fetch(ctx)
}

func (a *AdminTipos) Deactivate(ctx context.Context, tipoID int) error {
	if err := a.c.DeactivateTipo(ctx, tipoID); err != nil {
		return err
	}
	return a.Fetch(ctx)
}

func (a *AdminTipos) View() TableView {
	rows := make([]Row, 0, len(a.tipos))
	for _, tp := range a.tipos {
		rows = append(rows, TipoRow(tp))
	}
	return TableView{Columns: TipoColumns(), Rows: rows}
}

func (a *AdminTipos) RowActions(model.TipoDocumento) []Action {
	return []Action{
		{ID: ActionEditar, Label: "Editar"},
		{ID: ActionDesactivar, Label: "Desactivar"},
	}
}

func (a *AdminTipos) Tipos() []model.TipoDocumento { return a.tipos }
func (a *AdminTipos) Loading() bool                { return a.loading }
