package compose

import (
	"context"
	"strings"

	"github.com/RonaldoHorta159/tramite-cli/internal/api"
	"github.com/RonaldoHorta159/tramite-cli/internal/model"
)

// AdminAreas composes the area administration screen.
type AdminAreas struct {
	c       *api.Client
	areas   []model.Area
	loading bool

	editing *model.Area
	Form    api.AreaPayload
}

func NewAdminAreas(c *api.Client) *AdminAreas {
	return &AdminAreas{c: c}
}

func (a *AdminAreas) Fetch(ctx context.Context) error {
	a.loading = true
	defer func() { a.loading = false }()

	areas, err := a.c.AdminAreas(ctx)
	if err != nil {
		return err
	}
	a.areas = areas
	return nil
}

func (a *AdminAreas) OpenCreateForm() {
	a.editing = nil
	a.Form = api.AreaPayload{Estado: model.EstadoActivo}
}

func (a *AdminAreas) OpenEditForm(area model.Area) {
	cp := area
	a.editing = &cp
	a.Form = api.AreaPayload{Nombre: area.Nombre, Estado: area.Estado}
}

func (a *AdminAreas) Editing() *model.Area { return a.editing }

// Submit creates or updates depending on how the form was opened, then
// re-fetches. The name is required locally.
func (a *AdminAreas) Submit(ctx context.Context) error {
	if strings.TrimSpace(a.Form.Nombre) == "" {
		return &IncompleteError{Detail: "el nombre es obligatorio"}
	}
	var err error
	if a.editing != nil {
		err = a.c.UpdateArea(ctx, a.editing.ID, a.Form)
	} else {
		err = a.c.CreateArea(ctx, a.Form)
	}
	if err != nil {
		return err
	}
	a.editing = nil
	return a.Fetch(ctx)
}

// Deactivate soft-deletes: the server flips estado to INACTIVO; the row stays
// in the listing.
func (a *AdminAreas) Deactivate(ctx context.Context, areaID int) error {
	if err := a.c.DeactivateArea(ctx, areaID); err != nil {
		return err
	}
	return a.Fetch(ctx)
}

func (a *AdminAreas) View() TableView {
	rows := make([]Row, 0, len(a.areas))
	for _, ar := range a.areas {
		rows = append(rows, AreaRow(ar))
	}
	return TableView{Columns: AreaColumns(), Rows: rows}
}

func (a *AdminAreas) RowActions(model.Area) []Action {
	return []Action{
		{ID: ActionEditar, Label: "Editar"},
		{ID: ActionDesactivar, Label: "Desactivar"},
	}
}

func (a *AdminAreas) Areas() []model.Area { return a.areas }
func (a *AdminAreas) Loading() bool       { return a.loading }
