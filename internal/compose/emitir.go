package compose

import (
	"context"
	"strings"
	"sync"

	"github.com/RonaldoHorta159/tramite-cli/internal/api"
	"github.com/RonaldoHorta159/tramite-cli/internal/model"
	"github.com/RonaldoHorta159/tramite-cli/internal/perm"
	"github.com/RonaldoHorta159/tramite-cli/internal/session"
)

// PageSize matches the browser client's fixed page size.
const PageSize = 15

// NuevoDocumento is the create/emit form model. NroDocumento is filled from
// the correlativo sequencer, never typed by hand.
type NuevoDocumento struct {
	TipoDocumentoID int
	NroDocumento    string
	Asunto          string
	NroFolios       int
	AreaDestinoID   int
	Archivo         *api.Upload
}

// Emitir composes the outbox screen: the paginated list of documents emitted
// by (or visible to) the selected area, plus the create and derivar flows.
type Emitir struct {
	c    *api.Client
	sess *session.Session

	page     int // zero-indexed; the wire is 1-based
	lastPage int
	docs     []model.Documento

	selectedAreaID int
	areas          []model.Area
	tipos          []model.TipoDocumento

	loading bool

	Form        NuevoDocumento
	Correlativo CorrelativoSequencer
}

func NewEmitir(c *api.Client, sess *session.Session) *Emitir {
	return &Emitir{c: c, sess: sess}
}

func (e *Emitir) isAdmin() bool { return e.sess.User().IsAdmin() }

// Init performs the composite initial fetch: documents and both catalogs,
// concurrently, joined before returning. The selected area defaults to the
// session user's primary area.
func (e *Emitir) Init(ctx context.Context) error {
	if e.selectedAreaID == 0 {
		if u := e.sess.User(); u != nil {
			e.selectedAreaID = u.PrimaryAreaID
		}
	}

	var wg sync.WaitGroup
	var docsErr, tiposErr, areasErr error

	wg.Add(3)
	go func() {
		defer wg.Done()
		docsErr = e.FetchDocumentos(ctx)
	}()
	go func() {
		defer wg.Done()
		var tipos []model.TipoDocumento
		if tipos, tiposErr = e.c.CatalogoTipos(ctx); tiposErr == nil {
			e.tipos = tipos
		}
	}()
	go func() {
		defer wg.Done()
		var areas []model.Area
		if areas, areasErr = e.c.CatalogoAreas(ctx); areasErr == nil {
			e.areas = areas
		}
	}()
	wg.Wait()

	for _, err := range []error{docsErr, tiposErr, areasErr} {
		if err != nil {
			return err
		}
	}
	return nil
}

// FetchDocumentos re-fetches the current page. Admins see every document; a
// regular user sees only the selected area's. Without a selected area the
// list is simply empty, not an error.
func (e *Emitir) FetchDocumentos(ctx context.Context) error {
	if e.selectedAreaID == 0 && !e.isAdmin() {
		e.docs = nil
		e.lastPage = 0
		return nil
	}

	e.loading = true
	defer func() { e.loading = false }()

	var (
		p   *api.Page[model.Documento]
		err error
	)
	if e.isAdmin() {
		p, err = e.c.Documentos(ctx, e.page)
	} else {
		p, err = e.c.DocumentosPorArea(ctx, e.selectedAreaID, e.page)
	}
	if err != nil {
		return err
	}
	e.docs = p.Data
	e.lastPage = p.LastPage
	return nil
}

// SetArea switches the acting area, resetting to the first page.
func (e *Emitir) SetArea(ctx context.Context, areaID int) error {
	if areaID == e.selectedAreaID {
		return nil
	}
	e.selectedAreaID = areaID
	e.page = 0
	return e.FetchDocumentos(ctx)
}

// SetPage jumps to a zero-indexed page, clamped to the server's last page.
func (e *Emitir) SetPage(ctx context.Context, page int) error {
	if page < 0 {
		page = 0
	}
	if e.lastPage > 0 && page > e.lastPage-1 {
		page = e.lastPage - 1
	}
	if page == e.page {
		return nil
	}
	e.page = page
	return e.FetchDocumentos(ctx)
}

func (e *Emitir) NextPage(ctx context.Context) error { return e.SetPage(ctx, e.page+1) }
func (e *Emitir) PrevPage(ctx context.Context) error { return e.SetPage(ctx, e.page-1) }

// OficinasPermitidas lists the areas the user may emit from: admins pick any
// catalog area, everyone else only their assigned ones.
func (e *Emitir) OficinasPermitidas() []model.Area {
	if e.isAdmin() {
		return e.areas
	}
	if u := e.sess.User(); u != nil {
		return u.Areas
	}
	return nil
}

// OpenCreateForm resets the form and requests the correlativo for the acting
// area. An unselected area is a hard stop: the number is scoped per area.
func (e *Emitir) OpenCreateForm(ctx context.Context) error {
	if e.selectedAreaID == 0 {
		return &IncompleteError{Detail: "debe seleccionar una oficina antes de emitir un trámite"}
	}
	e.Form = NuevoDocumento{NroFolios: 1}
	e.RefreshCorrelativo(ctx)
	return nil
}

// RefreshCorrelativo re-requests the next number for the current (area, tipo)
// key. Called again whenever either key input changes while the form is open;
// the sequencer discards stale completions.
func (e *Emitir) RefreshCorrelativo(ctx context.Context) {
	key := CorrelativoKey{AreaID: e.selectedAreaID, TipoDocumentoID: e.Form.TipoDocumentoID}
	e.Form.NroDocumento = e.Correlativo.Fetch(ctx, e.c.SiguienteCorrelativo, key)
}

// SetFormTipo records the chosen document type and re-keys the correlativo.
func (e *Emitir) SetFormTipo(ctx context.Context, tipoID int) {
	if tipoID == e.Form.TipoDocumentoID {
		return
	}
	e.Form.TipoDocumentoID = tipoID
	e.RefreshCorrelativo(ctx)
}

// Create submits the form. Validation failures surface before any request;
// on success the current page is re-fetched (no local splice).
func (e *Emitir) Create(ctx context.Context) error {
	switch {
	case e.selectedAreaID == 0:
		return &IncompleteError{Detail: "debe seleccionar una oficina"}
	case e.Form.TipoDocumentoID == 0:
		return &IncompleteError{Detail: "debe seleccionar un tipo de documento"}
	case strings.TrimSpace(e.Form.Asunto) == "":
		return &IncompleteError{Detail: "el asunto es obligatorio"}
	case e.Form.NroFolios < 1:
		return &IncompleteError{Detail: "el número de folios debe ser al menos 1"}
	case e.Form.AreaDestinoID == 0:
		return &IncompleteError{Detail: "debe seleccionar un área de destino"}
	case !e.Correlativo.Usable():
		return &IncompleteError{Detail: "no se pudo obtener el número de documento"}
	}

	in := api.CrearDocumentoInput{
		AreaOrigenID:    e.selectedAreaID,
		TipoDocumentoID: e.Form.TipoDocumentoID,
		NroDocumento:    e.Correlativo.Value(),
		Asunto:          strings.TrimSpace(e.Form.Asunto),
		NroFolios:       e.Form.NroFolios,
		AreaDestinoID:   e.Form.AreaDestinoID,
		Archivo:         e.Form.Archivo,
	}
	if err := e.c.CrearDocumento(ctx, in); err != nil {
		return err
	}
	e.Form = NuevoDocumento{NroFolios: 1}
	return e.FetchDocumentos(ctx)
}

// Derivar routes a document. Destination and a non-empty proveído are
// required locally; nothing is sent otherwise.
func (e *Emitir) Derivar(ctx context.Context, docID, areaDestinoID int, proveido string) error {
	if areaDestinoID == 0 || strings.TrimSpace(proveido) == "" {
		return &IncompleteError{Detail: "debe seleccionar un destino y escribir un proveído"}
	}
	in := api.DerivarInput{AreaDestinoID: areaDestinoID, Proveido: strings.TrimSpace(proveido)}
	if err := e.c.Derivar(ctx, docID, in); err != nil {
		return err
	}
	return e.FetchDocumentos(ctx)
}

// Seguimiento fetches a document's full movement history.
func (e *Emitir) Seguimiento(ctx context.Context, docID int) (*model.Documento, error) {
	return e.c.Documento(ctx, docID)
}

// View builds the tabular snapshot for the current rows.
func (e *Emitir) View() TableView {
	rows := make([]Row, 0, len(e.docs))
	for _, d := range e.docs {
		rows = append(rows, EmitidoRow(d))
	}
	return TableView{Columns: EmitidosColumns(), Rows: rows}
}

// RowActions returns the action set for a row; absent actions are
// unavailable, not errors.
func (e *Emitir) RowActions(d model.Documento) []Action {
	u := e.sess.User()
	out := []Action{{ID: ActionSeguimiento, Label: "Dar Seguimiento"}}
	if perm.CanDerivar(u, &d) {
		out = append(out, Action{ID: ActionDerivar, Label: "Derivar"})
	}
	return out
}

func (e *Emitir) Docs() []model.Documento      { return e.docs }
func (e *Emitir) Areas() []model.Area          { return e.areas }
func (e *Emitir) Tipos() []model.TipoDocumento { return e.tipos }
func (e *Emitir) Page() int                    { return e.page }
func (e *Emitir) LastPage() int                { return e.lastPage }
func (e *Emitir) SelectedAreaID() int          { return e.selectedAreaID }
func (e *Emitir) Loading() bool                { return e.loading }
