package compose

import (
	"context"
	"strings"

	"github.com/RonaldoHorta159/tramite-cli/internal/api"
	"github.com/RonaldoHorta159/tramite-cli/internal/model"
	"github.com/RonaldoHorta159/tramite-cli/internal/perm"
	"github.com/RonaldoHorta159/tramite-cli/internal/session"
)

// Respuesta is the respond-form model: a full new document tied to the one
// being answered.
type Respuesta struct {
	TipoDocumentoID int
	Asunto          string
	NroFolios       int
	AreaDestinoID   int
	Archivo         *api.Upload
}

// Bandeja composes the inbox: documents currently held by the session user's
// areas, the not-yet-received pending list, and the receive / derive /
// respond / finalize flows.
type Bandeja struct {
	c    *api.Client
	sess *session.Session

	docs       []model.Documento
	pendientes []model.Documento
	areas      []model.Area
	loading    bool

	respondingTo *model.Documento
	Form         Respuesta
	Correlativo  CorrelativoSequencer
}

func NewBandeja(c *api.Client, sess *session.Session) *Bandeja {
	return &Bandeja{c: c, sess: sess}
}

// Fetch loads the whole inbox in one composite request: main list, pending
// list, and the area catalog.
func (b *Bandeja) Fetch(ctx context.Context) error {
	b.loading = true
	defer func() { b.loading = false }()

	data, err := b.c.BandejaEntrada(ctx)
	if err != nil {
		return err
	}
	b.docs = data.TodosLosDocumentos
	b.pendientes = data.DocumentosPendientes
	b.areas = data.Areas
	return nil
}

// Recepcionar formally receives a pending document, then refreshes both
// lists.
func (b *Bandeja) Recepcionar(ctx context.Context, docID int) (string, error) {
	msg, err := b.c.Recepcionar(ctx, docID)
	if err != nil {
		return "", err
	}
	return msg, b.Fetch(ctx)
}

// Derivar routes a held document onward. Destination and a non-empty proveído
// are required locally before any request.
func (b *Bandeja) Derivar(ctx context.Context, docID, areaDestinoID int, proveido string) error {
	if areaDestinoID == 0 || strings.TrimSpace(proveido) == "" {
		return &IncompleteError{Detail: "debe seleccionar un destino y escribir un proveído"}
	}
	in := api.DerivarInput{AreaDestinoID: areaDestinoID, Proveido: strings.TrimSpace(proveido)}
	if err := b.c.Derivar(ctx, docID, in); err != nil {
		return err
	}
	return b.Fetch(ctx)
}

// OpenRespuestaForm starts answering doc. The correlativo is requested only
// once a document type is chosen (the lookup is keyed by area AND type).
func (b *Bandeja) OpenRespuestaForm(doc model.Documento) error {
	if !perm.CanResponder(b.sess.User(), &doc) {
		return &IncompleteError{Detail: "el documento no puede ser respondido desde esta bandeja"}
	}
	d := doc
	b.respondingTo = &d
	b.Form = Respuesta{NroFolios: 1}
	return nil
}

func (b *Bandeja) RespondingTo() *model.Documento { return b.respondingTo }

// SetRespuestaTipo records the response's document type and (re-)keys the
// correlativo lookup against the holding area.
func (b *Bandeja) SetRespuestaTipo(ctx context.Context, tipoID int) {
	if b.respondingTo == nil || b.respondingTo.AreaActual == nil {
		return
	}
	b.Form.TipoDocumentoID = tipoID
	if tipoID == 0 {
		return
	}
	key := CorrelativoKey{AreaID: b.respondingTo.AreaActual.ID, TipoDocumentoID: tipoID}
	b.Correlativo.Fetch(ctx, b.c.SiguienteCorrelativo, key)
}

// Responder submits the response (multipart). On success both lists refresh
// and the form closes.
func (b *Bandeja) Responder(ctx context.Context) error {
	switch {
	case b.respondingTo == nil:
		return &IncompleteError{Detail: "no hay documento seleccionado"}
	case b.Form.TipoDocumentoID == 0:
		return &IncompleteError{Detail: "debe seleccionar un tipo de documento"}
	case strings.TrimSpace(b.Form.Asunto) == "":
		return &IncompleteError{Detail: "el asunto es obligatorio"}
	case b.Form.NroFolios < 1:
		return &IncompleteError{Detail: "el número de folios debe ser al menos 1"}
	case b.Form.AreaDestinoID == 0:
		return &IncompleteError{Detail: "debe seleccionar un área de destino"}
	case !b.Correlativo.Usable():
		return &IncompleteError{Detail: "no se pudo obtener el número de documento"}
	}

	in := api.ResponderInput{
		TipoDocumentoID: b.Form.TipoDocumentoID,
		NroDocumento:    b.Correlativo.Value(),
		Asunto:          strings.TrimSpace(b.Form.Asunto),
		NroFolios:       b.Form.NroFolios,
		AreaDestinoID:   b.Form.AreaDestinoID,
		Archivo:         b.Form.Archivo,
	}
	if err := b.c.Responder(ctx, b.respondingTo.ID, in); err != nil {
		return err
	}
	b.respondingTo = nil
	b.Form = Respuesta{}
	return b.Fetch(ctx)
}

// Finalizar closes a document. Irreversible; frontends confirm with the user
// before calling.
func (b *Bandeja) Finalizar(ctx context.Context, docID int) error {
	if err := b.c.Finalizar(ctx, docID); err != nil {
		return err
	}
	return b.Fetch(ctx)
}

// Seguimiento fetches the full movement history for a row.
func (b *Bandeja) Seguimiento(ctx context.Context, docID int) (*model.Documento, error) {
	return b.c.Documento(ctx, docID)
}

func (b *Bandeja) View() TableView {
	rows := make([]Row, 0, len(b.docs))
	for _, d := range b.docs {
		rows = append(rows, BandejaRow(d))
	}
	return TableView{Columns: BandejaColumns(), Rows: rows}
}

func (b *Bandeja) PendientesView() TableView {
	rows := make([]Row, 0, len(b.pendientes))
	for _, d := range b.pendientes {
		rows = append(rows, PendienteRow(d))
	}
	return TableView{Columns: PendientesColumns(), Rows: rows}
}

// RowActions computes the per-row action menu; evaluated on every render so
// it tracks the latest session and row state.
func (b *Bandeja) RowActions(d model.Documento) []Action {
	u := b.sess.User()
	out := []Action{{ID: ActionSeguimiento, Label: "Dar Seguimiento"}}
	if perm.CanDerivar(u, &d) {
		out = append(out, Action{ID: ActionDerivar, Label: "Derivar"})
	}
	if perm.CanResponder(u, &d) {
		out = append(out, Action{ID: ActionResponder, Label: "Responder"})
	}
	if perm.CanFinalizar(u, &d) {
		out = append(out, Action{ID: ActionFinalizar, Label: "Finalizar"})
	}
	return out
}

func (b *Bandeja) Docs() []model.Documento       { return b.docs }
func (b *Bandeja) Pendientes() []model.Documento { return b.pendientes }
func (b *Bandeja) Areas() []model.Area           { return b.areas }
func (b *Bandeja) Loading() bool                 { return b.loading }
