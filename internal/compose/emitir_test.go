package compose

import (
	"context"
	"errors"
	"testing"

	"github.com/RonaldoHorta159/tramite-cli/internal/model"
)

func TestEmitirCreateShowsInOutbox(t *testing.T) {
	f := newFakeBackend(t)
	c, sess := f.start(regularUser(1))
	ctx := context.Background()

	e := NewEmitir(c, sess)
	if err := e.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}
	if e.SelectedAreaID() != 1 {
		t.Fatalf("selected area = %d, want primary area 1", e.SelectedAreaID())
	}
	if len(e.Tipos()) != 2 || len(e.Areas()) != 3 {
		t.Fatalf("catalogs not loaded: %d tipos, %d areas", len(e.Tipos()), len(e.Areas()))
	}

	if err := e.OpenCreateForm(ctx); err != nil {
		t.Fatalf("open form: %v", err)
	}
	e.SetFormTipo(ctx, 10)
	if got := e.Correlativo.Value(); got != "INFORME 1" {
		t.Fatalf("correlativo = %q, want INFORME 1", got)
	}
	e.Form.Asunto = "Solicitud de materiales"
	e.Form.AreaDestinoID = 2

	if err := e.Create(ctx); err != nil {
		t.Fatalf("create: %v", err)
	}

	docs := e.Docs()
	if len(docs) != 1 {
		t.Fatalf("got %d docs after create, want 1", len(docs))
	}
	d := docs[0]
	if d.AreaOrigen.ID != 1 || d.AreaActual.ID != 2 {
		t.Errorf("routing: origen %d actual %d, want 1 -> 2", d.AreaOrigen.ID, d.AreaActual.ID)
	}
	if d.EstadoGeneral != model.EstadoEnTramite {
		t.Errorf("estado = %q, want %q", d.EstadoGeneral, model.EstadoEnTramite)
	}
	if d.NroDocumento != "INFORME 1" {
		t.Errorf("nro documento = %q, want the fetched correlativo", d.NroDocumento)
	}

	// The document already left this office, so it can only be tracked.
	acts := e.RowActions(d)
	if len(acts) != 1 || acts[0].ID != ActionSeguimiento {
		t.Errorf("actions = %v, want seguimiento only", acts)
	}
}

func TestEmitirValidationBlocksRequest(t *testing.T) {
	f := newFakeBackend(t)
	c, sess := f.start(regularUser(1))
	ctx := context.Background()

	e := NewEmitir(c, sess)
	if err := e.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}
	if err := e.OpenCreateForm(ctx); err != nil {
		t.Fatalf("open form: %v", err)
	}

	// No tipo selected yet.
	var inc *IncompleteError
	if err := e.Create(ctx); !errors.As(err, &inc) {
		t.Fatalf("create with empty form: %v, want IncompleteError", err)
	}
	if len(f.docs) != 0 {
		t.Fatalf("incomplete form reached the server: %d docs", len(f.docs))
	}

	// Derivar with a blank proveído never leaves the client either.
	if err := e.Derivar(ctx, 1, 2, "   "); !errors.As(err, &inc) {
		t.Fatalf("derivar without proveido: %v, want IncompleteError", err)
	}
	if f.derivarCalls != 0 {
		t.Fatalf("derivar endpoint hit %d times, want 0", f.derivarCalls)
	}
}

func TestEmitirCorrelativoUnusableBlocksCreate(t *testing.T) {
	f := newFakeBackend(t)
	f.correlativoFn = func(areaID, tipoID int) (string, error) {
		return "", errors.New("sequence offline")
	}
	c, sess := f.start(regularUser(1))
	ctx := context.Background()

	e := NewEmitir(c, sess)
	if err := e.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}
	if err := e.OpenCreateForm(ctx); err != nil {
		t.Fatalf("open form: %v", err)
	}
	e.SetFormTipo(ctx, 10)
	if got := e.Correlativo.Value(); got != CorrelativoError {
		t.Fatalf("correlativo = %q, want %q", got, CorrelativoError)
	}

	e.Form.Asunto = "Solicitud"
	e.Form.AreaDestinoID = 2
	var inc *IncompleteError
	if err := e.Create(ctx); !errors.As(err, &inc) {
		t.Fatalf("create with failed correlativo: %v, want IncompleteError", err)
	}
	if len(f.docs) != 0 {
		t.Fatalf("document created with error sentinel as number")
	}
}

func TestEmitirNoAreaYieldsEmptyList(t *testing.T) {
	f := newFakeBackend(t)
	c, sess := f.start(model.SessionUser{ID: 9, NombreUsuario: "sinarea", Rol: model.RolUsuario})
	ctx := context.Background()

	f.mu.Lock()
	f.addDoc(1, 2, 10, 1, "ajeno", "OFICIO 7", nil)
	f.mu.Unlock()

	e := NewEmitir(c, sess)
	if err := e.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}
	if len(e.Docs()) != 0 {
		t.Fatalf("user without areas sees %d docs, want 0", len(e.Docs()))
	}

	var inc *IncompleteError
	if err := e.OpenCreateForm(ctx); !errors.As(err, &inc) {
		t.Fatalf("open form without area: %v, want IncompleteError", err)
	}
}

func TestEmitirAdminSeesEverything(t *testing.T) {
	f := newFakeBackend(t)
	admin := model.SessionUser{ID: 2, NombreUsuario: "admin", Rol: model.RolAdministrador}
	c, sess := f.start(admin)
	ctx := context.Background()

	f.mu.Lock()
	f.addDoc(1, 2, 10, 1, "uno", "OFICIO 1", nil)
	f.addDoc(2, 3, 11, 1, "dos", "OFICIO 2", nil)
	f.mu.Unlock()

	e := NewEmitir(c, sess)
	if err := e.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}
	if len(e.Docs()) != 2 {
		t.Fatalf("admin sees %d docs, want 2", len(e.Docs()))
	}
	if got := len(e.OficinasPermitidas()); got != 3 {
		t.Fatalf("admin can emit from %d areas, want the whole catalog (3)", got)
	}
}
