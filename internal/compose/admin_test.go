package compose

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/RonaldoHorta159/tramite-cli/internal/model"
)

func adminUser() model.SessionUser {
	return model.SessionUser{ID: 2, NombreUsuario: "admin", Rol: model.RolAdministrador}
}

func TestAdminAreasDeactivateKeepsRow(t *testing.T) {
	f := newFakeBackend(t)
	c, _ := f.start(adminUser())
	ctx := context.Background()

	a := NewAdminAreas(c)
	if err := a.Fetch(ctx); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	before := len(a.Areas())

	if err := a.Deactivate(ctx, 2); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if len(a.Areas()) != before {
		t.Fatalf("row count changed %d -> %d; deactivation must not remove rows", before, len(a.Areas()))
	}

	var row *model.Area
	for i := range a.Areas() {
		if a.Areas()[i].ID == 2 {
			row = &a.Areas()[i]
		}
	}
	if row == nil {
		t.Fatal("deactivated area missing from listing")
	}
	if row.Estado != model.EstadoInactivo {
		t.Errorf("estado = %q, want %q", row.Estado, model.EstadoInactivo)
	}

	view := a.View()
	for _, r := range view.Rows {
		if r.ID == 2 && r.Badge != BadgeDanger {
			t.Errorf("inactive row badge = %v, want danger", r.Badge)
		}
	}
}

func TestAdminAreasSubmitRequiresName(t *testing.T) {
	f := newFakeBackend(t)
	c, _ := f.start(adminUser())
	ctx := context.Background()

	a := NewAdminAreas(c)
	if err := a.Fetch(ctx); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	before := len(f.areas)

	a.OpenCreateForm()
	a.Form.Nombre = "   "
	var inc *IncompleteError
	if err := a.Submit(ctx); !errors.As(err, &inc) {
		t.Fatalf("submit blank name: %v, want IncompleteError", err)
	}
	if len(f.areas) != before {
		t.Fatal("blank name reached the server")
	}

	a.Form.Nombre = "Tesorería"
	if err := a.Submit(ctx); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if len(a.Areas()) != before+1 {
		t.Fatalf("listing has %d areas after create, want %d", len(a.Areas()), before+1)
	}
}

func TestAdminUsuariosBlankPasswordOmitted(t *testing.T) {
	f := newFakeBackend(t)
	f.usuarios = []model.Usuario{{
		ID:            7,
		NombreUsuario: "jlopez",
		Rol:           model.RolUsuario,
		Estado:        model.EstadoActivo,
		CreatedAt:     time.Now(),
		Empleado: model.Empleado{
			Nombres:         "Julia",
			ApellidoPaterno: "López",
			DNI:             "45678912",
			Email:           "jlopez@example.com",
		},
		PrimaryAreaID: 2,
		PrimaryArea:   &model.Area{ID: 2, Nombre: "Logística"},
	}}
	c, _ := f.start(adminUser())
	ctx := context.Background()

	au := NewAdminUsuarios(c)
	if err := au.Fetch(ctx); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	au.OpenEditForm(au.Usuarios()[0])
	if au.Form.AreaID != "2" || au.Form.Nombres != "Julia" {
		t.Fatalf("edit form not pre-filled: %+v", au.Form)
	}

	// Blank password on edit: neither password key may appear on the wire.
	au.Form.Email = "julia.lopez@example.com"
	if err := au.Submit(ctx); err != nil {
		t.Fatalf("submit: %v", err)
	}
	f.mu.Lock()
	body := f.lastUserBody
	f.mu.Unlock()
	if body == nil {
		t.Fatal("update never reached the server")
	}
	if _, ok := body["password"]; ok {
		t.Error("blank password was sent on edit")
	}
	if _, ok := body["password_confirmation"]; ok {
		t.Error("blank password confirmation was sent on edit")
	}
	if body["email"] != "julia.lopez@example.com" {
		t.Errorf("email = %v", body["email"])
	}

	// Typing a new password sends both keys.
	au.OpenEditForm(au.Usuarios()[0])
	au.Form.Password = "secreto123"
	au.Form.PasswordConfirmation = "secreto123"
	if err := au.Submit(ctx); err != nil {
		t.Fatalf("submit with password: %v", err)
	}
	f.mu.Lock()
	body = f.lastUserBody
	f.mu.Unlock()
	if body["password"] != "secreto123" {
		t.Errorf("password = %v, want the typed value", body["password"])
	}
}

func TestAdminUsuariosCreateRequiresPassword(t *testing.T) {
	f := newFakeBackend(t)
	c, _ := f.start(adminUser())
	ctx := context.Background()

	au := NewAdminUsuarios(c)
	if err := au.Fetch(ctx); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	au.OpenCreateForm()
	au.Form.NombreUsuario = "nuevo"
	var inc *IncompleteError
	if err := au.Submit(ctx); !errors.As(err, &inc) {
		t.Fatalf("create without password: %v, want IncompleteError", err)
	}

	au.Form.Password = "abc12345"
	au.Form.PasswordConfirmation = "abc12346"
	if err := au.Submit(ctx); !errors.As(err, &inc) {
		t.Fatalf("mismatched confirmation: %v, want IncompleteError", err)
	}
}
