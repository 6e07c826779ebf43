package perm

import (
	"testing"

	"github.com/RonaldoHorta159/tramite-cli/internal/model"
)

func userWithAreas(primary int, extra ...int) *model.SessionUser {
	u := &model.SessionUser{ID: 1, NombreUsuario: "rhorta", Rol: model.RolUsuario, PrimaryAreaID: primary}
	for _, id := range extra {
		u.Areas = append(u.Areas, model.Area{ID: id})
	}
	return u
}

func doc(currentArea int, estado string, replyTo *int, recibido bool) *model.Documento {
	return &model.Documento{
		ID:                      10,
		AreaActual:              &model.Area{ID: currentArea},
		EstadoGeneral:           estado,
		DocumentoRespuestaID:    replyTo,
		FueRecibidoEnAreaActual: recibido,
	}
}

func TestProcessable(t *testing.T) {
	replyID := 99
	tests := []struct {
		name string
		u    *model.SessionUser
		d    *model.Documento
		want bool
	}{
		{"in my office, open, original", userWithAreas(2), doc(2, model.EstadoEnTramite, nil, true), true},
		{"extra assigned area counts", userWithAreas(1, 2, 3), doc(3, model.EstadoEnTramite, nil, false), true},
		{"other office", userWithAreas(2), doc(5, model.EstadoEnTramite, nil, true), false},
		{"finalized", userWithAreas(2), doc(2, model.EstadoFinalizado, nil, true), false},
		{"reply is never processable", userWithAreas(2), doc(2, model.EstadoEnTramite, &replyID, true), false},
		{"rejected stays processable for holder", userWithAreas(2), doc(2, model.EstadoRechazado, nil, true), true},
		{"no assigned areas degrades to read-only", &model.SessionUser{ID: 4}, doc(2, model.EstadoEnTramite, nil, true), false},
		{"nil user", nil, doc(2, model.EstadoEnTramite, nil, true), false},
		{"nil current area", userWithAreas(2), &model.Documento{EstadoGeneral: model.EstadoEnTramite}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Processable(tc.u, tc.d); got != tc.want {
				t.Fatalf("Processable = %v, want %v", got, tc.want)
			}
		})
	}
}

// Respond/Finalize visibility must be a subset of Derive visibility, which in
// turn must equal processability, for any row.
func TestVisibilityContainment(t *testing.T) {
	replyID := 7
	users := []*model.SessionUser{
		nil,
		userWithAreas(0),
		userWithAreas(2),
		userWithAreas(1, 2, 3),
	}
	docs := []*model.Documento{
		doc(2, model.EstadoEnTramite, nil, true),
		doc(2, model.EstadoEnTramite, nil, false),
		doc(2, model.EstadoFinalizado, nil, true),
		doc(9, model.EstadoEnTramite, nil, true),
		doc(2, model.EstadoEnTramite, &replyID, true),
		doc(2, model.EstadoArchivado, nil, true),
	}

	for _, u := range users {
		for _, d := range docs {
			if CanDerivar(u, d) != Processable(u, d) {
				t.Fatalf("derive visibility must equal processability (doc %+v)", d)
			}
			if CanResponder(u, d) && !CanDerivar(u, d) {
				t.Fatalf("respond visible while derive hidden (doc %+v)", d)
			}
			if CanFinalizar(u, d) && !CanDerivar(u, d) {
				t.Fatalf("finalize visible while derive hidden (doc %+v)", d)
			}
			if !CanSeguimiento(u, d) {
				t.Fatalf("history must always be visible")
			}
		}
	}
}

func TestResponderRequiresReception(t *testing.T) {
	u := userWithAreas(2)
	notReceived := doc(2, model.EstadoEnTramite, nil, false)
	received := doc(2, model.EstadoEnTramite, nil, true)

	if CanResponder(u, notReceived) {
		t.Fatalf("respond must be hidden before recepcionar")
	}
	if CanFinalizar(u, notReceived) {
		t.Fatalf("finalize must be hidden before recepcionar")
	}
	if !CanResponder(u, received) || !CanFinalizar(u, received) {
		t.Fatalf("respond/finalize must show once received")
	}
}

func TestAccessibleAreasIgnoresZeroIDs(t *testing.T) {
	u := &model.SessionUser{Areas: []model.Area{{ID: 0}, {ID: 4}}}
	got := AccessibleAreas(u)
	if got[0] {
		t.Fatalf("zero area id must not grant access")
	}
	if !got[4] {
		t.Fatalf("assigned area missing")
	}
}
