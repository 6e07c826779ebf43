package perm

import (
	"github.com/RonaldoHorta159/tramite-cli/internal/model"
)

// AccessibleAreas returns the set of area ids the user can act for: the
// primary area plus every additional assigned area. A user with no areas gets
// an empty set and sees every inbox row as read-only.
func AccessibleAreas(u *model.SessionUser) map[int]bool {
	out := map[int]bool{}
	if u == nil {
		return out
	}
	if u.PrimaryAreaID != 0 {
		out[u.PrimaryAreaID] = true
	}
	for _, a := range u.Areas {
		if a.ID != 0 {
			out[a.ID] = true
		}
	}
	return out
}

// InMyOffice reports whether the document currently sits in one of the user's
// areas.
func InMyOffice(u *model.SessionUser, d *model.Documento) bool {
	if d == nil || d.AreaActual == nil {
		return false
	}
	return AccessibleAreas(u)[d.AreaActual.ID]
}

// NotFinalized: only FINALIZADO closes the lifecycle for inbox actions. A
// rejected or archived document still routes normally while its holder works
// it; the backend owns any further restrictions.
func NotFinalized(d *model.Documento) bool {
	return d != nil && d.EstadoGeneral != model.EstadoFinalizado
}

// IsOriginal excludes documents that are themselves replies. A reply is
// terminal from the recipient's perspective once sent; it is never routed or
// answered again from the inbox.
func IsOriginal(d *model.Documento) bool {
	return d != nil && d.DocumentoRespuestaID == nil
}

// Processable is the inbox gate for acting on a document: it must sit in one
// of the user's areas, not be closed, and not itself be a reply.
func Processable(u *model.SessionUser, d *model.Documento) bool {
	return InMyOffice(u, d) && NotFinalized(d) && IsOriginal(d)
}

// Per-row action visibility, recomputed on every render so it always reflects
// the latest session and row state.

// CanSeguimiento: the history view is always available.
func CanSeguimiento(u *model.SessionUser, d *model.Documento) bool {
	return d != nil
}

func CanDerivar(u *model.SessionUser, d *model.Documento) bool {
	return Processable(u, d)
}

// CanResponder additionally requires the document to have been formally
// received: merely routed-to is not answerable yet.
func CanResponder(u *model.SessionUser, d *model.Documento) bool {
	return Processable(u, d) && d.FueRecibidoEnAreaActual
}

func CanFinalizar(u *model.SessionUser, d *model.Documento) bool {
	return Processable(u, d) && d.FueRecibidoEnAreaActual
}
