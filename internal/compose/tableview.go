// Package compose holds the per-screen view-state composers: each owns the
// row list, pagination cursor, and form state for one screen, and exposes a
// tabular view model plus the action set for a row. The composers are UI
// independent; both the cobra commands and the TUI drive them.
package compose

import (
	"fmt"
	"time"

	"github.com/RonaldoHorta159/tramite-cli/internal/model"
)

// Column is a declarative mapping from a data field to a display cell.
type Column struct {
	Key   string
	Title string
	// Width is a rendering hint for fixed-width frontends; 0 means auto.
	Width int
}

// Row is one rendered table row: cells in column order plus a badge level for
// the estado cell, so frontends can color without re-deriving semantics.
type Row struct {
	ID    int
	Cells []string
	Badge BadgeLevel
}

// TableView is an immutable snapshot of (columns, rows); frontends recompute
// it from the composer on every dependency change rather than mutating it.
type TableView struct {
	Columns []Column
	Rows    []Row
}

type BadgeLevel int

const (
	BadgeInfo BadgeLevel = iota // default / in-progress
	BadgeSuccess
	BadgeDanger
	BadgeWarning
)

// EstadoBadge mirrors the browser client's badge palette: green for
// FINALIZADO, red for RECHAZADO, yellow for ARCHIVADO, blue otherwise.
func EstadoBadge(estado string) BadgeLevel {
	switch estado {
	case model.EstadoFinalizado:
		return BadgeSuccess
	case model.EstadoRechazado:
		return BadgeDanger
	case model.EstadoArchivado:
		return BadgeWarning
	default:
		return BadgeInfo
	}
}

// ActionID names a row action. Frontends render the labels; composers decide
// availability. An action absent from the set is unavailable, not an error.
type ActionID string

const (
	ActionSeguimiento ActionID = "seguimiento"
	ActionDerivar     ActionID = "derivar"
	ActionResponder   ActionID = "responder"
	ActionFinalizar   ActionID = "finalizar"
	ActionRecepcionar ActionID = "recepcionar"
	ActionEditar      ActionID = "editar"
	ActionDesactivar  ActionID = "desactivar"
)

type Action struct {
	ID    ActionID
	Label string
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Format("02/01/2006")
}

func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Format("02/01/2006 15:04")
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func strOrNA(p *string) string {
	if p == nil || *p == "" {
		return "N/A"
	}
	return *p
}

func areaNombre(a *model.Area) string {
	if a == nil {
		return "N/A"
	}
	return a.Nombre
}

func tipoNombre(t *model.TipoDocumento) string {
	if t == nil {
		return "N/A"
	}
	return t.Nombre
}

func proveidoOf(d model.Documento) string {
	if d.LatestMovement == nil {
		return "N/A"
	}
	return orNA(d.LatestMovement.Proveido)
}

func itoa(n int) string { return fmt.Sprintf("%d", n) }
