package format

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/RonaldoHorta159/tramite-cli/internal/compose"
)

// Write writes output in the requested format.
//
// Supported formats:
// - json (default)
// - table (tabular payloads only; anything else falls back to JSON)
func Write(w io.Writer, v any, format string, pretty bool) error {
	switch format {
	case "", "json":
		return WriteJSON(w, v, pretty)
	case "table":
		if tv, ok := v.(compose.TableView); ok {
			return WriteTable(w, tv)
		}
		return WriteJSON(w, v, pretty)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteJSON writes one JSON document per invocation, nothing else on stdout,
// so command output stays pipeable into jq. Pagination details belong inside
// the payload (the list commands emit a `meta` object next to `data`).
func WriteJSON(w io.Writer, v any, pretty bool) error {
	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(b))
	return err
}

// WriteTable renders a composed table view for humans. Badge levels only tint
// the estado-style columns in the TUI; here rows stay plain so output pipes
// cleanly.
func WriteTable(w io.Writer, tv compose.TableView) error {
	headers := make([]string, len(tv.Columns))
	for i, c := range tv.Columns {
		headers[i] = c.Title
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...)
	for _, r := range tv.Rows {
		t.Row(r.Cells...)
	}

	_, err := fmt.Fprintln(w, t.Render())
	return err
}
