package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/RonaldoHorta159/tramite-cli/internal/compose"
)

// renderTable draws a composed table view with one selectable row. Column
// widths come from the column definitions; the last column absorbs slack so
// badges stay visible on narrow terminals.
func renderTable(tv compose.TableView, selected, width int) string {
	if len(tv.Rows) == 0 {
		return styleMuted().Render("  (sin documentos)")
	}

	widths := fitColumns(tv.Columns, width)

	var b strings.Builder
	headStyle := lipgloss.NewStyle().Bold(true).Foreground(colorSurfaceFg)
	for i, c := range tv.Columns {
		b.WriteString(headStyle.Render(pad(c.Title, widths[i])))
		b.WriteString(" ")
	}
	b.WriteString("\n")
	b.WriteString(styleMuted().Render(strings.Repeat("─", min(width, totalWidth(widths)))))
	b.WriteString("\n")

	for ri, row := range tv.Rows {
		line := renderRow(tv.Columns, row, widths)
		if ri == selected {
			line = lipgloss.NewStyle().
				Foreground(colorSelectedFg).
				Background(colorSelectedBg).
				Render(line)
		}
		b.WriteString(line)
		if ri < len(tv.Rows)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func renderRow(cols []compose.Column, row compose.Row, widths []int) string {
	var b strings.Builder
	badge := badgeStyle(row.Badge)
	for i := range cols {
		cell := ""
		if i < len(row.Cells) {
			cell = row.Cells[i]
		}
		cell = pad(cell, widths[i])
		// Estado-style columns carry the row badge color.
		if strings.HasPrefix(cols[i].Key, "estado") {
			cell = badge.Render(cell)
		}
		b.WriteString(cell)
		b.WriteString(" ")
	}
	return b.String()
}

// fitColumns scales the declared widths down proportionally when the terminal
// is narrower than their sum.
func fitColumns(cols []compose.Column, width int) []int {
	widths := make([]int, len(cols))
	total := 0
	for i, c := range cols {
		w := c.Width
		if w <= 0 {
			w = 12
		}
		widths[i] = w
		total += w + 1
	}
	if width <= 0 || total <= width {
		return widths
	}
	for i := range widths {
		widths[i] = widths[i] * width / total
		if widths[i] < 4 {
			widths[i] = 4
		}
	}
	return widths
}

func totalWidth(widths []int) int {
	t := 0
	for _, w := range widths {
		t += w + 1
	}
	return t
}

// pad truncates (with ellipsis) or right-pads a cell to the column width,
// counting display cells rather than bytes.
func pad(s string, w int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if ansi.StringWidth(s) > w {
		s = ansi.Truncate(s, w-1, "…")
	}
	if n := w - ansi.StringWidth(s); n > 0 {
		s += strings.Repeat(" ", n)
	}
	return s
}
