package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type fieldKind int

const (
	fieldText fieldKind = iota
	fieldSecret
	fieldChoice
	fieldToggle
)

type choice struct {
	id    int
	label string
}

type formField struct {
	key   string
	label string
	kind  fieldKind

	input textinput.Model

	choices   []choice
	choiceIdx int

	on bool // toggle state
}

func textField(key, label, value string) formField {
	ti := textinput.New()
	ti.Prompt = ""
	ti.SetValue(value)
	ti.CharLimit = 200
	return formField{key: key, label: label, kind: fieldText, input: ti}
}

func secretField(key, label string) formField {
	f := textField(key, label, "")
	f.kind = fieldSecret
	f.input.EchoMode = textinput.EchoPassword
	f.input.EchoCharacter = '•'
	return f
}

func choiceField(key, label string, choices []choice, selectedID int) formField {
	idx := 0
	for i, c := range choices {
		if c.id == selectedID {
			idx = i
		}
	}
	return formField{key: key, label: label, kind: fieldChoice, choices: choices, choiceIdx: idx}
}

func toggleField(key, label string, on bool) formField {
	return formField{key: key, label: label, kind: fieldToggle, on: on}
}

// form is a vertical modal form: tab cycles focus, left/right change choice
// and toggle fields, enter submits.
type form struct {
	title       string
	fields      []formField
	focus       int
	note        string // extra line under the fields, e.g. the correlativo preview
	submitLabel string

	// submit builds the command to run. changed fires when a choice field
	// moves, so dependent lookups (the correlativo) can re-key.
	submit  func(f *form) tea.Cmd
	changed func(f *form, key string) tea.Cmd
}

func (f *form) value(key string) string {
	for i := range f.fields {
		if f.fields[i].key == key {
			return strings.TrimSpace(f.fields[i].input.Value())
		}
	}
	return ""
}

func (f *form) choiceID(key string) int {
	for i := range f.fields {
		fd := &f.fields[i]
		if fd.key == key && len(fd.choices) > 0 {
			return fd.choices[fd.choiceIdx].id
		}
	}
	return 0
}

func (f *form) toggled(key string) bool {
	for i := range f.fields {
		if f.fields[i].key == key {
			return f.fields[i].on
		}
	}
	return false
}

func (f *form) focusField(i int) {
	for j := range f.fields {
		f.fields[j].input.Blur()
	}
	f.focus = i
	fd := &f.fields[i]
	if fd.kind == fieldText || fd.kind == fieldSecret {
		fd.input.Focus()
	}
}

func (f *form) update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return f.updateFocused(msg)
	}

	switch key.String() {
	case "tab", "down":
		f.focusField((f.focus + 1) % len(f.fields))
		return nil
	case "shift+tab", "up":
		f.focusField((f.focus - 1 + len(f.fields)) % len(f.fields))
		return nil
	case "enter":
		if f.submit != nil {
			return f.submit(f)
		}
		return nil
	case "left", "right":
		fd := &f.fields[f.focus]
		switch fd.kind {
		case fieldChoice:
			if len(fd.choices) == 0 {
				return nil
			}
			if key.String() == "right" {
				fd.choiceIdx = (fd.choiceIdx + 1) % len(fd.choices)
			} else {
				fd.choiceIdx = (fd.choiceIdx - 1 + len(fd.choices)) % len(fd.choices)
			}
			if f.changed != nil {
				return f.changed(f, fd.key)
			}
			return nil
		case fieldToggle:
			fd.on = !fd.on
			return nil
		}
	case " ":
		if fd := &f.fields[f.focus]; fd.kind == fieldToggle {
			fd.on = !fd.on
			return nil
		}
	}
	return f.updateFocused(msg)
}

func (f *form) updateFocused(msg tea.Msg) tea.Cmd {
	fd := &f.fields[f.focus]
	if fd.kind != fieldText && fd.kind != fieldSecret {
		return nil
	}
	var cmd tea.Cmd
	fd.input, cmd = fd.input.Update(msg)
	return cmd
}

func (f *form) view(termWidth int) string {
	bodyW := modalBodyWidth(termWidth)
	labelStyle := styleMuted()
	focusedLabel := lipgloss.NewStyle().Bold(true).Foreground(colorAccent)

	var b strings.Builder
	for i := range f.fields {
		fd := &f.fields[i]
		label := labelStyle.Render(fd.label)
		if i == f.focus {
			label = focusedLabel.Render(fd.label)
		}
		b.WriteString(label)
		b.WriteString("\n  ")
		b.WriteString(f.fieldView(fd, i == f.focus, bodyW-2))
		b.WriteString("\n")
	}

	if f.note != "" {
		b.WriteString("\n")
		b.WriteString(styleMuted().Render(f.note))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styleMuted().Render(fmt.Sprintf(
		"tab: campo   ←/→: opción   enter: %s   esc: cancelar", f.submitLabel)))
	return renderModalBox(termWidth, f.title, b.String())
}

func (f *form) fieldView(fd *formField, focused bool, width int) string {
	switch fd.kind {
	case fieldChoice:
		if len(fd.choices) == 0 {
			return styleMuted().Render("(sin opciones)")
		}
		label := fd.choices[fd.choiceIdx].label
		st := lipgloss.NewStyle().Foreground(colorSurfaceFg)
		if focused {
			st = st.Bold(true)
		}
		return st.Render("‹ " + label + " ›")
	case fieldToggle:
		mark := "[ ]"
		if fd.on {
			mark = "[x]"
		}
		st := lipgloss.NewStyle().Foreground(colorSurfaceFg)
		if focused {
			st = st.Bold(true)
		}
		return st.Render(mark + " " + "sí")
	default:
		fd.input.Width = width
		return fd.input.View()
	}
}
