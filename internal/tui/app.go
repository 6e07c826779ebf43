package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/RonaldoHorta159/tramite-cli/internal/api"
	"github.com/RonaldoHorta159/tramite-cli/internal/compose"
	"github.com/RonaldoHorta159/tramite-cli/internal/model"
	"github.com/RonaldoHorta159/tramite-cli/internal/session"
)

type view int

const (
	viewLogin view = iota
	viewMenu
	viewBandeja
	viewPendientes
	viewEmitir
	viewAdminAreas
	viewAdminTipos
	viewAdminUsuarios
	viewHelp
)

type appModel struct {
	c    *api.Client
	sess *session.Session

	view   view
	width  int
	height int

	loading bool
	spin    spinner.Model

	// One-line status toast under the table.
	status    string
	statusErr bool

	bandeja  *compose.Bandeja
	emitir   *compose.Emitir
	areas    *compose.AdminAreas
	tipos    *compose.AdminTipos
	usuarios *compose.AdminUsuarios

	menuIdx int
	cursor  map[view]int

	login       *form
	modalForm   *form
	confirm     *confirmState
	seguimiento *model.Documento
	helpIdx     int
	helpBody    string
}

type confirmState struct {
	title string
	body  string
	focus confirmModalFocus
	run   tea.Cmd
}

func newAppModel(c *api.Client, sess *session.Session) *appModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := &appModel{
		c:        c,
		sess:     sess,
		spin:     sp,
		cursor:   map[view]int{},
		bandeja:  compose.NewBandeja(c, sess),
		emitir:   compose.NewEmitir(c, sess),
		areas:    compose.NewAdminAreas(c),
		tipos:    compose.NewAdminTipos(c),
		usuarios: compose.NewAdminUsuarios(c),
	}
	if sess.IsAuthenticated() {
		m.view = viewMenu
	} else {
		m.view = viewLogin
		m.login = m.newLoginForm()
	}
	return m
}

func (m *appModel) Init() tea.Cmd {
	return m.spin.Tick
}

// Messages for work done off the update loop.
type errMsg struct{ err error }

type loggedInMsg struct{}

type loggedOutMsg struct{}

type loadedMsg struct{ v view }

type actionDoneMsg struct {
	note   string
	reload view
}

type seguimientoMsg struct{ doc *model.Documento }

// correlativoMsg carries the completed lookup back to the sequencer that
// issued it. The emitir and bandeja sequencers number their tokens
// independently, so a completion must never be offered to the other one.
type correlativoMsg struct {
	seq   *compose.CorrelativoSequencer
	token uint64
	value string
	err   error
}

func bg() context.Context { return context.Background() }

func (m *appModel) loadCmd(v view) tea.Cmd {
	m.loading = true
	return func() tea.Msg {
		var err error
		switch v {
		case viewBandeja, viewPendientes:
			err = m.bandeja.Fetch(bg())
		case viewEmitir:
			err = m.emitir.Init(bg())
		case viewAdminAreas:
			err = m.areas.Fetch(bg())
		case viewAdminTipos:
			err = m.tipos.Fetch(bg())
		case viewAdminUsuarios:
			err = m.usuarios.Fetch(bg())
		}
		if err != nil {
			return errMsg{err}
		}
		return loadedMsg{v}
	}
}

func (m *appModel) seguimientoCmd(docID int) tea.Cmd {
	m.loading = true
	return func() tea.Msg {
		d, err := m.c.Documento(bg(), docID)
		if err != nil {
			return errMsg{err}
		}
		return seguimientoMsg{d}
	}
}

// correlativoCmd drives one sequencer lookup. Type/area can change while the
// request is in flight; the sequencer drops stale completions by token.
func correlativoCmd(seq *compose.CorrelativoSequencer, c *api.Client, key compose.CorrelativoKey) tea.Cmd {
	token := seq.Begin(key)
	return func() tea.Msg {
		value, err := c.SiguienteCorrelativo(bg(), key.AreaID, key.TipoDocumentoID)
		return correlativoMsg{seq: seq, token: token, value: value, err: err}
	}
}

func (m *appModel) setStatus(note string, isErr bool) {
	m.status = note
	m.statusErr = isErr
}

func (m *appModel) rowCount(v view) int {
	switch v {
	case viewBandeja:
		return len(m.bandeja.Docs())
	case viewPendientes:
		return len(m.bandeja.Pendientes())
	case viewEmitir:
		return len(m.emitir.Docs())
	case viewAdminAreas:
		return len(m.areas.Areas())
	case viewAdminTipos:
		return len(m.tipos.Tipos())
	case viewAdminUsuarios:
		return len(m.usuarios.Usuarios())
	}
	return 0
}

func (m *appModel) clampCursor(v view) {
	n := m.rowCount(v)
	if m.cursor[v] >= n {
		m.cursor[v] = n - 1
	}
	if m.cursor[v] < 0 {
		m.cursor[v] = 0
	}
}

func (m *appModel) selectedBandejaDoc() (model.Documento, bool) {
	docs := m.bandeja.Docs()
	if m.view == viewPendientes {
		docs = m.bandeja.Pendientes()
	}
	i := m.cursor[m.view]
	if i < 0 || i >= len(docs) {
		return model.Documento{}, false
	}
	return docs[i], true
}

func (m *appModel) selectedEmitirDoc() (model.Documento, bool) {
	docs := m.emitir.Docs()
	i := m.cursor[viewEmitir]
	if i < 0 || i >= len(docs) {
		return model.Documento{}, false
	}
	return docs[i], true
}

func (m *appModel) isAdmin() bool {
	u := m.sess.User()
	return u != nil && u.IsAdmin()
}

type menuEntry struct {
	label string
	v     view
}

// menuEntries is role-dependent: maintenance screens only exist for admins.
func (m *appModel) menuEntries() []menuEntry {
	entries := []menuEntry{
		{"Bandeja de Entrada", viewBandeja},
		{"Documentos Pendientes", viewPendientes},
		{"Emitir Trámites", viewEmitir},
	}
	if m.isAdmin() {
		entries = append(entries,
			menuEntry{"Áreas", viewAdminAreas},
			menuEntry{"Tipos de Documento", viewAdminTipos},
			menuEntry{"Usuarios", viewAdminUsuarios},
		)
	}
	return append(entries, menuEntry{"Ayuda", viewHelp})
}

func hasAction(acts []compose.Action, id compose.ActionID) bool {
	for _, a := range acts {
		if a.ID == id {
			return true
		}
	}
	return false
}
