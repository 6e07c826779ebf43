package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/RonaldoHorta159/tramite-cli/internal/compose"
	"github.com/RonaldoHorta159/tramite-cli/internal/model"
)

func (m *appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case errMsg:
		m.loading = false
		m.setStatus(msg.err.Error(), true)
		return m, nil

	case loggedInMsg:
		m.loading = false
		m.login = nil
		m.view = viewMenu
		m.setStatus("Sesión iniciada como "+m.sess.User().NombreUsuario, false)
		return m, nil

	case loggedOutMsg:
		m.loading = false
		m.view = viewLogin
		m.login = m.newLoginForm()
		return m, nil

	case loadedMsg:
		m.loading = false
		m.clampCursor(msg.v)
		return m, nil

	case actionDoneMsg:
		m.modalForm = nil
		m.confirm = nil
		m.setStatus(msg.note, false)
		return m, m.loadCmd(msg.reload)

	case seguimientoMsg:
		m.loading = false
		m.seguimiento = msg.doc
		return m, nil

	case correlativoMsg:
		m.applyCorrelativo(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.modalForm != nil {
		return m, m.modalForm.update(msg)
	}
	if m.login != nil && m.view == viewLogin {
		return m, m.login.update(msg)
	}
	return m, nil
}

// applyCorrelativo feeds a completed lookup into the sequencer that issued
// it; stale tokens are dropped by the sequencer itself. Tokens are only
// meaningful per sequencer, never across the two.
func (m *appModel) applyCorrelativo(msg correlativoMsg) {
	if msg.seq == nil || !msg.seq.Apply(msg.token, msg.value, msg.err) {
		return
	}
	if m.modalForm == nil {
		return
	}
	formSeq := &m.emitir.Correlativo
	if m.bandeja.RespondingTo() != nil {
		formSeq = &m.bandeja.Correlativo
	}
	if msg.seq == formSeq {
		m.modalForm.note = "Nro de documento: " + formSeq.Value()
	}
}

func (m *appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// Modals swallow keys first.
	if m.confirm != nil {
		return m.handleConfirmKey(key)
	}
	if m.seguimiento != nil {
		if key == "esc" || key == "q" || key == "enter" {
			m.seguimiento = nil
		}
		return m, nil
	}
	if m.modalForm != nil {
		if key == "esc" {
			m.modalForm = nil
			return m, nil
		}
		return m, m.modalForm.update(msg)
	}
	if m.view == viewLogin {
		if key == "ctrl+c" {
			return m, tea.Quit
		}
		return m, m.login.update(msg)
	}

	switch key {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "esc":
		if m.view != viewMenu {
			m.view = viewMenu
			m.setStatus("", false)
		}
		return m, nil
	}

	if m.view == viewMenu {
		return m.handleMenuKey(key)
	}
	if m.view == viewHelp {
		return m.handleHelpKey(key)
	}

	// List navigation shared by every tabular view.
	switch key {
	case "up", "k":
		m.cursor[m.view]--
		m.clampCursor(m.view)
		return m, nil
	case "down", "j":
		m.cursor[m.view]++
		m.clampCursor(m.view)
		return m, nil
	case "r":
		return m, m.loadCmd(m.view)
	}

	switch m.view {
	case viewBandeja, viewPendientes:
		return m.handleBandejaKey(key)
	case viewEmitir:
		return m.handleEmitirKey(key)
	case viewAdminAreas, viewAdminTipos, viewAdminUsuarios:
		return m.handleAdminKey(key)
	}
	return m, nil
}

func (m *appModel) handleMenuKey(key string) (tea.Model, tea.Cmd) {
	entries := m.menuEntries()
	switch key {
	case "up", "k":
		if m.menuIdx > 0 {
			m.menuIdx--
		}
	case "down", "j":
		if m.menuIdx < len(entries)-1 {
			m.menuIdx++
		}
	case "enter":
		target := entries[m.menuIdx].v
		m.view = target
		m.setStatus("", false)
		if target == viewHelp {
			m.helpBody = ""
			return m, nil
		}
		return m, m.loadCmd(target)
	case "ctrl+l":
		m.loading = true
		return m, func() tea.Msg {
			if err := m.sess.Logout(bg()); err != nil {
				return errMsg{err}
			}
			return loggedOutMsg{}
		}
	}
	return m, nil
}

func (m *appModel) handleHelpKey(key string) (tea.Model, tea.Cmd) {
	topics := helpTopics()
	if m.helpBody != "" {
		if key == "esc" || key == "q" || key == "enter" {
			m.helpBody = ""
		}
		return m, nil
	}
	switch key {
	case "up", "k":
		if m.helpIdx > 0 {
			m.helpIdx--
		}
	case "down", "j":
		if m.helpIdx < len(topics)-1 {
			m.helpIdx++
		}
	case "enter":
		if body, ok := helpBody(topics[m.helpIdx]); ok {
			m.helpBody = body
		}
	}
	return m, nil
}

func (m *appModel) handleBandejaKey(key string) (tea.Model, tea.Cmd) {
	doc, ok := m.selectedBandejaDoc()
	if !ok {
		return m, nil
	}
	acts := m.bandeja.RowActions(doc)

	switch key {
	case "enter", "s":
		return m, m.seguimientoCmd(doc.ID)
	case "c":
		if m.view == viewPendientes || !doc.FueRecibidoEnAreaActual {
			m.loading = true
			return m, func() tea.Msg {
				note, err := m.bandeja.Recepcionar(bg(), doc.ID)
				if err != nil {
					return errMsg{err}
				}
				return actionDoneMsg{note: note, reload: m.view}
			}
		}
	case "d":
		if hasAction(acts, compose.ActionDerivar) {
			m.openDerivarForm(doc, m.view)
		} else {
			m.setStatus("Este documento no puede derivarse desde aquí.", true)
		}
	case "o":
		if hasAction(acts, compose.ActionResponder) {
			return m, m.openResponderWithCatalogs(doc)
		}
		m.setStatus("El documento debe estar recepcionado para responder.", true)
	case "f":
		if hasAction(acts, compose.ActionFinalizar) {
			m.confirm = &confirmState{
				title: "Finalizar " + doc.CodigoUnico,
				body:  "Finalizar un trámite es irreversible. ¿Continuar?",
				run: func() tea.Msg {
					if err := m.bandeja.Finalizar(bg(), doc.ID); err != nil {
						return errMsg{err}
					}
					return actionDoneMsg{note: "Trámite finalizado.", reload: viewBandeja}
				},
			}
		} else {
			m.setStatus("Este documento no puede finalizarse.", true)
		}
	}
	return m, nil
}

// openResponderWithCatalogs makes sure the tipo catalog is loaded before the
// respond form opens; the bandeja composite does not include it.
func (m *appModel) openResponderWithCatalogs(doc model.Documento) tea.Cmd {
	if len(m.emitir.Tipos()) == 0 {
		m.loading = true
		return func() tea.Msg {
			if err := m.emitir.Init(bg()); err != nil {
				return errMsg{err}
			}
			return loadedMsg{viewEmitir}
		}
	}
	m.openResponderForm(doc)
	return nil
}

func (m *appModel) handleEmitirKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "n":
		return m, m.openEmitirForm()
	case "a":
		return m, m.cycleEmitirArea()
	case "]", "right":
		m.loading = true
		return m, func() tea.Msg {
			if err := m.emitir.NextPage(bg()); err != nil {
				return errMsg{err}
			}
			return loadedMsg{viewEmitir}
		}
	case "[", "left":
		m.loading = true
		return m, func() tea.Msg {
			if err := m.emitir.PrevPage(bg()); err != nil {
				return errMsg{err}
			}
			return loadedMsg{viewEmitir}
		}
	}

	doc, ok := m.selectedEmitirDoc()
	if !ok {
		return m, nil
	}
	switch key {
	case "enter", "s":
		return m, m.seguimientoCmd(doc.ID)
	case "d":
		if hasAction(m.emitir.RowActions(doc), compose.ActionDerivar) {
			m.openDerivarForm(doc, viewEmitir)
		} else {
			m.setStatus("Este documento no puede derivarse desde aquí.", true)
		}
	}
	return m, nil
}

// cycleEmitirArea rotates the acting area through the permitted ones.
func (m *appModel) cycleEmitirArea() tea.Cmd {
	areas := m.emitir.OficinasPermitidas()
	if len(areas) < 2 {
		return nil
	}
	next := areas[0].ID
	for i, a := range areas {
		if a.ID == m.emitir.SelectedAreaID() {
			next = areas[(i+1)%len(areas)].ID
			break
		}
	}
	m.loading = true
	return func() tea.Msg {
		if err := m.emitir.SetArea(bg(), next); err != nil {
			return errMsg{err}
		}
		return loadedMsg{viewEmitir}
	}
}

func (m *appModel) handleAdminKey(key string) (tea.Model, tea.Cmd) {
	v := m.view
	i := m.cursor[v]

	switch key {
	case "n":
		switch v {
		case viewAdminAreas:
			m.openAreaForm(nil)
		case viewAdminTipos:
			m.openTipoForm(nil)
		case viewAdminUsuarios:
			m.openUsuarioForm(nil)
		}
	case "e", "enter":
		switch v {
		case viewAdminAreas:
			if rows := m.areas.Areas(); i < len(rows) {
				m.openAreaForm(&rows[i])
			}
		case viewAdminTipos:
			if rows := m.tipos.Tipos(); i < len(rows) {
				m.openTipoForm(&rows[i])
			}
		case viewAdminUsuarios:
			if rows := m.usuarios.Usuarios(); i < len(rows) {
				m.openUsuarioForm(&rows[i])
			}
		}
	case "x":
		m.openDeactivateConfirm(v, i)
	}
	return m, nil
}

func (m *appModel) openDeactivateConfirm(v view, i int) {
	var name string
	var id int
	switch v {
	case viewAdminAreas:
		rows := m.areas.Areas()
		if i >= len(rows) {
			return
		}
		name, id = rows[i].Nombre, rows[i].ID
	case viewAdminTipos:
		rows := m.tipos.Tipos()
		if i >= len(rows) {
			return
		}
		name, id = rows[i].Nombre, rows[i].ID
	case viewAdminUsuarios:
		rows := m.usuarios.Usuarios()
		if i >= len(rows) {
			return
		}
		name, id = rows[i].NombreUsuario, rows[i].ID
	default:
		return
	}

	m.confirm = &confirmState{
		title: "Desactivar " + name,
		body:  "La fila quedará con estado INACTIVO y dejará de ofrecerse en los selectores. ¿Continuar?",
		run: func() tea.Msg {
			var err error
			switch v {
			case viewAdminAreas:
				err = m.areas.Deactivate(bg(), id)
			case viewAdminTipos:
				err = m.tipos.Deactivate(bg(), id)
			case viewAdminUsuarios:
				err = m.usuarios.Deactivate(bg(), id)
			}
			if err != nil {
				return errMsg{err}
			}
			return actionDoneMsg{note: "Desactivado.", reload: v}
		},
	}
}

func (m *appModel) handleConfirmKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "esc":
		m.confirm = nil
	case "tab", "left", "right":
		if m.confirm.focus == confirmFocusConfirm {
			m.confirm.focus = confirmFocusCancel
		} else {
			m.confirm.focus = confirmFocusConfirm
		}
	case "enter":
		if m.confirm.focus == confirmFocusCancel {
			m.confirm = nil
			return m, nil
		}
		run := m.confirm.run
		m.confirm = nil
		m.loading = true
		return m, run
	}
	return m, nil
}
