package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/RonaldoHorta159/tramite-cli/internal/compose"
)

func (m *appModel) View() string {
	base := m.baseView()

	var modal string
	switch {
	case m.confirm != nil:
		modal = renderConfirmModal(m.width, m.confirm.title, m.confirm.body, "Aceptar", "Cancelar", m.confirm.focus)
	case m.modalForm != nil:
		modal = m.modalForm.view(m.width)
	case m.seguimiento != nil:
		modal = m.seguimientoModal()
	}
	if modal != "" {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
	}
	return base
}

func (m *appModel) baseView() string {
	switch m.view {
	case viewLogin:
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.login.view(m.width))
	case viewMenu:
		return m.menuView()
	case viewHelp:
		return m.helpView()
	default:
		return m.tableScreen()
	}
}

func (m *appModel) header(title string) string {
	who := ""
	if u := m.sess.User(); u != nil {
		area := "Sin área"
		if u.PrimaryArea != nil {
			area = u.PrimaryArea.Nombre
		}
		who = styleMuted().Render(fmt.Sprintf("%s · %s · %s", u.NombreUsuario, u.Rol, area))
	}
	return styleTitle().Render(title) + "   " + who
}

func (m *appModel) statusLine() string {
	if m.loading {
		return m.spin.View() + " cargando..."
	}
	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return styleError().Render(m.status)
	}
	return styleSuccess().Render(m.status)
}

func (m *appModel) menuView() string {
	entries := m.menuEntries()
	var b strings.Builder
	b.WriteString(m.header("Mesa de Partes Digital"))
	b.WriteString("\n\n")
	for i, e := range entries {
		line := "  " + e.label
		if i == m.menuIdx {
			line = lipgloss.NewStyle().
				Foreground(colorSelectedFg).
				Background(colorSelectedBg).
				Bold(true).
				Render("▸ " + e.label)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styleMuted().Render("↑/↓: mover   enter: abrir   ctrl+l: cerrar sesión   q: salir"))
	if s := m.statusLine(); s != "" {
		b.WriteString("\n\n" + s)
	}
	return b.String()
}

func (m *appModel) tableScreen() string {
	title, tv, help := m.currentTable()

	var b strings.Builder
	b.WriteString(m.header(title))
	b.WriteString("\n\n")
	b.WriteString(renderTable(tv, m.cursor[m.view], m.width))
	b.WriteString("\n\n")
	b.WriteString(styleMuted().Render(help))
	if m.view == viewEmitir && m.emitir.LastPage() > 1 {
		b.WriteString("\n")
		b.WriteString(styleMuted().Render(fmt.Sprintf("página %d de %d", m.emitir.Page()+1, m.emitir.LastPage())))
	}
	if s := m.statusLine(); s != "" {
		b.WriteString("\n" + s)
	}
	return b.String()
}

func (m *appModel) currentTable() (string, compose.TableView, string) {
	const nav = "↑/↓: mover   r: recargar   esc: menú"
	switch m.view {
	case viewBandeja:
		return "Bandeja de Entrada", m.bandeja.View(),
			"s: seguimiento   c: recepcionar   d: derivar   o: responder   f: finalizar   " + nav
	case viewPendientes:
		return "Documentos Pendientes", m.bandeja.PendientesView(),
			"c: recepcionar   s: seguimiento   " + nav
	case viewEmitir:
		return "Trámites Emitidos", m.emitir.View(),
			"n: emitir   d: derivar   s: seguimiento   a: cambiar área   [/]: página   " + nav
	case viewAdminAreas:
		return "Mantenimiento de Áreas", m.areas.View(),
			"n: nueva   e: editar   x: desactivar   " + nav
	case viewAdminTipos:
		return "Tipos de Documento", m.tipos.View(),
			"n: nuevo   e: editar   x: desactivar   " + nav
	case viewAdminUsuarios:
		return "Usuarios", m.usuarios.View(),
			"n: nuevo   e: editar   x: desactivar   " + nav
	}
	return "", compose.TableView{}, nav
}

func (m *appModel) seguimientoModal() string {
	d := m.seguimiento
	tv := compose.SeguimientoView(d)

	var b strings.Builder
	b.WriteString(styleMuted().Render(d.CodigoUnico + " · " + d.Asunto))
	b.WriteString("\n\n")
	b.WriteString(renderTable(tv, -1, modalBodyWidth(m.width)))
	b.WriteString("\n\n")
	b.WriteString(styleMuted().Render("esc: cerrar"))
	return renderModalBox(m.width, "Seguimiento del Documento", b.String())
}

func (m *appModel) helpView() string {
	if m.helpBody != "" {
		return renderMarkdown(m.helpBody, min(m.width-4, 90)) +
			"\n\n" + styleMuted().Render("esc: volver")
	}

	topics := helpTopics()
	var b strings.Builder
	b.WriteString(m.header("Ayuda"))
	b.WriteString("\n\n")
	for i, topic := range topics {
		line := "  " + topic
		if i == m.helpIdx {
			line = lipgloss.NewStyle().
				Foreground(colorSelectedFg).
				Background(colorSelectedBg).
				Render("▸ " + topic)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styleMuted().Render("enter: leer   esc: menú"))
	return b.String()
}
