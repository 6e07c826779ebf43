package tui

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/RonaldoHorta159/tramite-cli/internal/api"
	"github.com/RonaldoHorta159/tramite-cli/internal/compose"
	"github.com/RonaldoHorta159/tramite-cli/internal/model"
)

func (m *appModel) newLoginForm() *form {
	f := &form{
		title:       "Iniciar Sesión",
		submitLabel: "entrar",
		fields: []formField{
			textField("usuario", "Usuario", m.sess.RememberedUser(bg())),
			secretField("password", "Contraseña"),
			toggleField("remember", "Recordar usuario", m.sess.RememberedUser(bg()) != ""),
		},
	}
	f.submit = func(f *form) tea.Cmd {
		usuario, password := f.value("usuario"), f.value("password")
		remember := f.toggled("remember")
		m.loading = true
		return func() tea.Msg {
			if err := m.sess.Login(bg(), m.c, usuario, password, remember); err != nil {
				return errMsg{err}
			}
			return loggedInMsg{}
		}
	}
	f.focusField(0)
	return f
}

func areaChoices(areas []model.Area) []choice {
	out := make([]choice, 0, len(areas))
	for _, a := range areas {
		out = append(out, choice{id: a.ID, label: a.Nombre})
	}
	return out
}

func tipoChoices(tipos []model.TipoDocumento) []choice {
	out := make([]choice, 0, len(tipos))
	for _, t := range tipos {
		out = append(out, choice{id: t.ID, label: t.Nombre})
	}
	return out
}

// withEmptyChoice prepends the unselected option so the user must pick one
// deliberately.
func withEmptyChoice(cs []choice) []choice {
	return append([]choice{{id: 0, label: "— seleccionar —"}}, cs...)
}

func (m *appModel) openEmitirForm() tea.Cmd {
	if err := m.emitir.OpenCreateForm(bg()); err != nil {
		m.setStatus(err.Error(), true)
		return nil
	}

	f := &form{
		title:       "Emitir Trámite",
		submitLabel: "emitir",
		note:        "Nro de documento: " + m.emitir.Correlativo.Value(),
		fields: []formField{
			choiceField("tipo", "Tipo de Documento", withEmptyChoice(tipoChoices(m.emitir.Tipos())), 0),
			textField("asunto", "Asunto", ""),
			textField("folios", "Nro de Folios", "1"),
			choiceField("destino", "Área de Destino", withEmptyChoice(areaChoices(m.emitir.Areas())), 0),
			textField("archivo", "Archivo PDF (ruta, opcional)", ""),
		},
	}
	f.changed = func(f *form, key string) tea.Cmd {
		if key != "tipo" {
			return nil
		}
		m.emitir.Form.TipoDocumentoID = f.choiceID("tipo")
		k := compose.CorrelativoKey{AreaID: m.emitir.SelectedAreaID(), TipoDocumentoID: f.choiceID("tipo")}
		f.note = "Nro de documento: " + compose.CorrelativoCargando
		return correlativoCmd(&m.emitir.Correlativo, m.c, k)
	}
	f.submit = func(f *form) tea.Cmd {
		m.emitir.Form.TipoDocumentoID = f.choiceID("tipo")
		m.emitir.Form.Asunto = f.value("asunto")
		m.emitir.Form.NroFolios = atoiOr(f.value("folios"), 0)
		m.emitir.Form.AreaDestinoID = f.choiceID("destino")
		if path := f.value("archivo"); path != "" {
			up, err := uploadFromPath(path)
			if err != nil {
				m.setStatus(err.Error(), true)
				return nil
			}
			m.emitir.Form.Archivo = up
		}
		m.loading = true
		return func() tea.Msg {
			if err := m.emitir.Create(bg()); err != nil {
				return errMsg{err}
			}
			return actionDoneMsg{note: "Trámite emitido.", reload: viewEmitir}
		}
	}
	f.focusField(0)
	m.modalForm = f

	// Key the correlativo to the acting area straight away.
	key := compose.CorrelativoKey{AreaID: m.emitir.SelectedAreaID(), TipoDocumentoID: 0}
	return correlativoCmd(&m.emitir.Correlativo, m.c, key)
}

func (m *appModel) openDerivarForm(doc model.Documento, reload view) {
	areas := m.bandeja.Areas()
	if reload == viewEmitir {
		areas = m.emitir.Areas()
	}

	f := &form{
		title:       "Derivar " + doc.CodigoUnico,
		submitLabel: "derivar",
		fields: []formField{
			choiceField("destino", "Área de Destino", withEmptyChoice(areaChoices(areas)), 0),
			textField("proveido", "Proveído", ""),
		},
	}
	f.submit = func(f *form) tea.Cmd {
		destino, proveido := f.choiceID("destino"), f.value("proveido")
		m.loading = true
		return func() tea.Msg {
			var err error
			if reload == viewEmitir {
				err = m.emitir.Derivar(bg(), doc.ID, destino, proveido)
			} else {
				err = m.bandeja.Derivar(bg(), doc.ID, destino, proveido)
			}
			if err != nil {
				return errMsg{err}
			}
			return actionDoneMsg{note: "Documento derivado.", reload: reload}
		}
	}
	f.focusField(0)
	m.modalForm = f
}

func (m *appModel) openResponderForm(doc model.Documento) {
	if err := m.bandeja.OpenRespuestaForm(doc); err != nil {
		m.setStatus(err.Error(), true)
		return
	}

	f := &form{
		title:       "Responder " + doc.CodigoUnico,
		submitLabel: "responder",
		note:        "Nro de documento: seleccione un tipo",
		fields: []formField{
			choiceField("tipo", "Tipo de Documento", withEmptyChoice(tipoChoices(m.emitir.Tipos())), 0),
			textField("asunto", "Asunto", ""),
			textField("folios", "Nro de Folios", "1"),
			choiceField("destino", "Área de Destino", withEmptyChoice(areaChoices(m.bandeja.Areas())), 0),
			textField("archivo", "Archivo PDF (ruta, opcional)", ""),
		},
	}
	f.changed = func(f *form, key string) tea.Cmd {
		if key != "tipo" {
			return nil
		}
		tipoID := f.choiceID("tipo")
		m.bandeja.Form.TipoDocumentoID = tipoID
		if tipoID == 0 || doc.AreaActual == nil {
			f.note = "Nro de documento: seleccione un tipo"
			return nil
		}
		f.note = "Nro de documento: " + compose.CorrelativoCargando
		k := compose.CorrelativoKey{AreaID: doc.AreaActual.ID, TipoDocumentoID: tipoID}
		return correlativoCmd(&m.bandeja.Correlativo, m.c, k)
	}
	f.submit = func(f *form) tea.Cmd {
		m.bandeja.Form.TipoDocumentoID = f.choiceID("tipo")
		m.bandeja.Form.Asunto = f.value("asunto")
		m.bandeja.Form.NroFolios = atoiOr(f.value("folios"), 0)
		m.bandeja.Form.AreaDestinoID = f.choiceID("destino")
		if path := f.value("archivo"); path != "" {
			up, err := uploadFromPath(path)
			if err != nil {
				m.setStatus(err.Error(), true)
				return nil
			}
			m.bandeja.Form.Archivo = up
		}
		m.loading = true
		return func() tea.Msg {
			if err := m.bandeja.Responder(bg()); err != nil {
				return errMsg{err}
			}
			return actionDoneMsg{note: "Respuesta enviada.", reload: viewBandeja}
		}
	}
	f.focusField(0)
	m.modalForm = f
}

func (m *appModel) openAreaForm(editing *model.Area) {
	title := "Nueva Área"
	if editing != nil {
		title = "Editar Área"
		m.areas.OpenEditForm(*editing)
	} else {
		m.areas.OpenCreateForm()
	}

	fields := []formField{textField("nombre", "Nombre", m.areas.Form.Nombre)}
	if editing != nil {
		fields = append(fields, choiceField("estado", "Estado", []choice{
			{id: 1, label: model.EstadoActivo},
			{id: 2, label: model.EstadoInactivo},
		}, estadoChoiceID(m.areas.Form.Estado)))
	}

	f := &form{title: title, submitLabel: "guardar", fields: fields}
	f.submit = func(f *form) tea.Cmd {
		m.areas.Form.Nombre = f.value("nombre")
		if editing != nil {
			m.areas.Form.Estado = estadoFromChoice(f.choiceID("estado"))
		}
		m.loading = true
		return func() tea.Msg {
			if err := m.areas.Submit(bg()); err != nil {
				return errMsg{err}
			}
			return actionDoneMsg{note: "Área guardada.", reload: viewAdminAreas}
		}
	}
	f.focusField(0)
	m.modalForm = f
}

func (m *appModel) openTipoForm(editing *model.TipoDocumento) {
	title := "Nuevo Tipo de Documento"
	if editing != nil {
		title = "Editar Tipo de Documento"
		m.tipos.OpenEditForm(*editing)
	} else {
		m.tipos.OpenCreateForm()
	}

	fields := []formField{textField("nombre", "Nombre", m.tipos.Form.Nombre)}
	if editing != nil {
		fields = append(fields, choiceField("estado", "Estado", []choice{
			{id: 1, label: model.EstadoActivo},
			{id: 2, label: model.EstadoInactivo},
		}, estadoChoiceID(m.tipos.Form.Estado)))
	}

	f := &form{title: title, submitLabel: "guardar", fields: fields}
	f.submit = func(f *form) tea.Cmd {
		m.tipos.Form.Nombre = f.value("nombre")
		if editing != nil {
			m.tipos.Form.Estado = estadoFromChoice(f.choiceID("estado"))
		}
		m.loading = true
		return func() tea.Msg {
			if err := m.tipos.Submit(bg()); err != nil {
				return errMsg{err}
			}
			return actionDoneMsg{note: "Tipo guardado.", reload: viewAdminTipos}
		}
	}
	f.focusField(0)
	m.modalForm = f
}

func (m *appModel) openUsuarioForm(editing *model.Usuario) {
	title := "Nuevo Usuario"
	if editing != nil {
		title = "Editar Usuario"
		m.usuarios.OpenEditForm(*editing)
	} else {
		m.usuarios.OpenCreateForm()
	}
	uf := m.usuarios.Form

	rolIdx := 2 // Usuario
	if uf.Rol == model.RolAdministrador {
		rolIdx = 1
	}

	f := &form{
		title:       title,
		submitLabel: "guardar",
		fields: []formField{
			textField("nombres", "Nombres", uf.Nombres),
			textField("apellido_paterno", "Apellido Paterno", uf.ApellidoPaterno),
			textField("apellido_materno", "Apellido Materno", uf.ApellidoMaterno),
			textField("dni", "DNI", uf.DNI),
			textField("email", "Email", uf.Email),
			choiceField("area", "Área Principal", withEmptyChoice(areaChoices(m.usuarios.Areas())), atoiOr(uf.AreaID, 0)),
			textField("usuario", "Nombre de Usuario", uf.NombreUsuario),
			choiceField("rol", "Rol", []choice{
				{id: 1, label: model.RolAdministrador},
				{id: 2, label: model.RolUsuario},
			}, rolIdx),
			secretField("password", "Contraseña (vacía = mantener)"),
			secretField("password_confirmation", "Confirmar Contraseña"),
		},
	}
	f.submit = func(f *form) tea.Cmd {
		fm := &m.usuarios.Form
		fm.Nombres = f.value("nombres")
		fm.ApellidoPaterno = f.value("apellido_paterno")
		fm.ApellidoMaterno = f.value("apellido_materno")
		fm.DNI = f.value("dni")
		fm.Email = f.value("email")
		if id := f.choiceID("area"); id != 0 {
			fm.AreaID = strconv.Itoa(id)
		}
		fm.NombreUsuario = f.value("usuario")
		if f.choiceID("rol") == 1 {
			fm.Rol = model.RolAdministrador
		} else {
			fm.Rol = model.RolUsuario
		}
		fm.Password = f.value("password")
		fm.PasswordConfirmation = f.value("password_confirmation")
		m.loading = true
		return func() tea.Msg {
			if err := m.usuarios.Submit(bg()); err != nil {
				return errMsg{err}
			}
			return actionDoneMsg{note: "Usuario guardado.", reload: viewAdminUsuarios}
		}
	}
	f.focusField(0)
	m.modalForm = f
}

func estadoChoiceID(estado string) int {
	if estado == model.EstadoInactivo {
		return 2
	}
	return 1
}

func estadoFromChoice(id int) string {
	if id == 2 {
		return model.EstadoInactivo
	}
	return model.EstadoActivo
}

func atoiOr(s string, d int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return d
	}
	return n
}

func uploadFromPath(path string) (*api.Upload, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("no se pudo leer el archivo: %w", err)
	}
	return &api.Upload{Field: "archivo_pdf", Name: filepath.Base(path), R: bytes.NewReader(b)}, nil
}
