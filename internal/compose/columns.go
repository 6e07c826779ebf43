package compose

import (
	"github.com/RonaldoHorta159/tramite-cli/internal/model"
)

// Per-entity column definition sets. Kept declarative so screens share one
// table renderer; the cell text mirrors the browser client's columns
// (including its "N/A" fallbacks).

func BandejaColumns() []Column {
	return []Column{
		{Key: "codigo_unico", Title: "Código Único", Width: 16},
		{Key: "nro_libro", Title: "N° Libro", Width: 9},
		{Key: "created_at", Title: "Fecha", Width: 11},
		{Key: "tipo_documento", Title: "Documento", Width: 14},
		{Key: "asunto", Title: "Asunto", Width: 28},
		{Key: "nro_folios", Title: "Folios", Width: 7},
		{Key: "area_origen", Title: "Origen", Width: 16},
		{Key: "estado_general", Title: "Estado", Width: 11},
		{Key: "proveido", Title: "Proveído", Width: 20},
	}
}

func BandejaRow(d model.Documento) Row {
	return Row{
		ID: d.ID,
		Cells: []string{
			d.CodigoUnico,
			strOrNA(d.NroLibro),
			formatDate(d.CreatedAt),
			tipoNombre(d.TipoDocumento),
			d.Asunto,
			itoa(d.NroFolios),
			areaNombre(d.AreaOrigen),
			d.EstadoGeneral,
			proveidoOf(d),
		},
		Badge: EstadoBadge(d.EstadoGeneral),
	}
}

func EmitidosColumns() []Column {
	return []Column{
		{Key: "codigo_unico", Title: "Código Único", Width: 16},
		{Key: "nro_documento", Title: "N° Doc.", Width: 16},
		{Key: "created_at", Title: "Fecha", Width: 11},
		{Key: "tipo_documento", Title: "Documento", Width: 14},
		{Key: "asunto", Title: "Asunto", Width: 28},
		{Key: "nro_folios", Title: "Nro Folios", Width: 10},
		{Key: "area_actual", Title: "Destino", Width: 16},
		{Key: "estado_general", Title: "Estado", Width: 11},
		{Key: "archivo_pdf", Title: "PDF", Width: 4},
		{Key: "proveido", Title: "Proveído", Width: 20},
	}
}

func EmitidoRow(d model.Documento) Row {
	pdf := "N/A"
	if d.ArchivoPDF != nil && *d.ArchivoPDF != "" {
		pdf = "PDF"
	}
	return Row{
		ID: d.ID,
		Cells: []string{
			d.CodigoUnico,
			orNA(d.NroDocumento),
			formatDate(d.CreatedAt),
			tipoNombre(d.TipoDocumento),
			d.Asunto,
			itoa(d.NroFolios),
			areaNombre(d.AreaActual),
			d.EstadoGeneral,
			pdf,
			proveidoOf(d),
		},
		Badge: EstadoBadge(d.EstadoGeneral),
	}
}

func PendientesColumns() []Column {
	return []Column{
		{Key: "codigo_unico", Title: "Código Único", Width: 16},
		{Key: "created_at", Title: "Fecha", Width: 11},
		{Key: "area_origen", Title: "Origen", Width: 16},
		{Key: "asunto", Title: "Asunto", Width: 30},
	}
}

func PendienteRow(d model.Documento) Row {
	return Row{
		ID: d.ID,
		Cells: []string{
			d.CodigoUnico,
			formatDate(d.CreatedAt),
			areaNombre(d.AreaOrigen),
			d.Asunto,
		},
		Badge: EstadoBadge(d.EstadoGeneral),
	}
}

func SeguimientoColumns() []Column {
	return []Column{
		{Key: "id", Title: "ID", Width: 5},
		{Key: "codigo_unico", Title: "Código Único", Width: 16},
		{Key: "created_at", Title: "F. / Envío", Width: 17},
		{Key: "area_origen", Title: "Origen", Width: 16},
		{Key: "area_destino", Title: "Destino", Width: 16},
		{Key: "documento_completo", Title: "Documento", Width: 16},
		{Key: "asunto", Title: "Asunto", Width: 24},
		{Key: "nro_folios", Title: "Nro Folios", Width: 10},
		{Key: "archivo_adjunto", Title: "PDF", Width: 4},
		{Key: "estado_movimiento", Title: "Estado", Width: 11},
		{Key: "proveido", Title: "Observación / Proveído", Width: 24},
	}
}

func SeguimientoRow(m model.Movimiento) Row {
	adj := "-"
	if m.ArchivoAdjunto != nil && *m.ArchivoAdjunto != "" {
		adj = "PDF"
	}
	return Row{
		ID: m.ID,
		Cells: []string{
			itoa(m.ID),
			m.CodigoUnico,
			formatDateTime(m.CreatedAt),
			areaNombre(m.AreaOrigen),
			areaNombre(m.AreaDestino),
			orNA(m.DocumentoCompleto),
			m.Asunto,
			itoa(m.NroFolios),
			adj,
			m.EstadoMovimiento,
			orNA(m.Proveido),
		},
		Badge: EstadoBadge(m.EstadoMovimiento),
	}
}

func AreaColumns() []Column {
	return []Column{
		{Key: "id", Title: "ID", Width: 5},
		{Key: "nombre", Title: "Nombre", Width: 30},
		{Key: "estado", Title: "Estado", Width: 10},
	}
}

func AreaRow(a model.Area) Row {
	badge := BadgeSuccess
	if a.Estado != model.EstadoActivo {
		badge = BadgeDanger
	}
	return Row{ID: a.ID, Cells: []string{itoa(a.ID), a.Nombre, a.Estado}, Badge: badge}
}

func TipoColumns() []Column {
	return []Column{
		{Key: "id", Title: "ID", Width: 5},
		{Key: "nombre", Title: "Nombre", Width: 30},
		{Key: "estado", Title: "Estado", Width: 10},
	}
}

func TipoRow(t model.TipoDocumento) Row {
	badge := BadgeSuccess
	if t.Estado != model.EstadoActivo {
		badge = BadgeDanger
	}
	return Row{ID: t.ID, Cells: []string{itoa(t.ID), t.Nombre, t.Estado}, Badge: badge}
}

func UsuarioColumns() []Column {
	return []Column{
		{Key: "dni", Title: "DNI", Width: 10},
		{Key: "nombre_usuario", Title: "Usuario", Width: 14},
		{Key: "email", Title: "Email", Width: 24},
		{Key: "primary_area", Title: "Área Principal", Width: 18},
		{Key: "rol", Title: "Rol", Width: 14},
		{Key: "estado", Title: "Estado", Width: 10},
		{Key: "created_at", Title: "Fecha de Creación", Width: 17},
	}
}

func UsuarioRow(u model.Usuario) Row {
	area := "No Asignada"
	if u.PrimaryArea != nil {
		area = u.PrimaryArea.Nombre
	}
	badge := BadgeSuccess
	if u.Estado != model.EstadoActivo {
		badge = BadgeDanger
	}
	return Row{
		ID: u.ID,
		Cells: []string{
			u.Empleado.DNI,
			u.NombreUsuario,
			u.Empleado.Email,
			area,
			u.Rol,
			u.Estado,
			formatDate(u.CreatedAt),
		},
		Badge: badge,
	}
}
