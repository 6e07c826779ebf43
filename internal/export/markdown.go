package export

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/RonaldoHorta159/tramite-cli/internal/estado"
	"github.com/RonaldoHorta159/tramite-cli/internal/model"
)

// RenderDocumentoMarkdown produces a printable dossier of a document: its
// registry data plus the full routing history. The layout mirrors the cargo
// sheets offices print from the web client.
func RenderDocumentoMarkdown(d *model.Documento) (string, error) {
	if d == nil {
		return "", fmt.Errorf("missing documento")
	}

	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	title := strings.TrimSpace(d.NroDocumento)
	if title == "" {
		title = strings.TrimSpace(d.CodigoUnico)
	}
	writeLn("# " + title)
	writeLn("")

	writeLn("## Registro")
	writeLn("")
	writeLn("- Código único: " + d.CodigoUnico)
	if d.TipoDocumento != nil {
		writeLn("- Tipo: " + d.TipoDocumento.Nombre)
	}
	writeLn("- Asunto: " + strings.TrimSpace(d.Asunto))
	writeLn(fmt.Sprintf("- Folios: %d", d.NroFolios))
	if d.AreaOrigen != nil {
		writeLn("- Área de origen: " + d.AreaOrigen.Nombre)
	}
	if d.AreaActual != nil {
		writeLn("- Área actual: " + d.AreaActual.Nombre)
	}
	if estado.IsFinal(d.EstadoGeneral) {
		writeLn("- Estado: " + d.EstadoGeneral + " (cerrado)")
	} else {
		writeLn("- Estado: " + d.EstadoGeneral)
	}
	if d.DocumentoRespuestaID != nil {
		writeLn(fmt.Sprintf("- Responde al documento: %d", *d.DocumentoRespuestaID))
	}
	if d.ArchivoPDF != nil && strings.TrimSpace(*d.ArchivoPDF) != "" {
		writeLn("- Archivo: " + strings.TrimSpace(*d.ArchivoPDF))
	}
	writeLn("- Registrado: " + d.CreatedAt.UTC().Format(time.RFC3339))

	if len(d.Movimientos) > 0 {
		writeLn("")
		writeLn("## Seguimiento")
		writeLn("")
		for _, mv := range d.Movimientos {
			writeLn("### " + mv.CreatedAt.UTC().Format(time.RFC3339))
			writeLn("")
			writeLn("- De: " + areaName(mv.AreaOrigen))
			writeLn("- Para: " + areaName(mv.AreaDestino))
			if strings.TrimSpace(mv.EstadoMovimiento) != "" {
				writeLn("- Estado: " + strings.TrimSpace(mv.EstadoMovimiento))
			}
			prov := strings.TrimSpace(mv.Proveido)
			if prov == "" {
				prov = "(sin proveído)"
			}
			writeLn("")
			writeLn(prov)
			writeLn("")
		}
	}

	return buf.String(), nil
}

func areaName(a *model.Area) string {
	if a == nil {
		return "—"
	}
	return a.Nombre
}
