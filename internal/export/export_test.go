package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/RonaldoHorta159/tramite-cli/internal/model"
)

func sampleDoc() *model.Documento {
	now := time.Date(2025, 11, 3, 10, 0, 0, 0, time.UTC)
	mesa := &model.Area{ID: 1, Nombre: "Mesa de Partes"}
	ti := &model.Area{ID: 2, Nombre: "Oficina de TI"}
	return &model.Documento{
		ID:            42,
		CodigoUnico:   "DOC-2025-000042",
		NroDocumento:  "INFORME 7",
		CreatedAt:     now,
		TipoDocumento: &model.TipoDocumento{ID: 3, Nombre: "Informe"},
		Asunto:        "Renovación de licencias",
		NroFolios:     4,
		AreaOrigen:    mesa,
		AreaActual:    ti,
		EstadoGeneral: model.EstadoEnTramite,
		Movimientos: []model.Movimiento{
			{
				ID:          1,
				CreatedAt:   now,
				AreaOrigen:  mesa,
				AreaDestino: ti,
				Proveido:    "Para atención y respuesta",
			},
		},
	}
}

func TestRenderDocumentoMarkdown(t *testing.T) {
	t.Parallel()

	md, err := RenderDocumentoMarkdown(sampleDoc())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{
		"# INFORME 7",
		"- Código único: DOC-2025-000042",
		"- Asunto: Renovación de licencias",
		"- Folios: 4",
		"## Seguimiento",
		"- De: Mesa de Partes",
		"- Para: Oficina de TI",
		"Para atención y respuesta",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}

func TestRenderDocumentoMarkdown_ClosedNotice(t *testing.T) {
	t.Parallel()

	d := sampleDoc()
	d.EstadoGeneral = model.EstadoFinalizado
	md, err := RenderDocumentoMarkdown(d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(md, "FINALIZADO (cerrado)") {
		t.Fatalf("closed documents must carry the cerrado mark:\n%s", md)
	}

	open, err := RenderDocumentoMarkdown(sampleDoc())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(open, "(cerrado)") {
		t.Fatal("open documents must not carry the cerrado mark")
	}
}

func TestRenderDocumentoMarkdown_NilDoc(t *testing.T) {
	t.Parallel()

	if _, err := RenderDocumentoMarkdown(nil); err == nil {
		t.Fatal("expected error for nil documento")
	}
}

func TestWriteDocumento(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	res, err := WriteDocumento(sampleDoc(), dir, WriteOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := filepath.Join(dir, "DOC-2025-000042.md")
	if len(res.Written) != 1 || res.Written[0] != want {
		t.Fatalf("written = %v, want [%s]", res.Written, want)
	}
	b, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !strings.Contains(string(b), "# INFORME 7") {
		t.Fatal("exported file missing title")
	}

	// A second export without --overwrite must refuse.
	if _, err := WriteDocumento(sampleDoc(), dir, WriteOptions{}); err == nil {
		t.Fatal("expected file-exists error")
	}
	if _, err := WriteDocumento(sampleDoc(), dir, WriteOptions{Overwrite: true}); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}
}
