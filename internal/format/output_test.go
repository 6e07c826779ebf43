package format

import (
	"bytes"
	"strings"
	"testing"

	"github.com/RonaldoHorta159/tramite-cli/internal/compose"
)

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, map[string]any{"data": []int{1, 2}}, "json", false); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != `{"data":[1,2]}` {
		t.Fatalf("got %q", got)
	}
}

func TestWriteJSONPretty(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, map[string]any{"data": 1}, "", true); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !strings.Contains(buf.String(), "\n  \"data\": 1\n") {
		t.Fatalf("not indented: %q", buf.String())
	}
}

func TestWriteTable(t *testing.T) {
	tv := compose.TableView{
		Columns: []compose.Column{{Key: "codigo", Title: "Código"}, {Key: "asunto", Title: "Asunto"}},
		Rows:    []compose.Row{{ID: 1, Cells: []string{"DOC-001", "Solicitud"}}},
	}
	var buf bytes.Buffer
	if err := Write(&buf, tv, "table", false); err != nil {
		t.Fatalf("write: %v", err)
	}
	for _, want := range []string{"Código", "Asunto", "DOC-001"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("table output missing %q:\n%s", want, buf.String())
		}
	}
}

func TestWriteUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, 1, "yaml", false); err == nil {
		t.Fatal("expected error for unknown format")
	}
}
