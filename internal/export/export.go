package export

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/RonaldoHorta159/tramite-cli/internal/model"
)

type WriteOptions struct {
	Overwrite bool
}

type WriteResult struct {
	Written []string `json:"written"`
}

// WriteDocumento renders the dossier and writes it under toDir as
// <codigo_unico>.md.
func WriteDocumento(d *model.Documento, toDir string, opt WriteOptions) (WriteResult, error) {
	toDir = strings.TrimSpace(toDir)
	if toDir == "" {
		return WriteResult{}, errors.New("missing --to")
	}
	toDir = filepath.Clean(toDir)

	md, err := RenderDocumentoMarkdown(d)
	if err != nil {
		return WriteResult{}, err
	}

	if err := os.MkdirAll(toDir, 0o755); err != nil {
		return WriteResult{}, err
	}
	name := strings.TrimSpace(d.CodigoUnico)
	if name == "" {
		name = "documento"
	}
	outPath := filepath.Join(toDir, name+".md")
	if err := writeFile(outPath, []byte(md), opt.Overwrite); err != nil {
		return WriteResult{}, err
	}
	return WriteResult{Written: []string{outPath}}, nil
}

func writeFile(path string, b []byte, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errors.New("file exists (use --overwrite): " + path)
		}
	}
	return os.WriteFile(path, b, 0o644)
}
