package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/RonaldoHorta159/tramite-cli/internal/api"
	"github.com/RonaldoHorta159/tramite-cli/internal/compose"
	"github.com/RonaldoHorta159/tramite-cli/internal/export"
)

func newDocumentosCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "documentos",
		Short: "Document commands",
	}
	cmd.AddCommand(newDocumentosListCmd(app))
	cmd.AddCommand(newDocumentosShowCmd(app))
	cmd.AddCommand(newDocumentosEmitirCmd(app))
	cmd.AddCommand(newDocumentosDerivarCmd(app))
	cmd.AddCommand(newDocumentosRecepcionarCmd(app))
	cmd.AddCommand(newDocumentosResponderCmd(app))
	cmd.AddCommand(newDocumentosFinalizarCmd(app))
	cmd.AddCommand(newDocumentosSeguimientoCmd(app))
	cmd.AddCommand(newDocumentosCorrelativoCmd(app))
	cmd.AddCommand(newDocumentosExportarCmd(app))
	return cmd
}

func docIDArg(args []string) (int, error) {
	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("id de documento inválido: %q", args[0])
	}
	return id, nil
}

func newDocumentosListCmd(app *App) *cobra.Command {
	var area int
	var page int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List emitted documents (admins see every area)",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, sess, err := requireAuth(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			ctx := cmd.Context()

			e := compose.NewEmitir(c, sess)
			if err := e.Init(ctx); err != nil {
				return writeErr(cmd, err)
			}
			if area != 0 {
				if err := e.SetArea(ctx, area); err != nil {
					return writeErr(cmd, err)
				}
			}
			if page > 0 {
				if err := e.SetPage(ctx, page-1); err != nil {
					return writeErr(cmd, err)
				}
			}

			if app.Format == "table" {
				return writeOut(cmd, app, e.View())
			}
			return writeOut(cmd, app, map[string]any{"data": e.Docs(), "meta": map[string]any{
				"page":     e.Page() + 1,
				"lastPage": e.LastPage(),
			}})
		},
	}

	cmd.Flags().IntVar(&area, "area", 0, "Acting area (defaults to the primary one)")
	cmd.Flags().IntVar(&page, "page", 0, "Page to fetch (1-based)")
	return cmd
}

func newDocumentosShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one document with its full movement history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := requireAuth(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id, err := docIDArg(args)
			if err != nil {
				return writeErr(cmd, err)
			}
			d, err := c.Documento(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": d})
		},
	}
	return cmd
}

func newDocumentosEmitirCmd(app *App) *cobra.Command {
	var area, tipo, folios, destino int
	var asunto, archivo string

	cmd := &cobra.Command{
		Use:   "emitir",
		Short: "Create and send a new document",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, sess, err := requireAuth(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			ctx := cmd.Context()

			e := compose.NewEmitir(c, sess)
			if err := e.Init(ctx); err != nil {
				return writeErr(cmd, err)
			}
			if area != 0 {
				if err := e.SetArea(ctx, area); err != nil {
					return writeErr(cmd, err)
				}
			}
			if err := e.OpenCreateForm(ctx); err != nil {
				return writeErr(cmd, err)
			}

			e.SetFormTipo(ctx, tipo)
			e.Form.Asunto = asunto
			e.Form.NroFolios = folios
			e.Form.AreaDestinoID = destino
			if archivo != "" {
				up, err := loadUpload(archivo)
				if err != nil {
					return writeErr(cmd, err)
				}
				e.Form.Archivo = up
			}

			if err := e.Create(ctx); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"created":      true,
				"nroDocumento": e.Correlativo.Value(),
			}})
		},
	}

	cmd.Flags().IntVar(&area, "area", 0, "Emitting area (defaults to the primary one)")
	cmd.Flags().IntVar(&tipo, "tipo", 0, "Document type id")
	cmd.Flags().StringVar(&asunto, "asunto", "", "Subject")
	cmd.Flags().IntVar(&folios, "folios", 1, "Folio count")
	cmd.Flags().IntVar(&destino, "destino", 0, "Destination area id")
	cmd.Flags().StringVar(&archivo, "archivo", "", "PDF file to attach")
	_ = cmd.MarkFlagRequired("tipo")
	_ = cmd.MarkFlagRequired("asunto")
	_ = cmd.MarkFlagRequired("destino")
	return cmd
}

func loadUpload(path string) (*api.Upload, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("no se pudo leer el archivo: %w", err)
	}
	return &api.Upload{Field: "archivo_pdf", Name: filepath.Base(path), R: bytes.NewReader(b)}, nil
}

func newDocumentosDerivarCmd(app *App) *cobra.Command {
	var destino int
	var proveido string

	cmd := &cobra.Command{
		Use:   "derivar <id>",
		Short: "Route a document to another area",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, sess, err := requireAuth(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id, err := docIDArg(args)
			if err != nil {
				return writeErr(cmd, err)
			}
			b := compose.NewBandeja(c, sess)
			if err := b.Derivar(cmd.Context(), id, destino, proveido); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"derivado": true}})
		},
	}

	cmd.Flags().IntVar(&destino, "destino", 0, "Destination area id")
	cmd.Flags().StringVar(&proveido, "proveido", "", "Routing instruction for the destination")
	_ = cmd.MarkFlagRequired("destino")
	_ = cmd.MarkFlagRequired("proveido")
	return cmd
}

func newDocumentosRecepcionarCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recepcionar <id>",
		Short: "Formally receive a pending document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, sess, err := requireAuth(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id, err := docIDArg(args)
			if err != nil {
				return writeErr(cmd, err)
			}
			b := compose.NewBandeja(c, sess)
			msg, err := b.Recepcionar(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"message": msg}})
		},
	}
	return cmd
}

func newDocumentosResponderCmd(app *App) *cobra.Command {
	var tipo, folios, destino int
	var asunto, archivo string

	cmd := &cobra.Command{
		Use:   "responder <id>",
		Short: "Answer a received document with a new linked document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, sess, err := requireAuth(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id, err := docIDArg(args)
			if err != nil {
				return writeErr(cmd, err)
			}
			ctx := cmd.Context()

			// The respond flow needs the current row: the permission gate and
			// the correlativo key both come from it.
			d, err := c.Documento(ctx, id)
			if err != nil {
				return writeErr(cmd, err)
			}

			b := compose.NewBandeja(c, sess)
			if err := b.OpenRespuestaForm(*d); err != nil {
				return writeErr(cmd, err)
			}
			b.SetRespuestaTipo(ctx, tipo)
			b.Form.Asunto = asunto
			b.Form.NroFolios = folios
			b.Form.AreaDestinoID = destino
			if archivo != "" {
				up, err := loadUpload(archivo)
				if err != nil {
					return writeErr(cmd, err)
				}
				b.Form.Archivo = up
			}

			if err := b.Responder(ctx); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"respondido": true}})
		},
	}

	cmd.Flags().IntVar(&tipo, "tipo", 0, "Document type id of the response")
	cmd.Flags().StringVar(&asunto, "asunto", "", "Subject")
	cmd.Flags().IntVar(&folios, "folios", 1, "Folio count")
	cmd.Flags().IntVar(&destino, "destino", 0, "Destination area id")
	cmd.Flags().StringVar(&archivo, "archivo", "", "PDF file to attach")
	_ = cmd.MarkFlagRequired("tipo")
	_ = cmd.MarkFlagRequired("asunto")
	_ = cmd.MarkFlagRequired("destino")
	return cmd
}

func newDocumentosFinalizarCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "finalizar <id>",
		Short: "Close a document (irreversible)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, sess, err := requireAuth(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id, err := docIDArg(args)
			if err != nil {
				return writeErr(cmd, err)
			}
			if !yes {
				return writeErr(cmd, fmt.Errorf("finalizar es irreversible; repita con --yes para confirmar"))
			}
			b := compose.NewBandeja(c, sess)
			if err := b.Finalizar(cmd.Context(), id); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"finalizado": true}})
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the irreversible close")
	return cmd
}

func newDocumentosSeguimientoCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seguimiento <id>",
		Short: "Show a document's routing history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := requireAuth(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id, err := docIDArg(args)
			if err != nil {
				return writeErr(cmd, err)
			}
			d, err := c.Documento(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, err)
			}
			if app.Format == "table" {
				return writeOut(cmd, app, compose.SeguimientoView(d))
			}
			return writeOut(cmd, app, map[string]any{"data": d.Movimientos})
		},
	}
	return cmd
}

func newDocumentosExportarCmd(app *App) *cobra.Command {
	var toDir string
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "exportar <id>",
		Short: "Export a document dossier (registro + seguimiento) as Markdown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := requireAuth(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id, err := docIDArg(args)
			if err != nil {
				return writeErr(cmd, err)
			}
			d, err := c.Documento(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := export.WriteDocumento(d, toDir, export.WriteOptions{Overwrite: overwrite})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": res})
		},
	}

	cmd.Flags().StringVar(&toDir, "to", ".", "Destination directory")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing export")
	return cmd
}

func newDocumentosCorrelativoCmd(app *App) *cobra.Command {
	var area, tipo int

	cmd := &cobra.Command{
		Use:   "correlativo",
		Short: "Preview the next document number for an area (and type)",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := requireAuth(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			n, err := c.SiguienteCorrelativo(cmd.Context(), area, tipo)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"siguienteNumero": n}})
		},
	}

	cmd.Flags().IntVar(&area, "area", 0, "Area id")
	cmd.Flags().IntVar(&tipo, "tipo", 0, "Document type id (optional)")
	_ = cmd.MarkFlagRequired("area")
	return cmd
}
