package api

import (
	"context"
	"fmt"
	"strconv"

	"github.com/RonaldoHorta159/tramite-cli/internal/model"
)

// Documentos fetches one page of every document (admin view). page is
// zero-indexed client-side; the wire convention is 1-based.
func (c *Client) Documentos(ctx context.Context, page int) (*Page[model.Documento], error) {
	var out Page[model.Documento]
	if err := c.get(ctx, fmt.Sprintf("/documentos?page=%d", page+1), &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// DocumentosPorArea fetches one page of the documents held or emitted by an
// area.
func (c *Client) DocumentosPorArea(ctx context.Context, areaID, page int) (*Page[model.Documento], error) {
	var out Page[model.Documento]
	path := fmt.Sprintf("/documentos/por-area/%d?page=%d", areaID, page+1)
	if err := c.get(ctx, path, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// Documento fetches a single document with its movement history embedded.
func (c *Client) Documento(ctx context.Context, id int) (*model.Documento, error) {
	var out model.Documento
	if err := c.get(ctx, fmt.Sprintf("/documentos/%d", id), &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

// CrearDocumentoInput mirrors the browser form. Archivo is optional.
type CrearDocumentoInput struct {
	AreaOrigenID    int
	TipoDocumentoID int
	NroDocumento    string
	Asunto          string
	NroFolios       int
	AreaDestinoID   int
	Archivo         *Upload
}

func (in CrearDocumentoInput) fields() map[string]string {
	return map[string]string{
		"area_origen_id":    strconv.Itoa(in.AreaOrigenID),
		"tipo_documento_id": strconv.Itoa(in.TipoDocumentoID),
		"nro_documento":     in.NroDocumento,
		"asunto":            in.Asunto,
		"nro_folios":        strconv.Itoa(in.NroFolios),
		"area_destino_id":   strconv.Itoa(in.AreaDestinoID),
	}
}

// CrearDocumento creates and sends a new document (multipart; the upload
// endpoint does not accept JSON).
func (c *Client) CrearDocumento(ctx context.Context, in CrearDocumentoInput) error {
	return c.postMultipart(ctx, "/documentos", in.fields(), in.Archivo, nil)
}

type DerivarInput struct {
	AreaDestinoID int    `json:"area_destino_id"`
	Proveido      string `json:"proveido"`
}

// Derivar routes a document to another area with a proveído.
func (c *Client) Derivar(ctx context.Context, docID int, in DerivarInput) error {
	return c.postJSON(ctx, fmt.Sprintf("/documentos/%d/derivar", docID), in, nil)
}

// Recepcionar marks a routed document as formally received at its current
// area. Single-argument call; the server infers the area from the session.
func (c *Client) Recepcionar(ctx context.Context, docID int) (string, error) {
	var resp MessageResponse
	if err := c.postJSON(ctx, fmt.Sprintf("/documentos/%d/recepcionar", docID), nil, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// ResponderInput mirrors the response form: a full new document, tied to the
// one being answered, with a server-issued correlativo.
type ResponderInput struct {
	TipoDocumentoID int
	NroDocumento    string
	Asunto          string
	NroFolios       int
	AreaDestinoID   int
	Archivo         *Upload
}

func (c *Client) Responder(ctx context.Context, docID int, in ResponderInput) error {
	fields := map[string]string{
		"tipo_documento_id": strconv.Itoa(in.TipoDocumentoID),
		"nro_documento":     in.NroDocumento,
		"asunto":            in.Asunto,
		"nro_folios":        strconv.Itoa(in.NroFolios),
		"area_destino_id":   strconv.Itoa(in.AreaDestinoID),
	}
	return c.postMultipart(ctx, fmt.Sprintf("/documentos/%d/responder", docID), fields, in.Archivo, nil)
}

// Finalizar closes a document's lifecycle. Irreversible from the client's
// perspective; callers confirm with the user before getting here.
func (c *Client) Finalizar(ctx context.Context, docID int) error {
	return c.postJSON(ctx, fmt.Sprintf("/documentos/%d/finalizar", docID), nil, nil)
}

type correlativoResponse struct {
	SiguienteNumero string `json:"siguiente_numero"`
}

// SiguienteCorrelativo asks the server for the next document number, scoped by
// area and optionally by document type (tipoDocID <= 0 omits it). The number
// is never computed locally; it is displayed and submitted verbatim.
func (c *Client) SiguienteCorrelativo(ctx context.Context, areaID, tipoDocID int) (string, error) {
	path := fmt.Sprintf("/documentos/siguiente-correlativo/%d", areaID)
	if tipoDocID > 0 {
		path = fmt.Sprintf("%s/%d", path, tipoDocID)
	}
	var resp correlativoResponse
	if err := c.get(ctx, path, &resp, true); err != nil {
		return "", err
	}
	return resp.SiguienteNumero, nil
}

// Recibidos lists documents already received at the session user's areas.
func (c *Client) Recibidos(ctx context.Context) ([]model.Documento, error) {
	var out []model.Documento
	if err := c.get(ctx, "/documentos/recibidos", &out, true); err != nil {
		return nil, err
	}
	return out, nil
}

// Pendientes lists documents routed to the session user's areas but not yet
// received.
func (c *Client) Pendientes(ctx context.Context) ([]model.Documento, error) {
	var out []model.Documento
	if err := c.get(ctx, "/documentos/pendientes", &out, true); err != nil {
		return nil, err
	}
	return out, nil
}

// BandejaData is the inbox composite: one request instead of three.
type BandejaData struct {
	TodosLosDocumentos   []model.Documento `json:"todosLosDocumentos"`
	DocumentosPendientes []model.Documento `json:"documentosPendientes"`
	Areas                []model.Area      `json:"areas"`
}

func (c *Client) BandejaEntrada(ctx context.Context) (*BandejaData, error) {
	var out BandejaData
	if err := c.get(ctx, "/bandeja-entrada/data", &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}
