// Package api wraps the mesa-de-partes REST backend. Route strings, payload
// field names, and the {data, last_page} pagination envelope are the external
// contract with the existing server and must not drift.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// TokenSource returns the current bearer token, or "" when logged out.
// Indirection keeps the client decoupled from the session store; the token is
// re-read on every request so a re-login mid-process takes effect immediately.
type TokenSource func() string

type Client struct {
	baseURL string
	token   TokenSource
	httpc   *http.Client
}

func New(baseURL string, token TokenSource) *Client {
	if token == nil {
		token = func() string { return "" }
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpc:   &http.Client{},
	}
}

func (c *Client) BaseURL() string { return c.baseURL }

// Upload is a file attachment for multipart endpoints.
type Upload struct {
	Field string // form field name, e.g. "archivo_pdf"
	Name  string // file name sent to the server
	R     io.Reader
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if tok := c.token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	return req, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpc.Do(req)
	if err != nil {
		return &ConnError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", req.Method, req.URL.Path, err)
	}
	return nil
}

// get fetches path into out. noCache mirrors the browser client, which sends
// Cache-Control: no-cache on document listings to defeat proxy caching.
func (c *Client) get(ctx context.Context, path string, out any, noCache bool) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	if noCache {
		req.Header.Set("Cache-Control", "no-cache")
	}
	return c.do(req, out)
}

func (c *Client) sendJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, out)
}

func (c *Client) postJSON(ctx context.Context, path string, in, out any) error {
	return c.sendJSON(ctx, http.MethodPost, path, in, out)
}

func (c *Client) putJSON(ctx context.Context, path string, in, out any) error {
	return c.sendJSON(ctx, http.MethodPut, path, in, out)
}

func (c *Client) delete(ctx context.Context, path string, out any) error {
	return c.sendJSON(ctx, http.MethodDelete, path, nil, out)
}

// postMultipart sends fields (and an optional file) as multipart form data.
// The backend's create/respond endpoints accept only this shape.
func (c *Client) postMultipart(ctx context.Context, path string, fields map[string]string, file *Upload, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return err
		}
	}
	if file != nil && file.R != nil {
		fw, err := w.CreateFormFile(file.Field, file.Name)
		if err != nil {
			return err
		}
		if _, err := io.Copy(fw, file.R); err != nil {
			return err
		}
	}
	if err := w.Close(); err != nil {
		return err
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return c.do(req, out)
}

// Page is the backend's pagination envelope. ?page=N is 1-based; the server is
// the sole source of truth for counts.
type Page[T any] struct {
	Data     []T `json:"data"`
	LastPage int `json:"last_page"`
}

// MessageResponse is the generic {"message": ...} mutation acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}
