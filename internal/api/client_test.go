package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestBearerTokenAttachedWhenPresent(t *testing.T) {
	var gotAuth, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(srv.URL, func() string { return "tok-1" })
	if _, err := c.CatalogoAreas(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer tok-1" {
		t.Fatalf("Authorization = %q", gotAuth)
	}
	if gotAccept != "application/json" {
		t.Fatalf("Accept = %q", gotAccept)
	}
}

func TestNoAuthorizationHeaderWhenLoggedOut(t *testing.T) {
	var sawAuth bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawAuth = r.Header["Authorization"]
		_, _ = w.Write([]byte(`{"access_token":"t","user":{"id":1}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	if _, _, err := c.Login(context.Background(), LoginRequest{NombreUsuario: "u", Password: "p"}); err != nil {
		t.Fatalf("login: %v", err)
	}
	if sawAuth {
		t.Fatalf("login request must not carry a stale Authorization header")
	}
}

func TestDocumentosPaginationIsOneBasedOnTheWire(t *testing.T) {
	var gotPath, gotQuery, gotCache string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotCache = r.Header.Get("Cache-Control")
		_, _ = w.Write([]byte(`{"data":[{"id":7,"codigo_unico":"DOC-7"}],"last_page":3}`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	p, err := c.DocumentosPorArea(context.Background(), 4, 0)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if gotPath != "/documentos/por-area/4" {
		t.Fatalf("path = %q", gotPath)
	}
	if gotQuery != "page=1" {
		t.Fatalf("query = %q (client page 0 must be wire page 1)", gotQuery)
	}
	if gotCache != "no-cache" {
		t.Fatalf("Cache-Control = %q", gotCache)
	}
	if p.LastPage != 3 || len(p.Data) != 1 || p.Data[0].CodigoUnico != "DOC-7" {
		t.Fatalf("page = %+v", p)
	}
}

func TestErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "401 is ErrUnauthorized",
			status: http.StatusUnauthorized,
			body:   `{"message":"Unauthenticated."}`,
			check: func(t *testing.T, err error) {
				if !errors.Is(err, ErrUnauthorized) {
					t.Fatalf("got %v", err)
				}
			},
		},
		{
			name:   "403 is ErrForbidden",
			status: http.StatusForbidden,
			body:   `{"message":"Forbidden"}`,
			check: func(t *testing.T, err error) {
				if !errors.Is(err, ErrForbidden) {
					t.Fatalf("got %v", err)
				}
			},
		},
		{
			name:   "422 carries field errors",
			status: http.StatusUnprocessableEntity,
			body:   `{"message":"invalid","errors":{"asunto":["El asunto es obligatorio."]}}`,
			check: func(t *testing.T, err error) {
				var ve *ValidationError
				if !errors.As(err, &ve) {
					t.Fatalf("got %v", err)
				}
				if got := ve.Fields["asunto"]; len(got) != 1 || got[0] != "El asunto es obligatorio." {
					t.Fatalf("fields = %+v", ve.Fields)
				}
			},
		},
		{
			name:   "500 is a generic APIError",
			status: http.StatusInternalServerError,
			body:   `{"message":"boom"}`,
			check: func(t *testing.T, err error) {
				var ae *APIError
				if !errors.As(err, &ae) {
					t.Fatalf("got %v", err)
				}
				if ae.Status != 500 || ae.Message != "boom" {
					t.Fatalf("apierror = %+v", ae)
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			c := New(srv.URL, nil)
			_, err := c.CatalogoAreas(context.Background())
			if err == nil {
				t.Fatalf("expected error")
			}
			tc.check(t, err)
		})
	}
}

func TestConnErrorWhenNoResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // shut down before the request

	c := New(srv.URL, nil)
	_, err := c.CatalogoAreas(context.Background())
	var ce *ConnError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ConnError, got %v", err)
	}
}

func TestCrearDocumentoSendsMultipartFields(t *testing.T) {
	var gotFields map[string]string
	var gotFile string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		gotFields = map[string]string{}
		for k, vs := range r.MultipartForm.Value {
			gotFields[k] = vs[0]
		}
		if fhs := r.MultipartForm.File["archivo_pdf"]; len(fhs) == 1 {
			gotFile = fhs[0].Filename
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"message":"ok"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	err := c.CrearDocumento(context.Background(), CrearDocumentoInput{
		AreaOrigenID:    1,
		TipoDocumentoID: 2,
		NroDocumento:    "INFORME-001-2026",
		Asunto:          "Solicitud de materiales",
		NroFolios:       3,
		AreaDestinoID:   5,
		Archivo:         &Upload{Field: "archivo_pdf", Name: "adjunto.pdf", R: strings.NewReader("%PDF-1.4")},
	})
	if err != nil {
		t.Fatalf("crear: %v", err)
	}

	want := map[string]string{
		"area_origen_id":    "1",
		"tipo_documento_id": "2",
		"nro_documento":     "INFORME-001-2026",
		"asunto":            "Solicitud de materiales",
		"nro_folios":        "3",
		"area_destino_id":   "5",
	}
	for k, v := range want {
		if gotFields[k] != v {
			t.Fatalf("field %s = %q, want %q", k, gotFields[k], v)
		}
	}
	if gotFile != "adjunto.pdf" {
		t.Fatalf("file = %q", gotFile)
	}
}

func TestSiguienteCorrelativoPathVariants(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		_, _ = w.Write([]byte(`{"siguiente_numero":"INFORME 94"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	if n, err := c.SiguienteCorrelativo(context.Background(), 3, 0); err != nil || n != "INFORME 94" {
		t.Fatalf("got %q, %v", n, err)
	}
	if _, err := c.SiguienteCorrelativo(context.Background(), 3, 9); err != nil {
		t.Fatalf("with tipo: %v", err)
	}

	if paths[0] != "/documentos/siguiente-correlativo/3" {
		t.Fatalf("area-only path = %q", paths[0])
	}
	if paths[1] != "/documentos/siguiente-correlativo/3/9" {
		t.Fatalf("area+tipo path = %q", paths[1])
	}
}

func TestUsuarioPayloadOmitsBlankPasswordOnTheWire(t *testing.T) {
	b, err := json.Marshal(UsuarioPayload{
		Nombres:       "Ana",
		NombreUsuario: "ana",
		Rol:           "Usuario",
		Estado:        "ACTIVO",
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(b)
	if strings.Contains(s, "password") {
		t.Fatalf("blank password fields must be omitted entirely, got %s", s)
	}
}
