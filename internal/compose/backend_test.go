package compose

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/RonaldoHorta159/tramite-cli/internal/api"
	"github.com/RonaldoHorta159/tramite-cli/internal/model"
	"github.com/RonaldoHorta159/tramite-cli/internal/session"
	"github.com/RonaldoHorta159/tramite-cli/internal/store"
)

// fakeBackend is an in-memory stand-in for the real server, implementing just
// enough of the HTTP contract for composer tests.
type fakeBackend struct {
	t *testing.T

	mu           sync.Mutex
	user         model.SessionUser
	areas        []model.Area
	tipos        []model.TipoDocumento
	usuarios     []model.Usuario
	docs         []*model.Documento
	nextDocID    int
	nextMovID    int
	correlativos map[string]int

	derivarCalls  int
	lastUserBody  map[string]any
	correlativoFn func(areaID, tipoID int) (string, error)
}

func newFakeBackend(t *testing.T) *fakeBackend {
	return &fakeBackend{
		t: t,
		areas: []model.Area{
			{ID: 1, Nombre: "Mesa de Partes", Estado: model.EstadoActivo},
			{ID: 2, Nombre: "Logística", Estado: model.EstadoActivo},
			{ID: 3, Nombre: "Gerencia", Estado: model.EstadoActivo},
		},
		tipos: []model.TipoDocumento{
			{ID: 10, Nombre: "INFORME", Estado: model.EstadoActivo},
			{ID: 11, Nombre: "OFICIO", Estado: model.EstadoActivo},
		},
		nextDocID:    100,
		nextMovID:    500,
		correlativos: map[string]int{},
	}
}

func (f *fakeBackend) area(id int) *model.Area {
	for i := range f.areas {
		if f.areas[i].ID == id {
			a := f.areas[i]
			return &a
		}
	}
	return &model.Area{ID: id, Nombre: fmt.Sprintf("Area %d", id)}
}

func (f *fakeBackend) tipo(id int) *model.TipoDocumento {
	for i := range f.tipos {
		if f.tipos[i].ID == id {
			tp := f.tipos[i]
			return &tp
		}
	}
	return &model.TipoDocumento{ID: id, Nombre: "DOC"}
}

func (f *fakeBackend) findDoc(id int) *model.Documento {
	for _, d := range f.docs {
		if d.ID == id {
			return d
		}
	}
	return nil
}

func (f *fakeBackend) addDoc(origenID, destinoID, tipoID, folios int, asunto, nro string, respuestaDe *int) *model.Documento {
	f.nextDocID++
	f.nextMovID++
	d := &model.Documento{
		ID:                   f.nextDocID,
		CodigoUnico:          fmt.Sprintf("DOC-%d", f.nextDocID),
		NroDocumento:         nro,
		CreatedAt:            time.Now(),
		TipoDocumento:        f.tipo(tipoID),
		Asunto:               asunto,
		NroFolios:            folios,
		AreaOrigen:           f.area(origenID),
		AreaActual:           f.area(destinoID),
		EstadoGeneral:        model.EstadoEnTramite,
		DocumentoRespuestaID: respuestaDe,
		Movimientos: []model.Movimiento{{
			ID:               f.nextMovID,
			CreatedAt:        time.Now(),
			AreaOrigen:       f.area(origenID),
			AreaDestino:      f.area(destinoID),
			EstadoMovimiento: "REGISTRADO",
		}},
	}
	f.docs = append(f.docs, d)
	return d
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func pathID(r *http.Request) int {
	n, _ := strconv.Atoi(r.PathValue("id"))
	return n
}

func (f *fakeBackend) serve() *httptest.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		writeJSON(w, map[string]any{"access_token": "tok-test", "user": f.user})
	})
	mux.HandleFunc("GET /auth/me", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		if r.Header.Get("Authorization") != "Bearer tok-test" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		writeJSON(w, f.user)
	})

	mux.HandleFunc("GET /catalogos/areas", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		writeJSON(w, f.areas)
	})
	mux.HandleFunc("GET /catalogos/tipos-documento", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		writeJSON(w, f.tipos)
	})

	mux.HandleFunc("GET /documentos", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		writeJSON(w, map[string]any{"data": f.docs, "last_page": 1})
	})
	mux.HandleFunc("GET /documentos/por-area/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		areaID := pathID(r)
		out := []*model.Documento{}
		for _, d := range f.docs {
			if d.AreaOrigen != nil && d.AreaOrigen.ID == areaID {
				out = append(out, d)
			}
		}
		writeJSON(w, map[string]any{"data": out, "last_page": 1})
	})
	mux.HandleFunc("GET /documentos/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		d := f.findDoc(pathID(r))
		if d == nil {
			w.WriteHeader(http.StatusNotFound)
			writeJSON(w, map[string]any{"message": "documento no encontrado"})
			return
		}
		writeJSON(w, d)
	})

	mux.HandleFunc("POST /documentos", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		get := func(k string) string { return r.FormValue(k) }
		atoi := func(k string) int { n, _ := strconv.Atoi(get(k)); return n }
		f.addDoc(atoi("area_origen_id"), atoi("area_destino_id"), atoi("tipo_documento_id"),
			atoi("nro_folios"), get("asunto"), get("nro_documento"), nil)
		w.WriteHeader(http.StatusCreated)
		writeJSON(w, map[string]any{"message": "El documento ha sido creado y enviado."})
	})

	mux.HandleFunc("POST /documentos/{id}/derivar", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.derivarCalls++
		d := f.findDoc(pathID(r))
		if d == nil {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		var in struct {
			AreaDestinoID int    `json:"area_destino_id"`
			Proveido      string `json:"proveido"`
		}
		_ = json.NewDecoder(r.Body).Decode(&in)
		f.nextMovID++
		mov := model.Movimiento{
			ID:               f.nextMovID,
			CreatedAt:        time.Now(),
			AreaOrigen:       d.AreaActual,
			AreaDestino:      f.area(in.AreaDestinoID),
			EstadoMovimiento: "DERIVADO",
			Proveido:         in.Proveido,
		}
		d.Movimientos = append(d.Movimientos, mov)
		d.LatestMovement = &mov
		d.AreaActual = f.area(in.AreaDestinoID)
		d.FueRecibidoEnAreaActual = false
		writeJSON(w, map[string]any{"message": "derivado"})
	})

	mux.HandleFunc("POST /documentos/{id}/recepcionar", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		d := f.findDoc(pathID(r))
		if d == nil {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		d.FueRecibidoEnAreaActual = true
		writeJSON(w, map[string]any{"message": "Documento recepcionado correctamente."})
	})

	mux.HandleFunc("POST /documentos/{id}/responder", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		d := f.findDoc(pathID(r))
		if d == nil {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		atoi := func(k string) int { n, _ := strconv.Atoi(r.FormValue(k)); return n }
		id := d.ID
		f.addDoc(d.AreaActual.ID, atoi("area_destino_id"), atoi("tipo_documento_id"),
			atoi("nro_folios"), r.FormValue("asunto"), r.FormValue("nro_documento"), &id)
		w.WriteHeader(http.StatusCreated)
		writeJSON(w, map[string]any{"message": "respuesta enviada"})
	})

	mux.HandleFunc("POST /documentos/{id}/finalizar", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		d := f.findDoc(pathID(r))
		if d == nil {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		d.EstadoGeneral = model.EstadoFinalizado
		writeJSON(w, map[string]any{"message": "finalizado"})
	})

	correlativo := func(w http.ResponseWriter, areaID, tipoID int) {
		if f.correlativoFn != nil {
			n, err := f.correlativoFn(areaID, tipoID)
			if err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				writeJSON(w, map[string]any{"message": err.Error()})
				return
			}
			writeJSON(w, map[string]any{"siguiente_numero": n})
			return
		}
		key := fmt.Sprintf("%d/%d", areaID, tipoID)
		f.correlativos[key]++
		writeJSON(w, map[string]any{"siguiente_numero": fmt.Sprintf("INFORME %d", f.correlativos[key])})
	}
	mux.HandleFunc("GET /documentos/siguiente-correlativo/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		correlativo(w, pathID(r), 0)
	})
	mux.HandleFunc("GET /documentos/siguiente-correlativo/{id}/{tipo}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		tipoID, _ := strconv.Atoi(r.PathValue("tipo"))
		correlativo(w, pathID(r), tipoID)
	})

	mux.HandleFunc("GET /bandeja-entrada/data", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		mine := map[int]bool{f.user.PrimaryAreaID: true}
		for _, a := range f.user.Areas {
			mine[a.ID] = true
		}
		todos := []*model.Documento{}
		pendientes := []*model.Documento{}
		for _, d := range f.docs {
			if d.AreaActual != nil && mine[d.AreaActual.ID] {
				todos = append(todos, d)
				if !d.FueRecibidoEnAreaActual {
					pendientes = append(pendientes, d)
				}
			}
		}
		writeJSON(w, map[string]any{
			"todosLosDocumentos":   todos,
			"documentosPendientes": pendientes,
			"areas":                f.areas,
		})
	})

	mux.HandleFunc("GET /admin/areas", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		writeJSON(w, f.areas)
	})
	mux.HandleFunc("POST /admin/areas", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		var p api.AreaPayload
		_ = json.NewDecoder(r.Body).Decode(&p)
		f.areas = append(f.areas, model.Area{ID: len(f.areas) + 1, Nombre: p.Nombre, Estado: p.Estado})
		w.WriteHeader(http.StatusCreated)
		writeJSON(w, map[string]any{"message": "creada"})
	})
	mux.HandleFunc("PUT /admin/areas/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		var p api.AreaPayload
		_ = json.NewDecoder(r.Body).Decode(&p)
		for i := range f.areas {
			if f.areas[i].ID == pathID(r) {
				f.areas[i].Nombre = p.Nombre
				f.areas[i].Estado = p.Estado
			}
		}
		writeJSON(w, map[string]any{"message": "actualizada"})
	})
	mux.HandleFunc("DELETE /admin/areas/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		// Soft delete: flip estado, never remove the row.
		for i := range f.areas {
			if f.areas[i].ID == pathID(r) {
				f.areas[i].Estado = model.EstadoInactivo
			}
		}
		writeJSON(w, map[string]any{"message": "desactivada"})
	})

	mux.HandleFunc("GET /admin/usuarios", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		writeJSON(w, f.usuarios)
	})
	mux.HandleFunc("PUT /admin/usuarios/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		body := map[string]any{}
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.lastUserBody = body
		writeJSON(w, map[string]any{"message": "actualizado"})
	})

	srv := httptest.NewServer(mux)
	f.t.Cleanup(srv.Close)
	return srv
}

// start spins up the fake backend and returns a logged-in session + client.
func (f *fakeBackend) start(user model.SessionUser) (*api.Client, *session.Session) {
	f.user = user
	srv := f.serve()
	sess := session.New(srv.URL, store.Store{Dir: f.t.TempDir()})
	c := api.New(srv.URL, sess.TokenSource())
	if err := sess.Login(context.Background(), c, user.NombreUsuario, "x", false); err != nil {
		f.t.Fatalf("login: %v", err)
	}
	return c, sess
}

func regularUser(primary int, extra ...int) model.SessionUser {
	u := model.SessionUser{ID: 1, NombreUsuario: "rhorta", Rol: model.RolUsuario, PrimaryAreaID: primary}
	u.PrimaryArea = &model.Area{ID: primary}
	for _, id := range extra {
		u.Areas = append(u.Areas, model.Area{ID: id})
	}
	// The primary area is part of the accessible set server-side too.
	u.Areas = append(u.Areas, model.Area{ID: primary})
	return u
}
