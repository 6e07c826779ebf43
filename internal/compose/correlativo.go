package compose

import (
	"context"
	"sync"
)

// Placeholder values shown while a correlativo lookup is unresolved. The
// number itself is server-issued and write-once: the client only displays it
// and submits it verbatim.
const (
	CorrelativoCargando = "Cargando..."
	CorrelativoError    = "Error"
)

// CorrelativoKey scopes a next-number lookup: per area, optionally per
// document type.
type CorrelativoKey struct {
	AreaID          int
	TipoDocumentoID int
}

// CorrelativoFetcher performs the actual lookup (normally api.Client.
// SiguienteCorrelativo, indirected for tests).
type CorrelativoFetcher func(ctx context.Context, areaID, tipoDocumentoID int) (string, error)

// CorrelativoSequencer serializes next-number lookups for a form. Key inputs
// can change while a request is in flight; only the response for the
// latest-issued request may be applied, so each Begin hands out a token and
// Apply discards anything stale.
type CorrelativoSequencer struct {
	mu      sync.Mutex
	seq     uint64
	key     CorrelativoKey
	value   string
	loading bool
}

// Begin registers a new lookup for key and returns its token. The visible
// value flips to the loading placeholder immediately.
func (s *CorrelativoSequencer) Begin(key CorrelativoKey) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.key = key
	s.value = CorrelativoCargando
	s.loading = true
	return s.seq
}

// Apply resolves the lookup identified by token. Out-of-order completions
// (token no longer the latest) are discarded and report false.
func (s *CorrelativoSequencer) Apply(token uint64, value string, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.seq {
		return false
	}
	s.loading = false
	if err != nil {
		s.value = CorrelativoError
		return true
	}
	s.value = value
	return true
}

// Fetch runs one Begin/fetch/Apply cycle synchronously. Callers that need
// concurrency (the TUI) drive Begin/Apply themselves from commands.
func (s *CorrelativoSequencer) Fetch(ctx context.Context, fetch CorrelativoFetcher, key CorrelativoKey) string {
	token := s.Begin(key)
	value, err := fetch(ctx, key.AreaID, key.TipoDocumentoID)
	s.Apply(token, value, err)
	return s.Value()
}

func (s *CorrelativoSequencer) Value() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

func (s *CorrelativoSequencer) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Key returns the key of the latest-issued lookup.
func (s *CorrelativoSequencer) Key() CorrelativoKey {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.key
}

// Usable reports whether the current value is a real server-issued number
// (not a placeholder, not the error sentinel).
func (s *CorrelativoSequencer) Usable() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.loading && s.value != "" && s.value != CorrelativoCargando && s.value != CorrelativoError
}
