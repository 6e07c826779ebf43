// Package session holds the authenticated user and bearer token for the
// running process. Views read it through accessors instead of threading the
// user around; only the token (and an optional remembered username) survives
// process exit, via the store.
package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/RonaldoHorta159/tramite-cli/internal/api"
	"github.com/RonaldoHorta159/tramite-cli/internal/model"
	"github.com/RonaldoHorta159/tramite-cli/internal/store"
)

type Session struct {
	host  string
	store store.Store

	mu    sync.RWMutex
	user  *model.SessionUser
	token string
}

// New creates an empty session for the given API host. Call Rehydrate to pick
// up a persisted token.
func New(host string, st store.Store) *Session {
	return &Session{host: strings.TrimSpace(host), store: st}
}

// TokenSource exposes the current token to the API client. Re-read per
// request, so login/logout take effect immediately.
func (s *Session) TokenSource() api.TokenSource {
	return func() string {
		s.mu.RLock()
		defer s.mu.RUnlock()
		return s.token
	}
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) User() *model.SessionUser {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// IsAuthenticated requires both a token and a resolved user, matching the
// browser client's gate.
func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != "" && s.user != nil
}

// Login authenticates and persists the token. With remember set, the username
// is stored for login-form prefill; otherwise any previous remembered name is
// dropped. A failed login clears the session.
func (s *Session) Login(ctx context.Context, c *api.Client, nombreUsuario, password string, remember bool) error {
	token, user, err := c.Login(ctx, api.LoginRequest{NombreUsuario: nombreUsuario, Password: password})
	if err != nil {
		s.clear()
		return err
	}

	s.mu.Lock()
	s.token = token
	s.user = user
	s.mu.Unlock()

	remembered := ""
	if remember {
		remembered = nombreUsuario
	}
	return s.store.SaveSession(ctx, store.Session{
		Host:           s.host,
		Token:          token,
		RememberedUser: remembered,
	})
}

// Logout clears the in-memory session and the persisted token. The remembered
// username is kept.
func (s *Session) Logout(ctx context.Context) error {
	s.clear()
	return s.store.ClearToken(ctx, s.host)
}

// FetchUser resolves /auth/me for the current token. Any failure clears the
// session: a token the server will not vouch for is treated as logged out.
func (s *Session) FetchUser(ctx context.Context, c *api.Client) error {
	if s.Token() == "" {
		return nil
	}
	user, err := c.Me(ctx)
	if err != nil {
		s.clear()
		return err
	}
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	return nil
}

// Rehydrate loads a persisted token, skipping it when the JWT is already
// expired (saves a round trip that can only 401). It does not call the server;
// follow with FetchUser to resolve the user.
func (s *Session) Rehydrate(ctx context.Context) error {
	sess, err := s.store.LoadSession(ctx, s.host)
	if err != nil {
		return err
	}
	if sess == nil || sess.Token == "" {
		return nil
	}
	if exp, ok := tokenExpiry(sess.Token); ok && time.Now().After(exp) {
		return s.store.ClearToken(ctx, s.host)
	}
	s.mu.Lock()
	s.token = sess.Token
	s.mu.Unlock()
	return nil
}

// RememberedUser returns the stored login-form prefill, if any.
func (s *Session) RememberedUser(ctx context.Context) string {
	sess, err := s.store.LoadSession(ctx, s.host)
	if err != nil || sess == nil {
		return ""
	}
	return sess.RememberedUser
}

// TokenExpiry reports the exp claim of the current token. Parse-only: the
// client never verifies signatures, that is the server's job.
func (s *Session) TokenExpiry() (time.Time, bool) {
	return tokenExpiry(s.Token())
}

func tokenExpiry(token string) (time.Time, bool) {
	if token == "" {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

func (s *Session) clear() {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.mu.Unlock()
}
