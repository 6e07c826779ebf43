package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Session is one persisted login, keyed by API host so pointing the client at
// a different backend does not clobber another backend's token.
type Session struct {
	Host           string
	Token          string
	RememberedUser string
	UpdatedAt      time.Time
}

func (s Store) openSQLite(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	path, err := s.sessionDBPath()
	if err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// Pragmas for multi-process local usage.
	// WAL enables one writer + many readers; busy_timeout helps avoid
	// "database is locked" flakiness when CLI and TUI overlap.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA synchronous=NORMAL;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateSessions(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrateSessions(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS sessions (
  host            TEXT PRIMARY KEY,
  token           TEXT NOT NULL DEFAULT '',
  remembered_user TEXT NOT NULL DEFAULT '',
  updated_at      TEXT NOT NULL
);`)
	return err
}

// SaveSession upserts the session row for sess.Host.
func (s Store) SaveSession(ctx context.Context, sess Session) error {
	host := strings.TrimSpace(sess.Host)
	if host == "" {
		return errors.New("session host is empty")
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.ExecContext(ctx, `
INSERT INTO sessions (host, token, remembered_user, updated_at)
VALUES (?, ?, ?, ?)
ON CONFLICT(host) DO UPDATE SET
  token = excluded.token,
  remembered_user = excluded.remembered_user,
  updated_at = excluded.updated_at;`,
		host, sess.Token, sess.RememberedUser, time.Now().UTC().Format(time.RFC3339))
	return err
}

// LoadSession returns the stored session for host, or nil when none exists.
func (s Store) LoadSession(ctx context.Context, host string) (*Session, error) {
	host = strings.TrimSpace(host)
	if host == "" {
		return nil, errors.New("session host is empty")
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	row := db.QueryRowContext(ctx, `
SELECT host, token, remembered_user, updated_at FROM sessions WHERE host = ?;`, host)

	var sess Session
	var updatedAt string
	if err := row.Scan(&sess.Host, &sess.Token, &sess.RememberedUser, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if t, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		sess.UpdatedAt = t
	}
	return &sess, nil
}

// ClearToken drops the token for host but keeps the remembered username, so
// logging out does not forget the login form prefill.
func (s Store) ClearToken(ctx context.Context, host string) error {
	host = strings.TrimSpace(host)
	if host == "" {
		return errors.New("session host is empty")
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.ExecContext(ctx, `
UPDATE sessions SET token = '', updated_at = ? WHERE host = ?;`,
		time.Now().UTC().Format(time.RFC3339), host)
	return err
}
