// Package store persists the only durable client state: the bearer token and,
// optionally, a remembered username, keyed by API host. Everything else the
// client shows is in-memory and discarded on exit.
package store

import (
	"os"
	"path/filepath"
	"strings"
)

type Store struct {
	// Dir is the config directory. Empty means the default (~/.tramite, or
	// TRAMITE_CONFIG_DIR when set).
	Dir string
}

// ConfigDir resolves the directory that holds local client state.
func ConfigDir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.tramite).
	if v := strings.TrimSpace(os.Getenv("TRAMITE_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".tramite"), nil
}

func (s Store) dir() (string, error) {
	if strings.TrimSpace(s.Dir) != "" {
		return s.Dir, nil
	}
	return ConfigDir()
}

func (s Store) Ensure() error {
	dir, err := s.dir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0o700)
}

func (s Store) sessionDBPath() (string, error) {
	dir, err := s.dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "session.sqlite"), nil
}
