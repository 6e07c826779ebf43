package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/RonaldoHorta159/tramite-cli/internal/api"
)

var (
	errNotLoggedIn = errors.New("no ha iniciado sesión; ejecute `tramite auth login`")
	errAdminOnly   = errors.New("acceso denegado: se requiere el rol Administrador")
)

type notFoundError struct {
	kind string
	id   int
}

func (e notFoundError) Error() string {
	return fmt.Sprintf("%s no encontrado: %d", e.kind, e.id)
}

func errNotFound(kind string, id int) error {
	return notFoundError{kind: kind, id: id}
}

// friendly rewrites API errors into actionable CLI messages. Validation
// errors already carry their per-field detail and pass through as-is.
func friendly(err error) error {
	switch {
	case errors.Is(err, api.ErrUnauthorized):
		return errors.New("sesión expirada o inválida; ejecute `tramite auth login`")
	case errors.Is(err, api.ErrForbidden):
		return errors.New("acceso denegado por el servidor")
	}
	var cErr *api.ConnError
	if errors.As(err, &cErr) {
		return fmt.Errorf("%s; verifique TRAMITE_API_URL", cErr.Error())
	}
	return err
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func commandContext() context.Context {
	return context.Background()
}
