package estado

import (
	"fmt"
	"strings"

	"github.com/RonaldoHorta159/tramite-cli/internal/model"
)

// Normalize maps user-typed catalog estados onto the backend spelling. The
// backend only understands the two uppercase values; flags and forms accept
// any casing.
func Normalize(s string) (string, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case model.EstadoActivo:
		return model.EstadoActivo, nil
	case model.EstadoInactivo:
		return model.EstadoInactivo, nil
	}
	return "", fmt.Errorf("estado inválido %q (use ACTIVO o INACTIVO)", strings.TrimSpace(s))
}

// NormalizeRol maps user-typed role names onto the backend spelling.
func NormalizeRol(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "administrador", "admin":
		return model.RolAdministrador, nil
	case "usuario":
		return model.RolUsuario, nil
	}
	return "", fmt.Errorf("rol inválido %q (use Administrador o Usuario)", strings.TrimSpace(s))
}

// IsFinal reports whether a general estado closes the document. Closed
// documents stay listed but stop accepting inbox actions.
func IsFinal(estadoGeneral string) bool {
	switch strings.ToUpper(strings.TrimSpace(estadoGeneral)) {
	case model.EstadoFinalizado, model.EstadoRechazado, model.EstadoArchivado:
		return true
	}
	return false
}
