package api

import (
	"context"
	"fmt"

	"github.com/RonaldoHorta159/tramite-cli/internal/model"
)

// AreaPayload is the create/update body for areas; TipoPayload for document
// types. Both entities share the name+estado shape.
type AreaPayload struct {
	Nombre string `json:"nombre"`
	Estado string `json:"estado"`
}

type TipoPayload struct {
	Nombre string `json:"nombre"`
	Estado string `json:"estado"`
}

// UsuarioPayload is the flat form shape the server expects for user
// create/update. On edit, a blank password must omit both password fields
// entirely: blank never means "clear the password".
type UsuarioPayload struct {
	Nombres              string `json:"nombres"`
	ApellidoPaterno      string `json:"apellido_paterno"`
	ApellidoMaterno      string `json:"apellido_materno"`
	DNI                  string `json:"dni"`
	Email                string `json:"email"`
	AreaID               string `json:"area_id"`
	NombreUsuario        string `json:"nombre_usuario"`
	Rol                  string `json:"rol"`
	Estado               string `json:"estado"`
	Password             string `json:"password,omitempty"`
	PasswordConfirmation string `json:"password_confirmation,omitempty"`
}

func (c *Client) AdminAreas(ctx context.Context) ([]model.Area, error) {
	var out []model.Area
	if err := c.get(ctx, "/admin/areas", &out, false); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateArea(ctx context.Context, p AreaPayload) error {
	return c.postJSON(ctx, "/admin/areas", p, nil)
}

func (c *Client) UpdateArea(ctx context.Context, id int, p AreaPayload) error {
	return c.putJSON(ctx, fmt.Sprintf("/admin/areas/%d", id), p, nil)
}

// DeactivateArea is a soft delete: the server flips estado to INACTIVO and the
// row keeps showing up in subsequent admin listings.
func (c *Client) DeactivateArea(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/admin/areas/%d", id), nil)
}

func (c *Client) AdminTipos(ctx context.Context) ([]model.TipoDocumento, error) {
	var out []model.TipoDocumento
	if err := c.get(ctx, "/admin/tipos-documento", &out, false); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateTipo(ctx context.Context, p TipoPayload) error {
	return c.postJSON(ctx, "/admin/tipos-documento", p, nil)
}

func (c *Client) UpdateTipo(ctx context.Context, id int, p TipoPayload) error {
	return c.putJSON(ctx, fmt.Sprintf("/admin/tipos-documento/%d", id), p, nil)
}

func (c *Client) DeactivateTipo(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/admin/tipos-documento/%d", id), nil)
}

func (c *Client) AdminUsuarios(ctx context.Context) ([]model.Usuario, error) {
	var out []model.Usuario
	if err := c.get(ctx, "/admin/usuarios", &out, false); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateUsuario(ctx context.Context, p UsuarioPayload) error {
	return c.postJSON(ctx, "/admin/usuarios", p, nil)
}

func (c *Client) UpdateUsuario(ctx context.Context, id int, p UsuarioPayload) error {
	return c.putJSON(ctx, fmt.Sprintf("/admin/usuarios/%d", id), p, nil)
}

func (c *Client) DeactivateUsuario(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/admin/usuarios/%d", id), nil)
}
