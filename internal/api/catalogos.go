package api

import (
	"context"

	"github.com/RonaldoHorta159/tramite-cli/internal/model"
)

// CatalogoAreas lists the active areas used to populate selects and resolve
// display names.
func (c *Client) CatalogoAreas(ctx context.Context) ([]model.Area, error) {
	var out []model.Area
	if err := c.get(ctx, "/catalogos/areas", &out, false); err != nil {
		return nil, err
	}
	return out, nil
}

// CatalogoTipos lists the active document types.
func (c *Client) CatalogoTipos(ctx context.Context) ([]model.TipoDocumento, error) {
	var out []model.TipoDocumento
	if err := c.get(ctx, "/catalogos/tipos-documento", &out, false); err != nil {
		return nil, err
	}
	return out, nil
}
