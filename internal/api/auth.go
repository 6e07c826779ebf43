package api

import (
	"context"

	"github.com/RonaldoHorta159/tramite-cli/internal/model"
)

type LoginRequest struct {
	NombreUsuario string `json:"nombre_usuario"`
	Password      string `json:"password"`
}

type loginResponse struct {
	AccessToken string             `json:"access_token"`
	User        *model.SessionUser `json:"user"`
}

// Login exchanges credentials for a bearer token and the session user.
func (c *Client) Login(ctx context.Context, creds LoginRequest) (string, *model.SessionUser, error) {
	var resp loginResponse
	if err := c.postJSON(ctx, "/auth/login", creds, &resp); err != nil {
		return "", nil, err
	}
	return resp.AccessToken, resp.User, nil
}

// Me validates the current token and returns the session user.
func (c *Client) Me(ctx context.Context) (*model.SessionUser, error) {
	var u model.SessionUser
	if err := c.get(ctx, "/auth/me", &u, false); err != nil {
		return nil, err
	}
	return &u, nil
}
