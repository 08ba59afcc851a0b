package service

import (
	"context"
	"net/http"

	"github.com/suhaib93102/CLM-Frontend/model"
)

// Register creates an account. Tokens in the response are stored.
func (c *Client) Register(ctx context.Context, email, password, fullName string) Response[model.AuthResponse] {
	resp := send[model.AuthResponse](ctx, c, http.MethodPost, "/api/auth/register/", model.Registration{
		Email:    email,
		Password: password,
		FullName: fullName,
	})
	c.storeAuth(resp)
	return resp
}

// Login authenticates with email and password. Tokens in the response are stored.
func (c *Client) Login(ctx context.Context, email, password string) Response[model.AuthResponse] {
	resp := send[model.AuthResponse](ctx, c, http.MethodPost, "/api/auth/login/", model.Credentials{
		Email:    email,
		Password: password,
	})
	c.storeAuth(resp)
	return resp
}

// Logout notifies the backend and clears the tokens whatever the outcome.
func (c *Client) Logout(ctx context.Context) Response[map[string]any] {
	resp := send[map[string]any](ctx, c, http.MethodPost, "/api/auth/logout/", map[string]any{})
	c.tokens.ClearTokens()
	return resp
}

func (c *Client) CurrentUser(ctx context.Context) Response[model.User] {
	return send[model.User](ctx, c, http.MethodGet, "/api/auth/me/", nil)
}

func (c *Client) storeAuth(resp Response[model.AuthResponse]) {
	if resp.Success && resp.Data.Access != "" {
		c.tokens.SetTokens(resp.Data.Access, resp.Data.Refresh)
	}
}
