package api

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/msgquota/internal/client/models"
)

// RegisterRequest is the registration payload for POST /auth/register.
type RegisterRequest struct {
	Name     string      `json:"name"`
	Age      int         `json:"age"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     models.Role `json:"role"`
}

// Register creates a new account. No credential is attached or returned;
// the caller follows up with Login.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	return c.do(ctx, http.MethodPost, "/auth/register", req, nil)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a bearer token and installs it on the
// client. Prior state is untouched on failure.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", loginRequest{Email: email, Password: password}, &resp); err != nil {
		return "", err
	}
	c.SetToken(resp.Token)
	return resp.Token, nil
}

type profileResponse struct {
	Role models.Role `json:"role"`
}

// Profile resolves the role assigned to the current credential.
func (c *Client) Profile(ctx context.Context) (models.Role, error) {
	var resp profileResponse
	if err := c.do(ctx, http.MethodGet, "/auth/profile", nil, &resp); err != nil {
		return "", err
	}
	return resp.Role, nil
}
