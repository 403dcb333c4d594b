package resource

import (
	"context"
	"net/http"

	"github.com/medrec/medrec/internal/model"
)

// SignIn exchanges credentials for a token and role claims. Not cached.
func (c *Client) SignIn(ctx context.Context, creds model.Credentials) (model.AuthResponse, error) {
	if err := creds.Validate(); err != nil {
		return model.AuthResponse{}, err
	}
	var out model.AuthResponse
	err := c.mutate(ctx, http.MethodPost, "/auth/signin", creds, &out, TagAuth)
	return out, err
}

// SignUp registers a new account with its linked doctor or patient
// profile.
func (c *Client) SignUp(ctx context.Context, req model.SignupRequest) (model.Message, error) {
	if err := req.Validate(); err != nil {
		return model.Message{}, err
	}
	var out model.Message
	err := c.do(ctx, http.MethodPost, "/auth/signup", req, &out)
	return out, err
}

// CurrentUser fetches the account record behind the active token.
func (c *Client) CurrentUser(ctx context.Context) (model.User, error) {
	return fetchCached[model.User](ctx, c, TagAuth, "/auth/me")
}
