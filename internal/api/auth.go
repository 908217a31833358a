package api

import (
	"context"

	"github.com/smeargame/smearcli/internal/session"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string       `json:"token"`
	CSRF  string       `json:"csrf"`
	User  session.User `json:"user"`
}

// Login exchanges credentials for the bearer/CSRF token pair that every
// subsequent request carries
func (c *Client) Login(ctx context.Context, email, password string) (*session.Credentials, error) {
	var resp loginResponse
	if err := c.Post(ctx, "/sessions", loginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	return &session.Credentials{
		Token: resp.Token,
		CSRF:  resp.CSRF,
		User:  resp.User,
	}, nil
}

// Logout invalidates the server-side session for the credentials in
// the context
func (c *Client) Logout(ctx context.Context) error {
	return c.Delete(ctx, "/sessions", nil)
}
