package salesapi

import (
	"context"
	"errors"
	"net/http"

	"dutyfree-pos/internal/domain"
)

// ErrInvalidLoginResponse is returned when a login answer carries no token.
var ErrInvalidLoginResponse = errors.New("invalid login response")

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login exchanges credentials for a bearer token and the user it belongs to.
// It never sends the current token and a rejection leaves the session alone.
func (c *Client) Login(ctx context.Context, username, password string) (string, domain.User, error) {
	var dto loginDTO
	if err := c.send(ctx, http.MethodPost, "/auth/login", loginRequest{Username: username, Password: password}, &dto, false); err != nil {
		return "", domain.User{}, err
	}
	if dto.Token == "" {
		return "", domain.User{}, ErrInvalidLoginResponse
	}
	return dto.Token, dto.user(), nil
}

// Me returns the user bound to the current token.
func (c *Client) Me(ctx context.Context) (domain.User, error) {
	var dto userDTO
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &dto); err != nil {
		return domain.User{}, err
	}
	return dto.toDomain(), nil
}

// Logout invalidates the current token server side.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
}
