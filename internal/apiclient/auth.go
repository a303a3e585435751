package apiclient

import (
	"context"
	"fmt"

	"github.com/keycardsapp/keycards-bot/internal/domain/entities"
)

type credentials struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authPayload struct {
	User  entities.Profile `json:"user"`
	Token string           `json:"token"`
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (*entities.Profile, string, error) {
	var payload authPayload
	err := c.post(ctx, "/api/auth/login", "", credentials{Email: email, Password: password}, &payload)
	if err != nil {
		return nil, "", fmt.Errorf("login: %w", err)
	}
	return &payload.User, payload.Token, nil
}

// Register creates an account and returns its bearer token.
func (c *Client) Register(ctx context.Context, name, email, password string) (*entities.Profile, string, error) {
	var payload authPayload
	err := c.post(ctx, "/api/auth/register", "", credentials{Name: name, Email: email, Password: password}, &payload)
	if err != nil {
		return nil, "", fmt.Errorf("register: %w", err)
	}
	return &payload.User, payload.Token, nil
}
