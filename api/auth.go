package api

import (
	"context"

	"github.com/foodhub/foodhub-go/core"
)

// AuthService covers registration, login, and the "who am I" profile call
// the session bootstrap reconciles against.
type AuthService struct {
	client *Client
}

// RegisterRequest is the payload for creating an account.
type RegisterRequest struct {
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Password string    `json:"password"`
	Role     core.Role `json:"role,omitempty"`
}

// Credentials is the token/user pair a successful login or registration
// produces. The session store persists exactly this pair.
type Credentials struct {
	Token string    `json:"token"`
	User  core.User `json:"user"`
}

// Register creates an account and returns the initial credentials.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*Credentials, error) {
	var creds Credentials
	if err := s.client.post(ctx, "api.auth.Register", "/auth/register", req, &creds); err != nil {
		return nil, err
	}
	return &creds, nil
}

// Login exchanges email/password for credentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Credentials, error) {
	body := map[string]string{"email": email, "password": password}
	var creds Credentials
	if err := s.client.post(ctx, "api.auth.Login", "/auth/login", body, &creds); err != nil {
		return nil, err
	}
	return &creds, nil
}

// Profile fetches the authoritative identity for the current credential.
func (s *AuthService) Profile(ctx context.Context) (*core.User, error) {
	var user core.User
	if err := s.client.get(ctx, "api.auth.Profile", "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
