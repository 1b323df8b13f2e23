// Copyright (c) 2025 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/agoradev/agora-tui/internal/model"
)

// Credentials is the result of a successful login or registration.
type Credentials struct {
	User  model.User `json:"user"`
	Token string     `json:"token"`
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a new account and returns its session token.
func (c *Client) Register(ctx context.Context, username, email, password string) (Credentials, error) {
	var creds Credentials
	url := c.authURL + "?action=register"
	req := registerRequest{Username: username, Email: email, Password: password}
	if err := c.doJSON(ctx, http.MethodPost, url, req, &creds, false); err != nil {
		return Credentials{}, fmt.Errorf("register: %w", err)
	}
	return creds, nil
}

// Login authenticates an existing account. A 401 maps to
// ErrInvalidCredentials so callers can show a friendlier message than
// the raw status.
func (c *Client) Login(ctx context.Context, email, password string) (Credentials, error) {
	var creds Credentials
	url := c.authURL + "?action=login"
	req := loginRequest{Email: email, Password: password}
	if err := c.doJSON(ctx, http.MethodPost, url, req, &creds, false); err != nil {
		if errors.Is(err, ErrUnauthorized) {
			return Credentials{}, fmt.Errorf("login: %w", ErrInvalidCredentials)
		}
		return Credentials{}, fmt.Errorf("login: %w", err)
	}
	return creds, nil
}
