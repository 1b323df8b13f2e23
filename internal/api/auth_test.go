// Copyright (c) 2025 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLogin_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("action"); got != "login" {
			t.Errorf("action = %q, want login", got)
		}

		body, _ := io.ReadAll(r.Body)
		var req map[string]string
		json.Unmarshal(body, &req)
		if req["email"] != "ada@example.com" || req["password"] != "s3cret" {
			t.Errorf("unexpected credentials: %v", req)
		}

		w.Write([]byte(`{
			"user": {"id": 3, "username": "ada", "email": "ada@example.com", "created_at": "2025-01-01T00:00:00"},
			"token": "tok-abc"
		}`))
	}))
	defer srv.Close()

	client := newTestClient(srv)
	creds, err := client.Login(context.Background(), "ada@example.com", "s3cret")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if creds.Token != "tok-abc" {
		t.Errorf("Token = %q", creds.Token)
	}
	if creds.User.Username != "ada" {
		t.Errorf("Username = %q", creds.User.Username)
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": "Invalid credentials"}`))
	}))
	defer srv.Close()

	client := newTestClient(srv)
	_, err := client.Login(context.Background(), "ada@example.com", "wrong")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("error %v does not match ErrInvalidCredentials", err)
	}
}

func TestRegister_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("action"); got != "register" {
			t.Errorf("action = %q, want register", got)
		}

		body, _ := io.ReadAll(r.Body)
		var req map[string]string
		json.Unmarshal(body, &req)
		if req["username"] != "grace" {
			t.Errorf("username = %q", req["username"])
		}

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{
			"user": {"id": 4, "username": "grace", "email": "grace@example.com", "created_at": "2025-06-15T12:00:00"},
			"token": "tok-new"
		}`))
	}))
	defer srv.Close()

	client := newTestClient(srv)
	creds, err := client.Register(context.Background(), "grace", "grace@example.com", "hunter2")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if creds.User.ID != 4 || creds.Token != "tok-new" {
		t.Errorf("unexpected credentials: %+v", creds)
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error": "Username already taken"}`))
	}))
	defer srv.Close()

	client := newTestClient(srv)
	_, err := client.Register(context.Background(), "grace", "grace@example.com", "hunter2")
	if !errors.Is(err, ErrConflict) {
		t.Errorf("error %v does not match ErrConflict", err)
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "Username already taken" {
		t.Errorf("Message = %q", apiErr.Message)
	}
}
