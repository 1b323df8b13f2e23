// Copyright (c) 2025 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session persists the authenticated user between runs.
package session

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/agoradev/agora-tui/internal/model"
	"github.com/agoradev/agora-tui/internal/util"
)

// GuestToken is the sentinel the forum API expects in X-Auth-Token when
// no user is logged in. The backend treats it as "no session" rather
// than rejecting the request outright.
const GuestToken = "guest"

// Session is the persisted authentication state.
type Session struct {
	User  model.User `json:"user"`
	Token string     `json:"token"`
}

// valid reports whether the loaded state is usable. A session without
// a token or username is treated as absent, not as an error: the file
// may be truncated, hand-edited or written by an older client.
func (s *Session) valid() bool {
	return s.Token != "" && s.User.Username != ""
}

// Store is a file-backed session store. All methods are safe for
// concurrent use. Read failures of any kind (missing file, bad JSON,
// partial data) surface as an absent session, never as an error.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore creates a store persisting to the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Save persists the session to disk. The write is atomic and the file
// is owner-only, it holds a bearer token.
func (s *Store) Save(user model.User, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(Session{User: user, Token: token}, "", "  ")
	if err != nil {
		return err
	}
	return util.AtomicWriteFile(s.path, data, 0600)
}

// Get loads the persisted session. ok is false when no usable session
// exists, including every malformed-file case.
func (s *Store) Get() (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) load() (Session, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return Session{}, false
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return Session{}, false
	}
	if !sess.valid() {
		return Session{}, false
	}
	return sess, true
}

// Clear removes the persisted session. Clearing an absent session is
// not an error.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// IsAuthenticated reports whether a usable session exists.
func (s *Store) IsAuthenticated() bool {
	_, ok := s.Get()
	return ok
}

// Token returns the session token, or GuestToken when unauthenticated.
// The forum endpoints require the header in both cases.
func (s *Store) Token() string {
	sess, ok := s.Get()
	if !ok {
		return GuestToken
	}
	return sess.Token
}

// CurrentUser returns the logged-in user, if any.
func (s *Store) CurrentUser() (model.User, bool) {
	sess, ok := s.Get()
	if !ok {
		return model.User{}, false
	}
	return sess.User, true
}
