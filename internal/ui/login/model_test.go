// Copyright (c) 2025 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package login

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agoradev/agora-tui/internal/api"
	"github.com/agoradev/agora-tui/internal/session"
	"github.com/agoradev/agora-tui/internal/ui"
	"github.com/agoradev/agora-tui/internal/ui/components"
	"github.com/agoradev/agora-tui/internal/ui/styles"
)

func newTestModel(t *testing.T, srv *httptest.Server) (Model, *session.Store, *components.ToastManager) {
	t.Helper()
	client := api.NewClient(srv.URL+"/board", srv.URL+"/auth", srv.URL+"/forum")
	store := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	toasts := components.NewToastManager()
	m := New(client, store, styles.NewTheme(), toasts)
	m.SetSize(80, 24)
	return m, store, toasts
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+t":
		return tea.KeyMsg{Type: tea.KeyCtrlT}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func typeText(m Model, s string) Model {
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestLogin_BlankFieldsSendNothing(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
	}))
	defer srv.Close()

	m, _, toasts := newTestModel(t, srv)

	_, cmd := m.Update(key("enter"))
	if cmd != nil {
		cmd()
	}
	if got := requests.Load(); got != 0 {
		t.Errorf("blank form made %d requests, want 0", got)
	}
	if !toasts.HasToasts() {
		t.Error("blank form should warn locally")
	}
}

func TestLogin_ModeToggle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	m, _, _ := newTestModel(t, srv)
	if m.CurrentMode() != ModeLogin {
		t.Fatal("should start in login mode")
	}
	m, _ = m.Update(key("ctrl+t"))
	if m.CurrentMode() != ModeRegister {
		t.Error("ctrl+t should switch to registration")
	}
	m, _ = m.Update(key("ctrl+t"))
	if m.CurrentMode() != ModeLogin {
		t.Error("ctrl+t should switch back to login")
	}
}

func TestLogin_SuccessPersistsSessionBeforeAnnouncing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"user": {"id": 7, "username": "ada", "email": "ada@example.com"}, "token": "tok-123"}`))
	}))
	defer srv.Close()

	m, store, _ := newTestModel(t, srv)
	m = typeText(m, "ada@example.com")
	m, _ = m.Update(key("tab"))
	m = typeText(m, "hunter2")

	m, cmd := m.Update(key("enter"))
	if !m.Submitting() {
		t.Error("form should lock while the request is in flight")
	}
	msg := firstAuthMsg(t, cmd)

	succeeded, ok := msg.(AuthSucceededMsg)
	if !ok {
		t.Fatalf("got %T, want AuthSucceededMsg: %+v", msg, msg)
	}
	if succeeded.Creds.Token != "tok-123" {
		t.Errorf("Token = %q", succeeded.Creds.Token)
	}

	// The session file is already on disk when the message arrives.
	sess, found := store.Get()
	if !found {
		t.Fatal("session should be persisted before AuthSucceededMsg")
	}
	if sess.User.Username != "ada" || sess.Token != "tok-123" {
		t.Errorf("persisted session = %+v", sess)
	}

	// Handling the success emits the app-level login announcement.
	m, cmd = m.Update(msg)
	if m.Submitting() {
		t.Error("form should unlock after success")
	}
	if cmd == nil {
		t.Fatal("success should announce the login")
	}
	if _, ok := cmd().(ui.LoggedInMsg); !ok {
		t.Errorf("got %T, want ui.LoggedInMsg", cmd())
	}
}

func TestLogin_InvalidCredentialsSurfaceServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": "Invalid credentials"}`))
	}))
	defer srv.Close()

	m, store, toasts := newTestModel(t, srv)
	m = typeText(m, "ada@example.com")
	m, _ = m.Update(key("tab"))
	m = typeText(m, "wrong")

	m, cmd := m.Update(key("enter"))
	msg := firstAuthMsg(t, cmd)
	failed, ok := msg.(AuthFailedMsg)
	if !ok {
		t.Fatalf("got %T, want AuthFailedMsg", msg)
	}

	m, _ = m.Update(failed)
	if m.Submitting() {
		t.Error("form should unlock after a failure")
	}
	if !toasts.HasToasts() {
		t.Error("failure should surface as a toast")
	}
	if _, found := store.Get(); found {
		t.Error("a rejected login must not persist a session")
	}
}

// firstAuthMsg runs a possibly-batched command and returns the auth
// result, skipping spinner ticks.
func firstAuthMsg(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	return findAuthMsg(cmd())
}

func findAuthMsg(msg tea.Msg) tea.Msg {
	switch v := msg.(type) {
	case tea.BatchMsg:
		for _, c := range v {
			if c == nil {
				continue
			}
			if out := findAuthMsg(c()); out != nil {
				return out
			}
		}
		return nil
	case AuthSucceededMsg, AuthFailedMsg:
		return v
	default:
		return nil
	}
}
