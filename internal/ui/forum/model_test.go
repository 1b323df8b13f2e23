// Copyright (c) 2025 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package forum

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agoradev/agora-tui/internal/api"
	"github.com/agoradev/agora-tui/internal/model"
	"github.com/agoradev/agora-tui/internal/ui"
	"github.com/agoradev/agora-tui/internal/ui/components"
	"github.com/agoradev/agora-tui/internal/ui/styles"
)

func newTestModel(srv *httptest.Server) (Model, *components.ToastManager) {
	client := api.NewClient(srv.URL+"/board", srv.URL+"/auth", srv.URL+"/forum")
	toasts := components.NewToastManager()
	m := New(client, styles.NewTheme(), toasts)
	m.SetSize(80, 24)
	return m, toasts
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestForum_EnterOpensSelectedTopic(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	m, _ := newTestModel(srv)
	m, _ = m.Update(TopicsLoadedMsg{Topics: []model.Topic{
		{ID: 10, Title: "first"},
		{ID: 20, Title: "second"},
	}})

	m, _ = m.Update(key("j"))
	_, cmd := m.Update(key("enter"))
	if cmd == nil {
		t.Fatal("enter on a topic should navigate")
	}
	nav, ok := cmd().(ui.NavigateMsg)
	if !ok {
		t.Fatalf("got %T, want ui.NavigateMsg", cmd())
	}
	if nav.Screen != ui.ScreenTopic || nav.TopicID != 20 || nav.TopicTitle != "second" {
		t.Errorf("unexpected navigation: %+v", nav)
	}
}

func TestForum_CreatedTopicOpensWithServerID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	m, _ := newTestModel(srv)
	m, cmd := m.Update(TopicCreatedMsg{Topic: model.Topic{ID: 17, Title: "fresh"}})
	if m.Typing() {
		t.Error("create prompt should close after success")
	}
	if cmd == nil {
		t.Fatal("creation should navigate to the new topic")
	}
	nav, ok := cmd().(ui.NavigateMsg)
	if !ok {
		t.Fatalf("got %T, want ui.NavigateMsg", cmd())
	}
	if nav.TopicID != 17 {
		t.Errorf("navigation must use the server-assigned id, got %d", nav.TopicID)
	}
}

func TestForum_BlankTitleSendsNothing(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
	}))
	defer srv.Close()

	m, toasts := newTestModel(srv)
	m, _ = m.Update(key("n"))
	if !m.Typing() {
		t.Fatal("n should open the title prompt")
	}

	_, cmd := m.Update(key("enter"))
	if cmd != nil {
		cmd()
	}
	if got := requests.Load(); got != 0 {
		t.Errorf("blank title made %d requests, want 0", got)
	}
	if !toasts.HasToasts() {
		t.Error("blank title should warn locally")
	}
}

func TestForum_FetchFailureKeepsTopics(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	m, _ := newTestModel(srv)
	m, _ = m.Update(TopicsLoadedMsg{Topics: []model.Topic{{ID: 1, Title: "keep"}}})
	m, _ = m.Update(FetchFailedMsg{Err: errors.New("boom")})

	if m.Loading() {
		t.Error("loading indicator must be off after a failure")
	}
	if len(m.Topics()) != 1 {
		t.Errorf("failed fetch must not clear topics: %+v", m.Topics())
	}
}

func TestForum_CursorClampsWhenListShrinks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	m, _ := newTestModel(srv)
	m, _ = m.Update(TopicsLoadedMsg{Topics: []model.Topic{{ID: 1}, {ID: 2}, {ID: 3}}})
	m, _ = m.Update(key("j"))
	m, _ = m.Update(key("j"))

	m, _ = m.Update(TopicsLoadedMsg{Topics: []model.Topic{{ID: 1}}})
	if m.Cursor() != 0 {
		t.Errorf("cursor should clamp to the new list, got %d", m.Cursor())
	}
}
