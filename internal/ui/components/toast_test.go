// Copyright (c) 2025 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
	"time"
)

func TestToastManager_PushAndActive(t *testing.T) {
	m := NewToastManager()

	m.Error("first")
	m.Info("second")

	active := m.Active()
	if len(active) != 2 {
		t.Fatalf("got %d toasts, want 2", len(active))
	}
	// Newest first.
	if active[0].Message != "second" {
		t.Errorf("head = %q, want newest", active[0].Message)
	}
}

func TestToastManager_CapsStack(t *testing.T) {
	m := NewToastManager()
	for i := 0; i < maxVisibleToasts+3; i++ {
		m.Error("boom")
	}
	if got := len(m.Active()); got != maxVisibleToasts {
		t.Errorf("stack size = %d, want %d", got, maxVisibleToasts)
	}
}

func TestToastManager_DismissAll(t *testing.T) {
	m := NewToastManager()
	m.Warning("careful")
	m.Info("other")

	m.DismissAll()

	if m.HasToasts() {
		t.Error("stack should be empty after DismissAll")
	}
	if got := len(m.Active()); got != 0 {
		t.Errorf("got %d toasts, want 0", got)
	}
}

func TestToastManager_PruneExpired(t *testing.T) {
	m := NewToastManager()
	m.Error("will expire")

	// Far future: everything is expired.
	survivors := m.Prune(time.Now().Add(time.Hour))
	if len(survivors) != 0 {
		t.Errorf("got %d survivors, want 0", len(survivors))
	}
	if m.HasToasts() {
		t.Error("HasToasts should be false after prune")
	}
}

func TestToastManager_PruneKeepsFresh(t *testing.T) {
	m := NewToastManager()
	m.Error("fresh")

	survivors := m.Prune(time.Now())
	if len(survivors) != 1 {
		t.Errorf("got %d survivors, want 1", len(survivors))
	}
}

func TestRenderToast_ContainsMessage(t *testing.T) {
	toast := Toast{Message: "could not reach server", Kind: ToastError, Expires: time.Now().Add(time.Second)}
	out := RenderToast(toast, 80)
	if !strings.Contains(out, "could not reach server") {
		t.Errorf("rendered toast missing message: %q", out)
	}
}

func TestRenderToastStack_EmptyIsEmpty(t *testing.T) {
	if out := RenderToastStack(nil, 80, 24); out != "" {
		t.Errorf("empty stack rendered %q", out)
	}
}

func TestPlural(t *testing.T) {
	if got := Plural(1, "message", "messages"); got != "message" {
		t.Errorf("Plural(1) = %q", got)
	}
	if got := Plural(3, "message", "messages"); got != "messages" {
		t.Errorf("Plural(3) = %q", got)
	}
}
