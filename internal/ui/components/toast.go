// Copyright (c) 2025 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides shared UI components for the agora TUI.
//
// This file implements non-blocking toasts. Fetch and submit errors
// appear in the bottom-right corner and auto-dismiss, so a failed
// refresh never takes over the screen or destroys the list the user is
// reading.
package components

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agoradev/agora-tui/internal/ui/styles"
)

// =============================================================================
// TOAST TYPES
// =============================================================================

// ToastKind classifies a toast notification.
type ToastKind int

const (
	// ToastInfo is an informational toast.
	ToastInfo ToastKind = iota
	// ToastError reports a failed request.
	ToastError
	// ToastWarning reports a local problem, like blank input.
	ToastWarning
	// ToastSuccess confirms a completed action.
	ToastSuccess
)

// Auto-dismiss durations. Errors stay longer so they can be read.
const (
	infoDuration    = 4 * time.Second
	errorDuration   = 8 * time.Second
	warningDuration = 5 * time.Second
)

// Toast is a single notification.
type Toast struct {
	Message string
	Kind    ToastKind
	Expires time.Time
}

// Expired reports whether the toast should be removed.
func (t Toast) Expired(now time.Time) bool {
	return !now.Before(t.Expires)
}

// =============================================================================
// TOAST MANAGER
// =============================================================================

// maxVisibleToasts caps the stack so a burst of failures cannot cover
// the whole screen.
const maxVisibleToasts = 4

// ToastManager owns the active toast stack. Safe for concurrent use;
// commands running off the UI goroutine may push toasts.
type ToastManager struct {
	mu     sync.Mutex
	toasts []Toast
}

// NewToastManager creates an empty manager.
func NewToastManager() *ToastManager {
	return &ToastManager{}
}

func (m *ToastManager) push(message string, kind ToastKind, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t := Toast{
		Message: message,
		Kind:    kind,
		Expires: time.Now().Add(ttl),
	}

	// Newest first, oldest dropped past the cap.
	m.toasts = append([]Toast{t}, m.toasts...)
	if len(m.toasts) > maxVisibleToasts {
		m.toasts = m.toasts[:maxVisibleToasts]
	}
}

// Error pushes an error toast.
func (m *ToastManager) Error(message string) {
	m.push(message, ToastError, errorDuration)
}

// Warning pushes a warning toast.
func (m *ToastManager) Warning(message string) {
	m.push(message, ToastWarning, warningDuration)
}

// Info pushes an informational toast.
func (m *ToastManager) Info(message string) {
	m.push(message, ToastInfo, infoDuration)
}

// Success pushes a success toast.
func (m *ToastManager) Success(message string) {
	m.push(message, ToastSuccess, infoDuration)
}

// DismissAll clears the stack, bound to a global key in the root model.
func (m *ToastManager) DismissAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.toasts = nil
}

// Prune drops expired toasts and returns the survivors, newest first.
func (m *ToastManager) Prune(now time.Time) []Toast {
	m.mu.Lock()
	defer m.mu.Unlock()

	active := m.toasts[:0]
	for _, t := range m.toasts {
		if !t.Expired(now) {
			active = append(active, t)
		}
	}
	m.toasts = active
	return m.snapshot()
}

// Active returns a copy of the current stack.
func (m *ToastManager) Active() []Toast {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot()
}

func (m *ToastManager) snapshot() []Toast {
	out := make([]Toast, len(m.toasts))
	copy(out, m.toasts)
	return out
}

// HasToasts reports whether anything is on screen.
func (m *ToastManager) HasToasts() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.toasts) > 0
}

// =============================================================================
// TOAST MESSAGES
// =============================================================================

// ToastTickMsg drives expiry. The root model requests it while any
// toast is visible.
type ToastTickMsg struct {
	Time time.Time
}

// ToastTickCmd ticks the toast stack every 250ms.
func ToastTickCmd() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(t time.Time) tea.Msg {
		return ToastTickMsg{Time: t}
	})
}

// =============================================================================
// TOAST RENDERING
// =============================================================================

// RenderToast renders a single toast box.
func RenderToast(t Toast, width int) string {
	maxWidth := 56
	if width > 0 && width-6 < maxWidth {
		maxWidth = width - 6
	}
	if maxWidth < 24 {
		maxWidth = 24
	}

	var accent lipgloss.AdaptiveColor
	var icon string
	switch t.Kind {
	case ToastError:
		accent = styles.Rose
		icon = styles.StatusIndicators.Error
	case ToastWarning:
		accent = styles.Amber
		icon = styles.StatusIndicators.Warning
	case ToastSuccess:
		accent = styles.Emerald
		icon = styles.StatusIndicators.Success
	default:
		accent = styles.Teal
		icon = styles.StatusIndicators.Info
	}

	iconStyle := lipgloss.NewStyle().Foreground(accent).Bold(true)
	body := lipgloss.NewStyle().
		Foreground(styles.TextPrimary).
		Width(maxWidth - 6).
		Render(t.Message)

	box := lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(0, 1).
		MaxWidth(maxWidth)

	return box.Render(iconStyle.Render(icon+" ") + body)
}

// RenderToastStack renders the active toasts in the bottom-right corner.
func RenderToastStack(toasts []Toast, width, height int) string {
	if len(toasts) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(toasts))
	for _, t := range toasts {
		rendered = append(rendered, RenderToast(t, width))
	}
	stack := lipgloss.JoinVertical(lipgloss.Right, rendered...)
	stack = lipgloss.NewStyle().MarginRight(1).MarginBottom(1).Render(stack)

	if width > 0 && height > 0 {
		return lipgloss.Place(width, height, lipgloss.Right, lipgloss.Bottom, stack)
	}
	return stack
}

// Plural is a tiny helper for toast copy ("3 new messages").
func Plural(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}
