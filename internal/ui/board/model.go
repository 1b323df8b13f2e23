// Copyright (c) 2025 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package board implements the public wall screen.
package board

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agoradev/agora-tui/internal/api"
	"github.com/agoradev/agora-tui/internal/config"
	"github.com/agoradev/agora-tui/internal/model"
	"github.com/agoradev/agora-tui/internal/timeutil"
	"github.com/agoradev/agora-tui/internal/ui"
	"github.com/agoradev/agora-tui/internal/ui/components"
	"github.com/agoradev/agora-tui/internal/ui/styles"
)

// fetchTimeout bounds one list or post request.
const fetchTimeout = 15 * time.Second

// =============================================================================
// MESSAGES
// =============================================================================

// MessagesLoadedMsg carries a fresh board listing. Responses are
// applied in arrival order: overlapping refreshes are allowed and the
// latest response wins, there is no request fencing.
type MessagesLoadedMsg struct {
	Messages []model.Message
}

// FetchFailedMsg reports a failed board fetch. The previous listing
// stays on screen.
type FetchFailedMsg struct {
	Err error
}

// PostedMsg reports a successful post. The board is refetched rather
// than merging the new message locally.
type PostedMsg struct{}

// PostFailedMsg reports a rejected or failed post.
type PostFailedMsg struct {
	Err error
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the board screen.
type Model struct {
	client *api.Client
	theme  *styles.Theme
	toasts *components.ToastManager

	viewport viewport.Model
	compose  textarea.Model
	spinner  spinner.Model

	messages []model.Message
	loading  bool
	posting  bool
	focused  bool // compose area has focus
	compact  bool

	width  int
	height int
}

// New creates the board screen.
func New(client *api.Client, theme *styles.Theme, toasts *components.ToastManager) Model {
	ta := textarea.New()
	ta.Placeholder = "Write something..."
	ta.CharLimit = 2000
	ta.SetHeight(3)
	ta.ShowLineNumbers = false

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Spinner

	return Model{
		client:  client,
		theme:   theme,
		toasts:  toasts,
		compose: ta,
		spinner: sp,
		compact: config.Global().UI.CompactMode,
		// Init fetches immediately; start in the loading state so the
		// first frame shows the spinner instead of an empty board.
		loading: true,
	}
}

// Init starts the first fetch.
func (m Model) Init() tea.Cmd {
	return m.Refresh()
}

// Refresh returns a command that fetches the board listing and flips
// the loading flag on.
func (m *Model) Refresh() tea.Cmd {
	m.loading = true
	client := m.client
	fetch := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		msgs, err := client.ListMessages(ctx)
		if err != nil {
			return FetchFailedMsg{Err: err}
		}
		return MessagesLoadedMsg{Messages: msgs}
	}
	return tea.Batch(fetch, m.spinner.Tick)
}

func (m *Model) postCmd(content string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		if _, err := client.PostMessage(ctx, content); err != nil {
			return PostFailedMsg{Err: err}
		}
		return PostedMsg{}
	}
}

// SetSize propagates the window size.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height

	composeHeight := m.compose.Height() + 2
	listHeight := height - composeHeight
	if listHeight < 3 {
		listHeight = 3
	}
	m.viewport.Width = width
	m.viewport.Height = listHeight
	m.compose.SetWidth(width - 4)
	m.viewport.SetContent(m.renderMessages())
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles board messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case MessagesLoadedMsg:
		m.loading = false
		m.messages = msg.Messages
		m.viewport.SetContent(m.renderMessages())
		m.viewport.GotoTop()
		return m, nil

	case FetchFailedMsg:
		// Keep whatever was on screen; only the indicator changes.
		m.loading = false
		m.toasts.Error("Could not load the board: " + ui.ErrorText(msg.Err))
		return m, nil

	case PostedMsg:
		m.posting = false
		m.compose.Reset()
		m.toasts.Success("Posted")
		return m, m.Refresh()

	case PostFailedMsg:
		m.posting = false
		m.toasts.Error("Post failed: " + ui.ErrorText(msg.Err))
		return m, nil

	case spinner.TickMsg:
		if !m.loading && !m.posting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.focused {
		switch msg.String() {
		case "esc":
			m.focused = false
			m.compose.Blur()
			return m, nil
		case "ctrl+s":
			return m.submit()
		}
		var cmd tea.Cmd
		m.compose, cmd = m.compose.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "i":
		m.focused = true
		return m, m.compose.Focus()
	case "r":
		return m, m.Refresh()
	case "f":
		return m, ui.Navigate(ui.ScreenForum)
	case "l":
		return m, ui.Navigate(ui.ScreenLogin)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// submit validates locally before any request goes out: blank or
// whitespace-only content never reaches the server.
func (m Model) submit() (Model, tea.Cmd) {
	content := m.compose.Value()
	if strings.TrimSpace(content) == "" {
		m.toasts.Warning("Message is empty")
		return m, nil
	}

	m.posting = true
	return m, tea.Batch(m.postCmd(content), m.spinner.Tick)
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the board screen body.
func (m Model) View() string {
	var b strings.Builder

	if m.loading && len(m.messages) == 0 {
		b.WriteString(m.theme.LoadingText.Render(m.spinner.View() + " Loading the board..."))
		b.WriteString("\n")
	} else {
		b.WriteString(m.viewport.View())
		b.WriteString("\n")
	}

	label := "[i] write"
	if m.focused {
		label = "ctrl+s to post, esc to leave"
		if m.posting {
			label = m.spinner.View() + " posting..."
		}
	}
	b.WriteString(m.theme.InputContainer.Width(m.width).Render(
		m.compose.View() + "\n" + m.theme.FormHint.Render(label)))

	return b.String()
}

func (m Model) renderMessages() string {
	if len(m.messages) == 0 {
		return m.theme.EmptyState.Render("Nothing here yet. Be the first to post.")
	}

	now := time.Now()
	// Compact mode drops the separator line between messages.
	joiner := "\n"
	if !m.compact {
		joiner = "\n" + m.theme.Separator.Render(strings.Repeat("-", max(1, m.width-2))) + "\n"
	}

	parts := make([]string, 0, len(m.messages))
	for _, msg := range m.messages {
		meta := m.theme.MessageMeta.Render(timeutil.Relative(msg.CreatedAt.Time, now))
		body := m.theme.MessageContent.Width(max(10, m.width-2)).Render(msg.Content)
		parts = append(parts, lipgloss.JoinVertical(lipgloss.Left, meta, body))
	}
	return strings.Join(parts, joiner)
}

// KeyHints returns the status bar hints for this screen.
func (m Model) KeyHints() []components.KeyHint {
	if m.focused {
		return []components.KeyHint{
			{Key: "ctrl+s", Desc: "post"},
			{Key: "esc", Desc: "done writing"},
		}
	}
	return []components.KeyHint{
		{Key: "i", Desc: "write"},
		{Key: "r", Desc: "refresh"},
		{Key: "f", Desc: "forum"},
		{Key: "l", Desc: "login"},
		{Key: "q", Desc: "quit"},
	}
}

// Loading reports whether a fetch is in flight, for tests and the root
// spinner.
func (m Model) Loading() bool { return m.loading }

// Messages exposes the current listing for tests.
func (m Model) Messages() []model.Message { return m.messages }

// Focused reports whether the compose area owns the keyboard.
func (m Model) Focused() bool { return m.focused }
