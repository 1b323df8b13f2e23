// Copyright (c) 2025 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package topic implements the single-topic screen.
package topic

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
	"github.com/agoradev/agora-tui/internal/util"
)

const fetchTimeout = 15 * time.Second

// =============================================================================
// MESSAGES
// =============================================================================

// MessagesLoadedMsg carries a topic's replies, oldest first as served.
type MessagesLoadedMsg struct {
	TopicID  int64
	Messages []model.TopicMessage
}

// FetchFailedMsg reports a failed fetch; the previous thread stays.
type FetchFailedMsg struct {
	Err error
}

// RepliedMsg reports a successful reply; the thread is refetched.
type RepliedMsg struct{}

// ReplyFailedMsg reports a rejected or failed reply.
type ReplyFailedMsg struct {
	Err error
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the topic screen. It is re-pointed at a topic with Open
// rather than rebuilt, so viewport and composer state survive size
// changes.
type Model struct {
	client *api.Client
	theme  *styles.Theme
	toasts *components.ToastManager

	topicID    int64
	topicTitle string
	messages   []model.TopicMessage

	viewport viewport.Model
	reply    textarea.Model
	spinner  spinner.Model

	loading bool
	posting bool
	focused bool
	compact bool

	width  int
	height int
}

// New creates the topic screen.
func New(client *api.Client, theme *styles.Theme, toasts *components.ToastManager) Model {
	ta := textarea.New()
	ta.Placeholder = "Write a reply..."
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
		reply:   ta,
		spinner: sp,
		compact: config.Global().UI.CompactMode,
	}
}

// Open points the screen at a topic and returns the fetch command.
// State from a previously viewed topic is discarded.
func (m *Model) Open(id int64, title string) tea.Cmd {
	m.topicID = id
	m.topicTitle = title
	m.messages = nil
	m.loading = true
	m.posting = false
	m.focused = false
	m.reply.Reset()
	m.reply.Blur()
	m.viewport.SetContent("")
	return tea.Batch(m.fetchCmd(), m.spinner.Tick)
}

func (m *Model) fetchCmd() tea.Cmd {
	client := m.client
	id := m.topicID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		msgs, err := client.ListTopicMessages(ctx, id)
		if err != nil {
			return FetchFailedMsg{Err: err}
		}
		return MessagesLoadedMsg{TopicID: id, Messages: msgs}
	}
}

func (m *Model) replyCmd(content string) tea.Cmd {
	client := m.client
	id := m.topicID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		if _, err := client.PostReply(ctx, id, content); err != nil {
			return ReplyFailedMsg{Err: err}
		}
		return RepliedMsg{}
	}
}

// SetSize propagates the window size.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height

	composeHeight := m.reply.Height() + 2
	listHeight := height - composeHeight - 2
	if listHeight < 3 {
		listHeight = 3
	}
	m.viewport.Width = width
	m.viewport.Height = listHeight
	m.reply.SetWidth(width - 4)
	m.viewport.SetContent(m.renderMessages())
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles topic screen messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case MessagesLoadedMsg:
		// A stale response for a previously viewed topic is dropped;
		// within the same topic, latest response wins.
		if msg.TopicID != m.topicID {
			return m, nil
		}
		m.loading = false
		m.messages = msg.Messages
		m.viewport.SetContent(m.renderMessages())
		m.viewport.GotoBottom()
		return m, nil

	case FetchFailedMsg:
		m.loading = false
		m.toasts.Error("Could not load the topic: " + ui.ErrorText(msg.Err))
		return m, nil

	case RepliedMsg:
		m.posting = false
		m.reply.Reset()
		return m, tea.Batch(m.fetchCmd(), m.spinner.Tick)

	case ReplyFailedMsg:
		m.posting = false
		m.toasts.Error("Reply failed: " + ui.ErrorText(msg.Err))
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
			m.reply.Blur()
			return m, nil
		case "ctrl+s":
			return m.submit()
		}
		var cmd tea.Cmd
		m.reply, cmd = m.reply.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "i":
		m.focused = true
		return m, m.reply.Focus()
	case "r":
		m.loading = true
		return m, tea.Batch(m.fetchCmd(), m.spinner.Tick)
	case "esc", "b":
		return m, ui.Navigate(ui.ScreenForum)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// submit rejects blank replies locally; nothing is sent.
func (m Model) submit() (Model, tea.Cmd) {
	content := m.reply.Value()
	if strings.TrimSpace(content) == "" {
		m.toasts.Warning("Reply is empty")
		return m, nil
	}

	m.posting = true
	return m, tea.Batch(m.replyCmd(content), m.spinner.Tick)
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the topic screen body.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.theme.TopicTitle.Render(util.TruncateWidth(m.topicTitle, max(10, m.width-2))))
	b.WriteString("\n")

	if m.loading && len(m.messages) == 0 {
		b.WriteString(m.theme.LoadingText.Render(m.spinner.View() + " Loading the topic..."))
		b.WriteString("\n")
	} else {
		b.WriteString(m.viewport.View())
		b.WriteString("\n")
	}

	label := "[i] reply"
	if m.focused {
		label = "ctrl+s to reply, esc to leave"
		if m.posting {
			label = m.spinner.View() + " posting..."
		}
	}
	b.WriteString(m.theme.InputContainer.Width(m.width).Render(
		m.reply.View() + "\n" + m.theme.FormHint.Render(label)))

	return b.String()
}

func (m Model) renderMessages() string {
	if len(m.messages) == 0 {
		return m.theme.EmptyState.Render("No replies yet.")
	}

	now := time.Now()
	parts := make([]string, 0, len(m.messages))
	for _, msg := range m.messages {
		header := m.theme.MessageAuthor.Render(msg.AuthorName()) + " " +
			m.theme.MessageMeta.Render(timeutil.Relative(msg.CreatedAt.Time, now))
		body := m.theme.MessageContent.Width(max(10, m.width-2)).Render(msg.Content)
		parts = append(parts, lipgloss.JoinVertical(lipgloss.Left, header, body))
	}
	// Compact mode drops the blank line between replies.
	if m.compact {
		return strings.Join(parts, "\n")
	}
	return strings.Join(parts, "\n\n")
}

// KeyHints returns the status bar hints for this screen.
func (m Model) KeyHints() []components.KeyHint {
	if m.focused {
		return []components.KeyHint{
			{Key: "ctrl+s", Desc: "reply"},
			{Key: "esc", Desc: "done writing"},
		}
	}
	return []components.KeyHint{
		{Key: "i", Desc: "reply"},
		{Key: "r", Desc: "refresh"},
		{Key: "esc", Desc: "forum"},
		{Key: "q", Desc: "quit"},
	}
}

// TopicID exposes the open topic for the root model and tests.
func (m Model) TopicID() int64 { return m.topicID }

// Loading reports whether a fetch is in flight.
func (m Model) Loading() bool { return m.loading }

// Messages exposes the current thread for tests.
func (m Model) Messages() []model.TopicMessage { return m.messages }

// Focused reports whether the reply composer owns the keyboard.
func (m Model) Focused() bool { return m.focused }
