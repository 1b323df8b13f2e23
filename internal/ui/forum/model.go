// Copyright (c) 2025 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package forum implements the topic list screen.
package forum

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agoradev/agora-tui/internal/api"
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

// TopicsLoadedMsg carries a fresh topic listing. Latest response wins;
// overlapping refreshes are not fenced.
type TopicsLoadedMsg struct {
	Topics []model.Topic
}

// FetchFailedMsg reports a failed topic fetch. The previous listing
// stays on screen.
type FetchFailedMsg struct {
	Err error
}

// TopicCreatedMsg carries the topic returned by the server, including
// its assigned id; the UI navigates straight into it.
type TopicCreatedMsg struct {
	Topic model.Topic
}

// CreateFailedMsg reports a rejected or failed topic creation.
type CreateFailedMsg struct {
	Err error
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the forum screen.
type Model struct {
	client *api.Client
	theme  *styles.Theme
	toasts *components.ToastManager

	topics   []model.Topic
	cursor   int
	loading  bool
	creating bool // new-topic prompt is open
	saving   bool

	titleInput textinput.Model
	spinner    spinner.Model

	width  int
	height int
}

// New creates the forum screen.
func New(client *api.Client, theme *styles.Theme, toasts *components.ToastManager) Model {
	ti := textinput.New()
	ti.Placeholder = "Topic title"
	ti.CharLimit = 200

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Spinner

	return Model{
		client:     client,
		theme:      theme,
		toasts:     toasts,
		titleInput: ti,
		spinner:    sp,
		loading:    true,
	}
}

// Init starts the first fetch.
func (m Model) Init() tea.Cmd {
	return m.Refresh()
}

// Refresh returns a command that fetches the topic list.
func (m *Model) Refresh() tea.Cmd {
	m.loading = true
	client := m.client
	fetch := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		topics, err := client.ListTopics(ctx)
		if err != nil {
			return FetchFailedMsg{Err: err}
		}
		return TopicsLoadedMsg{Topics: topics}
	}
	return tea.Batch(fetch, m.spinner.Tick)
}

func (m *Model) createCmd(title string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		topic, err := client.CreateTopic(ctx, title)
		if err != nil {
			return CreateFailedMsg{Err: err}
		}
		return TopicCreatedMsg{Topic: topic}
	}
}

// SetSize propagates the window size.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.titleInput.Width = min(60, width-8)
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles forum messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TopicsLoadedMsg:
		m.loading = false
		m.topics = msg.Topics
		if m.cursor >= len(m.topics) {
			m.cursor = max(0, len(m.topics)-1)
		}
		return m, nil

	case FetchFailedMsg:
		m.loading = false
		m.toasts.Error("Could not load topics: " + ui.ErrorText(msg.Err))
		return m, nil

	case TopicCreatedMsg:
		m.saving = false
		m.creating = false
		m.titleInput.Reset()
		// Open the new topic immediately using the server-assigned id.
		return m, ui.NavigateTopic(msg.Topic.ID, msg.Topic.Title)

	case CreateFailedMsg:
		m.saving = false
		m.toasts.Error("Could not create topic: " + ui.ErrorText(msg.Err))
		return m, nil

	case spinner.TickMsg:
		if !m.loading && !m.saving {
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
	if m.creating {
		switch msg.String() {
		case "esc":
			m.creating = false
			m.titleInput.Reset()
			return m, nil
		case "enter":
			return m.submitTopic()
		}
		var cmd tea.Cmd
		m.titleInput, cmd = m.titleInput.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "j":
		if m.cursor < len(m.topics)-1 {
			m.cursor++
		}
		return m, nil
	case "enter":
		if len(m.topics) == 0 {
			return m, nil
		}
		t := m.topics[m.cursor]
		return m, ui.NavigateTopic(t.ID, t.Title)
	case "n":
		m.creating = true
		return m, m.titleInput.Focus()
	case "r":
		return m, m.Refresh()
	case "esc", "b":
		return m, ui.Navigate(ui.ScreenBoard)
	}

	return m, nil
}

// submitTopic rejects blank titles locally; nothing is sent.
func (m Model) submitTopic() (Model, tea.Cmd) {
	title := m.titleInput.Value()
	if strings.TrimSpace(title) == "" {
		m.toasts.Warning("Title is required")
		return m, nil
	}

	m.saving = true
	return m, tea.Batch(m.createCmd(title), m.spinner.Tick)
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the forum screen body.
func (m Model) View() string {
	var b strings.Builder

	if m.creating {
		b.WriteString(m.theme.FormTitle.Render("New topic"))
		b.WriteString("\n" + m.titleInput.View() + "\n")
		if m.saving {
			b.WriteString(m.theme.LoadingText.Render(m.spinner.View() + " Creating..."))
		} else {
			b.WriteString(m.theme.FormHint.Render("enter to create, esc to cancel"))
		}
		b.WriteString("\n\n")
	}

	switch {
	case m.loading && len(m.topics) == 0:
		b.WriteString(m.theme.LoadingText.Render(m.spinner.View() + " Loading topics..."))
	case len(m.topics) == 0:
		b.WriteString(m.theme.EmptyState.Render("No topics yet. Press n to start one."))
	default:
		b.WriteString(m.renderTopics())
	}

	return b.String()
}

func (m Model) renderTopics() string {
	now := time.Now()
	width := max(20, m.width-2)

	rows := make([]string, 0, len(m.topics))
	for i, t := range m.topics {
		author := "anonymous"
		if t.User != nil && t.User.Username != "" {
			author = t.User.Username
		}

		title := m.theme.TopicTitle.Render(util.TruncateWidth(t.Title, width-4))
		meta := m.theme.TopicMeta.Render(
			"by " + author +
				" · " + strconv.Itoa(t.MessageCount) + " " + components.Plural(t.MessageCount, "message", "messages") +
				" · " + timeutil.Relative(t.LastActivity.Time, now))

		row := title + "\n  " + meta
		if i == m.cursor {
			row = m.theme.TopicSelected.Render("> ") + row
		} else {
			row = "  " + row
		}
		rows = append(rows, row)
	}
	return strings.Join(rows, "\n\n")
}

// KeyHints returns the status bar hints for this screen.
func (m Model) KeyHints() []components.KeyHint {
	if m.creating {
		return []components.KeyHint{
			{Key: "enter", Desc: "create"},
			{Key: "esc", Desc: "cancel"},
		}
	}
	return []components.KeyHint{
		{Key: "enter", Desc: "open"},
		{Key: "n", Desc: "new topic"},
		{Key: "r", Desc: "refresh"},
		{Key: "esc", Desc: "board"},
		{Key: "L", Desc: "logout"},
	}
}

// Loading reports whether a fetch is in flight.
func (m Model) Loading() bool { return m.loading }

// Topics exposes the current listing for tests.
func (m Model) Topics() []model.Topic { return m.topics }

// Cursor exposes the selected row for tests.
func (m Model) Cursor() int { return m.cursor }

// Typing reports whether the new-topic prompt owns the keyboard.
func (m Model) Typing() bool { return m.creating }
