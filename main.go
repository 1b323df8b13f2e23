// agora TUI - a terminal client for the agora message board.
//
// Copyright (c) 2025 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agoradev/agora-tui/internal/api"
	"github.com/agoradev/agora-tui/internal/cli"
	"github.com/agoradev/agora-tui/internal/config"
	"github.com/agoradev/agora-tui/internal/session"
	"github.com/agoradev/agora-tui/internal/ui"
	"github.com/agoradev/agora-tui/internal/ui/board"
	"github.com/agoradev/agora-tui/internal/ui/components"
	"github.com/agoradev/agora-tui/internal/ui/forum"
	"github.com/agoradev/agora-tui/internal/ui/login"
	"github.com/agoradev/agora-tui/internal/ui/styles"
	"github.com/agoradev/agora-tui/internal/ui/topic"
)

// Version is set at build time via -ldflags.
var Version = "0.2.0"

func main() {
	cli.Version = Version

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "agora: %v\n", err)
		os.Exit(1)
	}
	config.SetGlobal(cfg)

	env, err := cli.NewEnv(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "agora: %v\n", err)
		os.Exit(1)
	}

	args := cli.NewArgParser(os.Args[1:])
	if args.Subcommand() != "" {
		os.Exit(cli.Run(env, args))
	}

	m := NewModel(cfg, env.Store, env.Client)
	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.UI.MouseEnabled {
		opts = append(opts, tea.WithMouseCellMotion())
	}

	if _, err := tea.NewProgram(m, opts...).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "agora: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// ROOT MODEL
// =============================================================================

// Model is the root model. It owns the screen models, routes messages
// to the active one and enforces the auth guard on navigation.
type Model struct {
	cfg    *config.Config
	store  *session.Store
	client *api.Client
	theme  *styles.Theme
	toasts *components.ToastManager

	state ui.Screen
	// pending remembers a guarded destination while the user logs in.
	pending *ui.NavigateMsg

	board board.Model
	login login.Model
	forum forum.Model
	topic topic.Model

	visibleToasts []components.Toast
	ticking       bool

	width  int
	height int
}

// NewModel wires the screens to their shared dependencies.
func NewModel(cfg *config.Config, store *session.Store, client *api.Client) Model {
	theme := styles.NewTheme()
	toasts := components.NewToastManager()

	return Model{
		cfg:    cfg,
		store:  store,
		client: client,
		theme:  theme,
		toasts: toasts,
		state:  ui.ScreenBoard,
		board:  board.New(client, theme, toasts),
		login:  login.New(client, store, theme, toasts),
		forum:  forum.New(client, theme, toasts),
		topic:  topic.New(client, theme, toasts),
	}
}

// Init implements tea.Model. The board is the start screen and fetches
// immediately.
func (m Model) Init() tea.Cmd {
	return m.board.Init()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		content := m.contentHeight()
		m.board.SetSize(msg.Width, content)
		m.login.SetSize(msg.Width, content)
		m.forum.SetSize(msg.Width, content)
		m.topic.SetSize(msg.Width, content)
		return m, nil

	case components.ToastTickMsg:
		m.visibleToasts = m.toasts.Prune(msg.Time)
		if len(m.visibleToasts) > 0 {
			return m, components.ToastTickCmd()
		}
		m.ticking = false
		return m, nil

	case ui.NavigateMsg:
		return m.navigate(msg)

	case ui.LoggedInMsg:
		// Resume the destination that triggered the login detour.
		dest := ui.NavigateMsg{Screen: ui.ScreenForum}
		if m.pending != nil {
			dest = *m.pending
			m.pending = nil
		}
		return m.navigate(dest)

	case ui.LoggedOutMsg:
		return m.navigate(ui.NavigateMsg{Screen: ui.ScreenBoard})

	case tea.KeyMsg:
		if handled, model, cmd := m.handleGlobalKey(msg); handled {
			return model, cmd
		}
	}

	return m.routeToActive(msg)
}

// contentHeight is the space left for the active screen between the
// header and the status bar.
func (m Model) contentHeight() int {
	h := m.height - 4
	if h < 3 {
		h = 3
	}
	return h
}

// typing reports whether the active screen currently owns the
// keyboard for text entry, which suppresses global shortcuts.
func (m Model) typing() bool {
	switch m.state {
	case ui.ScreenLogin:
		return true
	case ui.ScreenBoard:
		return m.board.Focused()
	case ui.ScreenForum:
		return m.forum.Typing()
	case ui.ScreenTopic:
		return m.topic.Focused()
	}
	return false
}

func (m Model) handleGlobalKey(msg tea.KeyMsg) (bool, tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return true, m, tea.Quit
	}
	if m.typing() {
		return false, m, nil
	}

	switch msg.String() {
	case "q":
		return true, m, tea.Quit
	case "x":
		if !m.toasts.HasToasts() {
			return false, m, nil
		}
		m.toasts.DismissAll()
		m.visibleToasts = nil
		return true, m, nil
	case "L":
		if !m.store.IsAuthenticated() {
			return false, m, nil
		}
		if err := m.store.Clear(); err != nil {
			m.toasts.Error("Could not log out: " + err.Error())
			return true, m, m.ensureToastTick()
		}
		m.toasts.Info("Logged out")
		cmd := func() tea.Msg { return ui.LoggedOutMsg{} }
		return true, m, tea.Batch(cmd, m.ensureToastTick())
	}
	return false, m, nil
}

// navigate applies the auth guard and switches screens.
func (m Model) navigate(msg ui.NavigateMsg) (tea.Model, tea.Cmd) {
	if msg.Screen.RequiresAuth() && !m.store.IsAuthenticated() {
		m.pending = &msg
		m.state = ui.ScreenLogin
		m.login.Reset()
		m.toasts.Info("Log in to enter the forum")
		return m, tea.Batch(m.login.Init(), m.ensureToastTick())
	}

	m.state = msg.Screen
	switch msg.Screen {
	case ui.ScreenBoard:
		return m, m.board.Refresh()
	case ui.ScreenLogin:
		m.login.Reset()
		return m, m.login.Init()
	case ui.ScreenForum:
		return m, m.forum.Refresh()
	case ui.ScreenTopic:
		return m, m.topic.Open(msg.TopicID, msg.TopicTitle)
	}
	return m, nil
}

// routeToActive forwards a message to the active screen only. Fetch
// results always reach their owning screen even when it is not active,
// so a slow response cannot be lost by navigating away.
func (m Model) routeToActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg.(type) {
	case board.MessagesLoadedMsg, board.FetchFailedMsg, board.PostedMsg, board.PostFailedMsg:
		m.board, cmd = m.board.Update(msg)
	case login.AuthSucceededMsg, login.AuthFailedMsg:
		m.login, cmd = m.login.Update(msg)
	case forum.TopicsLoadedMsg, forum.FetchFailedMsg, forum.TopicCreatedMsg, forum.CreateFailedMsg:
		m.forum, cmd = m.forum.Update(msg)
	case topic.MessagesLoadedMsg, topic.FetchFailedMsg, topic.RepliedMsg, topic.ReplyFailedMsg:
		m.topic, cmd = m.topic.Update(msg)
	default:
		switch m.state {
		case ui.ScreenBoard:
			m.board, cmd = m.board.Update(msg)
		case ui.ScreenLogin:
			m.login, cmd = m.login.Update(msg)
		case ui.ScreenForum:
			m.forum, cmd = m.forum.Update(msg)
		case ui.ScreenTopic:
			m.topic, cmd = m.topic.Update(msg)
		}
	}

	return m, tea.Batch(cmd, m.ensureToastTick())
}

// ensureToastTick starts the toast expiry tick when something is on
// screen and no tick is already scheduled.
func (m *Model) ensureToastTick() tea.Cmd {
	if m.ticking || !m.toasts.HasToasts() {
		return nil
	}
	m.ticking = true
	m.visibleToasts = m.toasts.Active()
	return components.ToastTickCmd()
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 {
		return "starting agora..."
	}

	username := ""
	if user, ok := m.store.CurrentUser(); ok {
		username = user.Username
	}
	header := components.RenderHeader(m.theme, m.width, m.state.String(), username)

	var body string
	var hints []components.KeyHint
	switch m.state {
	case ui.ScreenBoard:
		body = m.board.View()
		hints = m.board.KeyHints()
	case ui.ScreenLogin:
		body = m.login.View()
		hints = m.login.KeyHints()
	case ui.ScreenForum:
		body = m.forum.View()
		hints = m.forum.KeyHints()
	case ui.ScreenTopic:
		body = m.topic.View()
		hints = m.topic.KeyHints()
	}

	out := header + "\n" + body
	if len(m.visibleToasts) > 0 {
		out += "\n" + components.RenderToastStack(m.visibleToasts, m.width, 0)
	}
	out += "\n" + components.RenderStatusBar(m.theme, m.width, hints)
	return out
}
