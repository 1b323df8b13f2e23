// Copyright (c) 2025 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package login implements the login and registration screen.
package login

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agoradev/agora-tui/internal/api"
	"github.com/agoradev/agora-tui/internal/session"
	"github.com/agoradev/agora-tui/internal/ui"
	"github.com/agoradev/agora-tui/internal/ui/components"
	"github.com/agoradev/agora-tui/internal/ui/styles"
)

const submitTimeout = 15 * time.Second

// Mode selects which form is shown.
type Mode int

const (
	// ModeLogin asks for email and password.
	ModeLogin Mode = iota
	// ModeRegister additionally asks for a username.
	ModeRegister
)

// =============================================================================
// MESSAGES
// =============================================================================

// AuthSucceededMsg carries the credentials of a successful login or
// registration. The session has already been persisted when this
// message is seen.
type AuthSucceededMsg struct {
	Creds api.Credentials
}

// AuthFailedMsg reports a rejected or failed auth request.
type AuthFailedMsg struct {
	Err error
}

// =============================================================================
// MODEL
// =============================================================================

const (
	fieldUsername = iota
	fieldEmail
	fieldPassword
	fieldCount
)

// Model is the login/register screen.
type Model struct {
	client *api.Client
	store  *session.Store
	theme  *styles.Theme
	toasts *components.ToastManager

	mode       Mode
	inputs     [fieldCount]textinput.Model
	focusIndex int
	submitting bool
	spinner    spinner.Model

	width  int
	height int
}

// New creates the login screen.
func New(client *api.Client, store *session.Store, theme *styles.Theme, toasts *components.ToastManager) Model {
	var inputs [fieldCount]textinput.Model

	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 64
	inputs[fieldUsername] = username

	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 128
	inputs[fieldEmail] = email

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'
	inputs[fieldPassword] = password

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Spinner

	m := Model{
		client:     client,
		store:      store,
		theme:      theme,
		toasts:     toasts,
		mode:       ModeLogin,
		inputs:     inputs,
		focusIndex: fieldEmail,
		spinner:    sp,
	}
	m.inputs[fieldEmail].Focus()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// SetSize propagates the window size.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	for i := range m.inputs {
		m.inputs[i].Width = min(48, width-8)
	}
}

// Reset clears the form, keeping the selected mode.
func (m *Model) Reset() {
	for i := range m.inputs {
		m.inputs[i].Reset()
	}
	m.submitting = false
	m.setFocus(m.firstField())
}

func (m Model) firstField() int {
	if m.mode == ModeRegister {
		return fieldUsername
	}
	return fieldEmail
}

func (m Model) fields() []int {
	if m.mode == ModeRegister {
		return []int{fieldUsername, fieldEmail, fieldPassword}
	}
	return []int{fieldEmail, fieldPassword}
}

func (m *Model) setFocus(index int) {
	m.focusIndex = index
	for i := range m.inputs {
		if i == index {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles login screen messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case AuthSucceededMsg:
		m.submitting = false
		user := msg.Creds.User
		m.toasts.Success("Welcome, " + user.Username)
		return m, func() tea.Msg { return ui.LoggedInMsg{User: user} }

	case AuthFailedMsg:
		m.submitting = false
		m.toasts.Error(ui.ErrorText(msg.Err))
		return m, nil

	case spinner.TickMsg:
		if !m.submitting {
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
	if m.submitting {
		// One submission at a time; the form is locked while in flight.
		return m, nil
	}

	switch msg.String() {
	case "tab", "down":
		m.advanceFocus(1)
		return m, nil
	case "shift+tab", "up":
		m.advanceFocus(-1)
		return m, nil
	case "ctrl+t":
		return m.toggleMode()
	case "enter":
		return m.submit()
	case "esc":
		return m, ui.Navigate(ui.ScreenBoard)
	}

	var cmd tea.Cmd
	m.inputs[m.focusIndex], cmd = m.inputs[m.focusIndex].Update(msg)
	return m, cmd
}

func (m *Model) advanceFocus(delta int) {
	fields := m.fields()
	pos := 0
	for i, f := range fields {
		if f == m.focusIndex {
			pos = i
			break
		}
	}
	pos = (pos + delta + len(fields)) % len(fields)
	m.setFocus(fields[pos])
}

func (m Model) toggleMode() (Model, tea.Cmd) {
	if m.mode == ModeLogin {
		m.mode = ModeRegister
	} else {
		m.mode = ModeLogin
	}
	m.setFocus(m.firstField())
	return m, nil
}

// submit validates every visible field locally; a blank field shows a
// warning and sends nothing.
func (m Model) submit() (Model, tea.Cmd) {
	username := strings.TrimSpace(m.inputs[fieldUsername].Value())
	email := strings.TrimSpace(m.inputs[fieldEmail].Value())
	password := m.inputs[fieldPassword].Value()

	if m.mode == ModeRegister && username == "" {
		m.toasts.Warning("Username is required")
		return m, nil
	}
	if email == "" {
		m.toasts.Warning("Email is required")
		return m, nil
	}
	if strings.TrimSpace(password) == "" {
		m.toasts.Warning("Password is required")
		return m, nil
	}

	m.submitting = true
	return m, tea.Batch(m.authCmd(username, email, password), m.spinner.Tick)
}

func (m Model) authCmd(username, email, password string) tea.Cmd {
	client := m.client
	store := m.store
	mode := m.mode
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
		defer cancel()

		var creds api.Credentials
		var err error
		if mode == ModeRegister {
			creds, err = client.Register(ctx, username, email, password)
		} else {
			creds, err = client.Login(ctx, email, password)
		}
		if err != nil {
			return AuthFailedMsg{Err: err}
		}

		// Persist before announcing, so guarded screens see the session
		// the moment they are entered.
		if err := store.Save(creds.User, creds.Token); err != nil {
			return AuthFailedMsg{Err: err}
		}
		return AuthSucceededMsg{Creds: creds}
	}
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the login screen body.
func (m Model) View() string {
	var b strings.Builder

	title := "Log in"
	hint := "ctrl+t to create an account instead"
	if m.mode == ModeRegister {
		title = "Create an account"
		hint = "ctrl+t to log in instead"
	}

	b.WriteString(m.theme.FormTitle.Render(title))
	b.WriteString("\n")

	labels := map[int]string{
		fieldUsername: "Username",
		fieldEmail:    "Email",
		fieldPassword: "Password",
	}
	for _, f := range m.fields() {
		label := m.theme.InputLabel.Render(labels[f])
		if f == m.focusIndex {
			label = m.theme.InputFocused.Render(labels[f])
		}
		b.WriteString(label + "\n" + m.inputs[f].View() + "\n\n")
	}

	if m.submitting {
		b.WriteString(m.theme.LoadingText.Render(m.spinner.View() + " Signing in..."))
	} else {
		b.WriteString(m.theme.FormHint.Render(hint))
	}

	form := lipgloss.NewStyle().Padding(1, 2).Render(b.String())
	if m.width > 0 {
		return lipgloss.Place(m.width, max(1, m.height), lipgloss.Center, lipgloss.Top, form)
	}
	return form
}

// KeyHints returns the status bar hints for this screen.
func (m Model) KeyHints() []components.KeyHint {
	return []components.KeyHint{
		{Key: "enter", Desc: "submit"},
		{Key: "tab", Desc: "next field"},
		{Key: "ctrl+t", Desc: "switch mode"},
		{Key: "esc", Desc: "back"},
	}
}

// CurrentMode exposes the active mode for tests.
func (m Model) CurrentMode() Mode { return m.mode }

// Submitting reports whether an auth request is in flight.
func (m Model) Submitting() bool { return m.submitting }
