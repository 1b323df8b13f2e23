// Copyright (c) 2025 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui holds the messages shared between the screen models and
// the root model that routes them.
package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agoradev/agora-tui/internal/model"
)

// Screen identifies a top-level screen.
type Screen int

const (
	// ScreenBoard is the public anonymous wall, the start screen.
	ScreenBoard Screen = iota
	// ScreenLogin is the login/register form.
	ScreenLogin
	// ScreenForum is the topic list. Requires authentication.
	ScreenForum
	// ScreenTopic is a single topic's messages. Requires authentication.
	ScreenTopic
)

// String returns the screen name shown in the header.
func (s Screen) String() string {
	switch s {
	case ScreenBoard:
		return "board"
	case ScreenLogin:
		return "login"
	case ScreenForum:
		return "forum"
	case ScreenTopic:
		return "topic"
	}
	return "unknown"
}

// RequiresAuth reports whether the screen is behind the login guard.
func (s Screen) RequiresAuth() bool {
	return s == ScreenForum || s == ScreenTopic
}

// NavigateMsg asks the root model to switch screens. The root applies
// the auth guard: a protected destination without a session detours to
// the login screen and is resumed after a successful login.
type NavigateMsg struct {
	Screen Screen

	// Topic identity, set when Screen is ScreenTopic.
	TopicID    int64
	TopicTitle string
}

// Navigate returns a command that emits a NavigateMsg.
func Navigate(screen Screen) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{Screen: screen} }
}

// NavigateTopic returns a command that opens a specific topic.
func NavigateTopic(id int64, title string) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{Screen: ScreenTopic, TopicID: id, TopicTitle: title}
	}
}

// LoggedInMsg reports a completed login or registration. The login
// screen has already persisted the session when this is emitted.
type LoggedInMsg struct {
	User model.User
}

// LoggedOutMsg reports that the user cleared their session.
type LoggedOutMsg struct{}
