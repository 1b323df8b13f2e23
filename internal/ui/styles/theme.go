// Copyright (c) 2025 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds the styled components for the application. It detects the
// terminal's color capability once at startup.
type Theme struct {
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// ==========================================================================
	// HEADER AND STATUS BAR
	// ==========================================================================

	Header      lipgloss.Style
	HeaderTitle lipgloss.Style
	HeaderUser  lipgloss.Style
	StatusBar   lipgloss.Style
	KeyHint     lipgloss.Style
	KeyDesc     lipgloss.Style

	// ==========================================================================
	// MESSAGE LISTS
	// ==========================================================================

	MessageContent lipgloss.Style
	MessageMeta    lipgloss.Style
	MessageAuthor  lipgloss.Style
	Separator      lipgloss.Style

	// ==========================================================================
	// TOPIC LIST
	// ==========================================================================

	TopicTitle    lipgloss.Style
	TopicMeta     lipgloss.Style
	TopicSelected lipgloss.Style

	// ==========================================================================
	// FORMS AND INPUT
	// ==========================================================================

	InputContainer lipgloss.Style
	InputLabel     lipgloss.Style
	InputFocused   lipgloss.Style
	FormTitle      lipgloss.Style
	FormHint       lipgloss.Style

	// ==========================================================================
	// FEEDBACK
	// ==========================================================================

	Spinner      lipgloss.Style
	LoadingText  lipgloss.Style
	ErrorStyle   lipgloss.Style
	WarningStyle lipgloss.Style
	SuccessStyle lipgloss.Style
	EmptyState   lipgloss.Style
}

// NewTheme creates a theme with all styles configured.
func NewTheme() *Theme {
	colorProfile := termenv.ColorProfile()

	t := &Theme{
		IsDark:       termenv.HasDarkBackground(),
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}

	t.initStyles()
	return t
}

func (t *Theme) initStyles() {
	// Header and status bar
	t.Header = lipgloss.NewStyle().
		Background(SurfaceDim).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Teal)

	t.HeaderUser = lipgloss.NewStyle().
		Foreground(Indigo)

	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)

	t.KeyHint = lipgloss.NewStyle().
		Foreground(Teal).
		Bold(true)

	t.KeyDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Message lists
	t.MessageContent = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.MessageMeta = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.MessageAuthor = lipgloss.NewStyle().
		Foreground(Indigo).
		Bold(true)

	t.Separator = lipgloss.NewStyle().
		Foreground(Overlay)

	// Topic list
	t.TopicTitle = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Bold(true)

	t.TopicMeta = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.TopicSelected = lipgloss.NewStyle().
		Background(SelectionBg).
		Bold(true)

	// Forms and input
	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.InputLabel = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.InputFocused = lipgloss.NewStyle().
		Foreground(Teal).
		Bold(true)

	t.FormTitle = lipgloss.NewStyle().
		Foreground(Teal).
		Bold(true).
		MarginBottom(1)

	t.FormHint = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Feedback
	t.Spinner = lipgloss.NewStyle().
		Foreground(Teal)

	t.LoadingText = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.ErrorStyle = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)

	t.WarningStyle = lipgloss.NewStyle().
		Foreground(Amber).
		Bold(true)

	t.SuccessStyle = lipgloss.NewStyle().
		Foreground(Emerald).
		Bold(true)

	t.EmptyState = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true).
		Padding(1, 2)
}
