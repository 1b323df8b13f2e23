// Copyright (c) 2025 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agoradev/agora-tui/internal/ui/styles"
	"github.com/agoradev/agora-tui/internal/util"
)

// RenderHeader renders the top bar: app name, current screen on the
// left, the logged-in user (or "guest") on the right.
func RenderHeader(theme *styles.Theme, width int, screen, username string) string {
	if username == "" {
		username = "guest"
	}

	left := theme.HeaderTitle.Render("agora") + " " +
		lipgloss.NewStyle().Foreground(styles.TextSecondary).Render("/ "+screen)
	right := theme.HeaderUser.Render("@" + username)

	gap := width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		// Narrow terminal: drop the user rather than wrap the bar.
		plain := util.TruncateWidth("agora / "+screen, width-2)
		return theme.Header.Width(width).Render(theme.HeaderTitle.Render(plain))
	}

	spacer := lipgloss.NewStyle().Width(gap).Render("")
	return theme.Header.Width(width).Render(left + spacer + right)
}
