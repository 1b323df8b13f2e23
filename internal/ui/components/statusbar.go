// Copyright (c) 2025 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/agoradev/agora-tui/internal/ui/styles"
)

// KeyHint is one key/description pair shown in the status bar.
type KeyHint struct {
	Key  string
	Desc string
}

// RenderStatusBar renders the bottom bar of key hints for the active
// screen. Hints that do not fit the terminal width are dropped from
// the right.
func RenderStatusBar(theme *styles.Theme, width int, hints []KeyHint) string {
	var parts []string
	used := 0
	for _, h := range hints {
		part := theme.KeyHint.Render(h.Key) + " " + theme.KeyDesc.Render(h.Desc)
		w := lipgloss.Width(part) + 3
		if used+w > width-2 && len(parts) > 0 {
			break
		}
		parts = append(parts, part)
		used += w
	}

	bar := strings.Join(parts, "   ")
	return theme.StatusBar.Width(width).Render(bar)
}
