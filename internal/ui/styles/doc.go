// Copyright (c) 2025 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the agora TUI.
//
// Colors are defined as lipgloss.AdaptiveColor pairs so every style
// works on light and dark terminals without configuration. Theme is
// built once at startup after termenv detects the color profile, and
// shared by all screens.
package styles
