// Copyright (c) 2025 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small shared helpers for the agora client.
//
// String helpers are rune- and display-width aware so that message
// content in any script renders and truncates correctly. File helpers
// provide crash-safe atomic writes used by the session store and the
// config loader.
//
//	display := util.TruncateWidth(topic.Title, 50)
//	err := util.AtomicWriteFile(path, data, 0600)
package util
