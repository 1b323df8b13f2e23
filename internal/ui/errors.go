// Copyright (c) 2025 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"errors"

	"github.com/agoradev/agora-tui/internal/api"
)

// ErrorText turns an API error into toast copy. Server-sent messages
// ("Content is required", "Invalid credentials") are shown as-is;
// transport failures collapse into one phrase since the raw error is
// rarely actionable for the user.
func ErrorText(err error) string {
	if err == nil {
		return "unknown error"
	}

	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.Status != 0 {
		return apiErr.Message
	}
	return "could not reach the server"
}
