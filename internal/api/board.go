// Copyright (c) 2025 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/agoradev/agora-tui/internal/model"
)

type messagesResponse struct {
	Messages []model.Message `json:"messages"`
}

type messageResponse struct {
	Message model.Message `json:"message"`
}

type postMessageRequest struct {
	Content string `json:"content"`
}

// ListMessages fetches the public wall, newest first.
func (c *Client) ListMessages(ctx context.Context) ([]model.Message, error) {
	var resp messagesResponse
	if err := c.doJSON(ctx, http.MethodGet, c.boardURL, nil, &resp, false); err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return resp.Messages, nil
}

// PostMessage publishes an anonymous message on the wall. The server
// rejects blank content with ErrValidation; callers are expected to
// have checked locally first so no request is wasted.
func (c *Client) PostMessage(ctx context.Context, content string) (model.Message, error) {
	var resp messageResponse
	req := postMessageRequest{Content: content}
	if err := c.doJSON(ctx, http.MethodPost, c.boardURL, req, &resp, false); err != nil {
		return model.Message{}, fmt.Errorf("post message: %w", err)
	}
	return resp.Message, nil
}
