// Copyright (c) 2025 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/agoradev/agora-tui/internal/model"
)

type topicsResponse struct {
	Topics []model.Topic `json:"topics"`
}

type topicResponse struct {
	Topic model.Topic `json:"topic"`
}

type topicMessagesResponse struct {
	Messages []model.TopicMessage `json:"messages"`
}

type createTopicRequest struct {
	Title string `json:"title"`
}

type postReplyRequest struct {
	Content string `json:"content"`
	TopicID int64  `json:"topic_id"`
}

type topicMessageResponse struct {
	Message model.TopicMessage `json:"message"`
}

// ListTopics fetches all forum topics, most recently active first.
func (c *Client) ListTopics(ctx context.Context) ([]model.Topic, error) {
	var resp topicsResponse
	if err := c.doJSON(ctx, http.MethodGet, c.forumURL+"/", nil, &resp, true); err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	return resp.Topics, nil
}

// CreateTopic opens a new discussion thread and returns it with the
// server-assigned id, which the UI uses to navigate straight into it.
func (c *Client) CreateTopic(ctx context.Context, title string) (model.Topic, error) {
	var resp topicResponse
	req := createTopicRequest{Title: title}
	if err := c.doJSON(ctx, http.MethodPost, c.forumURL+"/", req, &resp, true); err != nil {
		return model.Topic{}, fmt.Errorf("create topic: %w", err)
	}
	return resp.Topic, nil
}

// ListTopicMessages fetches a topic's replies, oldest first.
func (c *Client) ListTopicMessages(ctx context.Context, topicID int64) ([]model.TopicMessage, error) {
	var resp topicMessagesResponse
	url := c.forumURL + "/messages?topic_id=" + strconv.FormatInt(topicID, 10)
	if err := c.doJSON(ctx, http.MethodGet, url, nil, &resp, true); err != nil {
		return nil, fmt.Errorf("list topic messages: %w", err)
	}
	return resp.Messages, nil
}

// PostReply adds a message to a topic.
func (c *Client) PostReply(ctx context.Context, topicID int64, content string) (model.TopicMessage, error) {
	var resp topicMessageResponse
	req := postReplyRequest{Content: content, TopicID: topicID}
	if err := c.doJSON(ctx, http.MethodPost, c.forumURL+"/messages", req, &resp, true); err != nil {
		return model.TopicMessage{}, fmt.Errorf("post reply: %w", err)
	}
	return resp.Message, nil
}
