// Copyright (c) 2025 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures served by the board API.
package model

import (
	"fmt"
	"strings"
	"time"
)

// =============================================================================
// TIMESTAMP
// =============================================================================

// timeLayouts are the timestamp shapes the backend is known to emit.
// Most endpoints produce bare ISO-8601 without a zone suffix; a few
// include fractional seconds or a zone.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
}

// Timestamp is a time.Time that unmarshals tolerantly from the
// backend's ISO-8601 variants. Zoneless values are taken as UTC.
type Timestamp struct {
	time.Time
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp %q", s)
}

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.UTC().Format(time.RFC3339) + `"`), nil
}

// =============================================================================
// ENTITIES
// =============================================================================

// User is an account as returned by the auth endpoints.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	CreatedAt Timestamp `json:"created_at,omitzero"`
}

// Message is a post on the public board. Board posts carry no author.
type Message struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	CreatedAt Timestamp `json:"created_at"`
}

// Topic is a forum discussion thread.
type Topic struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	CreatedAt    Timestamp `json:"created_at"`
	User         *User     `json:"user,omitempty"`
	MessageCount int       `json:"message_count"`
	LastActivity Timestamp `json:"last_activity"`
}

// TopicMessage is a reply inside a topic. User is nil when the account
// that wrote it has been deleted; render those as anonymous.
type TopicMessage struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	CreatedAt Timestamp `json:"created_at"`
	User      *User     `json:"user"`
}

// AuthorName returns the display name for a topic message.
func (m *TopicMessage) AuthorName() string {
	if m.User == nil || m.User.Username == "" {
		return "anonymous"
	}
	return m.User.Username
}
