// Copyright (c) 2025 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures served by the board API.
//
// All entities are server-owned: the client never invents IDs or merges
// local edits, it refetches after every mutation. Timestamp handles the
// backend's zoneless ISO-8601 format alongside standard RFC 3339.
package model
