// Copyright (c) 2025 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session persists the authenticated user between runs.
//
// The session lives at ~/.agora/session.json as {"user": ..., "token":
// ...}. Reads are deliberately forgiving: a missing, truncated or
// hand-edited file reads as "not logged in" rather than an error, so a
// bad session can never wedge the client. Writes are atomic with
// owner-only permissions because the file holds a bearer token.
package session
