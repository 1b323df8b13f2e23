// Copyright (c) 2025 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api implements the HTTP client for the board services.
//
// The backend runs as three small services, each with its own base
// URL: the public board, the auth endpoints and the forum. All bodies
// are JSON. Forum requests carry an X-Auth-Token header, either the
// session token or the literal "guest" when nobody is logged in.
//
// Errors come in two classes. Transport failures match ErrNetwork and
// mean the request may never have reached the server. Non-2xx responses
// carry the backend's {"error": "..."} message as an *APIError and
// match a sentinel by status (ErrValidation, ErrUnauthorized, ...).
//
//	msgs, err := client.ListMessages(ctx)
//	if errors.Is(err, api.ErrNetwork) { ... }
package api
