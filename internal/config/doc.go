// Copyright (c) 2025 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config handles loading and validation of agora configuration.
//
// Configuration lives at ~/.agora/config.toml. Precedence, lowest to
// highest: built-in defaults, the TOML file, AGORA_* environment
// variables. The three API base URLs are independent because the
// backend deploys board, auth and forum as separate services.
//
//	cfg, err := config.Load()
//	if err != nil { ... }
//	fmt.Println(cfg.API.ForumURL)
package config
