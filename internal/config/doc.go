// Copyright (c) 2025 Matt Hollis
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for codechat.
//
// Configuration is stored as TOML at ~/.codechat/config.toml, with built-in
// defaults and environment variable overrides. A file watcher supports live
// reload of the config file while the application is running.
package config
