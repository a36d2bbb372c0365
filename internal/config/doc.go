// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for chatview.
//
// # Key Types
//
//   - Config: Main configuration structure
//   - UIConfig: Theme, locale, sound, markdown and animation settings
//   - LogConfig: Log file settings
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (CHATVIEW_*)
//   - ~/.chatview/config.toml
//   - Built-in defaults
//
// # Usage
//
//	if _, err := config.ReloadGlobal("", nil); err != nil {
//	    log.Fatal(err)
//	}
//	fps := config.Global().UI.PulseFPS
//
// ReloadGlobal is also what a running viewer calls when the file changes, so
// a bad edit keeps the previous configuration in place.
package config
