// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides crash-safe file writing for chatview.
//
// # Usage
//
//	err := util.AtomicWriteFile(path, data, 0600, 0700)
//
// Readers of path see either the old or the new content, never a partial
// write, and a single Create event is raised for the replacement.
package util
