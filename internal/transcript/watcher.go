// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package transcript

import (
	"time"

	"github.com/jeranaias/chatview/internal/watch"
)

// DefaultInterval is the minimum time between two reloads.
const DefaultInterval = watch.DefaultInterval

// Watcher reloads a transcript whenever the file changes.
type Watcher = watch.Watcher[File]

// UpdatedMsg carries a freshly loaded transcript.
type UpdatedMsg = watch.UpdatedMsg[File]

// NewWatcher creates a watcher for the transcript at path. A non-positive
// interval uses DefaultInterval.
func NewWatcher(path string, interval time.Duration) (*Watcher, error) {
	return watch.New[File]("transcript", path, interval, Load)
}
