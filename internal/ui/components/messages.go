// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/chatview/internal/model"
)

// =============================================================================
// MESSAGES
// =============================================================================

// EditMessageMsg is emitted once when a user commits a changed draft. Index is
// the message's position in the conversation.
type EditMessageMsg struct {
	Message model.Message
	Index   int
}

// CopiedMsg reports the outcome of an asynchronous clipboard write.
type CopiedMsg struct {
	ID  string
	Err error
}

// CopyFeedbackExpiredMsg ends the "Copied!" badge armed by the copy with the
// same generation.
type CopyFeedbackExpiredMsg struct {
	ID  string
	Gen int
}

// PulseTickMsg advances the newest-message pulse by one frame.
type PulseTickMsg struct {
	ID  string
	Gen int
}

// CompositionStartMsg opens an input-method composition session in the
// editing item. While it is open the confirm key does not commit.
type CompositionStartMsg struct{}

// CompositionEndMsg closes the composition session.
type CompositionEndMsg struct{}

// =============================================================================
// SCHEDULING
// =============================================================================

// Scheduler returns a command that delivers msg after d.
type Scheduler func(d time.Duration, msg tea.Msg) tea.Cmd

// TickScheduler schedules with tea.Tick.
func TickScheduler(d time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return msg
	})
}
