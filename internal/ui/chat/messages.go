// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/chatview/internal/model"
)

// ConversationMsg replaces the displayed conversation. Items at existing
// positions are updated in place, so open edit state stays with its index.
type ConversationMsg struct {
	Messages []model.Message
	Pending  bool
}

// EditHandler is called after a committed edit has been applied to the
// conversation. Re-generating the following reply is the host's concern.
type EditHandler func(msg model.Message, index int) tea.Cmd
