// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/chatview/internal/model"
	"github.com/jeranaias/chatview/internal/ui/markdown"
	"github.com/jeranaias/chatview/internal/ui/styles"
)

// =============================================================================
// MESSAGE VIEW
// =============================================================================

// MessageView renders a message body. It holds no per-message state.
type MessageView struct {
	theme    *styles.Theme
	renderer *markdown.Renderer
}

// NewMessageView creates a view rendering assistant content with renderer.
func NewMessageView(theme *styles.Theme, renderer *markdown.Renderer) MessageView {
	return MessageView{theme: theme, renderer: renderer}
}

// Render renders msg at width. background is the assistant background color
// for this frame (the pulse color); user messages ignore it.
func (v MessageView) Render(msg model.Message, width int, background string) string {
	if width < 1 {
		width = 1
	}

	switch msg.Role {
	case model.RoleUser:
		// Preformatted: line breaks kept, no markdown.
		return v.theme.UserMessage.Width(width).Render(msg.Content)
	case model.RoleAssistant:
		body := v.renderer.Render(msg.Content, width)
		return v.theme.AssistantMessage.
			Background(lipgloss.Color(background)).
			Width(width).
			Render(body)
	default:
		return lipgloss.NewStyle().Width(width).Render(msg.Content)
	}
}
