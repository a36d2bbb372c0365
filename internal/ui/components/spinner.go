// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/chatview/internal/ui/styles"
)

// =============================================================================
// PENDING ICON
// =============================================================================

// PendingIcon is the animated icon handed to LoadingIndicator. It only
// consumes spinner ticks while active.
type PendingIcon struct {
	spinner  spinner.Model
	isActive bool
}

// NewPendingIcon creates a stopped icon using the pulsing-dots frames.
func NewPendingIcon() PendingIcon {
	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: styles.DotsPulse.Frames,
		FPS:    styles.DotsPulse.Duration(),
	}
	return PendingIcon{spinner: s}
}

// Start activates the icon and returns its first tick.
func (p *PendingIcon) Start() tea.Cmd {
	if p.isActive {
		return nil
	}
	p.isActive = true
	return p.spinner.Tick
}

// Stop deactivates the icon. Ticks already in flight are dropped by Update.
func (p *PendingIcon) Stop() {
	p.isActive = false
}

// IsActive returns whether the icon is animating.
func (p *PendingIcon) IsActive() bool {
	return p.isActive
}

// Update advances the animation.
func (p PendingIcon) Update(msg tea.Msg) (PendingIcon, tea.Cmd) {
	if !p.isActive {
		return p, nil
	}
	var cmd tea.Cmd
	p.spinner, cmd = p.spinner.Update(msg)
	return p, cmd
}

// View renders the current frame.
func (p PendingIcon) View() string {
	return p.spinner.View()
}
