// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/chatview/internal/i18n"
)

// =============================================================================
// VIEW
// =============================================================================

// View renders the scrolled message list above the help line.
func (m *Model) View() string {
	if !m.ready {
		return m.Content()
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.viewport.View(),
		m.theme.Help.Render(m.help.View(m.keyMap)),
	)
}

// Content renders every message and the pending indicator without
// scrolling. It also records where each item starts.
func (m *Model) Content() string {
	if len(m.items) == 0 && !m.conv.Pending() {
		m.offsets = nil
		return m.theme.Empty.Width(m.width).Render(m.tr.T(i18n.NoMessages))
	}

	var (
		parts []string
		line  int
	)
	m.offsets = make([]int, len(m.items))
	for i, it := range m.items {
		view := it.View()
		m.offsets[i] = line
		line += lipgloss.Height(view) + 1
		parts = append(parts, view)
	}
	if m.conv.Pending() {
		parts = append(parts, m.loader.View(m.icon.View(), m.width))
	}
	return strings.Join(parts, "\n\n")
}

// Snapshot renders the content with no item selected, for one-shot output.
func (m *Model) Snapshot() string {
	sel := m.selected
	m.selected = -1
	m.syncSelection()
	out := m.Content()
	m.selected = sel
	m.syncSelection()
	return out
}

// layout sizes the viewport to the space left by the help line.
func (m *Model) layout() {
	helpHeight := lipgloss.Height(m.help.View(m.keyMap))
	h := m.height - helpHeight
	if h < 1 {
		h = 1
	}
	m.viewport.Width = m.width
	m.viewport.Height = h
	m.refresh(false)
	m.scrollToSelected()
}

// refresh re-renders the content, optionally pinning the view to the bottom.
func (m *Model) refresh(follow bool) {
	m.viewport.SetContent(m.Content())
	if follow {
		m.viewport.GotoBottom()
	}
}

func (m *Model) atBottom() bool {
	return m.viewport.AtBottom()
}

// scrollToSelected scrolls the minimum amount needed to show the selected
// item, preferring its top when it is taller than the viewport.
func (m *Model) scrollToSelected() {
	if m.selected < 0 || m.selected >= len(m.offsets) {
		return
	}
	top := m.offsets[m.selected]
	bottom := top + lipgloss.Height(m.items[m.selected].View())

	switch {
	case top < m.viewport.YOffset:
		m.viewport.SetYOffset(top)
	case bottom > m.viewport.YOffset+m.viewport.Height:
		off := bottom - m.viewport.Height
		if off > top {
			off = top
		}
		m.viewport.SetYOffset(off)
	}
}
