// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/chatview/internal/ui/components"
)

// =============================================================================
// UPDATE
// =============================================================================

// Update handles all messages for the list.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case ConversationMsg:
		cmd = tea.Batch(m.SetMessages(msg.Messages), m.SetPending(msg.Pending))
		return m, cmd

	case components.EditMessageMsg:
		cmd = m.applyEdit(msg)

	case components.CopiedMsg:
		if it := m.itemByID(msg.ID); it != nil {
			cmd = it.Update(msg)
		}

	case components.CopyFeedbackExpiredMsg:
		if it := m.itemByID(msg.ID); it != nil {
			cmd = it.Update(msg)
		}

	case components.PulseTickMsg:
		// Pulse frames only repaint the item; the scroll position stays.
		if it := m.itemByID(msg.ID); it != nil {
			cmd = it.Update(msg)
		}
		m.refresh(false)
		return m, cmd

	case spinner.TickMsg:
		m.icon, cmd = m.icon.Update(msg)
		m.refresh(false)
		return m, cmd

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	default:
		// Composition events and textarea cursor blinks belong to the editor.
		if it := m.Editing(); it != nil {
			cmd = it.Update(msg)
		}
	}

	m.refresh(false)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keyMap.ForceQuit) {
		return tea.Quit
	}

	if it := m.Editing(); it != nil {
		cmd := it.Update(msg)
		m.refresh(false)
		m.scrollToSelected()
		return cmd
	}

	var cmd tea.Cmd
	switch {
	case key.Matches(msg, m.keyMap.Quit):
		return tea.Quit

	case key.Matches(msg, m.keyMap.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()

	case key.Matches(msg, m.keyMap.Up):
		m.moveSelection(-1)

	case key.Matches(msg, m.keyMap.Down):
		m.moveSelection(1)

	case key.Matches(msg, m.keyMap.Home):
		m.moveSelection(-len(m.items))

	case key.Matches(msg, m.keyMap.End):
		m.moveSelection(len(m.items))

	case key.Matches(msg, m.keyMap.PageUp):
		m.viewport.ViewUp()
		return nil

	case key.Matches(msg, m.keyMap.PageDown):
		m.viewport.ViewDown()
		return nil

	case key.Matches(msg, m.keyMap.Edit):
		if it := m.Item(m.selected); it != nil {
			cmd = it.StartEditing()
		}

	case key.Matches(msg, m.keyMap.Copy):
		if it := m.Item(m.selected); it != nil {
			cmd = it.Copy()
		}
	}

	m.refresh(false)
	m.scrollToSelected()
	return cmd
}

func (m *Model) moveSelection(delta int) {
	if len(m.items) == 0 {
		return
	}
	next := m.selected + delta
	if next < 0 {
		next = 0
	}
	if next >= len(m.items) {
		next = len(m.items) - 1
	}
	m.selected = next
	m.syncSelection()
}

// SetSize resizes the list and every item.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.ready = true
	for _, it := range m.items {
		it.SetWidth(width)
	}
	m.help.Width = width
	m.layout()
}
