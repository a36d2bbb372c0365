// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/jeranaias/chatview/internal/i18n"
)

// =============================================================================
// EDITOR KEY MAP
// =============================================================================

// EditorKeyMap defines the bindings active while a message is being edited.
type EditorKeyMap struct {
	// Confirm commits a single-line edit; with focus on a button it presses it.
	Confirm key.Binding
	// Newline inserts a line break instead of committing.
	Newline   key.Binding
	Save      key.Binding
	Cancel    key.Binding
	NextFocus key.Binding
	PrevFocus key.Binding
}

// DefaultEditorKeyMap returns the default editor bindings with help text in
// the translator's language.
func DefaultEditorKeyMap(tr *i18n.Translator) EditorKeyMap {
	return EditorKeyMap{
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", tr.T(i18n.SaveAndSubmit)),
		),
		Newline: key.NewBinding(
			key.WithKeys("shift+enter", "alt+enter", "ctrl+j"),
			key.WithHelp("alt+enter/C-j", tr.T(i18n.HelpNewline)),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("C-s", tr.T(i18n.SaveAndSubmit)),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", tr.T(i18n.Cancel)),
		),
		NextFocus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", tr.T(i18n.HelpFocus)),
		),
		PrevFocus: key.NewBinding(
			key.WithKeys("shift+tab"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k EditorKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Confirm, k.Newline, k.NextFocus, k.Cancel}
}

// FullHelp implements help.KeyMap.
func (k EditorKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Confirm, k.Save, k.Newline},
		{k.NextFocus, k.PrevFocus, k.Cancel},
	}
}
