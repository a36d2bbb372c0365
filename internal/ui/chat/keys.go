// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/jeranaias/chatview/internal/i18n"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines the keyboard bindings of the message list. While a message
// is being edited only ForceQuit is handled here; every other key goes to
// the editing item.
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
	Home      key.Binding
	End       key.Binding
	Edit      key.Binding
	Copy      key.Binding
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

// DefaultKeyMap returns the default bindings with help text in the
// translator's language.
func DefaultKeyMap(tr *i18n.Translator) KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", tr.T(i18n.HelpNavigate)),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", tr.T(i18n.HelpNavigate)),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("PgUp/C-u", tr.T(i18n.HelpScroll)),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("PgDn/C-d", tr.T(i18n.HelpScroll)),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("Home/g", tr.T(i18n.HelpNavigate)),
		),
		End: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("End/G", tr.T(i18n.HelpNavigate)),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", tr.T(i18n.Edit)),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", tr.T(i18n.Copy)),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", tr.T(i18n.HelpHelp)),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", tr.T(i18n.HelpQuit)),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("C-c", tr.T(i18n.HelpQuit)),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Edit, k.Copy, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Home, k.End},
		{k.PageUp, k.PageDown},
		{k.Edit, k.Copy},
		{k.Help, k.Quit, k.ForceQuit},
	}
}
