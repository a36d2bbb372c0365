// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides the per-message UI of chatview.

# Components

Item (item.go) - One chat message: view or in-place edit, copy, pulse.
MessageView (message.go) - Role-dependent body rendering.
Editor (editor.go) - Autosizing textarea with Save & Submit / Cancel.
LoadingIndicator (loader.go) - "thinking..." placeholder for a pending reply.
PendingIcon (spinner.go) - The animated icon the indicator displays.

# Item lifecycle

An Item is created with NewItem, started with Init and torn down with
Dispose. Its parent pushes the authoritative message with SetMessage and
the newest-message flag with SetLast. The item never mutates the
conversation; a committed edit comes back to the parent as an
EditMessageMsg.

Timers (copy feedback, pulse frames) are tea.Cmds built by a Scheduler and
carry the item id plus a generation number, so a message from a superseded
or disposed timer is ignored:

	it := components.NewItem(0, msg, components.ItemOptions{
		Theme:     theme,
		Clipboard: components.SystemClipboard{},
		Sounder:   components.NewBell(os.Stderr),
	})
	cmd := it.Init()

# Editing keys

enter commits unless an input-method composition is open; alt+enter,
shift+enter and ctrl+j insert a newline; ctrl+s saves;
esc cancels; tab and shift+tab move focus between the text and the buttons.
*/
package components
