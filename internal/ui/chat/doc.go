// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat provides the message list of chatview.

The list owns the conversation and mounts one components.Item per message,
keyed by position. It reconciles items when the conversation is replaced,
applies committed edits, routes timer messages to the item they belong to,
and shows the loading indicator while a reply is pending.

# Usage

	conv := model.NewConversation(msgs...)
	list := chat.New(conv, chat.Options{
		Theme:     styles.NewTheme(),
		Clipboard: components.SystemClipboard{},
		OnEdit: func(msg model.Message, index int) tea.Cmd {
			return regenerate(index)
		},
	})
	p := tea.NewProgram(list, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}

Send a ConversationMsg to replace the messages while the program runs.
*/
package chat
