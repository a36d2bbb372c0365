// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
//
// This package defines the domain types the chat view renders: a Message is a
// role-tagged piece of content and a Conversation is the ordered sequence of
// messages owned by the message list.
//
// # Key Types
//
//   - Role: Message role enumeration (user, assistant)
//   - Message: Immutable value with role and content
//   - Conversation: Ordered, index-addressed message sequence
//
// # Usage
//
// Build a conversation and replace an edited message:
//
//	conv := model.NewConversation(
//	    model.NewUserMessage("hello"),
//	    model.NewAssistantMessage("hi there"),
//	)
//	edited := conv.At(0).WithContent("hello world")
//	if err := conv.Replace(0, edited); err != nil {
//	    log.Printf("replace: %v", err)
//	}
package model
