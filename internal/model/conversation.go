// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
package model

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange is returned when a message index does not exist.
var ErrIndexOutOfRange = errors.New("message index out of range")

// MaxMessages is the maximum number of messages to keep in conversation history.
// When exceeded, old messages are pruned to prevent unbounded memory growth.
const MaxMessages = 1000

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation is the authoritative ordered sequence of messages. Positions
// are stable until the sequence is replaced wholesale.
type Conversation struct {
	messages []Message
	pending  bool
}

// NewConversation creates a conversation holding the given messages.
func NewConversation(msgs ...Message) *Conversation {
	c := &Conversation{}
	c.SetMessages(msgs)
	return c
}

// =============================================================================
// MESSAGE MANAGEMENT
// =============================================================================

// Len returns the number of messages.
func (c *Conversation) Len() int {
	return len(c.messages)
}

// At returns the message at index i. It panics if i is out of range, like a
// slice index; use Get for a checked lookup.
func (c *Conversation) At(i int) Message {
	return c.messages[i]
}

// Get returns the message at index i.
func (c *Conversation) Get(i int) (Message, error) {
	if i < 0 || i >= len(c.messages) {
		return Message{}, fmt.Errorf("%w: %d (len %d)", ErrIndexOutOfRange, i, len(c.messages))
	}
	return c.messages[i], nil
}

// Messages returns a copy of the message sequence.
func (c *Conversation) Messages() []Message {
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// SetMessages replaces the whole sequence.
func (c *Conversation) SetMessages(msgs []Message) {
	c.messages = make([]Message, len(msgs))
	copy(c.messages, msgs)
	c.pruneOldMessages()
}

// Append adds a message at the end of the sequence.
func (c *Conversation) Append(msg Message) {
	c.messages = append(c.messages, msg)
	c.pruneOldMessages()
}

// Replace swaps the message at index i for msg.
func (c *Conversation) Replace(i int, msg Message) error {
	if i < 0 || i >= len(c.messages) {
		return fmt.Errorf("replace: %w: %d (len %d)", ErrIndexOutOfRange, i, len(c.messages))
	}
	c.messages[i] = msg
	return nil
}

// Last returns the most recent message and whether one exists.
func (c *Conversation) Last() (Message, bool) {
	if len(c.messages) == 0 {
		return Message{}, false
	}
	return c.messages[len(c.messages)-1], true
}

// IsLast reports whether index i is the newest message.
func (c *Conversation) IsLast(i int) bool {
	return len(c.messages) > 0 && i == len(c.messages)-1
}

// Pending reports whether a reply is awaited.
func (c *Conversation) Pending() bool {
	return c.pending
}

// SetPending marks the conversation as awaiting (or no longer awaiting) the
// next message.
func (c *Conversation) SetPending(pending bool) {
	c.pending = pending
}

// pruneOldMessages drops the oldest messages beyond MaxMessages.
func (c *Conversation) pruneOldMessages() {
	if len(c.messages) > MaxMessages {
		c.messages = append([]Message(nil), c.messages[len(c.messages)-MaxMessages:]...)
	}
}
