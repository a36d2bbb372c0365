// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package transcript reads chat transcripts from disk and follows them as
// they change. A transcript is JSON:
//
//	{
//	  "messages": [
//	    {"role": "user", "content": "hi"},
//	    {"role": "assistant", "content": "hello"}
//	  ],
//	  "pending": false
//	}
//
// Transcripts are only ever read; edits made in the viewer stay in memory.
package transcript

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jeranaias/chatview/internal/model"
)

// ErrInvalid is returned for transcripts that do not decode.
var ErrInvalid = errors.New("invalid transcript")

// File is a decoded transcript.
type File struct {
	Messages []model.Message `json:"messages"`
	Pending  bool            `json:"pending"`
}

// Load reads and decodes the transcript at path.
func Load(path string) (File, error) {
	f, err := os.Open(path)
	if err != nil {
		return File{}, fmt.Errorf("open transcript: %w", err)
	}
	defer f.Close()

	t, err := Parse(f)
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Parse decodes a transcript from r. Unknown roles are rejected.
func Parse(r io.Reader) (File, error) {
	var t File
	dec := json.NewDecoder(r)
	if err := dec.Decode(&t); err != nil {
		return File{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	for i, m := range t.Messages {
		if !m.Role.Valid() {
			return File{}, fmt.Errorf("%w: message %d: %w: %q", ErrInvalid, i, model.ErrUnknownRole, m.Role)
		}
	}
	return t, nil
}

// Conversation builds a conversation holding the transcript's messages.
func (t File) Conversation() *model.Conversation {
	c := model.NewConversation(t.Messages...)
	c.SetPending(t.Pending)
	return c
}
