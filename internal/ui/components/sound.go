// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"io"
	"sync"
)

// Sounder plays the short notification cue for a message content change.
type Sounder interface {
	Play() error
}

// Bell rings the terminal bell on Out.
type Bell struct {
	mu  sync.Mutex
	Out io.Writer
}

// NewBell returns a bell writing to out.
func NewBell(out io.Writer) *Bell {
	return &Bell{Out: out}
}

// Play writes BEL.
func (b *Bell) Play() error {
	if b == nil || b.Out == nil {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	_, err := io.WriteString(b.Out, "\a")
	return err
}
