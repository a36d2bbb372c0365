// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/atotto/clipboard"
)

// Clipboard is the system clipboard capability. When Available reports false
// the copy action does nothing.
type Clipboard interface {
	Available() bool
	WriteText(text string) error
}

// SystemClipboard writes through the platform clipboard tool (pbcopy, xclip,
// xsel, wl-copy or the Windows API).
type SystemClipboard struct{}

// Available reports whether a clipboard tool was found.
func (SystemClipboard) Available() bool {
	return !clipboard.Unsupported
}

// WriteText replaces the clipboard contents.
func (SystemClipboard) WriteText(text string) error {
	return clipboard.WriteAll(text)
}
