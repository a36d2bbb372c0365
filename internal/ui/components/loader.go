// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/chatview/internal/i18n"
	"github.com/jeranaias/chatview/internal/ui/styles"
)

// =============================================================================
// LOADING INDICATOR
// =============================================================================

// LoadingIndicator is the placeholder shown while the next reply is pending.
// It is stateless; the animated icon is owned and supplied by the caller.
type LoadingIndicator struct {
	theme *styles.Theme
	tr    *i18n.Translator
}

// NewLoadingIndicator creates a loading indicator.
func NewLoadingIndicator(theme *styles.Theme, tr *i18n.Translator) LoadingIndicator {
	return LoadingIndicator{theme: theme, tr: tr}
}

// View renders the placeholder text repeated across width, followed by icon.
func (l LoadingIndicator) View(icon string, width int) string {
	label := l.tr.T(i18n.Thinking)
	iconW := lipgloss.Width(icon)
	frame := l.theme.Loader.GetHorizontalFrameSize()

	avail := width - frame - iconW - 1
	unit := lipgloss.Width(label) + 1
	n := 1
	if unit > 0 && avail > unit {
		n = avail / unit
	}
	text := strings.TrimSuffix(strings.Repeat(label+" ", n), " ")

	line := lipgloss.JoinHorizontal(lipgloss.Top,
		l.theme.LoaderText.Render(text),
		" ",
		l.theme.LoaderIcon.Render(icon),
	)
	return l.theme.Loader.Render(line)
}
