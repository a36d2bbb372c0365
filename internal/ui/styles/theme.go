// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for chatview.
package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// ==========================================================================
	// MESSAGE STYLES
	// ==========================================================================

	Marker         lipgloss.Style
	MarkerSelected lipgloss.Style
	UserMessage    lipgloss.Style
	// AssistantMessage carries no background; the pulse supplies it per frame.
	AssistantMessage lipgloss.Style
	ActionHint       lipgloss.Style
	CopiedBadge      lipgloss.Style

	// ==========================================================================
	// EDITOR STYLES
	// ==========================================================================

	Editor          lipgloss.Style
	ButtonPrimary   lipgloss.Style
	ButtonSecondary lipgloss.Style
	ButtonDisabled  lipgloss.Style
	ButtonFocused   lipgloss.Style

	// ==========================================================================
	// LOADER STYLES
	// ==========================================================================

	Loader     lipgloss.Style
	LoaderText lipgloss.Style
	LoaderIcon lipgloss.Style

	// ==========================================================================
	// MARKDOWN STYLES
	// ==========================================================================

	CodeBlock     lipgloss.Style
	CodeLangBadge lipgloss.Style
	CodeLineNum   lipgloss.Style
	TableBorder   lipgloss.Style
	TableHeader   lipgloss.Style
	TableCell     lipgloss.Style
	Math          lipgloss.Style

	// ==========================================================================
	// CHROME
	// ==========================================================================

	Empty lipgloss.Style
	Help  lipgloss.Style
}

// NewTheme creates a new theme, detecting the terminal background.
func NewTheme() *Theme {
	return NewThemeWithMode("auto")
}

// NewThemeWithMode creates a theme for mode "dark", "light" or "auto".
func NewThemeWithMode(mode string) *Theme {
	colorProfile := termenv.ColorProfile()

	var isDark bool
	switch strings.ToLower(mode) {
	case "dark":
		isDark = true
	case "light":
		isDark = false
	default:
		isDark = termenv.HasDarkBackground()
	}
	lipgloss.SetHasDarkBackground(isDark)

	t := &Theme{
		IsDark:       isDark,
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}
	t.initStyles()
	return t
}

// Background returns the surface color as hex for the current mode.
func (t *Theme) Background() string {
	if t.IsDark {
		return Surface.Dark
	}
	return Surface.Light
}

// GlamourStyle returns the glamour standard style name matching the theme.
func (t *Theme) GlamourStyle() string {
	if t.IsDark {
		return "dark"
	}
	return "light"
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	// Messages
	t.Marker = lipgloss.NewStyle().
		Foreground(TextMuted).
		Width(2)

	t.MarkerSelected = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true).
		Width(2)

	t.UserMessage = lipgloss.NewStyle().
		Foreground(UserMessageFg).
		Background(UserMessageBg)

	t.AssistantMessage = lipgloss.NewStyle().
		Foreground(AssistantMessageFg)

	t.ActionHint = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.CopiedBadge = lipgloss.NewStyle().
		Foreground(Emerald).
		Bold(true)

	// Editor
	t.Editor = lipgloss.NewStyle().
		Background(EditorBg).
		Foreground(TextPrimary)

	t.ButtonPrimary = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Blue).
		Padding(0, 2)

	t.ButtonSecondary = lipgloss.NewStyle().
		Foreground(TextSecondary).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(OverlayDim).
		BorderTop(false).
		BorderBottom(false).
		Padding(0, 1)

	t.ButtonDisabled = lipgloss.NewStyle().
		Foreground(TextMuted).
		Background(Overlay).
		Faint(true).
		Padding(0, 2)

	t.ButtonFocused = lipgloss.NewStyle().
		Underline(true).
		Bold(true)

	// Loader
	t.Loader = lipgloss.NewStyle().
		Background(Green).
		Foreground(TextInverse).
		Padding(0, 1)

	t.LoaderText = lipgloss.NewStyle().
		Bold(true)

	t.LoaderIcon = lipgloss.NewStyle().
		Bold(true)

	// Markdown
	t.CodeBlock = lipgloss.NewStyle().
		Background(SurfaceDim).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.CodeLangBadge = lipgloss.NewStyle().
		Foreground(TextMuted).
		Background(OverlayDim).
		Padding(0, 1).
		Bold(true)

	t.CodeLineNum = lipgloss.NewStyle().
		Foreground(TextMuted).
		Width(4).
		Align(lipgloss.Right).
		MarginRight(1)

	t.TableBorder = lipgloss.NewStyle().
		Foreground(TableBorder)

	t.TableHeader = lipgloss.NewStyle().
		Foreground(TableHeaderFg).
		Background(TableHeaderBg).
		Bold(true).
		Padding(0, 1)

	t.TableCell = lipgloss.NewStyle().
		Padding(0, 1)

	t.Math = lipgloss.NewStyle().
		Foreground(MathFg).
		Italic(true)

	// Chrome
	t.Empty = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true).
		Align(lipgloss.Center).
		Padding(2, 0)

	t.Help = lipgloss.NewStyle().
		Foreground(TextMuted)
}
