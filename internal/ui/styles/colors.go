// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for chatview.
// All colors use Lip Gloss AdaptiveColor for automatic light/dark detection.
package styles

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// PRIMARY ACCENT COLORS
// =============================================================================

// Blue - Primary action buttons
var Blue = lipgloss.AdaptiveColor{Light: "#3B82F6", Dark: "#3B82F6"}

// BlueDeep - Focused primary action
var BlueDeep = lipgloss.AdaptiveColor{Light: "#2563EB", Dark: "#2563EB"}

// Cyan - Selection gutter, info
var Cyan = lipgloss.AdaptiveColor{Light: "#0891B2", Dark: "#22D3EE"}

// Emerald - Copied feedback
var Emerald = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}

// Green - Pending reply placeholder
var Green = lipgloss.AdaptiveColor{Light: "#22C55E", Dark: "#22C55E"}

// Amber - Warnings
var Amber = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}

// =============================================================================
// SURFACE COLORS
// =============================================================================

// Surface - Main background
var Surface = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E1E2E"}

// SurfaceDim - Code blocks, inline code
var SurfaceDim = lipgloss.AdaptiveColor{Light: "#F5F5F5", Dark: "#181825"}

// EditorBg - Edit surface background
var EditorBg = lipgloss.AdaptiveColor{Light: "#F9FAFB", Dark: "#343541"}

// Overlay - Borders, separators
var Overlay = lipgloss.AdaptiveColor{Light: "#E5E5E5", Dark: "#313244"}

// OverlayDim - Secondary button border
var OverlayDim = lipgloss.AdaptiveColor{Light: "#D4D4D4", Dark: "#404040"}

// =============================================================================
// TEXT COLORS
// =============================================================================

// TextPrimary - Main body text
var TextPrimary = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#CDD6F4"}

// TextSecondary - Labels, less prominent text
var TextSecondary = lipgloss.AdaptiveColor{Light: "#404040", Dark: "#D4D4D4"}

// TextMuted - Hints, very subtle text
var TextMuted = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6C7086"}

// TextInverse - Text on colored backgrounds
var TextInverse = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}

// =============================================================================
// MESSAGE COLORS
// =============================================================================

// User messages sit on a fixed olive background.
var UserMessageBg = lipgloss.Color("#444400")
var UserMessageFg = lipgloss.AdaptiveColor{Light: "#FEFCE8", Dark: "#FEF9C3"}

// Assistant messages sit on navy; the newest one pulses (see PulseKeyframes).
var AssistantMessageBg = lipgloss.Color("#000044")
var AssistantMessageFg = lipgloss.AdaptiveColor{Light: "#E0E7FF", Dark: "#E0E7FF"}

// =============================================================================
// TABLE COLORS
// =============================================================================

var TableBorder = lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"}
var TableHeaderBg = lipgloss.Color("#6B7280")
var TableHeaderFg = lipgloss.Color("#FFFFFF")

// MathFg - Inline and display math spans
var MathFg = lipgloss.AdaptiveColor{Light: "#8839EF", Dark: "#CBA6F7"}
