// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for chatview.

# Color System (colors.go)

Message backgrounds are fixed per role: user messages on olive, assistant
messages on navy. Surface, text and button colors use Lip Gloss
AdaptiveColor so they follow the terminal background.

# Theme System (theme.go)

The Theme struct holds every lipgloss.Style the components use:

	theme := styles.NewThemeWithMode("dark")
	bg := theme.Background()

# Animation System (animations.go)

ColorAnimation cycles evenly spaced keyframes with an easing function.
Keyframes carry an alpha which is resolved against the surface background,
since terminals cannot composite:

	color := styles.AssistantPulse.At(elapsed, theme.Background())
*/
package styles
