// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for chatview.
package styles

import (
	"time"

	"github.com/lucasb-eyer/go-colorful"
)

// =============================================================================
// SPINNER ANIMATIONS
// =============================================================================

// DotsPulse - Pulsing three-dot icon for the pending-reply placeholder
var DotsPulse = SpinnerConfig{
	Frames: []string{"   ", ".  ", ".. ", "...", "...", " ..", "  .", "   "},
	FPS:    8,
}

// SpinnerConfig holds the configuration for a spinner animation.
type SpinnerConfig struct {
	Frames []string
	FPS    int
}

// Duration returns the duration for each frame.
func (s SpinnerConfig) Duration() time.Duration {
	if s.FPS <= 0 {
		return time.Second
	}
	return time.Second / time.Duration(s.FPS)
}

// =============================================================================
// EASING
// =============================================================================

// EasingFunc is a function that maps progress (0-1) to output (0-1).
type EasingFunc func(t float64) float64

// EaseLinear - constant speed
func EaseLinear(t float64) float64 {
	return t
}

// EaseInOutQuad - acceleration until halfway, then deceleration
func EaseInOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return -1 + (4-2*t)*t
}

// EaseOutCubic - decelerating to zero
func EaseOutCubic(t float64) float64 {
	t--
	return t*t*t + 1
}

// Easings maps the configurable easing names to their functions.
var Easings = map[string]EasingFunc{
	"linear":      EaseLinear,
	"ease-in-out": EaseInOutQuad,
	"ease-out":    EaseOutCubic,
}

// EasingByName returns the named easing, or EaseLinear and false when the
// name is unknown. The empty name is linear.
func EasingByName(name string) (EasingFunc, bool) {
	if name == "" {
		return EaseLinear, true
	}
	if f, ok := Easings[name]; ok {
		return f, true
	}
	return EaseLinear, false
}

// WithEasing returns a copy of a using easing.
func (a ColorAnimation) WithEasing(easing EasingFunc) ColorAnimation {
	a.Easing = easing
	return a
}

// =============================================================================
// COLOR ANIMATION
// =============================================================================

// Keyframe is one phase of a color animation. Alpha is the opacity of Color
// painted over the surface background, since terminals have no alpha channel.
type Keyframe struct {
	Color string
	Alpha float64
}

// ColorAnimation cycles through evenly spaced keyframes once per Period and
// repeats forever.
type ColorAnimation struct {
	Keyframes []Keyframe
	Period    time.Duration
	Easing    EasingFunc
}

// PulseKeyframes is the newest-assistant-message background cycle:
// opaque navy, navy at 0x44 opacity, opaque navy.
var PulseKeyframes = []Keyframe{
	{Color: "#000044", Alpha: 1},
	{Color: "#000044", Alpha: float64(0x44) / 0xFF},
	{Color: "#000044", Alpha: 1},
}

// AssistantPulse is the live/streaming emphasis animation.
var AssistantPulse = ColorAnimation{
	Keyframes: PulseKeyframes,
	Period:    time.Second,
	Easing:    EaseLinear,
}

// Static returns the first phase resolved over background.
func (a ColorAnimation) Static(background string) string {
	if len(a.Keyframes) == 0 {
		return background
	}
	return resolveKeyframe(a.Keyframes[0], background).Hex()
}

// At returns the color after elapsed time, wrapping at Period.
func (a ColorAnimation) At(elapsed time.Duration, background string) string {
	if a.Period <= 0 {
		return a.Static(background)
	}
	if elapsed < 0 {
		elapsed = 0
	}
	progress := float64(elapsed%a.Period) / float64(a.Period)
	return a.Sample(progress, background)
}

// Sample returns the color at progress (0-1) through one cycle.
func (a ColorAnimation) Sample(progress float64, background string) string {
	n := len(a.Keyframes)
	if n == 0 {
		return background
	}
	if n == 1 {
		return a.Static(background)
	}

	easing := a.Easing
	if easing == nil {
		easing = EaseLinear
	}
	p := clamp01(easing(clamp01(progress)))

	seg := p * float64(n-1)
	i := int(seg)
	if i >= n-1 {
		i = n - 2
	}
	local := seg - float64(i)

	from := resolveKeyframe(a.Keyframes[i], background)
	to := resolveKeyframe(a.Keyframes[i+1], background)
	return from.BlendRgb(to, local).Clamped().Hex()
}

// resolveKeyframe paints the keyframe color over the background.
func resolveKeyframe(k Keyframe, background string) colorful.Color {
	bg, err := colorful.Hex(background)
	if err != nil {
		bg = colorful.Color{}
	}
	fg, err := colorful.Hex(k.Color)
	if err != nil {
		return bg
	}
	return bg.BlendRgb(fg, clamp01(k.Alpha))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
