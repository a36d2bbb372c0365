// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/chatview/internal/ui/styles"
)

// =============================================================================
// PULSE
// =============================================================================

// Pulse drives a repeating background color animation by frame count. Ticks
// carry a generation so a stopped or restarted pulse ignores stale frames.
type Pulse struct {
	anim     styles.ColorAnimation
	interval time.Duration
	frame    int
	gen      int
	running  bool
}

// NewPulse creates a stopped pulse advancing fps frames per second.
func NewPulse(anim styles.ColorAnimation, fps int) Pulse {
	if fps <= 0 {
		fps = 20
	}
	return Pulse{
		anim:     anim,
		interval: time.Second / time.Duration(fps),
	}
}

// Running reports whether the pulse is animating.
func (p *Pulse) Running() bool {
	return p.running
}

// Start begins animating from the first phase and returns the first tick.
func (p *Pulse) Start(id string, schedule Scheduler) tea.Cmd {
	p.gen++
	p.frame = 0
	p.running = true
	return schedule(p.interval, PulseTickMsg{ID: id, Gen: p.gen})
}

// Stop holds the first phase and invalidates pending ticks.
func (p *Pulse) Stop() {
	p.gen++
	p.frame = 0
	p.running = false
}

// Tick advances one frame if msg belongs to the current run and schedules
// the next one.
func (p *Pulse) Tick(msg PulseTickMsg, schedule Scheduler) tea.Cmd {
	if !p.running || msg.Gen != p.gen {
		return nil
	}
	p.frame++
	return schedule(p.interval, PulseTickMsg{ID: msg.ID, Gen: p.gen})
}

// Color returns the current background color over the given surface.
func (p *Pulse) Color(surface string) string {
	if !p.running {
		return p.anim.Static(surface)
	}
	return p.anim.At(time.Duration(p.frame)*p.interval, surface)
}
