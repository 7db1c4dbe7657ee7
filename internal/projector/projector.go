// Package projector derives the renderable state of a running timer
// session from its absolute start timestamp and a "now" instant. It is
// pure and stateless: callers re-evaluate it on whatever tick interval
// they like, and missed ticks (sleep, suspend, dropped frames) never
// accumulate drift because nothing is counted incrementally.
package projector

import (
	"fmt"
	"time"

	"github.com/goldenhorse8610-droid/KuroTask/internal/db/models"
)

// State is the display-ready projection of one session at one instant.
type State struct {
	Mode         string `json:"mode"`
	ElapsedSec   int    `json:"elapsedSec"`
	RemainingSec int    `json:"remainingSec"`
	Finished     bool   `json:"finished"`
	Display      string `json:"display"`
}

// Project computes the session's display state at the given instant.
// Stopwatch sessions show elapsed time and have no terminal state.
// Countdown sessions show remaining time clamped at zero; reaching
// zero raises the finished flag but the session itself keeps running
// until explicitly stopped.
func Project(session *models.TimerSession, now time.Time) State {
	elapsed := now.Sub(session.StartAt)
	if elapsed < 0 {
		elapsed = 0
	}

	state := State{
		Mode:       session.Mode,
		ElapsedSec: int(elapsed / time.Second),
	}

	if session.Mode == models.ModeCountdown && session.PlannedDurationSec != nil {
		planned := time.Duration(*session.PlannedDurationSec) * time.Second
		remaining := planned - elapsed
		if remaining <= 0 {
			remaining = 0
			state.Finished = true
		}
		state.RemainingSec = int(remaining / time.Second)
		state.Display = formatClock(remaining)
	} else {
		state.Display = formatClock(elapsed)
	}
	return state
}

// formatClock renders a duration as HH:MM:SS.cc.
func formatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	totalSec := int(d / time.Second)
	centis := int(d%time.Second) / int(10*time.Millisecond)
	return fmt.Sprintf("%02d:%02d:%02d.%02d",
		totalSec/3600, (totalSec%3600)/60, totalSec%60, centis)
}
