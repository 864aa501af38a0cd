package timer

import (
	"fmt"

	"pausepad/internal/model"
)

const IdleTitle = "Free Online Pomodoro Timer with Music & Tasks | PausePad"

// FormatTime renders whole seconds as MM:SS. Minutes are not capped at 99.
func FormatTime(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// Progress returns how much of the current interval has elapsed, 0..100.
func Progress(state model.TimerState) float64 {
	if state.TotalTime <= 0 {
		return 0
	}
	return float64(state.TotalTime-state.TimeRemaining) / float64(state.TotalTime) * 100
}

func ModeLabel(mode model.TimerMode) string {
	switch mode {
	case model.ModeLongFocus:
		return "Long Focus"
	case model.ModeShortBreak:
		return "Short Break"
	case model.ModeLongBreak:
		return "Long Break"
	default:
		return "Focus"
	}
}

func ModeEmoji(mode model.TimerMode) string {
	switch mode {
	case model.ModeShortBreak:
		return "☕"
	case model.ModeLongBreak:
		return "🌟"
	default:
		return "🍅"
	}
}

// Title is the window or tab title for state: a live countdown while an
// interval is running or paused, the idle title otherwise.
func Title(state model.TimerState) string {
	if state.Status != model.StatusRunning && state.Status != model.StatusPaused {
		return IdleTitle
	}

	suffix := ""
	if state.Status == model.StatusPaused {
		suffix = " (Paused)"
	}
	return fmt.Sprintf("%s %s - %s%s | PausePad", ModeEmoji(state.Mode), FormatTime(state.TimeRemaining), ModeLabel(state.Mode), suffix)
}
