package tui

import (
	"github.com/charmbracelet/lipgloss"

	"pausepad/internal/model"
)

var Colors = struct {
	Focus   lipgloss.Color
	Break   lipgloss.Color
	Long    lipgloss.Color
	Muted   lipgloss.Color
	Text    lipgloss.Color
	Error   lipgloss.Color
	Success lipgloss.Color
}{
	Focus:   lipgloss.Color("#E17055"),
	Break:   lipgloss.Color("#00B894"),
	Long:    lipgloss.Color("#6C5CE7"),
	Muted:   lipgloss.Color("#636E72"),
	Text:    lipgloss.Color("#DFE6E9"),
	Error:   lipgloss.Color("#D63031"),
	Success: lipgloss.Color("#00B894"),
}

func modeColor(mode model.TimerMode) lipgloss.Color {
	switch mode {
	case model.ModeShortBreak:
		return Colors.Break
	case model.ModeLongBreak, model.ModeLongFocus:
		return Colors.Long
	default:
		return Colors.Focus
	}
}

var (
	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 4)
	clockStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Text)
	mutedStyle = lipgloss.NewStyle().Foreground(Colors.Muted)
	errorStyle = lipgloss.NewStyle().Foreground(Colors.Error)
	doneStyle  = lipgloss.NewStyle().Foreground(Colors.Success)
)
