package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"pausepad/internal/model"
	"pausepad/internal/timer"
)

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	accent := modeColor(m.state.Mode)
	header := lipgloss.NewStyle().Bold(true).Foreground(accent).
		Render(fmt.Sprintf("%s %s", timer.ModeEmoji(m.state.Mode), timer.ModeLabel(m.state.Mode)))

	clock := clockStyle.Render(timer.FormatTime(m.state.TimeRemaining))
	if m.state.Status == model.StatusPaused {
		clock += mutedStyle.Render("  paused")
	}

	lines := []string{
		header,
		"",
		clock,
		m.progress.ViewAs(timer.Progress(m.state) / 100),
		mutedStyle.Render(fmt.Sprintf("Session %d · %d completed", m.state.CurrentSession, m.state.CompletedSessions)),
	}
	if m.taskText != "" {
		lines = append(lines, "Working on: "+m.taskText)
	}
	if m.err != nil {
		lines = append(lines, errorStyle.Render(m.err.Error()))
	}
	if recent := m.recentView(); recent != "" {
		lines = append(lines, "", recent)
	}

	frame := frameStyle.BorderForeground(accent).Render(strings.Join(lines, "\n"))
	return frame + "\n" + m.help.View(m.keys) + "\n"
}

func (m *Model) recentView() string {
	if m.history == nil {
		return ""
	}
	records := m.history.Records(recentSessions)
	if len(records) == 0 {
		return ""
	}

	rows := make([]string, 0, len(records)+1)
	rows = append(rows, mutedStyle.Render("Recent"))
	for _, record := range records {
		mark := mutedStyle.Render("✗")
		if record.Completed {
			mark = doneStyle.Render("✓")
		}
		rows = append(rows, fmt.Sprintf("%s %-11s %s", mark, timer.ModeLabel(record.Mode), timer.FormatTime(record.DurationSeconds)))
	}
	return strings.Join(rows, "\n")
}
