package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pausepad/internal/model"
	"pausepad/internal/timer"
)

func newTestModel(t *testing.T) (*Model, *timer.Controller, *timer.SessionLog) {
	t.Helper()
	machine, err := timer.NewMachine(model.DefaultTimerConfig())
	require.NoError(t, err)
	controller := timer.NewController(machine, timer.Options{TickInterval: time.Hour})
	t.Cleanup(controller.Dispose)

	log := timer.NewSessionLog(10, nil)
	controller.AddObserver(log)

	m := New(Config{
		Timer:    controller,
		Events:   controller.Subscribe(16),
		History:  log,
		TaskText: "chapter 3",
	})
	return m, controller, log
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestSpaceTogglesTimer(t *testing.T) {
	m, controller, _ := newTestModel(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeySpace})
	assert.NotNil(t, cmd)
	assert.Equal(t, model.StatusRunning, m.state.Status)
	assert.Equal(t, model.StatusRunning, controller.State().Status)

	m.Update(tea.KeyMsg{Type: tea.KeySpace})
	assert.Equal(t, model.StatusPaused, m.state.Status)
	assert.Contains(t, m.View(), "paused")

	m.Update(tea.KeyMsg{Type: tea.KeySpace})
	assert.Equal(t, model.StatusRunning, m.state.Status)
}

func TestStopRecordsInterruptedSession(t *testing.T) {
	m, _, log := newTestModel(t)

	m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m.Update(runes("s"))
	assert.Equal(t, model.StatusIdle, m.state.Status)

	records := log.Records(0)
	require.Len(t, records, 1)
	assert.True(t, records[0].Interrupted)
	assert.Contains(t, m.View(), "Recent")
}

func TestModeKeys(t *testing.T) {
	m, _, _ := newTestModel(t)

	m.Update(runes("3"))
	assert.Equal(t, model.ModeShortBreak, m.state.Mode)
	assert.Equal(t, "05:00", timer.FormatTime(m.state.TimeRemaining))

	m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m.Update(runes("2"))
	assert.ErrorIs(t, m.err, timer.ErrTimerBusy)
	assert.Equal(t, model.ModeShortBreak, m.state.Mode)
	assert.Contains(t, m.View(), timer.ErrTimerBusy.Error())

	m.Update(runes("r"))
	assert.Nil(t, m.err)
	assert.Equal(t, model.ModeFocus, m.state.Mode)
	assert.Equal(t, model.StatusIdle, m.state.Status)
}

func TestSkipAdvancesMode(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.Update(runes("n"))
	assert.Equal(t, model.ModeShortBreak, m.state.Mode)
	assert.Equal(t, 2, m.state.CurrentSession)
}

func TestEventsUpdateState(t *testing.T) {
	m, _, _ := newTestModel(t)
	state := model.TimerState{Mode: model.ModeLongBreak, Status: model.StatusIdle, TimeRemaining: 900, TotalTime: 900}

	_, cmd := m.Update(eventMsg{event: timer.Event{Type: timer.EventStateChanged, State: state}})
	assert.NotNil(t, cmd)
	assert.Equal(t, state, m.state)
	assert.Contains(t, m.View(), "15:00")
}

func TestWaitForEventReportsClose(t *testing.T) {
	m, controller, _ := newTestModel(t)
	controller.Dispose()

	msg := m.waitForEvent()()
	for {
		if _, ok := msg.(eventsClosedMsg); ok {
			break
		}
		msg = m.waitForEvent()()
	}

	_, cmd := m.Update(msg)
	assert.NotNil(t, cmd)
	assert.True(t, m.quitting)
	assert.Empty(t, m.View())
}

func TestQuit(t *testing.T) {
	m, _, _ := newTestModel(t)
	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
