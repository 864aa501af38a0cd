package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"pausepad/internal/model"
	"pausepad/internal/timer"
)

const recentSessions = 3

// Timer is the part of timer.Controller the screen drives.
type Timer interface {
	State() model.TimerState
	Config() model.TimerConfig
	Start() model.TimerState
	Pause() model.TimerState
	Resume() model.TimerState
	Stop() model.TimerState
	Skip() model.TimerState
	Reset() model.TimerState
	SetMode(mode model.TimerMode) (model.TimerState, error)
}

// History supplies recently closed sessions.
type History interface {
	Records(limit int) []model.SessionRecord
}

type Config struct {
	Timer    Timer
	Events   <-chan timer.Event
	History  History
	TaskText string
}

// eventMsg carries one controller event into the update loop.
type eventMsg struct {
	event timer.Event
}

// eventsClosedMsg reports that the controller was disposed.
type eventsClosedMsg struct{}

type Model struct {
	timer    Timer
	events   <-chan timer.Event
	history  History
	taskText string

	state    model.TimerState
	keys     KeyMap
	help     help.Model
	progress progress.Model
	err      error
	width    int
	quitting bool
}

func New(cfg Config) *Model {
	return &Model{
		timer:    cfg.Timer,
		events:   cfg.Events,
		history:  cfg.History,
		taskText: cfg.TaskText,
		state:    cfg.Timer.State(),
		keys:     DefaultKeyMap(),
		help:     help.New(),
		progress: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle(timer.Title(m.state)),
		m.waitForEvent(),
	)
}

func (m *Model) waitForEvent() tea.Cmd {
	if m.events == nil {
		return nil
	}
	events := m.events
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return eventsClosedMsg{}
		}
		return eventMsg{event: event}
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		m.state = msg.event.State
		return m, tea.Batch(tea.SetWindowTitle(timer.Title(m.state)), m.waitForEvent())

	case eventsClosedMsg:
		m.quitting = true
		return m, tea.Quit

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.progress.Width = min(max(msg.Width-12, 10), 60)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.err = nil
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Toggle):
		m.state = m.toggle()
	case key.Matches(msg, m.keys.Stop):
		m.state = m.timer.Stop()
	case key.Matches(msg, m.keys.Skip):
		m.state = m.timer.Skip()
	case key.Matches(msg, m.keys.Reset):
		m.state = m.timer.Reset()
	case key.Matches(msg, m.keys.Focus):
		m.setMode(model.ModeFocus)
	case key.Matches(msg, m.keys.LongFocus):
		m.setMode(model.ModeLongFocus)
	case key.Matches(msg, m.keys.ShortBreak):
		m.setMode(model.ModeShortBreak)
	case key.Matches(msg, m.keys.LongBreak):
		m.setMode(model.ModeLongBreak)
	default:
		return m, nil
	}
	return m, tea.SetWindowTitle(timer.Title(m.state))
}

func (m *Model) toggle() model.TimerState {
	switch m.state.Status {
	case model.StatusRunning:
		return m.timer.Pause()
	case model.StatusPaused:
		return m.timer.Resume()
	default:
		return m.timer.Start()
	}
}

func (m *Model) setMode(mode model.TimerMode) {
	state, err := m.timer.SetMode(mode)
	m.state = state
	m.err = err
}
