package timer

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"pausepad/internal/model"
)

// Machine is the pure countdown state machine. It does no I/O and keeps no
// goroutines; every operation returns the events it produced. It is not safe
// for concurrent use, Controller serializes access.
type Machine struct {
	config model.TimerConfig
	state  model.TimerState
	record *model.SessionRecord
	userID string
	now    func() time.Time
	newID  func() string
}

// MachineOption customizes a Machine.
type MachineOption func(*Machine)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) MachineOption {
	return func(m *Machine) {
		m.now = now
	}
}

// WithIDGenerator replaces uuid.NewString for session record ids.
func WithIDGenerator(newID func() string) MachineOption {
	return func(m *Machine) {
		m.newID = newID
	}
}

// WithUserID stamps opened session records with the owning user.
func WithUserID(userID string) MachineOption {
	return func(m *Machine) {
		m.userID = userID
	}
}

func NewMachine(cfg model.TimerConfig, opts ...MachineOption) (*Machine, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	m := &Machine{
		config: cfg,
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.state = initialState(cfg)
	return m, nil
}

func initialState(cfg model.TimerConfig) model.TimerState {
	total := cfg.DurationFor(model.ModeFocus)
	return model.TimerState{
		Mode:           model.ModeFocus,
		Status:         model.StatusIdle,
		TimeRemaining:  total,
		TotalTime:      total,
		CurrentSession: 1,
	}
}

func (m *Machine) State() model.TimerState {
	return m.state
}

func (m *Machine) Config() model.TimerConfig {
	return m.config
}

// CurrentRecord returns a copy of the open session record, if any.
func (m *Machine) CurrentRecord() *model.SessionRecord {
	if m.record == nil {
		return nil
	}
	record := *m.record
	return &record
}

func (m *Machine) Start() []Event {
	if m.state.Status != model.StatusIdle {
		return nil
	}

	now := m.now()
	m.state.Status = model.StatusRunning
	events := []Event{m.event(EventStarted, now)}
	events = append(events, m.openRecord(now))
	return append(events, m.event(EventStateChanged, now))
}

func (m *Machine) Pause() []Event {
	if m.state.Status != model.StatusRunning {
		return nil
	}
	m.state.Status = model.StatusPaused
	return []Event{m.event(EventStateChanged, m.now())}
}

func (m *Machine) Resume() []Event {
	if m.state.Status != model.StatusPaused {
		return nil
	}
	m.state.Status = model.StatusRunning
	return []Event{m.event(EventStateChanged, m.now())}
}

func (m *Machine) Stop() []Event {
	if m.state.Status != model.StatusRunning && m.state.Status != model.StatusPaused {
		return nil
	}

	now := m.now()
	var events []Event
	if closed := m.closeRecord(now, false); closed != nil {
		events = append(events, *closed)
	}

	duration := m.config.DurationFor(m.state.Mode)
	m.state.Status = model.StatusIdle
	m.state.TimeRemaining = duration
	m.state.TotalTime = duration
	return append(events, m.event(EventStateChanged, now))
}

func (m *Machine) Skip() []Event {
	now := m.now()
	var events []Event
	if closed := m.closeRecord(now, false); closed != nil {
		events = append(events, *closed)
	}

	// A skipped focus interval is not counted, but the break that follows it
	// is chosen as if it had been: the Nth interval of a cycle leads to the
	// long break whether it ran out or was skipped.
	count := m.state.CompletedSessions
	if m.state.Mode.IsFocus() {
		count++
	}
	next := nextMode(m.state.Mode, count, m.config.SessionsUntilLongBreak)
	duration := m.config.DurationFor(next)

	m.state.Mode = next
	m.state.Status = model.StatusIdle
	m.state.TimeRemaining = duration
	m.state.TotalTime = duration
	m.state.CurrentSession++
	return append(events, m.event(EventStateChanged, now))
}

func (m *Machine) Reset() []Event {
	now := m.now()
	var events []Event
	if m.record != nil {
		discarded := *m.record
		m.record = nil
		event := m.event(EventSessionDiscarded, now)
		event.Record = &discarded
		events = append(events, event)
	}

	m.state = initialState(m.config)
	return append(events, m.event(EventStateChanged, now))
}

// SetMode switches the displayed interval. It is rejected unless the timer is
// idle so a running countdown never silently changes length underneath.
func (m *Machine) SetMode(mode model.TimerMode) ([]Event, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}
	if m.state.Status != model.StatusIdle {
		return nil, fmt.Errorf("set mode while %s: %w", m.state.Status, ErrTimerBusy)
	}

	duration := m.config.DurationFor(mode)
	m.state.Mode = mode
	m.state.TimeRemaining = duration
	m.state.TotalTime = duration
	return []Event{m.event(EventStateChanged, m.now())}, nil
}

// SetConfig merges patch into the configuration. An idle interval is resized
// to the new duration of its mode; running and paused intervals keep theirs.
func (m *Machine) SetConfig(patch model.TimerConfigPatch) ([]Event, error) {
	updated := patch.Apply(m.config)
	if err := ValidateConfig(updated); err != nil {
		return nil, err
	}

	m.config = updated
	if m.state.Status == model.StatusIdle {
		duration := updated.DurationFor(m.state.Mode)
		m.state.TimeRemaining = duration
		m.state.TotalTime = duration
	}
	return []Event{m.event(EventConfigChanged, m.now())}, nil
}

// SetCurrentTask associates a task id with the next opened session record.
// An empty id clears the association.
func (m *Machine) SetCurrentTask(taskID string) []Event {
	m.state.CurrentTask = taskID
	return []Event{m.event(EventStateChanged, m.now())}
}

// Tick advances a running interval by one second.
func (m *Machine) Tick() []Event {
	if m.state.Status != model.StatusRunning || m.state.TimeRemaining <= 0 {
		return nil
	}

	now := m.now()
	m.state.TimeRemaining--
	if m.record != nil {
		m.record.DurationSeconds++
	}
	if m.state.TimeRemaining > 0 {
		return []Event{m.event(EventTick, now)}
	}
	return m.completeInterval(now)
}

func (m *Machine) completeInterval(now time.Time) []Event {
	finished := m.state.Mode
	if finished.IsFocus() {
		m.state.CompletedSessions++
	}
	next := nextMode(finished, m.state.CompletedSessions, m.config.SessionsUntilLongBreak)
	duration := m.config.DurationFor(next)

	m.state.Mode = next
	m.state.TimeRemaining = duration
	m.state.TotalTime = duration
	m.state.CurrentSession++

	var events []Event
	if closed := m.closeRecord(now, true); closed != nil {
		events = append(events, *closed)
	}

	completed := m.event(EventIntervalCompleted, now)
	completed.Mode = finished
	completed.NextMode = next
	events = append(events, completed)

	if m.config.AutoStarts(next) {
		m.state.Status = model.StatusRunning
		events = append(events, m.openRecord(now))
	} else {
		m.state.Status = model.StatusIdle
	}
	return append(events, m.event(EventStateChanged, now))
}

func (m *Machine) openRecord(now time.Time) Event {
	m.record = &model.SessionRecord{
		ID:             m.newID(),
		UserID:         m.userID,
		TaskID:         m.state.CurrentTask,
		Mode:           m.state.Mode,
		StartTime:      now,
		PlannedSeconds: m.state.TotalTime,
		CreatedAt:      now,
	}
	opened := *m.record
	event := m.event(EventSessionOpened, now)
	event.Record = &opened
	return event
}

func (m *Machine) closeRecord(now time.Time, completed bool) *Event {
	if m.record == nil {
		return nil
	}

	end := now
	m.record.EndTime = &end
	m.record.Completed = completed
	m.record.Interrupted = !completed
	closed := *m.record
	m.record = nil

	event := m.event(EventSessionClosed, now)
	event.Mode = closed.Mode
	event.Record = &closed
	return &event
}

func (m *Machine) event(eventType EventType, at time.Time) Event {
	return Event{
		Type:  eventType,
		State: m.state,
		Mode:  m.state.Mode,
		At:    at,
	}
}

// nextMode applies the transition rule: focus-type intervals are followed by a
// long break on every Nth completion and a short break otherwise; breaks are
// always followed by focus.
func nextMode(current model.TimerMode, completed, sessionsUntilLongBreak int) model.TimerMode {
	if !current.IsFocus() {
		return model.ModeFocus
	}
	if sessionsUntilLongBreak > 0 && completed%sessionsUntilLongBreak == 0 {
		return model.ModeLongBreak
	}
	return model.ModeShortBreak
}
