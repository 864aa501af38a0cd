package model

import "time"

type TimerMode string

const (
	ModeFocus      TimerMode = "focus"
	ModeLongFocus  TimerMode = "longFocus"
	ModeShortBreak TimerMode = "shortBreak"
	ModeLongBreak  TimerMode = "longBreak"
)

// IsFocus reports whether the mode is a work interval rather than a break.
func (m TimerMode) IsFocus() bool {
	return m == ModeFocus || m == ModeLongFocus
}

func (m TimerMode) Valid() bool {
	switch m {
	case ModeFocus, ModeLongFocus, ModeShortBreak, ModeLongBreak:
		return true
	}
	return false
}

type TimerStatus string

const (
	StatusIdle    TimerStatus = "idle"
	StatusRunning TimerStatus = "running"
	StatusPaused  TimerStatus = "paused"
	// StatusCompleted is reserved; natural completion folds into idle or running.
	StatusCompleted TimerStatus = "completed"
)

const (
	DefaultFocusMinutes           = 25
	DefaultLongFocusMinutes       = 45
	DefaultShortBreakMinutes      = 5
	DefaultLongBreakMinutes       = 15
	DefaultSessionsUntilLongBreak = 4
)

// TimerConfig holds interval lengths in minutes, at most one day each.
type TimerConfig struct {
	FocusTime              int  `json:"focusTime" yaml:"focus_time" validate:"gt=0,lte=1440"`
	LongFocusTime          int  `json:"longFocusTime" yaml:"long_focus_time" validate:"gt=0,lte=1440"`
	ShortBreakTime         int  `json:"shortBreakTime" yaml:"short_break_time" validate:"gt=0,lte=1440"`
	LongBreakTime          int  `json:"longBreakTime" yaml:"long_break_time" validate:"gt=0,lte=1440"`
	SessionsUntilLongBreak int  `json:"sessionsUntilLongBreak" yaml:"sessions_until_long_break" validate:"gte=1,lte=100"`
	AutoStartBreaks        bool `json:"autoStartBreaks" yaml:"auto_start_breaks"`
	AutoStartPomodoros     bool `json:"autoStartPomodoros" yaml:"auto_start_pomodoros"`
}

func DefaultTimerConfig() TimerConfig {
	return TimerConfig{
		FocusTime:              DefaultFocusMinutes,
		LongFocusTime:          DefaultLongFocusMinutes,
		ShortBreakTime:         DefaultShortBreakMinutes,
		LongBreakTime:          DefaultLongBreakMinutes,
		SessionsUntilLongBreak: DefaultSessionsUntilLongBreak,
	}
}

// DurationFor returns the configured length of mode in seconds.
func (c TimerConfig) DurationFor(mode TimerMode) int {
	switch mode {
	case ModeLongFocus:
		return c.LongFocusTime * 60
	case ModeShortBreak:
		return c.ShortBreakTime * 60
	case ModeLongBreak:
		return c.LongBreakTime * 60
	default:
		return c.FocusTime * 60
	}
}

// AutoStarts reports whether an interval of mode begins running on its own
// after the previous one completes.
func (c TimerConfig) AutoStarts(mode TimerMode) bool {
	if mode.IsFocus() {
		return c.AutoStartPomodoros
	}
	return c.AutoStartBreaks
}

// TimerConfigPatch carries a partial configuration update. Nil fields are
// left untouched.
type TimerConfigPatch struct {
	FocusTime              *int  `json:"focusTime,omitempty"`
	LongFocusTime          *int  `json:"longFocusTime,omitempty"`
	ShortBreakTime         *int  `json:"shortBreakTime,omitempty"`
	LongBreakTime          *int  `json:"longBreakTime,omitempty"`
	SessionsUntilLongBreak *int  `json:"sessionsUntilLongBreak,omitempty"`
	AutoStartBreaks        *bool `json:"autoStartBreaks,omitempty"`
	AutoStartPomodoros     *bool `json:"autoStartPomodoros,omitempty"`
}

func (p TimerConfigPatch) Apply(base TimerConfig) TimerConfig {
	if p.FocusTime != nil {
		base.FocusTime = *p.FocusTime
	}
	if p.LongFocusTime != nil {
		base.LongFocusTime = *p.LongFocusTime
	}
	if p.ShortBreakTime != nil {
		base.ShortBreakTime = *p.ShortBreakTime
	}
	if p.LongBreakTime != nil {
		base.LongBreakTime = *p.LongBreakTime
	}
	if p.SessionsUntilLongBreak != nil {
		base.SessionsUntilLongBreak = *p.SessionsUntilLongBreak
	}
	if p.AutoStartBreaks != nil {
		base.AutoStartBreaks = *p.AutoStartBreaks
	}
	if p.AutoStartPomodoros != nil {
		base.AutoStartPomodoros = *p.AutoStartPomodoros
	}
	return base
}

// FullPatch returns a patch that sets every field to the value in cfg.
func FullPatch(cfg TimerConfig) TimerConfigPatch {
	return TimerConfigPatch{
		FocusTime:              &cfg.FocusTime,
		LongFocusTime:          &cfg.LongFocusTime,
		ShortBreakTime:         &cfg.ShortBreakTime,
		LongBreakTime:          &cfg.LongBreakTime,
		SessionsUntilLongBreak: &cfg.SessionsUntilLongBreak,
		AutoStartBreaks:        &cfg.AutoStartBreaks,
		AutoStartPomodoros:     &cfg.AutoStartPomodoros,
	}
}

func (p TimerConfigPatch) Empty() bool {
	return p == TimerConfigPatch{}
}

type TimerState struct {
	Mode              TimerMode   `json:"mode"`
	Status            TimerStatus `json:"status"`
	TimeRemaining     int         `json:"timeRemaining"`
	TotalTime         int         `json:"totalTime"`
	CurrentSession    int         `json:"currentSession"`
	CompletedSessions int         `json:"completedSessions"`
	CurrentTask       string      `json:"currentTask,omitempty"`
}

type SessionRecord struct {
	ID              string     `json:"id"`
	UserID          string     `json:"userId,omitempty"`
	TaskID          string     `json:"taskId,omitempty"`
	Mode            TimerMode  `json:"mode"`
	StartTime       time.Time  `json:"startTime"`
	EndTime         *time.Time `json:"endTime,omitempty"`
	DurationSeconds int        `json:"duration"`
	PlannedSeconds  int        `json:"plannedDuration"`
	Completed       bool       `json:"completed"`
	Interrupted     bool       `json:"interrupted"`
	CreatedAt       time.Time  `json:"createdAt"`
}

func (r SessionRecord) Closed() bool {
	return r.EndTime != nil
}
