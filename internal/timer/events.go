package timer

import (
	"time"

	"pausepad/internal/model"
)

// EventType identifies what a machine transition produced.
type EventType string

const (
	EventStarted           EventType = "started"
	EventStateChanged      EventType = "state_changed"
	EventTick              EventType = "tick"
	EventSessionOpened     EventType = "session_opened"
	EventSessionClosed     EventType = "session_closed"
	EventSessionDiscarded  EventType = "session_discarded"
	EventIntervalCompleted EventType = "interval_completed"
	EventConfigChanged     EventType = "config_changed"
)

// Event is delivered to observers and subscribers after every transition.
// Record is set for session events, NextMode for interval completion.
type Event struct {
	Type     EventType
	State    model.TimerState
	Mode     model.TimerMode
	NextMode model.TimerMode
	Record   *model.SessionRecord
	At       time.Time
}

// Observer receives events synchronously, in registration order.
// Implementations must not call back into the Controller that notifies them.
type Observer interface {
	HandleEvent(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

func (f ObserverFunc) HandleEvent(event Event) {
	f(event)
}
