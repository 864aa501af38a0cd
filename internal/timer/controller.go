package timer

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"pausepad/internal/model"
)

// Options contains runtime settings for a Controller.
type Options struct {
	TickInterval time.Duration
	Logger       *zap.Logger
}

// Controller owns a Machine and drives it with a one-second countdown. Exactly
// one ticker goroutine exists while the timer is running and none otherwise.
type Controller struct {
	mu        sync.Mutex
	machine   *Machine
	options   Options
	logger    *zap.Logger
	observers []Observer
	events    []chan Event
	stopTick  chan struct{}
	disposed  bool
}

func NewController(machine *Machine, options Options) *Controller {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		machine: machine,
		options: options,
		logger:  logger,
	}
}

// AddObserver registers an observer. Observers run synchronously after each
// transition; a panic inside one is recovered and logged.
func (c *Controller) AddObserver(observer Observer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, observer)
}

// Subscribe registers a buffered channel that receives every event. Slow
// subscribers miss events rather than block the countdown.
func (c *Controller) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed {
		close(ch)
		return ch
	}
	c.events = append(c.events, ch)
	return ch
}

func (c *Controller) State() model.TimerState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.machine.State()
}

func (c *Controller) Config() model.TimerConfig {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.machine.Config()
}

func (c *Controller) CurrentSession() *model.SessionRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.machine.CurrentRecord()
}

func (c *Controller) Progress() float64 {
	return Progress(c.State())
}

func (c *Controller) Start() model.TimerState {
	return c.apply(c.machine.Start)
}

func (c *Controller) Pause() model.TimerState {
	return c.apply(c.machine.Pause)
}

func (c *Controller) Resume() model.TimerState {
	return c.apply(c.machine.Resume)
}

func (c *Controller) Stop() model.TimerState {
	return c.apply(c.machine.Stop)
}

func (c *Controller) Skip() model.TimerState {
	return c.apply(c.machine.Skip)
}

func (c *Controller) Reset() model.TimerState {
	return c.apply(c.machine.Reset)
}

func (c *Controller) SetCurrentTask(taskID string) model.TimerState {
	return c.apply(func() []Event {
		return c.machine.SetCurrentTask(taskID)
	})
}

func (c *Controller) SetMode(mode model.TimerMode) (model.TimerState, error) {
	return c.applyErr(func() ([]Event, error) {
		return c.machine.SetMode(mode)
	})
}

func (c *Controller) SetConfig(patch model.TimerConfigPatch) (model.TimerState, error) {
	return c.applyErr(func() ([]Event, error) {
		return c.machine.SetConfig(patch)
	})
}

// Dispose cancels the countdown and closes all subscriber channels. The
// controller ignores every operation afterwards.
func (c *Controller) Dispose() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed {
		return
	}
	c.disposed = true
	c.stopTickerLocked()
	for _, ch := range c.events {
		close(ch)
	}
	c.events = nil
}

func (c *Controller) apply(op func() []Event) model.TimerState {
	state, _ := c.applyErr(func() ([]Event, error) {
		return op(), nil
	})
	return state
}

func (c *Controller) applyErr(op func() ([]Event, error)) (model.TimerState, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed {
		return c.machine.State(), ErrDisposed
	}

	events, err := op()
	if err != nil {
		return c.machine.State(), err
	}
	c.syncTickerLocked()
	c.dispatchLocked(events)
	return c.machine.State(), nil
}

func (c *Controller) syncTickerLocked() {
	running := c.machine.State().Status == model.StatusRunning
	if running && c.stopTick == nil {
		stop := make(chan struct{})
		c.stopTick = stop
		go c.run(stop)
		return
	}
	if !running {
		c.stopTickerLocked()
	}
}

func (c *Controller) stopTickerLocked() {
	if c.stopTick != nil {
		close(c.stopTick)
		c.stopTick = nil
	}
}

func (c *Controller) run(stop chan struct{}) {
	ticker := time.NewTicker(c.options.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			c.tick(stop)
		}
	}
}

func (c *Controller) tick(stop chan struct{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// The ticker may fire after a pause or stop already retired this loop.
	select {
	case <-stop:
		return
	default:
	}

	events := c.machine.Tick()
	c.syncTickerLocked()
	c.dispatchLocked(events)
}

func (c *Controller) dispatchLocked(events []Event) {
	for _, event := range events {
		for _, observer := range c.observers {
			c.notifyObserver(observer, event)
		}
		for _, ch := range c.events {
			select {
			case ch <- event:
			default:
			}
		}
	}
}

func (c *Controller) notifyObserver(observer Observer, event Event) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("timer observer panicked",
				zap.String("event", string(event.Type)),
				zap.Any("panic", r),
			)
		}
	}()
	observer.HandleEvent(event)
}
