package notify

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"pausepad/internal/model"
	"pausepad/internal/timer"
)

const defaultEffectTimeout = 10 * time.Second

type Config struct {
	Desktop  Desktop
	Player   Player
	Logger   *zap.Logger
	Language string
	Timeout  time.Duration
}

// Notifier is a timer observer that plays the chime and shows a desktop
// notification when an interval completes. Every side effect runs on its own
// goroutine and failures are only logged.
type Notifier struct {
	desktop  Desktop
	player   Player
	logger   *zap.Logger
	language string
	timeout  time.Duration
	chime    []byte

	mu         sync.Mutex
	permission Permission
	requested  bool
	wg         sync.WaitGroup
}

func NewNotifier(cfg Config) *Notifier {
	if cfg.Desktop == nil {
		cfg.Desktop = NopDesktop{}
	}
	if cfg.Player == nil {
		cfg.Player = NopPlayer{}
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultEffectTimeout
	}
	return &Notifier{
		desktop:    cfg.Desktop,
		player:     cfg.Player,
		logger:     cfg.Logger,
		language:   cfg.Language,
		timeout:    cfg.Timeout,
		chime:      Chime(),
		permission: PermissionDefault,
	}
}

func (n *Notifier) HandleEvent(event timer.Event) {
	switch event.Type {
	case timer.EventStarted:
		n.requestPermissionOnce()
	case timer.EventIntervalCompleted:
		n.announce(event.Mode, event.NextMode)
	}
}

func (n *Notifier) Permission() Permission {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.permission
}

// Wait blocks until all in-flight side effects have finished.
func (n *Notifier) Wait() {
	n.wg.Wait()
}

func (n *Notifier) requestPermissionOnce() {
	n.mu.Lock()
	if n.requested {
		n.mu.Unlock()
		return
	}
	n.requested = true
	n.mu.Unlock()

	n.goSafe("request permission", func(ctx context.Context) error {
		permission, err := n.desktop.RequestPermission(ctx)
		n.mu.Lock()
		n.permission = permission
		n.mu.Unlock()
		return err
	})
}

func (n *Notifier) announce(finished, next model.TimerMode) {
	n.goSafe("play chime", func(ctx context.Context) error {
		return n.player.Play(ctx, n.chime)
	})

	if n.Permission() != PermissionGranted {
		return
	}
	msg := Compose(n.language, finished, next)
	n.goSafe("show notification", func(ctx context.Context) error {
		return n.desktop.Notify(ctx, msg.Title, msg.Body)
	})
}

func (n *Notifier) goSafe(action string, fn func(ctx context.Context) error) {
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				n.logger.Error("notification side effect panicked", zap.String("action", action), zap.Any("panic", r))
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
		defer cancel()
		if err := fn(ctx); err != nil {
			n.logger.Warn("notification side effect failed", zap.String("action", action), zap.Error(err))
		}
	}()
}
