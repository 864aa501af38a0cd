package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "pausepad/internal/errors"
	"pausepad/internal/model"
	"pausepad/internal/repository"
	"pausepad/internal/timer"
)

const (
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 200
	loadSettingsTimeout = 5 * time.Second
)

// TimerView is the timer as shown to a client.
type TimerView struct {
	State    model.TimerState     `json:"state"`
	Config   model.TimerConfig    `json:"config"`
	Progress float64              `json:"progress"`
	Display  string               `json:"display"`
	Title    string               `json:"title"`
	Session  *model.SessionRecord `json:"session,omitempty"`
}

// ObserverSource builds per-user observers attached to every new controller.
type ObserverSource func(userID string) timer.Observer

type TimerServiceOptions struct {
	TickInterval time.Duration
	Logger       *zap.Logger
	Observers    []ObserverSource
}

// TimerService keeps one live countdown per user. Timer state lives in
// memory; configuration and closed session records are persisted.
type TimerService struct {
	registry *timer.Registry
	store    *SessionStore
	settings *repository.SettingsRepository
	sessions *repository.SessionRepository
	tasks    *repository.TaskRepository
	options  TimerServiceOptions
	logger   *zap.Logger
}

func NewTimerService(
	settings *repository.SettingsRepository,
	sessions *repository.SessionRepository,
	tasks *repository.TaskRepository,
	options TimerServiceOptions,
) *TimerService {
	if options.Logger == nil {
		options.Logger = zap.NewNop()
	}
	s := &TimerService{
		settings: settings,
		sessions: sessions,
		tasks:    tasks,
		options:  options,
		logger:   options.Logger,
		store:    NewSessionStore(sessions, options.Logger),
	}
	s.registry = timer.NewRegistry(s.newController)
	return s
}

func (s *TimerService) newController(userID string) (*timer.Controller, error) {
	ctx, cancel := context.WithTimeout(context.Background(), loadSettingsTimeout)
	defer cancel()

	cfg, err := s.settings.Get(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		cfg = model.DefaultTimerConfig()
	} else if err != nil {
		return nil, err
	}

	machine, err := timer.NewMachine(cfg, timer.WithUserID(userID), timer.WithIDGenerator(uuid.NewString))
	if err != nil {
		return nil, err
	}

	logger := s.logger.With(zap.String("user_id", userID))
	controller := timer.NewController(machine, timer.Options{
		TickInterval: s.options.TickInterval,
		Logger:       logger,
	})
	controller.AddObserver(s.store)
	controller.AddObserver(timer.NewSessionLog(0, logger))
	for _, source := range s.options.Observers {
		if observer := source(userID); observer != nil {
			controller.AddObserver(observer)
		}
	}
	logger.Debug("timer created", zap.Int("focus_minutes", cfg.FocusTime))
	return controller, nil
}

func (s *TimerService) controller(userID string) (*timer.Controller, *apperrors.APIError) {
	controller, err := s.registry.Get(userID)
	if err != nil {
		s.logger.Error("load timer", zap.String("user_id", userID), zap.Error(err))
		return nil, apperrors.Internal("failed to load timer")
	}
	return controller, nil
}

func (s *TimerService) Get(_ context.Context, userID string) (*TimerView, *apperrors.APIError) {
	controller, apiErr := s.controller(userID)
	if apiErr != nil {
		return nil, apiErr
	}
	return viewOf(controller), nil
}

func (s *TimerService) Start(ctx context.Context, userID string) (*TimerView, *apperrors.APIError) {
	return s.control(userID, (*timer.Controller).Start)
}

func (s *TimerService) Pause(ctx context.Context, userID string) (*TimerView, *apperrors.APIError) {
	return s.control(userID, (*timer.Controller).Pause)
}

func (s *TimerService) Resume(ctx context.Context, userID string) (*TimerView, *apperrors.APIError) {
	return s.control(userID, (*timer.Controller).Resume)
}

func (s *TimerService) Stop(ctx context.Context, userID string) (*TimerView, *apperrors.APIError) {
	return s.control(userID, (*timer.Controller).Stop)
}

func (s *TimerService) Skip(ctx context.Context, userID string) (*TimerView, *apperrors.APIError) {
	return s.control(userID, (*timer.Controller).Skip)
}

func (s *TimerService) Reset(ctx context.Context, userID string) (*TimerView, *apperrors.APIError) {
	return s.control(userID, (*timer.Controller).Reset)
}

func (s *TimerService) control(userID string, op func(*timer.Controller) model.TimerState) (*TimerView, *apperrors.APIError) {
	controller, apiErr := s.controller(userID)
	if apiErr != nil {
		return nil, apiErr
	}
	op(controller)
	return viewOf(controller), nil
}

func (s *TimerService) SetMode(_ context.Context, userID string, mode model.TimerMode) (*TimerView, *apperrors.APIError) {
	controller, apiErr := s.controller(userID)
	if apiErr != nil {
		return nil, apiErr
	}
	if _, err := controller.SetMode(mode); err != nil {
		return nil, timerError(err)
	}
	return viewOf(controller), nil
}

// UpdateConfig persists the patched configuration and then applies it to
// the live timer. A failed save leaves the timer untouched.
func (s *TimerService) UpdateConfig(ctx context.Context, userID string, patch model.TimerConfigPatch) (*TimerView, *apperrors.APIError) {
	if patch.Empty() {
		return nil, apperrors.BadRequest("invalid_config", "no configuration fields given")
	}
	controller, apiErr := s.controller(userID)
	if apiErr != nil {
		return nil, apiErr
	}

	merged := patch.Apply(controller.Config())
	if err := timer.ValidateConfig(merged); err != nil {
		return nil, timerError(err)
	}
	if err := s.settings.Upsert(ctx, userID, merged); err != nil {
		s.logger.Error("persist timer settings", zap.String("user_id", userID), zap.Error(err))
		return nil, apperrors.Internal("failed to save settings")
	}
	if _, err := controller.SetConfig(model.FullPatch(merged)); err != nil {
		return nil, timerError(err)
	}
	return viewOf(controller), nil
}

// SetTask selects the task recorded on the next session. An empty id clears
// the selection.
func (s *TimerService) SetTask(ctx context.Context, userID, taskID string) (*TimerView, *apperrors.APIError) {
	if taskID != "" {
		if _, err := s.tasks.Get(ctx, userID, taskID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, apperrors.NotFound("task_not_found", "task not found")
			}
			s.logger.Error("get task", zap.String("user_id", userID), zap.Error(err))
			return nil, apperrors.Internal("failed to get task")
		}
	}

	controller, apiErr := s.controller(userID)
	if apiErr != nil {
		return nil, apiErr
	}
	controller.SetCurrentTask(taskID)
	return viewOf(controller), nil
}

func (s *TimerService) History(ctx context.Context, userID string, limit int) ([]model.SessionRecord, *apperrors.APIError) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}

	records, err := s.sessions.List(ctx, userID, limit)
	if err != nil {
		s.logger.Error("list sessions", zap.String("user_id", userID), zap.Error(err))
		return nil, apperrors.Internal("failed to list sessions")
	}
	return records, nil
}

// ActiveTimers reports how many users have a live timer.
func (s *TimerService) ActiveTimers() int {
	return s.registry.Len()
}

// Close stops every countdown.
func (s *TimerService) Close() {
	s.registry.Close()
	s.store.Close()
}

func viewOf(controller *timer.Controller) *TimerView {
	state := controller.State()
	return &TimerView{
		State:    state,
		Config:   controller.Config(),
		Progress: timer.Progress(state),
		Display:  timer.FormatTime(state.TimeRemaining),
		Title:    timer.Title(state),
		Session:  controller.CurrentSession(),
	}
}

func timerError(err error) *apperrors.APIError {
	switch {
	case errors.Is(err, timer.ErrInvalidConfig):
		return apperrors.BadRequest("invalid_config", err.Error())
	case errors.Is(err, timer.ErrInvalidMode):
		return apperrors.BadRequest("invalid_mode", err.Error())
	case errors.Is(err, timer.ErrTimerBusy):
		return apperrors.Conflict("timer_busy", "stop the timer before changing mode")
	default:
		return apperrors.Internal("timer unavailable")
	}
}
