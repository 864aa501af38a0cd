package service

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	apperrors "pausepad/internal/errors"
	"pausepad/internal/model"
	"pausepad/internal/repository"
)

const dateLayout = "2006-01-02"

type StatsService struct {
	sessions *repository.SessionRepository
	tasks    *repository.TaskRepository
	location *time.Location
	now      func() time.Time
	logger   *zap.Logger
}

func NewStatsService(
	sessions *repository.SessionRepository,
	tasks *repository.TaskRepository,
	location *time.Location,
	logger *zap.Logger,
) *StatsService {
	if location == nil {
		location = time.Local
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatsService{
		sessions: sessions,
		tasks:    tasks,
		location: location,
		now:      time.Now,
		logger:   logger,
	}
}

// Today returns the counters of the current calendar day.
func (s *StatsService) Today(ctx context.Context, userID string) (*model.DailyStats, *apperrors.APIError) {
	now := s.now().In(s.location)
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.location)
	to := from.AddDate(0, 0, 1)

	records, err := s.sessions.ListBetween(ctx, userID, from, to)
	if err != nil {
		s.logger.Error("list sessions for today", zap.String("user_id", userID), zap.Error(err))
		return nil, apperrors.Internal("failed to load stats")
	}
	completedTasks, err := s.tasks.CountCompletedBetween(ctx, userID, from, to)
	if err != nil {
		s.logger.Error("count completed tasks", zap.String("user_id", userID), zap.Error(err))
		return nil, apperrors.Internal("failed to load stats")
	}

	stats := Daily(from.Format(dateLayout), records)
	stats.CompletedTasksCount = completedTasks
	return &stats, nil
}

func (s *StatsService) Summary(ctx context.Context, userID string) (*model.TimerStats, *apperrors.APIError) {
	records, err := s.sessions.ListAll(ctx, userID)
	if err != nil {
		s.logger.Error("list sessions for summary", zap.String("user_id", userID), zap.Error(err))
		return nil, apperrors.Internal("failed to load stats")
	}
	stats := Summarize(records)
	return &stats, nil
}

// Daily counts completed focus intervals and the minutes spent in focus.
func Daily(date string, records []model.SessionRecord) model.DailyStats {
	stats := model.DailyStats{Date: date}
	focusSeconds := 0
	for _, record := range records {
		if !record.Mode.IsFocus() {
			continue
		}
		focusSeconds += record.DurationSeconds
		if record.Completed {
			stats.PomodoroCount++
		}
	}
	stats.TotalMinutes = focusSeconds / 60
	return stats
}

// Summarize aggregates records given oldest first. A streak is a run of
// completed focus intervals; an interrupted focus interval ends it and breaks
// do not affect it.
func Summarize(records []model.SessionRecord) model.TimerStats {
	var stats model.TimerStats
	completedSeconds := 0
	streak := 0
	for _, record := range records {
		if !record.Mode.IsFocus() {
			stats.TotalBreakTime += record.DurationSeconds
			continue
		}

		stats.TotalFocusTime += record.DurationSeconds
		stats.SessionsStarted++
		if !record.Completed {
			streak = 0
			continue
		}
		stats.SessionsCompleted++
		completedSeconds += record.DurationSeconds
		streak++
		if streak > stats.LongestStreak {
			stats.LongestStreak = streak
		}
	}
	stats.CurrentStreak = streak

	if stats.SessionsCompleted > 0 {
		stats.AverageSessionLength = completedSeconds / stats.SessionsCompleted
	}
	if stats.SessionsStarted > 0 {
		stats.Productivity = int(math.Round(float64(stats.SessionsCompleted) * 100 / float64(stats.SessionsStarted)))
	}
	return stats
}
