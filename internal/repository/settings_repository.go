package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"pausepad/internal/model"
)

type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// SettingsRepository stores one timer configuration per user.
type SettingsRepository struct {
	db *sql.DB
}

func NewSettingsRepository(db *sql.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

func (r *SettingsRepository) Get(ctx context.Context, userID string) (model.TimerConfig, error) {
	var cfg model.TimerConfig
	err := r.db.QueryRowContext(
		ctx,
		`SELECT focus_minutes, long_focus_minutes, short_break_minutes, long_break_minutes,
		        sessions_until_long_break, auto_start_breaks, auto_start_pomodoros
		 FROM timer_settings
		 WHERE user_id = ?`,
		userID,
	).Scan(
		&cfg.FocusTime,
		&cfg.LongFocusTime,
		&cfg.ShortBreakTime,
		&cfg.LongBreakTime,
		&cfg.SessionsUntilLongBreak,
		&cfg.AutoStartBreaks,
		&cfg.AutoStartPomodoros,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.TimerConfig{}, ErrNotFound
		}
		return model.TimerConfig{}, fmt.Errorf("get timer settings: %w", err)
	}
	return cfg, nil
}

func (r *SettingsRepository) Upsert(ctx context.Context, userID string, cfg model.TimerConfig) error {
	return upsertSettings(ctx, r.db, userID, cfg, time.Now())
}

func upsertSettings(ctx context.Context, db execer, userID string, cfg model.TimerConfig, now time.Time) error {
	_, err := db.ExecContext(
		ctx,
		`INSERT INTO timer_settings (
			user_id, focus_minutes, long_focus_minutes, short_break_minutes, long_break_minutes,
			sessions_until_long_break, auto_start_breaks, auto_start_pomodoros, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			focus_minutes = excluded.focus_minutes,
			long_focus_minutes = excluded.long_focus_minutes,
			short_break_minutes = excluded.short_break_minutes,
			long_break_minutes = excluded.long_break_minutes,
			sessions_until_long_break = excluded.sessions_until_long_break,
			auto_start_breaks = excluded.auto_start_breaks,
			auto_start_pomodoros = excluded.auto_start_pomodoros,
			updated_at = excluded.updated_at`,
		userID,
		cfg.FocusTime,
		cfg.LongFocusTime,
		cfg.ShortBreakTime,
		cfg.LongBreakTime,
		cfg.SessionsUntilLongBreak,
		cfg.AutoStartBreaks,
		cfg.AutoStartPomodoros,
		formatTime(now),
	)
	if err != nil {
		return fmt.Errorf("upsert timer settings: %w", err)
	}
	return nil
}
