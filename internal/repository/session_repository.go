package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"pausepad/internal/model"
)

// SessionRepository persists closed session records.
type SessionRepository struct {
	db *sql.DB
}

func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

var errOpenRecord = errors.New("session record has no end time")

func (r *SessionRepository) Insert(ctx context.Context, record model.SessionRecord) error {
	if !record.Closed() {
		return fmt.Errorf("insert session %s: %w", record.ID, errOpenRecord)
	}

	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO session_records (
			id, user_id, task_id, mode, start_time, end_time, duration_seconds,
			planned_seconds, completed, interrupted, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.UserID,
		nullString(record.TaskID),
		record.Mode,
		formatTime(record.StartTime),
		formatTime(*record.EndTime),
		record.DurationSeconds,
		record.PlannedSeconds,
		record.Completed,
		record.Interrupted,
		formatTime(record.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// List returns the newest records of a user.
func (r *SessionRepository) List(ctx context.Context, userID string, limit int) ([]model.SessionRecord, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT id, user_id, task_id, mode, start_time, end_time, duration_seconds,
		        planned_seconds, completed, interrupted, created_at
		 FROM session_records
		 WHERE user_id = ?
		 ORDER BY start_time DESC
		 LIMIT ?`,
		userID,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return collectSessions(rows, limit)
}

// ListBetween returns a user's records that started in [from, to), oldest
// first.
func (r *SessionRepository) ListBetween(ctx context.Context, userID string, from, to time.Time) ([]model.SessionRecord, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT id, user_id, task_id, mode, start_time, end_time, duration_seconds,
		        planned_seconds, completed, interrupted, created_at
		 FROM session_records
		 WHERE user_id = ? AND start_time >= ? AND start_time < ?
		 ORDER BY start_time ASC`,
		userID,
		formatTime(from),
		formatTime(to),
	)
	if err != nil {
		return nil, fmt.Errorf("list sessions between: %w", err)
	}
	return collectSessions(rows, 0)
}

// ListAll returns every record of a user, oldest first.
func (r *SessionRepository) ListAll(ctx context.Context, userID string) ([]model.SessionRecord, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT id, user_id, task_id, mode, start_time, end_time, duration_seconds,
		        planned_seconds, completed, interrupted, created_at
		 FROM session_records
		 WHERE user_id = ?
		 ORDER BY start_time ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list all sessions: %w", err)
	}
	return collectSessions(rows, 0)
}

func collectSessions(rows *sql.Rows, capacity int) ([]model.SessionRecord, error) {
	defer rows.Close()

	sessions := make([]model.SessionRecord, 0, capacity)
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return sessions, nil
}

func scanSession(s scanner) (*model.SessionRecord, error) {
	record := model.SessionRecord{}
	var taskID sql.NullString
	var startTime, endTime, createdAt string
	err := s.Scan(
		&record.ID,
		&record.UserID,
		&taskID,
		&record.Mode,
		&startTime,
		&endTime,
		&record.DurationSeconds,
		&record.PlannedSeconds,
		&record.Completed,
		&record.Interrupted,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan session: %w", err)
	}
	record.TaskID = taskID.String

	if record.StartTime, err = parseTime(startTime); err != nil {
		return nil, fmt.Errorf("parse session start_time: %w", err)
	}
	parsedEnd, err := parseTime(endTime)
	if err != nil {
		return nil, fmt.Errorf("parse session end_time: %w", err)
	}
	record.EndTime = &parsedEnd
	if record.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parse session created_at: %w", err)
	}
	return &record, nil
}
