package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"pausepad/internal/model"
)

type TaskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO tasks (id, user_id, text, completed, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		task.ID,
		task.UserID,
		task.Text,
		task.Completed,
		formatTime(task.CreatedAt),
		formatTime(task.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

func (r *TaskRepository) Get(ctx context.Context, userID, id string) (*model.Task, error) {
	row := r.db.QueryRowContext(
		ctx,
		`SELECT id, user_id, text, completed, created_at, updated_at
		 FROM tasks
		 WHERE user_id = ? AND id = ?`,
		userID,
		id,
	)
	return scanTask(row)
}

func (r *TaskRepository) List(ctx context.Context, userID string) ([]model.Task, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT id, user_id, text, completed, created_at, updated_at
		 FROM tasks
		 WHERE user_id = ?
		 ORDER BY created_at ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]model.Task, 0)
	for rows.Next() {
		task, scanErr := scanTask(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		tasks = append(tasks, *task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return tasks, nil
}

// Toggle flips the completed flag and returns the updated task.
func (r *TaskRepository) Toggle(ctx context.Context, userID, id string, now time.Time) (*model.Task, error) {
	result, err := r.db.ExecContext(
		ctx,
		`UPDATE tasks
		 SET completed = 1 - completed,
		     updated_at = ?
		 WHERE user_id = ? AND id = ?`,
		formatTime(now),
		userID,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("toggle task: %w", err)
	}
	if err := expectOneRow(result); err != nil {
		return nil, err
	}
	return r.Get(ctx, userID, id)
}

func (r *TaskRepository) Delete(ctx context.Context, userID, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return expectOneRow(result)
}

// CountCompletedBetween counts tasks marked done in [from, to).
func (r *TaskRepository) CountCompletedBetween(ctx context.Context, userID string, from, to time.Time) (int, error) {
	var count int
	err := r.db.QueryRowContext(
		ctx,
		`SELECT COUNT(1) FROM tasks
		 WHERE user_id = ? AND completed = 1 AND updated_at >= ? AND updated_at < ?`,
		userID,
		formatTime(from),
		formatTime(to),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count completed tasks: %w", err)
	}
	return count, nil
}

func expectOneRow(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func scanTask(s scanner) (*model.Task, error) {
	var task model.Task
	var createdAt, updatedAt string
	if err := s.Scan(&task.ID, &task.UserID, &task.Text, &task.Completed, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan task: %w", err)
	}

	var err error
	if task.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parse task created_at: %w", err)
	}
	if task.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("parse task updated_at: %w", err)
	}
	return &task, nil
}
