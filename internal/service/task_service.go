package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "pausepad/internal/errors"
	"pausepad/internal/model"
	"pausepad/internal/repository"
)

var validate = validator.New()

type TaskService struct {
	repo   *repository.TaskRepository
	logger *zap.Logger
	now    func() time.Time
}

func NewTaskService(repo *repository.TaskRepository, logger *zap.Logger) *TaskService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TaskService{repo: repo, logger: logger, now: time.Now}
}

func (s *TaskService) List(ctx context.Context, userID string) ([]model.Task, *apperrors.APIError) {
	tasks, err := s.repo.List(ctx, userID)
	if err != nil {
		s.logger.Error("list tasks", zap.String("user_id", userID), zap.Error(err))
		return nil, apperrors.Internal("failed to list tasks")
	}
	return tasks, nil
}

// Create adds a task. Text is trimmed and must hold 1 to MaxTaskTextLength
// characters.
func (s *TaskService) Create(ctx context.Context, userID, text string) (*model.Task, *apperrors.APIError) {
	text = strings.TrimSpace(text)
	if err := validate.Var(text, "required,max=500"); err != nil {
		return nil, apperrors.BadRequest("invalid_task", "task text must be between 1 and 500 characters")
	}

	now := s.now().UTC()
	task := model.Task{
		ID:        uuid.NewString(),
		UserID:    userID,
		Text:      text,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, &task); err != nil {
		s.logger.Error("create task", zap.String("user_id", userID), zap.Error(err))
		return nil, apperrors.Internal("failed to create task")
	}
	return &task, nil
}

func (s *TaskService) Toggle(ctx context.Context, userID, id string) (*model.Task, *apperrors.APIError) {
	task, err := s.repo.Toggle(ctx, userID, id, s.now().UTC())
	if err != nil {
		return nil, s.taskError("toggle task", userID, err)
	}
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, userID, id string) *apperrors.APIError {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return s.taskError("delete task", userID, err)
	}
	return nil
}

func (s *TaskService) taskError(action, userID string, err error) *apperrors.APIError {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NotFound("task_not_found", "task not found")
	}
	s.logger.Error(action, zap.String("user_id", userID), zap.Error(err))
	return apperrors.Internal("failed to " + action)
}
