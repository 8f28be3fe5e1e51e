package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-auth-api/internal/model"
	"github.com/BuzzLyutic/task-auth-api/internal/repo"
)

var (
	ErrTaskNotFound = errors.New("task not found")
)

type TaskService struct {
	repo   repo.TaskRepository
	logger *zap.Logger
	now    func() time.Time
}

func NewTaskService(repo repo.TaskRepository, logger *zap.Logger) *TaskService {
	return &TaskService{repo: repo, logger: logger, now: time.Now}
}

func (s *TaskService) GetAll(ctx context.Context) ([]model.Task, error) {
	return s.repo.List(ctx)
}

func (s *TaskService) GetByID(ctx context.Context, id int64) (model.Task, error) {
	t, err := s.repo.Get(ctx, id)
	return t, mapNotFound(err)
}

// Create stores a new task. A repeated idempotency key returns the task created the first time.
func (s *TaskService) Create(ctx context.Context, req model.TaskRequest, idempKey string) (model.Task, error) {
	if idempKey != "" { // Обеспечение идемпотентности - если ключ с ресурсом уже существует, мы не создаем его еще раз
		existingID, err := s.repo.GetIdempotencyKey(ctx, idempKey)
		switch {
		case err == nil:
			return s.GetByID(ctx, existingID)
		case !errors.Is(err, repo.ErrorNotFound):
			return model.Task{}, fmt.Errorf("lookup idempotency key: %w", err)
		}
	}

	var t model.Task
	req.Apply(&t)
	now := s.timestamp()
	t.CreatedAt = now
	t.UpdatedAt = now

	created, err := s.repo.Create(ctx, t)
	if err != nil {
		return model.Task{}, err
	}

	if idempKey != "" {
		// задача уже сохранена, поэтому отдаем ее клиенту даже без ключа
		if err := s.repo.SaveIdempotencyKey(ctx, idempKey, created.ID); err != nil {
			s.logger.Warn("failed to save idempotency key",
				zap.String("key", idempKey), zap.Int64("task_id", created.ID), zap.Error(err))
		}
	}

	return created, nil
}

// Update overwrites every mutable field; id and createdAt are preserved. Last write wins.
func (s *TaskService) Update(ctx context.Context, id int64, req model.TaskRequest) (model.Task, error) {
	t, err := s.GetByID(ctx, id)
	if err != nil {
		return model.Task{}, err
	}

	req.Apply(&t)
	t.UpdatedAt = s.timestamp()

	updated, err := s.repo.Update(ctx, t)
	return updated, mapNotFound(err)
}

// ToggleCompletion flips COMPLETED to IN_PROGRESS; any other status becomes COMPLETED.
func (s *TaskService) ToggleCompletion(ctx context.Context, id int64) (model.Task, error) {
	t, err := s.GetByID(ctx, id)
	if err != nil {
		return model.Task{}, err
	}

	if t.Status == model.StatusCompleted {
		t.Status = model.StatusInProgress
	} else {
		t.Status = model.StatusCompleted
	}
	t.UpdatedAt = s.timestamp()

	updated, err := s.repo.Update(ctx, t)
	return updated, mapNotFound(err)
}

func (s *TaskService) Delete(ctx context.Context, id int64) error {
	return mapNotFound(s.repo.Delete(ctx, id))
}

// timestamp is truncated to the precision postgres stores.
func (s *TaskService) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

func mapNotFound(err error) error {
	if errors.Is(err, repo.ErrorNotFound) {
		return ErrTaskNotFound
	}
	return err
}
