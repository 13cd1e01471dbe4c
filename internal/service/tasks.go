package service

import (
	"context"
	"strings"

	"github.com/prastianhdd/task-manager/core/logger"
	"github.com/prastianhdd/task-manager/internal/models"
	"github.com/prastianhdd/task-manager/internal/storage"
	"log/slog"
)

// nearDeadlineMarkers flag a task as due soon when its free-text deadline
// contains one of them, case-insensitively.
var nearDeadlineMarkers = []string{"besok", "hari ini"}

// Tasks manages assignment entries.
type Tasks struct {
	store *storage.Store
}

// NewTasks builds a task service over the given store.
func NewTasks(store *storage.Store) *Tasks {
	return &Tasks{store: store}
}

// Pending returns tasks that are not done yet, ordered by deadline text.
func (s *Tasks) Pending(ctx context.Context) ([]models.Task, error) {
	return s.store.ListTasks(ctx, models.StatusPending)
}

// Done returns completed tasks.
func (s *Tasks) Done(ctx context.Context) ([]models.Task, error) {
	return s.store.ListTasks(ctx, models.StatusDone)
}

// Add validates and stores a new pending task.
func (s *Tasks) Add(ctx context.Context, matkulNama, deskripsi, deadline string) (int64, error) {
	matkulNama = strings.TrimSpace(matkulNama)
	deskripsi = strings.TrimSpace(deskripsi)
	deadline = strings.TrimSpace(deadline)
	if matkulNama == "" || deskripsi == "" || deadline == "" {
		return 0, ErrEmptyField
	}

	id, err := s.store.AddTask(ctx, matkulNama, deskripsi, deadline)
	if err != nil {
		logger.Error(ctx, "service.tasks", "task.add.failed",
			slog.String("course", matkulNama),
			slog.String("err", err.Error()),
		)
		return 0, err
	}
	logger.Info(ctx, "service.tasks", "task.added",
		slog.Int64("task_id", id),
		slog.String("course", matkulNama),
		slog.String("deadline", deadline),
	)
	return id, nil
}

// Get returns a single task by id.
func (s *Tasks) Get(ctx context.Context, id int64) (models.Task, error) {
	return s.store.GetTask(ctx, id)
}

// MarkDone flips a task to done.
func (s *Tasks) MarkDone(ctx context.Context, id int64) error {
	if err := s.store.SetTaskStatus(ctx, id, models.StatusDone); err != nil {
		logger.Error(ctx, "service.tasks", "task.done.failed",
			slog.Int64("task_id", id),
			slog.String("err", err.Error()),
		)
		return err
	}
	logger.Info(ctx, "service.tasks", "task.done",
		slog.Int64("task_id", id),
	)
	return nil
}

// Delete removes a task by id.
func (s *Tasks) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteTask(ctx, id); err != nil {
		logger.Error(ctx, "service.tasks", "task.delete.failed",
			slog.Int64("task_id", id),
			slog.String("err", err.Error()),
		)
		return err
	}
	logger.Info(ctx, "service.tasks", "task.deleted",
		slog.Int64("task_id", id),
	)
	return nil
}

// Clear removes every task and resets numbering.
func (s *Tasks) Clear(ctx context.Context) error {
	if err := s.store.DeleteAllTasks(ctx); err != nil {
		logger.Error(ctx, "service.tasks", "task.clear.failed",
			slog.String("err", err.Error()),
		)
		return err
	}
	logger.Info(ctx, "service.tasks", "task.cleared")
	return nil
}

// NearDeadline filters tasks whose deadline text mentions today or tomorrow.
func NearDeadline(tasks []models.Task) []models.Task {
	var out []models.Task
	for _, t := range tasks {
		lower := strings.ToLower(t.Deadline)
		for _, marker := range nearDeadlineMarkers {
			if strings.Contains(lower, marker) {
				out = append(out, t)
				break
			}
		}
	}
	return out
}
