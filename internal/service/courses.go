// Package service holds the application logic between the Telegram handlers
// and the storage layer.
package service

import (
	"context"
	"errors"
	"strings"

	"github.com/prastianhdd/task-manager/core/logger"
	"github.com/prastianhdd/task-manager/internal/models"
	"github.com/prastianhdd/task-manager/internal/storage"
	"log/slog"
)

// ErrEmptyField is returned when a required text field is blank.
var ErrEmptyField = errors.New("service: empty field")

// Courses manages the course schedule.
type Courses struct {
	store *storage.Store
}

// NewCourses builds a course service over the given store.
func NewCourses(store *storage.Store) *Courses {
	return &Courses{store: store}
}

// List returns the full schedule ordered by weekday then start time.
func (s *Courses) List(ctx context.Context) ([]models.Course, error) {
	return s.store.ListCourses(ctx)
}

// Names returns course names sorted alphabetically.
func (s *Courses) Names(ctx context.Context) ([]string, error) {
	return s.store.ListCourseNames(ctx)
}

// Add validates and stores a new course.
func (s *Courses) Add(ctx context.Context, nama, hari, jam, ruangan string) (int64, error) {
	nama = strings.TrimSpace(nama)
	hari = strings.TrimSpace(hari)
	jam = strings.TrimSpace(jam)
	ruangan = strings.TrimSpace(ruangan)
	if nama == "" || hari == "" || jam == "" || ruangan == "" {
		return 0, ErrEmptyField
	}

	id, err := s.store.AddCourse(ctx, nama, hari, jam, ruangan)
	if err != nil {
		logger.Error(ctx, "service.courses", "course.add.failed",
			slog.String("course", nama),
			slog.String("err", err.Error()),
		)
		return 0, err
	}
	logger.Info(ctx, "service.courses", "course.added",
		slog.Int64("course_id", id),
		slog.String("course", nama),
		slog.String("day", hari),
	)
	return id, nil
}

// Get returns a single course by id.
func (s *Courses) Get(ctx context.Context, id int64) (models.Course, error) {
	return s.store.GetCourse(ctx, id)
}

// Delete removes a course by id.
func (s *Courses) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteCourse(ctx, id); err != nil {
		logger.Error(ctx, "service.courses", "course.delete.failed",
			slog.Int64("course_id", id),
			slog.String("err", err.Error()),
		)
		return err
	}
	logger.Info(ctx, "service.courses", "course.deleted",
		slog.Int64("course_id", id),
	)
	return nil
}
