package storage

import (
	"context"
	"fmt"

	"github.com/prastianhdd/task-manager/core/logger"
	"log/slog"
)

// defaultCourses is inserted on first run so the schedule is usable
// before the admin has entered anything.
var defaultCourses = []struct {
	Nama, Hari, Jam, Ruangan string
}{
	{"Kalkulus", "Senin", "13:30 - 16:00", "G3E"},
	{"Bahasa Indonesia", "Selasa", "08:00 - 09:40", "G3E"},
	{"Sistem Basis Data", "Selasa", "10:45 - 13:15", "Lab Programming"},
	{"Emerging Technologies & Digital Transformation", "Selasa", "13:30 - 16:00", "G1A"},
	{"Logika Informatika", "Rabu", "08:00 - 10:30", "G3A"},
	{"Algoritma Pemrograman", "Rabu", "10:45 - 13:15", "Lab Programming"},
	{"Sistem Operasi", "Rabu", "16:00 - 18:00", "Lab Programming"},
}

// Seed populates the course table with defaults when it is empty.
// It is a no-op on every later start.
func (s *Store) Seed(ctx context.Context) error {
	n, err := s.CountCourses(ctx)
	if err != nil {
		return fmt.Errorf("storage: seed precheck: %w", err)
	}
	if n > 0 {
		logger.SEED.Debug("seed skipped",
			slog.String("event", "seed.skip"),
			slog.Int("course_count", n),
		)
		return nil
	}

	for _, c := range defaultCourses {
		if _, err := s.AddCourse(ctx, c.Nama, c.Hari, c.Jam, c.Ruangan); err != nil {
			return fmt.Errorf("storage: seed course %q: %w", c.Nama, err)
		}
	}
	logger.SEED.Info("default courses seeded",
		slog.String("event", "seed.done"),
		slog.Bool("seeded", true),
		slog.Int("course_count", len(defaultCourses)),
	)
	return nil
}
