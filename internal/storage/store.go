// Package storage implements persistence for courses and tasks on top of sqlx.
// Queries are written with ? bindvars and rebound per driver so the same store
// runs against PostgreSQL in production and SQLite in tests.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/prastianhdd/task-manager/internal/models"
)

// ErrNotFound is returned when an id does not match any row.
var ErrNotFound = errors.New("storage: not found")

// weekday ranking used to order the schedule; unknown day text sorts last.
const dayRankExpr = `CASE
		WHEN hari = 'Senin' THEN 1
		WHEN hari = 'Selasa' THEN 2
		WHEN hari = 'Rabu' THEN 3
		WHEN hari = 'Kamis' THEN 4
		WHEN hari = 'Jumat' THEN 5
		WHEN hari = 'Sabtu' THEN 6
		WHEN hari = 'Minggu' THEN 7
		ELSE 8
	END`

// Store provides access to the mata_kuliah and tugas tables.
type Store struct {
	db *sqlx.DB
}

// New wraps an open database handle.
func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// ListCourses returns every course ordered by weekday then start time.
func (s *Store) ListCourses(ctx context.Context) ([]models.Course, error) {
	query := `SELECT id, nama, hari, jam, ruangan FROM mata_kuliah ORDER BY ` + dayRankExpr + `, jam`
	var out []models.Course
	if err := s.db.SelectContext(ctx, &out, query); err != nil {
		return nil, fmt.Errorf("storage: list courses: %w", err)
	}
	return out, nil
}

// ListCourseNames returns course names sorted alphabetically, for keyboards.
func (s *Store) ListCourseNames(ctx context.Context) ([]string, error) {
	var out []string
	if err := s.db.SelectContext(ctx, &out, `SELECT nama FROM mata_kuliah ORDER BY nama`); err != nil {
		return nil, fmt.Errorf("storage: list course names: %w", err)
	}
	return out, nil
}

// CountCourses reports the number of stored courses.
func (s *Store) CountCourses(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM mata_kuliah`); err != nil {
		return 0, fmt.Errorf("storage: count courses: %w", err)
	}
	return n, nil
}

// AddCourse inserts a course and returns its generated id.
func (s *Store) AddCourse(ctx context.Context, nama, hari, jam, ruangan string) (int64, error) {
	query := s.db.Rebind(`INSERT INTO mata_kuliah (nama, hari, jam, ruangan) VALUES (?, ?, ?, ?) RETURNING id`)
	var id int64
	if err := s.db.GetContext(ctx, &id, query, nama, hari, jam, ruangan); err != nil {
		return 0, fmt.Errorf("storage: add course: %w", err)
	}
	return id, nil
}

// GetCourse returns a single course by id, or ErrNotFound.
func (s *Store) GetCourse(ctx context.Context, id int64) (models.Course, error) {
	query := s.db.Rebind(`SELECT id, nama, hari, jam, ruangan FROM mata_kuliah WHERE id = ?`)
	var out models.Course
	if err := s.db.GetContext(ctx, &out, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Course{}, ErrNotFound
		}
		return models.Course{}, fmt.Errorf("storage: get course: %w", err)
	}
	return out, nil
}

// DeleteCourse removes a course by id.
func (s *Store) DeleteCourse(ctx context.Context, id int64) error {
	query := s.db.Rebind(`DELETE FROM mata_kuliah WHERE id = ?`)
	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("storage: delete course: %w", err)
	}
	return requireAffected(res)
}

// ListTasks returns tasks with the given status ordered by deadline text.
func (s *Store) ListTasks(ctx context.Context, status string) ([]models.Task, error) {
	query := s.db.Rebind(`SELECT id, matkul_nama, deskripsi, deadline, status FROM tugas WHERE status = ? ORDER BY deadline`)
	var out []models.Task
	if err := s.db.SelectContext(ctx, &out, query, status); err != nil {
		return nil, fmt.Errorf("storage: list tasks: %w", err)
	}
	return out, nil
}

// GetTask returns a single task by id, or ErrNotFound.
func (s *Store) GetTask(ctx context.Context, id int64) (models.Task, error) {
	query := s.db.Rebind(`SELECT id, matkul_nama, deskripsi, deadline, status FROM tugas WHERE id = ?`)
	var out models.Task
	if err := s.db.GetContext(ctx, &out, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Task{}, ErrNotFound
		}
		return models.Task{}, fmt.Errorf("storage: get task: %w", err)
	}
	return out, nil
}

// AddTask inserts a pending task and returns its generated id.
func (s *Store) AddTask(ctx context.Context, matkulNama, deskripsi, deadline string) (int64, error) {
	query := s.db.Rebind(`INSERT INTO tugas (matkul_nama, deskripsi, deadline, status) VALUES (?, ?, ?, 'pending') RETURNING id`)
	var id int64
	if err := s.db.GetContext(ctx, &id, query, matkulNama, deskripsi, deadline); err != nil {
		return 0, fmt.Errorf("storage: add task: %w", err)
	}
	return id, nil
}

// SetTaskStatus updates the status of a task by id.
func (s *Store) SetTaskStatus(ctx context.Context, id int64, status string) error {
	query := s.db.Rebind(`UPDATE tugas SET status = ? WHERE id = ?`)
	res, err := s.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("storage: set task status: %w", err)
	}
	return requireAffected(res)
}

// DeleteTask removes a task by id.
func (s *Store) DeleteTask(ctx context.Context, id int64) error {
	query := s.db.Rebind(`DELETE FROM tugas WHERE id = ?`)
	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("storage: delete task: %w", err)
	}
	return requireAffected(res)
}

// DeleteAllTasks empties the tugas table and resets its id sequence.
func (s *Store) DeleteAllTasks(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM tugas`); err != nil {
		return fmt.Errorf("storage: clear tasks: %w", err)
	}
	switch s.db.DriverName() {
	case "postgres":
		if _, err := s.db.ExecContext(ctx, `ALTER SEQUENCE tugas_id_seq RESTART WITH 1`); err != nil {
			return fmt.Errorf("storage: reset task sequence: %w", err)
		}
	case "sqlite3":
		if _, err := s.db.ExecContext(ctx, `DELETE FROM sqlite_sequence WHERE name = 'tugas'`); err != nil {
			return fmt.Errorf("storage: reset task sequence: %w", err)
		}
	}
	return nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
