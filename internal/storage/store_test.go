package storage

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prastianhdd/task-manager/internal/models"
)

const testSchema = `
CREATE TABLE mata_kuliah (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	nama TEXT NOT NULL,
	hari TEXT NOT NULL,
	jam TEXT NOT NULL,
	ruangan TEXT NOT NULL
);
CREATE TABLE tugas (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	matkul_nama TEXT NOT NULL,
	deskripsi TEXT NOT NULL,
	deadline TEXT NOT NULL,
	status TEXT NOT NULL DEFAULT 'pending'
);
`

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := sqlx.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(testSchema)
	require.NoError(t, err)
	return New(db)
}

func TestCoursesOrderedByWeekday(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.AddCourse(ctx, "Sistem Operasi", "Rabu", "16:00 - 18:00", "Lab Programming")
	require.NoError(t, err)
	_, err = s.AddCourse(ctx, "Kalkulus", "Senin", "13:30 - 16:00", "G3E")
	require.NoError(t, err)
	_, err = s.AddCourse(ctx, "Bahasa Indonesia", "Selasa", "08:00 - 09:40", "G3E")
	require.NoError(t, err)
	_, err = s.AddCourse(ctx, "Seminar", "Libur", "08:00", "Aula")
	require.NoError(t, err)

	courses, err := s.ListCourses(ctx)
	require.NoError(t, err)
	require.Len(t, courses, 4)

	assert.Equal(t, "Kalkulus", courses[0].Nama)
	assert.Equal(t, "Bahasa Indonesia", courses[1].Nama)
	assert.Equal(t, "Sistem Operasi", courses[2].Nama)
	// Unknown day text sorts after real weekdays.
	assert.Equal(t, "Seminar", courses[3].Nama)
}

func TestCoursesSameDayOrderedByTime(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.AddCourse(ctx, "Emerging Technologies", "Selasa", "13:30 - 16:00", "G1A")
	require.NoError(t, err)
	_, err = s.AddCourse(ctx, "Sistem Basis Data", "Selasa", "10:45 - 13:15", "Lab Programming")
	require.NoError(t, err)

	courses, err := s.ListCourses(ctx)
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, "Sistem Basis Data", courses[0].Nama)
	assert.Equal(t, "Emerging Technologies", courses[1].Nama)
}

func TestCourseNamesAlphabetical(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, nama := range []string{"Kalkulus", "Algoritma Pemrograman", "Sistem Operasi"} {
		_, err := s.AddCourse(ctx, nama, "Senin", "08:00", "G1")
		require.NoError(t, err)
	}

	names, err := s.ListCourseNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Algoritma Pemrograman", "Kalkulus", "Sistem Operasi"}, names)
}

func TestDeleteCourse(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.AddCourse(ctx, "Kalkulus", "Senin", "08:00", "G1")
	require.NoError(t, err)

	require.NoError(t, s.DeleteCourse(ctx, id))

	err = s.DeleteCourse(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTaskLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.AddTask(ctx, "Kalkulus", "Kerjakan bab 3", "Besok 23:59")
	require.NoError(t, err)
	require.NotZero(t, id)

	pending, err := s.ListTasks(ctx, models.StatusPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, models.StatusPending, pending[0].Status)
	assert.Equal(t, "Kerjakan bab 3", pending[0].Deskripsi)

	require.NoError(t, s.SetTaskStatus(ctx, id, models.StatusDone))

	pending, err = s.ListTasks(ctx, models.StatusPending)
	require.NoError(t, err)
	assert.Empty(t, pending)

	done, err := s.ListTasks(ctx, models.StatusDone)
	require.NoError(t, err)
	require.Len(t, done, 1)
	assert.Equal(t, id, done[0].ID)
}

func TestGetTaskAndCourse(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	courseID, err := s.AddCourse(ctx, "Kalkulus", "Senin", "08:00", "G1")
	require.NoError(t, err)
	taskID, err := s.AddTask(ctx, "Kalkulus", "Kerjakan bab 3", "Besok")
	require.NoError(t, err)

	course, err := s.GetCourse(ctx, courseID)
	require.NoError(t, err)
	assert.Equal(t, "Kalkulus", course.Nama)
	assert.Equal(t, "Senin", course.Hari)

	task, err := s.GetTask(ctx, taskID)
	require.NoError(t, err)
	assert.Equal(t, "Kerjakan bab 3", task.Deskripsi)
	assert.Equal(t, models.StatusPending, task.Status)

	_, err = s.GetCourse(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.GetTask(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetTaskStatusMissing(t *testing.T) {
	s := newTestStore(t)
	err := s.SetTaskStatus(context.Background(), 42, models.StatusDone)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteTask(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.AddTask(ctx, "Kalkulus", "Tugas", "Hari ini")
	require.NoError(t, err)

	require.NoError(t, s.DeleteTask(ctx, id))
	assert.ErrorIs(t, s.DeleteTask(ctx, id), ErrNotFound)
}

func TestDeleteAllTasksResetsNumbering(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := s.AddTask(ctx, "Kalkulus", "Tugas", "Besok")
		require.NoError(t, err)
	}

	require.NoError(t, s.DeleteAllTasks(ctx))

	pending, err := s.ListTasks(ctx, models.StatusPending)
	require.NoError(t, err)
	assert.Empty(t, pending)

	id, err := s.AddTask(ctx, "Kalkulus", "Tugas baru", "Besok")
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
}

func TestSeedOnlyWhenEmpty(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Seed(ctx))
	n, err := s.CountCourses(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	// A second run must not duplicate anything.
	require.NoError(t, s.Seed(ctx))
	n, err = s.CountCourses(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, n)
}
