package service

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prastianhdd/task-manager/internal/models"
	"github.com/prastianhdd/task-manager/internal/storage"
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

func newTestStore(t *testing.T) *storage.Store {
	t.Helper()
	db, err := sqlx.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(testSchema)
	require.NoError(t, err)
	return storage.New(db)
}

func TestTasksAddTrimsAndValidates(t *testing.T) {
	svc := NewTasks(newTestStore(t))
	ctx := context.Background()

	id, err := svc.Add(ctx, "  Kalkulus ", " Kerjakan bab 3 ", " Besok 23:59 ")
	require.NoError(t, err)
	require.NotZero(t, id)

	pending, err := svc.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "Kalkulus", pending[0].MatkulNama)
	assert.Equal(t, "Kerjakan bab 3", pending[0].Deskripsi)
	assert.Equal(t, "Besok 23:59", pending[0].Deadline)

	_, err = svc.Add(ctx, "", "deskripsi", "besok")
	assert.ErrorIs(t, err, ErrEmptyField)
	_, err = svc.Add(ctx, "Kalkulus", "   ", "besok")
	assert.ErrorIs(t, err, ErrEmptyField)
}

func TestTasksMarkDoneAndClear(t *testing.T) {
	svc := NewTasks(newTestStore(t))
	ctx := context.Background()

	id, err := svc.Add(ctx, "Kalkulus", "Tugas", "Besok")
	require.NoError(t, err)

	require.NoError(t, svc.MarkDone(ctx, id))

	done, err := svc.Done(ctx)
	require.NoError(t, err)
	require.Len(t, done, 1)

	require.NoError(t, svc.Clear(ctx))
	done, err = svc.Done(ctx)
	require.NoError(t, err)
	assert.Empty(t, done)
}

func TestCoursesAddValidates(t *testing.T) {
	svc := NewCourses(newTestStore(t))
	ctx := context.Background()

	_, err := svc.Add(ctx, "Kalkulus", "Senin", "08:00 - 10:00", "")
	assert.ErrorIs(t, err, ErrEmptyField)

	id, err := svc.Add(ctx, " Kalkulus ", "Senin", "08:00 - 10:00", "G3E")
	require.NoError(t, err)
	require.NotZero(t, id)

	names, err := svc.Names(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Kalkulus"}, names)
}

func TestNearDeadline(t *testing.T) {
	tasks := []models.Task{
		{ID: 1, Deadline: "Besok 23:59"},
		{ID: 2, Deadline: "30/10/2025"},
		{ID: 3, Deadline: "HARI INI jam 5"},
		{ID: 4, Deadline: "besok pagi"},
		{ID: 5, Deadline: "Senin depan"},
	}

	due := NearDeadline(tasks)
	require.Len(t, due, 3)
	assert.Equal(t, int64(1), due[0].ID)
	assert.Equal(t, int64(3), due[1].ID)
	assert.Equal(t, int64(4), due[2].ID)
}

func TestNearDeadlineEmpty(t *testing.T) {
	assert.Empty(t, NearDeadline(nil))
	assert.Empty(t, NearDeadline([]models.Task{{Deadline: "minggu depan"}}))
}
