package reminder

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"

	"github.com/prastianhdd/task-manager/internal/service"
	"github.com/prastianhdd/task-manager/internal/storage"
)

const testSchema = `
CREATE TABLE tugas (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	matkul_nama TEXT NOT NULL,
	deskripsi TEXT NOT NULL,
	deadline TEXT NOT NULL,
	status TEXT NOT NULL DEFAULT 'pending'
);
`

type fakeSender struct {
	to   []tele.Recipient
	text []string
}

func (f *fakeSender) Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error) {
	f.to = append(f.to, to)
	if s, ok := what.(string); ok {
		f.text = append(f.text, s)
	}
	return &tele.Message{}, nil
}

func newTestTasks(t *testing.T) *service.Tasks {
	t.Helper()
	db, err := sqlx.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(testSchema)
	require.NoError(t, err)
	return service.NewTasks(storage.New(db))
}

func newTestJob(t *testing.T, tasks *service.Tasks, sender Sender) *Job {
	t.Helper()
	job, err := New(Options{
		Sender:  sender,
		Tasks:   tasks,
		AdminID: 99,
		At:      "08:00",
	})
	require.NoError(t, err)
	return job
}

func TestNewValidatesOptions(t *testing.T) {
	tasks := newTestTasks(t)

	_, err := New(Options{Tasks: tasks, AdminID: 1, At: "08:00"})
	assert.Error(t, err)

	_, err = New(Options{Sender: &fakeSender{}, Tasks: tasks, AdminID: 1, At: "25:00"})
	assert.Error(t, err)

	_, err = New(Options{Sender: &fakeSender{}, Tasks: tasks, AdminID: 1, At: "nope"})
	assert.Error(t, err)

	_, err = New(Options{Sender: &fakeSender{}, Tasks: tasks, AdminID: 1, At: "08:00", Timezone: "Not/AZone"})
	assert.Error(t, err)
}

func TestNextRun(t *testing.T) {
	tasks := newTestTasks(t)
	job := newTestJob(t, tasks, &fakeSender{})

	now := time.Date(2025, 10, 20, 6, 0, 0, 0, job.loc)
	next := job.nextRun(now)
	assert.Equal(t, time.Date(2025, 10, 20, 8, 0, 0, 0, job.loc), next)

	// At or past the send time the next run is tomorrow.
	now = time.Date(2025, 10, 20, 8, 0, 0, 0, job.loc)
	next = job.nextRun(now)
	assert.Equal(t, time.Date(2025, 10, 21, 8, 0, 0, 0, job.loc), next)

	now = time.Date(2025, 10, 20, 22, 30, 0, 0, job.loc)
	next = job.nextRun(now)
	assert.Equal(t, time.Date(2025, 10, 21, 8, 0, 0, 0, job.loc), next)
}

func TestRunOnceSendsDigestForNearDeadlines(t *testing.T) {
	tasks := newTestTasks(t)
	ctx := context.Background()

	_, err := tasks.Add(ctx, "Kalkulus", "Bab 3", "Besok 23:59")
	require.NoError(t, err)
	_, err = tasks.Add(ctx, "Sistem Operasi", "Lab 2", "Hari ini")
	require.NoError(t, err)
	_, err = tasks.Add(ctx, "Logika Informatika", "Quiz", "30/10/2025")
	require.NoError(t, err)

	sender := &fakeSender{}
	job := newTestJob(t, tasks, sender)
	job.RunOnce(ctx)

	require.Len(t, sender.text, 1)
	assert.Contains(t, sender.text[0], "PENGINGAT TUGAS HARIAN")
	assert.Contains(t, sender.text[0], "Kalkulus")
	assert.Contains(t, sender.text[0], "Sistem Operasi")
	assert.NotContains(t, sender.text[0], "Logika Informatika")
	assert.Equal(t, tele.ChatID(99), sender.to[0])
}

func TestRunOnceSkipsWhenNothingDue(t *testing.T) {
	tasks := newTestTasks(t)
	ctx := context.Background()

	sender := &fakeSender{}
	job := newTestJob(t, tasks, sender)

	// Empty table: nothing sent.
	job.RunOnce(ctx)
	assert.Empty(t, sender.text)

	// Pending tasks without a near-deadline marker: still nothing.
	_, err := tasks.Add(ctx, "Kalkulus", "Bab 3", "Senin depan")
	require.NoError(t, err)
	job.RunOnce(ctx)
	assert.Empty(t, sender.text)

	// Done tasks never trigger a reminder.
	id, err := tasks.Add(ctx, "Sistem Operasi", "Lab", "besok")
	require.NoError(t, err)
	require.NoError(t, tasks.MarkDone(ctx, id))
	job.RunOnce(ctx)
	assert.Empty(t, sender.text)
}

func TestStartStop(t *testing.T) {
	tasks := newTestTasks(t)
	job := newTestJob(t, tasks, &fakeSender{})

	job.Start()
	job.Stop()
	// Stop is idempotent.
	job.Stop()
}
