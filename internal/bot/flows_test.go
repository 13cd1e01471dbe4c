package bot

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prastianhdd/task-manager/core/telegram/state"
)

func TestAddTaskFlowRequiresCourses(t *testing.T) {
	a := newTestApp(t)
	c := newFakeContext(10, "/add_tugas")

	require.NoError(t, a.startAddTask(c))

	assert.Equal(t, "Database mata kuliah kosong. Hubungi admin.", c.lastSent())
	assert.False(t, a.fsm.InProgress(10))
}

func TestAddTaskFlowCompletes(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()
	_, err := a.courses.Add(ctx, "Kalkulus", "Senin", "13:30 - 16:00", "G3E")
	require.NoError(t, err)

	const userID int64 = 10

	start := newFakeContext(userID, "/add_tugas")
	require.NoError(t, a.startAddTask(start))
	assert.Equal(t, stateTaskCourse, a.fsm.GetState(userID))
	assert.Contains(t, start.lastSent(), "Langkah 1")

	step1 := newFakeContext(userID, "Kalkulus")
	require.NoError(t, a.stepTaskCourse(step1))
	assert.Equal(t, stateTaskDescription, a.fsm.GetState(userID))
	assert.Contains(t, step1.lastSent(), "deskripsi")

	step2 := newFakeContext(userID, "Kerjakan bab 3")
	require.NoError(t, a.stepTaskDescription(step2))
	assert.Equal(t, stateTaskDeadline, a.fsm.GetState(userID))
	assert.Contains(t, step2.lastSent(), "deadline")

	step3 := newFakeContext(userID, "Besok 23:59")
	require.NoError(t, a.stepTaskDeadline(step3))
	assert.Contains(t, step3.lastSent(), "Tugas berhasil ditambahkan")
	assert.Equal(t, state.StateIdle, a.fsm.GetState(userID))

	pending, err := a.tasks.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "Kalkulus", pending[0].MatkulNama)
	assert.Equal(t, "Kerjakan bab 3", pending[0].Deskripsi)
	assert.Equal(t, "Besok 23:59", pending[0].Deadline)
}

func TestAddTaskFlowIgnoresStrayCommand(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()
	_, err := a.courses.Add(ctx, "Kalkulus", "Senin", "13:30 - 16:00", "G3E")
	require.NoError(t, err)

	const userID int64 = 10
	require.NoError(t, a.startAddTask(newFakeContext(userID, "/add_tugas")))

	c := newFakeContext(userID, "/help")
	require.NoError(t, a.stepTaskCourse(c))
	// The stray command neither advances nor aborts the flow.
	assert.Empty(t, c.sent)
	assert.Equal(t, stateTaskCourse, a.fsm.GetState(userID))
}

func TestCancelAbortsFlow(t *testing.T) {
	a := newTestApp(t)
	const userID = testAdminID

	require.NoError(t, a.startAddCourse(newFakeContext(userID, "/add_matkul")))
	assert.Equal(t, stateCourseName, a.fsm.GetState(userID))

	c := newFakeContext(userID, "/cancel")
	require.NoError(t, a.stepCourseName(c))
	assert.Equal(t, "Proses dibatalkan. Kembali ke menu utama.", c.lastSent())
	assert.Equal(t, state.StateIdle, a.fsm.GetState(userID))
}

func TestAddCourseFlowCompletes(t *testing.T) {
	a := newTestApp(t)
	const userID = testAdminID

	require.NoError(t, a.startAddCourse(newFakeContext(userID, "/add_matkul")))

	steps := []struct {
		input string
		next  state.State
	}{
		{"Struktur Data", stateCourseDay},
		{"Kamis", stateCourseTime},
		{"08:00 - 10:30", stateCourseRoom},
	}
	handlers := []func(c *fakeContext) error{
		func(c *fakeContext) error { return a.stepCourseName(c) },
		func(c *fakeContext) error { return a.stepCourseDay(c) },
		func(c *fakeContext) error { return a.stepCourseTime(c) },
	}
	for i, st := range steps {
		c := newFakeContext(userID, st.input)
		require.NoError(t, handlers[i](c))
		assert.Equal(t, st.next, a.fsm.GetState(userID))
	}

	last := newFakeContext(userID, "G2B")
	require.NoError(t, a.stepCourseRoom(last))
	assert.Contains(t, last.lastSent(), "Mata Kuliah berhasil ditambahkan")
	assert.Equal(t, state.StateIdle, a.fsm.GetState(userID))

	courses, err := a.courses.List(context.Background())
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "Struktur Data", courses[0].Nama)
	assert.Equal(t, "Kamis", courses[0].Hari)
	assert.Equal(t, "08:00 - 10:30", courses[0].Jam)
	assert.Equal(t, "G2B", courses[0].Ruangan)
}
