package bot

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskDoneCallbackAnyUser(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()
	id, err := a.tasks.Add(ctx, "Kalkulus", "Tugas", "Besok")
	require.NoError(t, err)

	c := newFakeCallback(10, cbTaskDone, strconv.FormatInt(id, 10))
	require.NoError(t, a.onTaskDone(c))

	done, err := a.tasks.Done(ctx)
	require.NoError(t, err)
	require.Len(t, done, 1)

	// The edit re-renders the task in its original HTML layout instead of
	// echoing the flattened message text, so the bold markup survives.
	require.Len(t, c.edited, 1)
	assert.Contains(t, c.edited[0].text, "<b>Kalkulus</b>")
	assert.Contains(t, c.edited[0].text, "Tugas")
	assert.Contains(t, c.edited[0].text, "SELESAI")
}

func TestTaskDeleteCallbackRejectsNonAdmin(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()
	id, err := a.tasks.Add(ctx, "Kalkulus", "Tugas", "Besok")
	require.NoError(t, err)

	c := newFakeCallback(10, cbTaskDelete, strconv.FormatInt(id, 10))
	require.NoError(t, a.onTaskDelete(c))

	require.Len(t, c.responses, 1)
	assert.True(t, c.responses[0].ShowAlert)
	assert.Contains(t, c.responses[0].Text, "hanya admin")
	assert.Empty(t, c.edited)

	pending, err := a.tasks.Pending(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

func TestTaskDeleteCallbackAdmin(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()
	id, err := a.tasks.Add(ctx, "Kalkulus", "Tugas", "Besok")
	require.NoError(t, err)

	c := newFakeCallback(testAdminID, cbTaskDelete, strconv.FormatInt(id, 10))
	require.NoError(t, a.onTaskDelete(c))

	pending, err := a.tasks.Pending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)

	require.Len(t, c.edited, 1)
	assert.Contains(t, c.edited[0].text, "<b>Kalkulus</b>")
	assert.Contains(t, c.edited[0].text, "DIHAPUS ADMIN")
}

func TestTaskDoneCallbackMissingTask(t *testing.T) {
	a := newTestApp(t)

	c := newFakeCallback(10, cbTaskDone, "12345")
	require.NoError(t, a.onTaskDone(c))

	require.Len(t, c.responses, 1)
	assert.True(t, c.responses[0].ShowAlert)
	assert.Empty(t, c.edited)
}

func TestTaskDoneCallbackBadPayload(t *testing.T) {
	a := newTestApp(t)

	c := newFakeCallback(10, cbTaskDone, "abc")
	require.NoError(t, a.onTaskDone(c))

	require.Len(t, c.responses, 1)
	assert.Contains(t, c.responses[0].Text, "tidak valid")
}

func TestCourseDeleteCallback(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()
	id, err := a.courses.Add(ctx, "Kalkulus", "Senin", "08:00", "G3E")
	require.NoError(t, err)
	payload := strconv.FormatInt(id, 10)

	nonAdmin := newFakeCallback(10, cbCourseDelete, payload)
	require.NoError(t, a.onCourseDelete(nonAdmin))
	require.Len(t, nonAdmin.responses, 1)
	assert.True(t, nonAdmin.responses[0].ShowAlert)

	admin := newFakeCallback(testAdminID, cbCourseDelete, payload)
	require.NoError(t, a.onCourseDelete(admin))

	names, err := a.courses.Names(ctx)
	require.NoError(t, err)
	assert.Empty(t, names)
	require.Len(t, admin.edited, 1)
	assert.Contains(t, admin.edited[0].text, "<b>Kalkulus</b>")
	assert.Contains(t, admin.edited[0].text, "Senin")
	assert.Contains(t, admin.edited[0].text, "MATA KULIAH DIHAPUS")
}
