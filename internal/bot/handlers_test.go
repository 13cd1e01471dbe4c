package bot

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"

	"github.com/prastianhdd/task-manager/core/telegram/router"
)

func TestHelpShowsAdminSectionOnlyToAdmin(t *testing.T) {
	a := newTestApp(t)

	user := newFakeContext(10, "/help")
	require.NoError(t, a.handleHelp(user))
	assert.NotContains(t, user.lastSent(), "Perintah Admin")

	admin := newFakeContext(testAdminID, "/help")
	require.NoError(t, a.handleHelp(admin))
	assert.Contains(t, admin.lastSent(), "Perintah Admin")
	assert.Contains(t, admin.lastSent(), "/clear_tugas")
}

func TestScheduleEmptyAndPopulated(t *testing.T) {
	a := newTestApp(t)

	c := newFakeContext(10, "/cek_matkul")
	require.NoError(t, a.handleSchedule(c))
	assert.Equal(t, "Belum ada data mata kuliah.", c.lastSent())

	_, err := a.courses.Add(context.Background(), "Kalkulus", "Senin", "13:30 - 16:00", "G3E")
	require.NoError(t, err)

	c2 := newFakeContext(10, "/cek_matkul")
	require.NoError(t, a.handleSchedule(c2))
	assert.Contains(t, c2.lastSent(), "Jadwal Mata Kuliah")
	assert.Contains(t, c2.lastSent(), "Kalkulus")
	assert.Contains(t, c2.lastSent(), "G3E")
}

func TestPendingTasksSendsOnePerTask(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()

	c := newFakeContext(10, "/cek_tugas")
	require.NoError(t, a.handlePendingTasks(c))
	assert.Equal(t, "Hore! Tidak ada tugas yang pending. 🎉", c.lastSent())

	_, err := a.tasks.Add(ctx, "Kalkulus", "Bab 3", "Besok")
	require.NoError(t, err)
	_, err = a.tasks.Add(ctx, "Sistem Operasi", "Lab 2", "Hari ini")
	require.NoError(t, err)

	c2 := newFakeContext(10, "/cek_tugas")
	require.NoError(t, a.handlePendingTasks(c2))
	// Header plus one message per task, each carrying its own buttons.
	require.Len(t, c2.sent, 3)
	assert.Contains(t, c2.sent[1].text, "Kalkulus")
	assert.Contains(t, c2.sent[2].text, "Sistem Operasi")
}

func TestClearTasks(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()
	_, err := a.tasks.Add(ctx, "Kalkulus", "Bab 3", "Besok")
	require.NoError(t, err)

	c := newFakeContext(testAdminID, "/clear_tugas")
	require.NoError(t, a.handleClearTasks(c))
	assert.Contains(t, c.lastSent(), "BERHASIL")

	pending, err := a.tasks.Pending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestClearTasksCommandRejectsNonAdmin(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()
	_, err := a.tasks.Add(ctx, "Kalkulus", "Bab 3", "Besok")
	require.NoError(t, err)

	routes := router.CommandRoutes(a.registry, router.CommandRouteOptions{
		AdminID:       testAdminID,
		OnAdminReject: a.handleAdminReject,
	})
	var clear tele.HandlerFunc
	for _, r := range routes {
		if r.Endpoint == "/clear_tugas" {
			clear = r.Handler
		}
	}
	require.NotNil(t, clear)

	user := newFakeContext(10, "/clear_tugas")
	require.NoError(t, clear(user))
	assert.Contains(t, user.lastSent(), "hanya untuk admin")

	pending, err := a.tasks.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	admin := newFakeContext(testAdminID, "/clear_tugas")
	require.NoError(t, clear(admin))
	pending, err = a.tasks.Pending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestClearTasksTextAliasRejectsNonAdmin(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()
	_, err := a.tasks.Add(ctx, "Kalkulus", "Bab 3", "Besok")
	require.NoError(t, err)

	routes := router.TextRoutes(a.fsm, a.registry, router.TextOptions{
		AdminID:       testAdminID,
		OnAdminReject: a.handleAdminReject,
	})
	require.Len(t, routes, 1)
	onText := routes[0].Handler

	// Bare command names resolve through text lookup and must carry the
	// same admin gate as their slash endpoints.
	user := newFakeContext(10, "clear_tugas")
	require.NoError(t, onText(user))
	assert.Contains(t, user.lastSent(), "hanya untuk admin")

	pending, err := a.tasks.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	admin := newFakeContext(testAdminID, "clear_tugas")
	require.NoError(t, onText(admin))
	pending, err = a.tasks.Pending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestCourseMenuChunksTwoPerRow(t *testing.T) {
	markup := courseMenu([]string{"A", "B", "C"})
	require.Len(t, markup.ReplyKeyboard, 2)
	assert.Len(t, markup.ReplyKeyboard[0], 2)
	assert.Len(t, markup.ReplyKeyboard[1], 1)
	assert.Equal(t, "C", markup.ReplyKeyboard[1][0].Text)
}

func TestStartGreetsWithMenu(t *testing.T) {
	a := newTestApp(t)
	c := newFakeContext(10, "/start")
	require.NoError(t, a.handleStart(c))
	assert.Contains(t, c.lastSent(), "Halo")
	assert.Contains(t, c.lastSent(), "bot pengingat tugas")
}
