package bot

import (
	"github.com/prastianhdd/task-manager/core/telegram/keyboard"

	tele "gopkg.in/telebot.v4"
)

// Main menu button labels. They double as command aliases so pressing a
// button behaves exactly like typing the command.
const (
	btnSchedule  = "📚 Cek Jadwal"
	btnTasks     = "📝 Cek Tugas"
	btnAddTask   = "➕ Add Tugas"
	btnTasksDone = "✅ Tugas Selesai"
	btnHelp      = "❓ Bantuan"
)

// Inline callback keys.
const (
	cbTaskDone     = "task_done"
	cbTaskDelete   = "task_delete"
	cbCourseDelete = "course_delete"
)

// mainMenu is the persistent reply keyboard shown after /start and at the
// end of every guided flow.
func mainMenu() *tele.ReplyMarkup {
	return keyboard.ReplyButtons(
		[]string{btnSchedule, btnTasks},
		[]string{btnAddTask, btnTasksDone},
		[]string{btnHelp},
	)
}

// dayMenu offers weekday choices during the add-course flow.
func dayMenu() *tele.ReplyMarkup {
	return keyboard.ReplyButtons(
		[]string{"Senin", "Selasa", "Rabu"},
		[]string{"Kamis", "Jumat", "Sabtu"},
		[]string{"/cancel"},
	)
}

// courseMenu lists course names two per row for the add-task flow.
func courseMenu(names []string) *tele.ReplyMarkup {
	return keyboard.ReplyButtonsNPerRow(names, 2)
}

// taskButtons builds the per-task inline row with done and delete actions.
func taskButtons(taskID string) *tele.ReplyMarkup {
	return keyboard.InlineButtonsRows([]keyboard.InlineBtn{
		{Text: "✅ Selesai", Unique: cbTaskDone, Data: taskID},
		{Text: "❌ Hapus", Unique: cbTaskDelete, Data: taskID},
	})
}

// courseDeleteButton builds the per-course inline delete action.
func courseDeleteButton(courseID string) *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: "❌ Hapus Matkul Ini", Unique: cbCourseDelete, Data: courseID},
	})
}
