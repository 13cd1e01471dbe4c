package bot

import (
	"fmt"
	"strings"

	"github.com/prastianhdd/task-manager/core/telegram/format"
	tghelpers "github.com/prastianhdd/task-manager/core/telegram/helpers"
	"github.com/prastianhdd/task-manager/core/telegram/keyboard"
	"github.com/prastianhdd/task-manager/core/telegram/state"

	tele "gopkg.in/telebot.v4"
)

// Conversation states of the two guided flows.
const (
	stateTaskCourse      state.State = "task_course"
	stateTaskDescription state.State = "task_description"
	stateTaskDeadline    state.State = "task_deadline"

	stateCourseName state.State = "course_name"
	stateCourseDay  state.State = "course_day"
	stateCourseTime state.State = "course_time"
	stateCourseRoom state.State = "course_room"
)

// Session keys for data collected mid-flow.
const (
	tmpTaskCourse      = "task_course"
	tmpTaskDescription = "task_description"
	tmpCourseName      = "course_name"
	tmpCourseDay       = "course_day"
	tmpCourseTime      = "course_time"
)

// registerFlows binds every conversation state to its step handler.
func (a *App) registerFlows() {
	state.RegisterHandler(stateTaskCourse, a.stepTaskCourse)
	state.RegisterHandler(stateTaskDescription, a.stepTaskDescription)
	state.RegisterHandler(stateTaskDeadline, a.stepTaskDeadline)

	state.RegisterHandler(stateCourseName, a.stepCourseName)
	state.RegisterHandler(stateCourseDay, a.stepCourseDay)
	state.RegisterHandler(stateCourseTime, a.stepCourseTime)
	state.RegisterHandler(stateCourseRoom, a.stepCourseRoom)
}

// flowInput filters step input: /cancel aborts, any other command is
// ignored so stray commands cannot end up stored as flow data.
func (a *App) flowInput(c tele.Context) (string, bool, error) {
	text := strings.TrimSpace(c.Text())
	if text == "/cancel" {
		return "", false, a.handleCancel(c)
	}
	if strings.HasPrefix(text, "/") || text == "" {
		return "", false, nil
	}
	return text, true, nil
}

// handleCancel aborts any flow in progress and restores the main menu.
func (a *App) handleCancel(c tele.Context) error {
	a.fsm.Clear(c.Sender().ID)
	return tghelpers.SendText(c, "Proses dibatalkan. Kembali ke menu utama.",
		&tele.SendOptions{ReplyMarkup: mainMenu()})
}

// --- add-task flow ---

// startAddTask begins the guided task entry. It refuses to start while the
// schedule is empty because a task must reference a course.
func (a *App) startAddTask(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	names, err := a.courses.Names(ctx)
	if err != nil {
		_ = tghelpers.SendText(c, errGeneric)
		return err
	}
	if len(names) == 0 {
		return tghelpers.SendText(c, "Database mata kuliah kosong. Hubungi admin.")
	}

	a.fsm.SetState(c.Sender().ID, stateTaskCourse)
	return tghelpers.SendHTML(c,
		"Oke, mari tambahkan tugas baru.\n<b>Langkah 1:</b> Pilih mata kuliah.",
		courseMenu(names),
	)
}

func (a *App) stepTaskCourse(c tele.Context) error {
	text, ok, err := a.flowInput(c)
	if !ok {
		return err
	}
	userID := c.Sender().ID
	a.fsm.SetTemp(userID, tmpTaskCourse, text)
	a.fsm.SetState(userID, stateTaskDescription)

	msg := fmt.Sprintf("Matkul: <b>%s</b>\n<b>Langkah 2:</b> Sekarang masukkan deskripsi tugasnya.",
		format.EscapeHTML(text))
	return tghelpers.SendHTML(c, msg, keyboard.RemoveKeyboard())
}

func (a *App) stepTaskDescription(c tele.Context) error {
	text, ok, err := a.flowInput(c)
	if !ok {
		return err
	}
	userID := c.Sender().ID
	a.fsm.SetTemp(userID, tmpTaskDescription, text)
	a.fsm.SetState(userID, stateTaskDeadline)

	return tghelpers.SendHTML(c,
		"Deskripsi dicatat.\n<b>Langkah 3:</b> Masukkan deadline.\n(Contoh: <i>Besok 23:59, Senin 15 Okt, 30/10/2025</i>)",
		keyboard.RemoveKeyboard(),
	)
}

func (a *App) stepTaskDeadline(c tele.Context) error {
	deadline, ok, err := a.flowInput(c)
	if !ok {
		return err
	}
	userID := c.Sender().ID
	course, _ := a.fsm.GetTempString(userID, tmpTaskCourse)
	description, _ := a.fsm.GetTempString(userID, tmpTaskDescription)
	defer a.fsm.Clear(userID)

	ctx := tghelpers.BuildContext(c)
	if _, err := a.tasks.Add(ctx, course, description, deadline); err != nil {
		_ = tghelpers.SendText(c, "Gagal menyimpan tugas.", &tele.SendOptions{ReplyMarkup: mainMenu()})
		return err
	}

	msg := fmt.Sprintf(
		"<b>Tugas berhasil ditambahkan!</b> ✅\n\n📚 <b>Matkul:</b> %s\n📝 <b>Tugas:</b> %s\n⏳ <b>Deadline:</b> %s",
		format.EscapeHTML(course),
		format.EscapeHTML(description),
		format.EscapeHTML(deadline),
	)
	return tghelpers.SendHTML(c, msg, mainMenu())
}

// --- add-course flow (admin) ---

func (a *App) startAddCourse(c tele.Context) error {
	a.fsm.SetState(c.Sender().ID, stateCourseName)
	return tghelpers.SendHTML(c,
		"Oke, mari tambahkan mata kuliah baru.\n<b>Langkah 1:</b> Masukkan <b>Nama Mata Kuliah</b>?",
		keyboard.RemoveKeyboard(),
	)
}

func (a *App) stepCourseName(c tele.Context) error {
	text, ok, err := a.flowInput(c)
	if !ok {
		return err
	}
	userID := c.Sender().ID
	a.fsm.SetTemp(userID, tmpCourseName, text)
	a.fsm.SetState(userID, stateCourseDay)

	return tghelpers.SendHTML(c, "Nama dicatat. <b>Langkah 2:</b> Pilih <b>Hari</b>?", dayMenu())
}

func (a *App) stepCourseDay(c tele.Context) error {
	text, ok, err := a.flowInput(c)
	if !ok {
		return err
	}
	userID := c.Sender().ID
	a.fsm.SetTemp(userID, tmpCourseDay, text)
	a.fsm.SetState(userID, stateCourseTime)

	return tghelpers.SendHTML(c,
		"Hari dicatat. <b>Langkah 3:</b> Masukkan <b>Jam</b>?\n(Contoh: <i>08:00 - 10:00</i>)",
		keyboard.RemoveKeyboard(),
	)
}

func (a *App) stepCourseTime(c tele.Context) error {
	text, ok, err := a.flowInput(c)
	if !ok {
		return err
	}
	userID := c.Sender().ID
	a.fsm.SetTemp(userID, tmpCourseTime, text)
	a.fsm.SetState(userID, stateCourseRoom)

	return tghelpers.SendHTML(c,
		"Jam dicatat. <b>Langkah 4:</b> Masukkan <b>Ruangan</b>?",
		keyboard.RemoveKeyboard(),
	)
}

func (a *App) stepCourseRoom(c tele.Context) error {
	room, ok, err := a.flowInput(c)
	if !ok {
		return err
	}
	userID := c.Sender().ID
	name, _ := a.fsm.GetTempString(userID, tmpCourseName)
	day, _ := a.fsm.GetTempString(userID, tmpCourseDay)
	timeSlot, _ := a.fsm.GetTempString(userID, tmpCourseTime)
	defer a.fsm.Clear(userID)

	ctx := tghelpers.BuildContext(c)
	if _, err := a.courses.Add(ctx, name, day, timeSlot, room); err != nil {
		_ = tghelpers.SendText(c, "Gagal menyimpan mata kuliah.", &tele.SendOptions{ReplyMarkup: mainMenu()})
		return err
	}

	msg := fmt.Sprintf(
		"<b>Mata Kuliah berhasil ditambahkan!</b> ✅\n\n📚 <b>Nama:</b> %s\n🏫 <b>Ruangan:</b> %s",
		format.EscapeHTML(name),
		format.EscapeHTML(room),
	)
	return tghelpers.SendHTML(c, msg, mainMenu())
}
