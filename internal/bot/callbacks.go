package bot

import (
	"errors"
	"fmt"

	"github.com/prastianhdd/task-manager/core/telegram/callbacks"
	tghelpers "github.com/prastianhdd/task-manager/core/telegram/helpers"
	"github.com/prastianhdd/task-manager/internal/storage"

	tele "gopkg.in/telebot.v4"
)

// onTaskDone marks a task as done. Any user may press this button.
func (a *App) onTaskDone(c tele.Context) error {
	id, err := callbacks.PayloadInt64(c)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "Data tombol tidak valid."})
	}

	ctx := tghelpers.BuildContext(c)
	task, err := a.tasks.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Respond(&tele.CallbackResponse{Text: "Tugas sudah tidak ada.", ShowAlert: true})
		}
		return c.Respond(&tele.CallbackResponse{Text: errGeneric, ShowAlert: true})
	}
	if err := a.tasks.MarkDone(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Respond(&tele.CallbackResponse{Text: "Tugas sudah tidak ada.", ShowAlert: true})
		}
		return c.Respond(&tele.CallbackResponse{Text: errGeneric, ShowAlert: true})
	}

	if err := c.Respond(); err != nil {
		return err
	}
	return editWithStatus(c, formatTask(task), "--- <b>Status: ✅ SELESAI</b> ---")
}

// onTaskDelete removes a task. Admin-only; others get a blocking alert.
func (a *App) onTaskDelete(c tele.Context) error {
	if !a.isAdmin(c.Sender()) {
		return c.Respond(&tele.CallbackResponse{
			Text:      "Maaf, hanya admin yang bisa menghapus tugas.",
			ShowAlert: true,
		})
	}

	id, err := callbacks.PayloadInt64(c)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "Data tombol tidak valid."})
	}

	ctx := tghelpers.BuildContext(c)
	task, err := a.tasks.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Respond(&tele.CallbackResponse{Text: "Tugas sudah tidak ada.", ShowAlert: true})
		}
		return c.Respond(&tele.CallbackResponse{Text: errGeneric, ShowAlert: true})
	}
	if err := a.tasks.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Respond(&tele.CallbackResponse{Text: "Tugas sudah tidak ada.", ShowAlert: true})
		}
		return c.Respond(&tele.CallbackResponse{Text: errGeneric, ShowAlert: true})
	}

	if err := c.Respond(); err != nil {
		return err
	}
	return editWithStatus(c, formatTask(task), "--- <b>Status: ❌ DIHAPUS ADMIN</b> ---")
}

// onCourseDelete removes a course from the schedule. Admin-only.
func (a *App) onCourseDelete(c tele.Context) error {
	if !a.isAdmin(c.Sender()) {
		return c.Respond(&tele.CallbackResponse{
			Text:      "Maaf, hanya admin yang bisa menghapus mata kuliah.",
			ShowAlert: true,
		})
	}

	id, err := callbacks.PayloadInt64(c)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "Data tombol tidak valid."})
	}

	ctx := tghelpers.BuildContext(c)
	course, err := a.courses.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Respond(&tele.CallbackResponse{Text: "Mata kuliah sudah tidak ada.", ShowAlert: true})
		}
		return c.Respond(&tele.CallbackResponse{Text: errGeneric, ShowAlert: true})
	}
	if err := a.courses.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Respond(&tele.CallbackResponse{Text: "Mata kuliah sudah tidak ada.", ShowAlert: true})
		}
		return c.Respond(&tele.CallbackResponse{Text: errGeneric, ShowAlert: true})
	}

	if err := c.Respond(); err != nil {
		return err
	}
	return editWithStatus(c, formatCourse(course), "--- <b>Status: ❌ MATA KULIAH DIHAPUS</b> ---")
}

// editWithStatus replaces the callback's message with the row re-rendered in
// its original HTML layout plus a status line, dropping the inline keyboard.
// Rebuilding from the stored row keeps the formatting a plain-text edit of
// message.Text would lose.
func editWithStatus(c tele.Context, body, status string) error {
	return tghelpers.EditHTML(c, fmt.Sprintf("%s\n\n%s", body, status))
}
