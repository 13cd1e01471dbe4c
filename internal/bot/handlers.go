package bot

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/prastianhdd/task-manager/core/telegram/format"
	tghelpers "github.com/prastianhdd/task-manager/core/telegram/helpers"
	"github.com/prastianhdd/task-manager/internal/models"

	tele "gopkg.in/telebot.v4"
)

const errGeneric = "Terjadi kesalahan, coba lagi nanti."

// handleStart greets the user and shows the main menu keyboard.
func (a *App) handleStart(c tele.Context) error {
	name := "teman"
	if u := c.Sender(); u != nil && u.FirstName != "" {
		name = u.FirstName
	}
	var mention string
	if u := c.Sender(); u != nil {
		mention = fmt.Sprintf(`<a href="tg://user?id=%d">%s</a>`, u.ID, format.EscapeHTML(name))
	} else {
		mention = format.EscapeHTML(name)
	}

	msg := fmt.Sprintf(
		"Halo %s! 👋\n\nSaya adalah bot pengingat tugas kuliahmu. Gunakan tombol di bawah untuk navigasi.",
		mention,
	)
	return tghelpers.SendHTML(c, msg, mainMenu())
}

// handleHelp lists available commands; the admin sees the extra section.
func (a *App) handleHelp(c tele.Context) error {
	var b strings.Builder
	b.WriteString("<b>Daftar Perintah</b>\n\n")
	b.WriteString("/start - Memulai bot\n")
	b.WriteString("/help - Menampilkan bantuan ini\n")
	b.WriteString("/cek_matkul - Menampilkan jadwal mata kuliah\n")
	b.WriteString("/cek_tugas - Menampilkan semua tugas yang belum selesai\n")
	b.WriteString("/add_tugas - Menambahkan tugas baru (interaktif)\n")
	b.WriteString("/cancel - Membatalkan proses penambahan tugas")

	if a.isAdmin(c.Sender()) {
		b.WriteString("\n\n<b>--- 👮 Perintah Admin ---</b>\n")
		b.WriteString("/add_matkul - Menambahkan mata kuliah baru\n")
		b.WriteString("/del_matkul - Menghapus mata kuliah\n")
		b.WriteString("/clear_tugas - Menghapus SEMUA tugas.\n")
		b.WriteString("Tombol 'Hapus' di /cek_tugas.")
	}

	return tghelpers.SendHTML(c, b.String())
}

// handleSchedule renders the full course schedule.
func (a *App) handleSchedule(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	courses, err := a.courses.List(ctx)
	if err != nil {
		_ = tghelpers.SendText(c, errGeneric)
		return err
	}
	if len(courses) == 0 {
		return tghelpers.SendText(c, "Belum ada data mata kuliah.")
	}

	var b strings.Builder
	b.WriteString("<b>Jadwal Mata Kuliah</b> 📚\n\n")
	for _, course := range courses {
		fmt.Fprintf(&b, "<b>%s</b>\n", format.EscapeHTML(course.Nama))
		fmt.Fprintf(&b, "  📅: %s\n", format.EscapeHTML(course.Hari))
		fmt.Fprintf(&b, "  ⏰: %s\n", format.EscapeHTML(course.Jam))
		fmt.Fprintf(&b, "  🏫: %s\n", format.EscapeHTML(course.Ruangan))
		b.WriteString("--------------------\n")
	}
	return tghelpers.SendHTML(c, b.String())
}

// handlePendingTasks lists unfinished tasks, each with its action buttons.
func (a *App) handlePendingTasks(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	tasks, err := a.tasks.Pending(ctx)
	if err != nil {
		_ = tghelpers.SendText(c, errGeneric)
		return err
	}
	if len(tasks) == 0 {
		return tghelpers.SendText(c, "Hore! Tidak ada tugas yang pending. 🎉")
	}

	if err := tghelpers.SendText(c, "Berikut adalah daftar tugas yang belum selesai:"); err != nil {
		return err
	}
	for _, t := range tasks {
		msg := formatTask(t)
		if err := tghelpers.SendHTML(c, msg, taskButtons(strconv.FormatInt(t.ID, 10))); err != nil {
			return err
		}
	}
	return nil
}

// handleDoneTasks lists completed tasks.
func (a *App) handleDoneTasks(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	tasks, err := a.tasks.Done(ctx)
	if err != nil {
		_ = tghelpers.SendText(c, errGeneric)
		return err
	}
	if len(tasks) == 0 {
		return tghelpers.SendText(c, "Belum ada tugas yang selesai. Semangat! 💪")
	}

	var b strings.Builder
	b.WriteString("<b>Daftar Tugas yang Sudah Selesai</b> ✅\n\n")
	for _, t := range tasks {
		fmt.Fprintf(&b, "📚 <b>%s</b>\n", format.EscapeHTML(t.MatkulNama))
		fmt.Fprintf(&b, "📝: %s\n", format.EscapeHTML(t.Deskripsi))
		fmt.Fprintf(&b, "⏳: <i>%s</i>\n", format.EscapeHTML(t.Deadline))
		b.WriteString("--------------------\n")
	}
	return tghelpers.SendHTML(c, b.String())
}

// handleDeleteCourseList shows every course with an inline delete button.
// Reachable only by the admin; the command is registered admin-only.
func (a *App) handleDeleteCourseList(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	courses, err := a.courses.List(ctx)
	if err != nil {
		_ = tghelpers.SendText(c, errGeneric)
		return err
	}
	if len(courses) == 0 {
		return tghelpers.SendText(c, "Tidak ada mata kuliah untuk dihapus.")
	}

	if err := tghelpers.SendText(c, "Pilih mata kuliah yang ingin dihapus (HATI-HATI!):"); err != nil {
		return err
	}
	for _, course := range courses {
		msg := formatCourse(course)
		if err := tghelpers.SendHTML(c, msg, courseDeleteButton(strconv.FormatInt(course.ID, 10))); err != nil {
			return err
		}
	}
	return nil
}

// handleClearTasks wipes the whole task list. Admin-only.
func (a *App) handleClearTasks(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	if err := a.tasks.Clear(ctx); err != nil {
		_ = tghelpers.SendText(c, errGeneric)
		return err
	}
	return tghelpers.SendText(c, "BERHASIL! Semua tugas telah dihapus dari database. 🗑️")
}

// handleAdminReject answers non-admin attempts at admin commands.
func (a *App) handleAdminReject(c tele.Context) error {
	return tghelpers.SendText(c, "Maaf, perintah ini hanya untuk admin. 👮")
}

func (a *App) isAdmin(u *tele.User) bool {
	return u != nil && u.ID == a.adminID
}

func formatTask(t models.Task) string {
	return fmt.Sprintf("📚 <b>%s</b>\n📝: %s\n⏳: <b>%s</b>",
		format.EscapeHTML(t.MatkulNama),
		format.EscapeHTML(t.Deskripsi),
		format.EscapeHTML(t.Deadline),
	)
}

func formatCourse(course models.Course) string {
	return fmt.Sprintf("<b>%s</b>\n(%s, %s, %s)",
		format.EscapeHTML(course.Nama),
		format.EscapeHTML(course.Hari),
		format.EscapeHTML(course.Jam),
		format.EscapeHTML(course.Ruangan),
	)
}
