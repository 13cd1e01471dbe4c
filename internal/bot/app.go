// Package bot wires the course-schedule Telegram bot: commands, menu
// buttons, guided flows, inline callbacks, and the daily reminder job.
package bot

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	tele "gopkg.in/telebot.v4"

	"github.com/prastianhdd/task-manager/core/logger"
	coretelegram "github.com/prastianhdd/task-manager/core/telegram"
	"github.com/prastianhdd/task-manager/core/telegram/commands"
	"github.com/prastianhdd/task-manager/core/telegram/router"
	"github.com/prastianhdd/task-manager/core/telegram/state"
	"github.com/prastianhdd/task-manager/internal/bot/reminder"
	"github.com/prastianhdd/task-manager/internal/service"
	"github.com/prastianhdd/task-manager/internal/storage"
	"log/slog"
)

// App bundles the bot's services and Telegram wiring.
type App struct {
	cfg     *Config
	adminID int64

	db      *sqlx.DB
	store   *storage.Store
	courses *service.Courses
	tasks   *service.Tasks

	fsm      state.Manager
	registry *coretelegram.Registry

	reminderJob *reminder.Job
}

// New builds the application on top of an open database handle.
func New(cfg *Config, db *sqlx.DB) *App {
	store := storage.New(db)
	a := &App{
		cfg:     cfg,
		adminID: cfg.Core.Telegram.AdminID,
		db:      db,
		store:   store,
		courses: service.NewCourses(store),
		tasks:   service.NewTasks(store),
		fsm:     state.NewMemoryManager(),
	}
	a.registry = a.buildRegistry()
	a.registerFlows()
	return a
}

// Store exposes the storage layer, mainly for seeding at startup.
func (a *App) Store() *storage.Store {
	return a.store
}

func (a *App) buildRegistry() *coretelegram.Registry {
	reg := coretelegram.NewRegistry()

	reg.RegisterCommand("/start", commands.Command{
		Handler:     a.handleStart,
		Description: "🚀 Mulai bot",
	})
	reg.RegisterCommand("/help", commands.Command{
		Handler:     a.handleHelp,
		Description: "❓ Bantuan",
		Aliases:     []string{btnHelp},
	})
	reg.RegisterCommand("/cek_matkul", commands.Command{
		Handler:     a.handleSchedule,
		Description: "📚 Lihat jadwal matkul",
		Aliases:     []string{btnSchedule},
	})
	reg.RegisterCommand("/cek_tugas", commands.Command{
		Handler:     a.handlePendingTasks,
		Description: "📝 Lihat tugas pending",
		Aliases:     []string{btnTasks},
	})
	reg.RegisterCommand("/tugas_selesai", commands.Command{
		Handler:     a.handleDoneTasks,
		Description: "✅ Lihat tugas selesai",
		Aliases:     []string{btnTasksDone},
	})
	reg.RegisterCommand("/add_tugas", commands.Command{
		Handler:     a.startAddTask,
		Description: "➕ Tambah tugas baru",
		Aliases:     []string{btnAddTask},
	})
	reg.RegisterCommand("/cancel", commands.Command{
		Handler:     a.handleCancel,
		Description: "Membatalkan proses yang sedang berjalan",
		Hidden:      true,
	})

	reg.RegisterCommand("/add_matkul", commands.Command{
		Handler:     a.startAddCourse,
		Description: "🎓 TAMBAH MATKUL (Admin)",
		AdminOnly:   true,
	})
	reg.RegisterCommand("/del_matkul", commands.Command{
		Handler:     a.handleDeleteCourseList,
		Description: "🚫 HAPUS MATKUL (Admin)",
		AdminOnly:   true,
	})
	reg.RegisterCommand("/clear_tugas", commands.Command{
		Handler:     a.handleClearTasks,
		Description: "🗑️ HAPUS SEMUA TUGAS (Admin)",
		AdminOnly:   true,
	})

	_ = reg.RegisterCallback(cbTaskDone, a.onTaskDone)
	_ = reg.RegisterCallback(cbTaskDelete, a.onTaskDelete)
	_ = reg.RegisterCallback(cbCourseDelete, a.onCourseDelete)

	return reg
}

// TelegramRunOptions assembles routes, middleware, and lifecycle hooks for
// the shared Telegram runtime.
func (a *App) TelegramRunOptions() (coretelegram.RunOptions, error) {
	cfg := a.cfg.CoreConfig()
	reg := a.registry

	routes := router.CommandRoutes(reg, router.CommandRouteOptions{
		AdminID:       a.adminID,
		OnAdminReject: a.handleAdminReject,
	})
	routes = append(routes, router.CallbackRoute(reg, router.CallbackOptions{}))
	routes = append(routes, router.TextRoutes(a.fsm, reg, router.TextOptions{
		AdminID:       a.adminID,
		OnAdminReject: a.handleAdminReject,
	})...)

	opts := coretelegram.RunOptions{
		Config:      cfg,
		Registry:    reg,
		Middlewares: coretelegram.DefaultMiddlewares(cfg, nil),
		Routes:      routes,
		OnStart: func(ctx context.Context, rt coretelegram.Runtime) error {
			a.publishAdminCommands(rt.Bot)
			a.startReminder(rt.Bot)
			return nil
		},
		OnStop: func(ctx context.Context, rt coretelegram.Runtime) error {
			if a.reminderJob != nil {
				a.reminderJob.Stop()
			}
			if a.db != nil {
				if err := a.db.Close(); err != nil {
					return fmt.Errorf("closing database: %w", err)
				}
			}
			return nil
		},
	}
	return opts, nil
}

// publishAdminCommands pushes the full command list, admin entries included,
// to the admin's private chat so their command menu shows everything.
func (a *App) publishAdminCommands(bot *tele.Bot) {
	if bot == nil || a.adminID == 0 {
		return
	}
	var list []tele.Command
	for name, meta := range a.registry.Commands() {
		if meta.Hidden {
			continue
		}
		list = append(list, tele.Command{
			Text:        name[1:],
			Description: meta.Description,
		})
	}
	scope := tele.CommandScope{Type: tele.CommandScopeChat, ChatID: a.adminID}
	if err := bot.SetCommands(list, scope); err != nil {
		logger.TWire.Warn("failed to publish admin command menu",
			slog.String("event", "commands.admin"),
			slog.Int64("chat_id", a.adminID),
			slog.String("err", err.Error()),
		)
		return
	}
	logger.TWire.Info("admin command menu published",
		slog.String("event", "commands.admin"),
		slog.Int64("chat_id", a.adminID),
		slog.Int("commands", len(list)),
	)
}

func (a *App) startReminder(bot *tele.Bot) {
	rc := a.cfg.Reminder
	if !rc.Enabled || bot == nil {
		logger.JobReminder.Info("reminder disabled",
			slog.String("event", "reminder.disabled"),
		)
		return
	}
	job, err := reminder.New(reminder.Options{
		Sender:   bot,
		Tasks:    a.tasks,
		AdminID:  a.adminID,
		At:       rc.At,
		Timezone: rc.Timezone,
	})
	if err != nil {
		logger.JobReminder.Error("reminder setup failed",
			slog.String("event", "reminder.setup"),
			slog.String("err", err.Error()),
		)
		return
	}
	a.reminderJob = job
	job.Start()
}
