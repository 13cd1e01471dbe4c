// Package reminder runs the daily deadline check and notifies the admin.
package reminder

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/prastianhdd/task-manager/core/logger"
	"github.com/prastianhdd/task-manager/core/telegram/format"
	"github.com/prastianhdd/task-manager/internal/service"
	"log/slog"
)

// Sender is the outbound surface needed from the bot.
type Sender interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

// Options configure the reminder job.
type Options struct {
	Sender  Sender
	Tasks   *service.Tasks
	AdminID int64
	// At is the wall-clock send time, "HH:MM".
	At string
	// Timezone is an IANA zone name; empty selects the system zone.
	Timezone string
}

// Job fires once a day and messages the admin when pending tasks are due
// today or tomorrow.
type Job struct {
	sender  Sender
	tasks   *service.Tasks
	adminID int64
	hour    int
	minute  int
	loc     *time.Location

	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// New validates the options and builds a stopped job.
func New(opts Options) (*Job, error) {
	if opts.Sender == nil {
		return nil, fmt.Errorf("reminder: nil sender")
	}
	if opts.Tasks == nil {
		return nil, fmt.Errorf("reminder: nil task service")
	}
	if opts.AdminID == 0 {
		return nil, fmt.Errorf("reminder: admin id is required")
	}

	var hh, mm int
	if _, err := fmt.Sscanf(opts.At, "%d:%d", &hh, &mm); err != nil {
		return nil, fmt.Errorf("reminder: invalid time %q: %w", opts.At, err)
	}
	if hh < 0 || hh > 23 || mm < 0 || mm > 59 {
		return nil, fmt.Errorf("reminder: time %q out of range", opts.At)
	}

	loc := time.Local
	if opts.Timezone != "" {
		l, err := time.LoadLocation(opts.Timezone)
		if err != nil {
			return nil, fmt.Errorf("reminder: invalid timezone %q: %w", opts.Timezone, err)
		}
		loc = l
	}

	return &Job{
		sender:  opts.Sender,
		tasks:   opts.Tasks,
		adminID: opts.AdminID,
		hour:    hh,
		minute:  mm,
		loc:     loc,
		done:    make(chan struct{}),
	}, nil
}

// Start launches the daily loop. It returns immediately.
func (j *Job) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	j.cancel = cancel

	go j.loop(ctx)

	logger.JobReminder.Info("reminder scheduled",
		slog.String("event", "reminder.scheduled"),
		slog.String("at", fmt.Sprintf("%02d:%02d", j.hour, j.minute)),
		slog.String("tz", j.loc.String()),
	)
}

// Stop cancels the loop and waits for it to exit.
func (j *Job) Stop() {
	j.once.Do(func() {
		if j.cancel != nil {
			j.cancel()
			<-j.done
		}
	})
}

func (j *Job) loop(ctx context.Context) {
	defer close(j.done)
	for {
		wait := time.Until(j.nextRun(time.Now().In(j.loc)))
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			j.RunOnce(ctx)
		}
	}
}

// nextRun returns the next occurrence of the configured wall-clock time
// strictly after now.
func (j *Job) nextRun(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), j.hour, j.minute, 0, 0, j.loc)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// RunOnce performs a single deadline check and sends the digest if needed.
func (j *Job) RunOnce(ctx context.Context) {
	ctx = logger.WithLogger(ctx, logger.JobReminder)

	pending, err := j.tasks.Pending(ctx)
	if err != nil {
		logger.JobReminder.Error("reminder check failed",
			slog.String("event", "reminder.check"),
			slog.String("err", err.Error()),
		)
		return
	}
	if len(pending) == 0 {
		logger.JobReminder.Info("no pending tasks",
			slog.String("event", "reminder.check"),
			slog.Int("pending_count", 0),
		)
		return
	}

	due := service.NearDeadline(pending)
	if len(due) == 0 {
		logger.JobReminder.Info("no near deadlines",
			slog.String("event", "reminder.check"),
			slog.Int("pending_count", len(pending)),
			slog.Int("matched", 0),
		)
		return
	}

	var b strings.Builder
	b.WriteString("‼️ <b>PENGINGAT TUGAS HARIAN</b> ‼️\n\nHati-hati, ada tugas yang deadline-nya dekat:\n\n")
	for _, t := range due {
		fmt.Fprintf(&b, "📚 <b>%s</b>\n", format.EscapeHTML(t.MatkulNama))
		fmt.Fprintf(&b, "📝: %s\n", format.EscapeHTML(t.Deskripsi))
		fmt.Fprintf(&b, "⏳: <b>%s</b>\n", format.EscapeHTML(t.Deadline))
		b.WriteString("--------------------\n")
	}

	if _, err := j.sender.Send(tele.ChatID(j.adminID), b.String(), &tele.SendOptions{ParseMode: tele.ModeHTML}); err != nil {
		logger.JobReminder.Error("reminder send failed",
			slog.String("event", "reminder.send"),
			slog.Int64("chat_id", j.adminID),
			slog.String("err", err.Error()),
		)
		return
	}
	logger.JobReminder.Info("reminder sent",
		slog.String("event", "reminder.send"),
		slog.Int64("chat_id", j.adminID),
		slog.Int("matched", len(due)),
	)
}
