package telegram

import (
	"testing"

	"github.com/prastianhdd/task-manager/core/telegram/commands"

	tele "gopkg.in/telebot.v4"
)

func noopHandler(tele.Context) error { return nil }

func TestLookupCommandByNameSlashAndAlias(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterCommand("/cek_tugas", commands.Command{
		Handler:     noopHandler,
		Description: "list pending tasks",
		Aliases:     []string{"📝 Cek Tugas"},
	})

	if _, _, ok := reg.LookupCommand("/cek_tugas"); !ok {
		t.Fatalf("exact lookup failed")
	}
	if key, _, ok := reg.LookupCommand("cek_tugas"); !ok || key != "/cek_tugas" {
		t.Fatalf("slashless lookup failed, got key=%q ok=%v", key, ok)
	}
	if key, _, ok := reg.LookupCommand("📝 Cek Tugas"); !ok || key != "/cek_tugas" {
		t.Fatalf("alias lookup failed, got key=%q ok=%v", key, ok)
	}
	if _, _, ok := reg.LookupCommand("unknown"); ok {
		t.Fatalf("unknown lookup should fail")
	}
}

func TestRegisterCommandRejectsInvalid(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterCommand("no_slash", commands.Command{Handler: noopHandler, Description: "x"})
	reg.RegisterCommand("/nohandler", commands.Command{Description: "x"})
	reg.RegisterCommand("/nodesc", commands.Command{Handler: noopHandler})

	if n := len(reg.Commands()); n != 0 {
		t.Fatalf("expected no commands registered, got %d", n)
	}
}

func TestListCommandsVisibility(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterCommand("/start", commands.Command{Handler: noopHandler, Description: "start"})
	reg.RegisterCommand("/cancel", commands.Command{Handler: noopHandler, Description: "cancel", Hidden: true})
	reg.RegisterCommand("/clear", commands.Command{Handler: noopHandler, Description: "clear", AdminOnly: true})

	visible := reg.ListCommands(true)
	if len(visible) != 1 {
		t.Fatalf("expected 1 visible command, got %d", len(visible))
	}
	if visible[0].Text != "start" {
		t.Fatalf("expected slashless text %q, got %q", "start", visible[0].Text)
	}

	all := reg.ListCommands(false)
	if len(all) != 3 {
		t.Fatalf("expected 3 commands, got %d", len(all))
	}
}

func TestRegisterCallbackDuplicate(t *testing.T) {
	reg := NewRegistry()
	if err := reg.RegisterCallback("task_done", noopHandler); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	if err := reg.RegisterCallback("task_done", noopHandler); err == nil {
		t.Fatalf("duplicate registration should fail")
	}
	if _, ok := reg.GetCallback("task_done"); !ok {
		t.Fatalf("callback not found after registration")
	}
	if _, ok := reg.GetCallback("missing"); ok {
		t.Fatalf("missing callback should not resolve")
	}
}
