package tui

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/handiism/stickerpack/internal/config"
	"github.com/handiism/stickerpack/internal/pipeline"
)

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestNewModel_UsesSettings(t *testing.T) {
	s := config.DefaultSettings()
	s.CollectionFolder = "/stickers"
	s.CreatePackages = false

	m := NewModel(s)
	if m.state != StateInput {
		t.Errorf("state = %v, want StateInput", m.state)
	}
	if m.textInput.Value() != "/stickers" {
		t.Errorf("input = %q", m.textInput.Value())
	}
	if m.packages {
		t.Error("packages enabled despite settings")
	}
}

func TestUpdate_Toggles(t *testing.T) {
	m := NewModel(nil)
	if !m.packages || m.verbose {
		t.Fatalf("initial toggles = %v/%v", m.packages, m.verbose)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlP})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlV})

	if m.packages || !m.verbose {
		t.Errorf("toggles = %v/%v, want false/true", m.packages, m.verbose)
	}
	if !strings.Contains(m.View(), "[ ] Create zip packages") {
		t.Error("view does not reflect the packages toggle")
	}
}

func TestUpdate_ProgressLogs(t *testing.T) {
	m := NewModel(nil)

	m = update(t, m, ProgressMsg{Event: pipeline.ProgressEvent{Message: "hidden", Level: pipeline.LevelVerbose}})
	if len(m.logs) != 0 {
		t.Errorf("verbose event logged with verbose off: %v", m.logs)
	}

	for i := 0; i < maxLogs+5; i++ {
		m = update(t, m, ProgressMsg{Event: pipeline.ProgressEvent{Message: fmt.Sprintf("msg %d", i), Level: pipeline.LevelInfo}})
	}
	if len(m.logs) != maxLogs {
		t.Fatalf("kept %d logs, want %d", len(m.logs), maxLogs)
	}
	if m.logs[0].Message != "msg 5" {
		t.Errorf("oldest log = %q, want msg 5", m.logs[0].Message)
	}
}

func TestUpdate_RunLifecycle(t *testing.T) {
	m := NewModel(nil)
	m.state = StateScanning

	m = update(t, m, InitDoneMsg{Err: errors.New("collection folder not found")})
	if m.state != StateError || !strings.Contains(m.View(), "collection folder not found") {
		t.Errorf("state = %v after failed init", m.state)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	if m.state != StateInput || m.err != nil {
		t.Fatalf("reset left state = %v, err = %v", m.state, m.err)
	}

	m.state = StateProcessing
	m = update(t, m, ProcessDoneMsg{Done: 8, Total: 8, Succeeded: 2, MasterPackage: "/out/_zip_packages/sticker_packs_0307_0905.zip"})
	if m.state != StateComplete {
		t.Fatalf("state = %v, want StateComplete", m.state)
	}
	view := m.View()
	for _, want := range []string{"2 succeeded, 0 failed", "Templates: 8/8", "sticker_packs_0307_0905.zip"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestUpdate_EscCancels(t *testing.T) {
	m := NewModel(nil)
	m.state = StateProcessing

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.state != StateError || m.ctx.Err() == nil {
		t.Errorf("esc did not cancel: state = %v, ctx err = %v", m.state, m.ctx.Err())
	}
}

func TestWaitForEvent(t *testing.T) {
	m := NewModel(nil)
	m.events <- pipeline.ProgressEvent{Message: "Processing Cats", Level: pipeline.LevelInfo}
	close(m.events)

	msg, ok := m.waitForEvent()().(ProgressMsg)
	if !ok || msg.Event.Message != "Processing Cats" {
		t.Fatalf("first message = %#v, want the buffered event", msg)
	}
	if got := m.waitForEvent()(); got != nil {
		t.Errorf("message after close = %#v, want nil", got)
	}
}

func TestInitializeRun_FailureClosesEvents(t *testing.T) {
	m := NewModel(nil)
	m.textInput.SetValue(filepath.Join(t.TempDir(), "missing"))

	done, ok := m.initializeRun()().(InitDoneMsg)
	if !ok || done.Err == nil {
		t.Fatalf("initializeRun() = %#v, want an error", done)
	}

	for i := 0; i <= eventBacklog; i++ {
		if m.waitForEvent()() == nil {
			return
		}
	}
	t.Error("events channel still open after a failed scan")
}
