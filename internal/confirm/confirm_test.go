package confirm_test

import (
	"testing"

	"github.com/educaprep/studyhelper/internal/confirm"
)

func TestConfirmFlow(t *testing.T) {
	var m confirm.Machine

	if m.Pending() != "" {
		t.Fatalf("expected idle machine, pending %q", m.Pending())
	}

	m.Request("abandon")
	if m.Pending() != "abandon" {
		t.Fatalf("expected pending abandon, got %q", m.Pending())
	}

	action, execute := m.Confirm(true)
	if action != "abandon" || !execute {
		t.Errorf("expected (abandon, true), got (%q, %v)", action, execute)
	}
	if m.Pending() != "" {
		t.Error("expected machine back to idle after confirm")
	}
}

func TestDenyReturnsToIdle(t *testing.T) {
	var m confirm.Machine
	m.Request("reset_timer")

	action, execute := m.Confirm(false)
	if action != "reset_timer" || execute {
		t.Errorf("expected (reset_timer, false), got (%q, %v)", action, execute)
	}
	if m.Pending() != "" {
		t.Error("expected idle after deny")
	}
}

func TestConfirmWithoutRequest(t *testing.T) {
	var m confirm.Machine
	if _, execute := m.Confirm(true); execute {
		t.Error("confirming with nothing pending must not execute")
	}
}

func TestNewRequestReplacesPending(t *testing.T) {
	var m confirm.Machine
	m.Request("abandon")
	m.Request("reset_timer")

	action, execute := m.Confirm(true)
	if action != "reset_timer" || !execute {
		t.Errorf("expected latest request to win, got (%q, %v)", action, execute)
	}
}

func TestCancel(t *testing.T) {
	var m confirm.Machine
	m.Request("unace")
	m.Cancel()
	if m.Pending() != "" {
		t.Error("expected idle after cancel")
	}
}
