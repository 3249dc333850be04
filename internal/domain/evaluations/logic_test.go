package evaluations

import (
	"errors"
	"testing"
)

func TestEntryStatus(t *testing.T) {
	if got := EntryStatus(true); got != StatusSubmitted {
		t.Fatalf("self entry should submit directly, got %q", got)
	}
	if got := EntryStatus(false); got != StatusDraft {
		t.Fatalf("manager direct entry should start as draft, got %q", got)
	}
}

func TestCanReplaceRejectsLockedManagerRecord(t *testing.T) {
	err := CanReplace(StatusSubmitted, false, false)
	if !errors.Is(err, ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
}

func TestCanReplaceAllowsDraftAndSelf(t *testing.T) {
	if err := CanReplace(StatusDraft, false, false); err != nil {
		t.Fatalf("draft replace should pass: %v", err)
	}
	if err := CanReplace(StatusSubmitted, true, false); err != nil {
		t.Fatalf("self records carry no lock: %v", err)
	}
	if err := CanReplace(StatusSubmitted, false, true); err != nil {
		t.Fatalf("delegated overwrite should pass: %v", err)
	}
}
