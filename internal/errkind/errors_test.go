package errkind_test

import (
	"errors"
	"strings"
	"testing"

	"photozip/internal/errkind"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := errkind.Wrap(errkind.ErrIO, "archive", "write entry", "failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, errkind.ErrIO) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"archive", "write entry", "failed"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapNilMarkerDefaultsToIO(t *testing.T) {
	err := errkind.Wrap(nil, "organizer", "copy", "copy failed", errors.New("io"))
	if !errors.Is(err, errkind.ErrIO) {
		t.Fatalf("expected default marker ErrIO, got %v", err)
	}
}

func TestExitCodeMapping(t *testing.T) {
	if code := errkind.ExitCode(nil); code != 0 {
		t.Fatalf("expected 0 for nil error, got %d", code)
	}

	validationErr := errkind.Wrap(errkind.ErrValidation, "cli", "flags", "conflicting flags", nil)
	if code := errkind.ExitCode(validationErr); code != 2 {
		t.Fatalf("expected 2 for validation error, got %d", code)
	}

	verifyErr := errkind.Wrap(errkind.ErrVerification, "organizer", "verify", "size mismatch", nil)
	if code := errkind.ExitCode(verifyErr); code != 1 {
		t.Fatalf("expected 1 for verification error, got %d", code)
	}

	if code := errkind.ExitCode(errors.New("plain")); code != 1 {
		t.Fatalf("expected 1 for untagged error, got %d", code)
	}
}
