package matcher_test

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"photozip/internal/errkind"
	"photozip/internal/matcher"
	"photozip/internal/testsupport"
)

func mustPattern(t *testing.T, pattern string) *regexp.Regexp {
	t.Helper()
	re, err := matcher.ValidatePattern(pattern)
	if err != nil {
		t.Fatalf("ValidatePattern(%q): %v", pattern, err)
	}
	return re
}

func TestScanGroupsByIdentifier(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"trip2004_01.jpg", "trip2004_02.jpg", "trip2005_01.jpg", "notes.txt"} {
		testsupport.WriteFile(t, filepath.Join(dir, name), 16)
	}

	groups, err := matcher.Scan(dir, mustPattern(t, `trip\d{4}`))
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].Name != "trip2004" || len(groups[0].Files) != 2 {
		t.Fatalf("unexpected first group: %+v", groups[0])
	}
	if groups[1].Name != "trip2005" || len(groups[1].Files) != 1 {
		t.Fatalf("unexpected second group: %+v", groups[1])
	}
	for _, g := range groups {
		for _, f := range g.Files {
			if f.Group != g.Name {
				t.Fatalf("file %s carries group %q, owner is %q", f.Name, f.Group, g.Name)
			}
			if !filepath.IsAbs(f.Path) {
				t.Fatalf("expected absolute path, got %q", f.Path)
			}
			if f.Size != 16 {
				t.Fatalf("expected size metadata, got %d", f.Size)
			}
		}
	}
}

func TestScanFirstSeenGroupOrder(t *testing.T) {
	dir := t.TempDir()
	// os.ReadDir yields names sorted, so the first-seen order here is
	// alpha2010 before beta2011 regardless of creation order.
	testsupport.WriteFile(t, filepath.Join(dir, "beta2011_a.jpg"), 1)
	testsupport.WriteFile(t, filepath.Join(dir, "alpha2010_a.jpg"), 1)

	groups, err := matcher.Scan(dir, mustPattern(t, `[a-z]+\d{4}`))
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].Name != "alpha2010" {
		t.Fatalf("expected alpha2010 first, got %q", groups[0].Name)
	}
}

func TestScanSkipsSubdirectories(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "vacation_subdir")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	// A matching file inside the subdirectory must not be picked up.
	testsupport.WriteFile(t, filepath.Join(sub, "vacation_nested.jpg"), 1)
	testsupport.WriteFile(t, filepath.Join(dir, "vacation_beach.jpg"), 1)

	groups, err := matcher.Scan(dir, mustPattern(t, "vacation"))
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	if len(groups[0].Files) != 1 || groups[0].Files[0].Name != "vacation_beach.jpg" {
		t.Fatalf("unexpected files: %+v", groups[0].Files)
	}
}

func TestScanNoMatchesIsNotAnError(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(dir, "work_meeting.jpg"), 1)

	groups, err := matcher.Scan(dir, mustPattern(t, "vacation"))
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(groups) != 0 {
		t.Fatalf("expected no groups, got %d", len(groups))
	}
}

func TestScanMissingDirectory(t *testing.T) {
	_, err := matcher.Scan(filepath.Join(t.TempDir(), "absent"), mustPattern(t, "x"))
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
	if !errors.Is(err, errkind.ErrNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestScanRejectsReservedIdentifier(t *testing.T) {
	dir := t.TempDir()
	// "..config" matched by `\.\.` yields identifier "..".
	testsupport.WriteFile(t, filepath.Join(dir, "..config"), 1)

	_, err := matcher.Scan(dir, mustPattern(t, `\.\.`))
	if err == nil {
		t.Fatal("expected error for reserved identifier")
	}
	if !errors.Is(err, errkind.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestScanRejectsEmptyIdentifier(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(dir, "anything.jpg"), 1)

	// `z*` matches the empty string at position zero of every name.
	_, err := matcher.Scan(dir, mustPattern(t, "z*"))
	if err == nil {
		t.Fatal("expected error for empty identifier")
	}
	if !errors.Is(err, errkind.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestScanRejectsNormalizationCollision(t *testing.T) {
	dir := t.TempDir()
	// U+00E9 (precomposed) vs U+0065 U+0301 (combining) normalize to the
	// same NFC sequence but are distinct identifiers.
	testsupport.WriteFile(t, filepath.Join(dir, "café_a.jpg"), 1)
	testsupport.WriteFile(t, filepath.Join(dir, "café_b.jpg"), 1)

	_, err := matcher.Scan(dir, mustPattern(t, `caf.*?_`))
	if err == nil {
		t.Skip("filesystem normalizes unicode names; collision cannot be constructed here")
	}
	if !errors.Is(err, errkind.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
