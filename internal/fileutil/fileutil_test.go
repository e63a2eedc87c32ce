package fileutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCopyFilePreservingContent(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "dst.txt")

	content := []byte("hello world")
	if err := os.WriteFile(src, content, 0o644); err != nil {
		t.Fatal(err)
	}

	if err := CopyFilePreserving(src, dst); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(content) {
		t.Fatalf("content mismatch: got %q, want %q", got, content)
	}
}

func TestCopyFilePreservingMetadata(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.bin")
	dst := filepath.Join(dir, "dst.bin")

	if err := os.WriteFile(src, []byte("data"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chmod(src, 0o750); err != nil {
		t.Fatal(err)
	}
	stamp := time.Date(2004, 7, 14, 10, 30, 0, 0, time.UTC)
	if err := os.Chtimes(src, stamp, stamp); err != nil {
		t.Fatal(err)
	}

	if err := CopyFilePreserving(src, dst); err != nil {
		t.Fatal(err)
	}

	info, err := os.Stat(dst)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o750 {
		t.Fatalf("expected permissions 0750, got %o", info.Mode().Perm())
	}
	if !info.ModTime().Equal(stamp) {
		t.Fatalf("expected mtime %v, got %v", stamp, info.ModTime())
	}
}

func TestCopyFilePreservingMissingSource(t *testing.T) {
	dir := t.TempDir()
	if err := CopyFilePreserving(filepath.Join(dir, "nope"), filepath.Join(dir, "dst")); err == nil {
		t.Fatal("expected error for missing source")
	}
}

func TestVerifyCopySizesEqual(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.bin")
	dst := filepath.Join(dir, "dst.bin")

	if err := os.WriteFile(src, []byte("same length"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := CopyFilePreserving(src, dst); err != nil {
		t.Fatal(err)
	}

	ok, err := VerifyCopy(src, dst)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected verification to pass for equal sizes")
	}
}

func TestVerifyCopyTruncatedTarget(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.bin")
	dst := filepath.Join(dir, "dst.bin")

	if err := os.WriteFile(src, []byte("full content"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(dst, []byte("full"), 0o644); err != nil {
		t.Fatal(err)
	}

	ok, err := VerifyCopy(src, dst)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("expected verification to fail for truncated target")
	}
}

func TestVerifyCopyMissingTarget(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.bin")

	if err := os.WriteFile(src, []byte("content"), 0o644); err != nil {
		t.Fatal(err)
	}

	ok, err := VerifyCopy(src, filepath.Join(dir, "missing"))
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("expected verification to fail for missing target")
	}
}
