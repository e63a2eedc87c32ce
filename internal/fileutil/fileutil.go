// Package fileutil provides the low-level file copy and verification
// primitives used by the organizer.
package fileutil

import (
	"fmt"
	"io"
	"os"
)

// CopyFilePreserving streams src to dst and replicates the source's
// permission bits and timestamps onto the target. dst is truncated if it
// already exists; callers decide beforehand whether an existing target means
// skip.
func CopyFilePreserving(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, srcInfo.Mode().Perm())
	if err != nil {
		return err
	}
	defer func() {
		_ = out.Close()
	}()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	// The open mode above is narrowed by the umask; restate it explicitly.
	if err := os.Chmod(dst, srcInfo.Mode().Perm()); err != nil {
		return fmt.Errorf("replicate permissions: %w", err)
	}
	if err := os.Chtimes(dst, srcInfo.ModTime(), srcInfo.ModTime()); err != nil {
		return fmt.Errorf("replicate timestamps: %w", err)
	}
	return nil
}

// VerifyCopy reports whether dst exists and its byte size exactly equals
// src's. This is a cheap integrity check, not a content hash: same-size
// corruption passes undetected.
func VerifyCopy(src, dst string) (bool, error) {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return false, fmt.Errorf("stat source: %w", err)
	}
	dstInfo, err := os.Stat(dst)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat target: %w", err)
	}
	return srcInfo.Size() == dstInfo.Size(), nil
}
