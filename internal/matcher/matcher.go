package matcher

import (
	"regexp"
	"strings"
	"time"

	"photozip/internal/errkind"
)

// SourceFile describes one file selected during a scan. It is immutable once
// constructed from filesystem metadata.
type SourceFile struct {
	// Path is the absolute path to the file.
	Path string
	// Name is the base filename.
	Name string
	// Size is the file size in bytes at scan time.
	Size int64
	// ModTime is the last-modified timestamp at scan time.
	ModTime time.Time
	// Group is the identifier extracted from Name. It always equals the
	// name of the Group that owns this file.
	Group string
}

// Group collects the files whose names matched the same identifier.
type Group struct {
	// Name is the matched substring used as grouping key and as the
	// destination folder and archive base name.
	Name string
	// Files holds the group's files in scan order.
	Files []SourceFile
}

// ValidatePattern compiles the user-supplied pattern. Empty or blank
// patterns and regular-expression syntax errors are validation failures.
func ValidatePattern(pattern string) (*regexp.Regexp, error) {
	if strings.TrimSpace(pattern) == "" {
		return nil, errkind.Wrap(errkind.ErrValidation, "matcher", "validate pattern", "pattern cannot be empty", nil)
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errkind.Wrap(errkind.ErrValidation, "matcher", "validate pattern", "invalid regular expression", err)
	}
	return re, nil
}

// ExtractGroup searches filename for the leftmost substring matching re and
// returns it as the group identifier. Matching is case-sensitive and
// operates on the base filename only. The second return is false when the
// pattern does not match anywhere in the name.
func ExtractGroup(filename string, re *regexp.Regexp) (string, bool) {
	loc := re.FindStringIndex(filename)
	if loc == nil {
		return "", false
	}
	return filename[loc[0]:loc[1]], true
}
