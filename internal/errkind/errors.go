package errkind

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidation marks problems detected before any filesystem mutation:
	// bad patterns, incompatible flags, unusable source directories.
	ErrValidation = errors.New("validation error")
	// ErrNotFound marks references to paths that do not exist.
	ErrNotFound = errors.New("not found")
	// ErrVerification marks a post-copy size check failure. It always aborts
	// the run because it indicates an unreliable filesystem.
	ErrVerification = errors.New("copy verification failed")
	// ErrIO marks fatal read/write failures during copying or archiving.
	ErrIO = errors.New("io error")
)

// Wrap builds an error message that carries component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrIO
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// ExitCode maps an error to the process exit code the CLI should use.
// Validation failures signal differently from operational failures so
// callers can distinguish "you asked wrong" from "the run broke".
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrValidation):
		return 2
	default:
		return 1
	}
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "operation failure"
	}
	return strings.Join(parts, ": ")
}
