// Package errkind defines the error markers shared by the matcher, organizer,
// and archive components.
//
// Key responsibilities:
//   - Sentinel errors that classify failures (validation vs not-found vs
//     verification vs plain I/O).
//   - The Wrap helper that tags an error with a marker while recording which
//     component and operation produced it.
//   - The exit-code mapping the CLI uses so validation failures signal
//     differently from operational ones.
//
// Use these helpers when adding new operations so error classification stays
// uniform across the tool.
package errkind
