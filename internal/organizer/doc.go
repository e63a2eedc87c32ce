// Package organizer copies matched files into per-group folders and archives
// each folder.
//
// It drives the whole per-run sequence: scan the source through the matcher,
// ensure a destination folder per group, apply the per-file protocol
// (collision check, metadata-preserving copy, size verification, optional
// deletion of the original), then archive the folder. Collisions always skip
// so repeated runs against the same destination are first-write-wins.
// Verification mismatches and archive I/O failures abort the run; everything
// already written stays on disk.
package organizer
