// Package runlog persists one summary row per organizing run in a local
// SQLite database.
//
// The history is observational only: nothing in the organizing pipeline
// reads it back, so core behaviour stays independent of state from earlier
// runs. The `photozip history` command renders the stored rows.
package runlog
