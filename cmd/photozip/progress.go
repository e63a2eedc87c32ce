package main

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"photozip/internal/organizer"
)

// runProgress renders a file counter while a run is in flight. It stays
// silent when stderr is not a terminal so piped output remains clean.
type runProgress struct {
	bar *progressbar.ProgressBar
}

func newRunProgress(w io.Writer, flags runFlags) *runProgress {
	if !progressEnabled(flags.quiet, flags.dryRun, stderrIsTerminal()) {
		return &runProgress{}
	}
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("processing files"),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{Saucer: "#", SaucerPadding: " ", BarStart: "|", BarEnd: "|"}),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSpinnerType(14),
	)
	return &runProgress{bar: bar}
}

func (p *runProgress) observe(organizer.FileOutcome) {
	if p.bar != nil {
		_ = p.bar.Add(1)
	}
}

func (p *runProgress) finish() {
	if p.bar != nil {
		_ = p.bar.Finish()
	}
}

// progressEnabled decides whether the counter renders. Quiet runs and dry
// runs stay silent; a dry run counts actions that never happen, so a live
// counter would misleadingly suggest work in progress.
func progressEnabled(quiet, dryRun, tty bool) bool {
	return !quiet && !dryRun && tty
}

func stderrIsTerminal() bool {
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
