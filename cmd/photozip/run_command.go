package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"photozip/internal/config"
	"photozip/internal/errkind"
	"photozip/internal/logging"
	"photozip/internal/matcher"
	"photozip/internal/organizer"
	"photozip/internal/runlog"
)

const lockFileName = "photozip.lock"

type runFlags struct {
	source          string
	pattern         string
	output          string
	dryRun          bool
	deleteOriginals bool
	zipOnly         bool
	quiet           bool
	verbose         bool
}

func newRunCommand(ctx *commandContext) *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Copy matching files into per-group folders and archive each folder",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			return executeRun(cmd, cfg, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.source, "source", "s", "", "Directory to scan for matching files")
	cmd.Flags().StringVarP(&flags.pattern, "pattern", "p", "", "Regular expression that extracts the group name")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Directory that receives group folders and archives")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Report planned actions without touching source or output (the run is still recorded in history)")
	cmd.Flags().BoolVar(&flags.deleteOriginals, "delete-originals", false, "Remove each source file after its copy is verified")
	cmd.Flags().BoolVar(&flags.zipOnly, "zip-only", false, "Keep only the archives, removing the group folders")
	cmd.Flags().BoolVarP(&flags.quiet, "quiet", "q", false, "Only log warnings and errors")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "Log debug detail")

	return cmd
}

func executeRun(cmd *cobra.Command, cfg *config.Config, flags runFlags) error {
	if err := validateRunFlags(flags); err != nil {
		return err
	}

	source, err := filepath.Abs(flags.source)
	if err != nil {
		return errkind.Wrap(errkind.ErrValidation, "cli", "resolve source", flags.source, err)
	}
	output, err := filepath.Abs(flags.output)
	if err != nil {
		return errkind.Wrap(errkind.ErrValidation, "cli", "resolve output", flags.output, err)
	}

	applyVerbosity(cfg, flags)

	// Reject bad input before the destination gains a directory, a lock
	// file, or a log file.
	if _, err := matcher.ValidatePattern(flags.pattern); err != nil {
		return err
	}
	if err := organizer.ValidateSource(source); err != nil {
		return err
	}

	logger, release, err := prepareRunEnvironment(cfg, output, flags.dryRun)
	if err != nil {
		return err
	}
	defer release()

	runID := uuid.NewString()
	runCtx := logging.WithRunID(cmd.Context(), runID)
	logger = logging.WithContext(runCtx, logger)

	bar := newRunProgress(cmd.ErrOrStderr(), flags)
	req := organizer.Request{
		RunID:           runID,
		Source:          source,
		Pattern:         flags.pattern,
		OutputDir:       output,
		DryRun:          flags.dryRun,
		DeleteOriginals: flags.deleteOriginals,
		ZipOnly:         flags.zipOnly,
		OnFile:          bar.observe,
	}

	started := time.Now()
	summary, runErr := organizer.New(cfg, logger).Run(runCtx, req)
	bar.finish()

	recordHistory(runCtx, cfg, logger, req, started, summary, runErr)

	if runErr == nil && summary != nil {
		printSummary(cmd, summary)
	}
	return runErr
}

func validateRunFlags(flags runFlags) error {
	if flags.source == "" {
		return errkind.Wrap(errkind.ErrValidation, "cli", "validate flags", "a source directory is required (--source)", nil)
	}
	if flags.pattern == "" {
		return errkind.Wrap(errkind.ErrValidation, "cli", "validate flags", "a pattern is required (--pattern)", nil)
	}
	if flags.output == "" {
		return errkind.Wrap(errkind.ErrValidation, "cli", "validate flags", "an output directory is required (--output)", nil)
	}
	if flags.quiet && flags.verbose {
		return errkind.Wrap(errkind.ErrValidation, "cli", "validate flags", "--quiet and --verbose are mutually exclusive", nil)
	}
	if flags.dryRun && flags.deleteOriginals {
		return errkind.Wrap(errkind.ErrValidation, "cli", "validate flags", "--dry-run cannot be combined with --delete-originals", nil)
	}
	if flags.dryRun && flags.zipOnly {
		return errkind.Wrap(errkind.ErrValidation, "cli", "validate flags", "--dry-run cannot be combined with --zip-only", nil)
	}
	return nil
}

func applyVerbosity(cfg *config.Config, flags runFlags) {
	switch {
	case flags.quiet:
		cfg.Logging.Level = "warn"
	case flags.verbose:
		cfg.Logging.Level = "debug"
	}
}

// prepareRunEnvironment creates the output directory, takes the run lock,
// and opens the run logger. A dry run leaves the destination untouched and
// logs to stderr only.
func prepareRunEnvironment(cfg *config.Config, output string, dryRun bool) (logger *slog.Logger, release func(), err error) {
	if dryRun {
		l, err := logging.New(logging.Options{
			Level:       cfg.Logging.Level,
			Format:      cfg.Logging.Format,
			OutputPaths: []string{"stderr"},
		})
		if err != nil {
			return nil, nil, err
		}
		return l, func() {}, nil
	}

	if err := os.MkdirAll(output, 0o755); err != nil {
		return nil, nil, errkind.Wrap(errkind.ErrIO, "cli", "create output directory", output, err)
	}

	lock := flock.New(filepath.Join(output, lockFileName))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, nil, errkind.Wrap(errkind.ErrIO, "cli", "acquire run lock", output, err)
	}
	if !ok {
		return nil, nil, errkind.Wrap(errkind.ErrValidation, "cli", "acquire run lock",
			fmt.Sprintf("another photozip run is already writing to %s", output), nil)
	}

	l, err := logging.NewForRun(cfg, output)
	if err != nil {
		_ = lock.Unlock()
		return nil, nil, err
	}
	return l, func() { _ = lock.Unlock() }, nil
}

func recordHistory(ctx context.Context, cfg *config.Config, logger *slog.Logger, req organizer.Request, started time.Time, summary *organizer.Summary, runErr error) {
	if !cfg.History.Enabled {
		return
	}
	store, err := runlog.Open(cfg.History.Path)
	if err != nil {
		logger.Warn("open run history", logging.Error(err))
		return
	}
	defer store.Close()

	run := runlog.Run{
		ID:         req.RunID,
		StartedAt:  started,
		FinishedAt: time.Now(),
		Source:     req.Source,
		Pattern:    req.Pattern,
		OutputDir:  req.OutputDir,
		DryRun:     req.DryRun,
		Status:     runlog.StatusCompleted,
	}
	if summary != nil {
		run.GroupCount = len(summary.Groups)
		run.Copied = summary.Copied
		run.Skipped = summary.Skipped
		run.Deleted = summary.Deleted
	}
	if runErr != nil {
		run.Status = runlog.StatusFailed
		run.ErrorMessage = runErr.Error()
	}
	if err := store.Record(ctx, run); err != nil {
		logger.Warn("record run history", logging.Error(err))
	}
}

func printSummary(cmd *cobra.Command, summary *organizer.Summary) {
	out := cmd.OutOrStdout()

	if len(summary.Groups) == 0 {
		fmt.Fprintln(out, "No files matched the pattern; nothing to do.")
		return
	}

	rows := make([][]string, 0, len(summary.Groups))
	for _, group := range summary.Groups {
		rows = append(rows, []string{
			group.Name,
			strconv.Itoa(len(group.Outcomes)),
			strconv.Itoa(group.Copied),
			strconv.Itoa(group.Skipped),
			strconv.Itoa(group.Deleted),
			filepath.Base(group.ArchivePath),
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Group", "Files", "Copied", "Skipped", "Deleted", "Archive"},
		rows,
		1, 2, 3, 4,
	))

	verb := "Copied"
	if summary.DryRun {
		verb = "Would copy"
	}
	fmt.Fprintf(out, "%s %d of %d files (%d skipped, %d originals removed)\n",
		verb, summary.Copied, summary.TotalFiles, summary.Skipped, summary.Deleted)
}
