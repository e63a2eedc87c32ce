package organizer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"photozip/internal/archive"
	"photozip/internal/config"
	"photozip/internal/errkind"
	"photozip/internal/fileutil"
	"photozip/internal/logging"
	"photozip/internal/matcher"
)

// ArchiveExtension is appended to the group identifier to form the archive
// filename next to the group folder.
const ArchiveExtension = ".zip"

// Request describes one organizing run.
type Request struct {
	RunID     string
	Source    string
	Pattern   string
	OutputDir string
	// DryRun computes and reports the full plan without touching the
	// filesystem.
	DryRun bool
	// DeleteOriginals removes each source file after its copy verifies.
	DeleteOriginals bool
	// ZipOnly removes each group folder once its archive is written,
	// keeping only the archives.
	ZipOnly bool
	// OnFile, when set, receives every per-file outcome as it happens.
	OnFile func(FileOutcome)
}

// Organizer drives the scan, copy, verify, and archive sequence for a run.
// Processing is sequential: one group at a time, one file at a time.
type Organizer struct {
	cfg    *config.Config
	logger *slog.Logger
}

// New constructs an Organizer. A nil logger disables logging.
func New(cfg *config.Config, logger *slog.Logger) *Organizer {
	return &Organizer{cfg: cfg, logger: logging.NewComponentLogger(logger, "organizer")}
}

// Run executes the request. The returned summary covers everything processed
// up to the point of return, so callers get usable counts even when err is
// non-nil. Fatal errors (copy failure, verification mismatch, archive I/O)
// stop the run; collisions and failed deletions are absorbed into the
// summary. Already-written groups are never rolled back.
func (o *Organizer) Run(ctx context.Context, req Request) (*Summary, error) {
	summary := &Summary{RunID: req.RunID, DryRun: req.DryRun}
	logger := logging.WithContext(ctx, o.logger)

	re, err := matcher.ValidatePattern(req.Pattern)
	if err != nil {
		return summary, err
	}
	if err := ValidateSource(req.Source); err != nil {
		return summary, err
	}

	logger.Info("scanning source directory",
		logging.String("source", req.Source),
		logging.String("pattern", req.Pattern))

	groups, err := matcher.Scan(req.Source, re)
	if err != nil {
		return summary, err
	}
	if len(groups) == 0 {
		logger.Info("no files matched the pattern")
		return summary, nil
	}
	for _, group := range groups {
		summary.TotalFiles += len(group.Files)
	}
	logger.Info("scan finished",
		logging.Int("groups", len(groups)),
		logging.Int("files", summary.TotalFiles))

	for _, group := range groups {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		result, err := o.processGroup(ctx, req, group)
		if result != nil {
			summary.Groups = append(summary.Groups, *result)
			summary.Copied += result.Copied
			summary.Skipped += result.Skipped
			summary.Deleted += result.Deleted
		}
		if err != nil {
			return summary, err
		}
	}

	return summary, nil
}

func (o *Organizer) processGroup(ctx context.Context, req Request, group matcher.Group) (*GroupResult, error) {
	ctx = logging.WithGroupName(ctx, group.Name)
	logger := logging.WithContext(ctx, o.logger)

	result := &GroupResult{
		Name:        group.Name,
		FolderPath:  filepath.Join(req.OutputDir, group.Name),
		ArchivePath: filepath.Join(req.OutputDir, group.Name+ArchiveExtension),
	}

	logger.Info("processing group", logging.Int("files", len(group.Files)))

	if req.DryRun {
		logger.Info("dry run: would create folder", logging.String("folder", result.FolderPath))
	} else {
		if err := os.MkdirAll(result.FolderPath, 0o755); err != nil {
			return result, errkind.Wrap(errkind.ErrIO, "organizer", "create folder", result.FolderPath, err)
		}
	}

	for _, file := range group.Files {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if err := o.processFile(ctx, req, file, result); err != nil {
			return result, err
		}
	}

	if req.DryRun {
		logger.Info("dry run: would create archive", logging.String("archive", result.ArchivePath))
		if req.ZipOnly {
			logger.Info("dry run: would remove folder", logging.String("folder", result.FolderPath))
		}
		return result, nil
	}

	if err := archive.Create(result.FolderPath, result.ArchivePath, o.cfg.Archive.CompressionLevel); err != nil {
		return result, err
	}
	logger.Info("created archive", logging.String("archive", filepath.Base(result.ArchivePath)))

	if req.ZipOnly {
		if err := os.RemoveAll(result.FolderPath); err != nil {
			return result, errkind.Wrap(errkind.ErrIO, "organizer", "remove folder", result.FolderPath, err)
		}
		logger.Info("removed folder", logging.String("folder", group.Name))
	}

	return result, nil
}

// processFile runs the per-file protocol: collision check, copy with
// metadata, size verification, optional deletion of the original.
func (o *Organizer) processFile(ctx context.Context, req Request, file matcher.SourceFile, result *GroupResult) error {
	logger := logging.WithContext(ctx, o.logger).With(logging.String(logging.FieldFile, file.Name))
	target := filepath.Join(result.FolderPath, file.Name)

	record := func(outcome FileOutcome) {
		result.Outcomes = append(result.Outcomes, outcome)
		if req.OnFile != nil {
			req.OnFile(outcome)
		}
	}

	if targetExists(target) {
		logger.Info("skipping duplicate")
		result.Skipped++
		record(FileOutcome{Source: file.Path, Target: target, Status: FileSkipped})
		return nil
	}

	if req.DryRun {
		logger.Info("dry run: would copy", logging.String("target", target))
		result.Copied++
		record(FileOutcome{Source: file.Path, Target: target, Status: FileCopied})
		return nil
	}

	fail := func(err error) error {
		record(FileOutcome{Source: file.Path, Target: target, Status: FileFailed, Err: err})
		return err
	}

	if err := fileutil.CopyFilePreserving(file.Path, target); err != nil {
		logger.Error("copy failed", logging.Error(err))
		return fail(errkind.Wrap(errkind.ErrIO, "organizer", "copy", file.Name, err))
	}

	ok, err := fileutil.VerifyCopy(file.Path, target)
	if err != nil {
		logger.Error("verification errored", logging.Error(err))
		return fail(errkind.Wrap(errkind.ErrIO, "organizer", "verify", file.Name, err))
	}
	if !ok {
		logger.Error("copy verification failed")
		return fail(errkind.Wrap(errkind.ErrVerification, "organizer", "verify", fmt.Sprintf("%s: target size differs from source", file.Name), nil))
	}

	logger.Debug("copied", logging.String("target", target))
	result.Copied++
	record(FileOutcome{Source: file.Path, Target: target, Status: FileCopied})

	if req.DeleteOriginals {
		if err := os.Remove(file.Path); err != nil {
			// Reported, not fatal: the copy is already safe at the target.
			logger.Warn("delete original failed", logging.Error(err))
		} else {
			logger.Debug("deleted original")
			result.Deleted++
		}
	}

	return nil
}

// ValidateSource checks that source exists and is a directory. Run performs
// the same check, but callers that must avoid touching the destination on
// bad input can invoke it up front.
func ValidateSource(source string) error {
	info, err := os.Stat(source)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return errkind.Wrap(errkind.ErrValidation, "organizer", "validate source", fmt.Sprintf("source directory does not exist: %s", source), nil)
		}
		return errkind.Wrap(errkind.ErrIO, "organizer", "validate source", source, err)
	}
	if !info.IsDir() {
		return errkind.Wrap(errkind.ErrValidation, "organizer", "validate source", fmt.Sprintf("source path is not a directory: %s", source), nil)
	}
	return nil
}

func targetExists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
