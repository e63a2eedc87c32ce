package organizer

// FileStatus classifies what happened to one source file.
type FileStatus string

const (
	// FileCopied means the file was copied and verified. In a dry run it
	// means the file would be copied.
	FileCopied FileStatus = "copied"
	// FileSkipped means the target path already existed and was left
	// untouched (first-write-wins).
	FileSkipped FileStatus = "skipped"
	// FileFailed means a fatal error stopped processing at this file.
	FileFailed FileStatus = "failed"
)

// FileOutcome reports the result of processing one file.
type FileOutcome struct {
	Source string
	Target string
	Status FileStatus
	// Err carries the failure reason when Status is FileFailed.
	Err error
}

// GroupResult reports the result of processing one group.
type GroupResult struct {
	Name        string
	FolderPath  string
	ArchivePath string
	Copied      int
	Skipped     int
	Deleted     int
	Outcomes    []FileOutcome
}

// Summary aggregates a whole run.
type Summary struct {
	RunID      string
	DryRun     bool
	Groups     []GroupResult
	Copied     int
	Skipped    int
	Deleted    int
	TotalFiles int
}

// GroupNames returns the processed group identifiers in run order.
func (s *Summary) GroupNames() []string {
	names := make([]string, 0, len(s.Groups))
	for _, g := range s.Groups {
		names = append(names, g.Name)
	}
	return names
}
