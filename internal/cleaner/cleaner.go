// Package cleaner deletes the files the retention policy marked as
// duplicates.
package cleaner

import (
	"os"
	"time"

	"github.com/fenilsonani/dedup/internal/logging"
	"github.com/fenilsonani/dedup/internal/progress"
	"github.com/fenilsonani/dedup/internal/scanner"
	"github.com/fenilsonani/dedup/internal/security"
)

// Outcome is the per-path result of one deletion attempt. Err is nil on
// success.
type Outcome struct {
	Path string
	Size int64
	Err  *DeletionError
}

// Result represents the outcome of a deletion run. Outcomes holds one
// entry per attempted path, in attempt order.
type Result struct {
	Outcomes    []Outcome
	DeletedSize int64
	Deleted     int
	Failed      int
	DryRun      bool
}

// Errors returns the failed outcomes' errors, in attempt order.
func (r *Result) Errors() []*DeletionError {
	var errs []*DeletionError
	for _, o := range r.Outcomes {
		if o.Err != nil {
			errs = append(errs, o.Err)
		}
	}
	return errs
}

// Cleaner removes duplicate files. Failures are recorded per path and
// never abort the batch; nothing is ever retried.
type Cleaner struct {
	validator        *security.PathValidator
	dryRun           bool
	progressReporter *progress.Reporter
}

// New creates a Cleaner scoped to the scanned root. Paths outside the
// root are refused.
func New(root string, dryRun bool) *Cleaner {
	return &Cleaner{
		validator:        security.NewPathValidator(root),
		dryRun:           dryRun,
		progressReporter: progress.NewReporter(),
	}
}

// SetProgressReporter sets a custom progress reporter
func (c *Cleaner) SetProgressReporter(pr *progress.Reporter) {
	c.progressReporter = pr
}

// GetProgressReporter returns the cleaner's progress reporter
func (c *Cleaner) GetProgressReporter() *progress.Reporter {
	return c.progressReporter
}

// Delete attempts to remove every file in order. In dry-run mode nothing
// is removed; every path is reported as a would-be success.
func (c *Cleaner) Delete(files []scanner.FileHash) *Result {
	logger := logging.GetLogger("cleaner")
	startTime := time.Now()

	result := &Result{DryRun: c.dryRun}

	var totalSize int64
	for _, f := range files {
		totalSize += f.Size
	}

	c.reportDeleteProgress(progress.PhaseDeleting, "", 0, len(files), 0, 0, startTime)

	for _, file := range files {
		outcome := Outcome{Path: file.Path, Size: file.Size}

		if !c.dryRun {
			outcome.Err = c.deleteFile(file)
		}

		if outcome.Err == nil {
			result.Deleted++
			result.DeletedSize += file.Size
			logger.Debug().Str("path", file.Path).Msg("Deleted duplicate")
		} else {
			result.Failed++
			logger.Warn().Err(outcome.Err).Str("path", file.Path).Msg("Could not delete duplicate")
		}

		result.Outcomes = append(result.Outcomes, outcome)

		c.reportDeleteProgress(progress.PhaseDeleting, file.Path, result.Deleted,
			len(files), result.DeletedSize, result.Failed, startTime)
	}

	c.reportDeleteProgress(progress.PhaseComplete, "", result.Deleted,
		len(files), result.DeletedSize, result.Failed, startTime)

	return result
}

// deleteFile removes a single file after re-validating it.
func (c *Cleaner) deleteFile(file scanner.FileHash) *DeletionError {
	if err := c.validator.ValidateForDeletion(file.Path); err != nil {
		return &DeletionError{
			Path:     file.Path,
			Reason:   ErrorInvalidPath,
			Original: err,
		}
	}

	// Lstat, not Stat: if the entry was swapped for a symlink between
	// scan and delete, removing it must not follow the link's target.
	info, err := os.Lstat(file.Path)
	if err != nil {
		return CategorizeError(file.Path, err)
	}

	if !info.Mode().IsRegular() {
		return &DeletionError{
			Path:     file.Path,
			Reason:   ErrorInvalidPath,
			Original: os.ErrInvalid,
		}
	}

	if err := os.Remove(file.Path); err != nil {
		return CategorizeError(file.Path, err)
	}

	return nil
}

// reportDeleteProgress reports deletion progress to listeners
func (c *Cleaner) reportDeleteProgress(phase progress.Phase, currentFile string, deleted, total int, deletedSize int64, failed int, startTime time.Time) {
	if c.progressReporter == nil {
		return
	}

	c.progressReporter.UpdateDeleteProgress(&progress.DeleteProgress{
		Phase:        phase,
		CurrentFile:  currentFile,
		DeletedFiles: deleted,
		TotalFiles:   total,
		DeletedSize:  deletedSize,
		FailedFiles:  failed,
		StartTime:    startTime,
	})
}
