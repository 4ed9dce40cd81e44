// Package scanner fingerprints files in parallel and groups them by
// content digest.
package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/fenilsonani/dedup/internal/config"
	"github.com/fenilsonani/dedup/internal/logging"
	"github.com/fenilsonani/dedup/internal/progress"
	"github.com/fenilsonani/dedup/internal/walker"
	"github.com/fenilsonani/dedup/pkg/utils"
)

// Scanner coordinates enumeration, parallel hashing and collision
// grouping. One Scanner may be reused for several scans; each scan builds
// a fresh index.
type Scanner struct {
	cfg              *config.Config
	workerCount      int
	progressReporter *progress.Reporter
}

// hashJob carries a path to a worker along with its dispatch index so the
// coordinator can restore dispatch order after out-of-order completion.
type hashJob struct {
	index int
	path  string
}

// hashResult pairs a worker's FileHash with its dispatch index.
type hashResult struct {
	index int
	file  FileHash
}

// New creates a Scanner. Worker count comes from the config; zero means
// one worker per CPU.
func New(cfg *config.Config) *Scanner {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	return &Scanner{
		cfg:              cfg,
		workerCount:      workers,
		progressReporter: progress.NewReporter(),
	}
}

// SetProgressReporter sets a custom progress reporter
func (s *Scanner) SetProgressReporter(pr *progress.Reporter) {
	s.progressReporter = pr
}

// GetProgressReporter returns the scanner's progress reporter
func (s *Scanner) GetProgressReporter() *progress.Reporter {
	return s.progressReporter
}

// Scan enumerates root, fingerprints every regular file and returns the
// grouped result. The only fatal error is a missing or non-directory
// root; unreadable files are collected in Result.Unreadable.
func (s *Scanner) Scan(root string) (*Result, error) {
	logger := logging.GetLogger("scanner")
	startTime := time.Now()

	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	s.reportHashProgress(progress.PhaseEnumerating, "", 0, 0, 0, 0, startTime)

	paths, err := walker.Walk(root, walker.Options{
		MinFileSize:     s.cfg.MinFileSizeBytes(),
		ExcludePatterns: s.cfg.ExcludePatterns,
	})
	if err != nil {
		return nil, err
	}

	logger.Info().Int("files", len(paths)).Str("root", root).Msg("Enumeration complete, hashing in parallel")

	result := &Result{Root: root}
	index := NewIndex()

	// Aggregation happens exclusively on this goroutine. Workers complete
	// out of order; results are slotted back by dispatch index so the
	// index is populated in dispatch order and grouping stays
	// deterministic.
	ordered := make([]FileHash, len(paths))
	for res := range s.hashAll(paths, startTime) {
		ordered[res.index] = res.file
	}

	for _, fh := range ordered {
		if fh.Digest == "" {
			result.Unreadable = append(result.Unreadable, fh)
			logger.Warn().Err(fh.Err).Str("path", fh.Path).Msg("Could not fingerprint file")
			continue
		}
		result.Files = append(result.Files, fh)
		result.TotalSize += fh.Size
		index.Add(fh)
	}

	result.Groups = index.Collisions()
	result.Duration = time.Since(startTime)

	s.reportHashProgress(progress.PhaseComplete, "", len(result.Files), len(paths),
		result.TotalSize, len(result.Unreadable), startTime)

	logger.Info().
		Int("files", len(result.Files)).
		Int("unreadable", len(result.Unreadable)).
		Int("groups", len(result.Groups)).
		Dur("elapsed", result.Duration).
		Msg("Scan complete")

	return result, nil
}

// hashAll dispatches every path to the worker pool and returns the
// results channel. The channel is closed once all work has drained.
func (s *Scanner) hashAll(paths []string, startTime time.Time) <-chan hashResult {
	jobs := make(chan hashJob, s.workerCount)
	results := make(chan hashResult, s.workerCount)

	var wg sync.WaitGroup
	for i := 0; i < s.workerCount; i++ {
		wg.Add(1)
		go s.worker(jobs, results, &wg)
	}

	go func() {
		for i, path := range paths {
			jobs <- hashJob{index: i, path: path}
		}
		close(jobs)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	out := make(chan hashResult)
	go func() {
		defer close(out)
		done := 0
		var bytesHashed int64
		unreadable := 0
		for res := range results {
			done++
			if res.file.Digest == "" {
				unreadable++
			} else {
				bytesHashed += res.file.Size
			}
			s.reportHashProgress(progress.PhaseHashing, res.file.Path, done, len(paths),
				bytesHashed, unreadable, startTime)
			out <- res
		}
	}()

	return out
}

// worker fingerprints jobs until the channel closes. Workers share no
// state; their only interaction with the rest of the scan is the results
// channel.
func (s *Scanner) worker(jobs <-chan hashJob, results chan<- hashResult, wg *sync.WaitGroup) {
	defer wg.Done()

	for job := range jobs {
		results <- s.hashOne(job)
	}
}

// hashOne fingerprints a single file. Any failure, including a panic in
// the hashing path, is converted into a no-fingerprint result for this
// path so one bad file never takes down the batch.
func (s *Scanner) hashOne(job hashJob) (res hashResult) {
	res = hashResult{index: job.index, file: FileHash{Path: job.path}}

	defer func() {
		if r := recover(); r != nil {
			res.file.Digest = ""
			res.file.Err = fmt.Errorf("hashing %s panicked: %v", job.path, r)
		}
	}()

	info, err := os.Stat(job.path)
	if err != nil {
		res.file.Err = err
		return res
	}

	digest, err := utils.HashFile(job.path)
	if err != nil {
		res.file.Err = err
		return res
	}

	res.file.Digest = digest
	res.file.Size = info.Size()
	return res
}

// reportHashProgress reports hashing progress to listeners
func (s *Scanner) reportHashProgress(phase progress.Phase, currentPath string, hashed, total int, bytes int64, unreadable int, startTime time.Time) {
	if s.progressReporter == nil {
		return
	}

	s.progressReporter.UpdateHashProgress(&progress.HashProgress{
		Phase:       phase,
		CurrentPath: currentPath,
		FilesHashed: hashed,
		FilesTotal:  total,
		BytesHashed: bytes,
		Unreadable:  unreadable,
		StartTime:   startTime,
	})
}
