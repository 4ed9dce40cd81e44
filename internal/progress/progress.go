package progress

import (
	"fmt"
	"sync"
	"time"

	"github.com/fenilsonani/dedup/pkg/utils"
)

// Phase represents the current phase of operation
type Phase string

const (
	PhaseEnumerating Phase = "enumerating"
	PhaseHashing     Phase = "hashing"
	PhaseDeleting    Phase = "deleting"
	PhaseComplete    Phase = "complete"
	PhaseError       Phase = "error"
)

// HashProgress represents progress while fingerprinting files
type HashProgress struct {
	Phase       Phase
	CurrentPath string
	FilesHashed int
	FilesTotal  int
	BytesHashed int64
	Unreadable  int
	StartTime   time.Time
	Error       error
}

// DeleteProgress represents progress while deleting duplicates
type DeleteProgress struct {
	Phase        Phase
	CurrentFile  string
	DeletedFiles int
	TotalFiles   int
	DeletedSize  int64
	FailedFiles  int
	StartTime    time.Time
	Error        error
}

// Reporter provides thread-safe progress reporting. Producers publish
// updates; any number of listeners receive them on buffered channels.
// Slow listeners drop updates instead of blocking the pipeline.
type Reporter struct {
	hashProgress   *HashProgress
	deleteProgress *DeleteProgress
	mu             sync.RWMutex
	listeners      []chan interface{}
}

// NewReporter creates a new progress reporter
func NewReporter() *Reporter {
	return &Reporter{
		listeners: make([]chan interface{}, 0),
	}
}

// Subscribe returns a channel that receives progress updates
func (pr *Reporter) Subscribe() <-chan interface{} {
	pr.mu.Lock()
	defer pr.mu.Unlock()

	ch := make(chan interface{}, 10)
	pr.listeners = append(pr.listeners, ch)
	return ch
}

// Unsubscribe closes and removes a listener channel
func (pr *Reporter) Unsubscribe(ch <-chan interface{}) {
	pr.mu.Lock()
	defer pr.mu.Unlock()

	for i, listener := range pr.listeners {
		if listener == ch {
			close(listener)
			pr.listeners = append(pr.listeners[:i], pr.listeners[i+1:]...)
			return
		}
	}
}

// UpdateHashProgress updates hashing progress and notifies listeners
func (pr *Reporter) UpdateHashProgress(update *HashProgress) {
	pr.mu.Lock()
	pr.hashProgress = update
	listeners := make([]chan interface{}, len(pr.listeners))
	copy(listeners, pr.listeners)
	pr.mu.Unlock()

	for _, listener := range listeners {
		select {
		case listener <- update:
		default:
		}
	}
}

// UpdateDeleteProgress updates deletion progress and notifies listeners
func (pr *Reporter) UpdateDeleteProgress(update *DeleteProgress) {
	pr.mu.Lock()
	pr.deleteProgress = update
	listeners := make([]chan interface{}, len(pr.listeners))
	copy(listeners, pr.listeners)
	pr.mu.Unlock()

	for _, listener := range listeners {
		select {
		case listener <- update:
		default:
		}
	}
}

// GetHashProgress returns the current hashing progress
func (pr *Reporter) GetHashProgress() *HashProgress {
	pr.mu.RLock()
	defer pr.mu.RUnlock()
	return pr.hashProgress
}

// GetDeleteProgress returns the current deletion progress
func (pr *Reporter) GetDeleteProgress() *DeleteProgress {
	pr.mu.RLock()
	defer pr.mu.RUnlock()
	return pr.deleteProgress
}

// FormatHashProgress returns a human-readable hashing progress string
func FormatHashProgress(p *HashProgress) string {
	if p == nil {
		return "Initializing..."
	}

	elapsed := time.Since(p.StartTime)

	switch p.Phase {
	case PhaseEnumerating:
		return "Gathering file paths..."
	case PhaseHashing:
		return fmt.Sprintf("Hashing... %d/%d files (%s) [%s]",
			p.FilesHashed,
			p.FilesTotal,
			utils.FormatBytes(p.BytesHashed),
			FormatDuration(elapsed))
	case PhaseComplete:
		return fmt.Sprintf("Hashed %d files (%s) in %s",
			p.FilesHashed,
			utils.FormatBytes(p.BytesHashed),
			FormatDuration(elapsed))
	case PhaseError:
		return fmt.Sprintf("Scan error: %v", p.Error)
	default:
		return "Scanning..."
	}
}

// FormatDeleteProgress returns a human-readable deletion progress string
func FormatDeleteProgress(p *DeleteProgress) string {
	if p == nil {
		return "Preparing..."
	}

	elapsed := time.Since(p.StartTime)

	switch p.Phase {
	case PhaseDeleting:
		percentage := 0
		if p.TotalFiles > 0 {
			percentage = (p.DeletedFiles * 100) / p.TotalFiles
		}
		return fmt.Sprintf("Deleting... %d/%d files (%d%%) - %s freed",
			p.DeletedFiles,
			p.TotalFiles,
			percentage,
			utils.FormatBytes(p.DeletedSize))
	case PhaseComplete:
		return fmt.Sprintf("Deleted %d files (%s) in %s",
			p.DeletedFiles,
			utils.FormatBytes(p.DeletedSize),
			FormatDuration(elapsed))
	case PhaseError:
		return fmt.Sprintf("Deletion error: %v", p.Error)
	default:
		return "Preparing deletion..."
	}
}

// FormatDuration formats duration in human-readable format
func FormatDuration(d time.Duration) string {
	d = d.Round(time.Second)

	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%dm%ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm%ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}
