// Package walker enumerates the regular files under a directory tree.
package walker

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fenilsonani/dedup/internal/logging"
)

// ErrNotDirectory is returned when the scan root does not exist or is not
// a directory. It is the only fatal enumeration error; everything below
// the root is skipped and logged instead.
var ErrNotDirectory = errors.New("directory not found")

// Options controls which files the walk reports.
type Options struct {
	MinFileSize     int64    // files smaller than this are ignored (0 = no limit)
	ExcludePatterns []string // glob patterns matched against the full path and base name
}

// Walk returns the absolute path of every regular file reachable from root
// by recursive descent, in filesystem-listing order. Directories and
// non-regular entries (symlinks, devices, sockets) are excluded, but
// traversal still descends into subdirectories. Subtrees that cannot be
// read are skipped with a warning rather than aborting the walk.
func Walk(root string, opts Options) ([]string, error) {
	logger := logging.GetLogger("walker")

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(absRoot)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, root)
	}

	var paths []string
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Permission denied or the entry vanished mid-walk. Skip the
			// subtree and keep going.
			logger.Warn().Err(err).Str("path", path).Msg("Skipping unreadable entry")
			return nil
		}

		if d.IsDir() {
			return nil
		}

		// Symlinks, devices, sockets and the like are not duplicate
		// candidates.
		if !d.Type().IsRegular() {
			logger.Debug().Str("path", path).Msg("Skipping non-regular file")
			return nil
		}

		if excluded(path, opts.ExcludePatterns) {
			logger.Debug().Str("path", path).Msg("Skipping excluded file")
			return nil
		}

		if opts.MinFileSize > 0 {
			fi, err := d.Info()
			if err != nil {
				logger.Warn().Err(err).Str("path", path).Msg("Skipping unstattable file")
				return nil
			}
			if fi.Size() < opts.MinFileSize {
				return nil
			}
		}

		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return paths, nil
}

func excluded(path string, patterns []string) bool {
	base := filepath.Base(path)
	for _, pattern := range patterns {
		if matched, _ := filepath.Match(pattern, path); matched {
			return true
		}
		if matched, _ := filepath.Match(pattern, base); matched {
			return true
		}
	}
	return false
}
