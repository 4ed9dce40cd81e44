// Package gen creates synthetic directory trees with a controlled share
// of byte-identical files, for exercising the scanner against realistic
// layouts.
package gen

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
)

const nameCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

const textCharset = nameCharset + ".,;:!?-_()[]{}#@$%&*+=/ "

var extensions = []string{
	".mov", ".mp4", ".pdf", ".jpg", ".png", ".c", ".cpp", ".js", ".rs", ".docx", ".txt",
}

// Options controls the shape and content of the generated tree.
type Options struct {
	Dirs         int   // subdirectories per directory
	FilesPerDir  int   // files per directory; also the duplicate cluster size
	Depth        int   // directory nesting depth
	TextLength   int   // bytes of content per file
	DuplicatePct int   // percentage of files that share content with another
	Seed         int64 // 0 seeds from entropy; fixed seeds reproduce trees
}

// DefaultOptions returns the generator defaults.
func DefaultOptions() Options {
	return Options{
		Dirs:         2,
		FilesPerDir:  10,
		Depth:        5,
		TextLength:   100,
		DuplicatePct: 20,
	}
}

// Summary describes what was generated.
type Summary struct {
	TotalFiles     int
	DuplicateFiles int
	Clusters       int // duplicate clusters, each sharing one content
}

// Generate builds the tree under root, creating it if needed.
func Generate(root string, opts Options) (*Summary, error) {
	if opts.Dirs <= 0 || opts.FilesPerDir <= 0 || opts.Depth <= 0 {
		return nil, fmt.Errorf("dirs, files and depth must all be positive")
	}
	if opts.DuplicatePct < 0 || opts.DuplicatePct > 100 {
		return nil, fmt.Errorf("duplicate percentage must be within 0-100")
	}
	if opts.TextLength <= 0 {
		opts.TextLength = 100
	}

	var rng *rand.Rand
	if opts.Seed != 0 {
		rng = rand.New(rand.NewSource(opts.Seed))
	} else {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}

	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, err
	}

	paths, err := layoutPaths(rng, root, opts, 0)
	if err != nil {
		return nil, err
	}

	return populate(rng, paths, opts)
}

// layoutPaths creates the directory structure and returns the planned
// file paths without writing any contents yet.
func layoutPaths(rng *rand.Rand, base string, opts Options, depth int) ([]string, error) {
	if depth >= opts.Depth {
		return nil, nil
	}

	var paths []string
	for i := 0; i < opts.Dirs; i++ {
		dir := filepath.Join(base, randomName(rng, 8))
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}

		for j := 0; j < opts.FilesPerDir; j++ {
			name := randomName(rng, 8) + extensions[rng.Intn(len(extensions))]
			paths = append(paths, filepath.Join(dir, name))
		}

		sub, err := layoutPaths(rng, dir, opts, depth+1)
		if err != nil {
			return nil, err
		}
		paths = append(paths, sub...)
	}

	return paths, nil
}

// populate writes file contents, duplicating content across clusters of
// FilesPerDir files until the requested percentage is reached.
func populate(rng *rand.Rand, paths []string, opts Options) (*Summary, error) {
	total := len(paths)
	numDuplicates := total * opts.DuplicatePct / 100
	clusters := numDuplicates / opts.FilesPerDir

	rng.Shuffle(total, func(i, j int) {
		paths[i], paths[j] = paths[j], paths[i]
	})

	summary := &Summary{TotalFiles: total, Clusters: clusters}

	next := 0
	for c := 0; c < clusters; c++ {
		content := randomText(rng, opts.TextLength)
		for k := 0; k < opts.FilesPerDir && next < total; k++ {
			if err := os.WriteFile(paths[next], content, 0644); err != nil {
				return nil, err
			}
			next++
			summary.DuplicateFiles++
		}
	}

	for ; next < total; next++ {
		if err := os.WriteFile(paths[next], randomText(rng, opts.TextLength), 0644); err != nil {
			return nil, err
		}
	}

	return summary, nil
}

func randomName(rng *rand.Rand, length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = nameCharset[rng.Intn(len(nameCharset))]
	}
	return string(b)
}

func randomText(rng *rand.Rand, length int) []byte {
	b := make([]byte, length)
	for i := range b {
		b[i] = textCharset[rng.Intn(len(textCharset))]
	}
	return b
}
