package gen

import (
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/fenilsonani/dedup/pkg/utils"
)

func countFiles(t *testing.T, root string) int {
	t.Helper()

	count := 0
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			count++
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	return count
}

func TestGenerateFileCount(t *testing.T) {
	root := t.TempDir()

	opts := Options{Dirs: 2, FilesPerDir: 4, Depth: 3, TextLength: 50, DuplicatePct: 0, Seed: 42}
	summary, err := Generate(root, opts)
	if err != nil {
		t.Fatal(err)
	}

	// 2 + 4 + 8 directories, 4 files each.
	want := (2 + 4 + 8) * 4
	if summary.TotalFiles != want {
		t.Errorf("summary reports %d files, want %d", summary.TotalFiles, want)
	}
	if got := countFiles(t, root); got != want {
		t.Errorf("on disk: %d files, want %d", got, want)
	}
}

func TestGenerateDuplicateClusters(t *testing.T) {
	root := t.TempDir()

	opts := Options{Dirs: 2, FilesPerDir: 5, Depth: 2, TextLength: 80, DuplicatePct: 50, Seed: 7}
	summary, err := Generate(root, opts)
	if err != nil {
		t.Fatal(err)
	}

	// total = (2+4)*5 = 30; 50% -> 15 duplicate slots -> 3 clusters of 5.
	if summary.Clusters != 3 {
		t.Errorf("clusters = %d, want 3", summary.Clusters)
	}
	if summary.DuplicateFiles != 15 {
		t.Errorf("duplicate files = %d, want 15", summary.DuplicateFiles)
	}

	// Verify on disk: hash every file and count digests seen more than once.
	digests := make(map[string]int)
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.Type().IsRegular() {
			return err
		}
		digest, err := utils.HashFile(path)
		if err != nil {
			return err
		}
		digests[digest]++
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	clusters := 0
	duplicated := 0
	for _, n := range digests {
		if n > 1 {
			clusters++
			duplicated += n
		}
	}
	if clusters != summary.Clusters {
		t.Errorf("on-disk clusters = %d, summary says %d", clusters, summary.Clusters)
	}
	if duplicated != summary.DuplicateFiles {
		t.Errorf("on-disk duplicated files = %d, summary says %d", duplicated, summary.DuplicateFiles)
	}
}

func TestGenerateZeroDuplicates(t *testing.T) {
	root := t.TempDir()

	summary, err := Generate(root, Options{Dirs: 1, FilesPerDir: 6, Depth: 2, TextLength: 64, Seed: 3})
	if err != nil {
		t.Fatal(err)
	}
	if summary.DuplicateFiles != 0 || summary.Clusters != 0 {
		t.Errorf("expected no duplicates, got %+v", summary)
	}
}

func TestGenerateReproducibleWithSeed(t *testing.T) {
	opts := Options{Dirs: 2, FilesPerDir: 3, Depth: 2, TextLength: 40, DuplicatePct: 30, Seed: 99}

	rootA := t.TempDir()
	rootB := t.TempDir()

	sumA, err := Generate(rootA, opts)
	if err != nil {
		t.Fatal(err)
	}
	sumB, err := Generate(rootB, opts)
	if err != nil {
		t.Fatal(err)
	}

	if *sumA != *sumB {
		t.Errorf("same seed produced different summaries: %+v vs %+v", sumA, sumB)
	}
}

func TestGenerateRejectsBadOptions(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"zero dirs", Options{Dirs: 0, FilesPerDir: 1, Depth: 1}},
		{"zero files", Options{Dirs: 1, FilesPerDir: 0, Depth: 1}},
		{"zero depth", Options{Dirs: 1, FilesPerDir: 1, Depth: 0}},
		{"pct too high", Options{Dirs: 1, FilesPerDir: 1, Depth: 1, DuplicatePct: 101}},
		{"pct negative", Options{Dirs: 1, FilesPerDir: 1, Depth: 1, DuplicatePct: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Generate(t.TempDir(), tt.opts); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
