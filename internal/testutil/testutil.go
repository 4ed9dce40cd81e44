// Package testutil provides test helpers and fixtures for dedup tests.
// All file operations use t.TempDir() for safe, isolated testing.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// TestFixture holds the root of an isolated on-disk test tree
type TestFixture struct {
	T       *testing.T
	RootDir string // Root temp directory (auto-cleaned)
}

// NewFixture creates a new test fixture rooted in a temp directory
func NewFixture(t *testing.T) *TestFixture {
	t.Helper()

	return &TestFixture{
		T:       t,
		RootDir: t.TempDir(),
	}
}

// =============================================================================
// File Creation Helpers
// =============================================================================

// CreateFile creates a file with specified content and returns its path
func (f *TestFixture) CreateFile(relPath string, content []byte) string {
	f.T.Helper()

	fullPath := filepath.Join(f.RootDir, relPath)
	dir := filepath.Dir(fullPath)

	if err := os.MkdirAll(dir, 0755); err != nil {
		f.T.Fatalf("failed to create directory %s: %v", dir, err)
	}

	if err := os.WriteFile(fullPath, content, 0644); err != nil {
		f.T.Fatalf("failed to create file %s: %v", fullPath, err)
	}

	return fullPath
}

// CreateDuplicateSet writes the same content to several relative paths
// and returns their absolute paths in argument order
func (f *TestFixture) CreateDuplicateSet(content []byte, relPaths ...string) []string {
	f.T.Helper()

	paths := make([]string, len(relPaths))
	for i, relPath := range relPaths {
		paths[i] = f.CreateFile(relPath, content)
	}
	return paths
}

// CreateDir creates a directory and returns its path
func (f *TestFixture) CreateDir(relPath string) string {
	f.T.Helper()

	fullPath := filepath.Join(f.RootDir, relPath)
	if err := os.MkdirAll(fullPath, 0755); err != nil {
		f.T.Fatalf("failed to create directory %s: %v", fullPath, err)
	}

	return fullPath
}

// CreateSymlink creates a symbolic link pointing at target
func (f *TestFixture) CreateSymlink(target, linkRelPath string) string {
	f.T.Helper()

	fullLinkPath := filepath.Join(f.RootDir, linkRelPath)
	dir := filepath.Dir(fullLinkPath)

	if err := os.MkdirAll(dir, 0755); err != nil {
		f.T.Fatalf("failed to create directory %s: %v", dir, err)
	}

	if err := os.Symlink(target, fullLinkPath); err != nil {
		f.T.Fatalf("failed to create symlink %s: %v", fullLinkPath, err)
	}

	return fullLinkPath
}

// CreateReadOnlyDir creates a directory whose entries cannot be deleted.
// The permission is restored on test cleanup so t.TempDir can remove it.
func (f *TestFixture) CreateReadOnlyDir(relPath string) string {
	f.T.Helper()

	dirPath := f.CreateDir(relPath)

	if err := os.Chmod(dirPath, 0555); err != nil {
		f.T.Fatalf("failed to chmod directory %s: %v", dirPath, err)
	}

	f.T.Cleanup(func() {
		os.Chmod(dirPath, 0755)
	})

	return dirPath
}

// CreateUnreadableFile creates a file that cannot be opened for reading.
func (f *TestFixture) CreateUnreadableFile(relPath string, content []byte) string {
	f.T.Helper()

	fullPath := f.CreateFile(relPath, content)
	if err := os.Chmod(fullPath, 0000); err != nil {
		f.T.Fatalf("failed to chmod file %s: %v", fullPath, err)
	}

	f.T.Cleanup(func() {
		os.Chmod(fullPath, 0644)
	})

	return fullPath
}

// =============================================================================
// Assertion Helpers
// =============================================================================

// AssertExists fails the test if the path does not exist
func (f *TestFixture) AssertExists(path string) {
	f.T.Helper()

	if _, err := os.Lstat(path); err != nil {
		f.T.Errorf("expected %s to exist: %v", path, err)
	}
}

// AssertNotExists fails the test if the path still exists
func (f *TestFixture) AssertNotExists(path string) {
	f.T.Helper()

	if _, err := os.Lstat(path); !os.IsNotExist(err) {
		f.T.Errorf("expected %s to be gone, stat err: %v", path, err)
	}
}
