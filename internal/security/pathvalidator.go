package security

import (
	"fmt"
	"path/filepath"
	"strings"
)

// PathValidator guards deletions. Every path handed to the deletion
// executor must be absolute, clean, and inside the scanned root; the
// scanner only ever produces such paths, so a violation here means the
// candidate list was corrupted or tampered with between scan and delete.
type PathValidator struct {
	root string
}

// NewPathValidator creates a validator scoped to the given scan root.
// The root is cleaned but not resolved; callers pass the same absolute
// root the walker used.
func NewPathValidator(root string) *PathValidator {
	return &PathValidator{root: filepath.Clean(root)}
}

// ValidateForDeletion checks that path is a sane deletion target.
func (pv *PathValidator) ValidateForDeletion(path string) error {
	if !filepath.IsAbs(path) {
		return fmt.Errorf("path must be absolute: %s", path)
	}

	// A path that changes under Clean carries "..", doubled separators
	// or similar; the walker never emits those.
	if filepath.Clean(path) != path {
		return fmt.Errorf("path contains suspicious elements: %s", path)
	}

	if !pv.Contains(path) {
		return fmt.Errorf("path is outside the scanned directory: %s", path)
	}

	if path == pv.root {
		return fmt.Errorf("refusing to delete the scan root: %s", path)
	}

	return nil
}

// Contains reports whether path lies under the validator's root.
func (pv *PathValidator) Contains(path string) bool {
	if path == pv.root {
		return true
	}
	prefix := pv.root
	if prefix != string(filepath.Separator) {
		prefix += string(filepath.Separator)
	}
	return strings.HasPrefix(path, prefix)
}

// ValidateGlobPattern checks that a pattern is valid glob syntax and does
// not attempt directory traversal.
func ValidateGlobPattern(pattern string) error {
	if strings.Contains(pattern, "..") {
		return fmt.Errorf("glob pattern contains directory traversal: %s", pattern)
	}

	if _, err := filepath.Match(pattern, "test"); err != nil {
		return fmt.Errorf("invalid glob pattern: %w", err)
	}

	return nil
}
