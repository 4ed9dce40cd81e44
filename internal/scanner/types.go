package scanner

import "time"

// FileHash is the outcome of fingerprinting one file. Digest is empty when
// the file could not be read; Err then carries the reason. Unreadable
// files are excluded from grouping but never abort a scan.
type FileHash struct {
	Path   string `json:"path" yaml:"path"`
	Digest string `json:"digest" yaml:"digest"`
	Size   int64  `json:"size" yaml:"size"`
	Err    error  `json:"-" yaml:"-"`
}

// Group is a set of files sharing one fingerprint. It is only material
// when it holds two or more files.
type Group struct {
	Digest string     `json:"digest" yaml:"digest"`
	Files  []FileHash `json:"files" yaml:"files"`
}

// Paths returns the group's file paths in insertion order.
func (g Group) Paths() []string {
	paths := make([]string, len(g.Files))
	for i, f := range g.Files {
		paths[i] = f.Path
	}
	return paths
}

// WastedSize returns the bytes reclaimable by keeping a single member.
func (g Group) WastedSize() int64 {
	var total int64
	for _, f := range g.Files[1:] {
		total += f.Size
	}
	return total
}

// Result is the outcome of a full scan.
type Result struct {
	Root       string
	Files      []FileHash // successfully fingerprinted, in dispatch order
	Unreadable []FileHash // enumerated but not fingerprinted
	Groups     []Group    // duplicate groups, first-seen digest order
	TotalSize  int64      // bytes hashed
	Duration   time.Duration
}

// WastedSize returns the total reclaimable bytes across all groups.
func (r *Result) WastedSize() int64 {
	var total int64
	for _, g := range r.Groups {
		total += g.WastedSize()
	}
	return total
}
