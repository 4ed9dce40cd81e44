package scanner

// Index maps fingerprints to the files sharing them. Insertion order is
// preserved both across digests (first-seen order) and within a digest's
// file list, which keeps grouping deterministic and makes the retention
// tie-break ("earlier encountered wins") meaningful.
//
// The index is only ever mutated by the coordinating goroutine; workers
// return results by value and never touch it.
type Index struct {
	order []string
	files map[string][]FileHash
}

// NewIndex creates an empty fingerprint index.
func NewIndex() *Index {
	return &Index{
		files: make(map[string][]FileHash),
	}
}

// Add records a fingerprinted file. Results without a digest are ignored.
func (ix *Index) Add(fh FileHash) {
	if fh.Digest == "" {
		return
	}
	if _, seen := ix.files[fh.Digest]; !seen {
		ix.order = append(ix.order, fh.Digest)
	}
	ix.files[fh.Digest] = append(ix.files[fh.Digest], fh)
}

// Len returns the number of distinct fingerprints.
func (ix *Index) Len() int {
	return len(ix.order)
}

// Lookup returns the files recorded under a fingerprint.
func (ix *Index) Lookup(digest string) []FileHash {
	return ix.files[digest]
}

// Collisions returns the duplicate groups: every fingerprint with two or
// more files, in first-seen order. Pure with respect to the index; no I/O.
func (ix *Index) Collisions() []Group {
	var groups []Group
	for _, digest := range ix.order {
		files := ix.files[digest]
		if len(files) < 2 {
			continue
		}
		groups = append(groups, Group{Digest: digest, Files: files})
	}
	return groups
}
