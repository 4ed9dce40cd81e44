// Package retention decides which member of a duplicate group survives.
package retention

import (
	"os"
	"sort"
	"strings"

	"github.com/fenilsonani/dedup/internal/scanner"
)

// Plan is the retention decision for one duplicate group: exactly one
// keeper, everything else designated for deletion.
type Plan struct {
	Digest string
	Keeper scanner.FileHash
	Delete []scanner.FileHash
}

// Depth is the number of path separators in a path, the metric used to
// pick the keeper. Shallower paths win.
func Depth(path string) int {
	return strings.Count(path, string(os.PathSeparator))
}

// Apply selects the keeper for a group: the member with the fewest path
// separators, ties broken by discovery order. The sort must be stable —
// deletion is irreversible, so "earlier encountered wins" on equal depth
// is part of the contract, not an accident of the sort.
func Apply(group scanner.Group) Plan {
	files := make([]scanner.FileHash, len(group.Files))
	copy(files, group.Files)

	sort.SliceStable(files, func(i, j int) bool {
		return Depth(files[i].Path) < Depth(files[j].Path)
	})

	plan := Plan{Digest: group.Digest}
	if len(files) == 0 {
		return plan
	}

	plan.Keeper = files[0]
	plan.Delete = files[1:]
	return plan
}

// ApplyAll plans every group. Groups with fewer than two members produce
// no deletions.
func ApplyAll(groups []scanner.Group) []Plan {
	plans := make([]Plan, 0, len(groups))
	for _, group := range groups {
		plans = append(plans, Apply(group))
	}
	return plans
}

// Candidates flattens the deletion side of a set of plans, preserving
// plan order.
func Candidates(plans []Plan) []scanner.FileHash {
	var files []scanner.FileHash
	for _, plan := range plans {
		files = append(files, plan.Delete...)
	}
	return files
}
