package retention

import (
	"testing"

	"github.com/fenilsonani/dedup/internal/scanner"
)

func group(paths ...string) scanner.Group {
	g := scanner.Group{Digest: "test-digest"}
	for _, p := range paths {
		g.Files = append(g.Files, scanner.FileHash{Path: p, Digest: g.Digest, Size: 10})
	}
	return g
}

func deletePaths(p Plan) []string {
	out := make([]string, len(p.Delete))
	for i, f := range p.Delete {
		out[i] = f.Path
	}
	return out
}

func TestDepth(t *testing.T) {
	tests := []struct {
		path     string
		expected int
	}{
		{"/a", 1},
		{"/a/b", 2},
		{"/a/b/c.txt", 3},
		{"/very/deeply/nested/path/file", 5},
	}

	for _, tt := range tests {
		if got := Depth(tt.path); got != tt.expected {
			t.Errorf("Depth(%q) = %d, want %d", tt.path, got, tt.expected)
		}
	}
}

func TestApplyKeepsShallowestPath(t *testing.T) {
	plan := Apply(group("/a/b/c/file", "/a/file", "/a/b/file"))

	if plan.Keeper.Path != "/a/file" {
		t.Errorf("keeper = %s, want /a/file", plan.Keeper.Path)
	}

	want := []string{"/a/b/file", "/a/b/c/file"}
	got := deletePaths(plan)
	if len(got) != len(want) {
		t.Fatalf("delete list = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("delete[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestApplyEqualDepthKeepsFirstEncountered(t *testing.T) {
	// Both members have depth 2; the one discovered first must survive.
	// Stability here is load-bearing: deletion is irreversible.
	plan := Apply(group("/b/second", "/a/first"))

	if plan.Keeper.Path != "/b/second" {
		t.Errorf("keeper = %s, want the first-encountered /b/second", plan.Keeper.Path)
	}
	if len(plan.Delete) != 1 || plan.Delete[0].Path != "/a/first" {
		t.Errorf("delete list = %v", deletePaths(plan))
	}
}

func TestApplyMixedDepthsWithTies(t *testing.T) {
	plan := Apply(group("/x/y/one", "/x/y/two", "/x/three", "/x/four"))

	if plan.Keeper.Path != "/x/three" {
		t.Errorf("keeper = %s, want /x/three", plan.Keeper.Path)
	}

	want := []string{"/x/four", "/x/y/one", "/x/y/two"}
	got := deletePaths(plan)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("delete list = %v, want %v", got, want)
		}
	}
}

func TestApplySmallGroups(t *testing.T) {
	if p := Apply(group("/only")); len(p.Delete) != 0 || p.Keeper.Path != "/only" {
		t.Errorf("single-member group should keep its member and delete nothing: %+v", p)
	}
	if p := Apply(group()); len(p.Delete) != 0 {
		t.Errorf("empty group should produce no deletions: %+v", p)
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	g := group("/a/b/c", "/a")
	Apply(g)

	if g.Files[0].Path != "/a/b/c" {
		t.Error("Apply reordered the caller's group")
	}
}

func TestCandidatesFlattensPlans(t *testing.T) {
	plans := ApplyAll([]scanner.Group{
		group("/a/x", "/a/b/x"),
		group("/c/y", "/c/d/y", "/c/d/e/y"),
	})

	candidates := Candidates(plans)
	want := []string{"/a/b/x", "/c/d/y", "/c/d/e/y"}

	if len(candidates) != len(want) {
		t.Fatalf("got %d candidates, want %d", len(candidates), len(want))
	}
	for i, f := range candidates {
		if f.Path != want[i] {
			t.Errorf("candidate[%d] = %s, want %s", i, f.Path, want[i])
		}
	}
}
