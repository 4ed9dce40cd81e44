package utils

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestHashFileDeterministic(t *testing.T) {
	dir := t.TempDir()

	pathA := filepath.Join(dir, "a.bin")
	pathB := filepath.Join(dir, "sub", "b.bin")
	content := []byte("identical content")

	if err := os.MkdirAll(filepath.Dir(pathB), 0755); err != nil {
		t.Fatal(err)
	}
	for _, p := range []string{pathA, pathB} {
		if err := os.WriteFile(p, content, 0644); err != nil {
			t.Fatal(err)
		}
	}

	hashA, err := HashFile(pathA)
	if err != nil {
		t.Fatalf("HashFile(%s): %v", pathA, err)
	}
	hashB, err := HashFile(pathB)
	if err != nil {
		t.Fatalf("HashFile(%s): %v", pathB, err)
	}

	if hashA != hashB {
		t.Errorf("same bytes under different paths produced different digests: %s vs %s", hashA, hashB)
	}

	// Hashing the same file twice must agree too.
	again, err := HashFile(pathA)
	if err != nil {
		t.Fatal(err)
	}
	if again != hashA {
		t.Errorf("digest not stable across runs: %s vs %s", again, hashA)
	}
}

func TestHashFileSingleByteChange(t *testing.T) {
	dir := t.TempDir()

	content := bytes.Repeat([]byte("x"), 4096)
	path := filepath.Join(dir, "orig.bin")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}

	orig, err := HashFile(path)
	if err != nil {
		t.Fatal(err)
	}

	content[2048] = 'y'
	changed := filepath.Join(dir, "changed.bin")
	if err := os.WriteFile(changed, content, 0644); err != nil {
		t.Fatal(err)
	}

	mutated, err := HashFile(changed)
	if err != nil {
		t.Fatal(err)
	}

	if orig == mutated {
		t.Error("one-byte change did not change the digest")
	}
}

func TestHashFileChunkBoundaries(t *testing.T) {
	// Sizes straddling the chunk size must all hash the full content.
	sizes := []int{0, 1, HashChunkSize - 1, HashChunkSize, HashChunkSize + 1, 3*HashChunkSize + 7}

	dir := t.TempDir()
	for _, size := range sizes {
		content := bytes.Repeat([]byte("z"), size)
		path := filepath.Join(dir, "f.bin")
		if err := os.WriteFile(path, content, 0644); err != nil {
			t.Fatal(err)
		}

		fromFile, err := HashFile(path)
		if err != nil {
			t.Fatalf("size %d: %v", size, err)
		}

		if fromBytes := HashBytes(content); fromFile != fromBytes {
			t.Errorf("size %d: HashFile %s != HashBytes %s", size, fromFile, fromBytes)
		}
	}
}

func TestHashReader(t *testing.T) {
	digest, err := HashReader(strings.NewReader("hello"))
	if err != nil {
		t.Fatal(err)
	}
	if digest != HashBytes([]byte("hello")) {
		t.Error("HashReader disagrees with HashBytes")
	}
}

func TestHashFileMissing(t *testing.T) {
	_, err := HashFile(filepath.Join(t.TempDir(), "nope.bin"))
	if err == nil {
		t.Error("expected error for missing file")
	}
}
