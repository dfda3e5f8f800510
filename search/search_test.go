package search

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFindEdfNonRecursive(t *testing.T) {
	dir := t.TempDir()
	names := []string{"a.edf", "b.EDF", "c.txt"}
	for _, n := range names {
		if err := os.WriteFile(filepath.Join(dir, n), nil, 0o644); err != nil {
			t.Fatalf("writing %s: %v", n, err)
		}
	}
	sub := filepath.Join(dir, "nested")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(sub, "d.edf"), nil, 0o644); err != nil {
		t.Fatalf("writing nested file: %v", err)
	}

	got, err := FindEdf(dir)
	if err != nil {
		t.Fatalf("FindEdf: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len(got) = %d, want 2 (case-insensitive, non-recursive)", len(got))
	}
}

func TestFindEdfMissingDirectory(t *testing.T) {
	if _, err := FindEdf(filepath.Join(t.TempDir(), "does-not-exist")); err == nil {
		t.Fatal("expected an error for a missing directory")
	}
}
