package edf2cfs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func validSelection() ChannelSelection {
	return ChannelSelection{C3: "C3", C4: "C4", EL: "EOG-L", ER: "EOG-R"}
}

func TestRunJobSuccess(t *testing.T) {
	path := writeMinimalEDF(t)
	result := RunJob(path, JobParams{Selection: validSelection()})
	if result.Err != nil {
		t.Fatalf("RunJob: %v", result.Err)
	}
	if result.OutputPath != cfsPath(path) {
		t.Errorf("OutputPath = %s, want %s", result.OutputPath, cfsPath(path))
	}
	if _, err := os.Stat(result.OutputPath); err != nil {
		t.Fatalf("expected output file at %s: %v", result.OutputPath, err)
	}
}

func TestRunJobAlreadyConverted(t *testing.T) {
	path := writeMinimalEDF(t)
	out := cfsPath(path)
	if err := os.WriteFile(out, []byte("existing"), 0o644); err != nil {
		t.Fatalf("seeding existing output: %v", err)
	}

	result := RunJob(path, JobParams{Selection: validSelection()})
	if !errors.Is(result.Err, ErrAlreadyConverted) {
		t.Fatalf("err = %v, want ErrAlreadyConverted", result.Err)
	}
}

func TestRunJobOverwrite(t *testing.T) {
	path := writeMinimalEDF(t)
	out := cfsPath(path)
	if err := os.WriteFile(out, []byte("existing"), 0o644); err != nil {
		t.Fatalf("seeding existing output: %v", err)
	}

	result := RunJob(path, JobParams{Selection: validSelection(), Overwrite: true})
	if result.Err != nil {
		t.Fatalf("RunJob with Overwrite: %v", result.Err)
	}
}

func TestRunJobMissingFile(t *testing.T) {
	result := RunJob(filepath.Join(t.TempDir(), "nope.edf"), JobParams{Selection: validSelection()})
	var jerr *JobError
	if !errors.As(result.Err, &jerr) {
		t.Fatalf("err = %v, want *JobError", result.Err)
	}
	if jerr.OpenKind != EdfOpenMissingFile {
		t.Errorf("OpenKind = %v, want EdfOpenMissingFile", jerr.OpenKind)
	}
}

func TestRunJobLabelNotFound(t *testing.T) {
	path := writeMinimalEDF(t)
	sel := validSelection()
	sel.C3 = "does-not-exist"
	result := RunJob(path, JobParams{Selection: sel})
	if !errors.Is(result.Err, ErrLabelNotFound) {
		t.Fatalf("err = %v, want ErrLabelNotFound", result.Err)
	}
}

func TestCfsPath(t *testing.T) {
	if got, want := cfsPath("/a/b/rec.edf"), "/a/b/rec.cfs"; got != want {
		t.Errorf("cfsPath = %q, want %q", got, want)
	}
}
