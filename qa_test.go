package edf2cfs

import (
	"testing"
	"time"
)

func TestAssessBatchConsistent(t *testing.T) {
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	results := []JobResult{
		{Epochs: 10, StartTime: t0},
		{Epochs: 10, StartTime: t0.Add(time.Hour)},
	}
	q := AssessBatch(results)
	if !q.ConsistentEpochs {
		t.Fatal("expected ConsistentEpochs = true for matching epoch counts")
	}
	if q.MinEpochs != 10 || q.MaxEpochs != 10 {
		t.Errorf("MinEpochs/MaxEpochs = %d/%d, want 10/10", q.MinEpochs, q.MaxEpochs)
	}
	if len(q.DuplicateStarts) != 0 {
		t.Errorf("DuplicateStarts = %v, want none", q.DuplicateStarts)
	}
}

func TestAssessBatchInconsistentAndDuplicate(t *testing.T) {
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	results := []JobResult{
		{Epochs: 10, StartTime: t0},
		{Epochs: 12, StartTime: t0},
		{Epochs: 0, StartTime: t0.Add(time.Hour), Err: errNonNilForTest},
	}
	q := AssessBatch(results)
	if q.ConsistentEpochs {
		t.Fatal("expected ConsistentEpochs = false for differing epoch counts")
	}
	if q.MinEpochs != 10 || q.MaxEpochs != 12 {
		t.Errorf("MinEpochs/MaxEpochs = %d/%d, want 10/12", q.MinEpochs, q.MaxEpochs)
	}
	if len(q.DuplicateStarts) != 1 {
		t.Fatalf("DuplicateStarts = %v, want one entry", q.DuplicateStarts)
	}
}

func TestAssessBatchAllFailed(t *testing.T) {
	results := []JobResult{
		{Err: errNonNilForTest},
		{Err: errNonNilForTest},
	}
	q := AssessBatch(results)
	if q.MinEpochs != 0 || q.MaxEpochs != 0 || q.ConsistentEpochs || len(q.DuplicateStarts) != 0 {
		t.Fatalf("expected a zero-valued BatchQuality when every job fails, got %+v", q)
	}
}

var errNonNilForTest = NewJobError(ErrReadFailure)
