package edf2cfs

import (
	"time"

	"github.com/samber/lo"
)

// BatchQuality summarises simple cross-file consistency checks over a
// processed batch: whether epoch counts agree across successfully
// converted files, and whether any two files share a recording start
// time (duplicate acquisitions, or the same night re-submitted twice).
// Adapted from the teacher's per-ping QInfo, which checked beam-count
// consistency and duplicate ping timestamps across a GSF file; here
// the same lo.Min/lo.Max/lo.FindDuplicates shape is applied across a
// batch of converted recordings instead of across pings in one file.
type BatchQuality struct {
	MinEpochs        int
	MaxEpochs        int
	ConsistentEpochs bool
	DuplicateStarts  []time.Time
}

// AssessBatch computes BatchQuality over a batch's successful results.
// An empty or all-failed batch yields a zero-valued BatchQuality.
func AssessBatch(results []JobResult) BatchQuality {
	ok := lo.Filter(results, func(r JobResult, _ int) bool { return r.Err == nil })
	if len(ok) == 0 {
		return BatchQuality{}
	}

	epochs := lo.Map(ok, func(r JobResult, _ int) int { return r.Epochs })
	starts := lo.Map(ok, func(r JobResult, _ int) time.Time { return r.StartTime })

	min := lo.Min(epochs)
	max := lo.Max(epochs)

	return BatchQuality{
		MinEpochs:        min,
		MaxEpochs:        max,
		ConsistentEpochs: min == max,
		DuplicateStarts:  lo.FindDuplicates(starts),
	}
}
