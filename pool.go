package edf2cfs

import (
	"runtime"

	"github.com/alitto/pond"
)

// Parallelism returns the fixed degree of parallelism P for the
// worker pool: the detected hardware parallelism, floored at 2
// (spec §4.7).
func Parallelism() int {
	n := runtime.NumCPU()
	if n < 2 {
		return 2
	}
	return n
}

// Pool wraps a fixed-size pond worker pool. Jobs are run one batch of
// up to Degree() files at a time, with the caller (Dispatch) joining
// each batch before admitting the next (spec §4.7). This mirrors the
// teacher's cmd/main.go pond.New(n, 0, pond.MinWorkers(n)) pool; the
// explicit per-batch barrier is new, since GSF's conversion pool had
// none.
type Pool struct {
	degree int
	pool   *pond.WorkerPool
}

// NewPool creates a Pool sized to Parallelism().
func NewPool() *Pool {
	n := Parallelism()
	return &Pool{
		degree: n,
		pool:   pond.New(n, 0, pond.MinWorkers(n)),
	}
}

// Degree returns the pool's fixed degree of parallelism.
func (p *Pool) Degree() int {
	return p.degree
}

// StopAndWait releases the underlying pond pool's resources.
func (p *Pool) StopAndWait() {
	p.pool.StopAndWait()
}

// RunBatch runs one batch (at most Degree() files) concurrently and
// returns results in the batch's input order. Completion order within
// the batch is unobservable: results are written back to an
// index-addressed slice, not appended as jobs finish.
func (p *Pool) RunBatch(files []string, params JobParams) []JobResult {
	results := make([]JobResult, len(files))

	group := p.pool.Group()
	for i, path := range files {
		idx, path := i, path
		group.Submit(func() {
			results[idx] = RunJob(path, params)
		})
	}
	group.Wait()

	return results
}
