package equisolve

import (
	"sync"
	"sync/atomic"

	"github.com/klauspost/cpuid/v2"
	"golang.org/x/sync/errgroup"

	"github.com/equisolve/equisolve/internal/barrier"
)

// defaultWorkers resolves the worker count when none was configured.
// cpuid reports the actual logical core count rather than a value
// inflated by cgroup-oblivious heuristics.
func defaultWorkers() int {
	if n := cpuid.CPU.LogicalCores; n > 0 {
		return n
	}
	return 1
}

// runWorkers executes all K+1 digits in lockstep across the worker pool.
// Each layer runs in three barrier-separated phases: the digit itself,
// then worker 0's bookkeeping (occupancy snapshot, progress callback),
// then release into the next layer. The middle barrier guarantees every
// write into layer r is visible before anything reads it; the trailing
// one keeps the next layer's drain of the counters from racing the
// snapshot.
//
// A worker that hits an error must not leave early, or the others would
// block at the next barrier forever. It records the error, keeps
// attending barriers, and every worker skips the remaining digit work.
func (s *Solver) runWorkers() error {
	bar := barrier.New(int(s.nthreads))

	var (
		failed   atomic.Bool
		errOnce  sync.Once
		firstErr error
	)
	fail := func(err error) {
		errOnce.Do(func() { firstErr = err })
		failed.Store(true)
	}

	var g errgroup.Group
	for id := uint32(0); id < s.nthreads; id++ {
		id := id
		g.Go(func() error {
			for r := uint32(0); r <= s.geom.K; r++ {
				bar.Wait()
				if !failed.Load() {
					if err := s.digit(r, id); err != nil {
						fail(err)
					}
				}
				bar.Wait()
				if id == 0 && !failed.Load() {
					s.finishLayer(r)
				}
				bar.Wait()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return firstErr
}

// digit dispatches worker id's share of layer r.
func (s *Solver) digit(r, id uint32) error {
	switch {
	case r == 0:
		return s.digit0(id)
	case r < s.geom.K:
		return s.digitInterior(r, id)
	default:
		return s.digitK(id)
	}
}

// finishLayer runs on worker 0 between barriers, after every writer of
// layer r has finished and before layer r+1 drains its counters: it
// snapshots the layer's bucket occupancy histogram and notifies the
// progress callback.
func (s *Solver) finishLayer(r uint32) {
	p := s.geom
	if r < p.K {
		hist := make([]uint32, p.NSlots+1)
		for bid := uint32(0); bid < p.NBuckets; bid++ {
			hist[s.arena.PeekNSlots(r, bid)]++
		}
		s.bucketSizes[r] = hist
	}
	s.layersCompleted.Store(r + 1)

	if s.progress != nil {
		s.progress(int(r), s.Stats())
	}
}
