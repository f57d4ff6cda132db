package equisolve

import (
	"sync"
	"sync/atomic"

	equierrors "github.com/equisolve/equisolve/errors"
	"github.com/equisolve/equisolve/internal/arena"
	"github.com/equisolve/equisolve/internal/collision"
	"github.com/equisolve/equisolve/internal/geometry"
)

// Solver finds Equihash(N, K) solutions for a given header and nonce.
//
// Usage:
//
//	solver, err := equisolve.New(200, 9, equisolve.WithWorkers(8))
//	if err != nil { return err }
//	defer solver.Close()
//
//	if err := solver.SetNonce(header, nonce); err != nil { return err }
//	solutions, err := solver.Run()
//
// A Solver allocates its large working memory (hash heaps, node arrays,
// bucket counters) once at construction and reuses it across
// SetNonce/Run cycles. Layers still make small allocations: a collision
// finder per worker, the layer's occupancy histogram, and index lists
// for solution candidates. Run may be called from one goroutine at a
// time; internally it fans out across the configured worker count.
type Solver struct {
	geom      *geometry.Params
	arena     *arena.Arena
	codec     *arena.NodeCodec
	extractor *geometry.BucketExtractor

	nthreads        uint32
	useBitmap       bool
	maxSolutions    int
	personalization string
	progress        func(layer int, stats Stats)

	prf *prf

	solutionsMu   sync.Mutex
	solutions     []Solution
	seenSolutions map[uint64]struct{}

	// Overflow diagnostics, accumulated across a solve. Exact counts are
	// not load-bearing; slots dropped here only shrink the solution set,
	// never corrupt it.
	bfull      atomic.Uint64
	xfull      atomic.Uint64
	hfull      atomic.Uint64
	candidates atomic.Uint64

	layersCompleted atomic.Uint32
	bucketSizes     [][]uint32

	closed bool
}

// New allocates a solver for Equihash(N, K).
//
// The heavy allocations (two hash-byte heaps, K+1 node arrays, bucket
// counters) all happen here; SetNonce and Run make only small
// allocations (the keyed PRF state, per-worker collision finders,
// occupancy histograms, solution index lists). Worker count defaults to
// the detected logical core count; use WithWorkers to pin it.
func New(n, k uint32, opts ...Option) (*Solver, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	p, err := geometry.New(n, k)
	if err != nil {
		return nil, err
	}
	if cfg.workers < 0 {
		return nil, equierrors.ErrInvalidWorkerCount
	}
	workers := cfg.workers
	if workers == 0 {
		workers = defaultWorkers()
	}
	if cfg.bitmapFinder {
		// Fail at construction, not in the middle of a layer.
		if _, err := collision.New(p, true); err != nil {
			return nil, err
		}
	}

	a := arena.New(p)
	return &Solver{
		geom:            p,
		arena:           a,
		codec:           a.Codec,
		extractor:       geometry.NewBucketExtractor(p),
		nthreads:        uint32(workers),
		useBitmap:       cfg.bitmapFinder,
		maxSolutions:    cfg.maxSolutions,
		personalization: cfg.personalization,
		progress:        cfg.progress,
		seenSolutions:   make(map[uint64]struct{}),
		bucketSizes:     make([][]uint32, p.K),
	}, nil
}

// Params returns the N and K parameters the solver was built for.
func (s *Solver) Params() (n, k uint32) {
	return s.geom.N, s.geom.K
}

// Workers returns the resolved worker count.
func (s *Solver) Workers() int {
	return int(s.nthreads)
}

// SetNonce keys the Blake2b state with the personalization, header, and
// little-endian nonce, and resets all per-solve state: bucket counters,
// overflow diagnostics, and collected solutions.
func (s *Solver) SetNonce(header []byte, nonce uint32) error {
	if s.closed {
		return equierrors.ErrSolverClosed
	}
	prf, err := newPRF(s.geom.N, s.geom.K, s.personalization, header, nonce)
	if err != nil {
		return err
	}
	s.prf = prf

	s.arena.Reset()
	s.bfull.Store(0)
	s.xfull.Store(0)
	s.hfull.Store(0)
	s.candidates.Store(0)
	s.layersCompleted.Store(0)
	for i := range s.bucketSizes {
		s.bucketSizes[i] = nil
	}

	s.solutionsMu.Lock()
	s.solutions = s.solutions[:0]
	clear(s.seenSolutions)
	s.solutionsMu.Unlock()
	return nil
}

// Run executes all K+1 digits across the worker pool and returns the
// solutions found, each a strictly increasing list of 2^K indices.
// Which solutions are found can vary with the worker count (slot
// insertion order is scheduling-dependent, and overflow drops depend on
// it), but every returned solution is independently valid.
func (s *Solver) Run() ([]Solution, error) {
	if s.closed {
		return nil, equierrors.ErrSolverClosed
	}
	if s.prf == nil {
		return nil, equierrors.ErrNotKeyed
	}

	if err := s.runWorkers(); err != nil {
		return nil, err
	}

	s.solutionsMu.Lock()
	defer s.solutionsMu.Unlock()
	out := make([]Solution, len(s.solutions))
	copy(out, s.solutions)
	return out, nil
}

// Close releases the arena. The solver is unusable afterwards; SetNonce,
// Run, and Close return ErrSolverClosed.
func (s *Solver) Close() error {
	if s.closed {
		return equierrors.ErrSolverClosed
	}
	s.closed = true
	s.arena = nil
	s.prf = nil
	return nil
}
