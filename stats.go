package equisolve

import "github.com/zeebo/xxh3"

// Stats is a snapshot of a solve's diagnostic counters. All three
// overflow kinds are expected during normal operation; they shrink the
// set of solutions found but never produce an invalid one.
type Stats struct {
	// BucketFull counts slots dropped because their destination bucket
	// had already reached capacity.
	BucketFull uint64
	// RestFull counts source slots dropped because their rest-bits
	// sub-bucket in the collision finder was full (array form only).
	RestFull uint64
	// HashFull counts colliding pairs dropped because their remaining
	// hashes were identical, which would yield a proof reusing an index.
	HashFull uint64

	// Candidates counts distinct accepted solutions, including those
	// past the MaxSolutions cap.
	Candidates uint64

	// LayersCompleted is the number of digits finished so far in the
	// current solve, 0..K+1.
	LayersCompleted uint32

	// BucketSizes[r][n] is the number of layer-r buckets holding exactly
	// n slots after layer r completed, for r in 0..K-1. Layer K stores
	// no slots. Nil for layers not yet completed.
	BucketSizes [][]uint32
}

// Stats returns a snapshot of the current solve's counters. It is safe
// to call after Run returns or from a WithProgress callback; calling it
// concurrently with a running solve may observe mid-layer counter
// values.
func (s *Solver) Stats() Stats {
	st := Stats{
		BucketFull:      s.bfull.Load(),
		RestFull:        s.xfull.Load(),
		HashFull:        s.hfull.Load(),
		Candidates:      s.candidates.Load(),
		LayersCompleted: s.layersCompleted.Load(),
	}
	st.BucketSizes = make([][]uint32, len(s.bucketSizes))
	for r, hist := range s.bucketSizes {
		if hist == nil {
			continue
		}
		out := make([]uint32, len(hist))
		copy(out, hist)
		st.BucketSizes[r] = out
	}
	return st
}

// Fingerprint returns a 64-bit summary of the current keying (header,
// nonce, and parameters), for correlating log lines across solves. It
// returns 0 before SetNonce.
func (s *Solver) Fingerprint() uint64 {
	if s.prf == nil {
		return 0
	}
	return xxh3.Hash(s.prf.snapshot)
}
