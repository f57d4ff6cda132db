package equisolve

import (
	"encoding/binary"
	"sort"

	"github.com/cespare/xxhash/v2"
	"github.com/equisolve/equisolve/internal/arena"
)

// candidate is called by digitK for every pair of layer K-1 slots whose
// entire remaining hash is equal: it walks the pair's tree back down to
// its 2^K leaf indices, rejects degenerate trees that revisit a leaf,
// and records the sorted index set as a solution.
func (s *Solver) candidate(bucketID, s0, s1 uint32) {
	p := s.geom
	root := s.codec.Pack(bucketID, s0, s1, 0)

	indices := s.listIndices(p.K, root)
	if uint32(len(indices)) != p.ProofSize {
		return
	}

	sort.Slice(indices, func(i, j int) bool { return indices[i] < indices[j] })
	for i := 1; i < len(indices); i++ {
		if indices[i] == indices[i-1] {
			return
		}
	}

	s.recordSolution(indices)
}

// listIndices walks a tree node back to its 2^r leaf indices. Every
// layer's node array stays valid for the whole solve (see
// internal/arena), so a single recursive walk addressing
// arena.Node(r-1, ...) suffices.
func (s *Solver) listIndices(r uint32, node arena.Node) []uint32 {
	if r == 0 {
		return []uint32{s.codec.Index(node)}
	}
	bucketID := s.codec.BucketID(node)
	left := s.listIndices(r-1, s.arena.Node(r-1, bucketID, s.codec.SlotID0(node)))
	right := s.listIndices(r-1, s.arena.Node(r-1, bucketID, s.codec.SlotID1(node)))
	return orderIndices(left, right)
}

// orderIndices enforces Wagner's tree-order condition during the walk:
// at every level, the half containing the smaller minimum index comes
// first. Slot pairs are recorded in insertion order, not index order, so
// this is where canonicalization happens.
func orderIndices(a, b []uint32) []uint32 {
	if a[0] > b[0] {
		a, b = b, a
	}
	return append(a, b...)
}

// fingerprint hashes a solution's sorted indices to a 64-bit digest for
// cross-worker dedup.
func fingerprint(indices []uint32) uint64 {
	buf := make([]byte, len(indices)*4)
	for i, v := range indices {
		binary.LittleEndian.PutUint32(buf[i*4:], v)
	}
	return xxhash.Sum64(buf)
}

// recordSolution deduplicates and stores a completed solution. Solutions
// past the MaxSolutions cap are still counted as candidates but not
// materialized.
func (s *Solver) recordSolution(indices []uint32) {
	fp := fingerprint(indices)

	s.solutionsMu.Lock()
	defer s.solutionsMu.Unlock()

	if _, dup := s.seenSolutions[fp]; dup {
		return
	}
	s.seenSolutions[fp] = struct{}{}
	s.candidates.Add(1)

	if s.maxSolutions > 0 && len(s.solutions) >= s.maxSolutions {
		return
	}
	out := make([]uint32, len(indices))
	copy(out, indices)
	s.solutions = append(s.solutions, Solution{Indices: out})
}
