package equisolve

import (
	"bytes"

	"github.com/equisolve/equisolve/internal/collision"
)

// digitK is the final layer: every worker strides over a disjoint subset
// of layer K-1's buckets, groups each bucket's slots by cached rest-bits
// value the same way digitInterior does, but instead of reclassifying a
// collision into a new bucket it checks whether the two slots' entire
// remaining hash is equal. After K digits have been consumed, nothing
// is left to classify, so equality of what remains is the acceptance
// condition; a match hands the pair to candidate for tree
// reconstruction. Layer K writes no slots and no hash bytes.
func (s *Solver) digitK(id uint32) error {
	p := s.geom
	layout := s.arena.Layout(p.K)

	finder, err := collision.New(p, s.useBitmap)
	if err != nil {
		return err
	}

	var xfull uint64
	for bucketID := id; bucketID < p.NBuckets; bucketID += s.nthreads {
		finder.Clear()
		bsize := s.arena.GetNSlots(p.K-1, bucketID)

		for s1 := uint32(0); s1 < bsize; s1++ {
			xh1 := s.codec.XHash(s.arena.Node(p.K-1, bucketID, s1))
			if !finder.AddSlot(s1, xh1) {
				xfull++
				continue
			}
			hash1 := s.arena.Hash(p.K-1, bucketID, s1)

			for finder.NextCollision() {
				s0 := finder.Slot()
				hash0 := s.arena.Hash(p.K-1, bucketID, s0)

				if !bytes.Equal(hash0[layout.PrevBO:], hash1[layout.PrevBO:]) {
					continue
				}
				s.candidate(bucketID, s0, s1)
			}
		}
	}
	s.xfull.Add(xfull)
	return nil
}
