package equisolve

// digit0 seeds layer 0: every worker strides over a disjoint subset of
// Blake2b blocks, slices each 64-byte output into HashesPerBlake N-bit
// hashes, classifies each by the leading bucket and rest bits, and
// inserts a leaf node plus the post-digit hash bytes into the claimed
// slot.
func (s *Solver) digit0(id uint32) error {
	p := s.geom
	layout := s.arena.Layout(0)
	hashBytes := layout.NextHashUnits*4 - layout.NextBO

	var bfull uint64
	for block := id; block < p.NBlocks; block += s.nthreads {
		out, err := s.prf.blockHash(block)
		if err != nil {
			return err
		}
		for i := uint32(0); i < p.HashesPerBlake; i++ {
			ph := out[i*p.HashBytes : (i+1)*p.HashBytes]
			bucketID, xhash := s.extractor.Digit0(ph)

			slot := s.arena.GetSlot(0, bucketID)
			if slot >= p.NSlots {
				bfull++
				continue
			}
			idx := block*p.HashesPerBlake + i
			s.arena.SetNode(0, bucketID, slot, s.codec.PackLeaf(idx, xhash))

			dst := s.arena.Hash(0, bucketID, slot)
			copy(dst[layout.NextBO:], ph[p.HashBytes-hashBytes:])
		}
	}
	s.bfull.Add(bfull)
	return nil
}
