package equisolve

import "github.com/equisolve/equisolve/internal/collision"

// digitInterior computes layer r for 1 <= r < K: every worker strides
// over a disjoint subset of layer r-1's buckets, groups each bucket's
// slots by cached rest-bits value, XORs every colliding pair's remaining
// hash, and reclassifies the XOR result into a layer-r bucket.
//
// With the rest-bits value cached in the tree node itself there is no
// odd/even difference in how slots are classified; the only genuine
// odd-layer difference, the 4-bit window shift for non-byte-aligned
// digit widths, lives inside geometry.BucketExtractor.InterLayer.
func (s *Solver) digitInterior(r, id uint32) error {
	p := s.geom
	layout := s.arena.Layout(r)

	finder, err := collision.New(p, s.useBitmap)
	if err != nil {
		return err
	}

	var bfull, xfull, hfull uint64
	for bucketID := id; bucketID < p.NBuckets; bucketID += s.nthreads {
		finder.Clear()
		bsize := s.arena.GetNSlots(r-1, bucketID)

		for s1 := uint32(0); s1 < bsize; s1++ {
			xh1 := s.codec.XHash(s.arena.Node(r-1, bucketID, s1))
			if !finder.AddSlot(s1, xh1) {
				xfull++
				continue
			}
			hash1 := s.arena.Hash(r-1, bucketID, s1)

			for finder.NextCollision() {
				s0 := finder.Slot()
				hash0 := s.arena.Hash(r-1, bucketID, s0)

				// Equal remaining hashes would XOR to zero everywhere
				// and eventually yield a proof reusing an index; the
				// earlier words are already equal by bucketing, so the
				// tail word decides.
				if tailWordEqual(hash0, hash1, layout.PrevHashUnits) {
					hfull++
					continue
				}

				var window [3]byte
				xorWindow(window[:], hash0, hash1, layout.PrevBO)
				xorBucketID, xhash := s.extractor.InterLayer(r, window[:])

				xorSlot := s.arena.GetSlot(r, xorBucketID)
				if xorSlot >= p.NSlots {
					bfull++
					continue
				}

				s.arena.SetNode(r, xorBucketID, xorSlot, s.codec.Pack(bucketID, s0, s1, xhash))

				dst := s.arena.Hash(r, xorBucketID, xorSlot)
				xorFrom(dst, hash0, hash1, layout.DUnits)
			}
		}
	}
	s.bfull.Add(bfull)
	s.xfull.Add(xfull)
	s.hfull.Add(hfull)
	return nil
}

// tailWordEqual reports whether the last 4-byte word of two
// prevHashUnits-word rows is equal.
func tailWordEqual(a, b []byte, prevHashUnits uint32) bool {
	off := (prevHashUnits - 1) * 4
	return a[off] == b[off] && a[off+1] == b[off+1] && a[off+2] == b[off+2] && a[off+3] == b[off+3]
}

// xorWindow XORs 3 bytes of a and b starting at byte offset bo into
// dst, without materializing the full XOR of the rows.
func xorWindow(dst, a, b []byte, bo uint32) {
	for i := 0; i < 3; i++ {
		dst[i] = a[int(bo)+i] ^ b[int(bo)+i]
	}
}

// xorFrom XORs a and b from word index dUnits to the end of a (which is
// dUnits words longer than dst), writing into dst starting at 0.
func xorFrom(dst, a, b []byte, dUnits uint32) {
	start := int(dUnits * 4)
	for i := range dst {
		dst[i] = a[start+i] ^ b[start+i]
	}
}
