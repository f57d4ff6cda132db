package arena

// heap is one of the two ping-ponged backing stores for truncated hash
// bytes. Layer r's hash bytes live at heap[r&1]; a writer of layer r+1
// only reads layer r's hash bytes (opposite parity) and never layer
// r-1's, so the same storage can be reused for r+2 once layer r+1 has
// read it. Hash bytes dominate memory use and shrink by up to a word per
// layer, which is what makes this recycling worthwhile; tree nodes are
// kept per-layer instead (see Arena).
//
// Hash bytes are kept as a raw byte row rather than a []uint32 word
// array: a C union lets the same memory be read as either bytes (for
// bit-packed bucket/xhash extraction) or whole 32-bit words (for fast
// XOR/equality), but Go has no safe equivalent without unsafe.Pointer
// tricks or an endianness convention for every word access. A plain byte
// row sidesteps the issue: extraction reads bytes directly, and XOR and
// equality are done byte-wise, which is bit-for-bit identical to
// word-wise XOR/equality, just not grouped into one CPU word per step.
type heap struct {
	hashBytes   []byte
	nSlots      uint32
	strideWords uint32 // word-aligned row width, in 4-byte units
}

func newHeap(nBuckets, nSlots, strideWords uint32) *heap {
	return &heap{
		hashBytes:   make([]byte, nBuckets*nSlots*strideWords*4),
		nSlots:      nSlots,
		strideWords: strideWords,
	}
}

func (h *heap) slotIndex(bid, slot uint32) uint32 {
	return bid*h.nSlots + slot
}

// hash returns the slot's hash row, truncated to widthWords words (the
// actual width needed by the current layer, which may be narrower than
// the heap's allocated stride).
func (h *heap) hash(bid, slot, widthWords uint32) []byte {
	i := h.slotIndex(bid, slot) * h.strideWords * 4
	return h.hashBytes[i : i+widthWords*4]
}
