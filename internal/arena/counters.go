package arena

import (
	"sync/atomic"

	"github.com/equisolve/equisolve/internal/geometry"
)

// Counters tracks, per layer parity, how many slots have been claimed in
// each bucket so far. Insertion is an atomic fetch-add; reading a
// layer's counts for the next layer drains them back to zero so the same
// storage can serve the next same-parity layer.
type Counters struct {
	nslots   [2][]uint32
	nBuckets uint32
	nSlots   uint32
}

// NewCounters allocates the two parity counter arrays for p's geometry.
func NewCounters(p *geometry.Params) *Counters {
	return &Counters{
		nslots:   [2][]uint32{make([]uint32, p.NBuckets), make([]uint32, p.NBuckets)},
		nBuckets: p.NBuckets,
		nSlots:   p.NSlots,
	}
}

// Reset zeroes the layer-0 counters for a new solve. The odd parity does
// not need zeroing here: GetNSlots drained it at the end of the previous
// solve's last odd layer.
func (c *Counters) Reset() {
	for i := range c.nslots[0] {
		c.nslots[0][i] = 0
	}
}

// GetSlot claims the next free slot index in bucket bid at layer r and
// returns it. Callers must check the result against NSlots: a result
// >= NSlots means the bucket overflowed and the slot must be dropped,
// not written.
func (c *Counters) GetSlot(r, bid uint32) uint32 {
	return atomic.AddUint32(&c.nslots[r&1][bid], 1) - 1
}

// GetNSlots returns the number of slots committed to bucket bid at layer
// r, capped at NSlots, and resets the counter to zero so the same
// storage is ready for the next layer of the same parity.
func (c *Counters) GetNSlots(r, bid uint32) uint32 {
	n := atomic.SwapUint32(&c.nslots[r&1][bid], 0)
	if n > c.nSlots {
		n = c.nSlots
	}
	return n
}

// Peek returns bucket bid's committed slot count at layer r, capped at
// NSlots, without draining it. Used for occupancy snapshots between
// layers.
func (c *Counters) Peek(r, bid uint32) uint32 {
	n := atomic.LoadUint32(&c.nslots[r&1][bid])
	if n > c.nSlots {
		n = c.nSlots
	}
	return n
}
