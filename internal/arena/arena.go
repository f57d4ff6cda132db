package arena

import (
	"github.com/equisolve/equisolve/internal/geometry"
)

// Arena owns the ping-ponged hash-byte heaps, the per-layer node arrays,
// the bucket counters, and the node codec for one solve. It is created
// once per Solver and reused across SetNonce/Run calls.
//
// Hash bytes are recycled through two parity heaps (see heap), but tree
// nodes are not: solution reconstruction walks nodes back from layer K-1
// to layer 0, so every layer's node array must stay valid for the whole
// solve. Node arrays are small next to hash bytes (one packed Node per
// slot vs. several words), so the Arena keeps all K+1 of them for the
// life of a solve and only ping-pongs the hash-byte storage, which is
// where the real memory pressure is.
type Arena struct {
	Params *geometry.Params
	Codec  *NodeCodec

	heaps    [2]*heap
	nodes    [][]Node // nodes[r] is layer r's NBuckets*NSlots node array
	counters *Counters
	layouts  []geometry.Layout // layouts[r] for r in 0..K
}

// New allocates the arena for p. The even-parity heap is sized to layer
// 0's hash width, the odd-parity heap to layer 1's; both are the widest
// layer of their respective parity, since the width never grows from one
// layer to the next.
func New(p *geometry.Params) *Arena {
	layouts := make([]geometry.Layout, p.K+1)
	for r := uint32(0); r <= p.K; r++ {
		layouts[r] = geometry.NewLayout(p, r)
	}

	evenStride := layouts[0].NextHashUnits
	var oddStride uint32
	if p.K >= 1 {
		oddStride = layouts[1].NextHashUnits
	}

	nodes := make([][]Node, p.K+1)
	for r := range nodes {
		nodes[r] = make([]Node, p.NBuckets*p.NSlots)
	}

	return &Arena{
		Params:   p,
		Codec:    NewNodeCodec(p),
		heaps:    [2]*heap{newHeap(p.NBuckets, p.NSlots, evenStride), newHeap(p.NBuckets, p.NSlots, oddStride)},
		nodes:    nodes,
		counters: NewCounters(p),
		layouts:  layouts,
	}
}

// Reset clears the layer-0 bucket counters for a new solve. Node and
// hash-byte storage does not need clearing: every slot is written before
// it is read, gated by the counters.
func (a *Arena) Reset() {
	a.counters.Reset()
}

// Layout returns the cached per-layer descriptor for digit r.
func (a *Arena) Layout(r uint32) geometry.Layout {
	return a.layouts[r]
}

// GetSlot claims the next slot index in bucket bid at layer r.
func (a *Arena) GetSlot(r, bid uint32) uint32 {
	return a.counters.GetSlot(r, bid)
}

// GetNSlots returns and drains the committed slot count for bucket bid
// at layer r.
func (a *Arena) GetNSlots(r, bid uint32) uint32 {
	return a.counters.GetNSlots(r, bid)
}

// PeekNSlots returns bucket bid's committed slot count at layer r
// without draining it.
func (a *Arena) PeekNSlots(r, bid uint32) uint32 {
	return a.counters.Peek(r, bid)
}

// SetNode writes the tree node for the given (layer, bucket, slot).
func (a *Arena) SetNode(r, bid, slot uint32, n Node) {
	a.nodes[r][bid*a.Params.NSlots+slot] = n
}

// Node reads the tree node for the given (layer, bucket, slot).
func (a *Arena) Node(r, bid, slot uint32) Node {
	return a.nodes[r][bid*a.Params.NSlots+slot]
}

// Hash returns the truncated-hash byte row for the given (layer, bucket,
// slot), truncated to layer r's actual hash width.
func (a *Arena) Hash(r, bid, slot uint32) []byte {
	return a.heaps[r&1].hash(bid, slot, a.layouts[r].NextHashUnits)
}
