// Package arena implements the bucketed slot storage backing the
// collision engine: per-layer tree-node arrays, two ping-ponged heaps of
// truncated hash bytes, and the atomic bucket counters that hand out
// slots.
package arena

import "github.com/equisolve/equisolve/internal/geometry"

// Node is a packed tree node: the bucket shared by both children in the
// previous layer, their two slot indices inside that bucket, and a
// cached rest-bits value used to classify this node's own next-layer
// collision bucket. Layer-0 leaves reuse the bucketid/slotid0 fields to
// encode the raw (n+1)-bit index instead, so a leaf fits the same
// packing.
//
// A C bitfield sized to exactly BuckBits+2*SlotBits+RestBits bits would
// be 32 bits for BuckBits=16 but 36 for BuckBits=20, wider than one
// machine word on that geometry. Go has no portable bitfield layout to
// lean on regardless, so Node is a uint64 for every geometry: one width,
// one pack/unpack path, no per-geometry struct size.
type Node uint64

// NodeCodec packs and unpacks Node values for one geometry. It is built
// once per Params: the shift amounts are geometry-dependent constants
// captured at construction so pack/unpack never branches on geometry per
// call.
type NodeCodec struct {
	buckBits uint32
	slotBits uint32
	restBits uint32

	slot0Shift  uint32
	slot1Shift  uint32
	bucketShift uint32
	xhashShift  uint32
	slotMask    uint64
	bucketMask  uint64
	restMask    uint64
}

// NewNodeCodec builds the codec for p's geometry.
func NewNodeCodec(p *geometry.Params) *NodeCodec {
	c := &NodeCodec{
		buckBits: p.BuckBits,
		slotBits: p.SlotBits,
		restBits: p.RestBits,
	}
	c.slot0Shift = 0
	c.slot1Shift = c.slotBits
	c.bucketShift = 2 * c.slotBits
	c.xhashShift = c.bucketShift + c.buckBits
	c.slotMask = 1<<c.slotBits - 1
	c.bucketMask = 1<<c.buckBits - 1
	c.restMask = 1<<c.restBits - 1
	return c
}

// Pack builds an interior tree node (layer r >= 1): bucketID identifies
// the shared bucket in the previous layer, slotID0/slotID1 the two
// colliding slots inside it, and xhash the rest-bits value cached for
// this node's own classification in the next layer.
func (c *NodeCodec) Pack(bucketID, slotID0, slotID1, xhash uint32) Node {
	v := uint64(bucketID&uint32(c.bucketMask)) << c.bucketShift
	v |= uint64(slotID0&uint32(c.slotMask)) << c.slot0Shift
	v |= uint64(slotID1&uint32(c.slotMask)) << c.slot1Shift
	v |= uint64(xhash&uint32(c.restMask)) << c.xhashShift
	return Node(v)
}

// PackLeaf builds a layer-0 leaf node: idx is the raw index into the
// hash space, xhash the digit-0 rest-bits value.
func (c *NodeCodec) PackLeaf(idx, xhash uint32) Node {
	bucketID := idx >> c.slotBits
	slotID0 := idx & uint32(c.slotMask)
	return c.Pack(bucketID, slotID0, 0, xhash)
}

// BucketID extracts the shared-bucket field.
func (c *NodeCodec) BucketID(n Node) uint32 {
	return uint32(uint64(n)>>c.bucketShift) & uint32(c.bucketMask)
}

// SlotID0 extracts the first sibling slot field.
func (c *NodeCodec) SlotID0(n Node) uint32 {
	return uint32(uint64(n)>>c.slot0Shift) & uint32(c.slotMask)
}

// SlotID1 extracts the second sibling slot field.
func (c *NodeCodec) SlotID1(n Node) uint32 {
	return uint32(uint64(n)>>c.slot1Shift) & uint32(c.slotMask)
}

// XHash extracts the cached rest-bits field.
func (c *NodeCodec) XHash(n Node) uint32 {
	return uint32(uint64(n)>>c.xhashShift) & uint32(c.restMask)
}

// Index reconstructs a layer-0 leaf's raw index.
func (c *NodeCodec) Index(n Node) uint32 {
	return (c.BucketID(n) << c.slotBits) | c.SlotID0(n)
}
