package arena

import (
	"testing"

	"github.com/equisolve/equisolve/internal/geometry"
)

func mustParams(t *testing.T, n, k uint32) *geometry.Params {
	t.Helper()
	p, err := geometry.New(n, k)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestNodeCodecRoundTrip(t *testing.T) {
	for _, params := range [][2]uint32{{200, 9}, {96, 5}, {144, 5}} {
		p := mustParams(t, params[0], params[1])
		c := NewNodeCodec(p)

		cases := []struct {
			bucket, s0, s1, xhash uint32
		}{
			{0, 0, 0, 0},
			{p.NBuckets - 1, p.NSlots - 1, p.NSlots - 1, 15},
			{p.NBuckets / 2, 1, p.NSlots - 2, 7},
			{1, p.NSlots - 1, 0, 15},
		}
		for _, tc := range cases {
			n := c.Pack(tc.bucket, tc.s0, tc.s1, tc.xhash)
			if got := c.BucketID(n); got != tc.bucket {
				t.Errorf("(%d,%d): BucketID = %d, want %d", params[0], params[1], got, tc.bucket)
			}
			if got := c.SlotID0(n); got != tc.s0 {
				t.Errorf("(%d,%d): SlotID0 = %d, want %d", params[0], params[1], got, tc.s0)
			}
			if got := c.SlotID1(n); got != tc.s1 {
				t.Errorf("(%d,%d): SlotID1 = %d, want %d", params[0], params[1], got, tc.s1)
			}
			if got := c.XHash(n); got != tc.xhash {
				t.Errorf("(%d,%d): XHash = %d, want %d", params[0], params[1], got, tc.xhash)
			}
		}
	}
}

func TestNodeCodecLeafRoundTrip(t *testing.T) {
	p := mustParams(t, 96, 5)
	c := NewNodeCodec(p)

	// The index space covers 2^(n+1) hashes plus the tail of the last
	// whole block.
	maxIdx := p.NBlocks*p.HashesPerBlake - 1
	for _, idx := range []uint32{0, 1, 63, 64, 2261, 133983, maxIdx} {
		leaf := c.PackLeaf(idx, 9)
		if got := c.Index(leaf); got != idx {
			t.Errorf("Index(PackLeaf(%d)) = %d", idx, got)
		}
		if got := c.XHash(leaf); got != 9 {
			t.Errorf("XHash(PackLeaf(%d)) = %d, want 9", idx, got)
		}
	}
}
