// Package geometry derives the bucket/slot layout of an Equihash(N, K)
// instance and the per-geometry bit-extraction strategy used by the
// digit engines.
//
// A C solver fixes all of this as preprocessor constants per build; Go
// has no per-build constant specialization without code generation, so
// Params is computed once at construction time and the hot loops read
// plain struct fields instead of re-deriving them.
package geometry

import (
	"fmt"

	equierrors "github.com/equisolve/equisolve/errors"
)

// RestBits is the rest-bits-per-layer used throughout this module. Every
// supported bucket-bit width pairs with 4 rest bits, so it is fixed here
// rather than threaded through every call site.
const RestBits = 4

// Params is the derived geometry for one Equihash(N, K) instance.
type Params struct {
	N uint32
	K uint32

	Digit     uint32 // n = N / (K+1)
	RestBits  uint32
	BuckBits  uint32 // n - RestBits
	NBuckets  uint32 // 1 << BuckBits
	SlotBits  uint32 // RestBits + 2
	NSlots    uint32 // 1 << SlotBits
	XFull     uint32 // NSlots / 4
	ProofSize uint32 // 1 << K

	// HashBytes is N/8, the byte length of one full Equihash hash.
	HashBytes uint32

	// HashesPerBlake is the number of N-bit Equihash hashes packed into a
	// single 512-bit Blake2b-512 output block.
	HashesPerBlake uint32
	// NBlocks is the number of Blake2b blocks needed to cover the full
	// 2^(n+1) hash space.
	NBlocks uint32
}

// New derives and validates the geometry for Equihash(N, K).
//
// Returns ErrInvalidParameters if N is not a positive byte-aligned
// multiple of K+1 or exceeds one Blake2b output block, ErrDigitTooNarrow
// if n < 16, and ErrUnsupportedGeometry for bucket-bit widths the
// extraction code does not handle.
func New(N, K uint32) (*Params, error) {
	if K == 0 || N == 0 || N%(K+1) != 0 || N%8 != 0 || N > 512 {
		return nil, equierrors.ErrInvalidParameters
	}
	digit := N / (K + 1)
	if digit <= RestBits {
		return nil, equierrors.ErrRestBitsOutOfRange
	}
	if digit < 16 {
		return nil, equierrors.ErrDigitTooNarrow
	}

	buckBits := digit - RestBits
	if !supportedGeometry(buckBits, RestBits) {
		return nil, fmt.Errorf("%w: bucket bits %d, rest bits %d", equierrors.ErrUnsupportedGeometry, buckBits, RestBits)
	}

	slotBits := uint32(RestBits + 2)
	nSlots := uint32(1) << slotBits

	hashesPerBlake := uint32(512) / N
	// The index space is (n+1) bits wide: 2^(n+1) hashes total. When
	// HashesPerBlake does not divide it evenly the last block's trailing
	// hashes are still used, so indices may run slightly past 2^(n+1).
	nHashes := uint32(1) << (digit + 1)
	nBlocks := (nHashes + hashesPerBlake - 1) / hashesPerBlake

	return &Params{
		N:              N,
		K:              K,
		Digit:          digit,
		RestBits:       RestBits,
		BuckBits:       buckBits,
		NBuckets:       uint32(1) << buckBits,
		SlotBits:       slotBits,
		NSlots:         nSlots,
		XFull:          nSlots / 4,
		ProofSize:      uint32(1) << K,
		HashBytes:      N / 8,
		HashesPerBlake: hashesPerBlake,
		NBlocks:        nBlocks,
	}, nil
}

// supportedGeometry reports whether (buckBits, restBits) is a
// combination the byte-extraction code handles: (12,4), (16,4), (20,4).
func supportedGeometry(buckBits, restBits uint32) bool {
	if restBits != 4 {
		return false
	}
	switch buckBits {
	case 12, 16, 20:
		return true
	default:
		return false
	}
}

// SupportsBitmapFinder reports whether slot indices fit a 64-bit mask,
// the requirement for the bitmap-form collision finder.
func (p *Params) SupportsBitmapFinder() bool {
	return p.SlotBits <= 6
}
