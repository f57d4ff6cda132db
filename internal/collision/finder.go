// Package collision implements the per-bucket collision finder: given a
// bucket's live slots, each tagged with a small "rest bits" value, it
// enumerates every pair of slots sharing the same rest value.
//
// Two interchangeable forms are provided: Array caps each rest-value
// bucket at a small fixed array; Bitmap uses a 64-bit bitmap per rest
// value and requires slot indices to fit 6 bits. Both satisfy the same
// Finder interface so the digit engines never care which one they were
// given.
package collision

import (
	equierrors "github.com/equisolve/equisolve/errors"
	"github.com/equisolve/equisolve/internal/geometry"
)

// Finder groups a bucket's slots by rest-bits value and enumerates
// colliding pairs. Usage per bucket:
//
//	f.Clear()
//	for s1 := range liveSlots {
//	    if !f.AddSlot(s1, xhashOf(s1)) { xfull++; continue }
//	    for f.NextCollision() {
//	        s0 := f.Slot()
//	        // (s0, s1) share a rest-bits value; s0 was added before s1.
//	    }
//	}
type Finder interface {
	Clear()
	// AddSlot records slot s1 under rest value xh, and arms the finder
	// to replay every previously recorded slot sharing xh against it.
	// Returns false (without recording) if xh's rest-bucket is full.
	AddSlot(s1, xh uint32) bool
	// NextCollision reports whether another colliding slot remains for
	// the most recent AddSlot call.
	NextCollision() bool
	// Slot returns the next colliding slot index; only valid while
	// NextCollision is true.
	Slot() uint32
}

// NRests is the number of distinct rest-bits values (1 << RestBits). It
// is a package constant because geometry.RestBits is fixed at 4 across
// every supported geometry.
const NRests = 1 << geometry.RestBits

// New builds the finder for p, preferring the bitmap form when useBitmap
// is true. Returns ErrSlotBitsTooWide if useBitmap is requested but
// p.SlotBits > 6.
func New(p *geometry.Params, useBitmap bool) (Finder, error) {
	if useBitmap {
		if !p.SupportsBitmapFinder() {
			return nil, equierrors.ErrSlotBitsTooWide
		}
		return NewBitmap(), nil
	}
	return NewArray(p.XFull), nil
}
