package geometry

// Layout is the per-layer byte/word layout derived for digit r. The
// arena computes one per layer when it is built, not per slot.
type Layout struct {
	// NextHashUnits/NextBO describe the hash stored by layer r: word count
	// and the 0-3 byte offset inside the first word so the stored bytes
	// are right-aligned.
	NextHashUnits uint32
	NextBO        uint32

	// PrevHashUnits/PrevBO describe the hash layer r reads from (layer
	// r-1); zero when r == 0, which has no previous layer.
	PrevHashUnits uint32
	PrevBO        uint32

	// DUnits is the word-count shrink between layer r-1 and layer r,
	// either 0 or 1.
	DUnits uint32
}

// hashSizeBytes returns the number of bytes needed to store the hash
// remaining after digit r has been consumed. Rest bits live in the tree
// node, not the stored hash, so they do not add to the width.
func hashSizeBytes(p *Params, r uint32) uint32 {
	hashBits := p.N - (r+1)*p.Digit
	return (hashBits + 7) / 8
}

func hashWords(bytes uint32) uint32 {
	return (bytes + 3) / 4
}

// NewLayout derives the Layout for digit r in 0..K.
func NewLayout(p *Params, r uint32) Layout {
	nextBytes := hashSizeBytes(p, r)
	nextUnits := hashWords(nextBytes)
	l := Layout{
		NextHashUnits: nextUnits,
		NextBO:        nextUnits*4 - nextBytes,
	}
	if r > 0 {
		prevBytes := hashSizeBytes(p, r-1)
		prevUnits := hashWords(prevBytes)
		l.PrevHashUnits = prevUnits
		l.PrevBO = prevUnits*4 - prevBytes
		l.DUnits = prevUnits - nextUnits
	}
	return l
}
