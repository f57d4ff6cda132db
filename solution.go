package equisolve

// Solution is one accepted Equihash proof: 2^K distinct indices into the
// hash space, in strictly increasing order.
type Solution struct {
	Indices []uint32
}
