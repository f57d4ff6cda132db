// Package equisolve implements an Equihash(N, K) proof-of-work solver:
// a layered bucket-hashing engine that finds collisions across K+1 hash
// digits and emits valid solutions via Wagner's generalized birthday
// algorithm.
//
// Given 2^(n+1) hashes derived from a keyed Blake2b-512 state (where
// n = N/(K+1)), the solver finds sets of 2^K distinct indices whose
// hashes XOR to zero, with every sub-XOR at tree height i zeroing i*n
// leading bits. It works layer by layer: layer 0 seeds bucketed slots
// from the Blake2b stream, each intermediate layer XORs colliding pairs
// and rebuckets the shrinking residual hashes, and the final layer
// accepts pairs whose entire remaining hash matches. Memory is bounded:
// two ping-ponged heaps sized to the widest layer of each parity, with
// bucket overflows dropped rather than reallocated.
//
// # Basic Usage
//
//	solver, err := equisolve.New(200, 9, equisolve.WithWorkers(8))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer solver.Close()
//
//	if err := solver.SetNonce(headerBytes, nonce); err != nil {
//	    log.Fatal(err)
//	}
//	solutions, err := solver.Run()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, sol := range solutions {
//	    fmt.Println(sol.Indices)
//	}
//
// # Package Structure
//
// The implementation is organized as follows:
//
//   - Public API: solver.go (New, SetNonce, Run, Close), solution.go
//   - Configuration: options.go (Option, With* functions)
//   - Diagnostics: stats.go (overflow counters, occupancy histograms)
//   - Digit engines: digit0.go (seed), digits.go (intermediate XOR
//     layers), digitk.go (final acceptance)
//   - Solution recovery: reconstruct.go (tree walk, canonical ordering)
//   - Worker pool: driver.go, internal/barrier (layer lockstep)
//   - Storage: internal/arena (slots, node packing, heap recycling)
//   - Geometry: internal/geometry (parameter derivation, bit extraction)
//   - Collision detection: internal/collision (array and bitmap finders)
package equisolve
