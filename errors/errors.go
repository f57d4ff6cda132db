// Package errors defines all exported error sentinels for the equisolve
// module.
//
// This is the single source of truth for error values. Both the root
// equisolve package and internal algorithm packages import from here,
// ensuring errors.Is checks work across package boundaries.
package errors

import "errors"

// Parameter errors.
var (
	ErrInvalidParameters   = errors.New("equisolve: N must be a positive byte-aligned multiple of K+1, at most 512")
	ErrDigitTooNarrow      = errors.New("equisolve: n = N/(K+1) must be >= 16")
	ErrRestBitsOutOfRange  = errors.New("equisolve: rest bits must be in (0, n)")
	ErrUnsupportedGeometry = errors.New("equisolve: unsupported bucket-bits/rest-bits combination")
	ErrSlotBitsTooWide     = errors.New("equisolve: bitmap collision finder requires slot bits <= 6")
	ErrInvalidWorkerCount  = errors.New("equisolve: worker count must be >= 1")
)

// Solver lifecycle errors.
var (
	ErrSolverClosed    = errors.New("equisolve: solver is closed")
	ErrNotKeyed        = errors.New("equisolve: Run called before SetNonce")
	ErrPRFNotCloneable = errors.New("equisolve: blake2b state does not support cloning")
)
