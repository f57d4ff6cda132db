// Package testvectors generates synthetic, deterministic hash blocks for
// fast unit tests that do not need to match the real Blake2b-keyed PRF
// byte-for-byte, only to be reproducible and well distributed across
// buckets. It layers two independent non-cryptographic hash families,
// github.com/zeebo/xxh3 and github.com/spaolacci/murmur3, since nothing
// here is a user-facing cryptographic boundary.
package testvectors

import (
	"encoding/binary"

	"github.com/spaolacci/murmur3"
	"github.com/zeebo/xxh3"
)

// Stream produces an endless sequence of pseudo-random bytes from a
// fixed seed, used in tests as a stand-in for a real Blake2b PRF output
// block. Two independent families are interleaved so a weakness in one
// (short cycle, correlated bits) can't quietly make every test bucket
// collide the same way.
type Stream struct {
	seed    uint64
	counter uint64
}

// NewStream builds a stream for the given seed. The same seed always
// produces the same byte sequence.
func NewStream(seed uint64) *Stream {
	return &Stream{seed: seed}
}

// Next8 returns the next 8 pseudo-random bytes in the stream.
func (s *Stream) Next8() [8]byte {
	var in [16]byte
	binary.LittleEndian.PutUint64(in[0:8], s.seed)
	binary.LittleEndian.PutUint64(in[8:16], s.counter)
	s.counter++

	var out [8]byte
	if s.counter%2 == 0 {
		binary.LittleEndian.PutUint64(out[:], xxh3.Hash(in[:]))
	} else {
		binary.LittleEndian.PutUint64(out[:], murmur3.Sum64(in[:]))
	}
	return out
}

// Fill writes deterministic pseudo-random bytes into buf.
func (s *Stream) Fill(buf []byte) {
	for len(buf) > 0 {
		chunk := s.Next8()
		n := copy(buf, chunk[:])
		buf = buf[n:]
	}
}

// Block generates a synthetic Blake2b-sized (64-byte) output block for
// the given seed and block index, standing in for a keyed Blake2b state
// plus a block counter.
func Block(seed uint64, blockIndex uint32) [64]byte {
	s := NewStream(seed ^ uint64(blockIndex)<<32 ^ uint64(blockIndex))
	var out [64]byte
	s.Fill(out[:])
	return out
}

// Fingerprint computes a 64-bit summary of a solution index list, so
// tests can compare fixture solutions without comparing full index
// slices.
func Fingerprint(indices []uint32) uint64 {
	buf := make([]byte, 4*len(indices))
	for i, idx := range indices {
		binary.LittleEndian.PutUint32(buf[i*4:], idx)
	}
	return xxh3.Hash(buf)
}
