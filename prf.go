package equisolve

import (
	"encoding"
	"encoding/binary"

	"golang.org/x/crypto/blake2b"

	equierrors "github.com/equisolve/equisolve/errors"
)

// prf is the keyed Blake2b-512 state every layer-0 hash block derives
// from: one base state absorbs the personalization, header, and nonce,
// and each block's 64-byte output comes from a copy of that state plus a
// 4-byte little-endian block counter.
//
// golang.org/x/crypto/blake2b exposes no personalization parameter, so
// the "ZcashPoW" || N_le32 || K_le32 personalization is folded into the
// keying material instead: key = Blake2b-512(personalization). The key is
// absorbed as the first 64 bytes of input to an unkeyed digest rather
// than through Blake2b's keyed mode, because the library refuses to
// serialize keyed digests. The PRF stays keyed and instance-bound either
// way.
type prf struct {
	// snapshot is the serialized base state. blockHash restores it into
	// a fresh digest, so workers can derive blocks concurrently without
	// sharing mutable hash state.
	snapshot []byte
}

func newPRF(n, k uint32, personalization string, header []byte, nonce uint32) (*prf, error) {
	person := make([]byte, 0, len(personalization)+8)
	person = append(person, personalization...)
	person = binary.LittleEndian.AppendUint32(person, n)
	person = binary.LittleEndian.AppendUint32(person, k)

	key := blake2b.Sum512(person)
	h, err := blake2b.New512(nil)
	if err != nil {
		return nil, err
	}
	m, ok := h.(encoding.BinaryMarshaler)
	if !ok {
		return nil, equierrors.ErrPRFNotCloneable
	}

	if _, err := h.Write(key[:]); err != nil {
		return nil, err
	}
	if _, err := h.Write(header); err != nil {
		return nil, err
	}
	var nonceBytes [4]byte
	binary.LittleEndian.PutUint32(nonceBytes[:], nonce)
	if _, err := h.Write(nonceBytes[:]); err != nil {
		return nil, err
	}

	snapshot, err := m.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return &prf{snapshot: snapshot}, nil
}

// blockHash returns the 64-byte Blake2b output for the given block
// index. The base state is never mutated, so calls are safe from any
// number of goroutines.
func (p *prf) blockHash(block uint32) ([]byte, error) {
	h, err := blake2b.New512(nil)
	if err != nil {
		return nil, err
	}
	u, ok := h.(encoding.BinaryUnmarshaler)
	if !ok {
		return nil, equierrors.ErrPRFNotCloneable
	}
	if err := u.UnmarshalBinary(p.snapshot); err != nil {
		return nil, err
	}

	var leb [4]byte
	binary.LittleEndian.PutUint32(leb[:], block)
	if _, err := h.Write(leb[:]); err != nil {
		return nil, err
	}
	return h.Sum(nil), nil
}
