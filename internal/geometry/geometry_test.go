package geometry

import (
	"errors"
	"testing"

	equierrors "github.com/equisolve/equisolve/errors"
)

func TestNewDerivation(t *testing.T) {
	tests := []struct {
		name           string
		n, k           uint32
		digit          uint32
		buckBits       uint32
		nBuckets       uint32
		nSlots         uint32
		proofSize      uint32
		hashesPerBlake uint32
		nBlocks        uint32
	}{
		{
			name: "production 200/9", n: 200, k: 9,
			digit: 20, buckBits: 16, nBuckets: 1 << 16, nSlots: 64,
			proofSize: 512, hashesPerBlake: 2, nBlocks: 1 << 20,
		},
		{
			name: "tiny 96/5", n: 96, k: 5,
			digit: 16, buckBits: 12, nBuckets: 1 << 12, nSlots: 64,
			proofSize: 32, hashesPerBlake: 5, nBlocks: 26215,
		},
		{
			name: "wide buckets 144/5", n: 144, k: 5,
			digit: 24, buckBits: 20, nBuckets: 1 << 20, nSlots: 64,
			proofSize: 32, hashesPerBlake: 3, nBlocks: 11184811,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, err := New(tc.n, tc.k)
			if err != nil {
				t.Fatalf("New(%d, %d): %v", tc.n, tc.k, err)
			}
			if p.Digit != tc.digit {
				t.Errorf("Digit = %d, want %d", p.Digit, tc.digit)
			}
			if p.BuckBits != tc.buckBits {
				t.Errorf("BuckBits = %d, want %d", p.BuckBits, tc.buckBits)
			}
			if p.NBuckets != tc.nBuckets {
				t.Errorf("NBuckets = %d, want %d", p.NBuckets, tc.nBuckets)
			}
			if p.NSlots != tc.nSlots {
				t.Errorf("NSlots = %d, want %d", p.NSlots, tc.nSlots)
			}
			if p.XFull != tc.nSlots/4 {
				t.Errorf("XFull = %d, want %d", p.XFull, tc.nSlots/4)
			}
			if p.ProofSize != tc.proofSize {
				t.Errorf("ProofSize = %d, want %d", p.ProofSize, tc.proofSize)
			}
			if p.HashesPerBlake != tc.hashesPerBlake {
				t.Errorf("HashesPerBlake = %d, want %d", p.HashesPerBlake, tc.hashesPerBlake)
			}
			if p.NBlocks != tc.nBlocks {
				t.Errorf("NBlocks = %d, want %d", p.NBlocks, tc.nBlocks)
			}
			if p.HashBytes != tc.n/8 {
				t.Errorf("HashBytes = %d, want %d", p.HashBytes, tc.n/8)
			}
			// The blocks together must cover the whole index space.
			if p.NBlocks*p.HashesPerBlake < 1<<(p.Digit+1) {
				t.Errorf("NBlocks*HashesPerBlake = %d does not cover 2^%d hashes",
					p.NBlocks*p.HashesPerBlake, p.Digit+1)
			}
		})
	}
}

func TestNewErrors(t *testing.T) {
	tests := []struct {
		name string
		n, k uint32
		want error
	}{
		{"zero N", 0, 9, equierrors.ErrInvalidParameters},
		{"zero K", 200, 0, equierrors.ErrInvalidParameters},
		{"N not multiple of K+1", 200, 8, equierrors.ErrInvalidParameters},
		{"N not byte aligned", 90, 9, equierrors.ErrInvalidParameters},
		{"N past one blake block", 1024, 1, equierrors.ErrInvalidParameters},
		{"digit below 16", 96, 7, equierrors.ErrDigitTooNarrow},
		{"unsupported bucket width", 200, 7, equierrors.ErrUnsupportedGeometry},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.n, tc.k)
			if !errors.Is(err, tc.want) {
				t.Fatalf("New(%d, %d) = %v, want %v", tc.n, tc.k, err, tc.want)
			}
		})
	}
}

func TestLayoutProgression(t *testing.T) {
	type row struct {
		nextUnits, nextBO, prevUnits, prevBO, dUnits uint32
	}
	tests := []struct {
		name string
		n, k uint32
		rows []row
	}{
		{
			name: "200/9", n: 200, k: 9,
			rows: []row{
				{6, 1, 0, 0, 0},
				{5, 0, 6, 1, 1},
				{5, 2, 5, 0, 0},
				{4, 1, 5, 2, 1},
				{4, 3, 4, 1, 0},
				{3, 2, 4, 3, 1},
				{2, 0, 3, 2, 1},
				{2, 3, 2, 0, 0},
				{1, 1, 2, 3, 1},
				{0, 0, 1, 1, 1},
			},
		},
		{
			name: "96/5", n: 96, k: 5,
			rows: []row{
				{3, 2, 0, 0, 0},
				{2, 0, 3, 2, 1},
				{2, 2, 2, 0, 0},
				{1, 0, 2, 2, 1},
				{1, 2, 1, 0, 0},
				{0, 0, 1, 2, 1},
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, err := New(tc.n, tc.k)
			if err != nil {
				t.Fatal(err)
			}
			for r, want := range tc.rows {
				l := NewLayout(p, uint32(r))
				got := row{l.NextHashUnits, l.NextBO, l.PrevHashUnits, l.PrevBO, l.DUnits}
				if got != want {
					t.Errorf("layer %d: layout = %+v, want %+v", r, got, want)
				}
			}
		})
	}
}

// Same-parity layers must never grow in word count: that is what lets
// one heap per parity hold every layer assigned to it.
func TestLayoutParityShrinks(t *testing.T) {
	for _, params := range [][2]uint32{{200, 9}, {96, 5}, {144, 5}} {
		p, err := New(params[0], params[1])
		if err != nil {
			t.Fatal(err)
		}
		for r := uint32(2); r <= p.K; r++ {
			cur := NewLayout(p, r).NextHashUnits
			prev := NewLayout(p, r-2).NextHashUnits
			if cur > prev {
				t.Errorf("(%d, %d): layer %d has %d words, layer %d only %d",
					params[0], params[1], r, cur, r-2, prev)
			}
			if d := NewLayout(p, r).DUnits; d > 1 {
				t.Errorf("(%d, %d): layer %d shrinks by %d words in one step",
					params[0], params[1], r, d)
			}
		}
	}
}

func TestSupportsBitmapFinder(t *testing.T) {
	p, err := New(96, 5)
	if err != nil {
		t.Fatal(err)
	}
	if !p.SupportsBitmapFinder() {
		t.Errorf("SlotBits = %d: bitmap finder should be supported", p.SlotBits)
	}
	wide := &Params{SlotBits: 7}
	if wide.SupportsBitmapFinder() {
		t.Error("SlotBits = 7: bitmap finder must not be supported")
	}
}
