package geometry

import "testing"

func mustParams(t *testing.T, n, k uint32) *Params {
	t.Helper()
	p, err := New(n, k)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestDigit0Extraction(t *testing.T) {
	window := []byte{0xAB, 0xCD, 0xEF}
	tests := []struct {
		name          string
		n, k          uint32
		bucket, xhash uint32
	}{
		{"bucket bits 16", 200, 9, 0xABCD, 0xE},
		{"bucket bits 12", 96, 5, 0xABC, 0xD},
		{"bucket bits 20", 144, 5, 0xABCDE, 0xF},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := NewBucketExtractor(mustParams(t, tc.n, tc.k))
			bucket, xhash := e.Digit0(window)
			if bucket != tc.bucket || xhash != tc.xhash {
				t.Errorf("Digit0 = (%#x, %#x), want (%#x, %#x)", bucket, xhash, tc.bucket, tc.xhash)
			}
		})
	}
}

func TestInterLayerAlternation(t *testing.T) {
	window := []byte{0xAB, 0xCD, 0xEF}

	// n=20 is not byte aligned: odd layers read 4 bits in.
	e := NewBucketExtractor(mustParams(t, 200, 9))
	bucket, xhash := e.InterLayer(1, window)
	if bucket != 0xBCDE || xhash != 0xF {
		t.Errorf("odd layer = (%#x, %#x), want (0xbcde, 0xf)", bucket, xhash)
	}
	bucket, xhash = e.InterLayer(2, window)
	if bucket != 0xABCD || xhash != 0xE {
		t.Errorf("even layer = (%#x, %#x), want (0xabcd, 0xe)", bucket, xhash)
	}

	// n=16 stays byte aligned: odd and even layers read identically.
	e = NewBucketExtractor(mustParams(t, 96, 5))
	for r := uint32(1); r <= 4; r++ {
		bucket, xhash = e.InterLayer(r, window)
		if bucket != 0xABC || xhash != 0xD {
			t.Errorf("layer %d = (%#x, %#x), want (0xabc, 0xd)", r, bucket, xhash)
		}
	}
}
