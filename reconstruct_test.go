package equisolve

import (
	"fmt"
	"testing"
)

func TestOrderIndices(t *testing.T) {
	tests := []struct {
		name string
		a, b []uint32
		want []uint32
	}{
		{"already ordered", []uint32{2, 9}, []uint32{5, 6}, []uint32{2, 9, 5, 6}},
		{"swapped", []uint32{5, 6}, []uint32{2, 9}, []uint32{2, 9, 5, 6}},
		{"single leaves", []uint32{8}, []uint32{3}, []uint32{3, 8}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := orderIndices(tc.a, tc.b)
			if fmt.Sprint(got) != fmt.Sprint(tc.want) {
				t.Errorf("orderIndices = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestIndexFingerprint(t *testing.T) {
	a := []uint32{2261, 15185, 36112}
	if fingerprint(a) != fingerprint([]uint32{2261, 15185, 36112}) {
		t.Fatal("equal index lists must fingerprint equally")
	}
	if fingerprint(a) == fingerprint([]uint32{15185, 2261, 36112}) {
		t.Fatal("reordered index lists must fingerprint differently")
	}
}
