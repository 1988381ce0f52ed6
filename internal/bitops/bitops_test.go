// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bitops

import (
	"math/rand"
	"testing"
)

func TestPext(t *testing.T) {
	cases := []struct {
		x, mask, want uint64
	}{
		{0b1011, 0b1111, 0b1011},
		{0b1011, 0b1010, 0b11},
		{0xFF00, 0xF0F0, 0xF0},
		{0, 0xFFFFFFFFFFFFFFFF, 0},
	}
	for _, c := range cases {
		if got := Pext(c.x, c.mask); got != c.want {
			t.Errorf("Pext(%#x, %#x) = %#x, want %#x", c.x, c.mask, got, c.want)
		}
	}
}

func TestPextRandomAgainstReference(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 1000; i++ {
		x := r.Uint64()
		mask := r.Uint64()
		got := Pext(x, mask)
		want := referencePext(x, mask)
		if got != want {
			t.Fatalf("Pext(%#x, %#x) = %#x, want %#x", x, mask, got, want)
		}
	}
}

func referencePext(x, mask uint64) uint64 {
	var result uint64
	var pos uint
	for i := 0; i < 64; i++ {
		bit := uint64(1) << uint(i)
		if mask&bit != 0 {
			if x&bit != 0 {
				result |= 1 << pos
			}
			pos++
		}
	}
	return result
}

func TestPcmpgtub(t *testing.T) {
	a := Repeat(5)
	b := Repeat(3)
	if got, want := Pcmpgtub(a, b), Repeat(0x80); got != want {
		t.Errorf("Pcmpgtub(5s, 3s) = %#x, want %#x", got, want)
	}
	if got := Pcmpgtub(b, a); got != 0 {
		t.Errorf("Pcmpgtub(3s, 5s) = %#x, want 0", got)
	}
}

func TestRank(t *testing.T) {
	// packed array of bytes [1, 3, 5, 7, 0xFF, 0xFF, 0xFF, 0xFF] (byte 0 in
	// the lowest position), unused rows sentineled to 0xFF.
	var array uint64
	vals := []uint8{1, 3, 5, 7, 0xFF, 0xFF, 0xFF, 0xFF}
	for i, v := range vals {
		array |= uint64(v) << (8 * i)
	}

	tests := []struct {
		cx   uint8
		want int
	}{
		{0, -1},
		{1, 0},
		{2, 0},
		{3, 1},
		{4, 1},
		{5, 2},
		{7, 3},
		{8, 3},
		{0xFF, 7},
	}
	for _, tc := range tests {
		if got := Rank(Repeat(tc.cx), array); got != tc.want {
			t.Errorf("Rank(%d) = %d, want %d", tc.cx, got, tc.want)
		}
	}
}

func TestSelectInWord(t *testing.T) {
	word := uint64(0b1010_0110) // bits 1,2,5,7 set
	cases := []struct {
		k    int
		want int
	}{
		{1, 1}, {2, 2}, {3, 5}, {4, 7}, {5, 64},
	}
	for _, c := range cases {
		if got := SelectInWord(word, 1, c.k); got != c.want {
			t.Errorf("SelectInWord(k=%d) = %d, want %d", c.k, got, c.want)
		}
	}
}

func TestPopcountClzCtz(t *testing.T) {
	if Popcount(0b1011) != 3 {
		t.Errorf("Popcount wrong")
	}
	if Clz(1) != 63 {
		t.Errorf("Clz wrong: %d", Clz(1))
	}
	if Ctz(0b1000) != 3 {
		t.Errorf("Ctz wrong")
	}
}
