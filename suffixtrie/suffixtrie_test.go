// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package suffixtrie

import (
	"bytes"
	"math/rand"
	"sort"
	"testing"
)

func bruteForceSuffixOrder(r []int) []int {
	n := len(r)
	sa := make([]int, n)
	for i := range sa {
		sa[i] = i
	}
	sort.Slice(sa, func(a, b int) bool {
		i, j := sa[a], sa[b]
		for i < n && j < n {
			if r[i] != r[j] {
				return r[i] < r[j]
			}
			i++
			j++
		}
		return (n - sa[a]) < (n - sa[b])
	})
	return sa
}

func commonPrefixLen(r []int, i, j int) int {
	n := len(r)
	l := 0
	for i+l < n && j+l < n && r[i+l] == r[j+l] {
		l++
	}
	return l
}

func TestSuffixArrayAgainstBruteForce(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	for trial := 0; trial < 30; trial++ {
		n := rnd.Intn(40) + 1
		r := make([]int, n)
		for i := range r {
			r[i] = rnd.Intn(4) + 1 // small alphabet to force ties
		}
		r = append(r, 0) // unique terminator smaller than all symbols

		got := buildSuffixArray(r)
		want := bruteForceSuffixOrder(r)
		if !equalInts(got, want) {
			t.Fatalf("trial %d: buildSuffixArray(%v) = %v, want %v", trial, r, got, want)
		}
	}
}

func TestKasaiAgainstBruteForce(t *testing.T) {
	rnd := rand.New(rand.NewSource(2))
	for trial := 0; trial < 30; trial++ {
		n := rnd.Intn(40) + 1
		r := make([]int, n)
		for i := range r {
			r[i] = rnd.Intn(4) + 1
		}
		r = append(r, 0)

		sa := buildSuffixArray(r)
		lcp := kasaiLCP(r, sa)
		for i := 1; i < len(sa); i++ {
			want := commonPrefixLen(r, sa[i-1], sa[i])
			if lcp[i] != want {
				t.Fatalf("trial %d: lcp[%d] = %d, want %d (sa[i-1]=%d, sa[i]=%d)", trial, i, lcp[i], want, sa[i-1], sa[i])
			}
		}
		if lcp[0] != 0 {
			t.Fatalf("trial %d: lcp[0] = %d, want 0", trial, lcp[0])
		}
	}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func bruteForceOccurrences(data []byte, window int, sub []byte) (min, max int) {
	min, max = -1, -1
	for pos := 0; pos < window; pos++ {
		if pos+len(sub) > len(data) {
			continue
		}
		if bytes.Equal(data[pos:pos+len(sub)], sub) {
			if min == -1 || pos < min {
				min = pos
			}
			if pos > max {
				max = pos
			}
		}
	}
	return min, max
}

func TestBuildRootCoversWholeWindow(t *testing.T) {
	data := []byte("banana")
	window := len(data)
	trie := Build(data, window)

	if got := trie.Root().MinPos(); got != 0 {
		t.Fatalf("Root().MinPos() = %d, want 0", got)
	}
	if got := trie.Root().MaxPos(); got != window-1 {
		t.Fatalf("Root().MaxPos() = %d, want %d", got, window-1)
	}
}

func TestBuildMatchesBruteForceOccurrences(t *testing.T) {
	data := []byte("banana")
	window := len(data)
	trie := Build(data, window)

	for _, sub := range [][]byte{[]byte("a"), []byte("an"), []byte("ana"), []byte("na"), []byte("nan"), []byte("ban")} {
		cur := trie.Cursor()
		ok := true
		for _, c := range sub {
			if !cur.Descend(c) {
				ok = false
				break
			}
		}
		wantMin, wantMax := bruteForceOccurrences(data, window, sub)
		if !ok {
			if wantMin != -1 {
				t.Fatalf("substring %q: trie has no path for it, but brute force found occurrences at [%d,%d]", sub, wantMin, wantMax)
			}
			continue
		}
		gotMin, gotMax := cur.Node().MinPos(), cur.Node().MaxPos()
		if gotMin != wantMin || gotMax != wantMax {
			t.Fatalf("substring %q: trie gives [%d,%d], brute force gives [%d,%d]", sub, gotMin, gotMax, wantMin, wantMax)
		}
	}
}

func TestBuildWithEmbeddedZeroByte(t *testing.T) {
	data := []byte{1, 0, 2, 0, 1, 0}
	window := len(data)
	trie := Build(data, window)

	if got := trie.Root().MinPos(); got != 0 {
		t.Fatalf("Root().MinPos() = %d, want 0", got)
	}
	if got := trie.Root().MaxPos(); got != window-1 {
		t.Fatalf("Root().MaxPos() = %d, want %d", got, window-1)
	}

	cur := trie.Cursor()
	if !cur.Descend(0) {
		t.Fatalf("could not descend on embedded zero byte")
	}
}

func TestBuildRandomizedAgainstBruteForce(t *testing.T) {
	rnd := rand.New(rand.NewSource(5))
	for trial := 0; trial < 20; trial++ {
		n := rnd.Intn(30) + 2
		data := make([]byte, n)
		for i := range data {
			data[i] = byte(rnd.Intn(3))
		}
		trie := Build(data, n)

		for subLen := 1; subLen <= 3 && subLen <= n; subLen++ {
			for start := 0; start+subLen <= n; start++ {
				sub := data[start : start+subLen]
				cur := trie.Cursor()
				ok := true
				for _, c := range sub {
					if !cur.Descend(c) {
						ok = false
						break
					}
				}
				wantMin, wantMax := bruteForceOccurrences(data, n, sub)
				if !ok {
					if wantMin != -1 {
						t.Fatalf("trial %d: substring %v missing from trie, brute force found [%d,%d]", trial, sub, wantMin, wantMax)
					}
					continue
				}
				gotMin, gotMax := cur.Node().MinPos(), cur.Node().MaxPos()
				if gotMin != wantMin || gotMax != wantMax {
					t.Fatalf("trial %d: substring %v gives [%d,%d], want [%d,%d]", trial, sub, gotMin, gotMax, wantMin, wantMax)
				}
			}
		}
	}
}
