// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sortedseq implements a gap-coded sorted sequence with random
// access, built on top of a bit vector and its rank/select indices.
//
// A monotone sequence a_0 <= a_1 <= ... <= a_n-1 is represented by writing,
// for each i, g_i = a_i - a_i-1 zero-bits followed by a one-bit into a
// single bit vector (a_0 is stored separately, and g_0 is taken to be 0).
// By construction, the cumulative number of zero-bits written up to and
// including the (i+1)-th one-bit equals a_i - a_0, so get(i) reduces to
// a_0 plus that zero-count at the position of the (i+1)-th one-bit.
package sortedseq

import (
	"github.com/tdcgo/tdc/bitselect"
	"github.com/tdcgo/tdc/bitvec"
	"github.com/tdcgo/tdc/rank"
)

// SortedSequence is an immutable, gap-coded, non-decreasing sequence with
// O(1) random access.
type SortedSequence struct {
	first int64
	n     int
	bv    *bitvec.BitVec
	r1    *rank.BitRank
	sel1  *bitselect.BitSelect
}

// Build constructs a SortedSequence from a non-decreasing slice a. Build
// panics if a is empty or not sorted.
func Build(a []int64) *SortedSequence {
	if len(a) == 0 {
		panic("sortedseq: empty input")
	}
	for i := 1; i < len(a); i++ {
		if a[i] < a[i-1] {
			panic("sortedseq: input is not sorted")
		}
	}

	n := len(a)
	bvLen := n + int(a[n-1]-a[0])
	bv := bitvec.New(bvLen)

	pos := 0
	prev := a[0]
	for i := 0; i < n; i++ {
		pos += int(a[i] - prev) // g_i zero-bits
		bv.Set(pos, 1)
		pos++
		prev = a[i]
	}

	return &SortedSequence{
		first: a[0],
		n:     n,
		bv:    bv,
		r1:    rank.New(bv),
		sel1:  bitselect.New(bv, 1),
	}
}

// Len returns the number of entries in the sequence.
func (s *SortedSequence) Len() int { return s.n }

// Get returns the i-th entry of the sequence (0-indexed).
func (s *SortedSequence) Get(i int) int64 {
	pos := s.sel1.Select(i + 1)
	ones := s.r1.Rank1(pos)
	zeros := (pos + 1) - ones
	return s.first + int64(zeros)
}
