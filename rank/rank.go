// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rank implements a constant-time rank1 query over a bit vector
// using a two-level superblock/block scheme.
package rank

import (
	"math/bits"

	"github.com/tdcgo/tdc/bitvec"
	"github.com/tdcgo/tdc/intvec"
)

// DefaultSuperblockBits is the default superblock size S (bits per
// superblock); blocks are always 64 bits (one BitVec word).
const DefaultSuperblockBits = 4096

// BitRank answers rank1 queries over a bitvec.BitVec in O(1), after an
// O(n) construction pass.
type BitRank struct {
	bv          *bitvec.BitVec
	superblock  []uint64     // cumulative 1-count at the start of each superblock
	block       *intvec.IntVec // 1-count since the start of the containing superblock, per 64-bit block
	superBits   int
	blocksPerSB int
}

// New builds a BitRank over bv with the default superblock size.
func New(bv *bitvec.BitVec) *BitRank {
	return NewWithSuperblockBits(bv, DefaultSuperblockBits)
}

// NewWithSuperblockBits builds a BitRank over bv with a superblock size of
// superBits bits; superBits must be a positive multiple of 64.
func NewWithSuperblockBits(bv *bitvec.BitVec, superBits int) *BitRank {
	if superBits <= 0 || superBits%64 != 0 {
		panic("rank: superblock size must be a positive multiple of 64")
	}
	blocksPerSB := superBits / 64
	numBlocks := bv.NumBlocks()
	numSB := (numBlocks + blocksPerSB - 1) / blocksPerSB
	if numSB == 0 {
		numSB = 1
	}

	// block[j] stores the popcount since the start of block j's superblock;
	// this is at most superBits-1, so ceil(log2(superBits)) bits suffice.
	blockWidth := uint(bits.Len(uint(superBits - 1)))
	if blockWidth == 0 {
		blockWidth = 1
	}

	r := &BitRank{
		bv:          bv,
		superblock:  make([]uint64, numSB),
		block:       intvec.New(numBlocks, blockWidth),
		superBits:   superBits,
		blocksPerSB: blocksPerSB,
	}
	r.build()
	return r
}

func (r *BitRank) build() {
	var total uint64
	var sbCount uint64
	for j := 0; j < r.bv.NumBlocks(); j++ {
		if j%r.blocksPerSB == 0 {
			r.superblock[j/r.blocksPerSB] = total
			sbCount = 0
		}
		r.block.Set(j, sbCount)
		popcount := uint64(bits.OnesCount64(r.bv.Block64(j)))
		sbCount += popcount
		total += popcount
	}
}

// Rank1 returns the number of 1-bits in bv[0, x], i.e. count_{0<=i<=x} bv[i].
// x must be in [0, bv.Len()).
func (r *BitRank) Rank1(x int) int {
	j := x >> 6
	i := x / r.superBits
	lowBits := uint(x&63) + 1
	var mask uint64
	if lowBits >= 64 {
		mask = ^uint64(0)
	} else {
		mask = (uint64(1) << lowBits) - 1
	}
	return int(r.superblock[i]) + int(r.block.Get(j)) + bits.OnesCount64(r.bv.Block64(j)&mask)
}
