// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bitselect implements constant-time select queries (locating the
// k-th set bit equal to a chosen value) over a bit vector, using a
// two-level superblock/block scheme mirroring the rank package.
package bitselect

import (
	"math/bits"

	"github.com/tdcgo/tdc/bitvec"
	"github.com/tdcgo/tdc/internal/bitops"
	"github.com/tdcgo/tdc/intvec"
	"github.com/tdcgo/tdc/rank"
)

// Default sampling parameters, per the specification.
const (
	DefaultSupSize   = 1024
	DefaultBlockSize = 32
)

// BitSelect answers select(k) queries for the k-th (1-indexed) bit equal to
// Bit in the underlying vector.
type BitSelect struct {
	bv       *bitvec.BitVec
	bit      uint8
	supSize  int
	blkSize  int
	maxCount int

	// positions of every SupSize-th and BlockSize-th occurrence of Bit,
	// the latter stored relative to the superblock it falls within.
	superblock []uint64
	block      *intvec.IntVec

	// ones answers how many 1-bits lie in any prefix of bv in O(1), letting
	// occurrencesBefore derive the matching-bit prefix count (of 1s
	// directly, of 0s by subtraction) without its own parallel array.
	ones *rank.BitRank
}

// New builds a BitSelect for the given bit value (0 or 1) over bv, using
// the default sampling parameters.
func New(bv *bitvec.BitVec, bit uint8) *BitSelect {
	return NewWithParams(bv, bit, DefaultSupSize, DefaultBlockSize)
}

// NewWithParams builds a BitSelect with explicit sampling parameters.
func NewWithParams(bv *bitvec.BitVec, bit uint8, supSize, blkSize int) *BitSelect {
	if bit != 0 && bit != 1 {
		panic("bitselect: bit must be 0 or 1")
	}
	s := &BitSelect{bv: bv, bit: bit, supSize: supSize, blkSize: blkSize}
	s.build()
	return s
}

func (s *BitSelect) matches(wordVal uint64) uint64 {
	if s.bit == 0 {
		return ^wordVal
	}
	return wordVal
}

func (s *BitSelect) build() {
	n := s.bv.Len()
	// first pass: count occurrences to size the sample arrays.
	count := 0
	for i := 0; i < n; i++ {
		if s.bv.Get(i) == uint64(s.bit) {
			count++
		}
	}
	s.maxCount = count

	numSup := count/s.supSize + 1
	numBlk := count/s.blkSize + 1
	blockWidth := uint(bits.Len(uint(s.supSize)))
	if blockWidth == 0 {
		blockWidth = 1
	}

	s.superblock = make([]uint64, numSup)
	s.block = intvec.New(numBlk, blockWidth)
	s.ones = rank.New(s.bv)

	occurrence := 0
	lastSupStart := 0
	for i := 0; i < n; i++ {
		if s.bv.Get(i) != uint64(s.bit) {
			continue
		}
		occurrence++
		if occurrence%s.supSize == 1 || s.supSize == 1 {
			lastSupStart = i
			s.superblock[(occurrence-1)/s.supSize] = uint64(i)
		}
		if occurrence%s.blkSize == 1 || s.blkSize == 1 {
			s.block.Set((occurrence-1)/s.blkSize, uint64(i-lastSupStart))
		}
	}
}

// Select returns the position of the k-th (1-indexed) bit equal to Bit, or
// bv.Len() if k is out of range ([1, maxCount]).
func (s *BitSelect) Select(k int) int {
	if k < 1 || k > s.maxCount {
		return s.bv.Len()
	}

	blkIdx := (k - 1) / s.blkSize
	blkOffset := int(s.block.Get(blkIdx))
	supStart := int(s.superblock[(k-1)/s.supSize])
	pos := supStart + blkOffset

	// scan forward word by word from pos, counting matching bits, until the
	// k-th one is found.
	wordIdx := pos >> 6
	have := s.occurrencesBefore(wordIdx << 6)
	need := k - have
	for {
		word := s.bv.Block64(wordIdx)
		pc := bits.OnesCount64(s.matches(word))
		if need <= pc {
			return (wordIdx << 6) + bitops.SelectInWord(word, s.bit, need)
		}
		need -= pc
		wordIdx++
	}
}

// occurrencesBefore counts occurrences of Bit in [0, pos) in O(1), via
// rank.BitRank's prefix 1-count (and, for Bit==0, subtracting it from pos);
// pos must be 64-aligned.
func (s *BitSelect) occurrencesBefore(pos int) int {
	ones := 0
	if pos > 0 {
		ones = s.ones.Rank1(pos - 1)
	}
	if s.bit == 1 {
		return ones
	}
	return pos - ones
}
