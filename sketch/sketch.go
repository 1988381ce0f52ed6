// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sketch implements the count-min sketch of Cormode &
// Muthukrishnan, 2004: a d-row, w-column matrix of counters giving a
// one-sided (never-under, possibly-over) frequency estimate for any key
// in O(d) time and O(d*w) space.
package sketch

import "math/rand"

// mersennePrime is 2^19 - 1, the modulus each row's hash is reduced into
// before being folded down to a column index.
const mersennePrime = 1<<19 - 1

// CountMinSketch is a d x w matrix of uint32 counters with one
// multiplicative hash function per row.
type CountMinSketch struct {
	width, depth int
	mult         []uint32
	data         [][]uint32
}

// New constructs a CountMinSketch with the given width (columns) and
// depth (rows), deriving its per-row hash multipliers from seed.
func New(width, depth int, seed uint64) *CountMinSketch {
	if width <= 0 || depth <= 0 {
		panic("sketch: width and depth must be positive")
	}
	s := &CountMinSketch{
		width: width,
		depth: depth,
		mult:  make([]uint32, depth),
		data:  make([][]uint32, depth),
	}
	rnd := rand.New(rand.NewSource(int64(seed)))
	for i := 0; i < depth; i++ {
		s.mult[i] = randomMultiplier(rnd)
		s.data[i] = make([]uint32, width)
	}
	return s
}

// randomMultiplier draws a 32-bit value with every nibble forced
// non-zero, so that the per-row hash never degenerates into a sparse
// multiplier with long runs of zero bits.
func randomMultiplier(rnd *rand.Rand) uint32 {
	var m uint32
	for nibble := 0; nibble < 8; nibble++ {
		v := uint32(rnd.Intn(15) + 1) // 1..15
		m |= v << (4 * nibble)
	}
	return m
}

// column hashes key into a column index for the given row: it multiplies
// the low and high 32-bit halves of key by that row's multiplier, XORs
// the two products, and reduces the result modulo the Mersenne prime
// 2^19-1 before folding it into [0, width).
func (s *CountMinSketch) column(row int, key uint64) int {
	lo := uint32(key)
	hi := uint32(key >> 32)
	m := uint64(s.mult[row])
	p1 := uint64(lo) * m
	p2 := uint64(hi) * m
	x := (p1 ^ p2) % mersennePrime
	return int(x % uint64(s.width))
}

// Count adds c to the counters for key in every row.
func (s *CountMinSketch) Count(key uint64, c uint32) {
	for i := 0; i < s.depth; i++ {
		j := s.column(i, key)
		s.data[i][j] += c
	}
}

// CountAndEstimate adds c to the counters for key in every row and
// returns the resulting frequency estimate.
func (s *CountMinSketch) CountAndEstimate(key uint64, c uint32) uint32 {
	min := ^uint32(0)
	for i := 0; i < s.depth; i++ {
		j := s.column(i, key)
		s.data[i][j] += c
		if s.data[i][j] < min {
			min = s.data[i][j]
		}
	}
	return min
}

// Estimate returns the current frequency estimate for key without
// modifying the sketch.
func (s *CountMinSketch) Estimate(key uint64) uint32 {
	min := ^uint32(0)
	for i := 0; i < s.depth; i++ {
		j := s.column(i, key)
		if s.data[i][j] < min {
			min = s.data[i][j]
		}
	}
	return min
}

// Width returns the number of columns per row.
func (s *CountMinSketch) Width() int { return s.width }

// Depth returns the number of rows.
func (s *CountMinSketch) Depth() int { return s.depth }
