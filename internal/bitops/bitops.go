// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bitops provides the portable bit-twiddling primitives the rest of
// the module builds on: popcount, leading/trailing zero counts, a parallel
// byte compare used by the fusion node, and a parallel bit extract (PEXT).
//
// math/bits already lowers Popcount64/LeadingZeros64/TrailingZeros64 onto
// hardware instructions where the platform has them, so those are used
// directly. PEXT has no Go stdlib equivalent, so Pext is a portable
// bit-by-bit implementation on every platform; golang.org/x/sys/cpu is
// used only to report whether the CPU has BMI2 (see HasBMI2).
package bitops

import (
	"math/bits"

	"golang.org/x/sys/cpu"
)

// Repeat copies byte b into all eight bytes of a uint64.
func Repeat(b uint8) uint64 {
	return uint64(b) * 0x0101010101010101
}

// Pcmpgtub performs an 8-way parallel unsigned byte comparison of a and b,
// returning a word with 0x80 set in every byte position where a's byte is
// strictly greater than b's byte (and 0 elsewhere). A hardware target would
// lower this to a single SIMD byte-compare instruction (e.g. PCMPGTB after
// an 0x80 bias); the portable form below is a per-byte scalar loop.
func Pcmpgtub(a, b uint64) uint64 {
	var out uint64
	for i := 0; i < 8; i++ {
		ai := uint8(a >> (8 * i))
		bi := uint8(b >> (8 * i))
		if ai > bi {
			out |= 0x80 << (8 * i)
		}
	}
	return out
}

// Rank returns the rank of cxRepeat (a byte value repeated eight times) in
// array, an eight-byte packed array: the count of bytes in array that are
// <= cxRepeat's low byte, minus one. This implements the match-array rank
// step of the fusion node (Patrascu & Thorup 2014): count trailing zero
// bytes of the "greater than" bitmap, divide by eight.
func Rank(cxRepeat, array uint64) int {
	cmp := Pcmpgtub(array, cxRepeat)
	ctz := bits.TrailingZeros64(cmp) // 64 when no byte is greater
	return ctz/8 - 1
}

// Popcount is math/bits.OnesCount64, named for parity with the rest of the
// package's primitives.
func Popcount(x uint64) int { return bits.OnesCount64(x) }

// Clz is math/bits.LeadingZeros64.
func Clz(x uint64) int { return bits.LeadingZeros64(x) }

// Ctz is math/bits.TrailingZeros64, saturating at 64 for x == 0.
func Ctz(x uint64) int { return bits.TrailingZeros64(x) }

// HasBMI2 reports whether the running CPU has the BMI2 instruction set,
// which includes a hardware PEXTQ. Go exposes no intrinsic for it, so Pext
// always takes the portable path below; this is surfaced so benchmarks can
// report which machines would benefit from an assembly fast path.
func HasBMI2() bool { return cpu.X86.HasBMI2 }

// Pext extracts the bits of x at the positions set in mask, packing them
// into the low bits of the result in mask order (parallel bit extract).
func Pext(x, mask uint64) uint64 {
	var result uint64
	var pos uint
	for mask != 0 {
		lsb := mask & (-mask)
		if x&lsb != 0 {
			result |= 1 << pos
		}
		mask &^= lsb
		pos++
	}
	return result
}

// SelectInWord returns the 0-indexed bit position of the k-th (1-indexed)
// set bit equal to bit in word, or 64 if there is no such bit. Used by
// BitSelect's final in-word scan.
func SelectInWord(word uint64, bit uint8, k int) int {
	if bit == 0 {
		word = ^word
	}
	for i := 0; i < 64; i++ {
		if word&(1<<uint(i)) != 0 {
			k--
			if k == 0 {
				return i
			}
		}
	}
	return 64
}
