// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package intvec

// FixedWidth is implemented by the unsigned integer types that FixedIntVec
// can be instantiated over (the widths the source specializes: 8, 16, 32,
// 40 and 64 bits). Go has no non-type template parameter, so unlike the
// C++ source's width-as-template-argument, the width here is carried by
// the Go type itself; 40-bit entries have no matching Go integer type and
// fall back to the general packed representation (see FixedIntVec40).
type FixedWidth interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// FixedIntVec is a dense array of n unsigned integers of a fixed,
// compile-time width w in {8, 16, 32, 64}. Unlike IntVec, entries never
// cross a word boundary because the backing slice's element type already
// matches w, so Get/Set are a direct slice index with no shifting.
type FixedIntVec[T FixedWidth] struct {
	data []T
}

// NewFixed allocates a zero-initialized FixedIntVec of n entries.
func NewFixed[T FixedWidth](n int) *FixedIntVec[T] {
	return &FixedIntVec[T]{data: make([]T, n)}
}

// Len returns the number of entries.
func (v *FixedIntVec[T]) Len() int { return len(v.data) }

// Get returns the i-th entry.
func (v *FixedIntVec[T]) Get(i int) T { return v.data[i] }

// Set assigns the i-th entry.
func (v *FixedIntVec[T]) Set(i int, val T) { v.data[i] = val }

// Resize changes the length to n, preserving existing entries up to
// min(old length, n); newly exposed entries are zero.
func (v *FixedIntVec[T]) Resize(n int) {
	if n <= len(v.data) {
		v.data = v.data[:n]
		return
	}
	grown := make([]T, n)
	copy(grown, v.data)
	v.data = grown
}

// FixedIntVec40 is the w=40 specialization: there is no native 40-bit Go
// integer, so it reuses the general packed IntVec representation rather
// than a typed slice, matching how the source falls back to the generic
// bit-packed layout for widths without a matching machine type.
type FixedIntVec40 struct {
	v *IntVec
}

// NewFixed40 allocates a zero-initialized 40-bit-wide vector of n entries.
func NewFixed40(n int) *FixedIntVec40 {
	return &FixedIntVec40{v: New(n, 40)}
}

// Len returns the number of entries.
func (v *FixedIntVec40) Len() int { return v.v.Len() }

// Get returns the i-th entry, a value in [0, 2^40).
func (v *FixedIntVec40) Get(i int) uint64 { return v.v.Get(i) }

// Set assigns the i-th entry, masked to 40 bits.
func (v *FixedIntVec40) Set(i int, val uint64) { v.v.Set(i, val) }

// Resize changes the length to n, preserving existing entries.
func (v *FixedIntVec40) Resize(n int) { v.v.Resize(n) }
