// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fusion implements the fusion node of Patrascu & Thorup (2014): a
// compressed trie over at most MaxKeys 64-bit keys that answers predecessor
// queries in O(1) using a parallel bit extract and a parallel byte-rank.
//
// Two variants are provided: StaticFusionNode, built once from a sorted key
// set, and DynamicFusionNode, which supports Insert/Remove by maintaining a
// rank-ordered logical view over up to MaxKeys physical slots and rebuilding
// the compressed representation from scratch after each mutation — the same
// strategy the reference implementation uses, trading an asymptotically
// slower update for a vastly simpler and more robust one (MaxKeys is a
// constant, so the rebuild is O(1) in the number of keys in the tree).
package fusion

import "github.com/tdcgo/tdc/internal/bitops"

// MaxKeys is the maximum number of keys a fusion node can hold.
const MaxKeys = 8

// Result is the outcome of a predecessor query: whether a predecessor
// exists, and if so its rank (index into the node's sorted key order).
type Result struct {
	Exists bool
	Pos    int
}

// match returns the rank of x's compressed form in the packed
// branch/free byte arrays: match(x) = rank(cx_repeat, branch | (cx_repeat & free)).
func match(x, mask, branch, free uint64) int {
	cx := uint8(bitops.Pext(x, mask))
	cxRepeat := bitops.Repeat(cx)
	matchArray := branch | (cxRepeat & free)
	return bitops.Rank(cxRepeat, matchArray)
}

// predecessor runs the Patrascu & Thorup predecessor algorithm against an
// already-constructed mask/branch/free triple and an indexable key source.
// keys must return key of rank i for an i in [0, size).
func predecessor(keys func(int) uint64, x, mask, branch, free uint64) Result {
	i := match(x, mask, branch, free)
	y := keys(i)
	if x == y {
		return Result{true, i}
	}

	// j is the index of the highest bit at which x and y differ; x^y != 0
	// since x != y, so j is in [0, 63]. xlo agrees with x on the shared
	// prefix and is all-zero below it; xhi agrees with x on the shared
	// prefix and is all-one below it. Go shifts by >= the operand width
	// yield 0, so these read correctly even at j == 0.
	j := bitops.Clz(x ^ y)
	xlo := x & (^uint64(0) << uint(64-j))
	xhi := x | (^uint64(0) >> uint(j))

	if x < y {
		ixj := match(xlo, mask, branch, free)
		return Result{ixj > 0, ixj - 1}
	}
	ixj := match(xhi, mask, branch, free)
	return Result{true, ixj}
}
