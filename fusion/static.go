// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fusion

import "github.com/tdcgo/tdc/internal/bitops"

// StaticFusionNode is a compressed trie built once over a fixed, sorted set
// of at most MaxKeys 64-bit keys.
type StaticFusionNode struct {
	keys   [MaxKeys]uint64
	size   int
	mask   uint64
	branch uint64
	free   uint64
}

// Build constructs a StaticFusionNode over keys, which must be sorted in
// strictly ascending order and number at most MaxKeys.
func Build(keys []uint64) *StaticFusionNode {
	if len(keys) == 0 || len(keys) > MaxKeys {
		panic("fusion: key count must be in [1, MaxKeys]")
	}
	for i := 1; i < len(keys); i++ {
		if keys[i] <= keys[i-1] {
			panic("fusion: keys must be strictly ascending")
		}
	}

	n := &StaticFusionNode{size: len(keys)}
	copy(n.keys[:], keys)
	n.mask, n.branch, n.free = construct(keys)
	return n
}

// Size returns the number of keys stored.
func (n *StaticFusionNode) Size() int { return n.size }

// Key returns the key at rank i (0-indexed, ascending order).
func (n *StaticFusionNode) Key(i int) uint64 { return n.keys[i] }

// Predecessor finds the predecessor of x: the largest stored key <= x.
func (n *StaticFusionNode) Predecessor(x uint64) Result {
	if n.size == 0 {
		return Result{false, 0}
	}
	return predecessor(func(i int) uint64 { return n.keys[i] }, x, n.mask, n.branch, n.free)
}

// construct builds the mask/branch/free triple for a sorted key set by
// inserting each key into a binary trie (tracking which levels branch) and
// then re-walking the trie per key to emit the compressed branch/free rows;
// unused rows beyond len(keys) are set to the sentinel branch=0xFF, free=0x00
// so they never win a match.
func construct(keys []uint64) (mask, branch, free uint64) {
	num := len(keys)

	type trieNode struct {
		child [2]uint16
	}
	isBranch := func(n trieNode) bool { return n.child[0] != 0 && n.child[1] != 0 }

	trie := make([]trieNode, num*64+1)
	nextNode := uint16(1)
	const root = 0

	for i := 0; i < num; i++ {
		key := keys[i]
		var extract uint64 = 0x8000000000000000
		v := uint16(root)
		for extract != 0 {
			b := 0
			if key&extract != 0 {
				b = 1
			}
			if trie[v].child[b] == 0 {
				trie[v].child[b] = nextNode
				nextNode++
				if isBranch(trie[v]) {
					mask |= extract
				}
			}
			v = trie[v].child[b]
			extract >>= 1
		}
	}

	numRelevant := bitops.Popcount(mask)
	if numRelevant > num {
		panic("fusion: mask has more significant bits than keys")
	}

	var branchBytes, freeBytes [MaxKeys]uint8
	for i := 0; i < num; i++ {
		key := keys[i]
		var extract uint64 = 0x8000000000000000
		v := uint16(root)
		var rowBranch, rowFree uint8
		j := numRelevant - 1
		for extract != 0 {
			b := 0
			if key&extract != 0 {
				b = 1
			}
			if mask&extract != 0 {
				if isBranch(trie[v]) {
					if b != 0 {
						rowBranch |= 1 << uint(j)
					}
				} else {
					rowFree |= 1 << uint(j)
				}
				j--
			}
			v = trie[v].child[b]
			extract >>= 1
		}
		branchBytes[i] = rowBranch
		freeBytes[i] = rowFree
	}
	for i := num; i < MaxKeys; i++ {
		branchBytes[i] = 0xFF
		freeBytes[i] = 0x00
	}

	for i := 0; i < MaxKeys; i++ {
		branch |= uint64(branchBytes[i]) << uint(8*i)
		free |= uint64(freeBytes[i]) << uint(8*i)
	}
	return mask, branch, free
}
