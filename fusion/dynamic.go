// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fusion

import "math/bits"

// DynamicFusionNode supports Insert and Remove over at most MaxKeys 64-bit
// keys, in addition to StaticFusionNode's Predecessor query.
//
// Keys live in fixed physical slots; index[i] names the physical slot
// holding the key of rank i, so the logical (sorted) order is indirected
// through index rather than kept contiguous. free is a bitmask of unused
// physical slots. Every mutation rebuilds the compressed mask/branch/free
// triple from scratch via construct, since MaxKeys bounds the rebuild cost
// to a constant.
type DynamicFusionNode struct {
	size  int
	key   [MaxKeys]uint64
	index [MaxKeys]uint8
	free  uint8 // bit j set => physical slot j is unused

	mask, branch, free64 uint64
}

// NewDynamic returns an empty dynamic fusion node.
func NewDynamic() *DynamicFusionNode {
	return &DynamicFusionNode{free: 0xFF}
}

// Size returns the number of keys currently stored.
func (n *DynamicFusionNode) Size() int { return n.size }

// Select returns the key of rank i (0-indexed, ascending order).
func (n *DynamicFusionNode) Select(i int) uint64 {
	return n.key[n.index[i]]
}

// At is an alias for Select, satisfying btree.NodeImpl's ordered access.
func (n *DynamicFusionNode) At(i int) uint64 { return n.Select(i) }

// Successor finds the smallest stored key >= x (the ceiling of x). The
// search is a naive linear scan over at most MaxKeys entries, in the same
// style as the naive rank/find helpers below.
func (n *DynamicFusionNode) Successor(x uint64) Result {
	for i := 0; i < n.size; i++ {
		if k := n.Select(i); k >= x {
			return Result{true, i}
		}
	}
	return Result{false, 0}
}

// rank returns the number of stored keys strictly less than key, i.e. the
// logical position key would occupy if inserted.
func (n *DynamicFusionNode) rank(key uint64) int {
	i := 0
	for i < n.size && n.key[n.index[i]] < key {
		i++
	}
	return i
}

// find returns the logical rank of key, or -1 if key is not present.
func (n *DynamicFusionNode) find(key uint64) int {
	for i := 0; i < n.size; i++ {
		if n.key[n.index[i]] == key {
			return i
		}
	}
	return -1
}

// Predecessor finds the predecessor of x: the largest stored key <= x.
func (n *DynamicFusionNode) Predecessor(x uint64) Result {
	if n.size == 0 {
		return Result{false, 0}
	}
	return predecessor(n.Select, x, n.mask, n.branch, n.free64)
}

// Insert adds key, which must not already be present. Insert panics if the
// node is already at MaxKeys capacity.
func (n *DynamicFusionNode) Insert(key uint64) {
	if n.size >= MaxKeys {
		panic("fusion: insert on a full dynamic fusion node")
	}

	i := n.rank(key)
	j := bits.TrailingZeros8(n.free)
	if j >= MaxKeys {
		panic("fusion: no free slot despite size < MaxKeys")
	}

	for k := n.size; k > i; k-- {
		n.index[k] = n.index[k-1]
	}
	n.index[i] = uint8(j)
	n.key[j] = key
	n.free &^= 1 << uint(j)
	n.size++

	n.rebuild()
}

// Remove deletes key if present, reporting whether it was found.
func (n *DynamicFusionNode) Remove(key uint64) bool {
	i := n.find(key)
	if i < 0 {
		return false
	}

	j := n.index[i]
	for k := i; k < n.size-1; k++ {
		n.index[k] = n.index[k+1]
	}
	n.free |= 1 << j
	n.size--

	if n.size > 0 {
		n.rebuild()
	} else {
		n.mask, n.branch, n.free64 = 0, 0, 0
	}
	return true
}

// rebuild recomputes mask/branch/free from the current logical key order.
func (n *DynamicFusionNode) rebuild() {
	ordered := make([]uint64, n.size)
	for i := 0; i < n.size; i++ {
		ordered[i] = n.key[n.index[i]]
	}
	n.mask, n.branch, n.free64 = construct(ordered)
}
