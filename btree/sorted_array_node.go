// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package btree

import "github.com/tdcgo/tdc/fusion"

// SortedArrayNode is a reference NodeImpl: a plain ascending-order slice of
// keys, searched and updated linearly.
type SortedArrayNode struct {
	keys     []uint64
	capacity int
}

// SortedArrayNodeFactory returns a NodeFactory producing SortedArrayNode
// instances with the given per-node key capacity (a B-Tree of degree M
// should use capacity M-1).
func SortedArrayNodeFactory(capacity int) NodeFactory {
	return func() NodeImpl {
		return &SortedArrayNode{capacity: capacity}
	}
}

func (s *SortedArrayNode) Size() int        { return len(s.keys) }
func (s *SortedArrayNode) At(i int) uint64 { return s.keys[i] }

// Predecessor finds the rank of the largest key <= x.
func (s *SortedArrayNode) Predecessor(x uint64) fusion.Result {
	n := len(s.keys)
	if n == 0 || x < s.keys[0] {
		return fusion.Result{Exists: false, Pos: 0}
	}
	if x >= s.keys[n-1] {
		return fusion.Result{Exists: true, Pos: n - 1}
	}
	i := 1
	for s.keys[i] <= x {
		i++
	}
	return fusion.Result{Exists: true, Pos: i - 1}
}

// Successor finds the rank of the smallest key >= x.
func (s *SortedArrayNode) Successor(x uint64) fusion.Result {
	n := len(s.keys)
	if n == 0 || x > s.keys[n-1] {
		return fusion.Result{Exists: false, Pos: 0}
	}
	if x <= s.keys[0] {
		return fusion.Result{Exists: true, Pos: 0}
	}
	i := 1
	for s.keys[i] < x {
		i++
	}
	return fusion.Result{Exists: true, Pos: i}
}

// Insert adds key, which must not already be present.
func (s *SortedArrayNode) Insert(key uint64) {
	if len(s.keys) >= s.capacity {
		panic("btree: sorted array node is full")
	}
	i := 0
	for i < len(s.keys) && s.keys[i] < key {
		i++
	}
	s.keys = append(s.keys, 0)
	copy(s.keys[i+1:], s.keys[i:])
	s.keys[i] = key
}

// Remove deletes key if present, reporting whether it was found.
func (s *SortedArrayNode) Remove(key uint64) bool {
	for i, k := range s.keys {
		if k == key {
			s.keys = append(s.keys[:i], s.keys[i+1:]...)
			return true
		}
	}
	return false
}
