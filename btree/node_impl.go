// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package btree implements an ordered-set B-Tree parametrized by a
// pluggable node implementation (a fusion node or a sorted array), with an
// Observer hook for auxiliary bookkeeping on insertion and removal.
package btree

import "github.com/tdcgo/tdc/fusion"

// NodeImpl is the contract a B-Tree node's key storage must satisfy: sorted
// order, O(1)-ish ordered access, and predecessor/successor/insert/remove.
// DynamicFusionNode and SortedArrayNode both satisfy it.
type NodeImpl interface {
	Size() int
	At(i int) uint64
	Predecessor(x uint64) fusion.Result
	Successor(x uint64) fusion.Result
	Insert(x uint64)
	Remove(x uint64) bool
}

// NodeFactory constructs a fresh, empty NodeImpl for a new B-Tree node.
type NodeFactory func() NodeImpl
