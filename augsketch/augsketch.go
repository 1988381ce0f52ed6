// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package augsketch implements the augmented sketch of Roy, Chen & Yan,
// 2011: a bounded hash filter holding the (believed) frequent keys exactly,
// backed by a count-min sketch that absorbs everything that overflows the
// filter and promotes a key into it once its estimate overtakes the
// filter's current minimum.
package augsketch

import (
	"github.com/tdcgo/tdc/hashtable"
	"github.com/tdcgo/tdc/mininc"
	"github.com/tdcgo/tdc/sketch"
)

type filterEntry[Value any] struct {
	value     Value
	oldCount  uint32
	minHandle mininc.Handle
}

// AugmentedSketch tracks frequent uint64 keys exactly (with an associated
// Value) while approximating everything else through a CountMinSketch.
type AugmentedSketch[Value any] struct {
	filter        *hashtable.Table[uint64, filterEntry[Value]]
	min           *mininc.MinInc[uint64]
	cms           *sketch.CountMinSketch
	maxFilterSize int
}

// New constructs an AugmentedSketch whose exact filter holds at most
// maxFilterSize keys, spilling over into a CountMinSketch of the given
// width, depth and hash seed.
func New[Value any](maxFilterSize, sketchWidth, sketchDepth int, seed uint64) *AugmentedSketch[Value] {
	return &AugmentedSketch[Value]{
		filter:        hashtable.New[uint64, filterEntry[Value]](hashtable.Modulo(2147483647), maxFilterSize*2+1),
		min:           mininc.New[uint64](),
		cms:           sketch.New(sketchWidth, sketchDepth, seed),
		maxFilterSize: maxFilterSize,
	}
}

// Count processes one occurrence of key, associating value with it if key
// is -- or becomes -- a frequent item.
func (a *AugmentedSketch[Value]) Count(key uint64, value Value) {
	acc := a.filter.Find(key)
	if acc.Exists() {
		entry := acc.Value()
		newHandle := a.min.IncreaseKey(entry.minHandle)
		a.filter.Remove(key)
		a.filter.Insert(key, filterEntry[Value]{value: value, oldCount: entry.oldCount, minHandle: newHandle})
		return
	}

	if a.filter.Size() < a.maxFilterSize {
		handle := a.min.Insert(key, 1)
		a.filter.Insert(key, filterEntry[Value]{value: value, oldCount: 0, minHandle: handle})
		return
	}

	est := a.cms.CountAndEstimate(key, 1)
	minKey := a.min.Min()
	if int(est) <= minKey {
		return
	}

	// key is now frequent: swap it in for the filter's current minimum.
	minItem := a.min.ExtractMin()
	minAcc := a.filter.Find(minItem)
	minEntry := minAcc.Value()
	delta := uint32(minKey) - minEntry.oldCount
	a.filter.Remove(minItem)

	a.cms.Count(minItem, delta)

	handle := a.min.Insert(key, int(est))
	a.filter.Insert(key, filterEntry[Value]{value: value, oldCount: est, minHandle: handle})
}

// IsFrequent reports whether key is currently tracked as frequent,
// returning its associated value if so.
func (a *AugmentedSketch[Value]) IsFrequent(key uint64) (Value, bool) {
	acc := a.filter.Find(key)
	if !acc.Exists() {
		var zero Value
		return zero, false
	}
	return acc.Value().value, true
}

// FilterSize returns the number of keys currently tracked exactly.
func (a *AugmentedSketch[Value]) FilterSize() int { return a.filter.Size() }
