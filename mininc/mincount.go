// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mininc

// countBucket is a bucket for a single count value; buckets are kept in
// strictly ascending count order.
type countBucket struct {
	count    int
	itemHead int
	prev     int
	next     int
	live     bool
}

type countEntry[Item any] struct {
	item   Item
	bucket int
	prev   int
	next   int
	live   bool
}

// CountHandle identifies an item previously inserted into a MinCount; it is
// invalidated by Increment, which returns the superseding handle.
type CountHandle struct {
	bucket int
	entry  int
}

// MinCount is the Space-Saving counting structure of Metwally, Agrawal &
// Abbadi, 2005: items start at count one, and Increment moves an item's
// count up by exactly one; Min and ExtractMin are O(1). Unlike MinInc,
// items cannot be inserted at an arbitrary key -- only incremented one
// step at a time -- which lets insertion and increment both run in O(1).
type MinCount[Item any] struct {
	buckets     []countBucket
	freeBuckets []int
	items       []countEntry[Item]
	freeItems   []int
	head        int
}

// NewCount returns an empty MinCount.
func NewCount[Item any]() *MinCount[Item] {
	return &MinCount[Item]{head: nilIdx}
}

func (m *MinCount[Item]) allocBucket(count int) int {
	if n := len(m.freeBuckets); n > 0 {
		idx := m.freeBuckets[n-1]
		m.freeBuckets = m.freeBuckets[:n-1]
		m.buckets[idx] = countBucket{count: count, itemHead: nilIdx, prev: nilIdx, next: nilIdx, live: true}
		return idx
	}
	m.buckets = append(m.buckets, countBucket{count: count, itemHead: nilIdx, prev: nilIdx, next: nilIdx, live: true})
	return len(m.buckets) - 1
}

func (m *MinCount[Item]) freeBucketAt(idx int) {
	m.buckets[idx].live = false
	m.freeBuckets = append(m.freeBuckets, idx)
}

func (m *MinCount[Item]) allocItem(item Item, bucketIdx int) int {
	if n := len(m.freeItems); n > 0 {
		idx := m.freeItems[n-1]
		m.freeItems = m.freeItems[:n-1]
		m.items[idx] = countEntry[Item]{item: item, bucket: bucketIdx, prev: nilIdx, next: nilIdx, live: true}
		return idx
	}
	m.items = append(m.items, countEntry[Item]{item: item, bucket: bucketIdx, prev: nilIdx, next: nilIdx, live: true})
	return len(m.items) - 1
}

func (m *MinCount[Item]) freeItemAt(idx int) {
	m.items[idx].live = false
	m.freeItems = append(m.freeItems, idx)
}

func (m *MinCount[Item]) emplaceFront(bucketIdx int, item Item) int {
	b := &m.buckets[bucketIdx]
	e := m.allocItem(item, bucketIdx)
	m.items[e].next = b.itemHead
	if b.itemHead != nilIdx {
		m.items[b.itemHead].prev = e
	}
	b.itemHead = e
	return e
}

func (m *MinCount[Item]) eraseItem(e int) bool {
	n := &m.items[e]
	b := &m.buckets[n.bucket]
	if n.prev != nilIdx {
		m.items[n.prev].next = n.next
	} else {
		b.itemHead = n.next
	}
	if n.next != nilIdx {
		m.items[n.next].prev = n.prev
	}
	m.freeItemAt(e)
	return b.itemHead == nilIdx
}

// insertBucketAfter splices a new bucket for count right after prevIdx
// (nilIdx to insert at the head of the list).
func (m *MinCount[Item]) insertBucketAfter(prevIdx int, count int) int {
	idx := m.allocBucket(count)
	if prevIdx == nilIdx {
		next := m.head
		m.buckets[idx].next = next
		if next != nilIdx {
			m.buckets[next].prev = idx
		}
		m.head = idx
	} else {
		next := m.buckets[prevIdx].next
		m.buckets[idx].prev = prevIdx
		m.buckets[idx].next = next
		m.buckets[prevIdx].next = idx
		if next != nilIdx {
			m.buckets[next].prev = idx
		}
	}
	return idx
}

// removeBucket unlinks and frees an empty bucket, returning the index of
// its predecessor (nilIdx if it was the head).
func (m *MinCount[Item]) removeBucket(idx int) int {
	b := &m.buckets[idx]
	prev := b.prev
	if prev != nilIdx {
		m.buckets[prev].next = b.next
	} else {
		m.head = b.next
	}
	if b.next != nilIdx {
		m.buckets[b.next].prev = prev
	}
	m.freeBucketAt(idx)
	return prev
}

// Min reports the smallest count currently held, or 0 if empty.
func (m *MinCount[Item]) Min() int {
	if m.head == nilIdx {
		return 0
	}
	return m.buckets[m.head].count
}

// Empty reports whether the structure holds no items.
func (m *MinCount[Item]) Empty() bool { return m.head == nilIdx }

// Insert adds item with an initial count of one.
func (m *MinCount[Item]) Insert(item Item) CountHandle {
	var bucketIdx int
	if m.head != nilIdx && m.buckets[m.head].count == 1 {
		bucketIdx = m.head
	} else {
		bucketIdx = m.insertBucketAfter(nilIdx, 1)
	}
	e := m.emplaceFront(bucketIdx, item)
	return CountHandle{bucket: bucketIdx, entry: e}
}

// Increment raises the count of the item referenced by h by one, returning
// the handle superseding h.
func (m *MinCount[Item]) Increment(h CountHandle) CountHandle {
	item := m.items[h.entry].item
	bucketIdx := h.bucket
	newCount := m.buckets[bucketIdx].count + 1

	emptied := m.eraseItem(h.entry)
	var after int
	if emptied {
		after = m.removeBucket(bucketIdx)
	} else {
		after = bucketIdx
	}

	next := nilIdx
	if after == nilIdx {
		next = m.head
	} else {
		next = m.buckets[after].next
	}

	var target int
	if next != nilIdx && m.buckets[next].count == newCount {
		target = next
	} else {
		target = m.insertBucketAfter(after, newCount)
	}

	e := m.emplaceFront(target, item)
	return CountHandle{bucket: target, entry: e}
}

// ExtractMin removes and returns an item with the minimum count, along
// with that count. ExtractMin panics if the structure is empty.
func (m *MinCount[Item]) ExtractMin() (Item, int) {
	if m.head == nilIdx {
		panic("mininc: ExtractMin of an empty MinCount")
	}
	b := &m.buckets[m.head]
	count := b.count
	e := b.itemHead
	item := m.items[e].item
	if m.eraseItem(e) {
		m.removeBucket(m.head)
	}
	return item, count
}
