// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package btree

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/tdcgo/tdc/fusion"
)

func fusionNodeFactory() NodeImpl { return fusion.NewDynamic() }

func sortedSetOf(keys []uint64) []uint64 {
	seen := map[uint64]bool{}
	var out []uint64
	for _, k := range keys {
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func testInsertAndPredecessor(t *testing.T, tree *BTree, n int, seed int64) {
	rnd := rand.New(rand.NewSource(seed))
	var keys []uint64
	seen := map[uint64]bool{}
	for len(keys) < n {
		k := uint64(rnd.Intn(n * 20))
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
			tree.Insert(k)
		}
	}
	sorted := sortedSetOf(keys)

	if tree.Size() != len(sorted) {
		t.Fatalf("Size() = %d, want %d", tree.Size(), len(sorted))
	}
	if tree.Min() != sorted[0] {
		t.Fatalf("Min() = %d, want %d", tree.Min(), sorted[0])
	}
	if tree.Max() != sorted[len(sorted)-1] {
		t.Fatalf("Max() = %d, want %d", tree.Max(), sorted[len(sorted)-1])
	}

	for _, k := range sorted {
		if !tree.Contains(k) {
			t.Fatalf("Contains(%d) = false, want true", k)
		}
	}

	for q := uint64(0); q < uint64(n*20); q++ {
		wantV, wantOK := linearPredecessor(sorted, q)
		gotV, gotOK := tree.Predecessor(q)
		if gotOK != wantOK || (wantOK && gotV != wantV) {
			t.Fatalf("Predecessor(%d) = (%d,%v), want (%d,%v)", q, gotV, gotOK, wantV, wantOK)
		}
	}
}

func linearPredecessor(sorted []uint64, x uint64) (uint64, bool) {
	var best uint64
	found := false
	for _, k := range sorted {
		if k <= x {
			best = k
			found = true
		} else {
			break
		}
	}
	return best, found
}

func linearSuccessor(sorted []uint64, x uint64) (uint64, bool) {
	for _, k := range sorted {
		if k >= x {
			return k, true
		}
	}
	return 0, false
}

func TestInsertPredecessorSortedArrayNode(t *testing.T) {
	tree := New(5, SortedArrayNodeFactory(4))
	testInsertAndPredecessor(t, tree, 200, 1)
}

func TestInsertPredecessorFusionNode(t *testing.T) {
	tree := New(9, fusionNodeFactory)
	testInsertAndPredecessor(t, tree, 300, 2)
}

func TestSuccessor(t *testing.T) {
	tree := New(5, SortedArrayNodeFactory(4))
	rnd := rand.New(rand.NewSource(5))
	var keys []uint64
	seen := map[uint64]bool{}
	for len(keys) < 150 {
		k := uint64(rnd.Intn(3000))
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
			tree.Insert(k)
		}
	}
	sorted := sortedSetOf(keys)
	for q := uint64(0); q < 3000; q++ {
		wantV, wantOK := linearSuccessor(sorted, q)
		gotV, gotOK := tree.Successor(q)
		if gotOK != wantOK || (wantOK && gotV != wantV) {
			t.Fatalf("Successor(%d) = (%d,%v), want (%d,%v)", q, gotV, gotOK, wantV, wantOK)
		}
	}
}

func TestSuccessorFusionNode(t *testing.T) {
	tree := New(9, fusionNodeFactory)
	rnd := rand.New(rand.NewSource(7))
	var keys []uint64
	seen := map[uint64]bool{}
	for len(keys) < 200 {
		k := uint64(rnd.Intn(4000))
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
			tree.Insert(k)
		}
	}
	sorted := sortedSetOf(keys)
	for q := uint64(0); q < 4000; q++ {
		wantV, wantOK := linearSuccessor(sorted, q)
		gotV, gotOK := tree.Successor(q)
		if gotOK != wantOK || (wantOK && gotV != wantV) {
			t.Fatalf("Successor(%d) = (%d,%v), want (%d,%v)", q, gotV, gotOK, wantV, wantOK)
		}
	}
}

func TestInsertAndRemoveAll(t *testing.T) {
	tree := New(5, SortedArrayNodeFactory(4))
	rnd := rand.New(rand.NewSource(9))
	var keys []uint64
	seen := map[uint64]bool{}
	for len(keys) < 500 {
		k := uint64(rnd.Intn(5000))
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
			tree.Insert(k)
		}
	}

	removeOrder := rnd.Perm(len(keys))
	remaining := sortedSetOf(keys)
	for _, idx := range removeOrder {
		k := keys[idx]
		if !tree.Remove(k) {
			t.Fatalf("Remove(%d) = false, want true", k)
		}
		if tree.Remove(k) {
			t.Fatalf("second Remove(%d) = true, want false", k)
		}

		for i, v := range remaining {
			if v == k {
				remaining = append(remaining[:i], remaining[i+1:]...)
				break
			}
		}
		if tree.Size() != len(remaining) {
			t.Fatalf("after removing %d: Size() = %d, want %d", k, tree.Size(), len(remaining))
		}
		for _, v := range remaining {
			if !tree.Contains(v) {
				t.Fatalf("after removing %d: Contains(%d) = false, want true", k, v)
			}
		}
		if tree.Contains(k) {
			t.Fatalf("after removing %d: Contains(%d) = true, want false", k, k)
		}
	}
	if tree.Size() != 0 {
		t.Fatalf("Size() after removing all = %d, want 0", tree.Size())
	}
}

type countingObserver struct {
	inserts, removes int
}

func (o *countingObserver) KeyInserted(uint64, *Node) { o.inserts++ }
func (o *countingObserver) KeyRemoved(uint64, *Node)  { o.removes++ }

func TestObserver(t *testing.T) {
	tree := New(5, SortedArrayNodeFactory(4))
	obs := &countingObserver{}
	tree.SetObserver(obs)

	for _, k := range []uint64{10, 5, 20, 15, 30, 1, 99} {
		tree.Insert(k)
	}
	if obs.inserts != 7 {
		t.Fatalf("inserts = %d, want 7", obs.inserts)
	}
	tree.Remove(15)
	tree.Remove(999) // not present, should not notify
	if obs.removes != 1 {
		t.Fatalf("removes = %d, want 1", obs.removes)
	}
}
