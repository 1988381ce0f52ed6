// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package augsketch

import (
	"math/rand"
	"testing"
)

func TestFrequentItemsStayFrequent(t *testing.T) {
	a := New[string](4, 64, 4, 1)

	hot := []uint64{10, 20, 30}
	for _, k := range hot {
		for i := 0; i < 50; i++ {
			a.Count(k, "hot")
		}
	}

	for _, k := range hot {
		v, ok := a.IsFrequent(k)
		if !ok || v != "hot" {
			t.Fatalf("IsFrequent(%d) = (%q,%v), want (\"hot\",true)", k, v, ok)
		}
	}
}

func TestColdItemsNotFrequent(t *testing.T) {
	a := New[int](2, 64, 4, 5)
	a.Count(1, 111)
	a.Count(1, 111)
	a.Count(2, 222)
	a.Count(2, 222)

	if _, ok := a.IsFrequent(999); ok {
		t.Fatalf("IsFrequent(999) = true, want false (never seen)")
	}
}

func TestEventualPromotionUnderSustainedLoad(t *testing.T) {
	a := New[int](2, 128, 4, 9)
	rnd := rand.New(rand.NewSource(4))

	// fill the filter with noise first
	a.Count(100, 1)
	a.Count(101, 1)

	// hammer a single key far more than background traffic
	var promoted bool
	for i := 0; i < 5000; i++ {
		noise := uint64(200 + rnd.Intn(50))
		a.Count(noise, 0)
		a.Count(7, 7)
		if _, ok := a.IsFrequent(7); ok {
			promoted = true
			break
		}
	}
	if !promoted {
		t.Fatalf("key 7 was never promoted into the filter despite sustained counting")
	}
}

func TestFilterSizeBounded(t *testing.T) {
	a := New[int](3, 32, 3, 2)
	for i := uint64(0); i < 100; i++ {
		a.Count(i, int(i))
		if a.FilterSize() > 3 {
			t.Fatalf("FilterSize() = %d, exceeds max of 3", a.FilterSize())
		}
	}
}
