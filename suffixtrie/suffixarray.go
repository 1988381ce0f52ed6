// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package suffixtrie builds a truncated suffix trie over a sliding
// window: a suffix array (Manber-Myers prefix doubling) and its LCP
// array (Kasai's algorithm) drive insertion of every suffix starting
// within the window into a compact trie annotated with the earliest and
// latest occurrence position below each node.
package suffixtrie

import "sort"

// buildSuffixArray returns the suffix array of r (rank-encoded symbols,
// smaller values sort first) via prefix doubling: ranks are refined in
// O(log n) rounds, each a full sort of (rank, next-rank) pairs.
func buildSuffixArray(r []int) []int {
	n := len(r)
	sa := make([]int, n)
	rank := make([]int, n)
	tmp := make([]int, n)

	for i := range sa {
		sa[i] = i
		rank[i] = r[i]
	}

	for k := 1; ; k *= 2 {
		key := func(i int) (int, int) {
			second := -1
			if i+k < n {
				second = rank[i+k]
			}
			return rank[i], second
		}
		sort.Slice(sa, func(a, b int) bool {
			ra, sa2 := key(sa[a])
			rb, sb2 := key(sa[b])
			if ra != rb {
				return ra < rb
			}
			return sa2 < sb2
		})

		tmp[sa[0]] = 0
		for i := 1; i < n; i++ {
			tmp[sa[i]] = tmp[sa[i-1]]
			ra, sa2 := key(sa[i-1])
			rb, sb2 := key(sa[i])
			if ra != rb || sa2 != sb2 {
				tmp[sa[i]]++
			}
		}
		copy(rank, tmp)

		if rank[sa[n-1]] == n-1 {
			break
		}
	}
	return sa
}

// kasaiLCP computes the LCP array for r given its suffix array sa:
// lcp[i] is the length of the longest common prefix of the suffixes at
// sa[i-1] and sa[i] (lcp[0] is always 0).
func kasaiLCP(r []int, sa []int) []int {
	n := len(r)
	lcp := make([]int, n)
	rank := make([]int, n)
	for i, s := range sa {
		rank[s] = i
	}

	h := 0
	for i := 0; i < n; i++ {
		if rank[i] > 0 {
			j := sa[rank[i]-1]
			for i+h < n && j+h < n && r[i+h] == r[j+h] {
				h++
			}
			lcp[rank[i]] = h
			if h > 0 {
				h--
			}
		} else {
			h = 0
		}
	}
	return lcp
}
