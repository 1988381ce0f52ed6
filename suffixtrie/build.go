// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package suffixtrie

// Build constructs a truncated suffix trie over data's first window
// bytes: every suffix starting at a position below window is inserted
// as a path of at most window bytes (shorter only where data ends first), and every node
// tracks the earliest/latest window position of a suffix passing through
// it. Suffixes starting at or beyond window are used only to compute
// branching structure via their LCP with window-starting suffixes, never
// inserted themselves.
//
// Unlike the rank encoding divsufsort needs (a literal zero-byte
// terminator appended to data, which silently miscompares if data itself
// contains a zero byte), the suffix array here is built over an
// internally rank-shifted copy (real bytes mapped to 1..256, terminator
// mapped to 0) so every byte value, including 0x00, sorts correctly
// within data itself.
func Build(data []byte, window int) *Trie {
	n := len(data)
	r := make([]int, n+1)
	for i, b := range data {
		r[i] = int(b) + 1
	}
	r[n] = 0

	sa := buildSuffixArray(r)
	lcp := kasaiLCP(r, sa)

	t := newTrie(data)
	cur := t.cursor()

	// sa[0] is always the terminator suffix (rank 0, unique); skip it.
	for i := 1; i <= n; i++ {
		cur.ascend(lcp[i])

		pos := sa[i]
		if pos >= window {
			continue
		}

		d := cur.depth
		if d < window {
			suffix := pos + d
			suffixLen := n - suffix
			if max := window - d; suffixLen > max {
				suffixLen = max
			}
			cur.insertPath(suffix, suffixLen)
		}

		for v := cur.node; v != none; v = t.parent[v] {
			if pos < t.minPos[v] {
				t.minPos[v] = pos
			}
			if pos > t.maxPos[v] {
				t.maxPos[v] = pos
			}
		}
	}

	return t
}
