// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lz

import (
	"io"

	"github.com/tdcgo/tdc/internal/bufpool"
	"github.com/tdcgo/tdc/internal/dserr"
	"github.com/tdcgo/tdc/suffixtrie"
)

// SlidingWindow factorizes a byte stream by cooperative descent in two
// truncated suffix tries built over adjacent windows of size w: a left
// trie covering [b-w, b) and a right trie covering [b, b+w), where b is
// the current block boundary. At each position it descends both tries
// simultaneously, accepting a left-trie source only at or after i-w and a
// right-trie source only before i, and takes the longer of the two matches.
//
// Window length is fixed for the factorizer's lifetime; the factorizer
// itself holds no buffered state between Compress calls.
type SlidingWindow struct {
	window        int
	allowExtMatch bool
	bufs          *bufpool.BytePool
}

// NewSlidingWindow constructs a factorizer with the given window length.
// allowExtMatch enables extended matches that continue across a block
// boundary once the cooperative descent bottoms out at a leaf.
func NewSlidingWindow(window int, allowExtMatch bool) *SlidingWindow {
	if window <= 0 {
		panic("lz: window must be positive")
	}
	return &SlidingWindow{window: window, allowExtMatch: allowExtMatch, bufs: bufpool.New()}
}

// readFull reads until buf is full or the reader is exhausted. done is true
// once no more bytes are available; err is non-nil only if the exhaustion
// was caused by something other than io.EOF/io.ErrUnexpectedEOF.
func readFull(r io.Reader, buf []byte) (n int, done bool, err error) {
	for n < len(buf) {
		m, rerr := r.Read(buf[n:])
		n += m
		if rerr != nil {
			if rerr != io.EOF && rerr != io.ErrUnexpectedEOF {
				return n, true, dserr.Wrap("read input", rerr)
			}
			return n, true, nil
		}
	}
	return n, false, nil
}

// Compress reads all of r and emits its LZ77 factorization to sink.
func (s *SlidingWindow) Compress(r io.Reader, sink Sink) error {
	w := s.window
	bufsize := 2 * w

	buffer := s.bufs.Get(bufsize)[:bufsize]
	defer s.bufs.Put(buffer)

	var prevBuffer []byte
	if s.allowExtMatch {
		prevBuffer = s.bufs.Get(w)[:w]
		defer s.bufs.Put(prevBuffer)
	}

	leftTrie := suffixtrie.Build(nil, w)
	var rightTrie *suffixtrie.Trie

	var n, i, b, windowStart, prevWindowStart int
	lastBlockLen := 0

	initial, done, err := readFull(r, buffer)
	if err != nil {
		return err
	}
	if initial > 0 {
		rightTrie = suffixtrie.Build(append([]byte(nil), buffer[:initial]...), w)
		n = initial
		lastBlockLen = min(initial, w)
	} else {
		rightTrie = suffixtrie.Build(nil, w)
	}

	extMatch := false
	extSrc, extLen := 0, 0

	for i < n || !done {
		if i/w > b {
			b = i / w
			prevWindowStart = windowStart
			windowStart = b * w
			leftTrie = rightTrie

			if s.allowExtMatch {
				copy(prevBuffer, buffer[:w])
			}
			copy(buffer[:w], buffer[w:bufsize])

			var r2 int
			if !done {
				r2, done, err = readFull(r, buffer[lastBlockLen:lastBlockLen+w])
				if err != nil {
					return err
				}
			}
			rightTrie = suffixtrie.Build(append([]byte(nil), buffer[:lastBlockLen+r2]...), w)
			n += r2
			lastBlockLen = r2
		}

		if s.allowExtMatch && extMatch {
			c := buffer[i-windowStart]
			j := extSrc + extLen
			var x byte
			if j >= windowStart {
				x = buffer[j-windowStart]
			} else {
				x = prevBuffer[j-prevWindowStart]
			}
			if c == x {
				extLen++
				i++
				continue
			}
			sink.EmitReference(extSrc, extLen)
			extMatch = false
		}

		firstChar := buffer[i-windowStart]

		lv := leftTrie.Cursor()
		lsearch := true
		rv := rightTrie.Cursor()
		rsearch := true

		j := i
		for j < n && (lsearch || rsearch) {
			c := buffer[j-windowStart]

			if lsearch {
				lc := lv
				if lc.Descend(c) {
					if prevWindowStart+lc.Node().MaxPos()+w >= i {
						lv = lc
						lsearch = !lv.ReachedLeaf()
					} else {
						lsearch = false
					}
				} else {
					lsearch = false
				}
			}

			if rsearch {
				rc := rv
				if rc.Descend(c) {
					if windowStart+rc.Node().MinPos() < i {
						rv = rc
						rsearch = !rv.ReachedLeaf()
					} else {
						rsearch = false
					}
				} else {
					rsearch = false
				}
			}

			j++
		}

		if s.allowExtMatch && j < n && ((lv.ReachedLeaf() && lv.Depth() > 1) || (rv.ReachedLeaf() && rv.Depth() > 1)) {
			extMatch = true
			if lv.Depth() > rv.Depth() {
				extSrc = prevWindowStart + lv.Node().MaxPos()
			} else {
				extSrc = windowStart + rv.Node().MinPos()
			}
			extLen = max(lv.Depth(), rv.Depth())
			i += extLen
			continue
		}

		flen := max(lv.Depth(), rv.Depth())
		if flen > 0 {
			if flen > 1 {
				var fsrc int
				if lv.Depth() > rv.Depth() {
					fsrc = prevWindowStart + lv.Node().MaxPos()
				} else {
					fsrc = windowStart + rv.Node().MinPos()
				}
				sink.EmitReference(fsrc, flen)
			} else {
				sink.EmitLiteral(firstChar)
			}
			i += flen
		} else {
			sink.EmitLiteral(firstChar)
			i++
		}
	}

	if extMatch {
		sink.EmitReference(extSrc, extLen)
	}

	return nil
}
