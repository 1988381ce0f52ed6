// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lz

import (
	"bufio"
	"io"

	"github.com/tdcgo/tdc/augsketch"
)

// Sketch factorizes a byte stream like Fingerprinting, but for a single
// fixed q-gram length instead of a family of power-of-two lengths, and
// replaces the exact fingerprint-to-position map with an
// augsketch.AugmentedSketch: frequently recurring q-grams are tracked
// exactly (with their most recent position), while rare ones are only
// approximately counted by the underlying count-min sketch. A q-gram is
// only eligible for a reference while it sits in the exact filter, into
// which the augmented sketch's swap rule promotes it.
type Sketch struct {
	q   int
	aug *augsketch.AugmentedSketch[int]

	pos, nextFactor int
	qgram           uint64
}

// NewSketch constructs a Sketch factorizer over q-byte windows (q must be
// at most 8, since the rolling q-gram is packed into a uint64), backed by
// an augmented sketch with the given exact-filter size and count-min
// sketch dimensions.
func NewSketch(q, maxFilterSize, cmWidth, cmDepth int, seed uint64) *Sketch {
	if q <= 0 || q > 8 {
		panic("lz: q must be between 1 and 8")
	}
	return &Sketch{
		q:   q,
		aug: augsketch.New[int](maxFilterSize, cmWidth, cmDepth, seed),
	}
}

func (s *Sketch) updateQgram(c byte) {
	lsh := uint(8 * (s.q - 1))
	s.qgram = (s.qgram >> 8) | (uint64(c) << lsh)
}

func (s *Sketch) process(sink Sink) {
	if s.pos >= s.nextFactor {
		prevPos, frequent := s.aug.IsFrequent(s.qgram)
		// Only take the reference if its source span is already fully
		// covered by previously emitted output -- unlike Fingerprinting's
		// tau-aligned anchors, a q-gram can recur at any offset here, so
		// this bound has to be checked explicitly rather than falling
		// out of the indexing scheme.
		if frequent && prevPos+s.q <= s.nextFactor {
			sink.EmitReference(prevPos, s.q)
			s.nextFactor += s.q
		} else {
			sink.EmitLiteral(byte(s.qgram))
			s.nextFactor++
		}
	}
	s.aug.Count(s.qgram, s.pos)
	s.pos++
}

// Compress reads all of r and emits its factorization to sink.
func (s *Sketch) Compress(r io.Reader, sink Sink) error {
	s.pos, s.nextFactor, s.qgram = 0, 0, 0

	br := bufio.NewReader(r)

	var head [8]byte
	for i := 0; i < s.q-1; i++ {
		c, err := br.ReadByte()
		if err != nil {
			// fewer than q-1 bytes total: nothing to factorize as a
			// reference candidate, emit what was read so far as literals.
			for _, h := range head[:i] {
				sink.EmitLiteral(h)
			}
			return nil
		}
		head[i] = c
		s.updateQgram(c)
	}

	for {
		c, err := br.ReadByte()
		if err != nil {
			break
		}
		s.updateQgram(c)
		s.process(sink)
	}

	for i := 0; i < s.q-1; i++ {
		s.updateQgram(0)
		if s.pos >= s.nextFactor {
			sink.EmitLiteral(byte(s.qgram))
		}
		s.pos++
	}

	return nil
}
