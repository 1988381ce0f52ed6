// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lz

import (
	"bufio"
	"io"

	"github.com/tdcgo/tdc/hashtable"
	"github.com/tdcgo/tdc/internal/dserr"
)

func identityU64(k uint64) uint64 { return k }

type ringBuffer struct {
	buf  []byte
	head int
}

func newRingBuffer(n int) *ringBuffer { return &ringBuffer{buf: make([]byte, n)} }

func (rb *ringBuffer) at(i int) byte { return rb.buf[(rb.head+i)%len(rb.buf)] }

func (rb *ringBuffer) front() byte { return rb.buf[rb.head] }

// advance replaces the front slot with c and rotates, equivalent to a
// pop_front immediately followed by a push_back of c.
func (rb *ringBuffer) advance(c byte) {
	rb.buf[rb.head] = c
	rb.head = (rb.head + 1) % len(rb.buf)
}

type fpLayer struct {
	tau    int
	roller *rollingFingerprint
	fp     uint64
	refs   *hashtable.Table[uint64, int]
}

// Fingerprinting factorizes a byte stream by maintaining, for every
// power-of-two length tau between a minimum and maximum, a rolling
// Karp-Rabin fingerprint of the last tau characters and a map from
// fingerprint to the earliest position it was seen at. At each position
// it emits a reference of the longest tau whose current fingerprint
// already occurred earlier in the window, longest layer first.
type Fingerprinting struct {
	tauMin, tauMax int
	layers         []*fpLayer // ordered longest tau first

	pos, nextFactor int
}

// NewFingerprinting constructs a Fingerprinting factorizer with layers at
// every power of two from 2^tauExpMin to 2^tauExpMax inclusive.
func NewFingerprinting(tauExpMin, tauExpMax int) *Fingerprinting {
	if tauExpMax < tauExpMin {
		panic("lz: tauExpMax must be >= tauExpMin")
	}
	f := &Fingerprinting{
		tauMin: 1 << tauExpMin,
		tauMax: 1 << tauExpMax,
	}
	for exp := tauExpMax; exp >= tauExpMin; exp-- {
		tau := 1 << exp
		f.layers = append(f.layers, &fpLayer{
			tau:    tau,
			roller: newRollingFingerprint(tau),
			refs:   hashtable.New[uint64, int](identityU64, 1024),
		})
	}
	return f
}

func (f *Fingerprinting) process(c byte, sink Sink, ring *ringBuffer, maxTau int) {
	pop := ring.front()
	if f.pos >= f.nextFactor {
		sink.EmitLiteral(pop)
		f.nextFactor++
	}

	prevPos := f.pos
	ring.advance(c)
	f.pos++

	layerMask := f.tauMax - 1
	for _, layer := range f.layers {
		if layer.tau <= maxTau {
			if prevPos&layerMask == 0 && !layer.refs.Contains(layer.fp) {
				layer.refs.Insert(layer.fp, prevPos)
			}

			push := ring.at(layer.tau - 1)
			layer.fp = layer.roller.roll(layer.fp, pop, push)

			if f.pos >= f.nextFactor {
				if acc := layer.refs.Find(layer.fp); acc.Exists() {
					sink.EmitReference(acc.Value(), layer.tau)
					f.nextFactor += layer.tau
				}
			}
		}
		layerMask >>= 1
	}
}

// Compress reads all of r and emits its factorization to sink. If r
// yields fewer than 2^tauExpMax bytes, no window can be established and
// the input is passed through as literals.
func (f *Fingerprinting) Compress(r io.Reader, sink Sink) error {
	f.pos, f.nextFactor = 0, 0
	for _, layer := range f.layers {
		layer.fp = 0
	}

	w := f.tauMax
	initial := make([]byte, w)
	nInitial, done, err := readFull(r, initial)
	if err != nil {
		return err
	}
	if nInitial < w {
		for _, c := range initial[:nInitial] {
			sink.EmitLiteral(c)
		}
		return nil
	}

	ring := newRingBuffer(w)
	copy(ring.buf, initial)
	for i := 0; i < w; i++ {
		c := initial[i]
		for _, layer := range f.layers {
			if i < layer.tau {
				layer.fp = layer.roller.roll(layer.fp, 0, c)
			}
		}
	}

	br := bufio.NewReader(r)
	if !done {
		for {
			c, err := br.ReadByte()
			if err != nil {
				if err != io.EOF {
					return dserr.Wrap("read input", err)
				}
				break
			}
			f.process(c, sink, ring, w)
		}
	}

	for remain := w; remain > 0; remain-- {
		f.process(0, sink, ring, remain-1)
	}

	return nil
}
