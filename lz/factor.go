// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package lz implements Lempel-Ziv factorization over a bounded sliding
// window: a two-trie cooperative-descent factorizer built on truncated
// suffix tries, and two approximate variants built on rolling
// fingerprints and on a frequency sketch.
package lz

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Factor is one LZ77 output unit: a literal byte (Len == 0, the byte held
// in Src) or a reference to a previous window position (Src the source
// position, Len >= 1 the match length).
type Factor struct {
	Src int
	Len int
}

// Literal constructs a literal factor holding c.
func Literal(c byte) Factor { return Factor{Src: int(c)} }

// Reference constructs a reference factor of length length starting at
// src.
func Reference(src, length int) Factor { return Factor{Src: src, Len: length} }

// IsLiteral reports whether f is a literal factor.
func (f Factor) IsLiteral() bool { return f.Len == 0 }

// Byte returns the literal byte held by f. Byte panics if f is a
// reference.
func (f Factor) Byte() byte {
	if !f.IsLiteral() {
		panic("lz: Byte of a reference factor")
	}
	return byte(f.Src)
}

// Sink receives factors in input order as a factorizer consumes its
// input. EmitLiteral and EmitReference must accept synchronously; there
// is no back-pressure.
type Sink interface {
	EmitLiteral(c byte)
	EmitReference(src, length int)
}

// FactorSlice is a Sink that appends every factor to itself, useful for
// tests and for callers who want the whole factorization in memory.
type FactorSlice []Factor

func (s *FactorSlice) EmitLiteral(c byte) {
	*s = append(*s, Literal(c))
}

func (s *FactorSlice) EmitReference(src, length int) {
	*s = append(*s, Reference(src, length))
}

// ReadableWriter writes factors as a sequence of text records: a
// reference is written as "(src,len)", a literal as its raw byte.
type ReadableWriter struct {
	w   io.Writer
	err error
}

// NewReadableWriter wraps w as a ReadableWriter sink.
func NewReadableWriter(w io.Writer) *ReadableWriter {
	return &ReadableWriter{w: w}
}

func (rw *ReadableWriter) EmitLiteral(c byte) {
	if rw.err != nil {
		return
	}
	_, rw.err = rw.w.Write([]byte{c})
}

func (rw *ReadableWriter) EmitReference(src, length int) {
	if rw.err != nil {
		return
	}
	_, rw.err = fmt.Fprintf(rw.w, "(%d,%d)", src, length)
}

// Err returns the first write error encountered, if any.
func (rw *ReadableWriter) Err() error { return rw.err }

// Binary opcodes for BinaryWriter's factor stream.
const (
	opLiteral  = 'L'
	opReference = 'R'
)

// BinaryWriter writes factors as opcode-tagged binary records: a single
// byte opcode ('L' or 'R') followed by little-endian uint64 fields -- one
// field for a literal (the byte, zero-extended), two for a reference
// (src then length).
type BinaryWriter struct {
	w   io.Writer
	err error
	buf [8]byte
}

// NewBinaryWriter wraps w as a BinaryWriter sink.
func NewBinaryWriter(w io.Writer) *BinaryWriter {
	return &BinaryWriter{w: w}
}

func (bw *BinaryWriter) writeU64(v uint64) {
	if bw.err != nil {
		return
	}
	binary.LittleEndian.PutUint64(bw.buf[:], v)
	_, bw.err = bw.w.Write(bw.buf[:])
}

func (bw *BinaryWriter) EmitLiteral(c byte) {
	if bw.err != nil {
		return
	}
	_, bw.err = bw.w.Write([]byte{opLiteral})
	bw.writeU64(uint64(c))
}

func (bw *BinaryWriter) EmitReference(src, length int) {
	if bw.err != nil {
		return
	}
	_, bw.err = bw.w.Write([]byte{opReference})
	bw.writeU64(uint64(src))
	bw.writeU64(uint64(length))
}

// Err returns the first write error encountered, if any.
func (bw *BinaryWriter) Err() error { return bw.err }
