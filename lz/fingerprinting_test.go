// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lz

import (
	"bytes"
	"math/rand"
	"testing"
)

func TestFingerprintingRoundTripRandom(t *testing.T) {
	rnd := rand.New(rand.NewSource(2))
	for trial := 0; trial < 20; trial++ {
		n := rnd.Intn(60)
		data := make([]byte, n)
		for i := range data {
			data[i] = byte(rnd.Intn(4))
		}

		f := NewFingerprinting(1, 3) // tau in {2,4,8}

		var factors FactorSlice
		if err := f.Compress(bytes.NewReader(data), &factors); err != nil {
			t.Fatalf("trial %d: Compress error: %v", trial, err)
		}

		got := decode(factors)
		if !bytes.Equal(got, data) {
			t.Fatalf("trial %d: decode(factors) = %v, want %v", trial, got, data)
		}
	}
}

func TestFingerprintingRoundTripRepetitive(t *testing.T) {
	data := bytes.Repeat([]byte("0123456701234567"), 4)
	f := NewFingerprinting(1, 3)

	var factors FactorSlice
	if err := f.Compress(bytes.NewReader(data), &factors); err != nil {
		t.Fatalf("Compress error: %v", err)
	}

	got := decode(factors)
	if !bytes.Equal(got, data) {
		t.Fatalf("decode(factors) = %q, want %q", got, data)
	}
}

func TestFingerprintingShortInputPassesThrough(t *testing.T) {
	f := NewFingerprinting(1, 3) // window = 8
	data := []byte{1, 2, 3}      // shorter than the window

	var factors FactorSlice
	if err := f.Compress(bytes.NewReader(data), &factors); err != nil {
		t.Fatalf("Compress error: %v", err)
	}
	for _, fac := range factors {
		if !fac.IsLiteral() {
			t.Fatalf("expected only literals for input shorter than the window, got %v", factors)
		}
	}
	if got := decode(factors); !bytes.Equal(got, data) {
		t.Fatalf("decode(factors) = %v, want %v", got, data)
	}
}
