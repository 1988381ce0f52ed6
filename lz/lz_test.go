// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lz

// decode replays a factor stream back into bytes, the inverse of any of
// the factorizers in this package: references are copied byte by byte
// from already-decoded output so that overlapping (run-length-style)
// references work correctly.
func decode(factors []Factor) []byte {
	var out []byte
	for _, f := range factors {
		if f.IsLiteral() {
			out = append(out, f.Byte())
		} else {
			for k := 0; k < f.Len; k++ {
				out = append(out, out[f.Src+k])
			}
		}
	}
	return out
}
