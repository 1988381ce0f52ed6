// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hashtable implements an open-addressed hash table with a
// pluggable hash function and probe sequence, growing by a configurable
// factor once a load factor threshold is crossed.
package hashtable

import "hash/fnv"

// HashBytes is a ready-made HashFunc for []byte keys, using the 64-bit
// FNV-1a hash.
func HashBytes(key []byte) uint64 {
	h := fnv.New64a()
	h.Write(key)
	return h.Sum64()
}

// HashString is a ready-made HashFunc for string keys, using the 64-bit
// FNV-1a hash.
func HashString(key string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(key))
	return h.Sum64()
}

// HashFunc computes a table-relative hash for a key. It need not already be
// reduced into the table's capacity; Table does that itself.
type HashFunc[K comparable] func(key K) uint64

// ProbeFunc advances a probe sequence: given the previous step (0 on the
// first collision), it returns the next step to add to the home hash.
type ProbeFunc func(step int) int

// Linear is the simplest ProbeFunc: each retry advances by one slot.
func Linear(step int) int { return step + 1 }

// Quadratic advances from one triangular number to the next, i.e. the
// probe sequence visits slots h, h+1, h+3, h+6, h+10, ... (offsets grow
// quadratically, and on a power-of-two capacity every slot is reached) --
// spreads out colliding keys faster than Linear at the cost of worse cache
// locality.
func Quadratic(step int) int {
	k, t := 0, 0
	for t < step {
		k++
		t += k
	}
	return t + k + 1
}

// Modulo reduces a hash into [0, prime) by remainder; prime should be
// coprime with the table capacities it is used against (callers
// conventionally pick capacities as powers of two and prime as an odd
// constant, or vice versa).
func Modulo(prime uint64) HashFunc[uint64] {
	return func(key uint64) uint64 { return key % prime }
}

type entry[K comparable, V any] struct {
	key   K
	value V
}

// Table is a generic open-addressed hash table mapping keys of type K to
// values of type V. The zero value is not usable; construct with New.
type Table[K comparable, V any] struct {
	hashFunc  HashFunc[K]
	probeFunc ProbeFunc

	loadFactor   float64
	growthFactor float64

	cap       int
	size      int
	maxProbe  int
	sizeMax   int
	sizeGrow  int

	used    []bool
	entries []entry[K, V]
}

// Option configures a Table constructed by New.
type Option[K comparable, V any] func(*Table[K, V])

// WithLoadFactor sets the maximum load before the table grows (default 1.0).
func WithLoadFactor[K comparable, V any](lambda float64) Option[K, V] {
	return func(t *Table[K, V]) { t.loadFactor = lambda }
}

// WithGrowthFactor sets the capacity multiplier used on growth (default 2.0).
func WithGrowthFactor[K comparable, V any](gamma float64) Option[K, V] {
	return func(t *Table[K, V]) { t.growthFactor = gamma }
}

// WithProbeFunc overrides the probe sequence (default Linear).
func WithProbeFunc[K comparable, V any](p ProbeFunc) Option[K, V] {
	return func(t *Table[K, V]) { t.probeFunc = p }
}

// New constructs a Table with the given hash function and initial capacity.
func New[K comparable, V any](hashFunc HashFunc[K], capacity int, opts ...Option[K, V]) *Table[K, V] {
	if capacity <= 0 {
		panic("hashtable: capacity must be positive")
	}
	t := &Table[K, V]{
		hashFunc:     hashFunc,
		probeFunc:    Linear,
		loadFactor:   1.0,
		growthFactor: 2.0,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.init(capacity)
	return t
}

func (t *Table[K, V]) init(capacity int) {
	t.cap = capacity
	t.size = 0
	t.maxProbe = 0
	t.used = make([]bool, capacity)
	t.entries = make([]entry[K, V], capacity)

	t.sizeMax = int(t.loadFactor * float64(capacity))
	grow := int(float64(capacity) * t.growthFactor)
	if t.sizeMax+1 > grow {
		grow = t.sizeMax + 1
	}
	t.sizeGrow = grow
}

// Size returns the number of entries stored.
func (t *Table[K, V]) Size() int { return t.size }

// Cap returns the current capacity (number of slots).
func (t *Table[K, V]) Cap() int { return t.cap }

// Load returns the current size/capacity ratio.
func (t *Table[K, V]) Load() float64 { return float64(t.size) / float64(t.cap) }

// MaxProbe returns the longest probe sequence needed to resolve a
// collision so far, a rough indicator of table health.
func (t *Table[K, V]) MaxProbe() int { return t.maxProbe }

func (t *Table[K, V]) home(key K) int {
	return int(t.hashFunc(key) % uint64(t.cap))
}

func (t *Table[K, V]) insertInternal(e entry[K, V]) {
	h := t.home(e.key)
	i := 0
	probe := 0
	for t.used[h] {
		i = t.probeFunc(i)
		h = (t.home(e.key) + i) % t.cap
		probe++
	}
	if probe > t.maxProbe {
		t.maxProbe = probe
	}
	t.used[h] = true
	t.entries[h] = e
	t.size++
}

func (t *Table[K, V]) resize(newCap int) {
	oldCap := t.cap
	used := t.used
	entries := t.entries
	t.init(newCap)
	for i := 0; i < oldCap; i++ {
		if used[i] {
			t.insertInternal(entries[i])
		}
	}
}

// Insert adds key with the given value. Inserting a key that is already
// present adds a second, shadowing slot rather than overwriting; callers
// that want upsert semantics should Remove first.
func (t *Table[K, V]) Insert(key K, value V) {
	if t.size+1 > t.sizeMax {
		t.resize(t.sizeGrow)
	}
	t.insertInternal(entry[K, V]{key: key, value: value})
}

// Accessor references a slot found by Find. The zero Accessor is invalid
// (Exists reports false); accessors are invalidated by any subsequent
// Insert or Remove on the table they came from.
type Accessor[K comparable, V any] struct {
	table *Table[K, V]
	pos   int
	valid bool
}

// Exists reports whether the accessor refers to a live entry.
func (a Accessor[K, V]) Exists() bool { return a.valid }

// Key returns the entry's key. Key panics if the accessor does not exist.
func (a Accessor[K, V]) Key() K {
	if !a.valid {
		panic("hashtable: Key of a non-existent accessor")
	}
	return a.table.entries[a.pos].key
}

// Value returns the entry's value. Value panics if the accessor does not
// exist.
func (a Accessor[K, V]) Value() V {
	if !a.valid {
		panic("hashtable: Value of a non-existent accessor")
	}
	return a.table.entries[a.pos].value
}

// Find looks up key, returning an Accessor to its slot if present.
func (t *Table[K, V]) Find(key K) Accessor[K, V] {
	hkey := t.home(key)

	h := hkey
	if t.used[h] && t.entries[h].key == key {
		return Accessor[K, V]{table: t, pos: h, valid: true}
	}
	i := 0
	for probe := 0; probe < t.maxProbe; probe++ {
		i = t.probeFunc(i)
		h = (hkey + i) % t.cap
		if t.used[h] && t.entries[h].key == key {
			return Accessor[K, V]{table: t, pos: h, valid: true}
		}
	}
	return Accessor[K, V]{}
}

// Contains reports whether key is present.
func (t *Table[K, V]) Contains(key K) bool { return t.Find(key).Exists() }

// Get looks up key directly, without going through an Accessor.
func (t *Table[K, V]) Get(key K) (value V, ok bool) {
	a := t.Find(key)
	if !a.Exists() {
		return value, false
	}
	return a.Value(), true
}

// RemoveAccessor erases the entry referenced by a, reporting whether
// there was anything to erase.
func (t *Table[K, V]) RemoveAccessor(a Accessor[K, V]) bool {
	if !a.Exists() || a.table != t {
		return false
	}
	t.used[a.pos] = false
	var zero entry[K, V]
	t.entries[a.pos] = zero
	t.size--
	return true
}

// Remove erases key if present, reporting whether it was found.
func (t *Table[K, V]) Remove(key K) bool {
	return t.RemoveAccessor(t.Find(key))
}
