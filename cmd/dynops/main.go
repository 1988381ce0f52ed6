// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command dynops generates a sequence of insert, delete and query
// operations simulating the use of a dynamic predecessor data structure
// over its lifetime: an insertion phase grows a working set up to a
// target size, a hold phase exercises it at roughly that size, and a
// deletion phase drains it back down.
package main

import (
	"bufio"
	"encoding/binary"
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"time"

	"github.com/tdcgo/tdc/btree"
)

const (
	opInsert = 'I'
	opDelete = 'D'
	opQuery  = 'Q'
)

func main() {
	maxNum := flag.Uint64("n", 100, "the maximum number of items in the data structure")
	maxOps := flag.Uint64("m", math.MaxUint64, "the maximum number of operations to generate")
	universeLog := flag.Uint64("u", 32, "the base-2 logarithm of the universe to draw numbers from")
	keySeed := flag.Int64("s", time.Now().UnixNano(), "the seed for random key generation")
	opSeed := flag.Int64("t", time.Now().UnixNano(), "the seed for random operation generation")
	pBase := flag.Float64("p", 0.3, "the base probability for inserts/deletes in the corresponding phase")
	pRange := flag.Float64("r", 0.5, "the probability range for inserts/deletes in the corresponding phase")
	pQuery := flag.Float64("q", 0.9, "the probability for queries, if not the phase's primary operation")
	hold := flag.Float64("hold", 0.25, "the duration of the hold phase, relative to the duration of the insertion phase")
	binary_ := flag.Bool("binary", false, "use binary output -- each operation is output as an opcode byte followed by a little-endian uint64")
	printOpnum := flag.Bool("print-opnum", false, "print the number of each operation")
	printNum := flag.Bool("print-num", false, "print the number of items after each operation")
	flag.Uint64Var(maxNum, "num", *maxNum, "alias for -n")
	flag.Uint64Var(maxOps, "max-ops", *maxOps, "alias for -m")
	flag.Uint64Var(universeLog, "universe", *universeLog, "alias for -u")
	flag.Int64Var(keySeed, "key-seed", *keySeed, "alias for -s")
	flag.Int64Var(opSeed, "op-seed", *opSeed, "alias for -t")
	flag.Float64Var(pBase, "p-base", *pBase, "alias for -p")
	flag.Float64Var(pRange, "p-range", *pRange, "alias for -r")
	flag.Float64Var(pQuery, "p-query", *pQuery, "alias for -q")
	flag.Parse()

	universe := uint64(math.MaxUint64)
	if *universeLog < 64 {
		universe = (uint64(1) << *universeLog) - 1
	}
	if universe < *maxNum {
		fmt.Fprintln(os.Stderr, "the universe must be at least as large as the maximum number of items")
		os.Exit(2)
	}
	if *pBase+*pRange >= 1.0 {
		fmt.Fprintln(os.Stderr, "p-base + p-range must be less than one")
		os.Exit(3)
	}
	if *pQuery >= 1.0 {
		fmt.Fprintln(os.Stderr, "p-query must be less than one")
		os.Exit(4)
	}

	g := &generator{
		maxNum:   *maxNum,
		maxOps:   *maxOps,
		universe: universe,
		pBase:    *pBase,
		pRange:   *pRange,
		pQuery:   *pQuery,
		hold:     *hold,
		genOp:    rand.New(rand.NewSource(*opSeed)),
		genVal:   rand.New(rand.NewSource(*keySeed)),
		set:      btree.New(65, btree.SortedArrayNodeFactory(64)),
		arr:      make([]uint64, *maxNum),
		curMin:   math.MaxUint64,
		curMax:   0,
	}

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()

	g.run(func(op operation) {
		if *binary_ {
			var buf [9]byte
			buf[0] = byte(op.code)
			binary.LittleEndian.PutUint64(buf[1:], op.key)
			w.Write(buf[:])
			return
		}
		if *printOpnum {
			fmt.Fprintf(w, "%d\t", g.countTotal)
		}
		fmt.Fprintf(w, "%c\t%d", op.code, op.key)
		if *printNum {
			fmt.Fprintf(w, "\t%d", g.curNum)
		}
		fmt.Fprintln(w)
	})

	w.Flush()
	fmt.Fprintf(os.Stderr, "generated %d operations (key seed: %d, op seed: %d, %d duplicates prevented): %d inserts, %d deletes and %d queries\n",
		g.countTotal, *keySeed, *opSeed, g.failedInserts, g.countInsert, g.countDelete, g.countQuery)
}

type operation struct {
	code byte
	key  uint64
}

// generator holds the working set and counters driving the three-phase
// operation stream, mirroring the original benchmark tool's single-file
// closures as methods instead.
type generator struct {
	maxNum   uint64
	maxOps   uint64
	universe uint64
	pBase    float64
	pRange   float64
	pQuery   float64
	hold     float64

	genOp  *rand.Rand
	genVal *rand.Rand

	set *btree.BTree
	arr []uint64

	curNum uint64
	curMin uint64
	curMax uint64

	countTotal    uint64
	countInsert   uint64
	countDelete   uint64
	countQuery    uint64
	failedInserts uint64
}

func (g *generator) randomFromUniverse() uint64 {
	if g.universe == math.MaxUint64 {
		return g.genVal.Uint64()
	}
	return uint64(g.genVal.Int63n(int64(g.universe) + 1))
}

func (g *generator) generateInsert() operation {
	g.countInsert++

	x := g.randomFromUniverse()
	for g.set.Contains(x) {
		x = g.randomFromUniverse()
		g.failedInserts++
	}

	g.set.Insert(x)
	g.arr[g.curNum] = x
	g.curNum++

	if x < g.curMin {
		g.curMin = x
	}
	if x > g.curMax {
		g.curMax = x
	}

	return operation{opInsert, x}
}

func (g *generator) generateQuery() operation {
	g.countQuery++

	span := g.curMax - g.curMin
	var x uint64
	if span == 0 {
		x = g.curMin
	} else {
		x = g.curMin + uint64(g.genVal.Int63n(int64(span)+1))
	}
	return operation{opQuery, x}
}

func (g *generator) generateDelete() operation {
	g.countDelete++

	i := g.genVal.Int63n(int64(g.curNum))
	x := g.arr[i]

	g.set.Remove(x)
	g.arr[i] = g.arr[g.curNum-1]
	g.curNum--

	if g.curNum > 0 {
		if x == g.curMin {
			g.curMin = g.set.Min()
		}
		if x == g.curMax {
			g.curMax = g.set.Max()
		}
	} else {
		g.curMin = math.MaxUint64
		g.curMax = 0
	}

	return operation{opDelete, x}
}

func (g *generator) insertProbability() float64 {
	return g.pBase + g.pRange*float64(g.maxNum-g.curNum)/float64(g.maxNum)
}

func (g *generator) run(emit func(operation)) {
	output := func(op operation) {
		g.countTotal++
		emit(op)
	}

	// insertion phase
	for g.curNum < g.maxNum && g.countTotal < g.maxOps {
		if g.curNum == 0 || g.genOp.Float64() <= g.insertProbability() {
			output(g.generateInsert())
			continue
		}
		if g.curNum > 0 && g.genOp.Float64() <= g.pQuery {
			output(g.generateQuery())
			continue
		}
		output(g.generateDelete())
	}

	// hold phase
	maxHoldOps := uint64(g.hold * float64(g.countTotal))
	for i := uint64(0); i < maxHoldOps && g.countTotal < g.maxOps; i++ {
		p := g.genOp.Float64()

		if g.curNum < g.maxNum {
			switch {
			case p <= 0.3333:
				output(g.generateInsert())
			case p <= 0.6667:
				output(g.generateDelete())
			default:
				output(g.generateQuery())
			}
		} else {
			if p <= 0.5 {
				output(g.generateDelete())
			} else {
				output(g.generateQuery())
			}
		}
	}

	// deletion phase
	for g.curNum > 0 && g.countTotal < g.maxOps {
		if g.curNum == g.maxNum || g.genOp.Float64() <= g.insertProbability() {
			output(g.generateDelete())
			continue
		}
		if g.curNum > 0 && g.genOp.Float64() <= g.pQuery {
			output(g.generateQuery())
			continue
		}
		output(g.generateInsert())
	}
}
