// Package faketest provides a small, deliberately non-optimized SAT backend
// driver used only by satmgr's own tests. It exists to exercise the
// incremental contract, the Melt lifecycle, and the fork/brute-fork
// fallback path without depending on gini's search behavior — none of
// which btormc's gini-backed production driver exercises (gini has neither
// melt nor fork). It is never selected by production code.
package faketest

import (
	"context"
	"io"

	"github.com/btormc/btormc/pkg/satmgr"
)

// New returns Capabilities for a brute-force solver over small CNFs,
// suitable only for the literal scenarios exercised by this repository's
// own tests. withMelt and withFork gate the two optional capabilities that
// the gini-backed production driver never implements, so tests can opt
// into exercising those paths independently.
func New(withMelt, withFork bool) satmgr.Capabilities {
	d := &driver{}
	caps := satmgr.Capabilities{
		Name:            "faketest",
		Init:            d.init,
		Add:             d.add,
		Sat:             d.sat,
		Deref:           d.deref,
		Fixed:           d.fixed,
		Reset:           d.reset,
		SetOutput:       func(io.Writer) {},
		SetPrefix:       func(string) {},
		EnableVerbosity: func(int) {},
		IncMaxVar:       d.incMaxVar,
		Variables:       d.variables,
		Assume:          d.assume,
		Failed:          d.failed,
		Inconsistent:    d.inconsistent,
		Changed:         d.changed,
	}
	if withMelt {
		caps.Melt = d.melt
	}
	if withFork {
		caps.Fork = d.fork
	}
	return caps
}

type driver struct {
	maxVar     int32
	released   map[int32]bool
	clauses    [][]int32
	clauseBuf  []int32
	assumed    []int32
	assignment map[int32]int
	conflict   []int32
	changedAt  bool
}

func (d *driver) init() error {
	d.released = make(map[int32]bool)
	d.assignment = make(map[int32]int)
	return nil
}

func (d *driver) incMaxVar() int32 {
	d.maxVar++
	return d.maxVar
}

func (d *driver) variables() int {
	return int(d.maxVar)
}

func (d *driver) add(lit satmgr.Lit) {
	if lit == satmgr.LitNull {
		clause := make([]int32, len(d.clauseBuf))
		copy(clause, d.clauseBuf)
		d.clauses = append(d.clauses, clause)
		d.clauseBuf = d.clauseBuf[:0]
		d.changedAt = true
		return
	}
	d.clauseBuf = append(d.clauseBuf, int32(lit))
}

func (d *driver) assume(lit satmgr.Lit) {
	d.assumed = append(d.assumed, int32(lit))
}

func (d *driver) melt(lit satmgr.Lit) {
	v := int32(lit)
	if v < 0 {
		v = -v
	}
	d.released[v] = true
}

// sat is a brute-force search over the (small) variable space built up by
// add/assume: it is correct but exponential, which is acceptable for the
// handful of literals btormc's own test fixtures ever construct.
func (d *driver) sat(ctx context.Context, limit int) satmgr.SolveResult {
	d.changedAt = false
	n := int(d.maxVar)
	assumed := d.assumed
	d.assumed = nil
	clauses := append(append([][]int32{}, d.clauses...), unitClausesFrom(assumed)...)

	assignment, ok := bruteForce(n, clauses)
	if !ok {
		d.conflict = append([]int32{}, assumed...)
		return satmgr.Unsat
	}
	d.assignment = assignment
	d.conflict = nil
	return satmgr.Sat
}

func unitClausesFrom(lits []int32) [][]int32 {
	out := make([][]int32, len(lits))
	for i, l := range lits {
		out[i] = []int32{l}
	}
	return out
}

func bruteForce(n int, clauses [][]int32) (map[int32]int, bool) {
	values := make([]int, n+1)
	var try func(v int) bool
	try = func(v int) bool {
		if v > n {
			return satisfiesAll(clauses, values)
		}
		for _, b := range []int{1, -1} {
			values[v] = b
			if try(v + 1) {
				return true
			}
		}
		values[v] = 0
		return false
	}
	if !try(1) {
		return nil, false
	}
	out := make(map[int32]int, n)
	for i := 1; i <= n; i++ {
		out[int32(i)] = values[i]
	}
	return out, true
}

func satisfiesAll(clauses [][]int32, values []int) bool {
	for _, clause := range clauses {
		if !satisfiesOne(clause, values) {
			return false
		}
	}
	return true
}

func satisfiesOne(clause []int32, values []int) bool {
	for _, lit := range clause {
		v := lit
		want := 1
		if v < 0 {
			v = -v
			want = -1
		}
		if values[v] == want {
			return true
		}
	}
	return false
}

func (d *driver) deref(lit satmgr.Lit) int {
	v := int32(lit)
	neg := v < 0
	if neg {
		v = -v
	}
	val, ok := d.assignment[v]
	if !ok {
		return 0
	}
	if neg {
		return -val
	}
	return val
}

func (d *driver) fixed(lit satmgr.Lit) int {
	for _, clause := range d.clauses {
		if len(clause) == 1 {
			v := clause[0]
			want := int32(lit)
			if v == want {
				return 1
			}
			if v == -want {
				return -1
			}
		}
	}
	return 0
}

func (d *driver) failed(lit satmgr.Lit) bool {
	want := int32(lit)
	for _, c := range d.conflict {
		if c == want {
			return true
		}
	}
	return false
}

func (d *driver) inconsistent() bool {
	for _, c := range d.clauses {
		if len(c) == 0 {
			return true
		}
	}
	return false
}

func (d *driver) changed() bool {
	return d.changedAt
}

func (d *driver) reset() {
	*d = driver{}
}

// fork returns a sibling driver's Capabilities seeded by seed. The fake
// fork simply deep-copies the current clause set into a fresh driver: it
// exists only to exercise SATManager's fork/brute-fork control flow, not
// to model real portfolio diversity.
func (d *driver) fork(seed int64) (satmgr.Capabilities, error) {
	child := &driver{
		maxVar:     d.maxVar,
		released:   map[int32]bool{},
		assignment: map[int32]int{},
	}
	child.clauses = append(child.clauses, d.clauses...)
	_ = seed
	caps := satmgr.Capabilities{
		Name:            "faketest-fork",
		Init:            child.init,
		Add:             child.add,
		Sat:             child.sat,
		Deref:           child.deref,
		Fixed:           child.fixed,
		Reset:           child.reset,
		SetOutput:       func(io.Writer) {},
		SetPrefix:       func(string) {},
		EnableVerbosity: func(int) {},
		IncMaxVar:       child.incMaxVar,
		Variables:       child.variables,
		Assume:          child.assume,
		Failed:          child.failed,
		Inconsistent:    child.inconsistent,
		Changed:         child.changed,
	}
	if err := child.init(); err != nil {
		return satmgr.Capabilities{}, err
	}
	return caps, nil
}
