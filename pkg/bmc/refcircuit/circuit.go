package refcircuit

import (
	"fmt"

	"github.com/btormc/btormc/pkg/bmc"
)

type kind int

const (
	kindVar kind = iota
	kindConst
	kindNot
	kindAnd
	kindAdd
	kindXor
	kindEq
)

// node is refcircuit's concrete Node. It is a pointer type, so two handles
// are == exactly when they denote the same allocation — the identity
// semantics bmc.Node requires.
type node struct {
	circuit  *Circuit
	kind     kind
	width    int
	symbol   string
	children []*node
	varID    int
	bits     string
	negation *node
}

func (n *node) Width() int    { return n.width }
func (n *node) Symbol() string { return n.symbol }

// Circuit is a brute-force bmc.Circuit: every Sat call enumerates every
// combination of values for every variable ever allocated on it. See
// package doc for why that is an acceptable trade for this repository's
// scope.
type Circuit struct {
	nextVarID int
	vars      []*node
	asserts   []*node
	assumes   []*node
	model     map[int]uint64
	hasModel  bool
}

// New returns an empty Circuit.
func New() *Circuit {
	return &Circuit{model: make(map[int]uint64)}
}

var _ bmc.Circuit = (*Circuit)(nil)

func asNode(n bmc.Node) *node {
	nd, ok := n.(*node)
	if !ok {
		panic(fmt.Sprintf("refcircuit: foreign node value %#v", n))
	}
	return nd
}

func (c *Circuit) NewVar(width int, symbol string) bmc.Node {
	n := &node{circuit: c, kind: kindVar, width: width, symbol: symbol, varID: c.nextVarID}
	c.nextVarID++
	c.vars = append(c.vars, n)
	return n
}

func (c *Circuit) NewConst(bits string) bmc.Node {
	for _, b := range bits {
		if b != '0' && b != '1' {
			panic(fmt.Sprintf("refcircuit: NewConst: non-binary bit string %q", bits))
		}
	}
	return &node{circuit: c, kind: kindConst, width: len(bits), bits: bits}
}

// Copy and Release are bookkeeping only: refcircuit nodes live as long as
// anything references them, per ordinary Go GC; no backend resource needs
// explicit release. They exist to satisfy bmc.Circuit's contract, which
// assumes a collaborator that does manage such resources.
func (c *Circuit) Copy(n bmc.Node) bmc.Node { return asNode(n) }
func (c *Circuit) Release(bmc.Node)         {}

func (c *Circuit) Equal(a, b bmc.Node) bool {
	return asNode(a) == asNode(b)
}

func (c *Circuit) Not(n bmc.Node) bmc.Node {
	nd := asNode(n)
	if nd.kind == kindNot {
		return nd.children[0]
	}
	if nd.negation == nil {
		neg := &node{circuit: c, kind: kindNot, width: nd.width, children: []*node{nd}}
		neg.negation = nd
		nd.negation = neg
	}
	return nd.negation
}

func (c *Circuit) And(nodes ...bmc.Node) bmc.Node {
	if len(nodes) == 0 {
		return c.NewConst("1")
	}
	children := make([]*node, len(nodes))
	for i, n := range nodes {
		children[i] = asNode(n)
	}
	return &node{circuit: c, kind: kindAnd, width: 1, children: children}
}

// Add returns the width-preserving sum of a and b, modulo 2^width. Not part
// of bmc.Circuit: a builder convenience for constructing model circuits
// (e.g. a counter's next-state function) in tests and scenarios.
func (c *Circuit) Add(a, b bmc.Node) bmc.Node {
	an := asNode(a)
	return &node{circuit: c, kind: kindAdd, width: an.width, children: []*node{an, asNode(b)}}
}

// Xor returns the bitwise exclusive-or of a and b, same width as its operands.
func (c *Circuit) Xor(a, b bmc.Node) bmc.Node {
	an := asNode(a)
	return &node{circuit: c, kind: kindXor, width: an.width, children: []*node{an, asNode(b)}}
}

// Eq returns a width-1 node that is true iff a and b hold equal values.
func (c *Circuit) Eq(a, b bmc.Node) bmc.Node {
	return &node{circuit: c, kind: kindEq, width: 1, children: []*node{asNode(a), asNode(b)}}
}

func (c *Circuit) IsLeaf(n bmc.Node) bool {
	nd := asNode(n)
	return nd.kind == kindVar || nd.kind == kindConst
}

func (c *Circuit) IsConst(n bmc.Node) bool {
	return asNode(n).kind == kindConst
}

func (c *Circuit) ConstBits(n bmc.Node) string {
	nd := asNode(n)
	if nd.kind != kindConst {
		panic("refcircuit: ConstBits called on a non-constant node")
	}
	return nd.bits
}

func (c *Circuit) Children(n bmc.Node) []bmc.Node {
	nd := asNode(n)
	out := make([]bmc.Node, len(nd.children))
	for i, ch := range nd.children {
		out[i] = ch
	}
	return out
}

// Rebuild reconstructs n's operator with the substituted children. When
// every child is itself a constant, it folds eagerly into a single
// constant node rather than an operator applied to constants — this is
// what lets witness.go's leaf-to-constant substitution collapse a whole
// expression down to one constant whose bits can be read directly via
// ConstBits, without a second evaluation pass.
func (c *Circuit) Rebuild(n bmc.Node, children []bmc.Node) bmc.Node {
	nd := asNode(n)
	if allConst(children) {
		return c.foldConst(nd.kind, nd.width, children)
	}
	switch nd.kind {
	case kindNot:
		return c.Not(children[0])
	case kindAnd:
		return c.And(children...)
	case kindAdd:
		return c.Add(children[0], children[1])
	case kindXor:
		return c.Xor(children[0], children[1])
	case kindEq:
		return c.Eq(children[0], children[1])
	default:
		panic(fmt.Sprintf("refcircuit: Rebuild called on leaf kind %d", nd.kind))
	}
}

func allConst(children []bmc.Node) bool {
	for _, ch := range children {
		if asNode(ch).kind != kindConst {
			return false
		}
	}
	return true
}

func (c *Circuit) foldConst(k kind, width int, children []bmc.Node) bmc.Node {
	vals := make([]uint64, len(children))
	for i, ch := range children {
		vals[i] = bitsToValue(asNode(ch).bits)
	}
	mask := widthMask(width)
	var result uint64
	switch k {
	case kindNot:
		result = (^vals[0]) & mask
	case kindAnd:
		result = mask
		for _, v := range vals {
			result &= v
		}
	case kindAdd:
		result = (vals[0] + vals[1]) & mask
	case kindXor:
		result = (vals[0] ^ vals[1]) & mask
	case kindEq:
		if vals[0] == vals[1] {
			result = 1
		}
	default:
		panic(fmt.Sprintf("refcircuit: foldConst: unexpected kind %d", k))
	}
	return c.NewConst(valueToBits(result, width))
}

func (c *Circuit) Assert(n bmc.Node) {
	c.asserts = append(c.asserts, asNode(n))
}

func (c *Circuit) Assume(n bmc.Node) {
	c.assumes = append(c.assumes, asNode(n))
}

// Sat brute-forces every combination of values for every variable this
// Circuit has ever allocated. Assumptions are consumed (cleared) whether or
// not the call is satisfiable, matching the "assume applies to the next Sat
// only" contract.
func (c *Circuit) Sat() bmc.SatVerdict {
	assignment := make(map[int]uint64, len(c.vars))
	ok := c.search(0, assignment)
	c.assumes = nil
	if !ok {
		c.hasModel = false
		return bmc.VerdictUnsat
	}
	c.model = assignment
	c.hasModel = true
	return bmc.VerdictSat
}

func (c *Circuit) search(idx int, assignment map[int]uint64) bool {
	if idx == len(c.vars) {
		return c.satisfies(assignment)
	}
	v := c.vars[idx]
	domain := uint64(1) << uint(v.width)
	for val := uint64(0); val < domain; val++ {
		assignment[v.varID] = val
		if c.search(idx+1, assignment) {
			return true
		}
	}
	delete(assignment, v.varID)
	return false
}

func (c *Circuit) satisfies(assignment map[int]uint64) bool {
	for _, a := range c.asserts {
		if eval(a, assignment) != 1 {
			return false
		}
	}
	for _, a := range c.assumes {
		if eval(a, assignment) != 1 {
			return false
		}
	}
	return true
}

// Assignment reports n's value under the last satisfying model, MSB-first.
// Every bit is concrete: refcircuit's brute-force search always produces a
// total assignment, so it never needs the 'x' convention real backends use
// for genuinely unconstrained bits.
func (c *Circuit) Assignment(n bmc.Node) string {
	if !c.hasModel {
		panic("refcircuit: Assignment called with no satisfying model")
	}
	nd := asNode(n)
	return valueToBits(eval(nd, c.model), nd.width)
}

func widthMask(width int) uint64 {
	return (uint64(1) << uint(width)) - 1
}

func bitsToValue(bits string) uint64 {
	var v uint64
	for _, b := range bits {
		v <<= 1
		if b == '1' {
			v |= 1
		}
	}
	return v
}

func valueToBits(v uint64, width int) string {
	out := make([]byte, width)
	for i := width - 1; i >= 0; i-- {
		if v&1 == 1 {
			out[i] = '1'
		} else {
			out[i] = '0'
		}
		v >>= 1
	}
	return string(out)
}

func eval(n *node, assignment map[int]uint64) uint64 {
	mask := widthMask(n.width)
	switch n.kind {
	case kindVar:
		return assignment[n.varID] & mask
	case kindConst:
		return bitsToValue(n.bits) & mask
	case kindNot:
		return (^eval(n.children[0], assignment)) & mask
	case kindAnd:
		result := mask
		for _, ch := range n.children {
			result &= eval(ch, assignment)
		}
		return result & mask
	case kindAdd:
		return (eval(n.children[0], assignment) + eval(n.children[1], assignment)) & mask
	case kindXor:
		return (eval(n.children[0], assignment) ^ eval(n.children[1], assignment)) & mask
	case kindEq:
		if eval(n.children[0], assignment) == eval(n.children[1], assignment) {
			return 1
		}
		return 0
	default:
		panic(fmt.Sprintf("refcircuit: eval: unknown kind %d", n.kind))
	}
}
