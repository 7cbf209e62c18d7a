package satcircuit

import (
	"context"
	"fmt"

	"github.com/btormc/btormc/pkg/bmc"
	"github.com/btormc/btormc/pkg/satmgr"
)

type kind int

const (
	kindVar kind = iota
	kindConst
	kindNot
	kindAnd
)

// node is satcircuit's concrete Node. Every node carries the satmgr.Lit that
// represents its value in the backing CNF, Tseitin-style: kindVar/kindConst
// nodes own a literal directly, kindNot reuses its child's literal negated
// (no new CNF variable), and kindAnd allocates one fresh literal plus the
// clauses defining it.
type node struct {
	circuit  *Circuit
	kind     kind
	symbol   string
	lit      satmgr.Lit
	bits     string
	children []*node
	negation *node
}

func (n *node) Width() int     { return 1 }
func (n *node) Symbol() string { return n.symbol }

// Circuit is a bmc.Circuit that encodes every node into the CNF of a real
// satmgr.SATManager (gini-backed) rather than evaluating it in memory.
type Circuit struct {
	mgr      *satmgr.SATManager
	trueLit  satmgr.Lit
	falseLit satmgr.Lit
	hasModel bool
}

// New constructs a Circuit over a fresh, incremental gini-backed
// satmgr.SATManager. It allocates one anchor variable, fixed true by a unit
// clause, to back the constant leaves NewConst produces.
func New() *Circuit {
	mgr := satmgr.New(satmgr.NewGiniDriver(), true)
	if err := mgr.Init(); err != nil {
		panic(bmc.Misuse{Func: "satcircuit.New", Msg: err.Error()})
	}
	anchor := mgr.NextCNFId()
	mgr.Add(anchor)
	mgr.Add(satmgr.LitNull)
	return &Circuit{mgr: mgr, trueLit: anchor, falseLit: -anchor}
}

var _ bmc.Circuit = (*Circuit)(nil)

func asNode(n bmc.Node) *node {
	nd, ok := n.(*node)
	if !ok {
		panic(fmt.Sprintf("satcircuit: foreign node value %#v", n))
	}
	return nd
}

func (c *Circuit) NewVar(width int, symbol string) bmc.Node {
	if width != 1 {
		panic(bmc.Misuse{Func: "satcircuit.NewVar", Msg: "only width-1 nodes are supported"})
	}
	lit := c.mgr.NextCNFId()
	return &node{circuit: c, kind: kindVar, symbol: symbol, lit: lit}
}

func (c *Circuit) NewConst(bits string) bmc.Node {
	if len(bits) != 1 || (bits[0] != '0' && bits[0] != '1') {
		panic(bmc.Misuse{Func: "satcircuit.NewConst", Msg: fmt.Sprintf("non-width-1 bit string %q", bits)})
	}
	lit := c.trueLit
	if bits[0] == '0' {
		lit = c.falseLit
	}
	return &node{circuit: c, kind: kindConst, bits: bits, lit: lit}
}

// Copy and Release are bookkeeping only: a node's literal stays allocated
// for as long as the manager lives, and satcircuit's node graph keeps no
// reference counts of its own to decide when a variable's CNF id could
// safely be handed back. ReleaseCNFId is still exercised for var nodes, the
// same call a caller tracking real reference counts would make; it is a
// no-op under the gini driver (no Melt capability) but not under a backend
// that has one.
func (c *Circuit) Copy(n bmc.Node) bmc.Node { return asNode(n) }

func (c *Circuit) Release(n bmc.Node) {
	nd := asNode(n)
	if nd.kind == kindVar {
		c.mgr.ReleaseCNFId(nd.lit)
	}
}

func (c *Circuit) Equal(a, b bmc.Node) bool {
	return asNode(a) == asNode(b)
}

func (c *Circuit) Not(n bmc.Node) bmc.Node {
	nd := asNode(n)
	if nd.kind == kindNot {
		return nd.children[0]
	}
	if nd.negation == nil {
		neg := &node{circuit: c, kind: kindNot, lit: -nd.lit, children: []*node{nd}}
		neg.negation = nd
		nd.negation = neg
	}
	return nd.negation
}

// And Tseitin-encodes the conjunction: a fresh literal y plus
// (¬y ∨ x_i) for every operand and (y ∨ ¬x_1 ∨ ... ∨ ¬x_n), the standard
// two-way definitional clauses for y <-> AND(x_i).
func (c *Circuit) And(nodes ...bmc.Node) bmc.Node {
	if len(nodes) == 0 {
		return c.NewConst("1")
	}
	children := make([]*node, len(nodes))
	for i, n := range nodes {
		children[i] = asNode(n)
	}

	y := c.mgr.NextCNFId()
	for _, ch := range children {
		c.mgr.Add(-y)
		c.mgr.Add(ch.lit)
		c.mgr.Add(satmgr.LitNull)
	}
	c.mgr.Add(y)
	for _, ch := range children {
		c.mgr.Add(-ch.lit)
	}
	c.mgr.Add(satmgr.LitNull)

	return &node{circuit: c, kind: kindAnd, lit: y, children: children}
}

func (c *Circuit) IsLeaf(n bmc.Node) bool {
	k := asNode(n).kind
	return k == kindVar || k == kindConst
}

func (c *Circuit) IsConst(n bmc.Node) bool {
	return asNode(n).kind == kindConst
}

func (c *Circuit) ConstBits(n bmc.Node) string {
	nd := asNode(n)
	if nd.kind != kindConst {
		panic(bmc.Misuse{Func: "satcircuit.ConstBits", Msg: "called on a non-constant node"})
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

// Rebuild folds to a constant when every child already is one, the same
// eager-fold shortcut refcircuit uses so a chain of substituted constants
// collapses to a single leaf instead of a tree of operators over constants.
func (c *Circuit) Rebuild(n bmc.Node, children []bmc.Node) bmc.Node {
	nd := asNode(n)
	if allConst(children) {
		return c.foldConst(nd.kind, children)
	}
	switch nd.kind {
	case kindNot:
		return c.Not(children[0])
	case kindAnd:
		return c.And(children...)
	default:
		panic(fmt.Sprintf("satcircuit: Rebuild called on leaf kind %d", nd.kind))
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

func (c *Circuit) foldConst(k kind, children []bmc.Node) bmc.Node {
	switch k {
	case kindNot:
		if asNode(children[0]).bits == "1" {
			return c.NewConst("0")
		}
		return c.NewConst("1")
	case kindAnd:
		for _, ch := range children {
			if asNode(ch).bits != "1" {
				return c.NewConst("0")
			}
		}
		return c.NewConst("1")
	default:
		panic(fmt.Sprintf("satcircuit: foldConst: unexpected kind %d", k))
	}
}

func (c *Circuit) Assert(n bmc.Node) {
	nd := asNode(n)
	c.mgr.Add(nd.lit)
	c.mgr.Add(satmgr.LitNull)
}

func (c *Circuit) Assume(n bmc.Node) {
	c.mgr.Assume(asNode(n).lit)
}

func (c *Circuit) Sat() bmc.SatVerdict {
	switch c.mgr.Sat(context.Background(), -1) {
	case satmgr.Sat:
		c.hasModel = true
		return bmc.VerdictSat
	case satmgr.Unsat:
		c.hasModel = false
		return bmc.VerdictUnsat
	default:
		c.hasModel = false
		return bmc.VerdictUnknown
	}
}

// Assignment reads n's value out of gini's model via satmgr.Deref. A Deref
// of 0 (don't care, allowed by the Capabilities contract) is reported as
// 'x'; the gini driver itself always returns a definite 1 or -1.
func (c *Circuit) Assignment(n bmc.Node) string {
	if !c.hasModel {
		panic(bmc.Misuse{Func: "satcircuit.Assignment", Msg: "called with no satisfying model"})
	}
	switch v := c.mgr.Deref(asNode(n).lit); {
	case v > 0:
		return "1"
	case v < 0:
		return "0"
	default:
		return "x"
	}
}
