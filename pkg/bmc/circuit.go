package bmc

// SatVerdict is the three-valued result of a Circuit.Sat call, mirroring
// satmgr.SolveResult one level up (the circuit collaborator is expected to
// run its own SAT query, e.g. by bit-blasting onto a satmgr.SATManager; how
// it does so is out of scope for this package).
type SatVerdict int

const (
	VerdictUnknown SatVerdict = iota
	VerdictSat
	VerdictUnsat
)

// Node is an opaque handle to a bit-vector expression node owned by some
// Circuit. Node values denote identity, not structure: two Node values
// obtained from the same underlying expression (at the same polarity)
// compare equal with == and are interchangeable as map keys, exactly as
// spec'd for node identity being "the key into [the engine's] hash maps".
// A concrete Circuit implementation must make its Node type comparable
// (a value type or a pointer, never a slice/map/func) for this to hold.
type Node interface {
	// Width reports the node's bit-vector width; always positive.
	Width() int
	// Symbol returns the node's optional name, or "" if it has none.
	Symbol() string
}

// Circuit is the bit-vector/SMT collaborator the BMC core consumes. It is
// deliberately narrow: node construction, simplification, and bit-blasting
// belong to the circuit implementation, not to this package. bmc treats
// every Node as opaque beyond Width/Symbol and the operations below.
type Circuit interface {
	// NewVar allocates a fresh variable node of the given width. symbol may
	// be empty.
	NewVar(width int, symbol string) Node
	// NewConst builds a constant node from an MSB-first bit string ('0'/'1'
	// only); the returned node's width equals len(bits).
	NewConst(bits string) Node

	// Copy increments the node's reference count and returns a handle
	// sharing its identity for the purpose of Equal, but independently
	// releasable.
	Copy(n Node) Node
	// Release decrements the node's reference count, freeing it at zero.
	Release(n Node)
	// Equal reports structural identity: whether a and b denote the same
	// node at the same polarity.
	Equal(a, b Node) bool

	// Not returns the polarity-inverted view of n without allocating a new
	// underlying node.
	Not(n Node) Node
	// And returns the conjunction of the given width-1 nodes. And() with no
	// arguments returns the constant true.
	And(nodes ...Node) Node

	// IsLeaf reports whether n is a variable or constant, i.e. has no
	// children to walk. The substitution map (substmap.go) treats every
	// non-leaf as an internal operator to be recreated structurally.
	IsLeaf(n Node) bool
	// IsConst reports whether n is specifically a constant leaf, as opposed
	// to a free variable. Used to validate a latch's init node (§4.4/§6.2:
	// "init must be a constant of the same width").
	IsConst(n Node) bool
	// ConstBits returns n's MSB-first bit pattern. Valid only when
	// IsConst(n) is true. Used to re-materialize a constant leaf (or a
	// fully-folded constant expression) in a different circuit than the one
	// that produced it — see substmap.go's handling of embedded constants
	// and witness.go's two-level constant-under-model reduction.
	ConstBits(n Node) string
	// Children returns n's operands in a fixed, stable order. Empty for a
	// leaf node.
	Children(n Node) []Node
	// Rebuild recreates n's operator with the given already-substituted
	// children, preserving n's kind, width, and polarity. len(children)
	// always equals len(Children(n)) when called by the substitution map.
	Rebuild(n Node, children []Node) Node

	// Assert permanently conjoins n (width 1) to every future Sat query.
	Assert(n Node)
	// Assume conjoins n (width 1) to the next Sat query only.
	Assume(n Node)
	// Sat runs (or re-runs) the circuit's own SAT query under the current
	// assertions and the assumptions made since the last Sat call.
	Sat() SatVerdict
	// Assignment returns the MSB-first bit-assignment of n in the last
	// satisfying model, using 'x' for any bit the model leaves unconstrained.
	// Valid only after Sat returned VerdictSat.
	Assignment(n Node) string
}
