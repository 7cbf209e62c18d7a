package bmc

// SubstMap is a non-recursive DAG substitutor: a map from source nodes
// (walked structurally via source.IsLeaf/Children) to target nodes
// (rebuilt via target.Rebuild), plus the worklist machinery to clone a
// whole expression without recursing on the Go call stack. Deep or wide
// circuits would otherwise blow the stack; this follows the teacher's own
// preference for explicit worklists over recursion when walking DAGs of
// unbounded depth.
//
// source and target may be the same Circuit (witness.go's forward2const
// and model2const both walk and rebuild within one circuit) or different
// ones (frame.go's per-frame substitution walks model-circuit structure
// but rebuilds nodes in the forward circuit).
type SubstMap struct {
	source  Circuit
	target  Circuit
	entries map[Node]Node
}

// NewSubstMap returns an empty substitution map. Callers populate leaf
// entries with Set before calling Substitute; constant leaves need no
// entry — they are materialized into target automatically.
func NewSubstMap(source, target Circuit) *SubstMap {
	return &SubstMap{source: source, target: target, entries: make(map[Node]Node)}
}

// Set records an explicit source -> target mapping, typically used to seed
// leaf variables (inputs, latches) before walking an expression that
// references them.
func (m *SubstMap) Set(src, dst Node) {
	m.entries[src] = dst
}

// Get returns the cached target for src, if the walk (or a prior Set) has
// already produced one.
func (m *SubstMap) Get(src Node) (Node, bool) {
	dst, ok := m.entries[src]
	return dst, ok
}

// Mapper is the extended-substitution callback: given a source variable
// leaf that has no map entry (entries and constant leaves are resolved
// before it is consulted), it either returns a target node and true, or
// false, in which case the walk aborts exactly as for any unmapped
// variable leaf. Substitute passes a nil Mapper; only SubstituteWithMapper
// supplies one.
type Mapper func(leaf Node) (Node, bool)

// Substitute rebuilds the expression rooted at root using entries already
// present in the map (normally pre-populated leaf -> target pairs) plus
// constants materialized on the fly: every internal operator is recreated
// with its already-substituted children. A shared subterm is visited, and
// rebuilt, exactly once per call, observable as reference equality
// (Circuit.Equal) of the results for any two paths that reach the same
// source node.
func (m *SubstMap) Substitute(root Node) Node {
	return m.walk(root, nil)
}

// SubstituteWithMapper is the extended form: mapper is consulted for every
// variable leaf lacking a map entry (constant leaves are still
// auto-materialized, never passed to mapper). When mapper yields a node,
// the walker takes ownership and releases it (via target.Release)
// immediately after caching it into the map — the map itself does not hold
// a counted reference, so a Circuit implementation that needs one must
// take it before returning from mapper. This form drives "evaluate under
// model" substitutions (§4.6 / witness.go: forward2const and model2const).
func (m *SubstMap) SubstituteWithMapper(root Node, mapper Mapper) Node {
	return m.walk(root, mapper)
}

type walkPhase int

const (
	walkVisit walkPhase = iota
	walkRebuild
)

type walkItem struct {
	n  Node
	ph walkPhase
}

func (m *SubstMap) walk(root Node, mapper Mapper) Node {
	stack := []walkItem{{root, walkVisit}}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if _, cached := m.entries[top.n]; cached {
			stack = stack[:len(stack)-1]
			continue
		}

		if top.ph == walkVisit {
			if m.source.IsLeaf(top.n) {
				m.resolveLeaf(top.n, mapper)
				stack = stack[:len(stack)-1]
				continue
			}

			stack[len(stack)-1].ph = walkRebuild
			for _, child := range m.source.Children(top.n) {
				if _, cached := m.entries[child]; !cached {
					stack = append(stack, walkItem{child, walkVisit})
				}
			}
			continue
		}

		children := m.source.Children(top.n)
		mapped := make([]Node, len(children))
		for i, child := range children {
			mapped[i] = m.entries[child]
		}
		m.entries[top.n] = m.target.Rebuild(top.n, mapped)
		stack = stack[:len(stack)-1]
	}

	return m.entries[root]
}

func (m *SubstMap) resolveLeaf(leaf Node, mapper Mapper) {
	if m.source.IsConst(leaf) {
		m.entries[leaf] = m.target.NewConst(m.source.ConstBits(leaf))
		return
	}
	if mapper != nil {
		if dst, ok := mapper(leaf); ok {
			m.entries[leaf] = dst
			m.target.Release(dst)
			return
		}
	}
	abort("Substitute", "variable leaf has no substitution map entry")
}
