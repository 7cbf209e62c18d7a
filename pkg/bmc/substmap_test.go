package bmc_test

import (
	"testing"

	"github.com/btormc/btormc/pkg/bmc"
	"github.com/btormc/btormc/pkg/bmc/refcircuit"
	"github.com/stretchr/testify/require"
)

func TestSubstituteSharesSubtermAcrossPaths(t *testing.T) {
	model := refcircuit.New()
	forward := refcircuit.New()

	x := model.NewVar(1, "x")
	shared := model.Not(x)
	root := model.And(shared, shared)

	fx := forward.NewVar(1, "x@0")
	m := bmc.NewSubstMap(model, forward)
	m.Set(x, fx)

	result := m.Substitute(root)
	children := forward.Children(result)
	require.Len(t, children, 2)
	// Both occurrences of the shared Not(x) subterm must resolve to the
	// exact same forward node: the walk rebuilds each source node once,
	// cached by identity, regardless of how many paths reach it.
	require.True(t, forward.Equal(children[0], children[1]))
}

func TestSubstituteAutoMaterializesConstantLeaves(t *testing.T) {
	model := refcircuit.New()
	forward := refcircuit.New()

	x := model.NewVar(1, "x")
	one := model.NewConst("1")
	expr := model.Xor(x, one)

	fx := forward.NewVar(1, "x@0")
	m := bmc.NewSubstMap(model, forward)
	m.Set(x, fx)

	result := m.Substitute(expr)
	require.False(t, forward.IsConst(result), "xor of a variable with a constant is not itself constant")
}

func TestSubstituteAbortsOnUnmappedVariableLeaf(t *testing.T) {
	model := refcircuit.New()
	forward := refcircuit.New()

	x := model.NewVar(1, "x")
	m := bmc.NewSubstMap(model, forward)

	require.Panics(t, func() { m.Substitute(x) })
}

func TestSubstituteWithMapperFallsBackToAutoConst(t *testing.T) {
	model := refcircuit.New()

	a := model.NewVar(1, "a")
	b := model.NewConst("1")
	expr := model.And(a, b)

	m := bmc.NewSubstMap(model, model)
	mapper := func(leaf bmc.Node) (bmc.Node, bool) {
		if leaf == a {
			return model.NewConst("1"), true
		}
		return nil, false
	}

	result := m.SubstituteWithMapper(expr, mapper)
	require.True(t, model.IsConst(result))
	require.Equal(t, "1", model.ConstBits(result))
}
