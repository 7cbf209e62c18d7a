package refcircuit_test

import (
	"testing"

	"github.com/btormc/btormc/pkg/bmc"
	"github.com/btormc/btormc/pkg/bmc/refcircuit"
	"github.com/stretchr/testify/require"
)

func TestConstWidthAndBits(t *testing.T) {
	c := refcircuit.New()
	n := c.NewConst("101")
	require.Equal(t, 3, n.Width())
	require.True(t, c.IsConst(n))
	require.Equal(t, "101", c.ConstBits(n))
}

func TestNotIsInvolutive(t *testing.T) {
	c := refcircuit.New()
	v := c.NewVar(1, "x")
	notV := c.Not(v)
	require.False(t, c.Equal(v, notV))
	require.True(t, c.Equal(v, c.Not(notV)))
}

func TestEqualIsIdentityNotStructural(t *testing.T) {
	c := refcircuit.New()
	a := c.NewConst("0")
	b := c.NewConst("0")
	require.False(t, c.Equal(a, b), "two separately allocated constants are not the same node")
	require.True(t, c.Equal(a, a))
}

func TestAndFoldsAllConstantChildrenOnRebuild(t *testing.T) {
	c := refcircuit.New()
	one := c.NewConst("1")
	zero := c.NewConst("0")
	and := c.And(one, zero)
	rebuilt := c.Rebuild(and, []bmc.Node{one, zero})
	require.True(t, c.IsConst(rebuilt))
	require.Equal(t, "0", c.ConstBits(rebuilt))
}

func TestSatUnsatOverFreeVariable(t *testing.T) {
	c := refcircuit.New()
	x := c.NewVar(1, "x")
	c.Assert(x)
	require.Equal(t, bmc.VerdictSat, c.Sat())
	require.Equal(t, "1", c.Assignment(x))

	c2 := refcircuit.New()
	y := c2.NewVar(1, "y")
	c2.Assert(y)
	c2.Assert(c2.Not(y))
	require.Equal(t, bmc.VerdictUnsat, c2.Sat())
}

func TestAssumeIsClearedAfterSat(t *testing.T) {
	c := refcircuit.New()
	x := c.NewVar(1, "x")
	c.Assume(c.Not(x))
	require.Equal(t, bmc.VerdictSat, c.Sat())
	require.Equal(t, "0", c.Assignment(x))

	// The assumption from the previous call must not still apply.
	require.Equal(t, bmc.VerdictSat, c.Sat())
}

func TestAddWrapsModuloWidth(t *testing.T) {
	c := refcircuit.New()
	three := c.NewConst("11")
	one := c.NewConst("01")
	sum := c.Add(three, one)
	rebuilt := c.Rebuild(sum, []bmc.Node{three, one})
	require.Equal(t, "00", c.ConstBits(rebuilt))
}
