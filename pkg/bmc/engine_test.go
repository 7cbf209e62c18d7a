package bmc_test

import (
	"testing"

	"github.com/btormc/btormc/pkg/bmc"
	"github.com/btormc/btormc/pkg/bmc/refcircuit"
	"github.com/stretchr/testify/require"
)

func TestBMCMinGreaterThanMaxBuildsNoFrames(t *testing.T) {
	model := refcircuit.New()
	e := bmc.New(model, func() bmc.Circuit { return refcircuit.New() })
	e.Input(1, "x")

	k := e.BMC(3, 1)
	require.Equal(t, -1, k)
	require.Equal(t, bmc.StateUnsat, e.State())
}

func TestBMCWithNoBadPropertiesNeverStops(t *testing.T) {
	model := refcircuit.New()
	e := bmc.New(model, func() bmc.Circuit { return refcircuit.New() })
	e.Input(1, "x")

	k := e.BMC(0, 0)
	require.Equal(t, -1, k)
	require.Equal(t, bmc.StateUnsat, e.State())
}

func TestInputAndLatchRejectedAfterFramesBuilt(t *testing.T) {
	model := refcircuit.New()
	e := bmc.New(model, func() bmc.Circuit { return refcircuit.New() })
	e.Bad(model.NewConst("0"))
	e.BMC(0, 0)

	require.Panics(t, func() { e.Input(1, "late") })
	require.Panics(t, func() { e.Latch(1, "late") })
}

func TestSetInitRequiresConstantOfMatchingWidth(t *testing.T) {
	model := refcircuit.New()
	e := bmc.New(model, func() bmc.Circuit { return refcircuit.New() })
	l := e.Latch(2, "c")

	require.Panics(t, func() { e.SetInit(l, model.NewVar(2, "not-const")) })
	require.Panics(t, func() { e.SetInit(l, model.NewConst("1")) }) // wrong width
}

func TestSetInitAndSetNextAreSetOnce(t *testing.T) {
	model := refcircuit.New()
	e := bmc.New(model, func() bmc.Circuit { return refcircuit.New() })
	l := e.Latch(1, "s")
	e.SetInit(l, model.NewConst("0"))
	require.Panics(t, func() { e.SetInit(l, model.NewConst("1")) })

	e.SetNext(l, l)
	require.Panics(t, func() { e.SetNext(l, model.Not(l)) })
}

func TestReachedBadAtBoundRequiresStopFirstDisabled(t *testing.T) {
	model := refcircuit.New()
	e := bmc.New(model, func() bmc.Circuit { return refcircuit.New() })
	e.Bad(model.NewConst("0"))
	e.BMC(0, 0)

	require.Panics(t, func() { e.ReachedBadAtBound(0) })
}

func TestAssignmentRequiresSatStateAndTraceGen(t *testing.T) {
	model := refcircuit.New()
	e := bmc.New(model, func() bmc.Circuit { return refcircuit.New() })
	x := e.Input(1, "x")
	e.Bad(model.NewConst("0"))

	e.BMC(0, 0)
	require.Panics(t, func() { e.Assignment(x, 0) }, "state is UNSAT, not SAT")

	e2 := bmc.New(refcircuit.New(), func() bmc.Circuit { return refcircuit.New() })
	y := e2.Input(1, "y")
	e2.Bad(y)
	require.Equal(t, 0, e2.BMC(0, 0))
	require.Equal(t, bmc.StateSat, e2.State())
	require.Panics(t, func() { e2.Assignment(y, 0) }, "TRACE_GEN is off")
}

func TestTwoBitCounterReachesOverflowAtBoundThree(t *testing.T) {
	model := refcircuit.New()
	e := bmc.New(model, func() bmc.Circuit { return refcircuit.New() })
	require.NoError(t, e.SetOpt(bmc.OptTraceGen, 1))

	c := e.Latch(2, "c")
	e.SetInit(c, model.NewConst("00"))
	e.SetNext(c, model.Add(c, model.NewConst("01")))
	e.Bad(model.Eq(c, model.NewConst("11")))

	k := e.BMC(0, 5)
	require.Equal(t, 3, k)
	require.Equal(t, bmc.StateSat, e.State())
	require.Equal(t, "00", e.Assignment(c, 0))
	require.Equal(t, "01", e.Assignment(c, 1))
	require.Equal(t, "10", e.Assignment(c, 2))
	require.Equal(t, "11", e.Assignment(c, 3))
}
