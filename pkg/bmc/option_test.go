package bmc_test

import (
	"testing"

	"github.com/btormc/btormc/pkg/bmc"
	"github.com/btormc/btormc/pkg/bmc/refcircuit"
	"github.com/stretchr/testify/require"
)

func newTestEngine() *bmc.Engine {
	return bmc.New(refcircuit.New(), func() bmc.Circuit { return refcircuit.New() })
}

func TestDefaultOptionValues(t *testing.T) {
	e := newTestEngine()
	require.EqualValues(t, 0, e.GetOpt(bmc.OptVerbosity))
	require.EqualValues(t, 1, e.GetOpt(bmc.OptStopFirst))
	require.EqualValues(t, 0, e.GetOpt(bmc.OptTraceGen))
}

func TestSetOptClampsToRange(t *testing.T) {
	e := newTestEngine()
	require.NoError(t, e.SetOpt(bmc.OptStopFirst, 17))
	require.EqualValues(t, 1, e.GetOpt(bmc.OptStopFirst))
}

func TestSetOptUnknownNameReturnsConfigError(t *testing.T) {
	e := newTestEngine()
	err := e.SetOpt("not-a-real-option", 1)
	require.Error(t, err)
	var cfgErr bmc.ConfigError
	require.ErrorAs(t, err, &cfgErr)
}

func TestSetOptTraceGenAfterFrameBuiltPanics(t *testing.T) {
	e := newTestEngine()
	require.NoError(t, e.SetOpt(bmc.OptTraceGen, 1))
	e.Bad(e.Latch(1, "never-used")) // forces nothing; just ensures a bad exists
	e.BMC(0, 0)
	require.Panics(t, func() { _ = e.SetOpt(bmc.OptTraceGen, 0) })
}

func TestIsValidOpt(t *testing.T) {
	e := newTestEngine()
	require.True(t, e.IsValidOpt(bmc.OptVerbosity))
	require.False(t, e.IsValidOpt("bogus"))
}
