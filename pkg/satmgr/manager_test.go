package satmgr_test

import (
	"context"
	"testing"

	"github.com/btormc/btormc/pkg/satmgr"
	"github.com/btormc/btormc/pkg/satmgr/internal/faketest"
	"github.com/stretchr/testify/require"
)

func newInitialized(t *testing.T, incNeed bool, withMelt, withFork bool) *satmgr.SATManager {
	t.Helper()
	m := satmgr.New(faketest.New(withMelt, withFork), incNeed)
	require.NoError(t, m.Init())
	return m
}

func TestBasicSatClause(t *testing.T) {
	m := newInitialized(t, false, false, false)

	a := m.NextCNFId()
	b := m.NextCNFId()

	m.Add(a)
	m.Add(b)
	m.Add(satmgr.LitNull)

	res := m.Sat(context.Background(), -1)
	require.Equal(t, satmgr.Sat, res)
	require.True(t, m.Deref(a) == 1 || m.Deref(b) == 1)
}

func TestUnsatClauses(t *testing.T) {
	m := newInitialized(t, false, false, false)

	a := m.NextCNFId()
	m.Add(a)
	m.Add(satmgr.LitNull)
	m.Add(-a)
	m.Add(satmgr.LitNull)

	res := m.Sat(context.Background(), -1)
	require.Equal(t, satmgr.Unsat, res)
}

func TestIncrementalAssumeFailed(t *testing.T) {
	m := newInitialized(t, true, false, false)

	a := m.NextCNFId()
	b := m.NextCNFId()

	// a -> b
	m.Add(-a)
	m.Add(b)
	m.Add(satmgr.LitNull)

	m.Assume(a)
	m.Assume(-b)
	res := m.Sat(context.Background(), -1)
	require.Equal(t, satmgr.Unsat, res)
	require.True(t, m.Failed(a) || m.Failed(-b))
}

func TestReleaseCNFIdNoOpOnTrueLit(t *testing.T) {
	m := newInitialized(t, false, true, false)
	require.NotPanics(t, func() {
		m.ReleaseCNFId(1)
		m.ReleaseCNFId(-1)
	})
}

func TestForkFallback(t *testing.T) {
	m := newInitialized(t, false, false, true)

	a := m.NextCNFId()
	m.Add(a)
	m.Add(satmgr.LitNull)

	// limit at forkLimit engages the fork/brute-fork path in fork.go.
	res := m.Sat(context.Background(), 100000)
	require.Equal(t, satmgr.Sat, res)
}

func TestSetVerbosityBounds(t *testing.T) {
	m := newInitialized(t, false, false, false)
	require.NotPanics(t, func() { m.SetVerbosity(3) })
	require.Panics(t, func() { m.SetVerbosity(4) })
}

func TestIncrementalOpsRequireIncNeed(t *testing.T) {
	m := newInitialized(t, false, false, false)
	require.Panics(t, func() { m.Assume(1) })
}

func TestDoubleInitPanics(t *testing.T) {
	m := newInitialized(t, false, false, false)
	require.Panics(t, func() { m.Init() })
}

func TestVariablesTracksAllocations(t *testing.T) {
	m := newInitialized(t, false, false, false)
	// newInitialized's Init already allocates the true literal.
	before := m.Variables()

	m.NextCNFId()
	m.NextCNFId()
	m.NextCNFId()

	require.GreaterOrEqual(t, m.Variables(), before+3)
	require.EqualValues(t, m.Variables(), m.Stats().MaxVar)
}
