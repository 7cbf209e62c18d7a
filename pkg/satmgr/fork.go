package satmgr

import "context"

// forkLimit and bruteForkLimit mirror BTOR_LINGELING_FORK_LIMIT (100000)
// and BTOR_LINGELING_BFORK_LIMIT (200000) from the original Lingeling
// driver: once a Sat call's conflict budget reaches forkLimit, the manager
// hands the call to a forked sibling solver instead of solving in-process;
// if that sibling returns an inconclusive join, the manager retries once,
// unlimited ("brute-fork"), which must produce a verdict.
const (
	forkLimit      = 100000
	bruteForkLimit = 200000
)

// forkingSat implements the fork/brute-fork fallback described above. It is
// only reachable when caps.Fork is non-nil, so it is exercised by
// satmgr/internal/faketest's fork-capable test driver but dormant in the
// shipped gini-backed driver (gini has no fork/join primitive).
func (m *SATManager) forkingSat(ctx context.Context, limit int) SolveResult {
	seed := m.nextForkSeed()
	child, err := m.caps.Fork(seed)
	if err != nil {
		m.log.Msg(0, "fork failed, falling back to in-process solve", nil)
		return m.caps.Sat(ctx, limit)
	}

	capped := limit
	if capped > bruteForkLimit {
		capped = bruteForkLimit
	}
	res := child.Sat(ctx, capped)
	if res == Unknown {
		// Brute-fork: retry unlimited. Per the original design this must
		// succeed; Unknown here would indicate ctx cancellation.
		res = child.Sat(ctx, -1)
	}
	if child.Reset != nil {
		child.Reset()
	}
	return res
}
