package satmgr

import (
	"context"

	"github.com/btormc/btormc/internal/logging"
	"github.com/btormc/btormc/pkg/metrics"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// SATManager is the solver-agnostic incremental SAT manager: the Go
// analogue of BtorSATMgr. It owns variable-id accounting, clause/call
// counters, the true-literal convention, and the incremental contract
// (assume/failed/inconsistent/changed), delegating the actual search to a
// Capabilities value supplied at construction.
type SATManager struct {
	id  string
	log *logging.Entry
	met *metrics.SATCollector

	caps      Capabilities
	verbosity int

	incNeed     bool
	initialized bool
	satCalls    int
	clauses     int
	maxVar      int32
	trueLit     Lit

	forkCounter int64
}

// New constructs a SATManager over the given driver capabilities. incNeed
// mirrors BtorSATMgr.inc.need: true when the caller intends to use the
// manager incrementally (required before Assume/Failed/Inconsistent/Changed
// may be called). New panics with Misuse if incNeed is true but caps does
// not implement the full incremental group, since that combination can
// never be satisfied and is a caller bug, not a runtime condition.
func New(caps Capabilities, incNeed bool) *SATManager {
	if incNeed && !caps.incremental() {
		abort("New", "backend does not support incremental solving")
	}
	id := logging.NewID()
	m := &SATManager{
		id:      id,
		caps:    caps,
		incNeed: incNeed,
		met:     metrics.NewSATCollector(caps.Name),
	}
	m.log = logging.New("satmgr", id, caps.Name, func() int { return m.verbosity })
	metrics.Register()
	return m
}

// SetVerbosity sets the manager's own log verbosity level, mirroring
// btor_set_verbosity_sat_mgr's assert(-1 <= verbosity <= 3).
func (m *SATManager) SetVerbosity(verbosity int) {
	if verbosity < -1 || verbosity > 3 {
		abort("SetVerbosity", "verbosity out of range [-1,3]")
	}
	m.verbosity = verbosity
	if m.caps.EnableVerbosity != nil {
		m.caps.EnableVerbosity(verbosity)
	}
}

// Init initializes the backend and allocates the true literal: a variable
// fixed true by a unit clause, mirroring btor_init_sat's
// "smgr->true_lit = btor_next_cnf_id_sat_mgr(smgr); add(true_lit); add(0)".
// Init panics if the manager is already initialized; after Reset it may be
// called again.
func (m *SATManager) Init() error {
	if m.initialized {
		abort("Init", "already initialized")
	}
	if err := m.caps.Init(); err != nil {
		return errors.Wrapf(err, "satmgr: %s backend init failed", m.caps.Name)
	}
	m.initialized = true
	m.trueLit = m.NextCNFId()
	m.Add(m.trueLit)
	m.Add(LitNull)
	m.log.Msg(2, "initialized", logrus.Fields{"backend": m.caps.Name, "true_lit": m.trueLit})
	return nil
}

// NextCNFId allocates and returns a fresh variable id, mirroring
// btor_next_cnf_id_sat_mgr. Panics with Misuse ("CNF id overflow") if the
// backend reports exhaustion.
func (m *SATManager) NextCNFId() Lit {
	if !m.initialized {
		abort("NextCNFId", "not initialized")
	}
	v := m.caps.IncMaxVar()
	if v <= 0 {
		abort("NextCNFId", "CNF id overflow")
	}
	if v > m.maxVar {
		m.maxVar = v
		m.met.SetMaxVar(int(m.maxVar))
	}
	return Lit(v)
}

// ReleaseCNFId releases lit back to the backend via the optional Melt
// capability, mirroring btor_release_cnf_id_sat_mgr. A release of the true
// literal (by absolute value) is always a no-op, matching the original's
// "abs(lit) == true_lit" guard. If the backend has no Melt capability, the
// call is a no-op (see DESIGN.md's release_cnf_id idempotence resolution:
// whether releasing the same id twice on a melt-capable backend is safe is
// left to that backend to document).
func (m *SATManager) ReleaseCNFId(lit Lit) {
	if lit == m.trueLit || -lit == m.trueLit {
		return
	}
	if m.caps.Melt != nil {
		m.caps.Melt(lit)
	}
}

// Add appends lit to the clause under construction, or terminates the
// current clause when lit is LitNull, mirroring btor_add_sat. The manager
// counts a completed clause on every LitNull terminator.
func (m *SATManager) Add(lit Lit) {
	if !m.initialized {
		abort("Add", "not initialized")
	}
	m.caps.Add(lit)
	if lit == LitNull {
		m.clauses++
		m.met.AddClause()
	}
}

// Sat runs the search, mirroring btor_sat_sat. limit is a backend-defined
// conflict budget; a negative limit means unbounded. When the backend
// exposes an optional Fork capability and limit meets the fork threshold,
// Sat delegates to the portfolio fallback in fork.go instead of calling the
// backend directly.
func (m *SATManager) Sat(ctx context.Context, limit int) SolveResult {
	if !m.initialized {
		abort("Sat", "not initialized")
	}
	m.satCalls++
	m.met.CallSat()
	m.log.Msg(1, "sat() starting", logrus.Fields{"limit": limit, "call": m.satCalls})

	var res SolveResult
	if m.caps.Fork != nil && limit >= 0 && limit >= forkLimit {
		res = m.forkingSat(ctx, limit)
	} else {
		res = m.caps.Sat(ctx, limit)
	}
	m.log.Msg(1, "sat() finished", logrus.Fields{"result": res.String()})
	return res
}

// Deref returns the last Sat call's assignment to lit, mirroring
// btor_deref_sat.
func (m *SATManager) Deref(lit Lit) int {
	if !m.initialized {
		abort("Deref", "not initialized")
	}
	return m.caps.Deref(lit)
}

// Fixed returns the backend's top-level fixed assignment to lit, mirroring
// btor_fixed_sat.
func (m *SATManager) Fixed(lit Lit) int {
	if !m.initialized {
		abort("Fixed", "not initialized")
	}
	return m.caps.Fixed(lit)
}

// Variables reports the number of variables the backend has allocated,
// mirroring btor_num_vars_sat: after allocating N variables via NextCNFId,
// Variables returns at least N. (The btormc_sat_max_var metric is set by
// NextCNFId from the ids it hands out, not from this call.)
func (m *SATManager) Variables() int {
	if !m.initialized {
		abort("Variables", "not initialized")
	}
	return m.caps.Variables()
}

// Reset releases the backend's solver instance, mirroring btor_reset_sat.
// After Reset every other call panics until Init is called again.
func (m *SATManager) Reset() {
	if !m.initialized {
		abort("Reset", "not initialized")
	}
	m.caps.Reset()
	m.initialized = false
}

// assumeOrAbort is a shared guard for the incremental-only operations,
// mirroring the assert(smgr->inc.need) present on btor_assume_sat and its
// siblings in the original source.
func (m *SATManager) assumeOrAbort(fn string) {
	if !m.incNeed {
		abort(fn, "manager not configured for incremental use")
	}
}

// Assume records lit as a one-shot assumption for the next Sat call,
// mirroring btor_assume_sat.
func (m *SATManager) Assume(lit Lit) {
	m.assumeOrAbort("Assume")
	m.caps.Assume(lit)
}

// Failed reports whether the assumed literal lit is part of the minimal
// explanation for the last Unsat result, mirroring btor_failed_sat.
func (m *SATManager) Failed(lit Lit) bool {
	m.assumeOrAbort("Failed")
	return m.caps.Failed(lit)
}

// Inconsistent reports whether the backend has derived the empty clause
// unconditionally, mirroring btor_inconsistent_sat.
func (m *SATManager) Inconsistent() bool {
	m.assumeOrAbort("Inconsistent")
	return m.caps.Inconsistent()
}

// Changed reports whether the backend's internal representation changed
// since the previous Sat call, mirroring btor_changed_sat. Exposed
// verbatim; see DESIGN.md.
func (m *SATManager) Changed() bool {
	m.assumeOrAbort("Changed")
	return m.caps.Changed()
}

// Stats is a snapshot of manager-level counters, exported for tests and
// diagnostics.
type Stats struct {
	Clauses  int
	SatCalls int
	MaxVar   int32
}

// Stats returns the manager's current bookkeeping counters.
func (m *SATManager) Stats() Stats {
	return Stats{Clauses: m.clauses, SatCalls: m.satCalls, MaxVar: m.maxVar}
}

// nextForkSeed returns a monotonically increasing seed for successive
// Fork calls, mirroring Lingeling's increasing per-fork seed counter.
func (m *SATManager) nextForkSeed() int64 {
	m.forkCounter++
	return m.forkCounter
}
