package satmgr

import (
	"context"
	"io"
)

// Lit is a CNF literal: a nonzero signed integer whose absolute value is a
// variable id allocated by NextCNFId, and whose sign carries polarity. The
// value 0 (LitNull) terminates a clause in Add and never denotes a real
// literal.
type Lit int32

// LitNull is the clause-terminator / no-literal sentinel.
const LitNull Lit = 0

// SolveResult is the outcome of a Sat call.
type SolveResult int

const (
	// Unknown means the backend could not determine satisfiability within
	// its budget (conflict limit exceeded, or its context deadline elapsed).
	Unknown SolveResult = 0
	// Sat means the backend found a satisfying assignment.
	Sat SolveResult = 10
	// Unsat means the backend proved the current clause set unsatisfiable
	// under the current assumptions.
	Unsat SolveResult = 20
)

func (r SolveResult) String() string {
	switch r {
	case Sat:
		return "sat"
	case Unsat:
		return "unsat"
	default:
		return "unknown"
	}
}

// Capabilities is a capability record: a struct of function-valued fields
// describing what a SAT backend driver can do. Mandatory fields are always
// populated by a conforming driver; optional fields are left nil when the
// backend does not support that facility, and SATManager treats a nil
// optional field as "unsupported" rather than panicking on the call.
//
// This mirrors BtorSATMgr.api / BtorSATMgr.inc.api from the original C SAT
// manager, which is itself a struct of function pointers populated
// differently by each backend (btor_enable_lingeling_sat,
// btor_enable_picosat_sat, ...); a capability record over interface-per-
// backend dispatch was chosen for the same reason the C code uses function
// pointers instead of a tagged union: most call sites don't care which
// backend is active, and the few that do (fork, melt) can test a single
// field for nil.
type Capabilities struct {
	// Name identifies the backend for logging and metrics labels.
	Name string

	// Init prepares the backend for use. Called once, before any Add.
	Init func() error

	// Add appends lit to the clause under construction. A call with
	// LitNull terminates the clause (begins a new one on the next Add).
	Add func(lit Lit)

	// Sat runs the search. limit is a backend-defined conflict budget; a
	// negative limit means unbounded. ctx may carry a deadline; a driver
	// that cannot observe its own conflict count maps ctx's deadline to a
	// wall-clock bound instead. Returns Unknown if the budget or deadline
	// is exhausted before a verdict.
	Sat func(ctx context.Context, limit int) SolveResult

	// Deref returns the last Sat call's assignment to lit: 1 (true),
	// -1 (false), or 0 (don't care / undetermined).
	Deref func(lit Lit) int

	// Fixed returns the backend's top-level (assumption-independent) fixed
	// assignment to lit, or 0 if not fixed. Mandatory: see DESIGN.md's
	// "fixed capability" Open Question resolution.
	Fixed func(lit Lit) int

	// Reset releases the underlying solver instance. The manager does not
	// call any other capability after Reset.
	Reset func()

	// SetOutput redirects the backend's own diagnostic output.
	SetOutput func(w io.Writer)

	// SetPrefix sets a line prefix for the backend's own diagnostic output.
	SetPrefix func(prefix string)

	// EnableVerbosity forwards a verbosity level to the backend's own
	// internal logging, independent of the manager's structured logging.
	EnableVerbosity func(level int)

	// IncMaxVar allocates and returns the next unused variable id, or a
	// value <= 0 to signal id-space exhaustion (mirrors
	// btor_next_cnf_id_sat_mgr's overflow check on its backend's
	// inc_max_var result).
	IncMaxVar func() int32

	// Variables reports the number of variables the backend has allocated.
	Variables func() int

	// Assume, Failed, Inconsistent and Changed are the incremental-only
	// optional group. New requires all four when the manager is created for
	// incremental use; otherwise it does not check them.

	// Assume records lit as a one-shot assumption for the next Sat call.
	Assume func(lit Lit)

	// Failed reports whether the assumed literal lit is part of the
	// backend's minimal explanation for the last Unsat result.
	Failed func(lit Lit) bool

	// Inconsistent reports whether the backend has derived the empty
	// clause unconditionally (independent of assumptions).
	Inconsistent func() bool

	// Changed reports whether the backend's internal representation
	// changed since the previous Sat call. Exposed verbatim; see
	// DESIGN.md's "changed() meaning post-SAT" Open Question resolution.
	Changed func() bool

	// Melt releases lit back to the backend, allowing it to reuse the
	// variable id. Optional: nil means melting is a no-op, matching
	// PicoSAT's and MiniSAT's inc.api.melt = 0 in the original source.
	Melt func(lit Lit)

	// Fork spawns a sibling solver seeded by seed, for the portfolio
	// fallback described in fork.go. Optional: nil means the backend has
	// no fork/join primitive, and the manager never attempts the fallback.
	Fork func(seed int64) (Capabilities, error)
}

// incremental reports whether the optional incremental-solving group is
// fully present. New requires this when incNeed is true.
func (c Capabilities) incremental() bool {
	return c.Assume != nil && c.Failed != nil && c.Inconsistent != nil && c.Changed != nil
}
