package satmgr

import (
	"context"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/go-air/gini"
	"github.com/go-air/gini/inter"
	"github.com/go-air/gini/z"

	"github.com/btormc/btormc/pkg/metrics"
)

// NewGiniDriver returns the Capabilities for github.com/go-air/gini, the
// pack's sole real incremental SAT library (confirmed via the teacher's
// own pkg/controller/registry/resolver/solver package, which pins
// github.com/go-air/gini v1.0.4 in go.mod). It is the only production
// backend shipped: it does not implement Melt (gini has no freeze/melt
// concept) or Fork (gini has no solver-level fork/join primitive), so
// those two optional capabilities are left nil.
func NewGiniDriver() Capabilities {
	return newGiniDriver(nil)
}

func newGiniDriver(options map[string]int) Capabilities {
	d := &giniDriver{options: options}
	return Capabilities{
		Name:            "gini",
		Init:            d.init,
		Add:             d.add,
		Sat:             d.sat,
		Deref:           d.deref,
		Fixed:           d.fixed,
		Reset:           d.reset,
		SetOutput:       d.setOutput,
		SetPrefix:       d.setPrefix,
		EnableVerbosity: d.enableVerbosity,
		IncMaxVar:       d.incMaxVar,
		Variables:       d.variables,
		Assume:          d.assume,
		Failed:          d.failed,
		Inconsistent:    d.inconsistent,
		Changed:         d.changed,
	}
}

type giniDriver struct {
	g              inter.S
	maxVar         int32
	clauseBuf      []Lit
	fixed          map[int32]int
	changedFlag    bool
	sawEmptyClause bool
	options        map[string]int
}

func (d *giniDriver) init() error {
	d.g = gini.New()
	d.fixed = make(map[int32]int)
	if v, ok := d.options["verbosity"]; ok {
		d.enableVerbosity(v)
	}
	return nil
}

func litToGini(l Lit) z.Lit {
	if l == LitNull {
		return z.LitNull
	}
	v := int32(l)
	neg := v < 0
	if neg {
		v = -v
	}
	m := z.Var(v).Pos()
	if neg {
		return m.Not()
	}
	return m
}

func (d *giniDriver) add(lit Lit) {
	if lit == LitNull {
		switch len(d.clauseBuf) {
		case 0:
			d.sawEmptyClause = true
		case 1:
			unit := d.clauseBuf[0]
			if unit > 0 {
				d.fixed[int32(unit)] = 1
			} else {
				d.fixed[int32(-unit)] = -1
			}
		}
		d.g.Add(z.LitNull)
		d.clauseBuf = d.clauseBuf[:0]
		d.changedFlag = true
		return
	}
	d.clauseBuf = append(d.clauseBuf, lit)
	d.g.Add(litToGini(lit))
}

// budgetToDuration maps a conflict-style budget onto a wall-clock bound,
// since gini's public inter.S surface does not expose a raw conflict
// counter to stop on directly. See SPEC_FULL.md §4.1 and DESIGN.md.
func budgetToDuration(limit int) time.Duration {
	d := time.Duration(limit) * 50 * time.Microsecond
	const max = 10 * time.Minute
	if d > max {
		return max
	}
	if d <= 0 {
		return time.Millisecond
	}
	return d
}

func (d *giniDriver) sat(ctx context.Context, limit int) SolveResult {
	if limit >= 0 {
		if _, ok := ctx.Deadline(); !ok {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, budgetToDuration(limit))
			defer cancel()
		}
	}

	done := make(chan int, 1)
	go func() { done <- d.g.Solve() }()

	select {
	case r := <-done:
		d.changedFlag = false
		return giniResult(r)
	case <-ctx.Done():
		return Unknown
	}
}

func giniResult(r int) SolveResult {
	switch {
	case r == 1:
		return Sat
	case r == -1:
		return Unsat
	default:
		return Unknown
	}
}

func (d *giniDriver) deref(lit Lit) int {
	if lit == LitNull {
		return 0
	}
	if d.g.Value(litToGini(lit)) {
		return 1
	}
	return -1
}

// fixed reports the value of lit's variable as set by a unit clause passed
// through add. It does no propagation of its own: a variable forced only by
// unit propagation over longer clauses is reported as 0.
func (d *giniDriver) fixed(lit Lit) int {
	v := int32(lit)
	neg := v < 0
	if neg {
		v = -v
	}
	f, ok := d.fixed[v]
	if !ok {
		return 0
	}
	if neg {
		return -f
	}
	return f
}

func (d *giniDriver) reset() {
	d.g = nil
	d.fixed = nil
	d.clauseBuf = nil
}

func (d *giniDriver) setOutput(w io.Writer) {
	// gini has no redirectable internal diagnostic stream; the manager's
	// own structured logging (internal/logging) covers this need instead.
	_ = w
}

func (d *giniDriver) setPrefix(prefix string) {
	_ = prefix
}

func (d *giniDriver) enableVerbosity(level int) {
	_ = level
}

func (d *giniDriver) incMaxVar() int32 {
	d.maxVar++
	return d.maxVar
}

func (d *giniDriver) variables() int {
	return int(d.maxVar)
}

func (d *giniDriver) assume(lit Lit) {
	d.g.Assume(litToGini(lit))
}

func (d *giniDriver) failed(lit Lit) bool {
	why := d.g.Why(nil)
	want := litToGini(lit)
	for _, m := range why {
		if m == want {
			return true
		}
	}
	return false
}

func (d *giniDriver) inconsistent() bool {
	return d.sawEmptyClause
}

func (d *giniDriver) changed() bool {
	return d.changedFlag
}

// giniOptionKeys are the option keys EnableGini recognizes in an opt_str.
// gini carries no generic per-option configuration surface of its own
// (unlike the Lingeling this grammar is named after), so this is the small,
// explicit set this driver understands rather than an open-ended passthrough;
// "verbosity" is wired to the existing enableVerbosity stub at init, "seed"
// is recorded for callers that want it reflected in diagnostics even though
// gini's public inter.S surface exposes no seeding hook to forward it to.
var giniOptionKeys = map[string]bool{
	"verbosity": true,
	"seed":      true,
}

// ParseGiniOptString validates opt_str against the grammar spec.md §4.1
// describes for enable_<backend>: a comma-separated list of key=value
// pairs, each key alphabetic-start alphanumeric, each value an
// optionally-signed integer. An empty string is valid and yields no
// options. It returns a ConfigError naming the first problem found,
// without ever touching a live SATManager — the validation itself is
// the "probe a throwaway solver" step; EnableGini additionally allocates
// and discards a real gini instance so the probe exercises backend
// construction, not just string parsing.
func ParseGiniOptString(optStr string) (map[string]int, error) {
	opts := make(map[string]int)
	if optStr == "" {
		return opts, nil
	}
	for _, pair := range strings.Split(optStr, ",") {
		key, val, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, ConfigError{Option: pair, Msg: "missing '='"}
		}
		if !isGiniOptKey(key) {
			return nil, ConfigError{Option: key, Msg: "key must be alphabetic-start alphanumeric"}
		}
		n, err := strconv.Atoi(val)
		if err != nil {
			return nil, ConfigError{Option: key, Msg: "value must be an optionally-signed integer"}
		}
		if !giniOptionKeys[key] {
			return nil, ConfigError{Option: key, Msg: "unknown gini option"}
		}
		opts[key] = n
	}
	return opts, nil
}

func isGiniOptKey(key string) bool {
	if key == "" || !isAlpha(key[0]) {
		return false
	}
	for i := 1; i < len(key); i++ {
		if !isAlpha(key[i]) && !isDigit(key[i]) {
			return false
		}
	}
	return true
}

func isAlpha(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') }
func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// EnableGini installs the gini-backed driver, validating opt_str before
// installing anything, mirroring spec.md §4.1's
// "enable_<backend>(SM [, opt_str])... must fail if already initialized...
// validates the full string without side-effects by probing a throwaway
// solver; returns failure if any option is unknown." A malformed or
// unknown option leaves the manager's existing capabilities (if any)
// untouched.
func (m *SATManager) EnableGini(optStr string) error {
	if m.initialized {
		return ConfigError{Option: optStr, Msg: "manager already initialized"}
	}
	opts, err := ParseGiniOptString(optStr)
	if err != nil {
		return err
	}

	probe := &giniDriver{}
	if err := probe.init(); err != nil {
		return err
	}
	probe.reset()

	m.caps = newGiniDriver(opts)
	m.met = metrics.NewSATCollector(m.caps.Name)
	return nil
}
