// Package metrics exposes Prometheus instrumentation for SAT manager and
// BMC engine activity. It is adapted from the teacher's pkg/metrics package:
// the same "package-level gauge/counter vars plus a Register() entry point"
// shape, with the CSV/InstallPlan/Subscription resource gauges replaced by
// SAT-solving and bounded-model-checking counters.
package metrics

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	satClausesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "btormc_sat_clauses_total",
			Help: "Total clauses added to a SAT manager instance.",
		},
		[]string{"manager"},
	)

	satCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "btormc_sat_calls_total",
			Help: "Total Sat() calls made against a SAT manager instance.",
		},
		[]string{"manager"},
	)

	satMaxVar = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "btormc_sat_max_var",
			Help: "Highest CNF variable id allocated by a SAT manager instance.",
		},
		[]string{"manager"},
	)

	bmcBound = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "btormc_bmc_bound",
			Help: "Bound currently being checked by a BMC engine instance.",
		},
		[]string{"engine"},
	)

	bmcReachedBound = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "btormc_bmc_reached_bound",
			Help: "Bound at which a bad-state property was first reached, keyed by property index.",
		},
		[]string{"engine", "property"},
	)
)

var registerOnce sync.Once

// Register registers every collector with the default Prometheus registry.
// Safe to call from multiple SAT managers or BMC engines sharing a process;
// registration itself only happens once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(satClausesTotal)
		prometheus.MustRegister(satCallsTotal)
		prometheus.MustRegister(satMaxVar)
		prometheus.MustRegister(bmcBound)
		prometheus.MustRegister(bmcReachedBound)
	})
}

// SATCollector records per-instance SAT manager counters.
type SATCollector struct {
	manager string
}

// NewSATCollector returns a collector whose series are labeled with the
// given SAT manager name (its backend name, e.g. "gini").
func NewSATCollector(manager string) *SATCollector {
	return &SATCollector{manager: manager}
}

func (c *SATCollector) AddClause() {
	satClausesTotal.WithLabelValues(c.manager).Inc()
}

func (c *SATCollector) CallSat() {
	satCallsTotal.WithLabelValues(c.manager).Inc()
}

func (c *SATCollector) SetMaxVar(v int) {
	satMaxVar.WithLabelValues(c.manager).Set(float64(v))
}

// BMCCollector records per-instance BMC engine gauges.
type BMCCollector struct {
	engine string
}

// NewBMCCollector returns a collector whose series are labeled with the
// given BMC engine correlation id.
func NewBMCCollector(engine string) *BMCCollector {
	return &BMCCollector{engine: engine}
}

func (c *BMCCollector) SetBound(k int) {
	bmcBound.WithLabelValues(c.engine).Set(float64(k))
}

func (c *BMCCollector) SetReachedBound(property int, k int) {
	bmcReachedBound.WithLabelValues(c.engine, strconv.Itoa(property)).Set(float64(k))
}
