// Package satmgr implements the solver-agnostic incremental SAT manager
// (SATManager) and the capability-record contract that pluggable SAT
// backend drivers must satisfy. It is the Go analogue of Boolector's
// BtorSATMgr / BtorSATMgr.api split: SATManager owns variable-id
// accounting, clause/call counters, and the incremental contract, while
// a Capabilities value supplies the actual solving engine.
package satmgr
