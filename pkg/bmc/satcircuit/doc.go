// Package satcircuit is a width-1 bmc.Circuit backed by a real
// pkg/satmgr.SATManager (gini-backed). Where refcircuit brute-forces every
// variable assignment, satcircuit Tseitin-encodes And/Not into CNF clauses
// and drives satisfiability through satmgr's Assert/Assume/Sat, the same
// path a production BMC run would take.
//
// bmc.Circuit never requires multi-bit arithmetic — Add/Xor/Eq are
// refcircuit-only builder conveniences, not part of the interface — so a
// width-1 encoding covers every operation the bmc package itself calls.
// Callers that need wider registers still build them out of width-1 nodes
// one bit at a time, same as any gate-level circuit.
package satcircuit
