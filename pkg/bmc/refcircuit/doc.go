// Package refcircuit is a minimal in-memory implementation of bmc.Circuit.
// It performs no simplification and no bit-blasting to CNF: each Sat call
// is a brute-force search over every variable ever allocated, which is
// correct and entirely sufficient for the small circuits the package's own
// tests and the end-to-end scenarios build, but is not a production
// bit-vector/SAT engine. No such library exists in the pack to depend on
// instead; see DESIGN.md.
package refcircuit
