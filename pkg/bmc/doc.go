// Package bmc implements the bounded model checking core: a symbolic
// unroller that copies a user-authored model circuit into a forward
// circuit frame by frame, drives an incremental SAT query through the
// forward Circuit's Assume/Sat at each bound (bmc/satcircuit routes these
// into pkg/satmgr), and reconstructs witness assignments from
// satisfying models.
//
// The package never constructs or simplifies bit-vector expressions
// itself; that is the job of the Circuit collaborator it consumes
// (see circuit.go). bmc/refcircuit ships a minimal in-memory Circuit
// sufficient to exercise the package's own tests.
package bmc
