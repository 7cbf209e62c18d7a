package bmc

import "fmt"

// Frame holds one unrolled time step's forward-circuit nodes, parallel to
// the registration order of inputs/latches/bad properties (I2).
type Frame struct {
	Inputs  []Node
	Latches []Node
	// Next holds, per latch, the substituted image of latch.next in this
	// frame, or nil if the latch has no next function.
	Next []Node
	// Bad holds, per bad property, its substituted image in this frame, or
	// nil if that property was already reached at an earlier bound (the
	// "already reached, skip" marker — never confuse with "no such
	// property").
	Bad []Node

	// forward2const/model2const caches are populated lazily by witness.go
	// and released at the start of every BMC call.
	model2const *SubstMap
}

func frameSymbol(sym string, t int) string {
	if sym == "" {
		return ""
	}
	return fmt.Sprintf("%s@%d", sym, t)
}

// buildFrame constructs BMCFrame(t) in the fixed order mandated by §4.4:
// inputs, latches, substitution map, next, constraints, bad. The forward
// circuit is created lazily on the first call; a real Circuit
// implementation is expected to bake any incremental/model-generation/
// verbosity configuration into the factory closure it was constructed
// with, since those are concerns of the out-of-scope bit-vector/SAT engine,
// not of the narrow Circuit contract this package consumes.
func (e *Engine) buildFrame(t int) *Frame {
	if e.forward == nil {
		e.forward = e.forwardFactory()
	}
	e.opt.framesBuilt = true

	frame := &Frame{
		Inputs:  make([]Node, len(e.inputs)),
		Latches: make([]Node, len(e.latches)),
		Next:    make([]Node, len(e.latches)),
		Bad:     make([]Node, len(e.bad)),
	}

	for i, in := range e.inputs {
		frame.Inputs[i] = e.forward.NewVar(in.node.Width(), frameSymbol(in.node.Symbol(), t))
	}

	var prev *Frame
	if t > 0 {
		prev = e.frames[t-1]
	}

	for i, l := range e.latches {
		switch {
		case t == 0 && l.init != nil:
			frame.Latches[i] = e.forward.NewConst(e.model.ConstBits(l.init))
		case t > 0 && l.next != nil:
			frame.Latches[i] = e.forward.Copy(prev.Next[i])
		default:
			frame.Latches[i] = e.forward.NewVar(l.node.Width(), frameSymbol(l.node.Symbol(), t))
		}
	}

	substMap := NewSubstMap(e.model, e.forward)
	for i, in := range e.inputs {
		substMap.Set(in.node, frame.Inputs[i])
	}
	for i, l := range e.latches {
		substMap.Set(l.node, frame.Latches[i])
	}

	for i, l := range e.latches {
		if l.next == nil {
			continue
		}
		frame.Next[i] = substMap.Substitute(l.next)
	}

	if len(e.constraints) > 0 {
		substituted := make([]Node, len(e.constraints))
		for i, c := range e.constraints {
			substituted[i] = substMap.Substitute(c)
		}
		e.forward.Assert(e.forward.And(substituted...))
	}

	for i, b := range e.bad {
		if e.reached[i] >= 0 {
			continue
		}
		frame.Bad[i] = substMap.Substitute(b)
	}

	return frame
}
