package bmc

// Assignment is the Witness Reconstructor (C6): given a model-circuit node
// n and a time ≤ the last bound built, it returns the bit-string the
// satisfying model ascribes to n@time, MSB-first, never containing 'x'
// (unconstrained bits are normalized to '0'). Requires State() == StateSat
// and TRACE_GEN enabled.
func (e *Engine) Assignment(n Node, time int) string {
	if e.state != StateSat {
		abort("Assignment", "engine state must be SAT")
	}
	if e.opt.GetOpt(OptTraceGen) == 0 {
		abort("Assignment", "TRACE_GEN must be enabled")
	}
	if time < 0 || time >= len(e.frames) {
		abort("Assignment", "time exceeds the last bound built")
	}
	frame := e.frames[time]

	if id, ok := e.inputIndex[n]; ok {
		return normalizeBits(e.forward.Assignment(frame.Inputs[id]))
	}

	// n is an expression over inputs and latches at time (possibly n
	// itself is a registered latch, handled as a one-node expression by
	// the leaf path below). Reduce it to a model-circuit constant by
	// substituting every leaf with the constant the model ascribes to it
	// at this time.
	if frame.model2const == nil {
		frame.model2const = NewSubstMap(e.model, e.model)
	}

	mapper := func(leaf Node) (Node, bool) {
		if id, ok := e.inputIndex[leaf]; ok {
			bits := normalizeBits(e.forward.Assignment(frame.Inputs[id]))
			return e.model.NewConst(bits), true
		}
		if id, ok := e.latchIndex[leaf]; ok {
			bits := e.reduceForwardLatch(frame.Latches[id])
			return e.model.NewConst(bits), true
		}
		return nil, false
	}

	result := frame.model2const.SubstituteWithMapper(n, mapper)
	return e.model.ConstBits(result)
}

// reduceForwardLatch reduces a forward-circuit node (a frame's stored
// latch value, possibly inherited unchanged from an earlier frame via
// Copy) to a constant by substituting every forward-circuit leaf variable
// with its bit-assignment in the last model. This inner map (forward2const)
// is engine-scoped rather than per-frame: a latch value carried forward
// unchanged across many bounds shares the same underlying forward node, so
// one cache entry serves every time step that inherited it.
func (e *Engine) reduceForwardLatch(latchNode Node) string {
	if e.forward2const == nil {
		e.forward2const = NewSubstMap(e.forward, e.forward)
	}
	mapper := func(leaf Node) (Node, bool) {
		bits := normalizeBits(e.forward.Assignment(leaf))
		return e.forward.NewConst(bits), true
	}
	result := e.forward2const.SubstituteWithMapper(latchNode, mapper)
	return e.forward.ConstBits(result)
}

func normalizeBits(bits string) string {
	out := []byte(bits)
	for i, b := range out {
		if b == 'x' || b == 'X' {
			out[i] = '0'
		}
	}
	return string(out)
}
