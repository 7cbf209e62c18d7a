package bmc

import (
	"github.com/sirupsen/logrus"

	"github.com/btormc/btormc/internal/logging"
	"github.com/btormc/btormc/pkg/metrics"
)

// State is the BMC engine's current verdict, mirroring BMC engine state
// NONE/SAT/UNSAT from §3.
type State int

const (
	StateNone State = iota
	StateSat
	StateUnsat
)

func (s State) String() string {
	switch s {
	case StateSat:
		return "sat"
	case StateUnsat:
		return "unsat"
	default:
		return "none"
	}
}

type bmcInput struct {
	id   int
	node Node
}

type bmcLatch struct {
	id   int
	node Node
	init Node
	next Node
}

// StartingBoundFunc is invoked before frame k is built.
type StartingBoundFunc func(state State, k int)

// ReachedAtBoundFunc is invoked the first time bad property badIdx is
// proved satisfiable, at bound k.
type ReachedAtBoundFunc func(state State, badIdx, k int)

// Engine is the BMC Engine (C5): it owns the model circuit's registered
// inputs/latches/bad properties/constraints, drives frame construction
// (C4) and SAT queries against the lazily-created forward circuit, and
// tracks the smallest bound at which each bad property is reached.
type Engine struct {
	id  string
	log *logging.Entry
	met *metrics.BMCCollector
	opt *Options

	model          Circuit
	forward        Circuit
	forwardFactory func() Circuit

	inputs      []*bmcInput
	latches     []*bmcLatch
	bad         []Node
	constraints []Node

	inputIndex map[Node]int
	latchIndex map[Node]int

	reached    []int
	numReached int

	frames []*Frame

	state       State
	initialized bool

	forward2const *SubstMap

	startingBoundCB  StartingBoundFunc
	reachedAtBoundCB ReachedAtBoundFunc
}

// New returns an Engine over model (the circuit the caller builds input/
// latch/bad/constraint expressions in) and forwardFactory, which is called
// exactly once, on the first frame built, to create the forward circuit
// the engine unrolls into.
func New(model Circuit, forwardFactory func() Circuit) *Engine {
	id := logging.NewID()
	e := &Engine{
		id:             id,
		opt:            newOptions(),
		model:          model,
		forwardFactory: forwardFactory,
		inputIndex:     make(map[Node]int),
		latchIndex:     make(map[Node]int),
	}
	e.log = logging.New("bmc", id, "engine", func() int { return int(e.opt.GetOpt(OptVerbosity)) })
	e.met = metrics.NewBMCCollector(id)
	metrics.Register()
	return e
}

// --- Option Registry delegation (C7, §6.2) ---

func (e *Engine) SetOpt(name string, val uint32) error { return e.opt.SetOpt(name, val) }
func (e *Engine) GetOpt(name string) uint32            { return e.opt.GetOpt(name) }
func (e *Engine) GetOptMin(name string) uint32          { return e.opt.GetOptMin(name) }
func (e *Engine) GetOptMax(name string) uint32          { return e.opt.GetOptMax(name) }
func (e *Engine) GetOptDflt(name string) uint32         { return e.opt.GetOptDflt(name) }
func (e *Engine) GetOptLng(name string) string          { return e.opt.GetOptLng(name) }
func (e *Engine) GetOptShrt(name string) string         { return e.opt.GetOptShrt(name) }
func (e *Engine) GetOptDesc(name string) string         { return e.opt.GetOptDesc(name) }
func (e *Engine) IsValidOpt(name string) bool           { return e.opt.IsValidOpt(name) }

// SetStartingBoundCallback installs the per-bound callback fired before
// each frame is built.
func (e *Engine) SetStartingBoundCallback(fn StartingBoundFunc) { e.startingBoundCB = fn }

// SetReachedAtBoundCallback installs the callback fired the first time each
// bad property is reached.
func (e *Engine) SetReachedAtBoundCallback(fn ReachedAtBoundFunc) { e.reachedAtBoundCB = fn }

// --- Registration (§6.2) ---

// Input registers a new input of the given width (symbol may be empty) and
// returns its model-circuit node. Legal only before any frame is built.
func (e *Engine) Input(width int, symbol string) Node {
	if len(e.frames) > 0 {
		abort("Input", "cannot register an input after frames have been built")
	}
	n := e.model.NewVar(width, symbol)
	id := len(e.inputs)
	e.inputs = append(e.inputs, &bmcInput{id: id, node: n})
	e.inputIndex[n] = id
	return n
}

// Latch registers a new latch of the given width and returns its
// model-circuit node. Legal only before any frame is built.
func (e *Engine) Latch(width int, symbol string) Node {
	if len(e.frames) > 0 {
		abort("Latch", "cannot register a latch after frames have been built")
	}
	n := e.model.NewVar(width, symbol)
	id := len(e.latches)
	e.latches = append(e.latches, &bmcLatch{id: id, node: n})
	e.latchIndex[n] = id
	return n
}

func (e *Engine) latchFor(fn string, node Node) *bmcLatch {
	id, ok := e.latchIndex[node]
	if !ok {
		abort(fn, "node is not a registered latch")
	}
	return e.latches[id]
}

// SetInit attaches latch's initial value; init must be a constant of the
// same width, and may be set at most once.
func (e *Engine) SetInit(latch, init Node) {
	l := e.latchFor("SetInit", latch)
	if l.init != nil {
		abort("SetInit", "init already set for this latch")
	}
	if !e.model.IsConst(init) {
		abort("SetInit", "init must be a constant node")
	}
	if init.Width() != latch.Width() {
		abort("SetInit", "init width does not match latch width")
	}
	l.init = init
}

// SetNext attaches latch's next-state expression; next may be any node of
// the same width, and may be set at most once.
func (e *Engine) SetNext(latch, next Node) {
	l := e.latchFor("SetNext", latch)
	if l.next != nil {
		abort("SetNext", "next already set for this latch")
	}
	if next.Width() != latch.Width() {
		abort("SetNext", "next width does not match latch width")
	}
	l.next = next
}

// Bad registers a width-1 bad-state property and returns its ordinal index.
func (e *Engine) Bad(node Node) int {
	idx := len(e.bad)
	e.bad = append(e.bad, node)
	e.reached = append(e.reached, -1)
	return idx
}

// Constraint registers a width-1 global environment constraint and returns
// its ordinal index.
func (e *Engine) Constraint(node Node) int {
	idx := len(e.constraints)
	e.constraints = append(e.constraints, node)
	return idx
}

// ReachedBadAtBound returns reached[i]. Requires STOP_FIRST=0 and a prior
// BMC call.
func (e *Engine) ReachedBadAtBound(i int) int {
	if e.opt.GetOpt(OptStopFirst) != 0 {
		abort("ReachedBadAtBound", "requires STOP_FIRST=0")
	}
	if !e.initialized {
		abort("ReachedBadAtBound", "bmc has not been run")
	}
	return e.reached[i]
}

// State returns the engine's current verdict.
func (e *Engine) State() State { return e.state }

// --- BMC entry point (C5, §4.5) ---

// BMC drives frames [mink..maxk], invoking the SAT-backed forward circuit
// at each bound and recording the first bound at which each bad property
// is reached. Returns the bound at which it stopped, or -1 if it fell
// through to maxk without triggering a stop condition.
func (e *Engine) BMC(mink, maxk int) int {
	e.forward2const = nil
	for _, f := range e.frames {
		f.model2const = nil
	}
	e.state = StateNone
	e.initialized = true

	if mink > maxk {
		e.state = StateUnsat
		return -1
	}

	for k := len(e.frames); k <= maxk; k++ {
		e.log.Msg(1, "starting bound", logrus.Fields{"k": k})
		e.met.SetBound(k)
		if e.startingBoundCB != nil {
			e.startingBoundCB(e.state, k)
		}

		frame := e.buildFrame(k)
		e.frames = append(e.frames, frame)

		if k < mink {
			continue
		}

		satisfied := e.checkLastForwardFrame(k)
		if satisfied > 0 {
			stopFirst := e.opt.GetOpt(OptStopFirst) != 0
			if stopFirst || e.numReached == len(e.bad) || k == maxk {
				return k
			}
		}
	}

	e.state = StateUnsat
	return -1
}

// checkLastForwardFrame assumes each not-yet-reached bad property at bound
// k in turn and solves, recording the first bound each becomes satisfiable.
func (e *Engine) checkLastForwardFrame(k int) int {
	frame := e.frames[k]
	satisfied := 0

	for i, badNode := range frame.Bad {
		if badNode == nil {
			continue
		}

		e.forward.Assume(badNode)
		verdict := e.forward.Sat()

		switch verdict {
		case VerdictSat:
			e.state = StateSat
			satisfied++
			if e.reached[i] < 0 {
				e.reached[i] = k
				e.numReached++
				e.log.Msg(0, "reached bad property", logrus.Fields{"bad": i, "k": k})
				e.met.SetReachedBound(i, k)
				if e.reachedAtBoundCB != nil {
					e.reachedAtBoundCB(e.state, i, k)
				}
				e.log.Dump(3, "bad property reached", "reached", e.reached)
			}
		case VerdictUnsat:
			e.state = StateUnsat
		case VerdictUnknown:
			abort("checkLastForwardFrame", "SAT backend returned UNKNOWN; the engine only handles SAT/UNSAT")
		}
	}

	return satisfied
}
