package satmgr

import "fmt"

// Misuse is the typed panic raised for programmer errors: calling an
// operation outside its documented lifecycle, or a driver exhausting its id
// space. It mirrors the original BTOR_ABORT_SAT macro, which prints
// "[btorsat] <function>: <message>" and calls exit(BTOR_ERR_EXIT). Since
// this is a library rather than a standalone process, the abort is a panic
// instead of a process exit; callers that want to convert a caller-level
// misuse into a recoverable error are expected to recover it themselves at
// their own boundary.
type Misuse struct {
	Func string
	Msg  string
}

func (m Misuse) Error() string {
	return fmt.Sprintf("[satmgr] %s: %s", m.Func, m.Msg)
}

func abort(fn, msg string) {
	panic(Misuse{Func: fn, Msg: msg})
}

// ConfigError reports a recoverable problem with a manager or driver
// configuration value (for example, a malformed backend-specific option
// string passed to a driver constructor). Unlike Misuse, ConfigError is an
// ordinary error: it is expected to arise from external input and is always
// returned, never panicked.
type ConfigError struct {
	Option string
	Msg    string
}

func (e ConfigError) Error() string {
	return fmt.Sprintf("satmgr: invalid option %q: %s", e.Option, e.Msg)
}
