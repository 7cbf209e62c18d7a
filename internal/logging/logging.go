// Package logging provides the structured logging idiom shared by satmgr
// and bmc, grounded on the teacher's "log "github.com/sirupsen/logrus""
// convention (cmd/catalog/main.go) and on btor_msg_sat's verbosity-gated
// message stream: a call logs only when the component's own verbosity
// field is at least as high as the message's level.
package logging

import (
	"github.com/davecgh/go-spew/spew"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var base = logrus.New()

// The verbosity gate in Msg and Dump is the only filter: base must not drop
// the Debug-level entries they emit.
func init() {
	base.SetLevel(logrus.DebugLevel)
}

// NewID returns a fresh correlation id for a SATManager or Engine instance.
func NewID() string {
	return uuid.NewString()
}

// Entry wraps a *logrus.Entry pre-populated with a component's correlation
// id and name, gating every call on the component's current verbosity the
// way btor_msg_sat gates on "smgr->verbosity < level".
type Entry struct {
	entry     *logrus.Entry
	verbosity func() int
}

// New returns an Entry tagged with component (e.g. "satmgr", "bmc"), id
// (the owning instance's correlation id), and name (its backend or circuit
// name). verbosity is called on every logging attempt so the Entry always
// reflects the owner's current setting.
func New(component, id, name string, verbosity func() int) *Entry {
	return &Entry{
		entry: base.WithFields(logrus.Fields{
			"component": component,
			"id":        id,
			"name":      name,
		}),
		verbosity: verbosity,
	}
}

// Msg logs msg at level if the owner's verbosity is at least level,
// mirroring btor_msg_sat(smgr, level, fmt, ...).
func (e *Entry) Msg(level int, msg string, fields logrus.Fields) {
	if e.verbosity() < level {
		return
	}
	if fields != nil {
		e.entry.WithFields(fields).Debug(msg)
		return
	}
	e.entry.Debug(msg)
}

// Dump logs a spew.Sdump rendering of v under key, gated on level the same
// way Msg is. It exists for internal state that is too large or too
// irregularly shaped to carry as ordinary logrus.Fields (a slice of
// per-property reached bounds, a frame's full node set) but is worth
// inspecting at the highest verbosity tiers.
func (e *Entry) Dump(level int, msg, key string, v interface{}) {
	if e.verbosity() < level {
		return
	}
	e.entry.WithField(key, spew.Sdump(v)).Debug(msg)
}
