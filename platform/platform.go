// Package platform models the host's native log facility: a set of log
// targets, each keyed by an identifier (a plugin or bundle name), that accept
// status records.
package platform

import (
	"strconv"
)

// Severity is the host's status taxonomy used for display and triage.
// Values follow the bit-flag convention of plugin runtimes.
type Severity int

const (
	OK      Severity = 0
	Info    Severity = 1
	Warning Severity = 2
	Error   Severity = 4
	Cancel  Severity = 8
)

func (s Severity) String() string {
	switch s {
	case OK:
		return "OK"
	case Info:
		return "INFO"
	case Warning:
		return "WARNING"
	case Error:
		return "ERROR"
	case Cancel:
		return "CANCEL"
	default:
		return "SEVERITY(" + strconv.Itoa(int(s)) + ")"
	}
}

// Record is what a Target receives for each forwarded log event.
type Record struct {
	Severity Severity
	Target   string // identifier the target was resolved from
	Code     int    // numeric level of the originating event
	Message  string
	Err      error // optional
}

// Target is a log handle owned by the host. Write errors belong to the host
// and are returned to whoever called the appender.
type Target interface {
	Write(r Record) error
}

// Platform resolves target identifiers. It looks targets up; it never creates them.
type Platform interface {
	LookupTarget(id string) (Target, bool)
}

// Func adapts a lookup function into a Platform.
type Func func(id string) (Target, bool)

func (f Func) LookupTarget(id string) (Target, bool) { return f(id) }

// TargetFunc adapts a write function into a Target.
type TargetFunc func(Record) error

func (f TargetFunc) Write(r Record) error { return f(r) }

// Syncer is implemented by targets that buffer writes.
type Syncer interface {
	Sync() error
}
