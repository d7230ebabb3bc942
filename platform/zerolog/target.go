package zerolog

import (
	"github.com/rs/zerolog"

	"github.com/trickstertwo/hostlog/platform"
)

// Target writes platform records to a zerolog.Logger.
//
// The level pre-check uses GetLevel() to avoid allocating a zerolog.Event
// when the record would be dropped anyway.
type Target struct {
	l zerolog.Logger
}

func New(l zerolog.Logger) *Target {
	return &Target{l: l}
}

// Named registers a target for id on reg.
func Named(reg *platform.Registry, id string, l zerolog.Logger) *Target {
	t := New(l)
	reg.Register(id, t)
	return t
}

func (t *Target) Write(r platform.Record) error {
	lvl := mapSeverity(r.Severity)
	if lvl < t.l.GetLevel() {
		return nil
	}
	ev := t.l.WithLevel(lvl).
		Str("target", r.Target).
		Int("code", r.Code).
		Stringer("status", r.Severity)
	if r.Err != nil {
		ev = ev.Err(r.Err)
	}
	ev.Msg(r.Message)
	return nil
}

func mapSeverity(s platform.Severity) zerolog.Level {
	switch s {
	case platform.Error:
		return zerolog.ErrorLevel
	case platform.Warning:
		return zerolog.WarnLevel
	case platform.Info:
		return zerolog.InfoLevel
	case platform.Cancel:
		return zerolog.TraceLevel
	default:
		return zerolog.DebugLevel
	}
}
