package status

import "github.com/cockroachdb/errors"

// Aware is embedded by components that report diagnostics about themselves.
// A nil Manager drops everything.
type Aware struct {
	Manager *Manager
	Origin  string
}

func (a *Aware) AddInfo(msg string) {
	a.add(Status{Level: Info, Message: msg})
}

func (a *Aware) AddWarn(msg string) {
	a.add(Status{Level: Warn, Message: msg})
}

// AddError records err; the message is err's message.
func (a *Aware) AddError(err error) {
	a.add(Status{Level: Error, Message: err.Error(), Err: err})
}

// AddErrorf records a new error built from format and marked with mark so
// callers can match it with errors.Is.
func (a *Aware) AddErrorf(mark error, format string, args ...any) {
	a.AddError(errors.Mark(errors.Newf(format, args...), mark))
}

func (a *Aware) add(s Status) {
	if a.Manager == nil {
		return
	}
	s.Origin = a.Origin
	a.Manager.Add(s)
}
