package hostlog

import "time"

// Entry is a single log event. Adapters receive only the event fields and
// apply their own bound fields; observers receive bound fields followed by
// event fields.
type Entry struct {
	At      time.Time
	Level   Level
	Logger  string
	Message string
	Fields  []Field
}

// Observer is notified for each emitted entry (Observer pattern).
// Implementations MUST be concurrency-safe.
type Observer interface {
	OnLog(entry Entry)
}

// ObserverFunc adapter.
type ObserverFunc func(Entry)

func (f ObserverFunc) OnLog(e Entry) { f(e) }
