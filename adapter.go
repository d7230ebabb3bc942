package hostlog

// Adapter is the logging backend Strategy (e.g., a host platform appender).
// Log receives the entry carrying the single authoritative timestamp from the
// Logger. Errors raised by the backend are returned, never swallowed.
type Adapter interface {
	Log(e Entry) error
	With(fields []Field) Adapter // return a child adapter with bound fields (do not mutate receiver)
}

// AdapterFunc adapts a plain function into a stateless Adapter.
type AdapterFunc func(Entry) error

func (f AdapterFunc) Log(e Entry) error { return f(e) }

func (f AdapterFunc) With(fs []Field) Adapter {
	if len(fs) == 0 {
		return f
	}
	bound := copyFields(nil, fs)
	return AdapterFunc(func(e Entry) error {
		e.Fields = append(copyFields(make([]Field, 0, len(bound)+len(e.Fields)), bound), e.Fields...)
		return f(e)
	})
}
