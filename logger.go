package hostlog

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/trickstertwo/xclock"
)

type Logger struct {
	adapter    Adapter
	minLevel   Level
	name       string
	baseFields []Field
	clock      xclock.Clock
	onError    ErrorHandler

	// Observers: lock-free reads via atomic.Value; synchronized updates via obsMu.
	// Stored value is []Observer and MUST be treated as immutable by readers.
	observers atomic.Value // holds []Observer
	obsMu     sync.Mutex
}

func newLogger(cfg Config) *Logger {
	l := &Logger{
		adapter:  cfg.Adapter,
		minLevel: cfg.MinLevel,
		name:     cfg.Name,
		clock:    cfg.Clock,
		onError:  cfg.ErrorHandler,
	}
	if l.onError == nil {
		l.onError = defaultErrorHandler
	}
	if len(cfg.Observers) > 0 {
		obs := make([]Observer, len(cfg.Observers))
		copy(obs, cfg.Observers)
		l.observers.Store(obs)
	} else {
		l.observers.Store(([]Observer)(nil))
	}
	return l
}

// Facade: global access (Singleton + Facade).
var global atomic.Pointer[Logger]

// SetGlobal sets the global Logger (Singleton setter).
func SetGlobal(l *Logger) { global.Store(l) }

// L returns the global Logger; panic if unset to surface misconfig early.
func L() *Logger {
	l := global.Load()
	if l == nil {
		panic("hostlog: global logger not set. Build one and call hostlog.SetGlobal(...)")
	}
	return l
}

// Enabled reports whether logs at 'level' would be emitted by this logger.
func (l *Logger) Enabled(level Level) bool {
	return level != LevelOff && level >= l.minLevel
}

// Name returns the logger name carried on every entry.
func (l *Logger) Name() string { return l.name }

func (l *Logger) Trace() *Event { return getEvent(l, LevelTrace) }
func (l *Logger) Debug() *Event { return getEvent(l, LevelDebug) }
func (l *Logger) Info() *Event  { return getEvent(l, LevelInfo) }
func (l *Logger) Warn() *Event  { return getEvent(l, LevelWarn) }
func (l *Logger) Error() *Event { return getEvent(l, LevelError) }

// With returns a child logger with bound fields.
func (l *Logger) With(fs ...Field) *Logger {
	child := l.clone()
	child.adapter = l.adapter.With(fs)
	child.baseFields = append(copyFields(nil, l.baseFields), fs...)
	return child
}

// Named returns a child logger whose entries carry name. Nested names are
// joined with a dot, as zap does.
func (l *Logger) Named(name string) *Logger {
	child := l.clone()
	switch {
	case name == "":
	case l.name == "":
		child.name = name
	default:
		child.name = l.name + "." + name
	}
	return child
}

func (l *Logger) clone() *Logger {
	child := &Logger{
		adapter:    l.adapter,
		minLevel:   l.minLevel,
		name:       l.name,
		baseFields: l.baseFields,
		clock:      l.clock,
		onError:    l.onError,
	}
	child.observers.Store(l.snapshotObservers())
	return child
}

func (l *Logger) snapshotObservers() []Observer {
	v := l.observers.Load()
	if v == nil {
		return nil
	}
	cur := v.([]Observer)
	if len(cur) == 0 {
		return nil
	}
	out := make([]Observer, len(cur))
	copy(out, cur)
	return out
}

func (l *Logger) AddObserver(o Observer) {
	l.obsMu.Lock()
	defer l.obsMu.Unlock()
	cur := l.snapshotObservers()
	cur = append(cur, o)
	l.observers.Store(cur)
}

// Log emits msg at level and returns the adapter's error to the caller.
// Fluent events route the same error to the ErrorHandler instead.
func (l *Logger) Log(level Level, msg string, fs ...Field) error {
	return l.emit(level, msg, fs)
}

func (l *Logger) now() time.Time {
	if l.clock != nil {
		return l.clock.Now()
	}
	return xclock.Now()
}

func (l *Logger) emit(level Level, msg string, evFields []Field) error {
	if !l.Enabled(level) {
		return nil
	}
	entry := Entry{
		At:      l.now(),
		Level:   level,
		Logger:  l.name,
		Message: msg,
		Fields:  evFields,
	}

	// Fast path: adapter handles bound fields internally; pass only event fields.
	err := l.adapter.Log(entry)

	v := l.observers.Load()
	if v == nil {
		return err
	}
	obs := v.([]Observer)
	if len(obs) == 0 {
		return err
	}

	merged := make([]Field, 0, len(l.baseFields)+len(evFields))
	merged = copyFields(merged, l.baseFields)
	merged = copyFields(merged, evFields)
	entry.Fields = merged

	for _, o := range obs {
		o.OnLog(entry)
	}
	return err
}
