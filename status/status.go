// Package status collects the diagnostics that appenders emit about their own
// lifecycle (configuration problems, applied defaults). It is the channel the
// host reads to learn why an appender never started.
package status

import (
	"sync"
	"time"

	"github.com/trickstertwo/xclock"
)

// Level of a diagnostic.
type Level uint8

const (
	Info Level = iota + 1
	Warn
	Error
)

func (l Level) String() string {
	switch l {
	case Info:
		return "INFO"
	case Warn:
		return "WARN"
	case Error:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Status is one diagnostic message.
type Status struct {
	Level   Level
	Origin  string // component that raised it, e.g. "appender[eclipse]"
	Message string
	Err     error
	At      time.Time
}

// Listener is notified for every status added to a Manager.
// Implementations MUST be concurrency-safe.
type Listener interface {
	OnStatus(s Status)
}

// ListenerFunc adapter.
type ListenerFunc func(Status)

func (f ListenerFunc) OnStatus(s Status) { f(s) }

// Manager keeps an ordered record of statuses and fans them out to listeners.
type Manager struct {
	mu        sync.Mutex
	statuses  []Status
	listeners []Listener
}

func NewManager(listeners ...Listener) *Manager {
	return &Manager{listeners: append([]Listener(nil), listeners...)}
}

func (m *Manager) AddListener(l Listener) {
	m.mu.Lock()
	m.listeners = append(m.listeners, l)
	m.mu.Unlock()
}

// Add records s, stamping it with the current time when At is zero.
func (m *Manager) Add(s Status) {
	if s.At.IsZero() {
		s.At = xclock.Now()
	}
	m.mu.Lock()
	m.statuses = append(m.statuses, s)
	ls := m.listeners
	m.mu.Unlock()

	for _, l := range ls {
		l.OnStatus(s)
	}
}

// Statuses returns a copy of everything recorded so far.
func (m *Manager) Statuses() []Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Status, len(m.statuses))
	copy(out, m.statuses)
	return out
}

// Errors returns only the Error-level statuses.
func (m *Manager) Errors() []Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Status
	for _, s := range m.statuses {
		if s.Level == Error {
			out = append(out, s)
		}
	}
	return out
}

// HighestLevel returns the most severe level recorded, or 0 when empty.
func (m *Manager) HighestLevel() Level {
	m.mu.Lock()
	defer m.mu.Unlock()
	var max Level
	for _, s := range m.statuses {
		if s.Level > max {
			max = s.Level
		}
	}
	return max
}

func (m *Manager) Reset() {
	m.mu.Lock()
	m.statuses = nil
	m.mu.Unlock()
}
