// Package appender forwards log entries into a host platform's native log.
//
// An Appender is configured with a layout and a target identifier, validated
// by Start, and from then on turns every entry into a platform.Record written
// to the target handle the identifier resolved to:
//
//	reg := platform.NewRegistry()
//	reg.Register("com.example.app", target)
//
//	a := appender.New(reg, nil)
//	a.SetName("host")
//	a.SetLayout(layout.MustPattern("[%logger] %msg%n"))
//	a.SetTarget("com.example.app")
//	a.Start()
//
// Configuration problems never panic and are not returned: they are recorded
// on the status.Manager and leave the appender unstarted, so entries are dropped.
package appender

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/cockroachdb/errors"

	"github.com/trickstertwo/hostlog"
	"github.com/trickstertwo/hostlog/layout"
	"github.com/trickstertwo/hostlog/platform"
	"github.com/trickstertwo/hostlog/status"
)

// DefaultTarget is the identifier used when none is configured.
const DefaultTarget = "hostlog.default"

var (
	// ErrNoLayout marks start failures caused by a missing layout or pattern.
	ErrNoLayout = errors.New("no layout set")
	// ErrInvalidTarget marks start failures caused by an identifier the platform cannot resolve.
	ErrInvalidTarget = errors.New("invalid target name")
)

// severities is the fixed level to host status table. Levels not listed,
// Debug included, map to platform.OK.
var severities = map[hostlog.Level]platform.Severity{
	hostlog.LevelWarn:  platform.Warning,
	hostlog.LevelError: platform.Error,
	hostlog.LevelInfo:  platform.Info,
	hostlog.LevelTrace: platform.Cancel,
}

// SeverityFor returns the host status for level.
func SeverityFor(level hostlog.Level) platform.Severity {
	if s, ok := severities[level]; ok {
		return s
	}
	return platform.OK
}

// binding is what Start resolved. It is published once and only read after.
type binding struct {
	target   platform.Target
	targetID string
	layout   layout.Layout
}

// Appender is the host log sink. It is configured through setters, activated
// by Start and safe for concurrent Append calls once started.
type Appender struct {
	platform platform.Platform
	status   *status.Manager
	minLevel atomic.Int64 // entries below it are dropped; applies immediately

	mu       sync.Mutex // guards the configuration below
	name     string
	layout   layout.Layout
	targetID string

	bound atomic.Pointer[binding] // nil while unstarted
}

// New creates an unstarted appender. A nil platform means platform.Default();
// a nil manager means a private one, reachable via StatusManager.
func New(p platform.Platform, sm *status.Manager) *Appender {
	if p == nil {
		p = platform.Default()
	}
	if sm == nil {
		sm = status.NewManager()
	}
	a := &Appender{platform: p, status: sm}
	a.minLevel.Store(math.MinInt32)
	return a
}

// StatusManager returns the manager Start reports its diagnostics to.
func (a *Appender) StatusManager() *status.Manager { return a.status }

// Name returns the name used in diagnostics.
func (a *Appender) Name() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.name
}

// SetName takes effect on the next Start.
func (a *Appender) SetName(name string) {
	a.mu.Lock()
	a.name = name
	a.mu.Unlock()
}

// Layout returns the configured layout, which may differ from the started one.
func (a *Appender) Layout() layout.Layout {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.layout
}

// SetLayout takes effect on the next Start.
func (a *Appender) SetLayout(l layout.Layout) {
	a.mu.Lock()
	a.layout = l
	a.mu.Unlock()
}

// Target returns the configured identifier. After a Start without one it
// reports DefaultTarget.
func (a *Appender) Target() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.targetID
}

// SetTarget takes effect on the next Start.
func (a *Appender) SetTarget(id string) {
	a.mu.Lock()
	a.targetID = id
	a.mu.Unlock()
}

// MinLevel returns the lowest level forwarded. By default every level is.
func (a *Appender) MinLevel() hostlog.Level { return hostlog.Level(a.minLevel.Load()) }

// SetMinLevel drops later entries below l. Unlike the other setters it does
// not wait for Start, so a hostlog.Builder can apply its minimum level.
func (a *Appender) SetMinLevel(l hostlog.Level) { a.minLevel.Store(int64(l)) }

// IsStarted reports whether Start succeeded and Stop has not been called since.
func (a *Appender) IsStarted() bool { return a.bound.Load() != nil }

// Start validates the configuration and, if it holds, activates the appender.
// Failures are reported on the status manager; a started appender whose
// re-start fails keeps its previous binding.
func (a *Appender) Start() {
	a.mu.Lock()
	defer a.mu.Unlock()

	diag := a.aware()

	if a.layout == nil || a.layout.Pattern() == "" {
		diag.AddErrorf(ErrNoLayout, "no layout set for the appender named [%s]", a.name)
		return
	}

	if a.targetID == "" {
		diag.AddInfo("assuming target \"" + DefaultTarget + "\" for the appender named [" + a.name + "]")
		a.targetID = DefaultTarget
	}

	t, ok := a.platform.LookupTarget(a.targetID)
	if !ok {
		diag.AddErrorf(ErrInvalidTarget, "invalid target name for the appender named [%s]", a.name)
		return
	}

	a.bound.Store(&binding{target: t, targetID: a.targetID, layout: a.layout})
}

// Stop deactivates the appender; later entries are dropped until Start.
func (a *Appender) Stop() {
	a.bound.Store(nil)
}

// Append forwards e to the resolved target. It is a no-op while unstarted
// for LevelOff entries and below MinLevel. The target's error is returned as is.
func (a *Appender) Append(e hostlog.Entry) error {
	b := a.bound.Load()
	if b == nil {
		return nil
	}
	sev := SeverityFor(e.Level)
	if e.Level == hostlog.LevelOff || e.Level < a.MinLevel() {
		return nil
	}
	return b.target.Write(platform.Record{
		Severity: sev,
		Target:   b.targetID,
		Code:     int(e.Level),
		Message:  b.layout.Format(e),
		Err:      hostlog.FirstError(e.Fields),
	})
}

// Log implements hostlog.Adapter.
func (a *Appender) Log(e hostlog.Entry) error { return a.Append(e) }

// With implements hostlog.Adapter. The child shares this appender's
// lifecycle and prepends fs to every entry.
func (a *Appender) With(fs []hostlog.Field) hostlog.Adapter {
	return &child{parent: a, bound: append([]hostlog.Field(nil), fs...)}
}

func (a *Appender) aware() *status.Aware {
	return &status.Aware{Manager: a.status, Origin: "appender[" + a.name + "]"}
}

type child struct {
	parent *Appender
	bound  []hostlog.Field
}

func (c *child) Log(e hostlog.Entry) error {
	if len(c.bound) > 0 {
		fs := make([]hostlog.Field, 0, len(c.bound)+len(e.Fields))
		fs = append(fs, c.bound...)
		e.Fields = append(fs, e.Fields...)
	}
	return c.parent.Append(e)
}

func (c *child) With(fs []hostlog.Field) hostlog.Adapter {
	if len(fs) == 0 {
		cp := *c
		return &cp
	}
	bound := make([]hostlog.Field, 0, len(c.bound)+len(fs))
	bound = append(bound, c.bound...)
	bound = append(bound, fs...)
	return &child{parent: c.parent, bound: bound}
}
