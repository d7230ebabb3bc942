package appender

import (
	"github.com/cockroachdb/errors"
	"github.com/trickstertwo/xclock"

	"github.com/trickstertwo/hostlog"
	"github.com/trickstertwo/hostlog/layout"
	"github.com/trickstertwo/hostlog/platform"
	"github.com/trickstertwo/hostlog/status"
)

// ErrNotStarted is returned by Use when Start recorded no error yet the
// appender is still unstarted.
var ErrNotStarted = errors.New("appender did not start")

// Config is an explicit, code-first configuration for an appender-backed
// hostlog logger. No envs, no hidden init, one call to Use.
type Config struct {
	Platform      platform.Platform // default: platform.Default()
	StatusManager *status.Manager   // default: a private manager
	Name          string
	Target        string // default: DefaultTarget
	Layout        layout.Layout
	MinLevel      hostlog.Level // applied by Use to the logger and the appender
	LoggerName    string
	Observers     []hostlog.Observer
	ErrorHandler  hostlog.ErrorHandler
}

// Build creates and starts an appender from cfg. It reports the first error
// diagnostic recorded by Start.
func Build(cfg Config) (*Appender, error) {
	a := New(cfg.Platform, cfg.StatusManager)
	a.SetName(cfg.Name)
	a.SetLayout(cfg.Layout)
	a.SetTarget(cfg.Target)

	before := len(a.status.Errors())
	a.Start()
	if a.IsStarted() {
		return a, nil
	}
	if errs := a.status.Errors(); len(errs) > before {
		return a, errs[before].Err
	}
	return a, ErrNotStarted
}

// Use builds a started appender, wraps it in a hostlog.Logger bound to
// xclock.Default(), sets that logger as global and returns both.
func Use(cfg Config) (*hostlog.Logger, *Appender, error) {
	a, err := Build(cfg)
	if err != nil {
		return nil, a, err
	}

	b := hostlog.NewBuilder().
		WithAdapter(a).
		WithMinLevel(cfg.MinLevel).
		WithName(cfg.LoggerName).
		WithClock(xclock.Default()).
		WithErrorHandler(cfg.ErrorHandler)
	for _, o := range cfg.Observers {
		b.AddObserver(o)
	}
	logger, err := b.Build()
	if err != nil {
		return nil, a, err
	}
	hostlog.SetGlobal(logger)
	return logger, a, nil
}
