package hostlog

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/trickstertwo/xclock"
)

// ErrNoAdapter is returned by Build when no Adapter was configured.
var ErrNoAdapter = errors.New("hostlog: no adapter configured")

// ErrorHandler receives errors returned by the Adapter for fluent events,
// which have no caller to return them to.
type ErrorHandler func(error)

func defaultErrorHandler(err error) { fmt.Fprintf(os.Stderr, "hostlog error: %v\n", err) }

// Config for constructing a Logger (Factory data structure).
type Config struct {
	Adapter      Adapter
	MinLevel     Level
	Name         string
	Observers    []Observer
	Clock        xclock.Clock // optional; defaults to xclock.Default()
	ErrorHandler ErrorHandler // optional; defaults to stderr
}

// Builder separates construction from representation (Builder pattern).
type Builder struct {
	cfg Config
}

func NewBuilder() *Builder {
	return &Builder{cfg: Config{MinLevel: LevelInfo}}
}

func (b *Builder) WithAdapter(a Adapter) *Builder {
	b.cfg.Adapter = a
	return b
}

func (b *Builder) WithMinLevel(l Level) *Builder {
	b.cfg.MinLevel = l
	return b
}

func (b *Builder) WithName(name string) *Builder {
	b.cfg.Name = name
	return b
}

func (b *Builder) WithClock(c xclock.Clock) *Builder {
	b.cfg.Clock = c
	return b
}

func (b *Builder) WithErrorHandler(h ErrorHandler) *Builder {
	b.cfg.ErrorHandler = h
	return b
}

func (b *Builder) AddObserver(o Observer) *Builder {
	b.cfg.Observers = append(b.cfg.Observers, o)
	return b
}

// Build constructs the Logger (Factory + Builder).
func (b *Builder) Build() (*Logger, error) {
	if b.cfg.Adapter == nil {
		return nil, ErrNoAdapter
	}
	b.applyAdapterConfig(b.cfg.Adapter)
	return newLogger(b.cfg), nil
}

// adapterLevelSetter is an optional interface adapters can implement
// to receive min-level configuration from the Builder.
type adapterLevelSetter interface {
	SetMinLevel(Level)
}

func (b *Builder) applyAdapterConfig(a Adapter) {
	if ls, ok := a.(adapterLevelSetter); ok {
		ls.SetMinLevel(b.cfg.MinLevel)
	}
}

// UseAdapter builds a logger around a with the given min level, sets it as
// the global logger and returns it.
func UseAdapter(a Adapter, min Level, observers ...Observer) (*Logger, error) {
	b := NewBuilder().WithAdapter(a).WithMinLevel(min)
	for _, o := range observers {
		b.AddObserver(o)
	}
	l, err := b.Build()
	if err != nil {
		return nil, err
	}
	SetGlobal(l)
	return l, nil
}
