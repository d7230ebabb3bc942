// Package slog lets log/slog act as the upstream pipeline of a hostlog adapter.
package slog

import (
	"context"
	"log/slog"

	"github.com/trickstertwo/xclock"

	"github.com/trickstertwo/hostlog"
)

// Handler is a slog.Handler that writes into a hostlog.Adapter. Handle
// returns the adapter's error to slog's caller.
type Handler struct {
	adapter hostlog.Adapter
	level   slog.Leveler
	prefix  string // open groups, dot-joined with a trailing dot
}

// NewHandler wraps a. A nil leveler enables every level down to trace.
func NewHandler(a hostlog.Adapter, level slog.Leveler) *Handler {
	if level == nil {
		level = slog.Level(hostlog.LevelTrace)
	}
	return &Handler{adapter: a, level: level}
}

// New returns a slog.Logger whose handler feeds a.
func New(a hostlog.Adapter, level slog.Leveler) *slog.Logger {
	return slog.New(NewHandler(a, level))
}

func (h *Handler) Enabled(_ context.Context, l slog.Level) bool {
	return l >= h.level.Level()
}

func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	at := r.Time
	if at.IsZero() {
		at = xclock.Now()
	}
	fields := make([]hostlog.Field, 0, r.NumAttrs())
	r.Attrs(func(a slog.Attr) bool {
		fields = appendAttr(fields, h.prefix, a)
		return true
	})
	return h.adapter.Log(hostlog.Entry{
		At:      at,
		Level:   FromSlogLevel(r.Level),
		Message: r.Message,
		Fields:  fields,
	})
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	fields := make([]hostlog.Field, 0, len(attrs))
	for _, a := range attrs {
		fields = appendAttr(fields, h.prefix, a)
	}
	child := *h
	child.adapter = h.adapter.With(fields)
	return &child
}

func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	child := *h
	child.prefix = h.prefix + name + "."
	return &child
}

// FromSlogLevel snaps slog levels onto the hostlog ladder.
func FromSlogLevel(l slog.Level) hostlog.Level {
	switch {
	case l < slog.LevelDebug:
		return hostlog.LevelTrace
	case l < slog.LevelInfo:
		return hostlog.LevelDebug
	case l < slog.LevelWarn:
		return hostlog.LevelInfo
	case l < slog.LevelError:
		return hostlog.LevelWarn
	default:
		return hostlog.LevelError
	}
}

func appendAttr(out []hostlog.Field, prefix string, a slog.Attr) []hostlog.Field {
	v := a.Value.Resolve()
	if a.Key == "" && v.Kind() != slog.KindGroup {
		return out
	}
	key := prefix + a.Key
	switch v.Kind() {
	case slog.KindString:
		return append(out, hostlog.String(key, v.String()))
	case slog.KindInt64:
		return append(out, hostlog.Int64(key, v.Int64()))
	case slog.KindUint64:
		return append(out, hostlog.Uint64(key, v.Uint64()))
	case slog.KindFloat64:
		return append(out, hostlog.Float64(key, v.Float64()))
	case slog.KindBool:
		return append(out, hostlog.Bool(key, v.Bool()))
	case slog.KindDuration:
		return append(out, hostlog.Duration(key, v.Duration()))
	case slog.KindTime:
		return append(out, hostlog.Time(key, v.Time()))
	case slog.KindGroup:
		groupPrefix := prefix
		if a.Key != "" {
			groupPrefix = key + "."
		}
		for _, ga := range v.Group() {
			out = appendAttr(out, groupPrefix, ga)
		}
		return out
	default:
		if err, ok := v.Any().(error); ok {
			return append(out, hostlog.NamedErr(key, err))
		}
		return append(out, hostlog.Any(key, v.Any()))
	}
}
