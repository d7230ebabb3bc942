// Package zap lets a zap.Logger act as the upstream pipeline of a hostlog
// adapter: every entry zap accepts is converted and handed to the adapter.
package zap

import (
	"math"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/trickstertwo/hostlog"
)

// Core is a zapcore.Core that writes into a hostlog.Adapter.
// Write returns the adapter's error, which zap reports on its ErrorOutput.
type Core struct {
	zapcore.LevelEnabler
	adapter hostlog.Adapter
}

// NewCore wraps a. A nil enabler enables every level.
func NewCore(a hostlog.Adapter, enab zapcore.LevelEnabler) *Core {
	if enab == nil {
		enab = zapcore.DebugLevel
	}
	return &Core{LevelEnabler: enab, adapter: a}
}

// New returns a zap.Logger whose only core feeds a.
func New(a hostlog.Adapter, enab zapcore.LevelEnabler, opts ...zap.Option) *zap.Logger {
	return zap.New(NewCore(a, enab), opts...)
}

func (c *Core) With(fs []zapcore.Field) zapcore.Core {
	return &Core{LevelEnabler: c.LevelEnabler, adapter: c.adapter.With(FromZapFields(fs))}
}

func (c *Core) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *Core) Write(ent zapcore.Entry, fs []zapcore.Field) error {
	return c.adapter.Log(hostlog.Entry{
		At:      ent.Time,
		Level:   FromZapLevel(ent.Level),
		Logger:  ent.LoggerName,
		Message: ent.Message,
		Fields:  FromZapFields(fs),
	})
}

type syncer interface{ Sync() error }

func (c *Core) Sync() error {
	if s, ok := c.adapter.(syncer); ok {
		return s.Sync()
	}
	return nil
}

// FromZapLevel maps zap levels onto hostlog. DPanic, Panic and Fatal become Error.
func FromZapLevel(l zapcore.Level) hostlog.Level {
	switch {
	case l <= zapcore.DebugLevel:
		return hostlog.LevelDebug
	case l == zapcore.InfoLevel:
		return hostlog.LevelInfo
	case l == zapcore.WarnLevel:
		return hostlog.LevelWarn
	default:
		return hostlog.LevelError
	}
}

// FromZapFields converts zap fields, keeping scalar types and falling back
// to a map encoding for everything else.
func FromZapFields(fs []zapcore.Field) []hostlog.Field {
	out := make([]hostlog.Field, 0, len(fs))
	for i := range fs {
		out = appendField(out, fs[i])
	}
	return out
}

func appendField(out []hostlog.Field, f zapcore.Field) []hostlog.Field {
	switch f.Type {
	case zapcore.SkipType:
		return out
	case zapcore.StringType:
		return append(out, hostlog.String(f.Key, f.String))
	case zapcore.Int64Type, zapcore.Int32Type, zapcore.Int16Type, zapcore.Int8Type:
		return append(out, hostlog.Int64(f.Key, f.Integer))
	case zapcore.Uint64Type, zapcore.Uint32Type, zapcore.Uint16Type, zapcore.Uint8Type, zapcore.UintptrType:
		return append(out, hostlog.Uint64(f.Key, uint64(f.Integer)))
	case zapcore.Float64Type:
		return append(out, hostlog.Float64(f.Key, math.Float64frombits(uint64(f.Integer))))
	case zapcore.Float32Type:
		return append(out, hostlog.Float64(f.Key, float64(math.Float32frombits(uint32(f.Integer)))))
	case zapcore.BinaryType, zapcore.ByteStringType:
		if b, ok := f.Interface.([]byte); ok {
			return append(out, hostlog.Bytes(f.Key, b))
		}
		return out
	case zapcore.BoolType:
		return append(out, hostlog.Bool(f.Key, f.Integer == 1))
	case zapcore.DurationType:
		return append(out, hostlog.Duration(f.Key, time.Duration(f.Integer)))
	case zapcore.ErrorType:
		if err, ok := f.Interface.(error); ok {
			return append(out, hostlog.NamedErr(f.Key, err))
		}
		return out
	}

	enc := zapcore.NewMapObjectEncoder()
	f.AddTo(enc)
	for k, v := range enc.Fields {
		if t, ok := v.(time.Time); ok {
			out = append(out, hostlog.Time(k, t))
			continue
		}
		out = append(out, hostlog.Any(k, v))
	}
	return out
}
