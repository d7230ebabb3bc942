package zap

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/trickstertwo/hostlog/platform"
)

// Target writes platform records to a zap.Logger, for hosts whose native
// log facility is zap.
//
// Each record becomes one zap entry whose message is the rendered text and
// which carries the identifier, severity code and status as fields. Write
// uses Logger.Check so disabled levels cost nothing.
type Target struct {
	l *zap.Logger
}

// New creates a target for the provided zap logger.
func New(l *zap.Logger) *Target {
	if l == nil {
		l = zap.NewNop()
	}
	return &Target{l: l}
}

// Named registers a target named id on reg, backed by a child of l named id.
func Named(reg *platform.Registry, id string, l *zap.Logger) *Target {
	if l == nil {
		l = zap.NewNop()
	}
	t := New(l.Named(id))
	reg.Register(id, t)
	return t
}

func (t *Target) Write(r platform.Record) error {
	ce := t.l.Check(toZapLevel(r.Severity), r.Message)
	if ce == nil {
		return nil
	}
	fields := make([]zap.Field, 0, 4)
	fields = append(fields,
		zap.String("target", r.Target),
		zap.Int("code", r.Code),
		zap.Stringer("status", r.Severity),
	)
	if r.Err != nil {
		fields = append(fields, zap.Error(r.Err))
	}
	ce.Write(fields...)
	return nil
}

// Sync flushes the underlying zap core.
func (t *Target) Sync() error { return t.l.Sync() }

// toZapLevel never yields DPanic or above so writes cannot exit the process.
func toZapLevel(s platform.Severity) zapcore.Level {
	switch s {
	case platform.Error:
		return zapcore.ErrorLevel
	case platform.Warning:
		return zapcore.WarnLevel
	case platform.Info:
		return zapcore.InfoLevel
	default:
		// OK and CANCEL carry no urgency.
		return zapcore.DebugLevel
	}
}
