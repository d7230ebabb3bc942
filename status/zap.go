package status

import (
	"go.uber.org/zap"
)

// NewZapListener forwards every status to l at the matching zap level.
func NewZapListener(l *zap.Logger) Listener {
	if l == nil {
		l = zap.NewNop()
	}
	return ListenerFunc(func(s Status) {
		fields := []zap.Field{zap.String("origin", s.Origin)}
		if s.Err != nil {
			fields = append(fields, zap.Error(s.Err))
		}
		switch s.Level {
		case Error:
			l.Error(s.Message, fields...)
		case Warn:
			l.Warn(s.Message, fields...)
		default:
			l.Info(s.Message, fields...)
		}
	})
}
