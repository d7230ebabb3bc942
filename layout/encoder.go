package layout

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cockroachdb/errors"

	"github.com/trickstertwo/hostlog"
)

const (
	EncodingJSON    = "json"
	EncodingConsole = "console"
)

// EncoderLayout renders entries with a zap encoder. Its pattern is the
// encoding name, so a zero EncoderLayout refuses to start like an empty
// pattern would.
type EncoderLayout struct {
	encoding string
	enc      zapcore.Encoder
}

// DefaultEncoderConfig is a compact config without caller or stack keys.
func DefaultEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		MessageKey:     "message",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.RFC3339NanoTimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeName:     zapcore.FullNameEncoder,
	}
}

// NewEncoderLayout builds a layout for encoding ("json" or "console").
// An empty encoding yields an unusable layout rather than an error.
func NewEncoderLayout(encoding string, cfg zapcore.EncoderConfig) (*EncoderLayout, error) {
	var enc zapcore.Encoder
	switch encoding {
	case "":
		return &EncoderLayout{}, nil
	case EncodingJSON:
		enc = zapcore.NewJSONEncoder(cfg)
	case EncodingConsole:
		enc = zapcore.NewConsoleEncoder(cfg)
	default:
		return nil, errors.Newf("layout: unknown encoding %q", encoding)
	}
	return &EncoderLayout{encoding: encoding, enc: enc}, nil
}

func (l *EncoderLayout) Pattern() string {
	if l == nil {
		return ""
	}
	return l.encoding
}

// Format falls back to the bare message if the encoder fails.
func (l *EncoderLayout) Format(e hostlog.Entry) string {
	if l == nil || l.enc == nil {
		return ""
	}
	ze := zapcore.Entry{
		Level:      ToZapLevel(e.Level),
		Time:       e.At,
		LoggerName: e.Logger,
		Message:    e.Message,
	}
	buf, err := l.enc.EncodeEntry(ze, ToZapFields(e.Fields))
	if err != nil {
		return e.Message
	}
	defer buf.Free()
	return buf.String()
}

// ToZapLevel maps a hostlog level onto zap. Trace has no zap counterpart and
// becomes Debug.
func ToZapLevel(l hostlog.Level) zapcore.Level {
	switch {
	case l <= hostlog.LevelDebug:
		return zapcore.DebugLevel
	case l <= hostlog.LevelInfo:
		return zapcore.InfoLevel
	case l <= hostlog.LevelWarn:
		return zapcore.WarnLevel
	default:
		return zapcore.ErrorLevel
	}
}

// ToZapFields converts hostlog fields to zap fields.
func ToZapFields(fs []hostlog.Field) []zap.Field {
	out := make([]zap.Field, len(fs))
	for i := range fs {
		out[i] = toZapField(&fs[i])
	}
	return out
}

func toZapField(f *hostlog.Field) zap.Field {
	switch f.Kind {
	case hostlog.KindString:
		return zap.String(f.Key, f.Str)
	case hostlog.KindInt64:
		return zap.Int64(f.Key, f.Int64)
	case hostlog.KindUint64:
		return zap.Uint64(f.Key, f.Uint64)
	case hostlog.KindFloat64:
		return zap.Float64(f.Key, f.Float64)
	case hostlog.KindBool:
		return zap.Bool(f.Key, f.Bool)
	case hostlog.KindDuration:
		return zap.Duration(f.Key, f.Dur)
	case hostlog.KindTime:
		return zap.Time(f.Key, f.Time)
	case hostlog.KindError:
		if f.Err == nil {
			return zap.Skip()
		}
		if f.Key == "" || f.Key == "error" {
			return zap.Error(f.Err)
		}
		return zap.NamedError(f.Key, f.Err)
	case hostlog.KindBytes:
		return zap.ByteString(f.Key, f.Bytes)
	case hostlog.KindAny:
		return zap.Any(f.Key, f.Any)
	default:
		return zap.Skip()
	}
}
