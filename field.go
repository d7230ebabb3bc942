package hostlog

import (
	"time"
)

// Kind identifies the concrete type stored in a Field.
type Kind uint8

const (
	KindString Kind = iota + 1
	KindInt64
	KindUint64
	KindFloat64
	KindBool
	KindDuration
	KindTime
	KindError
	KindBytes
	KindAny
)

// Field is a compact, reflection-free union for structured fields.
type Field struct {
	Key     string
	Kind    Kind
	Str     string
	Int64   int64
	Uint64  uint64
	Float64 float64
	Bool    bool
	Dur     time.Duration
	Time    time.Time
	Err     error
	Bytes   []byte
	Any     any
}

func String(k, v string) Field          { return Field{Key: k, Kind: KindString, Str: v} }
func Int(k string, v int) Field         { return Int64(k, int64(v)) }
func Int64(k string, v int64) Field     { return Field{Key: k, Kind: KindInt64, Int64: v} }
func Uint64(k string, v uint64) Field   { return Field{Key: k, Kind: KindUint64, Uint64: v} }
func Float64(k string, v float64) Field { return Field{Key: k, Kind: KindFloat64, Float64: v} }
func Bool(k string, v bool) Field       { return Field{Key: k, Kind: KindBool, Bool: v} }
func Duration(k string, v time.Duration) Field {
	return Field{Key: k, Kind: KindDuration, Dur: v}
}
func Time(k string, v time.Time) Field { return Field{Key: k, Kind: KindTime, Time: v} }
func Bytes(k string, b []byte) Field   { return Field{Key: k, Kind: KindBytes, Bytes: b} }
func Any(k string, v any) Field        { return Field{Key: k, Kind: KindAny, Any: v} }

// Err binds err under the conventional "error" key.
func Err(err error) Field { return NamedErr("error", err) }

func NamedErr(k string, err error) Field { return Field{Key: k, Kind: KindError, Err: err} }

// FirstError returns the first non-nil error carried by fs.
func FirstError(fs []Field) error {
	for i := range fs {
		if fs[i].Kind == KindError && fs[i].Err != nil {
			return fs[i].Err
		}
	}
	return nil
}

func copyFields(dst, src []Field) []Field {
	if len(src) == 0 {
		return dst
	}
	return append(dst, src...)
}
