package layout

import (
	"fmt"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/trickstertwo/hostlog"
)

func appendFields(buf []byte, fs []hostlog.Field) []byte {
	for i := range fs {
		if i > 0 {
			buf = append(buf, ' ')
		}
		buf = append(buf, fs[i].Key...)
		buf = append(buf, '=')
		buf = appendTextValue(buf, &fs[i])
	}
	return buf
}

func appendTextValue(buf []byte, f *hostlog.Field) []byte {
	switch f.Kind {
	case hostlog.KindString:
		return appendTextString(buf, f.Str)
	case hostlog.KindInt64:
		return strconv.AppendInt(buf, f.Int64, 10)
	case hostlog.KindUint64:
		return strconv.AppendUint(buf, f.Uint64, 10)
	case hostlog.KindFloat64:
		return strconv.AppendFloat(buf, f.Float64, 'g', -1, 64)
	case hostlog.KindBool:
		return strconv.AppendBool(buf, f.Bool)
	case hostlog.KindDuration:
		return append(buf, f.Dur.String()...)
	case hostlog.KindTime:
		return f.Time.AppendFormat(buf, time.RFC3339Nano)
	case hostlog.KindError:
		if f.Err == nil {
			return append(buf, "null"...)
		}
		return strconv.AppendQuote(buf, f.Err.Error())
	case hostlog.KindBytes:
		buf = append(buf, "len:"...)
		return strconv.AppendInt(buf, int64(len(f.Bytes)), 10)
	case hostlog.KindAny:
		return appendTextAny(buf, f.Any)
	default:
		return append(buf, "null"...)
	}
}

func appendTextAny(buf []byte, v any) []byte {
	switch vv := v.(type) {
	case nil:
		return append(buf, "null"...)
	case string:
		return appendTextString(buf, vv)
	case []byte:
		buf = append(buf, "len:"...)
		return strconv.AppendInt(buf, int64(len(vv)), 10)
	case bool:
		return strconv.AppendBool(buf, vv)
	case int:
		return strconv.AppendInt(buf, int64(vv), 10)
	case int8:
		return strconv.AppendInt(buf, int64(vv), 10)
	case int16:
		return strconv.AppendInt(buf, int64(vv), 10)
	case int32:
		return strconv.AppendInt(buf, int64(vv), 10)
	case int64:
		return strconv.AppendInt(buf, vv, 10)
	case uint:
		return strconv.AppendUint(buf, uint64(vv), 10)
	case uint8:
		return strconv.AppendUint(buf, uint64(vv), 10)
	case uint16:
		return strconv.AppendUint(buf, uint64(vv), 10)
	case uint32:
		return strconv.AppendUint(buf, uint64(vv), 10)
	case uint64:
		return strconv.AppendUint(buf, vv, 10)
	case float32:
		return strconv.AppendFloat(buf, float64(vv), 'g', -1, 32)
	case float64:
		return strconv.AppendFloat(buf, vv, 'g', -1, 64)
	case time.Time:
		return vv.AppendFormat(buf, time.RFC3339Nano)
	case time.Duration:
		return append(buf, vv.String()...)
	case error:
		return strconv.AppendQuote(buf, vv.Error())
	default:
		return appendTextString(buf, fmt.Sprint(vv))
	}
}

// appendTextString quotes s only when it would break key=value parsing.
func appendTextString(buf []byte, s string) []byte {
	if needsQuote(s) {
		return strconv.AppendQuote(buf, s)
	}
	return append(buf, s...)
}

func needsQuote(s string) bool {
	if s == "" {
		return true
	}
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			if c <= ' ' || c == '=' || c == '"' || c == 0x7f {
				return true
			}
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError {
			return true
		}
		i += size
	}
	return false
}
