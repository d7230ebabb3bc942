package layout

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/trickstertwo/hostlog"
)

// DefaultDateLayout is used by %d when no option is given.
const DefaultDateLayout = "2006-01-02 15:04:05.000"

// ErrBadPattern marks every pattern parse failure.
var ErrBadPattern = errors.New("layout: bad pattern")

// PatternLayout renders entries with logback-style conversion words:
//
//	%d{layout} %date  timestamp, option is a Go time layout (or ISO8601, RFC3339)
//	%level %le %p     level name
//	%logger %lo %c    logger name
//	%msg %m %message  message
//	%fields %X        bound and event fields as key=value pairs
//	%n                newline
//	%%                literal percent
//
// The zero value has an empty pattern and renders nothing.
type PatternLayout struct {
	pattern string
	parts   []converter
}

type converter func(buf []byte, e *hostlog.Entry) []byte

// NewPatternLayout parses pattern. An empty pattern is accepted; appenders
// reject it when they start.
func NewPatternLayout(pattern string) (*PatternLayout, error) {
	parts, err := parse(pattern)
	if err != nil {
		return nil, err
	}
	return &PatternLayout{pattern: pattern, parts: parts}, nil
}

// MustPattern is NewPatternLayout for patterns known at compile time.
func MustPattern(pattern string) *PatternLayout {
	l, err := NewPatternLayout(pattern)
	if err != nil {
		panic(err)
	}
	return l
}

func (l *PatternLayout) Pattern() string {
	if l == nil {
		return ""
	}
	return l.pattern
}

func (l *PatternLayout) Format(e hostlog.Entry) string {
	if l == nil || len(l.parts) == 0 {
		return ""
	}
	buf := make([]byte, 0, 64+len(e.Message))
	for _, p := range l.parts {
		buf = p(buf, &e)
	}
	return string(buf)
}

func parse(pattern string) ([]converter, error) {
	var (
		parts   []converter
		literal strings.Builder
	)
	flush := func() {
		if literal.Len() == 0 {
			return
		}
		s := literal.String()
		literal.Reset()
		parts = append(parts, func(buf []byte, _ *hostlog.Entry) []byte { return append(buf, s...) })
	}

	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		if c != '%' {
			literal.WriteByte(c)
			continue
		}
		if i+1 < len(pattern) && pattern[i+1] == '%' {
			literal.WriteByte('%')
			i++
			continue
		}

		j := i + 1
		for j < len(pattern) && isWordByte(pattern[j]) {
			j++
		}
		word := pattern[i+1 : j]
		if word == "" {
			return nil, errors.Wrapf(ErrBadPattern, "dangling %% at offset %d in %q", i, pattern)
		}

		var opt string
		hasOpt := false
		if j < len(pattern) && pattern[j] == '{' {
			end := strings.IndexByte(pattern[j:], '}')
			if end < 0 {
				return nil, errors.Wrapf(ErrBadPattern, "unterminated option for %%%s in %q", word, pattern)
			}
			opt = pattern[j+1 : j+end]
			hasOpt = true
			j += end + 1
		}

		conv, err := newConverter(word, opt, hasOpt)
		if err != nil {
			return nil, err
		}
		flush()
		parts = append(parts, conv)
		i = j - 1
	}
	flush()
	return parts, nil
}

func isWordByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func newConverter(word, opt string, hasOpt bool) (converter, error) {
	switch word {
	case "d", "date":
		layout := dateLayout(opt, hasOpt)
		return func(buf []byte, e *hostlog.Entry) []byte { return e.At.AppendFormat(buf, layout) }, nil
	case "level", "le", "p":
		return func(buf []byte, e *hostlog.Entry) []byte { return append(buf, e.Level.String()...) }, nil
	case "logger", "lo", "c":
		return func(buf []byte, e *hostlog.Entry) []byte { return append(buf, e.Logger...) }, nil
	case "msg", "m", "message":
		return func(buf []byte, e *hostlog.Entry) []byte { return append(buf, e.Message...) }, nil
	case "fields", "X":
		return func(buf []byte, e *hostlog.Entry) []byte { return appendFields(buf, e.Fields) }, nil
	case "n":
		return func(buf []byte, _ *hostlog.Entry) []byte { return append(buf, '\n') }, nil
	default:
		return nil, errors.Wrapf(ErrBadPattern, "unknown conversion word %q", word)
	}
}

func dateLayout(opt string, hasOpt bool) string {
	if !hasOpt || opt == "" {
		return DefaultDateLayout
	}
	switch opt {
	case "ISO8601":
		return "2006-01-02T15:04:05.000Z07:00"
	case "RFC3339":
		return time.RFC3339Nano
	default:
		return opt
	}
}
