package layout

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/trickstertwo/hostlog"
)

func testEntry() hostlog.Entry {
	return hostlog.Entry{
		At:      time.Date(2024, 12, 31, 23, 59, 59, 123456789, time.UTC),
		Level:   hostlog.LevelWarn,
		Logger:  "ui.editor",
		Message: "save slow",
		Fields: []hostlog.Field{
			hostlog.String("file", "main.go"),
			hostlog.Int("lines", 120),
			hostlog.Duration("took", 1500*time.Millisecond),
			hostlog.String("note", "two words"),
			hostlog.Err(errors.New("boom")),
		},
	}
}

func TestPatternLayout_Conversions(t *testing.T) {
	l, err := NewPatternLayout("%d{15:04:05} %level [%logger] %msg | %fields%n")
	require.NoError(t, err)
	require.Equal(t, "%d{15:04:05} %level [%logger] %msg | %fields%n", l.Pattern())

	got := l.Format(testEntry())
	require.Equal(t,
		`23:59:59 WARN [ui.editor] save slow | file=main.go lines=120 took=1.5s note="two words" error="boom"`+"\n",
		got)
}

func TestPatternLayout_Aliases(t *testing.T) {
	e := testEntry()
	short := MustPattern("%p %c %m")
	long := MustPattern("%le %lo %message")
	require.Equal(t, "WARN ui.editor save slow", short.Format(e))
	require.Equal(t, short.Format(e), long.Format(e))
}

func TestPatternLayout_DateOptions(t *testing.T) {
	e := testEntry()
	require.Equal(t, "2024-12-31 23:59:59.123", MustPattern("%d").Format(e))
	require.Equal(t, "2024-12-31 23:59:59.123", MustPattern("%date{}").Format(e))
	require.Equal(t, "2024-12-31T23:59:59.123Z", MustPattern("%d{ISO8601}").Format(e))
	require.Equal(t, "2024-12-31T23:59:59.123456789Z", MustPattern("%d{RFC3339}").Format(e))
}

func TestPatternLayout_LiteralsAndPercent(t *testing.T) {
	l := MustPattern("100%% [%msg]")
	require.Equal(t, "100% [save slow]", l.Format(testEntry()))
}

func TestPatternLayout_Errors(t *testing.T) {
	for _, p := range []string{"%bogus", "%d{unterminated", "trailing %"} {
		_, err := NewPatternLayout(p)
		require.Error(t, err, p)
		require.ErrorIs(t, err, ErrBadPattern, p)
	}
	require.Panics(t, func() { MustPattern("%nope") })
}

func TestPatternLayout_EmptyAndNil(t *testing.T) {
	l, err := NewPatternLayout("")
	require.NoError(t, err)
	require.Equal(t, "", l.Pattern())
	require.Equal(t, "", l.Format(testEntry()))

	var nilLayout *PatternLayout
	require.Equal(t, "", nilLayout.Pattern())
	require.Equal(t, "", nilLayout.Format(testEntry()))
}

func TestPatternLayout_FieldKinds(t *testing.T) {
	at := time.Date(2025, 1, 1, 7, 0, 0, 0, time.UTC)
	e := hostlog.Entry{Fields: []hostlog.Field{
		hostlog.Uint64("u", 42),
		hostlog.Float64("f", 3.5),
		hostlog.Bool("b", true),
		hostlog.Time("t", at),
		hostlog.Bytes("raw", []byte{1, 2, 3}),
		hostlog.Any("any", 7),
		hostlog.Any("nil", nil),
		hostlog.NamedErr("noerr", nil),
		hostlog.String("empty", ""),
	}}
	got := MustPattern("%fields").Format(e)
	require.Equal(t, `u=42 f=3.5 b=true t=2025-01-01T07:00:00Z raw=len:3 any=7 nil=null noerr=null empty=""`, got)
}

func TestPatternLayout_AnyValues(t *testing.T) {
	type point struct{ X, Y int }
	e := hostlog.Entry{Fields: []hostlog.Field{
		hostlog.Any("ratio", float32(1.5)),
		hostlog.Any("blob", []byte("abcd")),
		hostlog.Any("i8", int8(-3)),
		hostlog.Any("i16", int16(300)),
		hostlog.Any("u8", uint8(200)),
		hostlog.Any("u16", uint16(60000)),
		hostlog.Any("obj", point{X: 1, Y: 2}),
		hostlog.Any("tags", []string{"a", "b"}),
		hostlog.Any("m", map[string]int{"k": 1}),
	}}
	got := MustPattern("%fields").Format(e)
	require.Equal(t, `ratio=1.5 blob=len:4 i8=-3 i16=300 u8=200 u16=60000 obj="{1 2}" tags="[a b]" m=map[k:1]`, got)
	require.NotContains(t, got, "unknown")
}

func TestEncoderLayout_JSON(t *testing.T) {
	l, err := NewEncoderLayout(EncodingJSON, DefaultEncoderConfig())
	require.NoError(t, err)
	require.Equal(t, "json", l.Pattern())

	out := l.Format(testEntry())
	require.True(t, strings.HasSuffix(out, "\n"))

	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &m))
	require.Equal(t, "WARN", m["level"])
	require.Equal(t, "ui.editor", m["logger"])
	require.Equal(t, "save slow", m["message"])
	require.Equal(t, "2024-12-31T23:59:59.123456789Z", m["ts"])
	require.Equal(t, "main.go", m["file"])
	require.Equal(t, float64(120), m["lines"])
	require.Equal(t, "1.5s", m["took"])
	require.Equal(t, "boom", m["error"])
}

func TestEncoderLayout_Console(t *testing.T) {
	l, err := NewEncoderLayout(EncodingConsole, DefaultEncoderConfig())
	require.NoError(t, err)
	out := l.Format(testEntry())
	require.Contains(t, out, "WARN")
	require.Contains(t, out, "save slow")
	require.Contains(t, out, `"file": "main.go"`)
}

func TestEncoderLayout_EmptyAndUnknown(t *testing.T) {
	l, err := NewEncoderLayout("", DefaultEncoderConfig())
	require.NoError(t, err)
	require.Equal(t, "", l.Pattern())
	require.Equal(t, "", l.Format(testEntry()))

	_, err = NewEncoderLayout("xml", DefaultEncoderConfig())
	require.Error(t, err)
}

func TestToZapLevel(t *testing.T) {
	require.Equal(t, "debug", ToZapLevel(hostlog.LevelTrace).String())
	require.Equal(t, "debug", ToZapLevel(hostlog.LevelDebug).String())
	require.Equal(t, "info", ToZapLevel(hostlog.LevelInfo).String())
	require.Equal(t, "warn", ToZapLevel(hostlog.LevelWarn).String())
	require.Equal(t, "error", ToZapLevel(hostlog.LevelError).String())
}
