package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/trickstertwo/hostlog"
	"github.com/trickstertwo/hostlog/appender"
	"github.com/trickstertwo/hostlog/layout"
	"github.com/trickstertwo/hostlog/platform"
	"github.com/trickstertwo/hostlog/status"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hostlog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const sample = `
default_target: com.example.app
appenders:
  - name: host
    pattern: "[%level] %msg"
    min_level: debug
  - name: json
    target: com.example.audit
    encoding: json
`

func TestLoad(t *testing.T) {
	f, err := Load(writeConfig(t, sample), WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)
	require.Equal(t, "com.example.app", f.DefaultTarget)
	require.Len(t, f.Appenders, 2)

	host := f.Appenders[0]
	require.Equal(t, "host", host.Name)
	require.Equal(t, "", host.Target)
	lvl, err := host.Level()
	require.NoError(t, err)
	require.Equal(t, hostlog.LevelDebug, lvl)

	l, err := host.Layout()
	require.NoError(t, err)
	require.Equal(t, "[%level] %msg", l.Pattern())

	jl, err := f.Appenders[1].Layout()
	require.NoError(t, err)
	require.IsType(t, &layout.EncoderLayout{}, jl)
}

func TestLoad_EnvOverridesDefaultTarget(t *testing.T) {
	t.Setenv("HOSTLOG_DEFAULT_TARGET", "com.example.override")
	f, err := Load(writeConfig(t, sample))
	require.NoError(t, err)
	require.Equal(t, "com.example.override", f.DefaultTarget)
}

func TestLoad_EnvPlaceholders(t *testing.T) {
	t.Setenv("HOSTLOG_TEST_TARGET", "com.example.fromenv")
	t.Setenv("HOSTLOG_TEST_NAME", "editor")
	f, err := Load(writeConfig(t, `
default_target: env://HOSTLOG_TEST_TARGET
appenders:
  - name: env://HOSTLOG_TEST_NAME
    pattern: "%msg"
    target: env://HOSTLOG_TEST_MISSING_VAR
`))
	require.NoError(t, err)
	require.Equal(t, "com.example.fromenv", f.DefaultTarget)
	require.Equal(t, "editor", f.Appenders[0].Name)
	require.Equal(t, "", f.Appenders[0].Target)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]string{
		"missing name": `
appenders:
  - pattern: "%msg"
`,
		"pattern and encoding": `
appenders:
  - name: both
    pattern: "%msg"
    encoding: json
`,
		"unknown encoding": `
appenders:
  - name: x
    encoding: xml
`,
		"unknown level": `
appenders:
  - name: x
    pattern: "%msg"
    min_level: loud
`,
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, content))
			require.Error(t, err)
			require.Contains(t, err.Error(), "invalid configuration")
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to read configuration file")
}

func TestApply_BadPattern(t *testing.T) {
	a := appender.New(platform.NewRegistry(), nil)
	err := AppenderConfig{Name: "bad", Pattern: "%nope"}.Apply(a)
	require.Error(t, err)
	require.ErrorIs(t, err, layout.ErrBadPattern)
}

func TestFile_Build(t *testing.T) {
	f, err := Load(writeConfig(t, sample))
	require.NoError(t, err)

	reg := platform.NewRegistry()
	app := platform.NewRecorder()
	reg.Register("com.example.app", app)
	sm := status.NewManager()

	appenders, err := f.Build(reg, sm)
	require.NoError(t, err)
	require.Len(t, appenders, 2)

	host, audit := appenders[0], appenders[1]
	require.True(t, host.IsStarted())
	require.Equal(t, "com.example.app", host.Target())
	require.False(t, audit.IsStarted(), "com.example.audit is not registered")
	require.Equal(t, status.Error, sm.HighestLevel())

	require.NoError(t, host.Append(hostlog.Entry{Level: hostlog.LevelWarn, Message: "hi"}))
	recs := app.Records()
	require.Len(t, recs, 1)
	require.Equal(t, "[WARN] hi", recs[0].Message)
	require.Equal(t, platform.Warning, recs[0].Severity)
}

func TestFile_Build_AppliesMinLevel(t *testing.T) {
	f, err := Load(writeConfig(t, `
appenders:
  - name: errors-only
    target: com.example.app
    pattern: "%msg"
    min_level: error
  - name: defaulted
    target: com.example.app
    pattern: "%msg"
`))
	require.NoError(t, err)

	reg := platform.NewRegistry()
	rec := platform.NewRecorder()
	reg.Register("com.example.app", rec)

	appenders, err := f.Build(reg, status.NewManager())
	require.NoError(t, err)
	errorsOnly, defaulted := appenders[0], appenders[1]
	require.Equal(t, hostlog.LevelError, errorsOnly.MinLevel())
	require.Equal(t, hostlog.LevelInfo, defaulted.MinLevel())

	require.NoError(t, errorsOnly.Append(hostlog.Entry{Level: hostlog.LevelDebug, Message: "debug"}))
	require.NoError(t, errorsOnly.Append(hostlog.Entry{Level: hostlog.LevelWarn, Message: "warn"}))
	require.Zero(t, rec.Len())

	require.NoError(t, errorsOnly.Append(hostlog.Entry{Level: hostlog.LevelError, Message: "error"}))
	require.NoError(t, defaulted.Append(hostlog.Entry{Level: hostlog.LevelDebug, Message: "debug"}))
	require.NoError(t, defaulted.Append(hostlog.Entry{Level: hostlog.LevelInfo, Message: "info"}))

	recs := rec.Records()
	require.Len(t, recs, 2)
	require.Equal(t, "error", recs[0].Message)
	require.Equal(t, "info", recs[1].Message)
}
