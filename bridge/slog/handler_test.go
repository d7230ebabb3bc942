package slog

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/trickstertwo/hostlog"
	"github.com/trickstertwo/hostlog/appender"
	"github.com/trickstertwo/hostlog/layout"
	"github.com/trickstertwo/hostlog/platform"
)

func startedAppender(t *testing.T, pattern string) (*appender.Appender, *platform.Recorder) {
	t.Helper()
	reg := platform.NewRegistry()
	rec := platform.NewRecorder()
	reg.Register("com.example.app", rec)

	a := appender.New(reg, nil)
	a.SetLayout(layout.MustPattern(pattern))
	a.SetTarget("com.example.app")
	a.Start()
	require.True(t, a.IsStarted())
	return a, rec
}

func TestHandler_ForwardsThroughAppender(t *testing.T) {
	a, rec := startedAppender(t, "%msg %fields")
	logger := New(a, slog.LevelDebug).With("svc", "editor").WithGroup("req")

	logger.Warn("slow",
		"id", "r-1",
		slog.Int("n", 3),
		slog.Group("db", slog.Duration("took", time.Second)),
		slog.Any("err", errors.New("timeout")),
	)

	recs := rec.Records()
	require.Len(t, recs, 1)
	require.Equal(t, platform.Warning, recs[0].Severity)
	require.Equal(t, int(hostlog.LevelWarn), recs[0].Code)
	require.Equal(t, `slow svc=editor req.id=r-1 req.n=3 req.db.took=1s req.err="timeout"`, recs[0].Message)
	require.EqualError(t, recs[0].Err, "timeout")
}

func TestHandler_Enabled(t *testing.T) {
	a, rec := startedAppender(t, "%msg")
	logger := New(a, slog.LevelWarn)

	logger.Info("dropped")
	logger.Error("kept")
	require.Equal(t, 1, rec.Len())

	h := NewHandler(a, nil)
	require.True(t, h.Enabled(context.Background(), slog.Level(-8)))
}

func TestHandler_ReturnsAdapterError(t *testing.T) {
	a, rec := startedAppender(t, "%msg")
	rec.FailWith(errors.New("disk full"))

	h := NewHandler(a, nil)
	err := h.Handle(context.Background(), slog.NewRecord(time.Time{}, slog.LevelError, "x", 0))
	require.EqualError(t, err, "disk full")
}

func TestFromSlogLevel(t *testing.T) {
	require.Equal(t, hostlog.LevelTrace, FromSlogLevel(slog.Level(-8)))
	require.Equal(t, hostlog.LevelDebug, FromSlogLevel(slog.LevelDebug))
	require.Equal(t, hostlog.LevelDebug, FromSlogLevel(slog.LevelDebug+1))
	require.Equal(t, hostlog.LevelInfo, FromSlogLevel(slog.LevelInfo))
	require.Equal(t, hostlog.LevelWarn, FromSlogLevel(slog.LevelWarn))
	require.Equal(t, hostlog.LevelError, FromSlogLevel(slog.LevelError+4))
}

func TestWithGroupAndAttrsEmpty(t *testing.T) {
	h := NewHandler(hostlog.AdapterFunc(func(hostlog.Entry) error { return nil }), nil)
	require.Same(t, h, h.WithGroup(""))
	require.Same(t, h, h.WithAttrs(nil))
}
