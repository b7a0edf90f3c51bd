package xlog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerWith(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	l := NewLogger(zap.New(core)).With("event", "login")

	l.Debugw("hidden")
	l.Warnw("crowded", "count", 21)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.WarnLevel, entry.Level)
	assert.Equal(t, map[string]any{"event": "login", "count": int64(21)}, entry.ContextMap())
	assert.False(t, l.Enabled(zapcore.DebugLevel))
}

func TestSetupLoggerWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bus.log")
	SetupLogger(path)
	defer SetupLogger("")

	Errorx("listener panic", zap.Uint64("listener", 7))
	Errorw("error executing listener", "event", "login")
	CloseLogger()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "listener panic")
	assert.Contains(t, string(data), "error executing listener")
}

func TestSetLevel(t *testing.T) {
	defer SetLevel(zapcore.DebugLevel)

	SetLevel(zapcore.ErrorLevel)
	assert.False(t, Default().Enabled(zapcore.WarnLevel))
	assert.True(t, Default().Enabled(zapcore.ErrorLevel))
}
