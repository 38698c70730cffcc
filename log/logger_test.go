//go:build unit
// +build unit

package log

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/oqtopus-team/oqtopus-engine/noiseapp/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want zapcore.Level
	}{
		{name: "debug", in: "debug", want: zap.DebugLevel},
		{name: "warn", in: "warn", want: zap.WarnLevel},
		{name: "error", in: "error", want: zap.ErrorLevel},
		{name: "info", in: "info", want: zap.InfoLevel},
		{name: "unknown falls back to info", in: "verbose", want: zap.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.in))
		})
	}
}

func TestNewLoggerWritesFile(t *testing.T) {
	dir := t.TempDir()
	conf := &core.Conf{
		DisableStdoutLog:   true,
		EnableFileLog:      true,
		LogDir:             dir,
		LogLevel:           "debug",
		LogRotationMaxDays: 1,
	}
	logger, err := NewLogger(conf)
	require.NoError(t, err)
	logger.Debug("hello")
	_ = logger.Sync()

	files, err := filepath.Glob(filepath.Join(dir, "noiseapp-*.log"))
	require.NoError(t, err)
	require.Len(t, files, 1)
	b, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.Contains(t, string(b), `"msg":"hello"`)
	assert.Contains(t, string(b), `"timestamp"`)
}

func TestNewLoggerRejectsMissingDir(t *testing.T) {
	conf := &core.Conf{
		DisableStdoutLog:   true,
		EnableFileLog:      true,
		LogDir:             filepath.Join(t.TempDir(), "missing"),
		LogRotationMaxDays: 1,
	}
	_, err := NewLogger(conf)
	assert.Error(t, err)

	conf.LogDir = t.TempDir()
	conf.LogRotationMaxDays = 0
	_, err = NewLogger(conf)
	assert.True(t, core.IsInvalidParameter(err))
}

func TestSetZap(t *testing.T) {
	prev := zap.L()
	defer zap.ReplaceGlobals(prev)

	logger, err := SetZap(&core.Conf{DisableStdoutLog: true, LogLevel: "error"})
	require.NoError(t, err)
	assert.Same(t, logger, zap.L())
	assert.False(t, zap.L().Core().Enabled(zap.WarnLevel))
}
