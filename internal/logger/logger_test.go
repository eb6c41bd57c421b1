package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew_Levels(t *testing.T) {
	l, err := New("debug")
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))

	l, err = New("not-a-level")
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
}

func TestNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "advisor.log")
	l, err := NewFile("info", path)
	require.NoError(t, err)

	l.Info("loaded")
	_ = l.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"loaded"`)
	assert.Contains(t, string(data), `"level":"info"`)
	assert.Contains(t, string(data), `"timestamp":`)
}

func TestBuildConfig_SharedEncoding(t *testing.T) {
	config := buildConfig("warn")
	assert.Equal(t, zapcore.WarnLevel, config.Level.Level())
	assert.Equal(t, "message", config.EncoderConfig.MessageKey)
	assert.Equal(t, "level", config.EncoderConfig.LevelKey)
	assert.Equal(t, "caller", config.EncoderConfig.CallerKey)
	assert.Equal(t, "timestamp", config.EncoderConfig.TimeKey)
}

func TestGet(t *testing.T) {
	require.NotNil(t, Get())
	assert.Same(t, Get(), Get())
}
