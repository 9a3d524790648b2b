package log

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestReplaceGlobals(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	restore := ReplaceGlobals(zap.New(core))
	Debug("hidden")
	Info("shown", zap.Int("n", 1))
	Warn("also shown")
	restore()
	Info("discarded")

	require.Equal(t, 2, logs.Len())
	assert.Equal(t, "shown", logs.All()[0].Message)
	assert.Equal(t, zapcore.WarnLevel, logs.All()[1].Level)
}

func TestInit(t *testing.T) {
	defer ReplaceGlobals(L())

	logger, err := Init(Config{Level: "warn", Format: "json"})
	require.NoError(t, err)
	assert.Same(t, logger, L())
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))

	_, err = Init(Config{Level: "loud"})
	assert.Error(t, err)
}
