// The log package holds the process-wide structured logger. Library code
// that has no logger of its own logs through L; commands configure it once
// with Init.
package log

import (
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var global atomic.Pointer[zap.Logger]

func init() {
	global.Store(zap.NewNop())
}

// L returns the global logger. It discards everything until replaced.
func L() *zap.Logger {
	return global.Load()
}

// ReplaceGlobals replaces the global logger and returns a function that
// restores the previous one.
func ReplaceGlobals(logger *zap.Logger) func() {
	if logger == nil {
		logger = zap.NewNop()
	}
	prev := global.Swap(logger)
	return func() { global.Store(prev) }
}

// Config selects the output of the global logger.
type Config struct {
	// Level is the minimum level written, such as "debug" or "warn".
	Level string `mapstructure:"level"`
	// Format is "console" or "json".
	Format string `mapstructure:"format"`
}

// Init builds a logger writing to standard error from cfg and installs it
// as the global logger.
func Init(cfg Config) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return nil, err
		}
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.Encoding = "console"
	if cfg.Format == "json" {
		zc.Encoding = "json"
	}
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.DisableStacktrace = true
	logger, err := zc.Build()
	if err != nil {
		return nil, err
	}
	ReplaceGlobals(logger)
	return logger, nil
}

func Debug(msg string, fields ...zap.Field) { L().Debug(msg, fields...) }
func Info(msg string, fields ...zap.Field)  { L().Info(msg, fields...) }
func Warn(msg string, fields ...zap.Field)  { L().Warn(msg, fields...) }
