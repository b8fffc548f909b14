package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// level is shared so --verbose can raise it after flag parsing
var level = zap.NewAtomicLevelAt(zapcore.InfoLevel)

// New builds the diagnostic logger. Human-facing output goes through the ui
// package; this logger carries command traces and timing at debug level.
func New(cfgLevel string) (*zap.Logger, error) {
	lvl := zapcore.InfoLevel
	if err := lvl.UnmarshalText([]byte(cfgLevel)); err != nil {
		lvl = zapcore.InfoLevel
	}
	level.SetLevel(lvl)

	cfg := zap.NewProductionConfig()
	cfg.Level = level
	cfg.Encoding = "console"
	cfg.DisableStacktrace = true
	cfg.OutputPaths = []string{"stderr"}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}

// SetDebug raises the shared level to debug (the --verbose flag)
func SetDebug() {
	level.SetLevel(zapcore.DebugLevel)
}
