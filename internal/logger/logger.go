package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the process-wide logger. It is a no-op logger until Init runs so
// packages can log from tests without setup.
var Log = zap.NewNop()

func Init() {
	InitWithLevel("info")
}

// InitWithLevel builds a development-style console logger at the given level.
// Unknown levels fall back to info.
func InitWithLevel(level string) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = zapcore.InfoLevel
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.DisableStacktrace = true

	l, err := cfg.Build()
	if err != nil {
		return
	}
	Log = l
}

func Sync() {
	_ = Log.Sync()
}
