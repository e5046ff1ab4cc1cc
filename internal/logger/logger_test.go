package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestInitWithLevel(t *testing.T) {
	defer func() { Log = zap.NewNop() }()

	InitWithLevel("debug")
	if !Log.Core().Enabled(zapcore.DebugLevel) {
		t.Error("debug level should enable debug output")
	}

	InitWithLevel("warn")
	if Log.Core().Enabled(zapcore.InfoLevel) {
		t.Error("warn level should drop info output")
	}

	InitWithLevel("bogus")
	if !Log.Core().Enabled(zapcore.InfoLevel) || Log.Core().Enabled(zapcore.DebugLevel) {
		t.Error("unknown level should fall back to info")
	}
}
