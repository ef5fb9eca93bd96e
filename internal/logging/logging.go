// Package logging builds the zap logger. The TUI owns stdout, so logs go to a
// file under the state directory.
package logging

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New opens (appending) path and returns a JSON logger writing to it, plus a
// close func that syncs and closes the file.
func New(path string, debug bool) (*zap.Logger, func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}

	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}
	core := zapcore.NewCore(encoder(), zapcore.AddSync(f), level)
	log := zap.New(core, zap.AddCaller())
	closeFn := func() {
		_ = log.Sync()
		_ = f.Close()
	}
	return log, closeFn, nil
}

func encoder() zapcore.Encoder {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewJSONEncoder(encoderConfig)
}

// Nop is used when the log file cannot be opened.
func Nop() *zap.Logger { return zap.NewNop() }
