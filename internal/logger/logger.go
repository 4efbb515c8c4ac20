// Package logger holds the process-wide zap logger used by the tempo CLI.
package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the global sugared logger.
var Logger *zap.SugaredLogger

func init() {
	// No-op until Initialize runs, so library callers never see a nil logger.
	Logger = zap.NewNop().Sugar()
}

// Initialize installs a stderr logger. Debug records are only kept when
// verbose is set.
func Initialize(jsonOutput, verbose bool) {
	Logger = New(zapcore.Lock(os.Stderr), jsonOutput, verbose)
}

// New builds a logger writing to w, either as JSON lines or in the console
// format.
func New(w io.Writer, jsonOutput, verbose bool) *zap.SugaredLogger {
	level := zap.InfoLevel
	if verbose {
		level = zap.DebugLevel
	}

	var encoder zapcore.Encoder
	if jsonOutput {
		cfg := zap.NewProductionEncoderConfig()
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(cfg)
	} else {
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.TimeKey = ""
		cfg.CallerKey = ""
		encoder = zapcore.NewConsoleEncoder(cfg)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(w), level)
	return zap.New(core).Sugar()
}

// Sync flushes buffered entries. Errors from syncing a terminal are ignored.
func Sync() {
	_ = Logger.Sync()
}
