// Package audit provides the process-wide structured audit log.
//
// Trade, refresh and staleness events are appended as JSON lines so the
// history of every rate and balance change stays reconstructable.
package audit

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu  sync.Mutex
	log *zap.SugaredLogger
)

// Init routes audit events to the given file. Call once at startup; events
// logged before Init (or when path is empty) go to stderr.
func Init(path string) error {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "json"
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if path != "" {
		cfg.OutputPaths = []string{path}
		cfg.ErrorOutputPaths = []string{path}
	}
	l, err := cfg.Build(zap.WithCaller(false))
	if err != nil {
		return err
	}
	mu.Lock()
	defer mu.Unlock()
	if log != nil {
		_ = log.Sync()
	}
	log = l.Sugar()
	return nil
}

// Get returns the audit logger, building a default stderr logger on first
// use if Init was never called.
func Get() *zap.SugaredLogger {
	mu.Lock()
	defer mu.Unlock()
	if log == nil {
		l, err := zap.NewProduction(zap.WithCaller(false))
		if err != nil {
			l = zap.NewNop()
		}
		log = l.Sugar()
	}
	return log
}

// Sync flushes buffered audit events.
func Sync() {
	mu.Lock()
	defer mu.Unlock()
	if log != nil {
		_ = log.Sync()
	}
}
