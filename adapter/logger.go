package adapter

import (
	"sync"

	"go.uber.org/zap"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the adapter package's logger instance. It uses a no-op
// logger by default.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger configures the adapter package's logger. Every later Logger
// call returns l, whether or not Logger has already installed its no-op
// default.
func SetLogger(l *zap.Logger) {
	logger = l
}
