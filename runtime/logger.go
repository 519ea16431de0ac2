package runtime

import (
	"sync"

	"go.uber.org/zap"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the runtime's logger instance.
// It uses a no-op logger by default.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger configures the runtime package's logger.
// This must be called before any states are constructed.
func SetLogger(l *zap.Logger) {
	logger = l
}

// debugf is a no-op debug helper. Enable by setting debugEnabled = true.
var debugEnabled = false

func debugf(format string, args ...any) {
	if debugEnabled {
		Logger().Sugar().Debugf(format, args...)
	}
}
