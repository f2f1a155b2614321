package codec

import (
	"sync"

	"go.uber.org/zap"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the codec package's logger instance.
// It uses a no-op logger by default.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger configures the codec package's logger.
// This must be called before any codec operations.
func SetLogger(l *zap.Logger) {
	logger = l
}

func traceFixed(driver string, from, to interface {
	Description() string
}, size int) {
	if ce := Logger().Check(zap.DebugLevel, "codec fixed"); ce != nil {
		ce.Write(
			zap.String("driver", driver),
			zap.String("codec", from.Description()),
			zap.String("fixed", to.Description()),
			zap.Int("byte_size", size),
		)
	}
}
