package logging

import (
	"io"

	"go.uber.org/zap/zapcore"
)

type WriteSyncer = zapcore.WriteSyncer

// Lock wraps a plain io.Writer so it is safe for concurrent use by the logger.
func Lock(w io.Writer) WriteSyncer {
	// AddSync gives writers without Sync a no-op one.
	writer := zapcore.AddSync(w)
	return zapcore.Lock(writer)
}
