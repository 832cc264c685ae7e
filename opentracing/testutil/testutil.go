// Package testutil holds helpers for tests that touch process-wide state:
// environment variables, the global tracer and log output.
package testutil

import (
	"bytes"
	"os"
	"strings"
	"sync"
	"testing"

	opentracing "github.com/opentracing/opentracing-go"
)

// ClearEnv empties the process environment until the test ends, so JAEGER_*
// variables of the machine running the tests cannot leak into it.
func ClearEnv(t testing.TB) {
	t.Helper()
	saved := os.Environ()
	os.Clearenv()
	t.Cleanup(func() {
		os.Clearenv()
		for _, kv := range saved {
			if k, v, ok := strings.Cut(kv, "="); ok {
				os.Setenv(k, v)
			}
		}
	})
}

// KeepGlobalTracer reinstalls the current global tracer when the test ends.
func KeepGlobalTracer(t testing.TB) {
	t.Helper()
	saved := opentracing.GlobalTracer()
	t.Cleanup(func() { opentracing.SetGlobalTracer(saved) })
}

// LogBuffer collects log output. It satisfies zapcore.WriteSyncer and may be
// written from several goroutines.
type LogBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *LogBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *LogBuffer) Sync() error {
	return nil
}

// Lines returns the non-empty lines written so far.
func (b *LogBuffer) Lines() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	var lines []string
	for _, l := range strings.Split(b.buf.String(), "\n") {
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
