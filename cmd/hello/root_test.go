package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/etsangsplk/hello-tracing/greeting"
	"github.com/etsangsplk/hello-tracing/logging"
	ot "github.com/etsangsplk/hello-tracing/opentracing"
	"github.com/etsangsplk/hello-tracing/opentracing/testutil"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	testutil.KeepGlobalTracer(t)
	g := logging.Global()
	defer logging.SetGlobalLogger(g)

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestHelloDisabledTracer(t *testing.T) {
	t.Setenv("JAEGER_DISABLED", "true")

	stdout, stderr, err := execute(t, "Bozo")
	require.NoError(t, err)
	assert.Equal(t, "Hello, Bozo!\n", stdout)
	assert.Contains(t, stderr, `"message":"tracer initialized"`)
	assert.Contains(t, stderr, `"message":"tracer shut down"`)
	assert.NotContains(t, stderr, "Hello, Bozo!")
}

func TestHelloReportsToLocalAgent(t *testing.T) {
	t.Setenv("JAEGER_DISABLED", "false")

	stdout, stderr, err := execute(t,
		"--agent-host", "127.0.0.1",
		"--flush-interval", "10ms",
		"--service", "hello-test",
		"Bozo")
	require.NoError(t, err)
	assert.Equal(t, "Hello, Bozo!\n", stdout)
	assert.Contains(t, stderr, `"service":"hello-test"`)
	assert.Contains(t, stderr, `"agent":"127.0.0.1:6831"`)
}

func TestHelloFlatSpans(t *testing.T) {
	t.Setenv("JAEGER_DISABLED", "true")

	stdout, _, err := execute(t, "--nested=false", "Alice")
	require.NoError(t, err)
	assert.Equal(t, "Hello, Alice!\n", stdout)
}

func TestHelloArgumentCount(t *testing.T) {
	t.Setenv("JAEGER_DISABLED", "true")

	for _, args := range [][]string{{}, {"A", "B"}, {"--nested", "A", "B", "C"}} {
		stdout, _, err := execute(t, args...)
		require.Error(t, err, "args %v", args)
		assert.True(t, errors.Is(err, greeting.ErrArgument))
		assert.Equal(t, "Expecting one argument", err.Error())
		assert.Empty(t, stdout)
	}
}

func TestHelloInvalidConfiguration(t *testing.T) {
	t.Setenv("JAEGER_DISABLED", "false")

	for _, args := range [][]string{
		{"--agent-port", "0", "Bozo"},
		{"--agent-port", "70000", "Bozo"},
		{"--agent-host", "http://localhost", "Bozo"},
		{"--service", "", "Bozo"},
		{"--flush-interval", "-1s", "Bozo"},
	} {
		stdout, _, err := execute(t, args...)
		require.Error(t, err, "args %v", args)
		assert.True(t, errors.Is(err, ot.ErrConfiguration), "args %v", args)
		assert.Empty(t, stdout)
	}
}

func TestHelloInvalidEnvironment(t *testing.T) {
	t.Setenv("JAEGER_AGENT_PORT", "not-a-port")

	stdout, _, err := execute(t, "Bozo")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ot.ErrConfiguration))
	assert.Empty(t, stdout)
}

func TestHelloInvalidLogLevel(t *testing.T) {
	stdout, _, err := execute(t, "--log-level", "loud", "Bozo")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--log-level")
	assert.Empty(t, stdout)
}

func TestHelloConfigFile(t *testing.T) {
	testutil.ClearEnv(t)
	path := filepath.Join(t.TempDir(), "tracer.yaml")
	require.NoError(t, os.WriteFile(path, []byte("service_name: from-file\ndisabled: true\n"), 0o600))

	stdout, stderr, err := execute(t, "--config", path, "Bozo")
	require.NoError(t, err)
	assert.Equal(t, "Hello, Bozo!\n", stdout)
	assert.Contains(t, stderr, `"serviceName":"from-file"`)
}

func TestHelloFlagsOverrideConfigFile(t *testing.T) {
	testutil.ClearEnv(t)
	path := filepath.Join(t.TempDir(), "tracer.yaml")
	require.NoError(t, os.WriteFile(path, []byte("service_name: from-file\ndisabled: true\n"), 0o600))

	_, stderr, err := execute(t, "--config", path, "--service", "from-flag", "Bozo")
	require.NoError(t, err)
	assert.Contains(t, stderr, `"serviceName":"from-flag"`)
	assert.NotContains(t, stderr, "from-file")
}

func TestHelloMissingConfigFile(t *testing.T) {
	_, _, err := execute(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "Bozo")
	require.Error(t, err)
}

func TestHelloDebugLogsSpans(t *testing.T) {
	t.Setenv("JAEGER_DISABLED", "false")

	_, stderr, err := execute(t,
		"--agent-host", "127.0.0.1",
		"--log-level", "debug",
		"Bozo")
	require.NoError(t, err)
	assert.Contains(t, stderr, `"message":"span finished"`)
	assert.Contains(t, stderr, `"operation":"say-hello"`)
}

func TestHelloWritesMetrics(t *testing.T) {
	t.Setenv("JAEGER_DISABLED", "false")
	path := filepath.Join(t.TempDir(), "hello.prom")

	stdout, _, err := execute(t,
		"--agent-host", "127.0.0.1",
		"--metrics-file", path,
		"Bozo")
	require.NoError(t, err)
	assert.Equal(t, "Hello, Bozo!\n", stdout)

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(contents), `jaeger_tracer_started_spans_total{sampled="y"} 3`)
	assert.Contains(t, string(contents), `jaeger_tracer_finished_spans_total{sampled="y"} 3`)
}

func TestHelloMetricsFileFailure(t *testing.T) {
	t.Setenv("JAEGER_DISABLED", "true")

	stdout, stderr, err := execute(t,
		"--metrics-file", filepath.Join(t.TempDir(), "missing", "hello.prom"),
		"Bozo")
	require.Error(t, err)
	assert.Equal(t, "Hello, Bozo!\n", stdout)
	assert.Contains(t, stderr, `"message":"cannot write metrics"`)
}
