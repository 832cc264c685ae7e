package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/etsangsplk/hello-tracing/logging"
)

func run(t *testing.T, stdin string, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(strings.NewReader(stdin), &out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestPrintLine(t *testing.T) {
	in := `{"level":"INFO","time":"2024-03-05T10:11:12.345Z","file":"greeting/workflow.go:80","message":"tracer initialized","service":"hello-world","hostname":"box","agent":"localhost:6831","note":"two words"}`

	out := run(t, in, "--no-color")
	assert.Equal(t,
		`0305 10:11:12.345 INFO  greeting/workflow.go:80 | "tracer initialized" agent=localhost:6831 note="two words"`+"\n",
		out)
}

func TestPrintLineShowHost(t *testing.T) {
	in := `{"level":"INFO","message":"m","service":"hello-world","hostname":"box"}`

	out := run(t, in, "--no-color", "--show-host")
	assert.Contains(t, out, "hostname=box")
	assert.Contains(t, out, "service=hello-world")
}

func TestPrintLineColorsLevels(t *testing.T) {
	in := strings.Join([]string{
		`{"level":"WARN","message":"w"}`,
		`{"level":"ERROR","message":"e","error":"boom"}`,
		`{"level":"INFO","message":"i"}`,
	}, "\n")

	lines := strings.Split(strings.TrimSpace(run(t, in)), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "\x1b[33mWARN \x1b[0m")
	assert.Contains(t, lines[1], "\x1b[31mERROR\x1b[0m")
	assert.Contains(t, lines[1], "\x1b[36merror\x1b[0m=boom")
	assert.Contains(t, lines[2], "\x1b[32mINFO \x1b[0m")
}

func TestPassesThroughNonJSON(t *testing.T) {
	in := "Hello, Bozo!\n" + `{"level":"INFO","message":"tracer shut down"}` + "\n[1,2]"

	lines := strings.Split(strings.TrimSpace(run(t, in, "--no-color")), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Hello, Bozo!", lines[0])
	assert.Contains(t, lines[1], `"tracer shut down"`)
	assert.Equal(t, "[1,2]", lines[2])
}

func TestCallstackOnItsOwnLines(t *testing.T) {
	in := `{"level":"ERROR","message":"failed","callstack":"main.main\n\tmain.go:10"}`

	out := run(t, in, "--no-color")
	assert.Contains(t, out, "callstack=\nmain.main\n\tmain.go:10\n")
}

func TestNonStringValues(t *testing.T) {
	in := `{"level":"DEBUG","message":"span finished","duration":1500,"sampled":true}`

	out := run(t, in, "--no-color")
	assert.Contains(t, out, "duration=1500")
	assert.Contains(t, out, "sampled=true")
}

func TestReadsLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hello.log")
	logger := logging.NewWithOutput("pplog-test", logging.Lock(mustCreate(t, path)))
	logger.Info("from a file", "requestId", "r-1")
	require.NoError(t, logger.Flush())

	out := run(t, "", "--no-color", path)
	assert.Contains(t, out, `| "from a file"`)
	assert.Contains(t, out, "requestId=r-1")
	assert.NotContains(t, out, "pplog-test")
	assert.Contains(t, out, "INFO ")
}

func TestMissingLogFile(t *testing.T) {
	cmd := newRootCmd(strings.NewReader(""), &bytes.Buffer{})
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "missing.log")})
	assert.Error(t, cmd.Execute())
}

func TestTooManyArguments(t *testing.T) {
	cmd := newRootCmd(strings.NewReader(""), &bytes.Buffer{})
	cmd.SetArgs([]string{"a.log", "b.log"})
	assert.Error(t, cmd.Execute())
}

func mustCreate(t *testing.T, path string) *os.File {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}
