package opentracing

import (
	"os"
	"strconv"
	"time"
)

// Environment Variables
type EnvKey string

// Environment variable keys. The names follow jaeger-client-go so existing
// deployments keep working.
const (
	EnvServiceName   EnvKey = "JAEGER_SERVICE_NAME"
	EnvDisabled      EnvKey = "JAEGER_DISABLED"
	EnvAgentHost     EnvKey = "JAEGER_AGENT_HOST"
	EnvAgentPort     EnvKey = "JAEGER_AGENT_PORT"
	EnvEndpoint      EnvKey = "JAEGER_ENDPOINT"
	EnvFlushInterval EnvKey = "JAEGER_REPORTER_FLUSH_INTERVAL"
	EnvMaxQueueSize  EnvKey = "JAEGER_REPORTER_MAX_QUEUE_SIZE"
	EnvLogSpans      EnvKey = "JAEGER_REPORTER_LOG_SPANS"
)

func getenvTryRequired(key EnvKey) (string, bool) {
	if v, ok := os.LookupEnv(string(key)); ok {
		return v, true
	}
	return "", false
}

func getenvOptionalString(key EnvKey, defaultValue string) string {
	v, ok := getenvTryRequired(key)
	if !ok {
		return defaultValue
	}
	return v
}

func getenvOptionalBool(key EnvKey, defaultValue bool) (bool, error) {
	v, ok := getenvTryRequired(key)
	if !ok {
		return defaultValue, nil
	}
	result, err := strconv.ParseBool(v)
	if err != nil {
		return defaultValue, envError(key, v, err)
	}
	return result, nil
}

func getenvOptionalInt(key EnvKey, defaultValue int) (int, error) {
	v, ok := getenvTryRequired(key)
	if !ok {
		return defaultValue, nil
	}
	result, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue, envError(key, v, err)
	}
	return result, nil
}

func getenvOptionalTimeDuration(key EnvKey, defaultValue time.Duration) (time.Duration, error) {
	v, ok := getenvTryRequired(key)
	if !ok {
		return defaultValue, nil
	}
	result, err := time.ParseDuration(v)
	if err != nil {
		return defaultValue, envError(key, v, err)
	}
	return result, nil
}

func envError(key EnvKey, value string, err error) error {
	return &ConfigurationError{Field: string(key), Value: value, Reason: "cannot parse environment variable", Err: err}
}
