package opentracing

import (
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults used by the lessons: a local agent with a one second flush.
const (
	DefaultServiceName   = "hello-world"
	DefaultCollectorHost = "localhost"
	DefaultCollectorPort = 6831
	DefaultFlushInterval = time.Second
)

// Config describes how a Tracer reaches its collector. It is a value type;
// once handed to NewTracer it is not modified.
type Config struct {
	ServiceName   string        `yaml:"service_name"`
	CollectorHost string        `yaml:"collector_host"`
	CollectorPort int           `yaml:"collector_port"`
	FlushInterval time.Duration `yaml:"flush_interval"`

	// QueueSize bounds the number of finished spans buffered for export.
	// Zero uses the SDK default.
	QueueSize int `yaml:"queue_size"`
	// LogSpans also writes every reported span to the logger.
	LogSpans bool `yaml:"log_spans"`
	// CollectorEndpoint, when set, sends spans over HTTP to a collector
	// instead of UDP to the agent, e.g. http://localhost:14268/api/traces.
	CollectorEndpoint string `yaml:"collector_endpoint"`
	// Disabled yields a no-op tracer.
	Disabled bool `yaml:"disabled"`
	// Tags are attached to the tracer and therefore to every span's process.
	Tags map[string]string `yaml:"tags"`
}

// DefaultConfig returns the lesson defaults for serviceName.
func DefaultConfig(serviceName string) Config {
	return Config{
		ServiceName:   serviceName,
		CollectorHost: DefaultCollectorHost,
		CollectorPort: DefaultCollectorPort,
		FlushInterval: DefaultFlushInterval,
	}
}

// LoadConfig returns DefaultConfig(serviceName) overridden by the JAEGER_*
// environment variables.
func LoadConfig(serviceName string) (Config, error) {
	return FromEnv(DefaultConfig(serviceName))
}

// FromEnv overlays the JAEGER_* environment variables on base.
func FromEnv(base Config) (Config, error) {
	cfg := base
	var err error

	cfg.ServiceName = getenvOptionalString(EnvServiceName, cfg.ServiceName)
	cfg.CollectorHost = getenvOptionalString(EnvAgentHost, cfg.CollectorHost)
	cfg.CollectorEndpoint = getenvOptionalString(EnvEndpoint, cfg.CollectorEndpoint)

	if cfg.CollectorPort, err = getenvOptionalInt(EnvAgentPort, cfg.CollectorPort); err != nil {
		return base, err
	}
	if cfg.FlushInterval, err = getenvOptionalTimeDuration(EnvFlushInterval, cfg.FlushInterval); err != nil {
		return base, err
	}
	if cfg.QueueSize, err = getenvOptionalInt(EnvMaxQueueSize, cfg.QueueSize); err != nil {
		return base, err
	}
	if cfg.LogSpans, err = getenvOptionalBool(EnvLogSpans, cfg.LogSpans); err != nil {
		return base, err
	}
	if cfg.Disabled, err = getenvOptionalBool(EnvDisabled, cfg.Disabled); err != nil {
		return base, err
	}
	return cfg, nil
}

// LoadConfigFile overlays the YAML file at path on base. Keys missing from
// the file keep the values of base.
func LoadConfigFile(path string, base Config) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, &ConfigurationError{Field: "config file", Value: path, Err: err}
	}
	cfg := base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return base, &ConfigurationError{Field: "config file", Value: path, Reason: "invalid yaml", Err: err}
	}
	return cfg, nil
}

// AgentHostPort returns the host:port of the collector agent.
func (c Config) AgentHostPort() string {
	host := strings.TrimSuffix(strings.TrimPrefix(c.CollectorHost, "["), "]")
	return net.JoinHostPort(host, strconv.Itoa(c.CollectorPort))
}

// Validate reports the first problem that would keep a tracer from being built.
func (c Config) Validate() error {
	if strings.TrimSpace(c.ServiceName) == "" {
		return &ConfigurationError{Field: "service name", Reason: "must not be empty"}
	}
	if c.Disabled {
		return nil
	}
	if c.FlushInterval < 0 {
		return &ConfigurationError{Field: "flush interval", Value: c.FlushInterval, Reason: "must not be negative"}
	}
	if c.QueueSize < 0 {
		return &ConfigurationError{Field: "queue size", Value: c.QueueSize, Reason: "must not be negative"}
	}
	if c.CollectorEndpoint != "" {
		return validateEndpoint(c.CollectorEndpoint)
	}
	if !validHost(c.CollectorHost) {
		return &ConfigurationError{Field: "collector host", Value: c.CollectorHost, Reason: "malformed address"}
	}
	if c.CollectorPort < 1 || c.CollectorPort > 65535 {
		return &ConfigurationError{Field: "collector port", Value: c.CollectorPort, Reason: "must be within 1..65535"}
	}
	return nil
}

// validateEndpoint accepts absolute http(s) URLs with a valid host and, when
// given, a port within 1..65535.
func validateEndpoint(endpoint string) error {
	u, err := url.Parse(endpoint)
	if err != nil {
		return &ConfigurationError{Field: "collector endpoint", Value: endpoint, Reason: "malformed URL", Err: err}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return &ConfigurationError{Field: "collector endpoint", Value: endpoint, Reason: "must be an http or https URL"}
	}
	if !validHost(u.Hostname()) {
		return &ConfigurationError{Field: "collector endpoint", Value: endpoint, Reason: "malformed host"}
	}
	if p := u.Port(); p != "" {
		if port, err := strconv.Atoi(p); err != nil || port < 1 || port > 65535 {
			return &ConfigurationError{Field: "collector endpoint", Value: endpoint, Reason: "port must be within 1..65535"}
		}
	}
	return nil
}

// validHost accepts IP literals and RFC 1123 host names.
func validHost(host string) bool {
	if host == "" || len(host) > 253 {
		return false
	}
	if net.ParseIP(strings.TrimSuffix(strings.TrimPrefix(host, "["), "]")) != nil {
		return true
	}
	for _, label := range strings.Split(strings.TrimSuffix(host, "."), ".") {
		if label == "" || len(label) > 63 {
			return false
		}
		if label[0] == '-' || label[len(label)-1] == '-' {
			return false
		}
		for _, r := range label {
			switch {
			case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			default:
				return false
			}
		}
	}
	return true
}
