package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/etsangsplk/hello-tracing/greeting"
	"github.com/etsangsplk/hello-tracing/logging"
	"github.com/etsangsplk/hello-tracing/metrics"
	ot "github.com/etsangsplk/hello-tracing/opentracing"
)

var version = "dev"

type rootOptions struct {
	configFile      string
	service         string
	agentHost       string
	agentPort       int
	flushInterval   time.Duration
	nested          bool
	logLevel        string
	shutdownTimeout time.Duration
	metricsFile     string
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	o := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "hello [flags] <name>",
		Short: "Say hello inside a traced span tree",
		Long: `hello prints "Hello, <name>!" on stdout. The call is traced as a
say-hello span with format and print children and reported to a jaeger agent.
Configuration is read from the YAML file given with --config, then from the
JAEGER_* environment variables, then from flags.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			_, err := greeting.ValidateArgs(args)
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, args, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.Flags()
	flags.StringVar(&o.configFile, "config", "", "YAML tracer configuration file")
	flags.StringVar(&o.service, "service", ot.DefaultServiceName, "service name reported with every span")
	flags.StringVar(&o.agentHost, "agent-host", ot.DefaultCollectorHost, "jaeger agent host")
	flags.IntVar(&o.agentPort, "agent-port", ot.DefaultCollectorPort, "jaeger agent UDP port")
	flags.DurationVar(&o.flushInterval, "flush-interval", ot.DefaultFlushInterval, "how often buffered spans are sent")
	flags.BoolVar(&o.nested, "nested", true, "trace format and print as child spans")
	flags.StringVar(&o.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	flags.DurationVar(&o.shutdownTimeout, "shutdown-timeout", ot.DefaultShutdownTimeout, "how long to wait for buffered spans on exit")
	flags.StringVar(&o.metricsFile, "metrics-file", "", "write tracer metrics in Prometheus text format to this file on exit")
	return cmd
}

func (o *rootOptions) run(cmd *cobra.Command, args []string, stdout, stderr io.Writer) error {
	helloTo, err := greeting.ValidateArgs(args)
	if err != nil {
		return err
	}
	level, err := logging.ParseLevel(o.logLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	cfg, err := o.tracerConfig(cmd)
	if err != nil {
		return err
	}

	logger := logging.NewWithOutput(cfg.ServiceName, logging.Lock(stderr))
	logger.SetLevel(level)
	logging.SetGlobalLogger(logger)
	defer logger.Flush()

	reg := metrics.NewRegistry()
	tracer, err := ot.NewTracer(cfg,
		ot.WithLogger(logger),
		ot.WithMetricsFactory(reg.Factory()))
	if err != nil {
		return err
	}
	ot.SetGlobalTracer(tracer)

	wf := greeting.New(tracer,
		greeting.WithOutput(stdout),
		greeting.WithNestedSpans(o.nested))
	runErr := wf.SayHello(logging.NewContext(cmd.Context(), logger), helloTo)

	ctx, cancel := context.WithTimeout(context.Background(), o.shutdownTimeout)
	defer cancel()
	err = multierr.Append(runErr, tracer.Shutdown(ctx))

	if o.metricsFile != "" {
		if werr := reg.WriteTextfile(o.metricsFile); werr != nil {
			logger.Error(werr, "cannot write metrics", "path", o.metricsFile)
			err = multierr.Append(err, werr)
		}
	}
	return err
}

// tracerConfig layers defaults, the config file, the environment and the
// flags that were set explicitly, in that order.
func (o *rootOptions) tracerConfig(cmd *cobra.Command) (ot.Config, error) {
	cfg := ot.DefaultConfig(ot.DefaultServiceName)
	var err error
	if o.configFile != "" {
		if cfg, err = ot.LoadConfigFile(o.configFile, cfg); err != nil {
			return cfg, err
		}
	}
	if cfg, err = ot.FromEnv(cfg); err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("service") {
		cfg.ServiceName = o.service
	}
	if flags.Changed("agent-host") {
		cfg.CollectorHost = o.agentHost
	}
	if flags.Changed("agent-port") {
		cfg.CollectorPort = o.agentPort
	}
	if flags.Changed("flush-interval") {
		cfg.FlushInterval = o.flushInterval
	}
	return cfg, nil
}
