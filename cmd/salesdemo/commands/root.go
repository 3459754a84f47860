package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/sghaida/graphioc/config"
	"github.com/sghaida/graphioc/di"
	"github.com/sghaida/graphioc/examples/sales"
	"github.com/sghaida/graphioc/internal/telemetry"
)

// Execute runs the root command.
func Execute(ctx context.Context, version, commit, buildDate string) error {
	rootCmd, a := newRootCommand(version, commit, buildDate)
	return a.execute(ctx, rootCmd)
}

// app is the state shared by every subcommand: flags, loaded configuration and
// the telemetry built from it.
type app struct {
	configPath string
	verbose    bool
	policy     string
	metrics    bool

	cfg      config.Config
	log      zerolog.Logger
	prevLog  zerolog.Logger
	closer   io.Closer
	registry *prometheus.Registry
	observer di.Observer
}

func newRootCommand(version, commit, buildDate string) (*cobra.Command, *app) {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "salesdemo",
		Short: "Process sales through a reflection-wired object graph",
		Long: `salesdemo wires a small sales domain with the graphioc container.

Commands:
  - process: resolve the production processor and process the demo sale
  - generate: synthesize random sales and process them`,
		Version:            fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
		SilenceUsage:       true,
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: a.teardown,
	}

	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log every resolution step")
	rootCmd.PersistentFlags().StringVar(&a.policy, "policy", "", "resolution policy (canonical, alternate)")
	rootCmd.PersistentFlags().BoolVar(&a.metrics, "metrics", false, "print resolver metrics after the command")

	rootCmd.AddCommand(newProcessCommand(a))
	rootCmd.AddCommand(newGenerateCommand(a))

	return rootCmd, a
}

// execute runs cmd and releases the log output even when the command fails,
// since cobra skips PersistentPostRunE after a RunE error.
func (a *app) execute(ctx context.Context, cmd *cobra.Command) (err error) {
	defer func() { err = errors.Join(err, a.close()) }()
	return cmd.ExecuteContext(ctx)
}

func (a *app) setup(*cobra.Command, []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.policy != "" {
		cfg.Policy = a.policy
	}
	if a.verbose {
		cfg.Logging.Level = "debug"
	}
	if a.metrics {
		cfg.Metrics.Enabled = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, closer, err := telemetry.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	a.prevLog, a.closer = log.Logger, closer
	log.Logger = logger

	if cfg.Metrics.Enabled {
		a.registry = prometheus.NewRegistry()
		m, err := telemetry.NewMetrics(a.registry, cfg.Metrics.Namespace)
		if err != nil {
			return fmt.Errorf("register metrics: %w", err)
		}
		a.observer = m
	}

	a.cfg, a.log = cfg, logger
	a.log.Debug().
		Str("policy", cfg.Policy).
		Int("max_depth", cfg.MaxDepth).
		Bool("metrics", cfg.Metrics.Enabled).
		Msg("configuration loaded")
	return nil
}

func (a *app) teardown(cmd *cobra.Command, _ []string) error {
	if a.registry != nil && a.metrics {
		if err := telemetry.WriteText(cmd.OutOrStdout(), a.registry); err != nil {
			return err
		}
	}
	return nil
}

// close restores the previous global logger and closes the log output.
func (a *app) close() error {
	if a.closer == nil {
		return nil
	}
	log.Logger = a.prevLog
	err := a.closer.Close()
	a.closer = nil
	return err
}

// container builds the production or the stub wiring with the configured options.
func (a *app) container(stub bool) (*di.Container, error) {
	opts, err := a.cfg.ContainerOptions(a.log, a.observer)
	if err != nil {
		return nil, err
	}
	if stub {
		return sales.NewStubContainer(opts...)
	}
	return sales.NewContainer(opts...)
}
