// Copyright (c) 2026 Cilo Authors
// SPDX-License-Identifier: MIT
// See LICENSES/MIT.txt for full license text

// Package cli wires configuration, logging and the platform adapters into
// the decom commands.
package cli

import (
	"io"
	"net/http"
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sharedco/decom/internal/command"
	"github.com/sharedco/decom/internal/config"
	"github.com/sharedco/decom/internal/logging"
	"github.com/sharedco/decom/internal/platform"
	"github.com/sharedco/decom/internal/reach"
	"github.com/sharedco/decom/internal/version"
)

// Env is the outside world the commands talk to.
type Env struct {
	Stdin  io.Reader
	Stdout io.Writer
	Runner command.Runner
	// Transport overrides the HTTP round tripper; nil uses the default.
	Transport http.RoundTripper
	// LookPath resolves executables; nil uses the PATH.
	LookPath func(string) (string, error)
}

type rootOptions struct {
	configFile  string
	envFile     string
	logLevel    string
	logFormat   string
	logFile     string
	metricsFile string
}

// Execute runs the decom command line against the real process environment.
func Execute() error {
	return NewRootCmd(Env{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Runner: command.NewExecRunner(),
	}).Execute()
}

// NewRootCmd builds the command tree.
func NewRootCmd(env Env) *cobra.Command {
	if env.LookPath == nil {
		env.LookPath = command.Available
	}
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "decom",
		Short: "Safely delete Heroku apps that were migrated to Azure",
		Long: `decom walks you through the checks that must pass before a Heroku app
is deleted after its migration to Azure:

1. The app must not use a custom domain
2. You confirm the migration is complete
3. The original hostname must answer ping and HTTP
4. You confirm the deletion by name

Deletion is only attempted when every check passed. After each app you can
continue with another one.`,
		Version:       version.Short(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSweep(cmd.Context(), env, opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "Path to a YAML config file (default ~/.decom/config.yaml)")
	flags.StringVar(&opts.envFile, "env-file", ".env", "Dotenv file loaded into the environment if present")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flags.StringVar(&opts.logFormat, "log-format", "", "Log format (text or json)")
	flags.StringVar(&opts.logFile, "log-file", "", "Log file path, '-' for stderr (default ~/.decom/logs/decom.log)")
	flags.StringVar(&opts.metricsFile, "metrics-file", "", "Write outcome counters to this Prometheus textfile")

	cmd.AddCommand(newCheckCmd(env, opts))
	cmd.AddCommand(newDoctorCmd(env, opts))
	cmd.AddCommand(newVersionCmd(env))

	return cmd
}

func (o *rootOptions) load() (*config.Config, error) {
	cfg, err := config.Load(config.LoadOptions{
		ConfigFile: o.configFile,
		EnvFile:    o.envFile,
	})
	if err != nil {
		return nil, err
	}

	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	if o.logFormat != "" {
		cfg.Log.Format = o.logFormat
	}
	if o.logFile != "" {
		cfg.Log.File = o.logFile
	}
	if o.metricsFile != "" {
		cfg.MetricsFile = o.metricsFile
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// services are the collaborators shared by the commands.
type services struct {
	cfg      *config.Config
	log      *logrus.Entry
	closeLog func() error
	heroku   *platform.HerokuCLI
	checker  *reach.Checker
}

func setup(env Env, opts *rootOptions) (*services, error) {
	cfg, err := opts.load()
	if err != nil {
		return nil, err
	}

	logger, closeLog, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}
	log := logger.WithField("session", uuid.NewString())

	httpChecker := reach.NewHTTPChecker(cfg.Probe.HTTPTimeout)
	if env.Transport != nil {
		httpChecker.SetTransport(env.Transport)
	}
	pinger := reach.NewExecPinger(env.Runner, cfg.Probe.PingBinary, cfg.Probe.PingCount)
	sigs := reach.Signatures{
		Origin:      cfg.Migration.OriginSignatures,
		Destination: cfg.Migration.DestinationSignatures,
	}

	return &services{
		cfg:      cfg,
		log:      log,
		closeLog: closeLog,
		heroku:   platform.NewHerokuCLI(env.Runner, cfg.Platform.Binary),
		checker:  reach.NewChecker(pinger, httpChecker, sigs, log),
	}, nil
}

func (s *services) close() {
	s.closeLog()
}

func newVersionCmd(env Env) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			io.WriteString(env.Stdout, version.Info()+"\n")
		},
	}
}
