package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sumire/projectmanager/internal/client"
	"github.com/sumire/projectmanager/internal/logging"
)

// serverEnv overrides the default --server value.
const serverEnv = "PROJECTS_API_URL"

var version = "dev"

type cliOptions struct {
	server   string
	timeout  time.Duration
	logFile  string
	logLevel string
	jsonOut  bool

	logger  *zap.Logger
	session *client.Session
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	defaultServer := client.DefaultBaseURL
	if v := os.Getenv(serverEnv); v != "" {
		defaultServer = v
	}

	rootCmd := &cobra.Command{
		Use:   "projectctl",
		Short: "Client for the project manager API",
		Long: `projectctl talks to the project manager API.

Examples:
  # Open the interactive screen
  projectctl tui

  # List projects
  projectctl list

  # Add a project on another server
  projectctl add "Website redesign" --server http://localhost:8080`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			opts.teardown()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.server, "server", defaultServer, "project manager API URL (env "+serverEnv+")")
	flags.DurationVar(&opts.timeout, "timeout", 10*time.Second, "per-request timeout")
	flags.StringVar(&opts.logFile, "log-file", "", "write client logs to this file")
	flags.StringVar(&opts.logLevel, "log-level", "debug", "log level for --log-file")
	flags.BoolVar(&opts.jsonOut, "json", false, "print results as JSON")

	rootCmd.AddCommand(
		newListCmd(opts),
		newCountCmd(opts),
		newGetCmd(opts),
		newAddCmd(opts),
		newUpdateCmd(opts),
		newDeleteCmd(opts),
		newTUICmd(opts),
	)

	return rootCmd
}

func (o *cliOptions) setup() error {
	logger, err := logging.NewFile(o.logFile, o.logLevel)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	o.logger = logger

	c := client.New(o.server, client.WithTimeout(o.timeout), client.WithLogger(logger))
	o.session = client.NewSession(c, logger)
	return nil
}

func (o *cliOptions) teardown() {
	if o.session != nil {
		o.session.Client().CloseIdleConnections()
	}
	if o.logger != nil {
		_ = o.logger.Sync()
	}
}
