package cli

import (
	"github.com/spf13/cobra"
	"github.com/uros002/QuizHubApp/config"
	"github.com/uros002/QuizHubApp/internal/logger"
)

type options struct {
	envFile string
	port    string
}

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	serve := newServeCmd(opts)
	cmd := &cobra.Command{
		Use:          "quizhub",
		Short:        "QuizHub quiz authoring, attempts and leaderboards API",
		SilenceUsage: true,
		// bare invocation serves
		RunE: serve.RunE,
	}

	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", "", "path to the .env file (default ./.env)")
	cmd.PersistentFlags().StringVar(&opts.port, "port", "", "port to listen on, overrides SERVER_PORT")
	cmd.AddCommand(serve)
	cmd.AddCommand(newMigrateCmd(opts))
	return cmd
}

func loadConfig(opts *options) (*config.Config, error) {
	cfg, err := config.NewConfig(opts.envFile)
	if err != nil {
		return nil, err
	}
	if opts.port != "" {
		cfg.Server.Port = opts.port
	}
	logger.Init(cfg.Env, cfg.LogLevel)
	return cfg, nil
}
