package cli

import (
	"github.com/spf13/cobra"
	"github.com/uros002/QuizHubApp/internal/server"
	"go.uber.org/fx"
)

func newServeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}

			app := fx.New(
				fx.Supply(cfg),
				server.Module(),
				fx.Invoke(server.StartServer),
			)
			if err := app.Err(); err != nil {
				return err
			}
			// blocks until SIGINT or SIGTERM
			app.Run()
			return nil
		},
	}
}
