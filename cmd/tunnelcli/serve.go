package main

import (
	"github.com/spf13/cobra"

	"tunnelcli/internal/app"
	"tunnelcli/internal/config"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	physics := &physicsFlags{}
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the reduction over HTTP",
		Long: `Start the HTTP API. POST a measurement file to /api/v1/reduce to reduce it;
/api/v1/geometry, /api/health and /metrics are also served. The server
stops gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(root, func(cfg *config.Config) {
				physics.apply(cmd.Flags(), &cfg.Physics)
				if cmd.Flags().Changed("port") {
					cfg.Server.Port = port
				}
			})
			if err != nil {
				return err
			}
			logger, logFile, err := newLogger(cmd, cfg)
			if err != nil {
				return err
			}
			if logFile != nil {
				defer logFile.Close()
			}

			application, err := app.NewApplication(cfg, logger)
			if err != nil {
				return err
			}
			return application.Run(cmd.Context())
		},
	}
	physics.register(cmd.Flags())
	cmd.Flags().IntVar(&port, "port", 8080, "listen port")
	return cmd
}
