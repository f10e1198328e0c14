/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cqusn/smartcar/pkg/api"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the records over a read-only REST API",
		Long: `Load the data file and serve it over HTTP until interrupted.

Routes:
  GET /api/v1/health
  GET /api/v1/records
  GET /api/v1/records/{index}
  GET /api/v1/schema
  GET /api/v1/report
  GET /metrics

Examples:
  smartcar serve
  smartcar serve --port 9000 --bind 0.0.0.0 --api-key mysecretkey`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("port") {
				a.cfg.Server.Port, _ = cmd.Flags().GetInt("port")
			}
			if cmd.Flags().Changed("bind") {
				a.cfg.Server.Bind, _ = cmd.Flags().GetString("bind")
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}
			apiKey, _ := cmd.Flags().GetString("api-key")

			collection, err := a.load(cmd)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cmd.Printf("Serving %d records from %s on %s\n", collection.Len(), a.cfg.DataFile, a.cfg.Addr())

			starter := a.container.GetServerFactory().CreateServerStarter()
			if err := starter.StartServer(ctx, collection, api.ServerConfig{
				Addr:   a.cfg.Addr(),
				APIKey: apiKey,
			}, a.logger); err != nil {
				return fmt.Errorf("server failed: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().IntP("port", "p", 8080, "Port to listen on (overrides server.port)")
	cmd.Flags().String("bind", "127.0.0.1", "Address to bind to (overrides server.bind)")
	cmd.Flags().String("api-key", "", "Require this X-API-Key on /api/v1 routes")
	return cmd
}
