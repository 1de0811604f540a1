package main

import (
	"github.com/spf13/cobra"

	"github.com/xhad/copyscan/pkg/detector"
	"github.com/xhad/copyscan/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve checks over a websocket",
	Long: `serve accepts check requests on /ws and streams progress, diagnostics and
matches back to the client. /health answers OK.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Server.Addr = addr
		}
		if err := validate(cfg); err != nil {
			return err
		}

		logger := newLogger(cmd)
		det, err := detector.New(cfg, detector.WithLogger(logger))
		if err != nil {
			return err
		}

		return server.NewWSServer(det, logger).ListenAndServe(cmd.Context(), cfg.Server.Addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default from config, :8080)")

	rootCmd.AddCommand(serveCmd)
}
